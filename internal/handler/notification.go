package handler

import (
	"net/http"

	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"github.com/gorilla/mux"
)

// ListNotifications boîte de l'utilisateur connecté (params: unread=true, limit)
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.Notifications.ListNotifications(r.Context(), user.ID, unreadOnly, utils.QueryInt(r, "limit", 50, 200))
	if err != nil {
		utils.ErrorFrom(w, "could not load notifications", err)
		return
	}
	utils.Success(w, notifications)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Notifications.MarkNotificationRead(r.Context(), mux.Vars(r)["id"], user.ID); err != nil {
		utils.ErrorFrom(w, "notification not found", err)
		return
	}
	utils.Message(w, "notification marked as read")
}
