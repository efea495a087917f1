package handler

import (
	"net/http"

	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"github.com/gorilla/mux"
)

// GetLeaderboard classement général par score
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Users.Leaderboard(r.Context(), utils.QueryInt(r, "limit", 50, 100))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query leaderboard", err)
		return
	}
	utils.Success(w, entries)
}

// GetUserRank rang et percentile (Top X%) d'un utilisateur
func (h *Handler) GetUserRank(w http.ResponseWriter, r *http.Request) {
	rank, err := h.Users.UserRank(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		utils.ErrorFrom(w, "could not compute rank", err)
		return
	}
	utils.Success(w, rank)
}
