package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/report"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"github.com/gorilla/mux"
)

const maxUploadSize = 5 << 20

type userResponse struct {
	*model.UserProfile
	Progress gamification.Progress `json:"progress"`
}

// GetUser profil public avec la progression calculée depuis le score
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetUserByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ErrorFrom(w, "user not found", err)
		return
	}

	utils.Success(w, userResponse{
		UserProfile: user,
		Progress:    gamification.ProgressFor(user.ID, user.Score),
	})
}

func (h *Handler) GetUserProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.Gamification.Progress(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ErrorFrom(w, "could not load progress", err)
		return
	}
	utils.Success(w, progress)
}

// GetUserReport bilan de progression en PDF, ou en HTML avec ?format=html
func (h *Handler) GetUserReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.Users.GetUserByID(ctx, mux.Vars(r)["id"])
	if err != nil {
		utils.ErrorFrom(w, "user not found", err)
		return
	}

	data := report.Data{
		User:        *user,
		Progress:    gamification.ProgressFor(user.ID, user.Score),
		GeneratedAt: time.Now(),
	}
	if rank, err := h.Users.UserRank(ctx, user.ID); err == nil {
		data.Rank = rank
	} else {
		logger.Warning("report: rank of %s: %v", user.ID, err)
	}

	html, err := report.RenderHTML(data)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not render report", err)
		return
	}

	if r.URL.Query().Get("format") == "html" || h.PDF == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
		return
	}

	pdf, err := h.PDF.Render(ctx, html)
	if err != nil {
		if errors.Is(err, report.ErrPDFDependencyMissing) {
			utils.Error(w, http.StatusServiceUnavailable, "pdf export unavailable, use format=html", err)
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not generate pdf", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(*user)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// UploadAvatar upload multipart (champ "avatar") vers Cloudinary, pour soi-même uniquement
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	userID := mux.Vars(r)["id"]
	if user.ID != userID {
		utils.Error(w, http.StatusForbidden, "you can only update your own avatar")
		return
	}
	if h.Media == nil {
		utils.Error(w, http.StatusServiceUnavailable, "image upload is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing avatar file (max 5MB)")
		return
	}
	defer file.Close()

	url, err := h.Media.UploadAvatar(r.Context(), file, userID)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "could not upload avatar", err)
		return
	}

	if err := h.Users.UpdateAvatar(r.Context(), userID, url); err != nil {
		utils.ErrorFrom(w, "could not save avatar", err)
		return
	}

	utils.Success(w, map[string]string{"avatar": url})
}
