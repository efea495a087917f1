package handler

import (
	"errors"
	"net/http"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/middleware"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type authResponse struct {
	User      *model.UserProfile `json:"user"`
	Token     string             `json:"token"`
	ExpiresAt string             `json:"expiresAt"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	user, err := h.Users.CreateUser(r.Context(), req.Name, req.Email, string(hashed), utils.DefaultAvatarURL(req.Name), req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			utils.Error(w, http.StatusConflict, "email already registered")
			return
		}
		utils.ErrorFrom(w, "could not create user", err)
		return
	}

	h.openSession(w, r, user, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, hash, err := h.Users.GetUserCredentials(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.openSession(w, r, user, http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	if err := h.Sessions.InvalidateSession(r.Context(), token); err != nil {
		utils.ErrorFrom(w, "session not found or already logged out", err)
		return
	}

	utils.Message(w, "logged out")
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request, user *model.UserProfile, status int) {
	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	session, err := h.Sessions.CreateSession(r.Context(), user.ID, ip, userAgent, h.SessionDuration)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.JSON(w, status, utils.APIResponse{
		Success: true,
		Data: authResponse{
			User:      user,
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"),
		},
	})
}
