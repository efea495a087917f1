package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
)

type contextKey string

const (
	userContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// SessionLookup retrouve l'utilisateur d'un token de session actif
type SessionLookup interface {
	UserByToken(ctx context.Context, token string) (*model.UserProfile, error)
}

// Auth exige un token valide et injecte l'utilisateur dans le contexte
func Auth(sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// déjà validé par OptionalAuth
			if _, ok := GetUserFromContext(r); ok {
				next.ServeHTTP(w, r)
				return
			}

			token := tokenFromHeader(r)
			if token == "" {
				utils.Error(w, http.StatusUnauthorized, "missing authorization token")
				return
			}

			user, err := sessions.UserByToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					utils.Error(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				utils.Error(w, http.StatusInternalServerError, "could not validate token", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user, token)))
		})
	}
}

// OptionalAuth injecte l'utilisateur si le token est valide, sans jamais bloquer
func OptionalAuth(sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := tokenFromHeader(r); token != "" {
				user, err := sessions.UserByToken(r.Context(), token)
				if err == nil {
					r = r.WithContext(withUser(r.Context(), user, token))
				} else if !errors.Is(err, apperrors.ErrNotFound) {
					logger.Warning("optional auth: %v", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withUser(ctx context.Context, user *model.UserProfile, token string) context.Context {
	ctx = context.WithValue(ctx, userContextKey, *user)
	return context.WithValue(ctx, tokenContextKey, token)
}

// tokenFromHeader accepte "Bearer <token>" ou le token seul
func tokenFromHeader(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}

// GetUserFromContext récupère l'utilisateur authentifié
func GetUserFromContext(r *http.Request) (model.UserProfile, bool) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	return user, ok
}

// GetTokenFromContext récupère le token de la requête authentifiée
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok && token != ""
}

// WithUser place user dans le contexte (tests des handlers)
func WithUser(r *http.Request, user model.UserProfile, token string) *http.Request {
	return r.WithContext(withUser(r.Context(), &user, token))
}
