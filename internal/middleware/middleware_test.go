package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

type fakeSessions map[string]model.UserProfile

func (f fakeSessions) UserByToken(_ context.Context, token string) (*model.UserProfile, error) {
	if token == "broken" {
		return nil, errors.New("db down")
	}
	user, ok := f[token]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

var sessions = fakeSessions{"tok": {ID: "u1", Name: "Ada"}}

func whoami(w http.ResponseWriter, r *http.Request) {
	if user, ok := GetUserFromContext(r); ok {
		w.Write([]byte(user.ID))
		return
	}
	w.Write([]byte("anonymous"))
}

func TestAuth(t *testing.T) {
	h := Auth(sessions)(http.HandlerFunc(whoami))

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, ""},
		{"raw token", "tok", http.StatusOK, "u1"},
		{"bearer token", "Bearer tok", http.StatusOK, "u1"},
		{"unknown", "Bearer nope", http.StatusUnauthorized, ""},
		{"store error", "broken", http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	h := OptionalAuth(sessions)(http.HandlerFunc(whoami))

	for header, want := range map[string]string{"": "anonymous", "tok": "u1", "nope": "anonymous", "broken": "anonymous"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String(), "header %q", header)
	}
}

func TestLoggerMiddlewareKeepsStatus(t *testing.T) {
	h := LoggerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/questions", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}
