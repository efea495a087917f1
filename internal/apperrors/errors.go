// Package apperrors regroupe les erreurs métier partagées entre les services et les handlers.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound l'utilisateur, la question ou la réponse n'existe pas
	ErrNotFound = errors.New("not found")
	// ErrWriteFailure l'écriture distante a échoué, rien n'a été persisté
	ErrWriteFailure = errors.New("write failure")
	// ErrConflict le document a changé depuis sa lecture (version ou score différent)
	ErrConflict = errors.New("conflict")
	// ErrVoteInFlight un vote du même utilisateur sur la même entité est déjà en cours
	ErrVoteInFlight = errors.New("vote already in flight")
	// ErrNotificationFailure best-effort, seulement loggée
	ErrNotificationFailure = errors.New("notification failure")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
)

// HTTPStatus associe une erreur métier à un code HTTP
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrVoteInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
