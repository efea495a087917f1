package handler

import (
	"errors"
	"net/http"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"github.com/MassBabyGeek/StudyHub-backend/internal/voting"
	"github.com/gorilla/mux"
)

// VoteQuestion body {"direction":"up"|"down"}. En cas d'échec, data contient
// l'état confirmé de la question pour que le client annule son affichage.
func (h *Handler) VoteQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	questionID := mux.Vars(r)["id"]

	var req model.VoteRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	dir, err := voting.ParseDirection(req.Direction)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.Votes.VoteQuestion(r.Context(), questionID, user.ID, dir)
	if err != nil {
		var data interface{}
		if outcome != nil {
			data = outcome
		} else {
			data = h.confirmedQuestion(r, questionID, err)
		}
		utils.ErrorWithData(w, "vote not applied", err, data)
		return
	}

	utils.Success(w, outcome)
}

func (h *Handler) VoteAnswer(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	questionID, answerID := vars["id"], vars["answerId"]

	outcome, err := h.Votes.VoteAnswer(r.Context(), questionID, answerID, user.ID)
	if err != nil {
		var data interface{}
		if outcome != nil {
			data = outcome
		} else {
			data = h.confirmedQuestion(r, questionID, err)
		}
		utils.ErrorWithData(w, "vote not applied", err, data)
		return
	}

	utils.Success(w, outcome)
}

// confirmedQuestion relit la question quand le vote a été refusé avant toute écriture
func (h *Handler) confirmedQuestion(r *http.Request, questionID string, cause error) interface{} {
	if errors.Is(cause, apperrors.ErrNotFound) {
		return nil
	}
	q, err := h.Questions.GetQuestion(r.Context(), questionID)
	if err != nil {
		logger.Warning("reload question %s after failed vote: %v", questionID, err)
		return nil
	}
	return map[string]interface{}{"question": q, "reverted": true}
}
