package handler

import (
	"fmt"
	"net/http"

	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"github.com/gorilla/mux"
)

// ListQuestions params: groupId, authorId, votedBy (questions upvotées par cet utilisateur), limit
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	questions, err := h.Questions.ListQuestions(r.Context(), model.QuestionFilter{
		GroupID:  q.Get("groupId"),
		AuthorID: q.Get("authorId"),
		VotedBy:  q.Get("votedBy"),
		Limit:    utils.QueryInt(r, "limit", 50, 100),
	})
	if err != nil {
		utils.ErrorFrom(w, "could not list questions", err)
		return
	}
	utils.Success(w, questions)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req model.CreateQuestionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.GroupID != nil {
		if _, err := h.Groups.GetGroup(ctx, *req.GroupID); err != nil {
			utils.ErrorFrom(w, "group not found", err)
			return
		}
	}

	question, err := h.Questions.CreateQuestion(ctx, user.ID, req)
	if err != nil {
		utils.ErrorFrom(w, "could not create question", err)
		return
	}

	leveledUp := h.award(ctx, user.ID, gamification.PointsQuestionAsked, gamification.ReasonQuestionAsked)
	utils.Created(w, map[string]interface{}{"question": question, "leveledUp": leveledUp})
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := h.Questions.GetQuestion(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ErrorFrom(w, "question not found", err)
		return
	}
	utils.Success(w, question)
}

// DeleteQuestion réservé à l'auteur
func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Questions.DeleteQuestion(r.Context(), mux.Vars(r)["id"], user.ID); err != nil {
		utils.ErrorFrom(w, "could not delete question", err)
		return
	}
	utils.Message(w, "question deleted")
}

// SubmitAnswer ajoute une réponse, attribue les points et prévient l'auteur de la question
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	questionID := mux.Vars(r)["id"]

	var req model.CreateAnswerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.Questions.GetQuestion(ctx, questionID)
	if err != nil {
		utils.ErrorFrom(w, "question not found", err)
		return
	}

	answer, err := h.Questions.AddAnswer(ctx, questionID, user.ID, req.Body)
	if err != nil {
		utils.ErrorFrom(w, "could not add answer", err)
		return
	}

	leveledUp := h.award(ctx, user.ID, gamification.PointsAnswerSubmitted, gamification.ReasonAnswerSubmitted)

	if question.AuthorID != user.ID {
		h.Gamification.Notify(ctx, model.Notification{
			UserID:  question.AuthorID,
			Type:    model.NotificationAnswerReceived,
			Title:   "New answer",
			Message: fmt.Sprintf("%s answered \"%s\".", user.Name, question.Title),
			Data: map[string]interface{}{
				"questionId": questionID,
				"answerId":   answer.ID,
				"authorId":   user.ID,
			},
		})
	}

	utils.Created(w, map[string]interface{}{"answer": answer, "leveledUp": leveledUp})
}
