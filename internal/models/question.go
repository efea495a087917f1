package model

import "time"

// Question est un document de Q&A avec ses votes et ses réponses embarquées
type Question struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	GroupID     *string   `json:"groupId,omitempty"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Tags        []string  `json:"tags"`
	UpvotedBy   []string  `json:"upvotedBy"`
	DownvotedBy []string  `json:"downvotedBy"`
	Votes       int       `json:"votes"`
	Answers     []Answer  `json:"answers"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Answer est stockée dans le tableau answers de la question
type Answer struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	Votes     int       `json:"votes"`
	VotedBy   []string  `json:"votedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// FindAnswer retourne l'index de la réponse, -1 si absente
func (q *Question) FindAnswer(answerID string) int {
	for i := range q.Answers {
		if q.Answers[i].ID == answerID {
			return i
		}
	}
	return -1
}

type CreateQuestionRequest struct {
	Title   string   `json:"title" validate:"required,min=5,max=200"`
	Body    string   `json:"body" validate:"required"`
	GroupID *string  `json:"groupId,omitempty" validate:"omitempty,uuid"`
	Tags    []string `json:"tags,omitempty" validate:"max=10,dive,min=1,max=30"`
}

type CreateAnswerRequest struct {
	Body string `json:"body" validate:"required"`
}

type VoteRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// QuestionFilter filtres de la liste des questions
type QuestionFilter struct {
	GroupID  string
	AuthorID string
	VotedBy  string
	Limit    int
}
