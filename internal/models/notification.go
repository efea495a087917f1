package model

import "time"

type NotificationType string

const (
	NotificationLevelUp         NotificationType = "level_up"
	NotificationQuestionUpvoted NotificationType = "question_upvoted"
	NotificationAnswerUpvoted   NotificationType = "answer_upvoted"
	NotificationAnswerReceived  NotificationType = "answer_received"
)

// Notification est un événement de la boîte de réception d'un utilisateur
type Notification struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"createdAt"`
}
