package model

import "time"

type Group struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedBy   string       `json:"createdBy"`
	Members     int          `json:"members"`
	Creator     *UserCreator `json:"creator,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type Post struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"groupId"`
	AuthorID      string    `json:"authorId"`
	Content       string    `json:"content"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=80"`
	Description string `json:"description" validate:"max=1000"`
}

type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}
