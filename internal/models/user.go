package model

import (
	"time"
)

// DateFields contient les champs d'audit standard
type DateFields struct {
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Role d'un utilisateur sur la plateforme
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

type UserProfile struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar,omitempty"`
	Bio      string    `json:"bio,omitempty"`
	Role     Role      `json:"role"`
	Score    int       `json:"score"`
	Level    int       `json:"level"`
	JoinDate time.Time `json:"joinDate,omitempty"`
	DateFields
}

// UserScore est le sous-ensemble du profil utilisé par le moteur de niveaux
type UserScore struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
	Level  int    `json:"level"`
}

// UserCreator contient les informations publiques de l'auteur d'une entité
type UserCreator struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// SignupRequest payload d'inscription
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"omitempty,oneof=student teacher"`
}

// LoginRequest payload de connexion
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
