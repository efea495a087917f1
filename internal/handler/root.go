package handler

import (
	"net/http"

	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
)

type route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, map[string]interface{}{
		"name":    "StudyHub API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string][]route{
			"auth": {
				{"POST", "/auth/signup", "Inscription utilisateur"},
				{"POST", "/auth/login", "Connexion utilisateur"},
				{"POST", "/auth/logout", "Déconnexion utilisateur"},
			},
			"users": {
				{"GET", "/users/{id}", "Profil et progression"},
				{"GET", "/users/{id}/progress", "Niveau, seuil suivant et pourcentage"},
				{"GET", "/users/{id}/report", "Bilan de progression en PDF (format=html pour le HTML)"},
				{"POST", "/users/{id}/avatar", "Upload avatar utilisateur"},
			},
			"groups": {
				{"POST", "/groups", "Créer un groupe (+10 points)"},
				{"GET", "/groups/{id}", "Récupérer un groupe"},
				{"POST", "/groups/{id}/join", "Rejoindre un groupe (+3 points)"},
				{"POST", "/groups/{id}/posts", "Publier dans un groupe (+1 point)"},
				{"POST", "/posts/{id}/attachment", "Joindre une image à un post"},
				{"DELETE", "/posts/{id}/attachment", "Retirer l'image d'un post"},
			},
			"questions": {
				{"GET", "/questions", "Lister les questions (params: groupId, authorId, votedBy, limit)"},
				{"POST", "/questions", "Poser une question (+7 points)"},
				{"GET", "/questions/{id}", "Récupérer une question"},
				{"DELETE", "/questions/{id}", "Supprimer sa question"},
				{"POST", "/questions/{id}/vote", "Voter pour une question (direction: up/down)"},
				{"POST", "/questions/{id}/answers", "Répondre à une question (+5 points)"},
				{"POST", "/questions/{id}/answers/{answerId}/vote", "Voter pour une réponse"},
			},
			"notifications": {
				{"GET", "/notifications", "Notifications de l'utilisateur (params: unread, limit)"},
				{"POST", "/notifications/{id}/read", "Marquer une notification comme lue"},
			},
			"leaderboard": {
				{"GET", "/leaderboard", "Classement par score (params: limit)"},
				{"GET", "/leaderboard/users/{userId}", "Rang d'un utilisateur"},
			},
			"health": {
				{"GET", "/health", "Health check de l'API"},
			},
		},
	})
}
