package utils

import (
	"encoding/json"
	"net/http"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("encode response: %v", err)
	}
}

// Success renvoie data avec le status 200
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Created renvoie data avec le status 201
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, APIResponse{Success: true, Data: data})
}

// Error renvoie un message d'erreur; err (optionnel) est seulement loggée
func Error(w http.ResponseWriter, status int, msg string, err ...error) {
	if len(err) > 0 && err[0] != nil {
		logger.Error("[%d] %s: %v", status, msg, err[0])
	} else {
		logger.Warning("[%d] %s", status, msg)
	}
	JSON(w, status, APIResponse{Success: false, Error: msg})
}

// ErrorFrom choisit le status HTTP à partir de l'erreur métier
func ErrorFrom(w http.ResponseWriter, msg string, err error) {
	Error(w, apperrors.HTTPStatus(err), msg, err)
}

// ErrorWithData renvoie une erreur accompagnée de l'état courant (ex: vote annulé)
func ErrorWithData(w http.ResponseWriter, msg string, err error, data interface{}) {
	status := apperrors.HTTPStatus(err)
	logger.Error("[%d] %s: %v", status, msg, err)
	JSON(w, status, APIResponse{Success: false, Error: msg, Data: data})
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}
