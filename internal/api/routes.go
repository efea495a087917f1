package api

import (
	"net/http"

	"github.com/MassBabyGeek/StudyHub-backend/internal/handler"
	"github.com/MassBabyGeek/StudyHub-backend/internal/middleware"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

// SetupRouter déclare toutes les routes; les routes authentifiées passent par middleware.Auth
func SetupRouter(h *handler.Handler, sessions middleware.SessionLookup) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth(sessions))

	authenticated := r.NewRoute().Subrouter()
	authenticated.Use(middleware.Auth(sessions))

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	authenticated.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)

	// Users
	r.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/progress", h.GetUserProgress).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/report", h.GetUserReport).Methods(http.MethodGet)
	authenticated.HandleFunc("/users/{id}/avatar", h.UploadAvatar).Methods(http.MethodPost)

	// Groups & posts
	authenticated.HandleFunc("/groups", h.CreateGroup).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id}", h.GetGroup).Methods(http.MethodGet)
	authenticated.HandleFunc("/groups/{id}/join", h.JoinGroup).Methods(http.MethodPost)
	authenticated.HandleFunc("/groups/{id}/posts", h.CreatePost).Methods(http.MethodPost)
	authenticated.HandleFunc("/posts/{id}/attachment", h.UploadPostAttachment).Methods(http.MethodPost)
	authenticated.HandleFunc("/posts/{id}/attachment", h.RemovePostAttachment).Methods(http.MethodDelete)

	// Questions & answers
	r.HandleFunc("/questions", h.ListQuestions).Methods(http.MethodGet)
	authenticated.HandleFunc("/questions", h.CreateQuestion).Methods(http.MethodPost)
	r.HandleFunc("/questions/{id}", h.GetQuestion).Methods(http.MethodGet)
	authenticated.HandleFunc("/questions/{id}", h.DeleteQuestion).Methods(http.MethodDelete)
	authenticated.HandleFunc("/questions/{id}/vote", h.VoteQuestion).Methods(http.MethodPost)
	authenticated.HandleFunc("/questions/{id}/answers", h.SubmitAnswer).Methods(http.MethodPost)
	authenticated.HandleFunc("/questions/{id}/answers/{answerId}/vote", h.VoteAnswer).Methods(http.MethodPost)

	// Notifications
	authenticated.HandleFunc("/notifications", h.ListNotifications).Methods(http.MethodGet)
	authenticated.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods(http.MethodPost)

	// Leaderboard
	r.HandleFunc("/leaderboard", h.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/users/{userId}", h.GetUserRank).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		utils.Error(w, http.StatusNotFound, "route not found: "+req.Method+" "+req.URL.Path)
	})

	printRoutes(r)
	return middleware.CORSMiddleware(middleware.LoggerMiddleware(r))
}

// printRoutes affiche les routes enregistrées au démarrage
func printRoutes(r *mux.Router) {
	methodColor := color.New(color.FgMagenta, color.Bold)
	pathColor := color.New(color.FgCyan)

	_ = r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		for _, m := range methods {
			methodColor.Printf("%-7s", m)
			pathColor.Println(path)
		}
		return nil
	})
}
