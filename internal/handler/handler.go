package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	"github.com/MassBabyGeek/StudyHub-backend/internal/middleware"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"github.com/MassBabyGeek/StudyHub-backend/internal/voting"
)

// UserStore comptes, profils et classement
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash, avatar string, role model.Role) (*model.UserProfile, error)
	GetUserByID(ctx context.Context, userID string) (*model.UserProfile, error)
	LoadCreator(ctx context.Context, userID string) (*model.UserCreator, error)
	GetUserCredentials(ctx context.Context, email string) (*model.UserProfile, string, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	UserRank(ctx context.Context, userID string) (*model.UserRank, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, userID, ip, userAgent string, ttl time.Duration) (*model.Session, error)
	InvalidateSession(ctx context.Context, token string) error
}

// GroupStore groupes, membres et posts
type GroupStore interface {
	CreateGroup(ctx context.Context, creatorID string, req model.CreateGroupRequest) (*model.Group, error)
	GetGroup(ctx context.Context, groupID string) (*model.Group, error)
	JoinGroup(ctx context.Context, groupID, userID string) (bool, error)
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	CreatePost(ctx context.Context, groupID, authorID, content string) (*model.Post, error)
	GetPost(ctx context.Context, postID string) (*model.Post, error)
	SetPostAttachment(ctx context.Context, postID, url string) error
}

type QuestionStore interface {
	CreateQuestion(ctx context.Context, authorID string, req model.CreateQuestionRequest) (*model.Question, error)
	GetQuestion(ctx context.Context, questionID string) (*model.Question, error)
	ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error)
	DeleteQuestion(ctx context.Context, questionID, authorID string) error
	AddAnswer(ctx context.Context, questionID, authorID, body string) (*model.Answer, error)
}

type NotificationStore interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error
}

// Gamification points, progression et notifications en arrière-plan
type Gamification interface {
	AwardPoints(ctx context.Context, userID string, points int, reason gamification.Reason) (bool, error)
	Progress(ctx context.Context, userID string) (*gamification.Progress, error)
	Notify(ctx context.Context, n model.Notification)
}

type Voter interface {
	VoteQuestion(ctx context.Context, questionID, voterID string, dir voting.Direction) (*voting.QuestionOutcome, error)
	VoteAnswer(ctx context.Context, questionID, answerID, voterID string) (*voting.AnswerOutcome, error)
}

// MediaUploader stockage des images (Cloudinary)
type MediaUploader interface {
	UploadAvatar(ctx context.Context, file io.Reader, userID string) (string, error)
	UploadPostAttachment(ctx context.Context, file io.Reader, postID string) (string, error)
	DeletePostAttachment(ctx context.Context, postID string) error
}

type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Deps dépendances injectées dans les handlers; Media et PDF sont optionnels
type Deps struct {
	Users           UserStore
	Sessions        SessionStore
	Groups          GroupStore
	Questions       QuestionStore
	Notifications   NotificationStore
	Gamification    Gamification
	Votes           Voter
	Media           MediaUploader
	PDF             PDFRenderer
	SessionDuration time.Duration
}

type Handler struct {
	Deps
}

func New(deps Deps) *Handler {
	if deps.SessionDuration <= 0 {
		deps.SessionDuration = 24 * time.Hour
	}
	return &Handler{Deps: deps}
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}

// currentUser renvoie 401 si la requête n'est pas authentifiée
func currentUser(w http.ResponseWriter, r *http.Request) (model.UserProfile, bool) {
	user, ok := middleware.GetUserFromContext(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
	}
	return user, ok
}

// award attribue des points après une action; un échec est loggé sans faire échouer la requête
func (h *Handler) award(ctx context.Context, userID string, points int, reason gamification.Reason) bool {
	leveledUp, err := h.Gamification.AwardPoints(ctx, userID, points, reason)
	if err != nil {
		logger.Warning("award %d points to %s (%s): %v", points, userID, reason, err)
		return false
	}
	return leveledUp
}
