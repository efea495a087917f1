package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/sourcegraph/conc"
)

// Reason explique pourquoi des points sont attribués
type Reason string

const (
	ReasonPostCreated     Reason = "post_created"
	ReasonGroupCreated    Reason = "group_created"
	ReasonGroupJoined     Reason = "group_joined"
	ReasonQuestionAsked   Reason = "question_asked"
	ReasonAnswerSubmitted Reason = "answer_submitted"
	ReasonQuestionUpvoted Reason = "question_upvoted"
	ReasonAnswerUpvoted   Reason = "answer_upvoted"
)

// Points attribués par action
const (
	PointsPostCreated     = 1
	PointsGroupCreated    = 10
	PointsGroupJoined     = 3
	PointsQuestionAsked   = 7
	PointsAnswerSubmitted = 5
	PointsQuestionUpvoted = 2
	PointsAnswerUpvoted   = 2
)

const notifyTimeout = 10 * time.Second

// UserStore lit et écrit le score d'un utilisateur
type UserStore interface {
	GetUserScore(ctx context.Context, userID string) (*model.UserScore, error)
	// ApplyUserPoints ajoute points au score et recalcule level avec levelFor, sous
	// verrou de ligne: deux attributions concurrentes s'appliquent l'une après l'autre.
	// Retourne l'état avant et après l'écriture.
	ApplyUserPoints(ctx context.Context, userID string, points int, levelFor func(score int) int) (before, after *model.UserScore, err error)
}

// Notifier crée une notification dans la boîte de réception d'un utilisateur
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// Service applique les attributions de points et détecte les passages de niveau
type Service struct {
	users    UserStore
	notifier Notifier
	wg       conc.WaitGroup
}

func NewService(users UserStore, notifier Notifier) *Service {
	return &Service{users: users, notifier: notifier}
}

// AwardPoints ajoute points au score de userID et retourne true si l'utilisateur
// a changé de niveau. La notification de niveau part en arrière-plan, après
// l'écriture du score; son échec est seulement loggé.
func (s *Service) AwardPoints(ctx context.Context, userID string, points int, reason Reason) (bool, error) {
	before, after, err := s.users.ApplyUserPoints(ctx, userID, points, CalculateLevel)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, fmt.Errorf("update score of %s: %w", userID, err)
		}
		return false, fmt.Errorf("%w: update score of %s: %w", apperrors.ErrWriteFailure, userID, err)
	}

	logger.Info("+%d points pour %s (%s) -> score=%d level=%d", points, userID, reason, after.Score, after.Level)

	if after.Level <= before.Level {
		return false, nil
	}

	s.emit(ctx, LevelUpNotification(userID, after.Level))
	return true, nil
}

// Progress retourne la progression de userID à partir de son score stocké
func (s *Service) Progress(ctx context.Context, userID string) (*Progress, error) {
	current, err := s.users.GetUserScore(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load score of %s: %w", userID, err)
	}
	p := ProgressFor(userID, current.Score)
	return &p, nil
}

// Notify envoie n en arrière-plan (fire-and-forget)
func (s *Service) Notify(ctx context.Context, n model.Notification) {
	s.emit(ctx, n)
}

// Wait attend la fin des notifications en cours
func (s *Service) Wait() {
	if r := s.wg.WaitAndRecover(); r != nil {
		logger.Error("panic in notification goroutine: %v", r.Value)
	}
}

func (s *Service) emit(ctx context.Context, n model.Notification) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, n); err != nil {
			logger.Warning("%v: %s -> %s: %v", apperrors.ErrNotificationFailure, n.Type, n.UserID, err)
		}
	})
}

// LevelUpNotification construit la notification de passage au niveau level
func LevelUpNotification(userID string, level int) model.Notification {
	rank := RankFor(level)
	return model.Notification{
		UserID:  userID,
		Type:    model.NotificationLevelUp,
		Title:   fmt.Sprintf("%s Level %d reached!", rank.Trophy, level),
		Message: fmt.Sprintf("You are now a %s. Keep learning!", rank.Title),
		Data: map[string]interface{}{
			"level":  level,
			"trophy": rank.Trophy,
			"title":  rank.Title,
		},
	}
}
