package voting

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/sourcegraph/conc"
)

const rewardTimeout = 10 * time.Second

// QuestionStore lit une question et écrit ses champs de vote.
// Les écritures échouent avec apperrors.ErrConflict si la version stockée
// n'est plus expectedVersion; en cas de succès la version est incrémentée.
type QuestionStore interface {
	GetQuestion(ctx context.Context, questionID string) (*model.Question, error)
	UpdateQuestionVotes(ctx context.Context, questionID string, expectedVersion int, upvotedBy, downvotedBy []string, votes int) error
	UpdateAnswers(ctx context.Context, questionID string, expectedVersion int, answers []model.Answer) error
}

// Awarder attribue des points à l'auteur d'un contenu voté
type Awarder interface {
	AwardPoints(ctx context.Context, userID string, points int, reason gamification.Reason) (bool, error)
}

// Notifier crée une notification pour l'auteur d'un contenu voté
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// Service applique les votes: verrou, lecture, mise à jour optimiste, écriture
// conditionnelle, puis notification et points de l'auteur en arrière-plan.
type Service struct {
	questions QuestionStore
	awards    Awarder
	notifier  Notifier
	guard     Guard
	wg        conc.WaitGroup
}

func NewService(questions QuestionStore, awards Awarder, notifier Notifier, guard Guard) *Service {
	return &Service{
		questions: questions,
		awards:    awards,
		notifier:  notifier,
		guard:     guard,
	}
}

// QuestionOutcome état de la question après le vote. Reverted indique que
// l'écriture a échoué et que Question est l'état rechargé depuis le store.
type QuestionOutcome struct {
	Question  *model.Question `json:"question"`
	Direction Direction       `json:"direction"`
	Upvoted   bool            `json:"upvoted"`
	Downvoted bool            `json:"downvoted"`
	Reverted  bool            `json:"reverted"`
}

type AnswerOutcome struct {
	QuestionID string        `json:"questionId"`
	Answer     *model.Answer `json:"answer"`
	Voted      bool          `json:"voted"`
	Reverted   bool          `json:"reverted"`
}

// VoteQuestion applique le vote de voterID sur une question
func (s *Service) VoteQuestion(ctx context.Context, questionID, voterID string, dir Direction) (*QuestionOutcome, error) {
	if dir != Up && dir != Down {
		return nil, fmt.Errorf("%w: unknown vote direction %q", apperrors.ErrInvalidInput, dir)
	}

	release, err := s.guard.Acquire(ctx, guardKey("question", questionID, voterID))
	if err != nil {
		return nil, err
	}
	defer release()

	confirmed, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("load question %s: %w", questionID, err)
	}

	next := *confirmed
	next.UpvotedBy, next.DownvotedBy, next.Votes = ApplyVoteToggle(confirmed.UpvotedBy, confirmed.DownvotedBy, voterID, dir)
	next.Version = confirmed.Version + 1

	view := NewView(*confirmed)
	err = view.Apply(ctx, next,
		func(ctx context.Context, q model.Question) error {
			return s.questions.UpdateQuestionVotes(ctx, questionID, confirmed.Version, q.UpvotedBy, q.DownvotedBy, q.Votes)
		},
		func(ctx context.Context) (model.Question, error) {
			q, err := s.questions.GetQuestion(ctx, questionID)
			if err != nil {
				return model.Question{}, err
			}
			return *q, nil
		},
	)

	state := view.State()
	outcome := &QuestionOutcome{
		Question:  &state,
		Direction: dir,
		Upvoted:   slices.Contains(state.UpvotedBy, voterID),
		Downvoted: slices.Contains(state.DownvotedBy, voterID),
	}
	if err != nil {
		outcome.Reverted = true
		return outcome, fmt.Errorf("%w: vote on question %s: %w", apperrors.ErrWriteFailure, questionID, err)
	}

	newUpvote := dir == Up && outcome.Upvoted && !slices.Contains(confirmed.UpvotedBy, voterID)
	if newUpvote && voterID != confirmed.AuthorID {
		s.rewardAuthor(ctx, model.Notification{
			UserID:  confirmed.AuthorID,
			Type:    model.NotificationQuestionUpvoted,
			Title:   "Your question was upvoted",
			Message: fmt.Sprintf("Someone found \"%s\" useful.", confirmed.Title),
			Data: map[string]interface{}{
				"questionId": questionID,
				"voterId":    voterID,
			},
		}, gamification.PointsQuestionUpvoted, gamification.ReasonQuestionUpvoted)
	}

	return outcome, nil
}

// VoteAnswer inverse le vote de voterID sur une réponse
func (s *Service) VoteAnswer(ctx context.Context, questionID, answerID, voterID string) (*AnswerOutcome, error) {
	release, err := s.guard.Acquire(ctx, guardKey("answer", questionID+"/"+answerID, voterID))
	if err != nil {
		return nil, err
	}
	defer release()

	confirmed, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("load question %s: %w", questionID, err)
	}

	idx := confirmed.FindAnswer(answerID)
	if idx < 0 {
		return nil, fmt.Errorf("answer %s of question %s: %w", answerID, questionID, apperrors.ErrNotFound)
	}
	original := confirmed.Answers[idx]

	next := *confirmed
	next.Answers = slices.Clone(confirmed.Answers)
	answer := original
	var added bool
	answer.VotedBy, answer.Votes, added = ToggleVoter(original.VotedBy, original.Votes, voterID)
	next.Answers[idx] = answer
	next.Version = confirmed.Version + 1

	view := NewView(*confirmed)
	err = view.Apply(ctx, next,
		func(ctx context.Context, q model.Question) error {
			return s.questions.UpdateAnswers(ctx, questionID, confirmed.Version, q.Answers)
		},
		func(ctx context.Context) (model.Question, error) {
			q, err := s.questions.GetQuestion(ctx, questionID)
			if err != nil {
				return model.Question{}, err
			}
			return *q, nil
		},
	)

	state := view.State()
	outcome := &AnswerOutcome{QuestionID: questionID}
	if i := state.FindAnswer(answerID); i >= 0 {
		a := state.Answers[i]
		outcome.Answer = &a
		outcome.Voted = slices.Contains(a.VotedBy, voterID)
	}
	if err != nil {
		outcome.Reverted = true
		return outcome, fmt.Errorf("%w: vote on answer %s: %w", apperrors.ErrWriteFailure, answerID, err)
	}

	if added && voterID != original.AuthorID {
		s.rewardAuthor(ctx, model.Notification{
			UserID:  original.AuthorID,
			Type:    model.NotificationAnswerUpvoted,
			Title:   "Your answer was upvoted",
			Message: fmt.Sprintf("Your answer to \"%s\" received a vote.", confirmed.Title),
			Data: map[string]interface{}{
				"questionId": questionID,
				"answerId":   answerID,
				"voterId":    voterID,
			},
		}, gamification.PointsAnswerUpvoted, gamification.ReasonAnswerUpvoted)
	}

	return outcome, nil
}

// Wait attend la fin des notifications et attributions en cours
func (s *Service) Wait() {
	if r := s.wg.WaitAndRecover(); r != nil {
		logger.Error("panic in vote side effect: %v", r.Value)
	}
}

// rewardAuthor notifie l'auteur puis lui attribue points, sans bloquer l'appelant
func (s *Service) rewardAuthor(ctx context.Context, n model.Notification, points int, reason gamification.Reason) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, rewardTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, n); err != nil {
			logger.Warning("%v: %s -> %s: %v", apperrors.ErrNotificationFailure, n.Type, n.UserID, err)
		}
		if _, err := s.awards.AwardPoints(ctx, n.UserID, points, reason); err != nil {
			logger.Warning("award %d points to %s (%s): %v", points, n.UserID, reason, err)
		}
	})
}
