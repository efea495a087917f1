package gamification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	mu        sync.Mutex
	scores    map[string]*model.UserScore
	updateErr error
}

func newFakeUsers(scores ...model.UserScore) *fakeUsers {
	f := &fakeUsers{scores: map[string]*model.UserScore{}}
	for i := range scores {
		s := scores[i]
		f.scores[s.UserID] = &s
	}
	return f
}

func (f *fakeUsers) GetUserScore(_ context.Context, userID string) (*model.UserScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.scores[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeUsers) ApplyUserPoints(_ context.Context, userID string, points int, levelFor func(int) int) (*model.UserScore, *model.UserScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.scores[userID]
	if !ok {
		return nil, nil, apperrors.ErrNotFound
	}
	if f.updateErr != nil {
		return nil, nil, f.updateErr
	}
	before := *s
	s.Score += points
	s.Level = levelFor(s.Score)
	after := *s
	return &before, &after, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []model.Notification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, n model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestAwardPointsWithoutLevelUp(t *testing.T) {
	users := newFakeUsers(model.UserScore{UserID: "u1", Score: 0, Level: 1})
	notifier := &fakeNotifier{}
	svc := NewService(users, notifier)

	leveledUp, err := svc.AwardPoints(context.Background(), "u1", 7, ReasonQuestionAsked)
	require.NoError(t, err)
	svc.Wait()

	assert.False(t, leveledUp)
	assert.Equal(t, 7, users.scores["u1"].Score)
	assert.Equal(t, 1, users.scores["u1"].Level)
	assert.Equal(t, 0, notifier.count())
}

func TestAwardPointsLevelUpEmitsOneNotification(t *testing.T) {
	users := newFakeUsers(model.UserScore{UserID: "u1", Score: 10, Level: 1})
	notifier := &fakeNotifier{}
	svc := NewService(users, notifier)

	leveledUp, err := svc.AwardPoints(context.Background(), "u1", 5, ReasonAnswerSubmitted)
	require.NoError(t, err)
	svc.Wait()

	assert.True(t, leveledUp)
	assert.Equal(t, 15, users.scores["u1"].Score)
	assert.Equal(t, 2, users.scores["u1"].Level)

	require.Equal(t, 1, notifier.count())
	n := notifier.sent[0]
	assert.Equal(t, "u1", n.UserID)
	assert.Equal(t, model.NotificationLevelUp, n.Type)
	assert.Equal(t, 2, n.Data["level"])
	assert.Equal(t, "🌱", n.Data["trophy"])
	assert.Equal(t, "Newcomer", n.Data["title"])
}

func TestAwardPointsUnknownUser(t *testing.T) {
	svc := NewService(newFakeUsers(), &fakeNotifier{})

	_, err := svc.AwardPoints(context.Background(), "ghost", 3, ReasonGroupJoined)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAwardPointsWriteFailureEmitsNothing(t *testing.T) {
	users := newFakeUsers(model.UserScore{UserID: "u1", Score: 10, Level: 1})
	users.updateErr = errors.New("connection reset")
	notifier := &fakeNotifier{}
	svc := NewService(users, notifier)

	leveledUp, err := svc.AwardPoints(context.Background(), "u1", 50, ReasonGroupCreated)
	svc.Wait()

	require.ErrorIs(t, err, apperrors.ErrWriteFailure)
	assert.False(t, leveledUp)
	assert.Equal(t, 10, users.scores["u1"].Score)
	assert.Equal(t, 0, notifier.count())
}

func TestAwardPointsNotificationFailureKeepsScore(t *testing.T) {
	users := newFakeUsers(model.UserScore{UserID: "u1", Score: 10, Level: 1})
	notifier := &fakeNotifier{err: errors.New("inbox unavailable")}
	svc := NewService(users, notifier)

	leveledUp, err := svc.AwardPoints(context.Background(), "u1", 5, ReasonAnswerSubmitted)
	svc.Wait()

	require.NoError(t, err)
	assert.True(t, leveledUp)
	assert.Equal(t, 15, users.scores["u1"].Score)
	assert.Equal(t, 2, users.scores["u1"].Level)
}

func TestAwardPointsNotificationSurvivesCancelledContext(t *testing.T) {
	users := newFakeUsers(model.UserScore{UserID: "u1", Score: 11, Level: 1})
	notifier := &fakeNotifier{}
	svc := NewService(users, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := svc.AwardPoints(ctx, "u1", 1, ReasonPostCreated)
	cancel()
	svc.Wait()

	require.NoError(t, err)
	assert.Equal(t, 1, notifier.count())
}

func TestAwardPointsConcurrentAwardsAllLand(t *testing.T) {
	users := newFakeUsers(model.UserScore{UserID: "u1", Score: 0, Level: 1})
	notifier := &fakeNotifier{}
	svc := NewService(users, notifier)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AwardPoints(context.Background(), "u1", PointsQuestionUpvoted, ReasonQuestionUpvoted)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	svc.Wait()

	assert.Equal(t, 40, users.scores["u1"].Score)
	assert.Equal(t, CalculateLevel(40), users.scores["u1"].Level)
	// un seul passage par niveau franchi (2 à 6)
	assert.Equal(t, CalculateLevel(40)-1, notifier.count())
}

func TestProgress(t *testing.T) {
	svc := NewService(newFakeUsers(model.UserScore{UserID: "u1", Score: 15, Level: 2}), &fakeNotifier{})

	p, err := svc.Progress(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Level)
	assert.InDelta(t, 50.0, p.Percent, 1e-9)

	_, err = svc.Progress(context.Background(), "nobody")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
