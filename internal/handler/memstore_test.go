package handler_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
)

type userRecord struct {
	profile model.UserProfile
	hash    string
}

// memStore implémente en mémoire toutes les interfaces de stockage de l'API
type memStore struct {
	mu            sync.Mutex
	seq           int
	users         map[string]*userRecord
	sessions      map[string]string
	groups        map[string]model.Group
	members       map[string]map[string]bool
	posts         map[string]model.Post
	questions     map[string]model.Question
	notifications []model.Notification

	voteWriteErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]*userRecord{},
		sessions:  map[string]string{},
		groups:    map[string]model.Group{},
		members:   map[string]map[string]bool{},
		posts:     map[string]model.Post{},
		questions: map[string]model.Question{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) CreateUser(_ context.Context, name, email, hash, avatar string, role model.Role) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.profile.Email == email {
			return nil, apperrors.ErrConflict
		}
	}
	if role == "" {
		role = model.RoleStudent
	}
	p := model.UserProfile{ID: m.nextID("user"), Name: name, Email: email, Avatar: avatar, Role: role, Level: 1, JoinDate: time.Now()}
	m.users[p.ID] = &userRecord{profile: p, hash: hash}
	return &p, nil
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	p := u.profile
	return &p, nil
}

func (m *memStore) LoadCreator(_ context.Context, id string) (*model.UserCreator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &model.UserCreator{ID: u.profile.ID, Name: u.profile.Name, Avatar: u.profile.Avatar}, nil
}

func (m *memStore) GetUserCredentials(_ context.Context, email string) (*model.UserProfile, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.profile.Email == email {
			p := u.profile
			return &p, u.hash, nil
		}
	}
	return nil, "", apperrors.ErrNotFound
}

func (m *memStore) UpdateAvatar(_ context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.profile.Avatar = url
	return nil
}

func (m *memStore) GetUserScore(_ context.Context, id string) (*model.UserScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &model.UserScore{UserID: id, Score: u.profile.Score, Level: u.profile.Level}, nil
}

func (m *memStore) ApplyUserPoints(_ context.Context, id string, points int, levelFor func(int) int) (*model.UserScore, *model.UserScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil, apperrors.ErrNotFound
	}
	before := model.UserScore{UserID: id, Score: u.profile.Score, Level: u.profile.Level}
	u.profile.Score += points
	u.profile.Level = levelFor(u.profile.Score)
	return &before, &model.UserScore{UserID: id, Score: u.profile.Score, Level: u.profile.Level}, nil
}

func (m *memStore) ranked() []model.UserProfile {
	list := make([]model.UserProfile, 0, len(m.users))
	for _, u := range m.users {
		list = append(list, u.profile)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (m *memStore) Leaderboard(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := []model.LeaderboardEntry{}
	for i, p := range m.ranked() {
		if i == limit {
			break
		}
		rank := gamification.RankFor(p.Level)
		entries = append(entries, model.LeaderboardEntry{
			UserID: p.ID, UserName: p.Name, Rank: i + 1, Score: p.Score, Level: p.Level,
			Trophy: rank.Trophy, Title: rank.Title,
		})
	}
	return entries, nil
}

func (m *memStore) UserRank(_ context.Context, id string) (*model.UserRank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.ranked()
	for i, p := range list {
		if p.ID == id {
			return &model.UserRank{UserID: id, Rank: i + 1, Score: p.Score, TotalUsers: len(list),
				Percentile: float64(i+1) / float64(len(list)) * 100}, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) CreateSession(_ context.Context, userID, ip, ua string, ttl time.Duration) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := m.nextID("token")
	m.sessions[token] = userID
	return &model.Session{ID: token, UserID: userID, Token: token, IsActive: true, ExpiresAt: time.Now().Add(ttl)}, nil
}

func (m *memStore) InvalidateSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[token]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.sessions, token)
	return nil
}

func (m *memStore) UserByToken(_ context.Context, token string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.sessions[token]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	p := m.users[id].profile
	return &p, nil
}

func (m *memStore) CreateGroup(_ context.Context, creatorID string, req model.CreateGroupRequest) (*model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := model.Group{ID: m.nextID("group"), Name: req.Name, Description: req.Description, CreatedBy: creatorID, Members: 1, CreatedAt: time.Now()}
	m.groups[g.ID] = g
	m.members[g.ID] = map[string]bool{creatorID: true}
	return &g, nil
}

func (m *memStore) GetGroup(_ context.Context, id string) (*model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	g.Members = len(m.members[id])
	return &g, nil
}

func (m *memStore) JoinGroup(_ context.Context, groupID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.groups[groupID]; !ok {
		return false, apperrors.ErrNotFound
	}
	if m.members[groupID][userID] {
		return false, nil
	}
	m.members[groupID][userID] = true
	return true, nil
}

func (m *memStore) IsMember(_ context.Context, groupID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[groupID][userID], nil
}

func (m *memStore) CreatePost(_ context.Context, groupID, authorID, content string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := model.Post{ID: m.nextID("post"), GroupID: groupID, AuthorID: authorID, Content: content, CreatedAt: time.Now()}
	m.posts[p.ID] = p
	return &p, nil
}

func (m *memStore) GetPost(_ context.Context, id string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) SetPostAttachment(_ context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.AttachmentURL = url
	m.posts[id] = p
	return nil
}

func cloneQuestion(q model.Question) model.Question {
	q.Tags = slices.Clone(q.Tags)
	q.UpvotedBy = slices.Clone(q.UpvotedBy)
	q.DownvotedBy = slices.Clone(q.DownvotedBy)
	q.Answers = slices.Clone(q.Answers)
	for i := range q.Answers {
		q.Answers[i].VotedBy = slices.Clone(q.Answers[i].VotedBy)
	}
	return q
}

func (m *memStore) CreateQuestion(_ context.Context, authorID string, req model.CreateQuestionRequest) (*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := model.Question{
		ID: m.nextID("question"), AuthorID: authorID, GroupID: req.GroupID, Title: req.Title, Body: req.Body,
		Tags: append([]string{}, req.Tags...), UpvotedBy: []string{}, DownvotedBy: []string{}, Answers: []model.Answer{},
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.questions[q.ID] = q
	out := cloneQuestion(q)
	return &out, nil
}

func (m *memStore) GetQuestion(_ context.Context, id string) (*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneQuestion(q)
	return &out, nil
}

func (m *memStore) ListQuestions(_ context.Context, f model.QuestionFilter) ([]model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Question{}
	for _, q := range m.questions {
		if f.GroupID != "" && (q.GroupID == nil || *q.GroupID != f.GroupID) {
			continue
		}
		if f.AuthorID != "" && q.AuthorID != f.AuthorID {
			continue
		}
		if f.VotedBy != "" && !slices.Contains(q.UpvotedBy, f.VotedBy) {
			continue
		}
		out = append(out, cloneQuestion(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) DeleteQuestion(_ context.Context, id, authorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if q.AuthorID != authorID {
		return apperrors.ErrForbidden
	}
	delete(m.questions, id)
	return nil
}

func (m *memStore) AddAnswer(_ context.Context, questionID, authorID, body string) (*model.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[questionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	a := model.Answer{ID: m.nextID("answer"), AuthorID: authorID, Body: body, VotedBy: []string{}, CreatedAt: time.Now()}
	q.Answers = append(slices.Clone(q.Answers), a)
	q.Version++
	m.questions[questionID] = q
	return &a, nil
}

func (m *memStore) checkVersion(id string, expected int) (model.Question, error) {
	if m.voteWriteErr != nil {
		return model.Question{}, m.voteWriteErr
	}
	q, ok := m.questions[id]
	if !ok {
		return model.Question{}, apperrors.ErrNotFound
	}
	if q.Version != expected {
		return model.Question{}, apperrors.ErrConflict
	}
	return q, nil
}

func (m *memStore) UpdateQuestionVotes(_ context.Context, id string, expected int, up, down []string, votes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, err := m.checkVersion(id, expected)
	if err != nil {
		return err
	}
	q.UpvotedBy, q.DownvotedBy, q.Votes = slices.Clone(up), slices.Clone(down), votes
	q.Version++
	m.questions[id] = q
	return nil
}

func (m *memStore) UpdateAnswers(_ context.Context, id string, expected int, answers []model.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, err := m.checkVersion(id, expected)
	if err != nil {
		return err
	}
	q.Answers = slices.Clone(answers)
	q.Version++
	m.questions[id] = q
	return nil
}

func (m *memStore) Notify(_ context.Context, n model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.nextID("notification")
	n.CreatedAt = time.Now()
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *memStore) ListNotifications(_ context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Notification{}
	for i := len(m.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		n := m.notifications[i]
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *memStore) MarkNotificationRead(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].ID == id && m.notifications[i].UserID == userID {
			m.notifications[i].Read = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// notificationsOf retourne les notifications de userID du type t
func (m *memStore) notificationsOf(userID string, t model.NotificationType) []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID && n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

var errStoreDown = errors.New("store unavailable")
