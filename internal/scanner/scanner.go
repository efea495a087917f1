package scanner

import (
	"database/sql"
	"encoding/json"
	"fmt"

	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
)

// Row est satisfait par pgx.Row et pgx.Rows
type Row interface {
	Scan(dest ...interface{}) error
}

// UserColumns colonnes attendues par ScanUserProfile
const UserColumns = `id, name, email, avatar, bio, role, score, level, join_date, created_at, updated_at`

// ScanUserProfile scanne une ligne SQL vers un UserProfile
func ScanUserProfile(row Row) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar, bio sql.NullString

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &avatar, &bio, &user.Role,
		&user.Score, &user.Level, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Avatar = utils.NullStringToString(avatar)
	user.Bio = utils.NullStringToString(bio)

	return &user, nil
}

// QuestionColumns colonnes attendues par ScanQuestion
const QuestionColumns = `id, author_id, group_id, title, body, tags, upvoted_by, downvoted_by,
	votes, answers, version, created_at, updated_at`

// ScanQuestion scanne une question. Les text[] sont décodés par pgx (format binaire),
// les réponses embarquées depuis le JSONB
func ScanQuestion(row Row) (*model.Question, error) {
	var q model.Question
	var groupID sql.NullString
	var answersJSON []byte

	err := row.Scan(
		&q.ID, &q.AuthorID, &groupID, &q.Title, &q.Body,
		&q.Tags, &q.UpvotedBy, &q.DownvotedBy,
		&q.Votes, &answersJSON, &q.Version, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.GroupID = utils.NullStringToPointer(groupID)
	if err := json.Unmarshal(answersJSON, &q.Answers); err != nil {
		return nil, fmt.Errorf("decode answers of question %s: %w", q.ID, err)
	}

	// les ensembles vides sont sérialisés en [] et non null
	q.Tags = utils.NonNil(q.Tags)
	q.UpvotedBy = utils.NonNil(q.UpvotedBy)
	q.DownvotedBy = utils.NonNil(q.DownvotedBy)
	if q.Answers == nil {
		q.Answers = []model.Answer{}
	}
	for i := range q.Answers {
		q.Answers[i].VotedBy = utils.NonNil(q.Answers[i].VotedBy)
	}

	return &q, nil
}

// NotificationColumns colonnes attendues par ScanNotification
const NotificationColumns = `id, user_id, type, title, message, data, read, created_at`

func ScanNotification(row Row) (*model.Notification, error) {
	var n model.Notification
	var dataJSON []byte

	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &dataJSON, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(dataJSON) > 0 {
		if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
			return nil, fmt.Errorf("decode notification data: %w", err)
		}
	}

	return &n, nil
}

// GroupColumns colonnes attendues par ScanGroup (members est un COUNT)
const GroupColumns = `g.id, g.name, g.description, g.created_by, g.created_at,
	(SELECT COUNT(*) FROM group_members gm WHERE gm.group_id = g.id) AS members`

func ScanGroup(row Row) (*model.Group, error) {
	var g model.Group

	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatedAt, &g.Members)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// PostColumns colonnes attendues par ScanPost
const PostColumns = `id, group_id, author_id, content, attachment_url, created_at`

func ScanPost(row Row) (*model.Post, error) {
	var p model.Post
	var attachment sql.NullString

	err := row.Scan(&p.ID, &p.GroupID, &p.AuthorID, &p.Content, &attachment, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	p.AttachmentURL = utils.NullStringToString(attachment)
	return &p, nil
}
