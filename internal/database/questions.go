package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

func (s *Store) CreateQuestion(ctx context.Context, authorID string, req model.CreateQuestionRequest) (*model.Question, error) {
	q, err := scanner.ScanQuestion(s.pool.QueryRow(ctx,
		`INSERT INTO questions(author_id, group_id, title, body, tags)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING `+scanner.QuestionColumns,
		authorID, req.GroupID, req.Title, req.Body, pq.Array(utils.NonNil(req.Tags))))
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (s *Store) GetQuestion(ctx context.Context, questionID string) (*model.Question, error) {
	q, err := scanner.ScanQuestion(s.pool.QueryRow(ctx,
		`SELECT `+scanner.QuestionColumns+` FROM questions WHERE id = $1 AND deleted_at IS NULL`, questionID))
	if err != nil {
		return nil, notFound(err, "question "+questionID)
	}
	return q, nil
}

// ListQuestions retourne les questions les plus récentes selon filter.
// VotedBy filtre sur l'appartenance à upvoted_by.
func (s *Store) ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	query, args := questionListQuery(filter)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q, err := scanner.ScanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// DeleteQuestion supprime la question de son auteur; les votes partent avec elle
func (s *Store) DeleteQuestion(ctx context.Context, questionID, authorID string) error {
	var owner string
	err := s.pool.QueryRow(ctx,
		`SELECT author_id FROM questions WHERE id = $1 AND deleted_at IS NULL`, questionID,
	).Scan(&owner)
	if err != nil {
		return notFound(err, "question "+questionID)
	}
	if owner != authorID {
		return fmt.Errorf("question %s belongs to another user: %w", questionID, apperrors.ErrForbidden)
	}

	res, err := s.pool.Exec(ctx,
		`UPDATE questions
		 SET deleted_at = NOW(), upvoted_by = '{}', downvoted_by = '{}', votes = 0, version = version + 1
		 WHERE id = $1 AND deleted_at IS NULL`, questionID)
	if err != nil {
		return fmt.Errorf("delete question %s: %w", questionID, err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", questionID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateQuestionVotes écrit les deux ensembles et le total en une requête,
// seulement si version vaut toujours expectedVersion
func (s *Store) UpdateQuestionVotes(ctx context.Context, questionID string, expectedVersion int, upvotedBy, downvotedBy []string, votes int) error {
	res, err := s.pool.Exec(ctx,
		`UPDATE questions
		 SET upvoted_by = $3, downvoted_by = $4, votes = $5, version = version + 1, updated_at = NOW()
		 WHERE id = $1 AND version = $2 AND deleted_at IS NULL`,
		questionID, expectedVersion, pq.Array(utils.NonNil(upvotedBy)), pq.Array(utils.NonNil(downvotedBy)), votes)
	if err != nil {
		return notFound(err, "update votes of question "+questionID)
	}
	if res.RowsAffected() == 0 {
		return s.missingOrConflict(ctx, "questions", questionID)
	}
	return nil
}

// UpdateAnswers remplace le tableau de réponses (même garde de version)
func (s *Store) UpdateAnswers(ctx context.Context, questionID string, expectedVersion int, answers []model.Answer) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	res, err := s.pool.Exec(ctx,
		`UPDATE questions
		 SET answers = $3::jsonb, version = version + 1, updated_at = NOW()
		 WHERE id = $1 AND version = $2 AND deleted_at IS NULL`,
		questionID, expectedVersion, string(payload))
	if err != nil {
		return notFound(err, "update answers of question "+questionID)
	}
	if res.RowsAffected() == 0 {
		return s.missingOrConflict(ctx, "questions", questionID)
	}
	return nil
}

// AddAnswer ajoute une réponse en fin de tableau et incrémente la version
func (s *Store) AddAnswer(ctx context.Context, questionID, authorID, body string) (*model.Answer, error) {
	answer := model.Answer{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Body:      body,
		VotedBy:   []string{},
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal([]model.Answer{answer})
	if err != nil {
		return nil, fmt.Errorf("encode answer: %w", err)
	}

	res, err := s.pool.Exec(ctx,
		`UPDATE questions
		 SET answers = answers || $2::jsonb, version = version + 1, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`,
		questionID, string(payload))
	if err != nil {
		return nil, notFound(err, "add answer to question "+questionID)
	}
	if res.RowsAffected() == 0 {
		return nil, fmt.Errorf("question %s: %w", questionID, apperrors.ErrNotFound)
	}
	return &answer, nil
}

func questionListQuery(filter model.QuestionFilter) (string, []interface{}) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}

	if filter.GroupID != "" {
		args = append(args, filter.GroupID)
		conditions = append(conditions, fmt.Sprintf("group_id = $%d", len(args)))
	}
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if filter.VotedBy != "" {
		args = append(args, filter.VotedBy)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(upvoted_by)", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s FROM questions WHERE %s ORDER BY created_at DESC LIMIT $%d`,
		scanner.QuestionColumns, strings.Join(conditions, " AND "), len(args))
	return query, args
}
