package database

import (
	"context"
	"fmt"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/scanner"
)

// CreateUser insère un utilisateur; un email déjà utilisé donne ErrConflict
func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash, avatar string, role model.Role) (*model.UserProfile, error) {
	if role == "" {
		role = model.RoleStudent
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, avatar, role, score, level)
		 VALUES($1, $2, $3, $4, $5, 0, 1)
		 RETURNING `+scanner.UserColumns,
		name, email, passwordHash, avatar, role,
	)
	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email %s already registered: %w", email, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*model.UserProfile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+scanner.UserColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, userID)
	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		return nil, notFound(err, "user "+userID)
	}
	return user, nil
}

// GetUserCredentials retourne le profil et le hash du mot de passe pour la connexion
func (s *Store) GetUserCredentials(ctx context.Context, email string) (*model.UserProfile, string, error) {
	var hash string
	row := s.pool.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE email = $1 AND deleted_at IS NULL`, email)
	if err := row.Scan(&hash); err != nil {
		return nil, "", notFound(err, "user "+email)
	}

	row = s.pool.QueryRow(ctx,
		`SELECT `+scanner.UserColumns+` FROM users WHERE email = $1 AND deleted_at IS NULL`, email)
	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		return nil, "", notFound(err, "user "+email)
	}
	return user, hash, nil
}

func (s *Store) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	res, err := s.pool.Exec(ctx,
		`UPDATE users SET avatar = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		userID, avatarURL)
	if err != nil {
		return notFound(err, "update avatar of "+userID)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// GetUserScore lit le score et le niveau stockés
func (s *Store) GetUserScore(ctx context.Context, userID string) (*model.UserScore, error) {
	us := model.UserScore{UserID: userID}
	err := s.pool.QueryRow(ctx,
		`SELECT score, level FROM users WHERE id = $1 AND deleted_at IS NULL`, userID,
	).Scan(&us.Score, &us.Level)
	if err != nil {
		return nil, notFound(err, "user "+userID)
	}
	return &us, nil
}

// ApplyUserPoints ajoute points au score dans une transaction. Le SELECT ... FOR UPDATE
// sérialise les attributions concurrentes; score et level sont écrits ensemble.
func (s *Store) ApplyUserPoints(ctx context.Context, userID string, points int, levelFor func(score int) int) (*model.UserScore, *model.UserScore, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	before := model.UserScore{UserID: userID}
	err = tx.QueryRow(ctx,
		`SELECT score, level FROM users WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, userID,
	).Scan(&before.Score, &before.Level)
	if err != nil {
		return nil, nil, notFound(err, "user "+userID)
	}

	after := model.UserScore{UserID: userID, Score: before.Score + points}
	after.Level = levelFor(after.Score)

	if _, err := tx.Exec(ctx,
		`UPDATE users SET score = $2, level = $3, updated_at = NOW() WHERE id = $1`,
		userID, after.Score, after.Level,
	); err != nil {
		return nil, nil, fmt.Errorf("update score of %s: %w", userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit score of %s: %w", userID, err)
	}
	return &before, &after, nil
}

// LoadCreator retourne les informations publiques d'un auteur
func (s *Store) LoadCreator(ctx context.Context, userID string) (*model.UserCreator, error) {
	var c model.UserCreator
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(avatar, '') FROM users WHERE id = $1`, userID,
	).Scan(&c.ID, &c.Name, &c.Avatar)
	if err != nil {
		return nil, notFound(err, "user "+userID)
	}
	return &c, nil
}

// Leaderboard classe les utilisateurs par score décroissant
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(avatar, ''),
		       ROW_NUMBER() OVER (ORDER BY score DESC, join_date ASC) AS rank,
		       score, level
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY rank
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.Avatar, &e.Rank, &e.Score, &e.Level); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		rank := gamification.RankFor(e.Level)
		e.Trophy, e.Title = rank.Trophy, rank.Title
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UserRank calcule le rang et le percentile d'un utilisateur
func (s *Store) UserRank(ctx context.Context, userID string) (*model.UserRank, error) {
	ur := model.UserRank{UserID: userID}
	err := s.pool.QueryRow(ctx, `
		WITH ranked AS (
			SELECT id, score,
			       ROW_NUMBER() OVER (ORDER BY score DESC, join_date ASC) AS rank
			FROM users
			WHERE deleted_at IS NULL
		)
		SELECT r.rank, r.score, (SELECT COUNT(*) FROM ranked)
		FROM ranked r
		WHERE r.id = $1`, userID,
	).Scan(&ur.Rank, &ur.Score, &ur.TotalUsers)
	if err != nil {
		return nil, notFound(err, "user "+userID)
	}

	if ur.TotalUsers > 0 {
		ur.Percentile = float64(ur.Rank) / float64(ur.TotalUsers) * 100
	}
	return &ur, nil
}
