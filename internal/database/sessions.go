package database

import (
	"context"
	"fmt"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/scanner"
	"github.com/google/uuid"
)

// CreateSession ouvre une session avec un token UUID
func (s *Store) CreateSession(ctx context.Context, userID, ip, userAgent string, ttl time.Duration) (*model.Session, error) {
	session := model.Session{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(ttl),
		IsActive:  true,
		IP:        ip,
		UserAgent: userAgent,
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO sessions(user_id, token, ip_address, user_agent, is_active, expires_at)
		 VALUES($1, $2, $3, $4, true, $5)
		 RETURNING id, created_at`,
		session.UserID, session.Token, session.IP, session.UserAgent, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &session, nil
}

// UserByToken retourne l'utilisateur d'une session active et non expirée
func (s *Store) UserByToken(ctx context.Context, token string) (*model.UserProfile, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.avatar, u.bio, u.role, u.score, u.level,
		       u.join_date, u.created_at, u.updated_at
		FROM users u
		JOIN sessions s ON u.id = s.user_id
		WHERE s.token = $1
		  AND s.is_active = true
		  AND s.expires_at > NOW()
		  AND s.deleted_at IS NULL
		  AND u.deleted_at IS NULL`, token)

	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		return nil, notFound(err, "session")
	}
	return user, nil
}

// InvalidateSession désactive la session (soft delete)
func (s *Store) InvalidateSession(ctx context.Context, token string) error {
	res, err := s.pool.Exec(ctx,
		`UPDATE sessions SET is_active = false, deleted_at = NOW()
		 WHERE token = $1 AND is_active = true AND deleted_at IS NULL`, token)
	if err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("session: %w", apperrors.ErrNotFound)
	}
	return nil
}
