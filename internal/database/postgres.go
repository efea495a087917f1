package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/config"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres ouvre le pool de connexions et vérifie qu'il répond
func ConnectPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	logger.Success("Connected to PostgreSQL (%s:%s/%s)", cfg.DBHost, cfg.DBPort, cfg.DBName)
	return pool, nil
}

// Store regroupe les accès PostgreSQL de l'API
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// notFound traduit pgx.ErrNoRows en apperrors.ErrNotFound, de même qu'un
// identifiant qui n'est pas un UUID valide (22P02): aucune ligne ne peut y répondre
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// isUniqueViolation détecte les doublons (code 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// missingOrConflict est appelé quand une écriture conditionnelle n'a touché aucune ligne
func (s *Store) missingOrConflict(ctx context.Context, table, id string) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = $1 AND deleted_at IS NULL)`, id,
	).Scan(&exists)
	if err != nil {
		return notFound(err, "check "+table+" "+id)
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", table, id, apperrors.ErrNotFound)
	}
	return fmt.Errorf("%s %s changed since it was read: %w", table, id, apperrors.ErrConflict)
}
