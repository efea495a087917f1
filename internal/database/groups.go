package database

import (
	"context"
	"fmt"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/scanner"
)

// CreateGroup crée le groupe et y inscrit son créateur dans la même transaction
func (s *Store) CreateGroup(ctx context.Context, creatorID string, req model.CreateGroupRequest) (*model.Group, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var groupID string
	err = tx.QueryRow(ctx,
		`INSERT INTO groups(name, description, created_by) VALUES($1, $2, $3) RETURNING id`,
		req.Name, req.Description, creatorID,
	).Scan(&groupID)
	if err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO group_members(group_id, user_id) VALUES($1, $2)`, groupID, creatorID,
	); err != nil {
		return nil, fmt.Errorf("insert group creator: %w", err)
	}

	group, err := scanner.ScanGroup(tx.QueryRow(ctx,
		`SELECT `+scanner.GroupColumns+` FROM groups g WHERE g.id = $1`, groupID))
	if err != nil {
		return nil, fmt.Errorf("reload group: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit group: %w", err)
	}
	return group, nil
}

func (s *Store) GetGroup(ctx context.Context, groupID string) (*model.Group, error) {
	group, err := scanner.ScanGroup(s.pool.QueryRow(ctx,
		`SELECT `+scanner.GroupColumns+` FROM groups g WHERE g.id = $1 AND g.deleted_at IS NULL`, groupID))
	if err != nil {
		return nil, notFound(err, "group "+groupID)
	}
	return group, nil
}

// JoinGroup inscrit userID; joined vaut false s'il était déjà membre
func (s *Store) JoinGroup(ctx context.Context, groupID, userID string) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1 AND deleted_at IS NULL)`, groupID,
	).Scan(&exists); err != nil {
		return false, notFound(err, "check group "+groupID)
	}
	if !exists {
		return false, fmt.Errorf("group %s: %w", groupID, apperrors.ErrNotFound)
	}

	res, err := s.pool.Exec(ctx,
		`INSERT INTO group_members(group_id, user_id) VALUES($1, $2)
		 ON CONFLICT (group_id, user_id) DO NOTHING`, groupID, userID)
	if err != nil {
		return false, notFound(err, "join group "+groupID)
	}
	return res.RowsAffected() == 1, nil
}

func (s *Store) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var member bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`,
		groupID, userID,
	).Scan(&member)
	if err != nil {
		return false, notFound(err, "check membership of group "+groupID)
	}
	return member, nil
}
