package database

import (
	"context"
	"fmt"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/scanner"
)

func (s *Store) CreatePost(ctx context.Context, groupID, authorID, content string) (*model.Post, error) {
	post, err := scanner.ScanPost(s.pool.QueryRow(ctx,
		`INSERT INTO posts(group_id, author_id, content) VALUES($1, $2, $3)
		 RETURNING `+scanner.PostColumns,
		groupID, authorID, content))
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

func (s *Store) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	post, err := scanner.ScanPost(s.pool.QueryRow(ctx,
		`SELECT `+scanner.PostColumns+` FROM posts WHERE id = $1 AND deleted_at IS NULL`, postID))
	if err != nil {
		return nil, notFound(err, "post "+postID)
	}
	return post, nil
}

// SetPostAttachment enregistre l'URL Cloudinary de la pièce jointe; une URL vide la retire
func (s *Store) SetPostAttachment(ctx context.Context, postID, url string) error {
	res, err := s.pool.Exec(ctx,
		`UPDATE posts SET attachment_url = NULLIF($2, '') WHERE id = $1 AND deleted_at IS NULL`, postID, url)
	if err != nil {
		return notFound(err, "update attachment of post "+postID)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", postID, apperrors.ErrNotFound)
	}
	return nil
}
