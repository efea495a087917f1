package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/scanner"
)

// Notify insère une notification dans la boîte de n.UserID
func (s *Store) Notify(ctx context.Context, n model.Notification) error {
	data := n.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode notification data: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO notifications(user_id, type, title, message, data)
		 VALUES($1, $2, $3, $4, $5::jsonb)`,
		n.UserID, n.Type, n.Title, n.Message, string(payload))
	if err != nil {
		return fmt.Errorf("insert notification for %s: %w", n.UserID, err)
	}
	return nil
}

// ListNotifications retourne la boîte de userID, les plus récentes d'abord
func (s *Store) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+scanner.NotificationColumns+`
		 FROM notifications
		 WHERE user_id = $1 AND deleted_at IS NULL AND ($2 = false OR read = false)
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		n, err := scanner.ScanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (s *Store) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	res, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read = true
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		notificationID, userID)
	if err != nil {
		return notFound(err, "mark notification "+notificationID)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, apperrors.ErrNotFound)
	}
	return nil
}
