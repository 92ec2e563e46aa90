package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
)

const notificationColumns = `id, user_id, travel_plan_id, type, message, link, is_read, created_at`

func (s *PostgresStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO notifications (`+notificationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, n.TravelPlanID, n.Type, n.Message, n.Link, n.IsRead, n.CreatedAt,
	)
	return translate(err)
}

func (s *PostgresStore) ListNotifications(ctx context.Context, f NotificationFilter) ([]models.Notification, int, error) {
	// Build query with proper parameterization to prevent SQL injection
	args := []any{f.UserID}
	where := `WHERE user_id = $1`
	argNum := 2
	if f.UnreadOnly {
		where += " AND is_read = FALSE"
	}
	if f.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", argNum)
		args = append(args, f.Type)
		argNum++
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(1) FROM notifications `+where, args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	args = append(args, limitArg(f.Limit), f.Offset)
	rows, err := s.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM notifications %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			notificationColumns, where, argNum, argNum+1),
		args...)
	items, err := collectAll[models.Notification](rows, err)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *PostgresStore) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID,
	).Scan(&n)
	return n, translate(err)
}

func (s *PostgresStore) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2 AND is_read = FALSE`,
		id, userID)
	if err != nil {
		return false, translate(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}
