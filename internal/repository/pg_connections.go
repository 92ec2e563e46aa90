package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
)

const connectionColumns = `id, sender_id, receiver_id, status, created_at, updated_at`

func (s *PostgresStore) CreateConnection(ctx context.Context, c *models.Connection) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO connections (`+connectionColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.SenderID, c.ReceiverID, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	return translate(err)
}

func (s *PostgresStore) GetConnection(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	rows, err := s.db.Query(ctx, `SELECT `+connectionColumns+` FROM connections WHERE id = $1`, id)
	return collectOne[models.Connection](rows, err)
}

func (s *PostgresStore) ListConnectionsBetween(ctx context.Context, a, b uuid.UUID) ([]models.Connection, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+connectionColumns+`
           FROM connections
          WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
          ORDER BY created_at DESC`, a, b)
	return collectAll[models.Connection](rows, err)
}

func (s *PostgresStore) DeleteRejectedConnectionsBetween(ctx context.Context, a, b uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM connections
          WHERE status = 'REJECTED'
            AND ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))`, a, b)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) UpdateConnectionStatus(ctx context.Context, id uuid.UUID, status models.ConnectionStatus, at time.Time) error {
	return s.execOne(ctx, `UPDATE connections SET status = $1, updated_at = $2 WHERE id = $3`, status, at, id)
}

func (s *PostgresStore) DeleteConnection(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, `DELETE FROM connections WHERE id = $1`, id)
}

func (s *PostgresStore) CountConnectionsSentSince(ctx context.Context, senderID uuid.UUID, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM connections WHERE sender_id = $1 AND created_at >= $2`, senderID, since,
	).Scan(&n)
	return n, translate(err)
}

func (s *PostgresStore) ListConnections(ctx context.Context, f ConnectionFilter) ([]models.Connection, error) {
	var where string
	switch f.Direction {
	case DirectionIncoming:
		where = `receiver_id = $1`
	case DirectionOutgoing:
		where = `sender_id = $1`
	default:
		where = `(sender_id = $1 OR receiver_id = $1)`
	}
	args := []any{f.UserID}
	if f.Status != "" {
		where += ` AND status = $2`
		args = append(args, f.Status)
	}
	rows, err := s.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM connections WHERE %s ORDER BY created_at DESC`, connectionColumns, where),
		args...)
	return collectAll[models.Connection](rows, err)
}
