package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
)

const paymentColumns = `id, user_id, transaction_id, amount, currency, status, subscription_type,
	paid_at, created_at, updated_at`

func (s *PostgresStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.UserID, p.TransactionID, p.Amount, p.Currency, p.Status, p.SubscriptionType,
		p.PaidAt, p.CreatedAt, p.UpdatedAt,
	)
	return translate(err)
}

func (s *PostgresStore) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	rows, err := s.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1`, transactionID)
	return collectOne[models.Payment](rows, err)
}

// MarkPaymentSucceeded uses the status predicate as the idempotency guard:
// only the caller whose UPDATE matched the PENDING row sees true.
func (s *PostgresStore) MarkPaymentSucceeded(ctx context.Context, transactionID string, at time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE payments
            SET status = 'SUCCESS', paid_at = $1, updated_at = $1
          WHERE transaction_id = $2 AND status = 'PENDING'`,
		at, transactionID)
	if err != nil {
		return false, translate(err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	// distinguish "already succeeded" from "no such payment"
	var exists bool
	if err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payments WHERE transaction_id = $1)`, transactionID,
	).Scan(&exists); err != nil {
		return false, translate(err)
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}

func (s *PostgresStore) ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	return collectAll[models.Payment](rows, err)
}
