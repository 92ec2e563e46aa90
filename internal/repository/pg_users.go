package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
)

const userColumns = `id, email, password_hash, name, avatar_url, bio, role, status,
	subscription_type, subscription_expires_at, premium, rating, created_at, updated_at`

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.AvatarURL, u.Bio, u.Role, u.Status,
		u.SubscriptionType, u.SubscriptionExpiresAt, u.Premium, u.Rating, u.CreatedAt, u.UpdatedAt,
	)
	return translate(err)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return collectOne[models.User](rows, err)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return collectOne[models.User](rows, err)
}

func (s *PostgresStore) UpdateUserProfile(ctx context.Context, u *models.User) error {
	return s.execOne(ctx,
		`UPDATE users SET name = $1, avatar_url = $2, bio = $3, updated_at = $4 WHERE id = $5`,
		u.Name, u.AvatarURL, u.Bio, u.UpdatedAt, u.ID,
	)
}

func (s *PostgresStore) UpdateUserStatus(ctx context.Context, id uuid.UUID, status models.UserStatus, at time.Time) error {
	return s.execOne(ctx, `UPDATE users SET status = $1, updated_at = $2 WHERE id = $3`, status, at, id)
}

func (s *PostgresStore) UpdateUserSubscription(ctx context.Context, id uuid.UUID, subType models.SubscriptionType, expiresAt time.Time, at time.Time) error {
	return s.execOne(ctx,
		`UPDATE users
            SET premium = TRUE,
                subscription_type = $1,
                subscription_expires_at = $2,
                updated_at = $3
          WHERE id = $4`,
		subType, expiresAt, at, id,
	)
}

func (s *PostgresStore) UpdateUserRating(ctx context.Context, id uuid.UUID, rating float64, at time.Time) error {
	return s.execOne(ctx, `UPDATE users SET rating = $1, updated_at = $2 WHERE id = $3`, rating, at, id)
}
