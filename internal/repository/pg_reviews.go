package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
)

const reviewColumns = `id, travel_plan_id, reviewer_id, reviewee_id, rating, content, created_at, updated_at`

func (s *PostgresStore) CreateReview(ctx context.Context, r *models.Review) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO reviews (`+reviewColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.TravelPlanID, r.ReviewerID, r.RevieweeID, r.Rating, r.Content, r.CreatedAt, r.UpdatedAt,
	)
	return translate(err)
}

func (s *PostgresStore) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	rows, err := s.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	return collectOne[models.Review](rows, err)
}

func (s *PostgresStore) FindReview(ctx context.Context, planID, reviewerID uuid.UUID) (*models.Review, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE travel_plan_id = $1 AND reviewer_id = $2`,
		planID, reviewerID)
	return collectOne[models.Review](rows, err)
}

func (s *PostgresStore) UpdateReview(ctx context.Context, r *models.Review) error {
	return s.execOne(ctx,
		`UPDATE reviews SET rating = $1, content = $2, updated_at = $3 WHERE id = $4`,
		r.Rating, r.Content, r.UpdatedAt, r.ID,
	)
}

func (s *PostgresStore) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, `DELETE FROM reviews WHERE id = $1`, id)
}

func (s *PostgresStore) AverageRating(ctx context.Context, revieweeID uuid.UUID) (float64, int, error) {
	var avg float64
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0)::float8, COUNT(1) FROM reviews WHERE reviewee_id = $1`, revieweeID,
	).Scan(&avg, &n)
	if err != nil {
		return 0, 0, translate(err)
	}
	return avg, n, nil
}

func (s *PostgresStore) ListReviewsByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE reviewee_id = $1 ORDER BY created_at DESC`, revieweeID)
	return collectAll[models.Review](rows, err)
}

func (s *PostgresStore) FindPendingReviewPlan(ctx context.Context, userID uuid.UUID, now time.Time) (*models.TravelPlan, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.user_id, p.destination, p.description, p.start_date, p.end_date,
                p.budget, p.travel_type, p.visibility, p.created_at, p.updated_at
           FROM travel_plans p
           JOIN travel_buddies b
             ON b.travel_plan_id = p.id AND b.user_id = $1 AND b.status = 'APPROVED'
          WHERE p.end_date <= $2
            AND NOT EXISTS (
                SELECT 1 FROM reviews r WHERE r.travel_plan_id = p.id AND r.reviewer_id = $1
            )
          ORDER BY p.end_date DESC
          LIMIT 1`, userID, now)
	return collectOne[models.TravelPlan](rows, err)
}
