package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
)

const travelPlanColumns = `id, user_id, destination, description, start_date, end_date,
	budget, travel_type, visibility, created_at, updated_at`

const travelBuddyColumns = `id, travel_plan_id, user_id, status, created_at, updated_at`

func (s *PostgresStore) CreateTravelPlan(ctx context.Context, p *models.TravelPlan) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO travel_plans (`+travelPlanColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.Destination, p.Description, p.StartDate, p.EndDate,
		p.Budget, p.TravelType, p.Visibility, p.CreatedAt, p.UpdatedAt,
	)
	return translate(err)
}

func (s *PostgresStore) GetTravelPlan(ctx context.Context, id uuid.UUID) (*models.TravelPlan, error) {
	rows, err := s.db.Query(ctx, `SELECT `+travelPlanColumns+` FROM travel_plans WHERE id = $1`, id)
	return collectOne[models.TravelPlan](rows, err)
}

func (s *PostgresStore) UpdateTravelPlan(ctx context.Context, p *models.TravelPlan) error {
	return s.execOne(ctx,
		`UPDATE travel_plans
            SET destination = $1,
                description = $2,
                start_date = $3,
                end_date = $4,
                budget = $5,
                travel_type = $6,
                visibility = $7,
                updated_at = $8
          WHERE id = $9`,
		p.Destination, p.Description, p.StartDate, p.EndDate, p.Budget, p.TravelType, p.Visibility, p.UpdatedAt, p.ID,
	)
}

// DeleteTravelPlan removes the plan; buddies, reviews and notifications
// referencing it go with it (ON DELETE CASCADE)
func (s *PostgresStore) DeleteTravelPlan(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, `DELETE FROM travel_plans WHERE id = $1`, id)
}

func (s *PostgresStore) CountTravelPlansByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(1) FROM travel_plans WHERE user_id = $1`, userID).Scan(&n)
	return n, translate(err)
}

func (s *PostgresStore) ListTravelPlans(ctx context.Context, f TravelPlanFilter) ([]models.TravelPlan, int, error) {
	conds := []string{"TRUE"}
	args := []any{}
	argNum := 1
	if f.UserID != nil {
		conds = append(conds, fmt.Sprintf("user_id = $%d", argNum))
		args = append(args, *f.UserID)
		argNum++
	}
	if d := strings.TrimSpace(f.Destination); d != "" {
		// literal match; % and _ in the filter are not wildcards
		conds = append(conds, fmt.Sprintf("STRPOS(LOWER(destination), LOWER($%d)) > 0", argNum))
		args = append(args, d)
		argNum++
	}
	if f.PublicOnly {
		conds = append(conds, "visibility = 'PUBLIC'")
	}
	where := "WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(1) FROM travel_plans `+where, args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	args = append(args, limitArg(f.Limit), f.Offset)
	rows, err := s.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM travel_plans %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			travelPlanColumns, where, argNum, argNum+1),
		args...)
	plans, err := collectAll[models.TravelPlan](rows, err)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (s *PostgresStore) CreateTravelBuddy(ctx context.Context, b *models.TravelBuddy) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO travel_buddies (`+travelBuddyColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.TravelPlanID, b.UserID, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	return translate(err)
}

func (s *PostgresStore) GetTravelBuddy(ctx context.Context, id uuid.UUID) (*models.TravelBuddy, error) {
	rows, err := s.db.Query(ctx, `SELECT `+travelBuddyColumns+` FROM travel_buddies WHERE id = $1`, id)
	return collectOne[models.TravelBuddy](rows, err)
}

func (s *PostgresStore) FindTravelBuddy(ctx context.Context, planID, userID uuid.UUID) (*models.TravelBuddy, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+travelBuddyColumns+` FROM travel_buddies WHERE travel_plan_id = $1 AND user_id = $2`,
		planID, userID)
	return collectOne[models.TravelBuddy](rows, err)
}

func (s *PostgresStore) UpdateTravelBuddyStatus(ctx context.Context, id uuid.UUID, status models.BuddyStatus, at time.Time) error {
	return s.execOne(ctx, `UPDATE travel_buddies SET status = $1, updated_at = $2 WHERE id = $3`, status, at, id)
}

func (s *PostgresStore) ListTravelBuddies(ctx context.Context, planID uuid.UUID) ([]models.TravelBuddy, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+travelBuddyColumns+` FROM travel_buddies WHERE travel_plan_id = $1 ORDER BY created_at DESC`,
		planID)
	return collectAll[models.TravelBuddy](rows, err)
}
