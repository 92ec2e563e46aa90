package models

import (
	"time"

	"github.com/google/uuid"
)

// Review left by a buddy for the host of a finished trip
type Review struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TravelPlanID uuid.UUID `json:"travel_plan_id" db:"travel_plan_id"`
	ReviewerID   uuid.UUID `json:"reviewer_id" db:"reviewer_id"`
	RevieweeID   uuid.UUID `json:"reviewee_id" db:"reviewee_id"`
	Rating       int       `json:"rating" db:"rating"`
	Content      string    `json:"content" db:"content"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
