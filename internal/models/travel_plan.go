package models

import (
	"time"

	"github.com/google/uuid"
)

// TravelType describes who the trip is for
type TravelType string

const (
	TravelSolo    TravelType = "SOLO"
	TravelFamily  TravelType = "FAMILY"
	TravelFriends TravelType = "FRIENDS"
	TravelCouple  TravelType = "COUPLE"
)

// Visibility of a travel plan in public listings
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

// TravelPlan represents a trip published by its host
type TravelPlan struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Destination string     `json:"destination" db:"destination"`
	Description string     `json:"description" db:"description"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     time.Time  `json:"end_date" db:"end_date"`
	Budget      float64    `json:"budget" db:"budget"`
	TravelType  TravelType `json:"travel_type" db:"travel_type"`
	Visibility  Visibility `json:"visibility" db:"visibility"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// BuddyStatus of a join request
type BuddyStatus string

const (
	BuddyPending  BuddyStatus = "PENDING"
	BuddyApproved BuddyStatus = "APPROVED"
	BuddyRejected BuddyStatus = "REJECTED"
)

// TravelBuddy is a request by a user to join a travel plan.
// (travel_plan_id, user_id) is unique.
type TravelBuddy struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	TravelPlanID uuid.UUID   `json:"travel_plan_id" db:"travel_plan_id"`
	UserID       uuid.UUID   `json:"user_id" db:"user_id"`
	Status       BuddyStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}
