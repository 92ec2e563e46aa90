package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification
type NotificationType string

const (
	NotificationLeaveReview        NotificationType = "LEAVE_REVIEW"
	NotificationTripJoinRequest    NotificationType = "TRIP_JOIN_REQUEST"
	NotificationTripApproved       NotificationType = "TRIP_APPROVED"
	NotificationConnectionRequest  NotificationType = "CONNECTION_REQUEST"
	NotificationConnectionAccepted NotificationType = "CONNECTION_ACCEPTED"
)

// Notification is a fire-and-forget message for a user
type Notification struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	UserID       uuid.UUID        `json:"user_id" db:"user_id"`
	TravelPlanID *uuid.UUID       `json:"travel_plan_id" db:"travel_plan_id"`
	Type         NotificationType `json:"type" db:"type"`
	Message      string           `json:"message" db:"message"`
	Link         string           `json:"link" db:"link"`
	IsRead       bool             `json:"is_read" db:"is_read"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}
