package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("record already exists")
)

// Direction selects which side of a connection the filtered user is on
type Direction int

const (
	DirectionAny Direction = iota
	DirectionIncoming
	DirectionOutgoing
)

// ConnectionFilter narrows ListConnections
type ConnectionFilter struct {
	UserID    uuid.UUID
	Direction Direction
	Status    models.ConnectionStatus // empty = any
}

// TravelPlanFilter narrows ListTravelPlans
type TravelPlanFilter struct {
	UserID      *uuid.UUID
	Destination string // case-insensitive substring
	PublicOnly  bool
	Limit       int
	Offset      int
}

// NotificationFilter narrows ListNotifications
type NotificationFilter struct {
	UserID     uuid.UUID
	UnreadOnly bool
	Type       models.NotificationType
	Limit      int
	Offset     int
}

// Store is the persistence gateway used by the services.
// Lists are returned newest first unless stated otherwise.
type Store interface {
	Ping(ctx context.Context) error

	// WithTx runs fn against a transactional view of the store.
	// Every write made through that view commits together or not at all.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, u *models.User) error
	UpdateUserStatus(ctx context.Context, id uuid.UUID, status models.UserStatus, at time.Time) error
	UpdateUserSubscription(ctx context.Context, id uuid.UUID, subType models.SubscriptionType, expiresAt time.Time, at time.Time) error
	UpdateUserRating(ctx context.Context, id uuid.UUID, rating float64, at time.Time) error

	CreateConnection(ctx context.Context, c *models.Connection) error
	GetConnection(ctx context.Context, id uuid.UUID) (*models.Connection, error)
	ListConnectionsBetween(ctx context.Context, a, b uuid.UUID) ([]models.Connection, error)
	DeleteRejectedConnectionsBetween(ctx context.Context, a, b uuid.UUID) (int64, error)
	UpdateConnectionStatus(ctx context.Context, id uuid.UUID, status models.ConnectionStatus, at time.Time) error
	DeleteConnection(ctx context.Context, id uuid.UUID) error
	CountConnectionsSentSince(ctx context.Context, senderID uuid.UUID, since time.Time) (int, error)
	ListConnections(ctx context.Context, f ConnectionFilter) ([]models.Connection, error)

	CreateTravelPlan(ctx context.Context, p *models.TravelPlan) error
	GetTravelPlan(ctx context.Context, id uuid.UUID) (*models.TravelPlan, error)
	UpdateTravelPlan(ctx context.Context, p *models.TravelPlan) error
	DeleteTravelPlan(ctx context.Context, id uuid.UUID) error
	CountTravelPlansByUser(ctx context.Context, userID uuid.UUID) (int, error)
	ListTravelPlans(ctx context.Context, f TravelPlanFilter) ([]models.TravelPlan, int, error)

	CreateTravelBuddy(ctx context.Context, b *models.TravelBuddy) error
	GetTravelBuddy(ctx context.Context, id uuid.UUID) (*models.TravelBuddy, error)
	FindTravelBuddy(ctx context.Context, planID, userID uuid.UUID) (*models.TravelBuddy, error)
	UpdateTravelBuddyStatus(ctx context.Context, id uuid.UUID, status models.BuddyStatus, at time.Time) error
	ListTravelBuddies(ctx context.Context, planID uuid.UUID) ([]models.TravelBuddy, error)

	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error)
	FindReview(ctx context.Context, planID, reviewerID uuid.UUID) (*models.Review, error)
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
	AverageRating(ctx context.Context, revieweeID uuid.UUID) (float64, int, error)
	ListReviewsByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]models.Review, error)
	// FindPendingReviewPlan returns the most recently ended plan where userID
	// is an approved buddy and has not left a review yet.
	FindPendingReviewPlan(ctx context.Context, userID uuid.UUID, now time.Time) (*models.TravelPlan, error)

	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	// MarkPaymentSucceeded flips PENDING to SUCCESS and reports whether this
	// call performed the transition.
	MarkPaymentSucceeded(ctx context.Context, transactionID string, at time.Time) (bool, error)
	ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error)

	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, f NotificationFilter) ([]models.Notification, int, error)
	CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int, error)
	MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error)
}
