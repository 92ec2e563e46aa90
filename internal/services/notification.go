package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/repository"
)

// NotificationService writes and reads user notifications
type NotificationService struct {
	store repository.Store
	clock Clock
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(store repository.Store, clock Clock) *NotificationService {
	return &NotificationService{store: store, clock: clock}
}

// Notify records a notification. Failures are logged and never returned:
// the primary write that triggered it has already committed.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, planID *uuid.UUID, typ models.NotificationType, message, link string) {
	n := &models.Notification{
		ID:           uuid.New(),
		UserID:       userID,
		TravelPlanID: planID,
		Type:         typ,
		Message:      message,
		Link:         link,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		log.Printf("Error creating %s notification: %v (user_id=%s)", typ, err, userID)
	}
}

// NotificationPage is one page of a user's notifications
type NotificationPage struct {
	Items       []models.Notification `json:"items"`
	Total       int                   `json:"total"`
	UnreadCount int                   `json:"unread_count"`
	Limit       int                   `json:"limit"`
	Offset      int                   `json:"offset"`
}

// ListParams are pagination and filter inputs for notification listing
type ListParams struct {
	UnreadOnly bool
	Type       models.NotificationType
	Limit      int
	Offset     int
}

// List returns the caller's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, p ListParams) (*NotificationPage, error) {
	limit, offset := clampPage(p.Limit, p.Offset)
	items, total, err := s.store.ListNotifications(ctx, repository.NotificationFilter{
		UserID:     userID,
		UnreadOnly: p.UnreadOnly,
		Type:       p.Type,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, internal("failed to list notifications", err)
	}
	unread, err := s.store.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return nil, internal("failed to count notifications", err)
	}
	return &NotificationPage{Items: items, Total: total, UnreadCount: unread, Limit: limit, Offset: offset}, nil
}

// MarkRead marks one of the caller's notifications read. It reports
// whether anything changed; unknown or foreign ids are not an error.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	ok, err := s.store.MarkNotificationRead(ctx, id, userID)
	if err != nil {
		return false, internal("failed to update notification", err)
	}
	return ok, nil
}

// MarkAllRead marks every unread notification of the caller read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.store.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, internal("failed to update notifications", err)
	}
	return n, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
