package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/repository"
)

// UserSummary is the public projection of a user shown next to
// connections, join requests and reviews
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
	Rating    float64   `json:"rating"`
}

func summarize(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL, Rating: u.Rating}
}

// ConnectionView is a connection with the other party's profile
type ConnectionView struct {
	models.Connection
	User UserSummary `json:"user"`
}

// Buddy is an accepted connection seen from one side
type Buddy struct {
	ConnectionID uuid.UUID `json:"connection_id"`
	UserSummary
	Since time.Time `json:"since"`
}

// ConnectionService implements the request/accept/reject lifecycle of
// peer connections
type ConnectionService struct {
	store        repository.Store
	entitlements *EntitlementService
	notifier     *NotificationService
	clock        Clock
	opts         Options
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(store repository.Store, entitlements *EntitlementService, notifier *NotificationService, clock Clock, opts Options) *ConnectionService {
	return &ConnectionService{store: store, entitlements: entitlements, notifier: notifier, clock: clock, opts: opts}
}

// SendRequest creates a PENDING connection from senderID to receiverID.
// A previously REJECTED row between the pair is cleared first so the
// sender may ask again.
func (s *ConnectionService) SendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*models.Connection, error) {
	if senderID == receiverID {
		return nil, newError(KindInvalidInput, "You cannot send a connection request to yourself")
	}
	sender, err := s.store.GetUserByID(ctx, senderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(KindUnauthenticated, "Sender account not found")
	}
	if err != nil {
		return nil, internal("failed to load sender", err)
	}
	receiver, err := s.store.GetUserByID(ctx, receiverID)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}

	now := s.clock.Now()
	conn := &models.Connection{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.ConnectionPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.DeleteRejectedConnectionsBetween(ctx, senderID, receiverID); err != nil {
			return internal("failed to clear rejected request", err)
		}
		if err := s.entitlements.in(tx).CheckConnectionQuota(ctx, sender); err != nil {
			return err
		}
		existing, err := tx.ListConnectionsBetween(ctx, senderID, receiverID)
		if err != nil {
			return internal("failed to look up connection", err)
		}
		for _, c := range existing {
			if c.Status != models.ConnectionRejected {
				return connectionExists(c.Status)
			}
		}
		if err := tx.CreateConnection(ctx, conn); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return connectionExists(models.ConnectionPending)
			}
			return fromStore(err, "failed to create connection request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, receiver.ID, nil, models.NotificationConnectionRequest,
		fmt.Sprintf("%s sent you a connection request", sender.Name), "/connections/incoming")
	return conn, nil
}

func connectionExists(status models.ConnectionStatus) error {
	if status == models.ConnectionAccepted {
		return newError(KindConflict, "You are already connected with this user")
	}
	return newError(KindConflict, "A connection request between you and this user is already pending")
}

// RespondToRequest lets the receiver accept or reject a request
func (s *ConnectionService) RespondToRequest(ctx context.Context, userID, connectionID uuid.UUID, status models.ConnectionStatus) (*models.Connection, error) {
	if status != models.ConnectionAccepted && status != models.ConnectionRejected {
		return nil, newError(KindInvalidInput, "status must be ACCEPTED or REJECTED")
	}
	conn, err := s.store.GetConnection(ctx, connectionID)
	if err != nil {
		return nil, fromStore(err, "Connection request not found")
	}
	if conn.ReceiverID != userID {
		return nil, newError(KindForbidden, "Only the receiver can respond to this request")
	}
	if s.opts.StrictTransitions && conn.Status != models.ConnectionPending {
		return nil, errorf(KindInvalidState, "Connection request is already %s", conn.Status)
	}

	now := s.clock.Now()
	if err := s.store.UpdateConnectionStatus(ctx, conn.ID, status, now); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, newError(KindConflict, "Another connection between you and this user is already active")
		}
		return nil, fromStore(err, "Connection request not found")
	}
	conn.Status = status
	conn.UpdatedAt = now

	if status == models.ConnectionAccepted {
		name := "Your connection"
		if u, err := s.store.GetUserByID(ctx, userID); err == nil {
			name = u.Name
		} else {
			log.Printf("Error loading receiver for notification: %v (user_id=%s)", err, userID)
		}
		s.notifier.Notify(ctx, conn.SenderID, nil, models.NotificationConnectionAccepted,
			fmt.Sprintf("%s accepted your connection request", name), "/connections")
	}
	return conn, nil
}

// GetMyBuddies lists accepted connections with the other side's profile
func (s *ConnectionService) GetMyBuddies(ctx context.Context, userID uuid.UUID) ([]Buddy, error) {
	conns, err := s.store.ListConnections(ctx, repository.ConnectionFilter{
		UserID: userID,
		Status: models.ConnectionAccepted,
	})
	if err != nil {
		return nil, internal("failed to list connections", err)
	}
	buddies := make([]Buddy, 0, len(conns))
	for _, c := range conns {
		other, err := s.store.GetUserByID(ctx, c.Counterpart(userID))
		if err != nil {
			log.Printf("Error loading buddy profile: %v (connection_id=%s)", err, c.ID)
			continue
		}
		buddies = append(buddies, Buddy{ConnectionID: c.ID, UserSummary: summarize(other), Since: c.UpdatedAt})
	}
	return buddies, nil
}

// DeleteConnection removes a connection in any status; either side may do it
func (s *ConnectionService) DeleteConnection(ctx context.Context, connectionID, userID uuid.UUID) error {
	conn, err := s.store.GetConnection(ctx, connectionID)
	if err != nil {
		return fromStore(err, "Connection not found")
	}
	if !conn.Involves(userID) {
		return newError(KindForbidden, "You are not part of this connection")
	}
	if err := s.store.DeleteConnection(ctx, connectionID); err != nil {
		return fromStore(err, "Connection not found")
	}
	return nil
}

// GetIncomingRequests lists PENDING requests addressed to userID, newest first
func (s *ConnectionService) GetIncomingRequests(ctx context.Context, userID uuid.UUID) ([]ConnectionView, error) {
	return s.pending(ctx, userID, repository.DirectionIncoming)
}

// GetSentRequests lists PENDING requests userID has sent, newest first
func (s *ConnectionService) GetSentRequests(ctx context.Context, userID uuid.UUID) ([]ConnectionView, error) {
	return s.pending(ctx, userID, repository.DirectionOutgoing)
}

func (s *ConnectionService) pending(ctx context.Context, userID uuid.UUID, dir repository.Direction) ([]ConnectionView, error) {
	conns, err := s.store.ListConnections(ctx, repository.ConnectionFilter{
		UserID:    userID,
		Direction: dir,
		Status:    models.ConnectionPending,
	})
	if err != nil {
		return nil, internal("failed to list connection requests", err)
	}
	views := make([]ConnectionView, 0, len(conns))
	for _, c := range conns {
		other, err := s.store.GetUserByID(ctx, c.Counterpart(userID))
		if err != nil {
			log.Printf("Error loading request profile: %v (connection_id=%s)", err, c.ID)
			continue
		}
		views = append(views, ConnectionView{Connection: c, User: summarize(other)})
	}
	return views, nil
}
