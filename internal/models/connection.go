package models

import (
	"time"

	"github.com/google/uuid"
)

// ConnectionStatus of a peer connection
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "PENDING"
	ConnectionAccepted ConnectionStatus = "ACCEPTED"
	ConnectionRejected ConnectionStatus = "REJECTED"
)

// Connection is a directed row for an undirected social edge.
// Only the receiver may change Status.
type Connection struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	SenderID   uuid.UUID        `json:"sender_id" db:"sender_id"`
	ReceiverID uuid.UUID        `json:"receiver_id" db:"receiver_id"`
	Status     ConnectionStatus `json:"status" db:"status"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" db:"updated_at"`
}

// Involves reports whether userID is either side of the connection
func (c *Connection) Involves(userID uuid.UUID) bool {
	return c.SenderID == userID || c.ReceiverID == userID
}

// Counterpart returns the other side of the connection from userID's view
func (c *Connection) Counterpart(userID uuid.UUID) uuid.UUID {
	if c.SenderID == userID {
		return c.ReceiverID
	}
	return c.SenderID
}
