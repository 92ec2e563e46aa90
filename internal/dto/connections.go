package dto

// SendConnectionRequest asks another user to connect
type SendConnectionRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
}

// RespondConnectionRequest is the receiver's answer
type RespondConnectionRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED REJECTED"`
}

// ConnectionResponse represents a connection row, with the other party
// attached on list endpoints
type ConnectionResponse struct {
	ID         string               `json:"id"`
	SenderID   string               `json:"sender_id"`
	ReceiverID string               `json:"receiver_id"`
	Status     string               `json:"status"`
	User       *UserSummaryResponse `json:"user,omitempty"`
	CreatedAt  string               `json:"created_at"`
	UpdatedAt  string               `json:"updated_at"`
}

// BuddyResponse is an accepted connection seen from the caller's side
type BuddyResponse struct {
	ConnectionID string              `json:"connection_id"`
	User         UserSummaryResponse `json:"user"`
	Since        string              `json:"since"`
}
