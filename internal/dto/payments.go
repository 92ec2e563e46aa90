package dto

// CreatePaymentIntentRequest starts a subscription purchase
type CreatePaymentIntentRequest struct {
	SubscriptionType string `json:"subscription_type" validate:"required"`
}

// PaymentIntentResponse carries what the client needs to complete the
// charge with the gateway
type PaymentIntentResponse struct {
	PaymentID        string `json:"payment_id"`
	TransactionID    string `json:"transaction_id"`
	ClientSecret     string `json:"client_secret"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	SubscriptionType string `json:"subscription_type"`
}

// ConfirmPaymentRequest asks the server to verify a charge
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

// PaymentResponse represents a payment row
type PaymentResponse struct {
	ID               string  `json:"id"`
	TransactionID    string  `json:"transaction_id"`
	Amount           int64   `json:"amount"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
	SubscriptionType string  `json:"subscription_type"`
	PaidAt           *string `json:"paid_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// ConfirmPaymentResponse reports the payment and resulting entitlement
type ConfirmPaymentResponse struct {
	Payment               PaymentResponse `json:"payment"`
	SubscriptionType      string          `json:"subscription_type,omitempty"`
	SubscriptionExpiresAt *string         `json:"subscription_expires_at,omitempty"`
	Premium               bool            `json:"premium"`
}

// WebhookAck is returned to the gateway
type WebhookAck struct {
	Received bool `json:"received"`
}

// QuotaResponse describes one quota; Limit is -1 when unlimited
type QuotaResponse struct {
	Limit     int `json:"limit"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

// SubscriptionResponse reports the caller's effective tier and usage
type SubscriptionResponse struct {
	Tier                   string        `json:"tier"`
	SubscriptionType       string        `json:"subscription_type,omitempty"`
	ExpiresAt              *string       `json:"expires_at,omitempty"`
	Premium                bool          `json:"premium"`
	TravelPlans            QuotaResponse `json:"travel_plans"`
	ConnectionRequests     QuotaResponse `json:"connection_requests"`
	ConnectionWindowOpened string        `json:"connection_window_opened"`
}
