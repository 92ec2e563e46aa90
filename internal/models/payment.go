package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus of a gateway charge
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
)

// Payment mirrors one payment intent at the gateway
type Payment struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	UserID           uuid.UUID        `json:"user_id" db:"user_id"`
	TransactionID    string           `json:"transaction_id" db:"transaction_id"`
	Amount           int64            `json:"amount" db:"amount"` // minor units
	Currency         string           `json:"currency" db:"currency"`
	Status           PaymentStatus    `json:"status" db:"status"`
	SubscriptionType SubscriptionType `json:"subscription_type" db:"subscription_type"`
	PaidAt           *time.Time       `json:"paid_at" db:"paid_at"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}
