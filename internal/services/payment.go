package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/repository"
)

// IntentStatus is the gateway-side state of a payment intent
type IntentStatus string

const (
	IntentSucceeded      IntentStatus = "succeeded"
	IntentProcessing     IntentStatus = "processing"
	IntentRequiresAction IntentStatus = "requires_action"
	IntentCanceled       IntentStatus = "canceled"
)

// EventPaymentSucceeded is the webhook event type that settles a payment
const EventPaymentSucceeded = "payment_intent.succeeded"

// Metadata keys attached to every intent
const (
	MetaUserID           = "userId"
	MetaSubscriptionType = "subscriptionType"
)

// PaymentIntent is the gateway's view of a charge attempt
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	Amount       int64
	Currency     string
	Metadata     map[string]string
}

// WebhookEvent is a verified gateway event
type WebhookEvent struct {
	ID       string
	Type     string
	IntentID string
	Metadata map[string]string
}

// PaymentGateway is the payment processor used for subscriptions
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error)
	// ParseWebhook verifies signature over the raw payload and decodes it
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// Pricing maps purchasable tiers to prices in minor currency units
type Pricing struct {
	Currency string
	Prices   map[models.SubscriptionType]int64
}

// DefaultPricing is used when nothing is configured
func DefaultPricing() Pricing {
	return Pricing{
		Currency: "usd",
		Prices: map[models.SubscriptionType]int64{
			models.SubscriptionExplorer: 500,
			models.SubscriptionMonthly:  1000,
			models.SubscriptionYearly:   10000,
		},
	}
}

// SubscriptionExpiry is when a subscription bought at paidAt runs out
func SubscriptionExpiry(t models.SubscriptionType, paidAt time.Time) time.Time {
	switch t {
	case models.SubscriptionExplorer:
		return paidAt.Add(7 * 24 * time.Hour)
	case models.SubscriptionMonthly:
		return paidAt.AddDate(0, 1, 0)
	case models.SubscriptionYearly:
		return paidAt.AddDate(1, 0, 0)
	}
	return paidAt
}

// IntentResult is returned to the client after creating an intent
type IntentResult struct {
	PaymentID        uuid.UUID               `json:"payment_id"`
	TransactionID    string                  `json:"transaction_id"`
	ClientSecret     string                  `json:"client_secret"`
	Amount           int64                   `json:"amount"`
	Currency         string                  `json:"currency"`
	SubscriptionType models.SubscriptionType `json:"subscription_type"`
}

// ConfirmResult describes the payment and entitlement after confirmation
type ConfirmResult struct {
	Payment               *models.Payment         `json:"payment"`
	SubscriptionType      models.SubscriptionType `json:"subscription_type"`
	SubscriptionExpiresAt *time.Time              `json:"subscription_expires_at"`
	Premium               bool                    `json:"premium"`
	// Granted is true only for the call that settled the payment
	Granted bool `json:"granted"`
}

// PaymentService reconciles gateway payments with user entitlements
type PaymentService struct {
	store   repository.Store
	gateway PaymentGateway
	pricing Pricing
	clock   Clock
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(store repository.Store, gateway PaymentGateway, pricing Pricing, clock Clock) *PaymentService {
	return &PaymentService{store: store, gateway: gateway, pricing: pricing, clock: clock}
}

// CreatePaymentIntent opens a gateway intent for the tier and stores a
// PENDING payment keyed by the intent id
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, userID uuid.UUID, subType models.SubscriptionType) (*IntentResult, error) {
	subType = models.SubscriptionType(strings.ToUpper(strings.TrimSpace(string(subType))))
	price, ok := s.pricing.Prices[subType]
	if !subType.Valid() || !ok || price <= 0 {
		return nil, newError(KindInvalidInput, "subscription_type must be EXPLORER, MONTHLY or YEARLY")
	}
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindUnauthenticated, "User account not found")
		}
		return nil, internal("failed to load user", err)
	}

	intent, err := s.gateway.CreateIntent(ctx, price, s.pricing.Currency, map[string]string{
		MetaUserID:           userID.String(),
		MetaSubscriptionType: string(subType),
	})
	if err != nil {
		return nil, internal("failed to create payment intent", err)
	}

	now := s.clock.Now()
	p := &models.Payment{
		ID:               uuid.New(),
		UserID:           userID,
		TransactionID:    intent.ID,
		Amount:           price,
		Currency:         s.pricing.Currency,
		Status:           models.PaymentPending,
		SubscriptionType: subType,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.CreatePayment(ctx, p); err != nil {
		return nil, fromStore(err, "failed to record payment")
	}
	return &IntentResult{
		PaymentID:        p.ID,
		TransactionID:    intent.ID,
		ClientSecret:     intent.ClientSecret,
		Amount:           price,
		Currency:         p.Currency,
		SubscriptionType: subType,
	}, nil
}

// ConfirmPayment is the synchronous path: the client reports the intent
// succeeded and the gateway is asked to confirm it. Confirming an
// already-settled payment returns the current state without extending
// the subscription.
func (s *PaymentService) ConfirmPayment(ctx context.Context, userID uuid.UUID, transactionID string) (*ConfirmResult, error) {
	p, err := s.store.GetPaymentByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fromStore(err, "Payment not found")
	}
	if p.UserID != userID {
		return nil, newError(KindForbidden, "This payment belongs to another user")
	}

	granted := false
	if p.Status != models.PaymentSuccess {
		intent, err := s.gateway.RetrieveIntent(ctx, transactionID)
		if err != nil {
			return nil, internal("failed to retrieve payment intent", err)
		}
		if intent.Status != IntentSucceeded {
			return nil, errorf(KindInvalidState, "Payment has not succeeded yet (status: %s)", intent.Status)
		}
		if granted, err = s.reconcile(ctx, transactionID); err != nil {
			return nil, err
		}
	}

	p, err = s.store.GetPaymentByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fromStore(err, "Payment not found")
	}
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}
	return &ConfirmResult{
		Payment:               p,
		SubscriptionType:      u.SubscriptionType,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		Premium:               u.Premium,
		Granted:               granted,
	}, nil
}

// HandleWebhook is the asynchronous path. Signature failures are reported
// as InvalidSignature and nothing is processed. Events for other types or
// unknown intents are acknowledged without changes.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return &Error{Kind: KindInvalidSignature, Message: "Webhook signature verification failed", Err: err}
	}
	if event.Type != EventPaymentSucceeded {
		log.Printf("Ignoring webhook event %s (id=%s)", event.Type, event.ID)
		return nil
	}
	if event.IntentID == "" {
		return newError(KindInvalidInput, "Webhook event carries no payment intent")
	}

	granted, err := s.reconcile(ctx, event.IntentID)
	if IsKind(err, KindNotFound) {
		log.Printf("Webhook for unknown payment intent: %s (event_id=%s)", event.IntentID, event.ID)
		return nil
	}
	if err != nil {
		return err
	}
	if !granted {
		log.Printf("Webhook for already settled payment: %s (event_id=%s)", event.IntentID, event.ID)
	}
	return nil
}

// reconcile settles a payment and grants its subscription in one
// transaction. Only the call that moves the payment from PENDING to
// SUCCESS touches the user, so repeated confirms and webhooks are no-ops.
func (s *PaymentService) reconcile(ctx context.Context, transactionID string) (bool, error) {
	now := s.clock.Now()
	granted := false
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		moved, err := tx.MarkPaymentSucceeded(ctx, transactionID, now)
		if err != nil {
			return fromStore(err, "Payment not found")
		}
		if !moved {
			return nil
		}
		p, err := tx.GetPaymentByTransactionID(ctx, transactionID)
		if err != nil {
			return fromStore(err, "Payment not found")
		}
		expiresAt := SubscriptionExpiry(p.SubscriptionType, now)
		if err := tx.UpdateUserSubscription(ctx, p.UserID, p.SubscriptionType, expiresAt, now); err != nil {
			return fromStore(err, "failed to grant subscription")
		}
		granted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return granted, nil
}

// ListMyPayments returns the caller's payments, newest first
func (s *PaymentService) ListMyPayments(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	payments, err := s.store.ListPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, internal("failed to list payments", err)
	}
	return payments, nil
}
