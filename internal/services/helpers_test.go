package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/repository"
)

// t0 is the fixed "now" every test starts from
var t0 = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

type env struct {
	ctx           context.Context
	store         *repository.MemoryStore
	clock         *FixedClock
	gateway       *mockGateway
	entitlements  *EntitlementService
	notifications *NotificationService
	connections   *ConnectionService
	plans         *TravelPlanService
	reviews       *ReviewService
	payments      *PaymentService
	users         *UserService
}

func newEnv(t *testing.T, opts Options) *env {
	t.Helper()
	store := repository.NewMemoryStore()
	clock := NewFixedClock(t0)
	gw := &mockGateway{}
	t.Cleanup(func() { gw.AssertExpectations(t) })

	ent := NewEntitlementService(store, clock)
	notif := NewNotificationService(store, clock)
	return &env{
		ctx:           context.Background(),
		store:         store,
		clock:         clock,
		gateway:       gw,
		entitlements:  ent,
		notifications: notif,
		connections:   NewConnectionService(store, ent, notif, clock, opts),
		plans:         NewTravelPlanService(store, ent, notif, clock, opts),
		reviews:       NewReviewService(store, clock),
		payments:      NewPaymentService(store, gw, DefaultPricing(), clock),
		users:         NewUserService(store, clock, 4),
	}
}

func (e *env) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{
		ID:        uuid.New(),
		Email:     name + "@example.com",
		Name:      name,
		Role:      models.RoleUser,
		Status:    models.UserStatusActive,
		CreatedAt: e.clock.Now(),
		UpdatedAt: e.clock.Now(),
	}
	require.NoError(t, e.store.CreateUser(e.ctx, u))
	return u
}

func (e *env) admin(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{
		ID:        uuid.New(),
		Email:     name + "@example.com",
		Name:      name,
		Role:      models.RoleAdmin,
		Status:    models.UserStatusActive,
		CreatedAt: e.clock.Now(),
		UpdatedAt: e.clock.Now(),
	}
	require.NoError(t, e.store.CreateUser(e.ctx, u))
	return u
}

func (e *env) subscribe(t *testing.T, u *models.User, subType models.SubscriptionType, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, e.store.UpdateUserSubscription(e.ctx, u.ID, subType, expiresAt, e.clock.Now()))
	fresh, err := e.store.GetUserByID(e.ctx, u.ID)
	require.NoError(t, err)
	*u = *fresh
}

func (e *env) reload(t *testing.T, id uuid.UUID) *models.User {
	t.Helper()
	u, err := e.store.GetUserByID(e.ctx, id)
	require.NoError(t, err)
	return u
}

func planInput(dest string, start, end time.Time) PlanInput {
	return PlanInput{Destination: dest, StartDate: start, EndDate: end, Budget: 1200}
}

func (e *env) plan(t *testing.T, owner *models.User, dest string) *models.TravelPlan {
	t.Helper()
	now := e.clock.Now()
	p, err := e.plans.CreatePlan(e.ctx, owner.ID, planInput(dest, now.AddDate(0, 0, 10), now.AddDate(0, 0, 17)))
	require.NoError(t, err)
	return p
}

func (e *env) notificationsOf(t *testing.T, userID uuid.UUID, typ models.NotificationType) []models.Notification {
	t.Helper()
	items, _, err := e.store.ListNotifications(e.ctx, repository.NotificationFilter{UserID: userID, Type: typ, Limit: 100})
	require.NoError(t, err)
	return items
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}

// mockGateway is a testify mock of PaymentGateway
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	args := m.Called(ctx, amount, currency, metadata)
	intent, _ := args.Get(0).(*PaymentIntent)
	return intent, args.Error(1)
}

func (m *mockGateway) RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	args := m.Called(ctx, id)
	intent, _ := args.Get(0).(*PaymentIntent)
	return intent, args.Error(1)
}

func (m *mockGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	args := m.Called(payload, signature)
	event, _ := args.Get(0).(*WebhookEvent)
	return event, args.Error(1)
}
