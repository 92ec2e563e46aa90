package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRAVELBUDDY_BACK-END/internal/models"
)

var now = time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

func newUser(t *testing.T, s Store, email string) *models.User {
	t.Helper()
	u := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      email,
		Role:      models.RoleUser,
		Status:    models.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func newConnection(a, b uuid.UUID, status models.ConnectionStatus) *models.Connection {
	return &models.Connection{ID: uuid.New(), SenderID: a, ReceiverID: b, Status: status, CreatedAt: now, UpdatedAt: now}
}

func newPlan(owner uuid.UUID, end time.Time) *models.TravelPlan {
	return &models.TravelPlan{
		ID:          uuid.New(),
		UserID:      owner,
		Destination: "Lisbon",
		StartDate:   end.AddDate(0, 0, -7),
		EndDate:     end,
		TravelType:  models.TravelSolo,
		Visibility:  models.VisibilityPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// storeContract holds the behavior every Store implementation must share.
// Each case gets an empty store.
var storeContract = []struct {
	name string
	run  func(t *testing.T, s Store)
}{
	{"UserEmailUnique", testUserEmailUnique},
	{"LiveConnectionPairUnique", testLiveConnectionPairUnique},
	{"ListConnectionsDirection", testListConnectionsDirection},
	{"WithTxRollsBack", testWithTxRollsBack},
	{"RollbackKeepsWritesOutsideTx", testRollbackKeepsWritesOutsideTx},
	{"DeletePlanCascades", testDeletePlanCascades},
	{"ListTravelPlansFilters", testListTravelPlansFilters},
	{"AverageAndPendingReview", testAverageAndPendingReview},
	{"MarkPaymentSucceeded", testMarkPaymentSucceeded},
	{"Notifications", testNotifications},
}

func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	for _, tc := range storeContract {
		t.Run(tc.name, func(t *testing.T) {
			tc.run(t, newStore(t))
		})
	}
}

func testUserEmailUnique(t *testing.T, s Store) {
	ctx := context.Background()
	newUser(t, s, "a@example.com")

	err := s.CreateUser(ctx, &models.User{ID: uuid.New(), Email: "A@example.com", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, ErrConflict)

	got, err := s.GetUserByEmail(ctx, "A@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = s.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func testLiveConnectionPairUnique(t *testing.T, s Store) {
	ctx := context.Background()
	a := newUser(t, s, "a@example.com")
	b := newUser(t, s, "b@example.com")

	rejected := newConnection(a.ID, b.ID, models.ConnectionRejected)
	require.NoError(t, s.CreateConnection(ctx, rejected))
	require.NoError(t, s.CreateConnection(ctx, newConnection(a.ID, b.ID, models.ConnectionPending)))

	assert.ErrorIs(t, s.CreateConnection(ctx, newConnection(b.ID, a.ID, models.ConnectionPending)), ErrConflict)
	assert.ErrorIs(t, s.UpdateConnectionStatus(ctx, rejected.ID, models.ConnectionAccepted, now), ErrConflict)

	n, err := s.DeleteRejectedConnectionsBetween(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := s.ListConnectionsBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ConnectionPending, rows[0].Status)

	assert.ErrorIs(t, s.UpdateConnectionStatus(ctx, uuid.New(), models.ConnectionAccepted, now), ErrNotFound)
	assert.ErrorIs(t, s.DeleteConnection(ctx, uuid.New()), ErrNotFound)
	require.NoError(t, s.DeleteConnection(ctx, rows[0].ID))
	_, err = s.GetConnection(ctx, rows[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func testListConnectionsDirection(t *testing.T, s Store) {
	ctx := context.Background()
	a := newUser(t, s, "a@example.com")
	b := newUser(t, s, "b@example.com")
	c := newUser(t, s, "c@example.com")
	require.NoError(t, s.CreateConnection(ctx, newConnection(a.ID, b.ID, models.ConnectionPending)))
	require.NoError(t, s.CreateConnection(ctx, newConnection(c.ID, a.ID, models.ConnectionAccepted)))

	tests := []struct {
		dir    Direction
		status models.ConnectionStatus
		want   int
	}{
		{DirectionAny, "", 2},
		{DirectionOutgoing, "", 1},
		{DirectionIncoming, "", 1},
		{DirectionIncoming, models.ConnectionPending, 0},
		{DirectionAny, models.ConnectionAccepted, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%s", tt.dir, tt.status), func(t *testing.T) {
			got, err := s.ListConnections(ctx, ConnectionFilter{UserID: a.ID, Direction: tt.dir, Status: tt.status})
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	since, err := s.CountConnectionsSentSince(ctx, a.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, since)
	since, err = s.CountConnectionsSentSince(ctx, a.ID, now.Add(time.Second))
	require.NoError(t, err)
	assert.Zero(t, since)
}

func testWithTxRollsBack(t *testing.T, s Store) {
	ctx := context.Background()
	u := newUser(t, s, "a@example.com")
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx Store) error {
		require.NoError(t, tx.CreateTravelPlan(ctx, newPlan(u.ID, now)))
		require.NoError(t, tx.UpdateUserRating(ctx, u.ID, 4.5, now))
		// nested transactions join the outer one
		return tx.WithTx(ctx, func(inner Store) error { return boom })
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.CountTravelPlansByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Rating)

	require.NoError(t, s.WithTx(ctx, func(tx Store) error {
		return tx.CreateTravelPlan(ctx, newPlan(u.ID, now))
	}))
	n, err = s.CountTravelPlansByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testRollbackKeepsWritesOutsideTx(t *testing.T, s Store) {
	ctx := context.Background()
	host := newUser(t, s, "host@example.com")
	other := newUser(t, s, "other@example.com")
	boom := errors.New("quota exceeded")

	err := s.WithTx(ctx, func(tx Store) error {
		require.NoError(t, tx.CreateTravelPlan(ctx, newPlan(host.ID, now)))

		// another request writes while the transaction is open
		var wg sync.WaitGroup
		var outsideErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			outsideErr = s.CreateNotification(ctx, &models.Notification{
				ID: uuid.New(), UserID: other.ID, Type: models.NotificationConnectionRequest,
				Message: "hello", CreatedAt: now,
			})
		}()
		wg.Wait()
		require.NoError(t, outsideErr)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.CountTravelPlansByUser(ctx, host.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "write inside the transaction is undone")

	items, total, err := s.ListNotifications(ctx, NotificationFilter{UserID: other.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total, "write outside the transaction survives")
	assert.Len(t, items, 1)
}

func testDeletePlanCascades(t *testing.T, s Store) {
	ctx := context.Background()
	host := newUser(t, s, "host@example.com")
	guest := newUser(t, s, "guest@example.com")
	p := newPlan(host.ID, now)
	require.NoError(t, s.CreateTravelPlan(ctx, p))

	buddy := &models.TravelBuddy{ID: uuid.New(), TravelPlanID: p.ID, UserID: guest.ID, Status: models.BuddyApproved, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateTravelBuddy(ctx, buddy))
	dup := *buddy
	dup.ID = uuid.New()
	assert.ErrorIs(t, s.CreateTravelBuddy(ctx, &dup), ErrConflict)

	found, err := s.FindTravelBuddy(ctx, p.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, buddy.ID, found.ID)

	review := &models.Review{ID: uuid.New(), TravelPlanID: p.ID, ReviewerID: guest.ID, RevieweeID: host.ID, Rating: 4, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateReview(ctx, review))
	dupReview := *review
	dupReview.ID = uuid.New()
	assert.ErrorIs(t, s.CreateReview(ctx, &dupReview), ErrConflict)

	require.NoError(t, s.CreateNotification(ctx, &models.Notification{ID: uuid.New(), UserID: host.ID, TravelPlanID: &p.ID, Type: models.NotificationTripJoinRequest, Message: "join", CreatedAt: now}))

	require.NoError(t, s.DeleteTravelPlan(ctx, p.ID))
	assert.ErrorIs(t, s.DeleteTravelPlan(ctx, p.ID), ErrNotFound)

	_, err = s.GetTravelBuddy(ctx, buddy.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetReview(ctx, review.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	items, total, err := s.ListNotifications(ctx, NotificationFilter{UserID: host.ID})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func testListTravelPlansFilters(t *testing.T, s Store) {
	ctx := context.Background()
	u := newUser(t, s, "a@example.com")
	other := newUser(t, s, "b@example.com")

	mk := func(owner uuid.UUID, dest string, vis models.Visibility, age time.Duration) {
		p := newPlan(owner, now)
		p.Destination = dest
		p.Visibility = vis
		p.CreatedAt = now.Add(-age)
		require.NoError(t, s.CreateTravelPlan(ctx, p))
	}
	mk(u.ID, "Lisbon", models.VisibilityPublic, 3*time.Hour)
	mk(u.ID, "100% Bali", models.VisibilityPublic, 2*time.Hour)
	mk(other.ID, "lisbon coast", models.VisibilityPrivate, time.Hour)
	mk(other.ID, "Porto_North", models.VisibilityPublic, 0)

	tests := []struct {
		name   string
		filter TravelPlanFilter
		want   []string
		total  int
	}{
		{"all, no limit", TravelPlanFilter{}, []string{"Porto_North", "lisbon coast", "100% Bali", "Lisbon"}, 4},
		{"case-insensitive substring", TravelPlanFilter{Destination: "LISBON"}, []string{"lisbon coast", "Lisbon"}, 2},
		{"percent is literal", TravelPlanFilter{Destination: "%"}, []string{"100% Bali"}, 1},
		{"underscore is literal", TravelPlanFilter{Destination: "_"}, []string{"Porto_North"}, 1},
		{"public only", TravelPlanFilter{PublicOnly: true, Destination: "lisbon"}, []string{"Lisbon"}, 1},
		{"by owner", TravelPlanFilter{UserID: &other.ID}, []string{"Porto_North", "lisbon coast"}, 2},
		{"paged", TravelPlanFilter{Limit: 2, Offset: 1}, []string{"lisbon coast", "100% Bali"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans, total, err := s.ListTravelPlans(ctx, tt.filter)
			require.NoError(t, err)
			got := make([]string, 0, len(plans))
			for _, p := range plans {
				got = append(got, p.Destination)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.total, total)
		})
	}
}

func testAverageAndPendingReview(t *testing.T, s Store) {
	ctx := context.Background()
	host := newUser(t, s, "host@example.com")
	guest := newUser(t, s, "guest@example.com")

	avg, n, err := s.AverageRating(ctx, host.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)
	assert.Zero(t, n)

	older := newPlan(host.ID, now.AddDate(0, 0, -10))
	newer := newPlan(host.ID, now.AddDate(0, 0, -1))
	future := newPlan(host.ID, now.AddDate(0, 0, 5))
	pending := newPlan(host.ID, now.AddDate(0, 0, -3))
	for _, p := range []*models.TravelPlan{older, newer, future, pending} {
		require.NoError(t, s.CreateTravelPlan(ctx, p))
		status := models.BuddyApproved
		if p == pending {
			status = models.BuddyPending
		}
		require.NoError(t, s.CreateTravelBuddy(ctx, &models.TravelBuddy{
			ID: uuid.New(), TravelPlanID: p.ID, UserID: guest.ID, Status: status, CreatedAt: now, UpdatedAt: now,
		}))
	}

	got, err := s.FindPendingReviewPlan(ctx, guest.ID, now)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID, "most recently ended first")
	assert.Equal(t, "Lisbon", got.Destination)
	assert.True(t, newer.EndDate.Equal(got.EndDate))

	for i, p := range []*models.TravelPlan{newer, older} {
		require.NoError(t, s.CreateReview(ctx, &models.Review{
			ID: uuid.New(), TravelPlanID: p.ID, ReviewerID: guest.ID, RevieweeID: host.ID, Rating: 2 + 2*i, CreatedAt: now, UpdatedAt: now,
		}))
	}
	_, err = s.FindPendingReviewPlan(ctx, guest.ID, now)
	assert.ErrorIs(t, err, ErrNotFound)

	avg, n, err = s.AverageRating(ctx, host.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 3.0, avg, 1e-9)

	reviews, err := s.ListReviewsByReviewee(ctx, host.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func testMarkPaymentSucceeded(t *testing.T, s Store) {
	ctx := context.Background()
	u := newUser(t, s, "a@example.com")
	p := &models.Payment{ID: uuid.New(), UserID: u.ID, TransactionID: "pi_1", Amount: 1000, Currency: "usd",
		Status: models.PaymentPending, SubscriptionType: models.SubscriptionMonthly, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreatePayment(ctx, p))

	dup := *p
	dup.ID = uuid.New()
	assert.ErrorIs(t, s.CreatePayment(ctx, &dup), ErrConflict)

	moved, err := s.MarkPaymentSucceeded(ctx, "pi_1", now)
	require.NoError(t, err)
	assert.True(t, moved)
	moved, err = s.MarkPaymentSucceeded(ctx, "pi_1", now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, moved, "only PENDING moves to SUCCESS")

	got, err := s.GetPaymentByTransactionID(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, got.Status)
	require.NotNil(t, got.PaidAt)
	assert.True(t, now.Equal(*got.PaidAt), "paid_at is not moved by the second call")

	_, err = s.MarkPaymentSucceeded(ctx, "pi_missing", now)
	assert.ErrorIs(t, err, ErrNotFound)

	payments, err := s.ListPaymentsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func testNotifications(t *testing.T, s Store) {
	ctx := context.Background()
	u := newUser(t, s, "a@example.com")
	other := newUser(t, s, "b@example.com")

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, s.CreateNotification(ctx, &models.Notification{
			ID: ids[i], UserID: u.ID, Type: models.NotificationConnectionRequest,
			Message: "hello", CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	items, total, err := s.ListNotifications(ctx, NotificationFilter{UserID: u.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, ids[2], items[0].ID, "newest first")

	ok, err := s.MarkNotificationRead(ctx, ids[0], other.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.MarkNotificationRead(ctx, ids[0], u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	unread, err := s.CountUnreadNotifications(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	n, err := s.MarkAllNotificationsRead(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, total, err = s.ListNotifications(ctx, NotificationFilter{UserID: u.ID, UnreadOnly: true})
	require.NoError(t, err)
	assert.Zero(t, total)
}
