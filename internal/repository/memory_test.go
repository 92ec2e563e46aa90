package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRAVELBUDDY_BACK-END/internal/models"
)

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestMemoryStore_RollbackRestoresUpdatedRows(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := newUser(t, s, "a@example.com")
	p := newPlan(u.ID, now)
	require.NoError(t, s.CreateTravelPlan(ctx, p))
	require.NoError(t, s.CreateNotification(ctx, &models.Notification{
		ID: uuid.New(), UserID: u.ID, TravelPlanID: &p.ID, Type: models.NotificationTripJoinRequest, CreatedAt: now,
	}))

	err := s.WithTx(ctx, func(tx Store) error {
		require.NoError(t, tx.UpdateUserRating(ctx, u.ID, 5, now))
		require.NoError(t, tx.UpdateUserRating(ctx, u.ID, 1, now))
		require.NoError(t, tx.DeleteTravelPlan(ctx, p.ID))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Rating, "first journaled value wins")
	_, err = s.GetTravelPlan(ctx, p.ID)
	require.NoError(t, err)
	_, total, err := s.ListNotifications(ctx, NotificationFilter{UserID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total, "cascaded rows come back too")

	plans, _, err := s.ListTravelPlans(ctx, TravelPlanFilter{})
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}
