package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRAVELBUDDY_BACK-END/internal/models"
)

// tripWithBuddies creates a plan by host and approves each guest
func (e *env) tripWithBuddies(t *testing.T, host *models.User, guests ...*models.User) *models.TravelPlan {
	t.Helper()
	p := e.plan(t, host, "Lisbon")
	for _, g := range guests {
		b, err := e.plans.RequestJoinTrip(e.ctx, p.ID, g.ID)
		require.NoError(t, err)
		_, err = e.plans.UpdateJoinRequestStatus(e.ctx, b.ID, host.ID, models.BuddyApproved)
		require.NoError(t, err)
	}
	return p
}

func TestCreateReview_PreconditionOrder(t *testing.T) {
	e := newEnv(t, Options{})
	host := e.user(t, "host")
	guest := e.user(t, "guest")
	pending := e.user(t, "pending")
	stranger := e.user(t, "stranger")
	p := e.tripWithBuddies(t, host, guest)
	_, err := e.plans.RequestJoinTrip(e.ctx, p.ID, pending.ID)
	require.NoError(t, err)

	in := ReviewInput{TravelPlanID: p.ID, Rating: 4, Content: "Great host"}

	t.Run("unknown plan", func(t *testing.T) {
		_, err := e.reviews.CreateReview(e.ctx, guest.ID, ReviewInput{TravelPlanID: uuid.New(), Rating: 4})
		requireKind(t, err, KindNotFound)
		_, err = e.reviews.CreateReview(e.ctx, guest.ID, ReviewInput{TravelPlanID: uuid.New(), Rating: 0})
		requireKind(t, err, KindNotFound)
	})

	t.Run("bad rating does not mask the trip window", func(t *testing.T) {
		_, err := e.reviews.CreateReview(e.ctx, guest.ID, ReviewInput{TravelPlanID: p.ID, Rating: 0})
		requireKind(t, err, KindInvalidState)
	})

	t.Run("trip not ended wins over every other failure", func(t *testing.T) {
		for _, reviewer := range []uuid.UUID{guest.ID, host.ID, stranger.ID} {
			_, err := e.reviews.CreateReview(e.ctx, reviewer, in)
			requireKind(t, err, KindInvalidState)
		}
	})

	e.clock.Set(p.EndDate)

	t.Run("self review", func(t *testing.T) {
		_, err := e.reviews.CreateReview(e.ctx, host.ID, in)
		requireKind(t, err, KindInvalidInput)
	})

	t.Run("not a buddy", func(t *testing.T) {
		_, err := e.reviews.CreateReview(e.ctx, stranger.ID, in)
		requireKind(t, err, KindForbidden)
		_, err = e.reviews.CreateReview(e.ctx, stranger.ID, ReviewInput{TravelPlanID: p.ID, Rating: 9})
		requireKind(t, err, KindForbidden)
	})

	t.Run("buddy not approved", func(t *testing.T) {
		_, err := e.reviews.CreateReview(e.ctx, pending.ID, in)
		requireKind(t, err, KindForbidden)
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := e.reviews.CreateReview(e.ctx, guest.ID, ReviewInput{TravelPlanID: p.ID, Rating: 6})
		requireKind(t, err, KindInvalidInput)
	})

	t.Run("exactly one review succeeds", func(t *testing.T) {
		r, err := e.reviews.CreateReview(e.ctx, guest.ID, in)
		require.NoError(t, err)
		assert.Equal(t, host.ID, r.RevieweeID)

		_, err = e.reviews.CreateReview(e.ctx, guest.ID, in)
		requireKind(t, err, KindConflict)
		_, err = e.reviews.CreateReview(e.ctx, guest.ID, ReviewInput{TravelPlanID: p.ID, Rating: 0})
		requireKind(t, err, KindConflict)
	})
}

func TestRatingIsMeanOfAllReviews(t *testing.T) {
	e := newEnv(t, Options{})
	host := e.user(t, "host")
	ratings := []int{5, 4, 2, 5, 3}
	guests := make([]*models.User, len(ratings))
	for i := range guests {
		guests[i] = e.user(t, "guest"+string(rune('a'+i)))
	}

	// spread the reviews over two trips by the same host
	p1 := e.tripWithBuddies(t, host, guests[:3]...)
	p2 := e.tripWithBuddies(t, host, guests[3:]...)
	e.clock.Advance(30 * 24 * time.Hour)

	sum := 0
	for i, g := range guests {
		plan := p1
		if i >= 3 {
			plan = p2
		}
		_, err := e.reviews.CreateReview(e.ctx, g.ID, ReviewInput{TravelPlanID: plan.ID, Rating: ratings[i]})
		require.NoError(t, err)
		sum += ratings[i]
		assert.InDelta(t, float64(sum)/float64(i+1), e.reload(t, host.ID).Rating, 1e-9)
	}
}

func TestUpdateAndDeleteReview(t *testing.T) {
	e := newEnv(t, Options{})
	host := e.user(t, "host")
	g1 := e.user(t, "g1")
	g2 := e.user(t, "g2")
	p := e.tripWithBuddies(t, host, g1, g2)
	e.clock.Set(p.EndDate.Add(time.Hour))

	r1, err := e.reviews.CreateReview(e.ctx, g1.ID, ReviewInput{TravelPlanID: p.ID, Rating: 5})
	require.NoError(t, err)
	r2, err := e.reviews.CreateReview(e.ctx, g2.ID, ReviewInput{TravelPlanID: p.ID, Rating: 3})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, e.reload(t, host.ID).Rating, 1e-9)

	_, err = e.reviews.UpdateReview(e.ctx, g2.ID, r1.ID, 1, "")
	requireKind(t, err, KindForbidden)
	requireKind(t, e.reviews.DeleteReview(e.ctx, host.ID, r1.ID), KindForbidden)
	_, err = e.reviews.UpdateReview(e.ctx, g1.ID, r1.ID, 0, "")
	requireKind(t, err, KindInvalidInput)

	updated, err := e.reviews.UpdateReview(e.ctx, g1.ID, r1.ID, 1, " changed my mind ")
	require.NoError(t, err)
	assert.Equal(t, "changed my mind", updated.Content)
	assert.InDelta(t, 2.0, e.reload(t, host.ID).Rating, 1e-9)

	require.NoError(t, e.reviews.DeleteReview(e.ctx, g2.ID, r2.ID))
	assert.InDelta(t, 1.0, e.reload(t, host.ID).Rating, 1e-9)

	require.NoError(t, e.reviews.DeleteReview(e.ctx, g1.ID, r1.ID))
	assert.Zero(t, e.reload(t, host.ID).Rating)
	requireKind(t, e.reviews.DeleteReview(e.ctx, g1.ID, r1.ID), KindNotFound)
}

func TestDeletePlanRecomputesRating(t *testing.T) {
	e := newEnv(t, Options{})
	host := e.user(t, "host")
	guest := e.user(t, "guest")
	p := e.tripWithBuddies(t, host, guest)
	e.clock.Set(p.EndDate)

	_, err := e.reviews.CreateReview(e.ctx, guest.ID, ReviewInput{TravelPlanID: p.ID, Rating: 2})
	require.NoError(t, err)
	require.InDelta(t, 2.0, e.reload(t, host.ID).Rating, 1e-9)

	require.NoError(t, e.plans.DeletePlan(e.ctx, host.ID, p.ID))
	assert.Zero(t, e.reload(t, host.ID).Rating)

	reviews, err := e.reviews.ListReviewsForUser(e.ctx, host.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestGetPendingReview(t *testing.T) {
	e := newEnv(t, Options{})
	host := e.user(t, "host")
	guest := e.user(t, "guest")

	got, err := e.reviews.GetPendingReview(e.ctx, guest.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	p := e.tripWithBuddies(t, host, guest)

	got, err = e.reviews.GetPendingReview(e.ctx, guest.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "trip has not ended")

	e.clock.Set(p.EndDate.Add(time.Minute))
	got, err = e.reviews.GetPendingReview(e.ctx, guest.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)

	_, err = e.reviews.CreateReview(e.ctx, guest.ID, ReviewInput{TravelPlanID: p.ID, Rating: 4})
	require.NoError(t, err)
	got, err = e.reviews.GetPendingReview(e.ctx, guest.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListReviewsForUser(t *testing.T) {
	e := newEnv(t, Options{})
	host := e.user(t, "host")
	guest := e.user(t, "guest")
	p := e.tripWithBuddies(t, host, guest)
	e.clock.Set(p.EndDate)
	_, err := e.reviews.CreateReview(e.ctx, guest.ID, ReviewInput{TravelPlanID: p.ID, Rating: 5, Content: "Lovely"})
	require.NoError(t, err)

	views, err := e.reviews.ListReviewsForUser(e.ctx, host.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "guest", views[0].Reviewer.Name)

	_, err = e.reviews.ListReviewsForUser(e.ctx, uuid.New())
	requireKind(t, err, KindNotFound)
}

func TestLisbonScenario(t *testing.T) {
	e := newEnv(t, Options{})
	u1 := e.user(t, "u1")
	u2 := e.user(t, "u2")

	p1, err := e.plans.CreatePlan(e.ctx, u1.ID, planInput("Lisbon", t0.AddDate(0, 0, 10), t0.AddDate(0, 0, 17)))
	require.NoError(t, err)
	assert.Equal(t, u1.ID, p1.UserID)

	buddy, err := e.plans.RequestJoinTrip(e.ctx, p1.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BuddyPending, buddy.Status)
	joinNotes := e.notificationsOf(t, u1.ID, models.NotificationTripJoinRequest)
	require.Len(t, joinNotes, 1)
	assert.Equal(t, p1.ID, *joinNotes[0].TravelPlanID)

	approved, err := e.plans.UpdateJoinRequestStatus(e.ctx, buddy.ID, u1.ID, models.BuddyApproved)
	require.NoError(t, err)
	assert.Equal(t, models.BuddyApproved, approved.Status)
	assert.Len(t, e.notificationsOf(t, u2.ID, models.NotificationTripApproved), 1)

	e.clock.Set(p1.EndDate.Add(time.Hour))

	_, err = e.reviews.CreateReview(e.ctx, u2.ID, ReviewInput{TravelPlanID: p1.ID, Rating: 5})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, e.reload(t, u1.ID).Rating, 1e-9)

	_, err = e.reviews.CreateReview(e.ctx, u2.ID, ReviewInput{TravelPlanID: p1.ID, Rating: 3})
	requireKind(t, err, KindConflict)
	assert.InDelta(t, 5.0, e.reload(t, u1.ID).Rating, 1e-9)
}
