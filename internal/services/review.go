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

// ReviewInput is the payload of a new review
type ReviewInput struct {
	TravelPlanID uuid.UUID
	Rating       int
	Content      string
}

// ReviewView is a review with the reviewer's profile
type ReviewView struct {
	models.Review
	Reviewer UserSummary `json:"reviewer"`
}

// ReviewService governs who may review a finished trip and keeps the
// host's average rating in step with the reviews they received
type ReviewService struct {
	store repository.Store
	clock Clock
}

// NewReviewService creates a new ReviewService
func NewReviewService(store repository.Store, clock Clock) *ReviewService {
	return &ReviewService{store: store, clock: clock}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return newError(KindInvalidInput, "rating must be between 1 and 5")
	}
	return nil
}

// CreateReview lets an approved buddy review the host once the trip ended.
// Preconditions are checked in order and the first failure wins; the
// rating itself is validated only after all of them pass.
func (s *ReviewService) CreateReview(ctx context.Context, reviewerID uuid.UUID, in ReviewInput) (*models.Review, error) {
	plan, err := s.store.GetTravelPlan(ctx, in.TravelPlanID)
	if err != nil {
		return nil, fromStore(err, "Travel plan not found")
	}
	now := s.clock.Now()
	if now.Before(plan.EndDate) {
		return nil, newError(KindInvalidState, "You can only review a trip after it has ended")
	}
	if plan.UserID == reviewerID {
		return nil, newError(KindInvalidInput, "You cannot review your own trip")
	}
	buddy, err := s.store.FindTravelBuddy(ctx, plan.ID, reviewerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, internal("failed to look up trip membership", err)
	}
	if buddy == nil || buddy.Status != models.BuddyApproved {
		return nil, newError(KindForbidden, "Only approved travel buddies can review this trip")
	}
	if _, err := s.store.FindReview(ctx, plan.ID, reviewerID); err == nil {
		return nil, newError(KindConflict, "You have already reviewed this trip")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, internal("failed to look up review", err)
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:           uuid.New(),
		TravelPlanID: plan.ID,
		ReviewerID:   reviewerID,
		RevieweeID:   plan.UserID,
		Rating:       in.Rating,
		Content:      strings.TrimSpace(in.Content),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.CreateReview(ctx, review); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return newError(KindConflict, "You have already reviewed this trip")
			}
			return fromStore(err, "failed to create review")
		}
		return recomputeRating(ctx, tx, plan.UserID, now)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// recomputeRating writes the mean of every review revieweeID received
func recomputeRating(ctx context.Context, tx repository.Store, revieweeID uuid.UUID, now time.Time) error {
	avg, n, err := tx.AverageRating(ctx, revieweeID)
	if err != nil {
		return internal("failed to aggregate ratings", err)
	}
	if n == 0 {
		avg = 0
	}
	if err := tx.UpdateUserRating(ctx, revieweeID, avg, now); err != nil {
		return fromStore(err, "failed to update rating")
	}
	return nil
}

func (s *ReviewService) ownReview(ctx context.Context, reviewerID, reviewID uuid.UUID) (*models.Review, error) {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return nil, fromStore(err, "Review not found")
	}
	if review.ReviewerID != reviewerID {
		return nil, newError(KindForbidden, "Only the author can change this review")
	}
	return review, nil
}

// UpdateReview changes rating and content (author only) and refreshes
// the host's average
func (s *ReviewService) UpdateReview(ctx context.Context, reviewerID, reviewID uuid.UUID, rating int, content string) (*models.Review, error) {
	review, err := s.ownReview(ctx, reviewerID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	review.Rating = rating
	review.Content = strings.TrimSpace(content)
	review.UpdatedAt = now
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.UpdateReview(ctx, review); err != nil {
			return fromStore(err, "Review not found")
		}
		return recomputeRating(ctx, tx, review.RevieweeID, now)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review (author only) and refreshes the host's average
func (s *ReviewService) DeleteReview(ctx context.Context, reviewerID, reviewID uuid.UUID) error {
	review, err := s.ownReview(ctx, reviewerID, reviewID)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.DeleteReview(ctx, review.ID); err != nil {
			return fromStore(err, "Review not found")
		}
		return recomputeRating(ctx, tx, review.RevieweeID, now)
	})
}

// GetPendingReview returns a finished trip the user joined but has not
// reviewed yet, or nil when there is none
func (s *ReviewService) GetPendingReview(ctx context.Context, userID uuid.UUID) (*models.TravelPlan, error) {
	plan, err := s.store.FindPendingReviewPlan(ctx, userID, s.clock.Now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internal("failed to look up pending review", err)
	}
	return plan, nil
}

// ListReviewsForUser returns the reviews a user received, newest first
func (s *ReviewService) ListReviewsForUser(ctx context.Context, userID uuid.UUID) ([]ReviewView, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, fromStore(err, "User not found")
	}
	reviews, err := s.store.ListReviewsByReviewee(ctx, userID)
	if err != nil {
		return nil, internal("failed to list reviews", err)
	}
	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		u, err := s.store.GetUserByID(ctx, r.ReviewerID)
		if err != nil {
			log.Printf("Error loading reviewer profile: %v (review_id=%s)", err, r.ID)
			continue
		}
		views = append(views, ReviewView{Review: r, Reviewer: summarize(u)})
	}
	return views, nil
}
