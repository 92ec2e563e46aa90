package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/repository"
)

// PlanInput carries the editable fields of a travel plan
type PlanInput struct {
	Destination string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Budget      float64
	TravelType  models.TravelType
	Visibility  models.Visibility
}

func (in *PlanInput) normalize() error {
	in.Destination = strings.TrimSpace(in.Destination)
	in.Description = strings.TrimSpace(in.Description)
	if in.Destination == "" {
		return newError(KindInvalidInput, "destination is required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return newError(KindInvalidInput, "start_date and end_date are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return newError(KindInvalidInput, "end_date cannot be before start_date")
	}
	if in.Budget < 0 {
		return newError(KindInvalidInput, "budget cannot be negative")
	}
	switch in.TravelType {
	case "":
		in.TravelType = models.TravelSolo
	case models.TravelSolo, models.TravelFamily, models.TravelFriends, models.TravelCouple:
	default:
		return newError(KindInvalidInput, "travel_type must be SOLO, FAMILY, FRIENDS or COUPLE")
	}
	switch in.Visibility {
	case "":
		in.Visibility = models.VisibilityPublic
	case models.VisibilityPublic, models.VisibilityPrivate:
	default:
		return newError(KindInvalidInput, "visibility must be PUBLIC or PRIVATE")
	}
	return nil
}

// PlanPage is one page of travel plans
type PlanPage struct {
	Items  []models.TravelPlan `json:"items"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// JoinRequestView is a join request with the requester's profile
type JoinRequestView struct {
	models.TravelBuddy
	User UserSummary `json:"user"`
}

// TravelPlanService owns travel plans and their join-request lifecycle
type TravelPlanService struct {
	store        repository.Store
	entitlements *EntitlementService
	notifier     *NotificationService
	clock        Clock
	opts         Options
}

// NewTravelPlanService creates a new TravelPlanService
func NewTravelPlanService(store repository.Store, entitlements *EntitlementService, notifier *NotificationService, clock Clock, opts Options) *TravelPlanService {
	return &TravelPlanService{store: store, entitlements: entitlements, notifier: notifier, clock: clock, opts: opts}
}

// CreatePlan publishes a plan owned by userID, subject to the plan quota
func (s *TravelPlanService) CreatePlan(ctx context.Context, userID uuid.UUID, in PlanInput) (*models.TravelPlan, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	owner, err := s.store.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(KindUnauthenticated, "User account not found")
	}
	if err != nil {
		return nil, internal("failed to load user", err)
	}

	now := s.clock.Now()
	plan := &models.TravelPlan{
		ID:          uuid.New(),
		UserID:      userID,
		Destination: in.Destination,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Budget:      in.Budget,
		TravelType:  in.TravelType,
		Visibility:  in.Visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := s.entitlements.in(tx).CheckPlanQuota(ctx, owner); err != nil {
			return err
		}
		return fromStore(tx.CreateTravelPlan(ctx, plan), "failed to create travel plan")
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// authorizeOwner loads the plan and checks callerID owns it or is an admin
func (s *TravelPlanService) authorizeOwner(ctx context.Context, callerID, planID uuid.UUID) (*models.TravelPlan, error) {
	plan, err := s.store.GetTravelPlan(ctx, planID)
	if err != nil {
		return nil, fromStore(err, "Travel plan not found")
	}
	if plan.UserID == callerID {
		return plan, nil
	}
	caller, err := s.store.GetUserByID(ctx, callerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, internal("failed to load user", err)
	}
	if caller == nil || !caller.IsAdmin() {
		return nil, newError(KindForbidden, "Only the host or an admin can modify this travel plan")
	}
	return plan, nil
}

// UpdatePlan replaces the editable fields of a plan (owner or admin)
func (s *TravelPlanService) UpdatePlan(ctx context.Context, callerID, planID uuid.UUID, in PlanInput) (*models.TravelPlan, error) {
	plan, err := s.authorizeOwner(ctx, callerID, planID)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	plan.Destination = in.Destination
	plan.Description = in.Description
	plan.StartDate = in.StartDate
	plan.EndDate = in.EndDate
	plan.Budget = in.Budget
	plan.TravelType = in.TravelType
	plan.Visibility = in.Visibility
	plan.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateTravelPlan(ctx, plan); err != nil {
		return nil, fromStore(err, "Travel plan not found")
	}
	return plan, nil
}

// DeletePlan removes a plan (owner or admin). Reviews of the plan go
// with it, so the host's rating is recomputed in the same transaction.
func (s *TravelPlanService) DeletePlan(ctx context.Context, callerID, planID uuid.UUID) error {
	plan, err := s.authorizeOwner(ctx, callerID, planID)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.DeleteTravelPlan(ctx, plan.ID); err != nil {
			return fromStore(err, "Travel plan not found")
		}
		return recomputeRating(ctx, tx, plan.UserID, now)
	})
}

// GetPlan returns a plan. Private plans are visible only to the host,
// admins and users who asked to join.
func (s *TravelPlanService) GetPlan(ctx context.Context, callerID, planID uuid.UUID) (*models.TravelPlan, error) {
	plan, err := s.store.GetTravelPlan(ctx, planID)
	if err != nil {
		return nil, fromStore(err, "Travel plan not found")
	}
	if plan.Visibility == models.VisibilityPublic || plan.UserID == callerID {
		return plan, nil
	}
	if _, err := s.store.FindTravelBuddy(ctx, planID, callerID); err == nil {
		return plan, nil
	}
	if caller, err := s.store.GetUserByID(ctx, callerID); err == nil && caller.IsAdmin() {
		return plan, nil
	}
	return nil, newError(KindNotFound, "Travel plan not found")
}

// ListPlans returns public plans, optionally filtered by destination
func (s *TravelPlanService) ListPlans(ctx context.Context, destination string, limit, offset int) (*PlanPage, error) {
	limit, offset = clampPage(limit, offset)
	items, total, err := s.store.ListTravelPlans(ctx, repository.TravelPlanFilter{
		Destination: destination,
		PublicOnly:  true,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, internal("failed to list travel plans", err)
	}
	return &PlanPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// ListMyPlans returns every plan the caller hosts
func (s *TravelPlanService) ListMyPlans(ctx context.Context, userID uuid.UUID, limit, offset int) (*PlanPage, error) {
	limit, offset = clampPage(limit, offset)
	items, total, err := s.store.ListTravelPlans(ctx, repository.TravelPlanFilter{
		UserID: &userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, internal("failed to list travel plans", err)
	}
	return &PlanPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// RequestJoinTrip records a PENDING join request and tells the host
func (s *TravelPlanService) RequestJoinTrip(ctx context.Context, planID, userID uuid.UUID) (*models.TravelBuddy, error) {
	plan, err := s.store.GetTravelPlan(ctx, planID)
	if err != nil {
		return nil, fromStore(err, "Travel plan not found")
	}
	if plan.UserID == userID {
		return nil, newError(KindInvalidInput, "You cannot join your own travel plan")
	}
	if _, err := s.store.FindTravelBuddy(ctx, planID, userID); err == nil {
		return nil, newError(KindConflict, "You have already requested to join this travel plan")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, internal("failed to look up join request", err)
	}

	now := s.clock.Now()
	buddy := &models.TravelBuddy{
		ID:           uuid.New(),
		TravelPlanID: planID,
		UserID:       userID,
		Status:       models.BuddyPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateTravelBuddy(ctx, buddy); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, newError(KindConflict, "You have already requested to join this travel plan")
		}
		return nil, fromStore(err, "Travel plan not found")
	}

	name := "Someone"
	if u, err := s.store.GetUserByID(ctx, userID); err == nil {
		name = u.Name
	}
	s.notifier.Notify(ctx, plan.UserID, &plan.ID, models.NotificationTripJoinRequest,
		fmt.Sprintf("%s wants to join your trip to %s", name, plan.Destination),
		fmt.Sprintf("/travel-plans/%s/requests", plan.ID))
	return buddy, nil
}

// UpdateJoinRequestStatus lets the host approve or reject a join request.
// Only approvals notify the requester.
func (s *TravelPlanService) UpdateJoinRequestStatus(ctx context.Context, buddyID, hostID uuid.UUID, status models.BuddyStatus) (*models.TravelBuddy, error) {
	if status != models.BuddyApproved && status != models.BuddyRejected {
		return nil, newError(KindInvalidInput, "status must be APPROVED or REJECTED")
	}
	buddy, err := s.store.GetTravelBuddy(ctx, buddyID)
	if err != nil {
		return nil, fromStore(err, "Join request not found")
	}
	plan, err := s.store.GetTravelPlan(ctx, buddy.TravelPlanID)
	if err != nil {
		return nil, fromStore(err, "Travel plan not found")
	}
	if plan.UserID != hostID {
		return nil, newError(KindForbidden, "Only the host can decide on join requests")
	}
	if s.opts.StrictTransitions && buddy.Status != models.BuddyPending {
		return nil, errorf(KindInvalidState, "Join request is already %s", buddy.Status)
	}

	now := s.clock.Now()
	if err := s.store.UpdateTravelBuddyStatus(ctx, buddy.ID, status, now); err != nil {
		return nil, fromStore(err, "Join request not found")
	}
	buddy.Status = status
	buddy.UpdatedAt = now

	if status == models.BuddyApproved {
		s.notifier.Notify(ctx, buddy.UserID, &plan.ID, models.NotificationTripApproved,
			fmt.Sprintf("Your request to join the trip to %s was approved", plan.Destination),
			fmt.Sprintf("/travel-plans/%s", plan.ID))
	}
	return buddy, nil
}

// ListJoinRequests lists every join request on a plan (host only)
func (s *TravelPlanService) ListJoinRequests(ctx context.Context, planID, hostID uuid.UUID) ([]JoinRequestView, error) {
	plan, err := s.store.GetTravelPlan(ctx, planID)
	if err != nil {
		return nil, fromStore(err, "Travel plan not found")
	}
	if plan.UserID != hostID {
		return nil, newError(KindForbidden, "Only the host can view join requests")
	}
	buddies, err := s.store.ListTravelBuddies(ctx, planID)
	if err != nil {
		return nil, internal("failed to list join requests", err)
	}
	views := make([]JoinRequestView, 0, len(buddies))
	for _, b := range buddies {
		u, err := s.store.GetUserByID(ctx, b.UserID)
		if err != nil {
			log.Printf("Error loading requester profile: %v (buddy_id=%s)", err, b.ID)
			continue
		}
		views = append(views, JoinRequestView{TravelBuddy: b, User: summarize(u)})
	}
	return views, nil
}
