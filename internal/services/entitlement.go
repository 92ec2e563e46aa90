package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/repository"
)

// Tier is the effective subscription level used for quota decisions
type Tier string

const (
	TierFree     Tier = "FREE"
	TierExplorer Tier = "EXPLORER"
	TierMonthly  Tier = "MONTHLY"
	TierYearly   Tier = "YEARLY"
)

// EffectiveTier returns FREE when the user has no subscription or it has
// expired at now, otherwise the stored tier.
func EffectiveTier(u *models.User, now time.Time) Tier {
	if u == nil || !u.SubscriptionType.Valid() || u.SubscriptionExpiresAt == nil {
		return TierFree
	}
	if !now.Before(*u.SubscriptionExpiresAt) {
		return TierFree
	}
	return Tier(u.SubscriptionType)
}

// Quota caps how many entities of a kind may exist in a window
type Quota struct {
	Limit     int  `json:"limit"`
	Unlimited bool `json:"unlimited"`
}

var unlimited = Quota{Unlimited: true}

// PlanQuota is the travel-plan cap for a tier
func PlanQuota(t Tier) Quota {
	switch t {
	case TierExplorer:
		return Quota{Limit: 5}
	case TierMonthly, TierYearly:
		return unlimited
	default:
		return Quota{Limit: 2}
	}
}

// ConnectionRequestQuota is the per-calendar-month connection request cap
func ConnectionRequestQuota(t Tier) Quota {
	switch t {
	case TierExplorer:
		return Quota{Limit: 10}
	case TierMonthly, TierYearly:
		return unlimited
	default:
		return Quota{Limit: 5}
	}
}

// Remaining is how many more entities fit under the cap; -1 when unlimited
func (q Quota) Remaining(used int) int {
	if q.Unlimited {
		return -1
	}
	if used >= q.Limit {
		return 0
	}
	return q.Limit - used
}

// Check fails with QuotaExceeded when used already fills the cap
func (q Quota) Check(used int, what string) error {
	if q.Unlimited || used < q.Limit {
		return nil
	}
	return errorf(KindQuotaExceeded,
		"%s limit reached: %d of %d used, 0 remaining. Upgrade your subscription to add more", what, used, q.Limit)
}

// MonthStart is the first instant of now's calendar month in now's location
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// EntitlementService evaluates subscription-gated quotas
type EntitlementService struct {
	store repository.Store
	clock Clock
}

// NewEntitlementService creates a new EntitlementService
func NewEntitlementService(store repository.Store, clock Clock) *EntitlementService {
	return &EntitlementService{store: store, clock: clock}
}

// in returns a copy that counts through tx
func (s *EntitlementService) in(tx repository.Store) *EntitlementService {
	return &EntitlementService{store: tx, clock: s.clock}
}

// CheckPlanQuota fails when u may not own another travel plan
func (s *EntitlementService) CheckPlanQuota(ctx context.Context, u *models.User) error {
	if u.IsAdmin() {
		return nil
	}
	q := PlanQuota(EffectiveTier(u, s.clock.Now()))
	if q.Unlimited {
		return nil
	}
	used, err := s.store.CountTravelPlansByUser(ctx, u.ID)
	if err != nil {
		return internal("failed to count travel plans", err)
	}
	return q.Check(used, "Travel plan")
}

// CheckConnectionQuota fails when u has used up this month's requests
func (s *EntitlementService) CheckConnectionQuota(ctx context.Context, u *models.User) error {
	if u.IsAdmin() {
		return nil
	}
	now := s.clock.Now()
	q := ConnectionRequestQuota(EffectiveTier(u, now))
	if q.Unlimited {
		return nil
	}
	used, err := s.store.CountConnectionsSentSince(ctx, u.ID, MonthStart(now))
	if err != nil {
		return internal("failed to count connection requests", err)
	}
	return q.Check(used, "Monthly connection request")
}

// EntitlementSummary describes a user's tier and quota usage
type EntitlementSummary struct {
	Tier                   Tier       `json:"tier"`
	SubscriptionType       string     `json:"subscription_type,omitempty"`
	ExpiresAt              *time.Time `json:"expires_at,omitempty"`
	Premium                bool       `json:"premium"`
	PlanQuota              Quota      `json:"plan_quota"`
	PlansUsed              int        `json:"plans_used"`
	PlansRemaining         int        `json:"plans_remaining"`
	ConnectionQuota        Quota      `json:"connection_quota"`
	ConnectionsUsed        int        `json:"connections_used"`
	ConnectionsRemaining   int        `json:"connections_remaining"`
	ConnectionWindowOpened time.Time  `json:"connection_window_opened"`
}

// Summary reports the caller's tier, limits and usage
func (s *EntitlementService) Summary(ctx context.Context, userID uuid.UUID) (*EntitlementSummary, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}
	now := s.clock.Now()
	tier := EffectiveTier(u, now)
	since := MonthStart(now)

	plans, err := s.store.CountTravelPlansByUser(ctx, userID)
	if err != nil {
		return nil, internal("failed to count travel plans", err)
	}
	conns, err := s.store.CountConnectionsSentSince(ctx, userID, since)
	if err != nil {
		return nil, internal("failed to count connection requests", err)
	}

	planQ, connQ := PlanQuota(tier), ConnectionRequestQuota(tier)
	if u.IsAdmin() {
		planQ, connQ = unlimited, unlimited
	}
	return &EntitlementSummary{
		Tier:                   tier,
		SubscriptionType:       string(u.SubscriptionType),
		ExpiresAt:              u.SubscriptionExpiresAt,
		Premium:                u.Premium,
		PlanQuota:              planQ,
		PlansUsed:              plans,
		PlansRemaining:         planQ.Remaining(plans),
		ConnectionQuota:        connQ,
		ConnectionsUsed:        conns,
		ConnectionsRemaining:   connQ.Remaining(conns),
		ConnectionWindowOpened: since,
	}, nil
}

func (q Quota) String() string {
	if q.Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", q.Limit)
}
