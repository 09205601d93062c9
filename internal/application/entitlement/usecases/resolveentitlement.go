// Package usecases provides application-level use cases for entitlement
// resolution: computing a user's effective plan tier and scan quota from the
// stored subscription record and the clock.
package usecases

import (
	"context"
	"fmt"
	"time"

	"captr/internal/domain/subscription"
	"captr/internal/shared/biztime"
	"captr/internal/shared/logger"
)

// SubscriptionSnapshot is the cached view of a user's stored subscription
// record. Exists false is a cached "never subscribed" marker so repeated
// free-tier lookups skip the database.
type SubscriptionSnapshot struct {
	Exists       bool
	Plan         string
	Status       string
	SubscribedAt time.Time
	ExpiresAt    *time.Time
}

// EntitlementCache caches subscription snapshots per user. Get returns
// (nil, nil) on a miss. Implementations must treat the snapshot as raw stored
// state; expiry is always computed at read time, never cached.
type EntitlementCache interface {
	GetSnapshot(ctx context.Context, userID uint) (*SubscriptionSnapshot, error)
	SetSnapshot(ctx context.Context, userID uint, snap *SubscriptionSnapshot) error
	Invalidate(ctx context.Context, userID uint) error
}

// Resolution is a user's effective entitlement at a point in time.
type Resolution struct {
	Plan         subscription.PlanID
	Status       string
	ScanLimit    int // subscription.UnlimitedScans for paid tiers
	IsExpired    bool
	ExpiresAt    *time.Time
	SubscribedAt *time.Time
}

// Unlimited reports whether the resolution carries no scan quota.
func (r *Resolution) Unlimited() bool {
	return r.ScanLimit == subscription.UnlimitedScans
}

// ResolveEntitlementUseCase computes the effective entitlement. It is a pure
// function of stored state and the clock; the only side effect is cache
// maintenance.
type ResolveEntitlementUseCase struct {
	subRepo   subscription.Repository
	cache     EntitlementCache
	freeLimit int
	logger    logger.Interface
}

// NewResolveEntitlementUseCase creates a new ResolveEntitlementUseCase
// instance. cache may be nil to disable caching; freeLimit <= 0 falls back to
// the default free-tier quota.
func NewResolveEntitlementUseCase(
	subRepo subscription.Repository,
	cache EntitlementCache,
	freeLimit int,
	logger logger.Interface,
) *ResolveEntitlementUseCase {
	if freeLimit <= 0 {
		freeLimit = subscription.DefaultFreeScansPerMonth
	}
	return &ResolveEntitlementUseCase{
		subRepo:   subRepo,
		cache:     cache,
		freeLimit: freeLimit,
		logger:    logger,
	}
}

func (uc *ResolveEntitlementUseCase) Execute(ctx context.Context, userID uint) (*Resolution, error) {
	snap, err := uc.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()

	if !snap.Exists {
		return &Resolution{
			Plan:      subscription.PlanFree,
			Status:    string(subscription.StatusActive),
			ScanLimit: uc.freeLimit,
		}, nil
	}

	expired := snap.ExpiresAt != nil && snap.ExpiresAt.Before(now)
	plan := subscription.PlanID(snap.Plan)
	status := snap.Status

	effective := plan
	if expired || status != string(subscription.StatusActive) {
		effective = subscription.PlanFree
	}
	if expired {
		status = string(subscription.StatusExpired)
	}

	resolution := &Resolution{
		Plan:         effective,
		Status:       status,
		ScanLimit:    uc.freeLimit,
		IsExpired:    expired,
		ExpiresAt:    snap.ExpiresAt,
		SubscribedAt: &snap.SubscribedAt,
	}
	if effective.IsPaid() {
		resolution.ScanLimit = subscription.UnlimitedScans
	}

	return resolution, nil
}

func (uc *ResolveEntitlementUseCase) snapshot(ctx context.Context, userID uint) (*SubscriptionSnapshot, error) {
	if uc.cache != nil {
		snap, err := uc.cache.GetSnapshot(ctx, userID)
		if err != nil {
			uc.logger.Warnw("entitlement cache read failed, falling back to database", "user_id", userID, "error", err)
		} else if snap != nil {
			return snap, nil
		}
	}

	sub, err := uc.subRepo.GetByUserID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	snap := &SubscriptionSnapshot{}
	if sub != nil {
		snap.Exists = true
		snap.Plan = string(sub.Plan())
		snap.Status = string(sub.Status())
		snap.SubscribedAt = sub.SubscribedAt()
		snap.ExpiresAt = sub.ExpiresAt()
	}

	if uc.cache != nil {
		if err := uc.cache.SetSnapshot(ctx, userID, snap); err != nil {
			uc.logger.Warnw("entitlement cache write failed", "user_id", userID, "error", err)
		}
	}

	return snap, nil
}
