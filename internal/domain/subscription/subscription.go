package subscription

import (
	"fmt"
	"time"
)

// Status represents the stored subscription status.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusPending Status = "pending"
)

// IsValid reports whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusPending:
		return true
	}
	return false
}

// Subscription represents the subscription aggregate root: at most one per
// user, replaced wholesale on each successful payment verification. Expiry is
// computed against the clock, never pushed back into the stored status.
type Subscription struct {
	id           uint
	sid          string
	userID       uint
	plan         PlanID
	status       Status
	subscribedAt time.Time
	expiresAt    *time.Time
	orderID      string
	paymentID    string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewSubscription creates a subscription from a verified payment.
func NewSubscription(userID uint, sid string, plan PlanID, subscribedAt time.Time, expiresAt *time.Time, orderID, paymentID string) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if sid == "" {
		return nil, fmt.Errorf("subscription SID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}

	now := time.Now().UTC()
	return &Subscription{
		sid:          sid,
		userID:       userID,
		plan:         plan,
		status:       StatusActive,
		subscribedAt: subscribedAt,
		expiresAt:    expiresAt,
		orderID:      orderID,
		paymentID:    paymentID,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence.
// Unlike NewSubscription it accepts plan and status values outside the current
// sets: stored rows may predate a plan rename, and entitlement resolution
// collapses anything unrecognized to the free tier instead of failing the user.
func ReconstructSubscription(
	id uint,
	sid string,
	userID uint,
	plan PlanID,
	status Status,
	subscribedAt time.Time,
	expiresAt *time.Time,
	orderID, paymentID string,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Subscription{
		id:           id,
		sid:          sid,
		userID:       userID,
		plan:         plan,
		status:       status,
		subscribedAt: subscribedAt,
		expiresAt:    expiresAt,
		orderID:      orderID,
		paymentID:    paymentID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// ID returns the internal subscription ID
func (s *Subscription) ID() uint {
	return s.id
}

// SID returns the API-visible subscription ID
func (s *Subscription) SID() string {
	return s.sid
}

// UserID returns the owning user's ID
func (s *Subscription) UserID() uint {
	return s.userID
}

// Plan returns the stored plan tier
func (s *Subscription) Plan() PlanID {
	return s.plan
}

// Status returns the stored status
func (s *Subscription) Status() Status {
	return s.status
}

// SubscribedAt returns when the subscription was purchased
func (s *Subscription) SubscribedAt() time.Time {
	return s.subscribedAt
}

// ExpiresAt returns the expiry time, nil meaning non-expiring
func (s *Subscription) ExpiresAt() *time.Time {
	return s.expiresAt
}

// OrderID returns the payment gateway order reference
func (s *Subscription) OrderID() string {
	return s.orderID
}

// PaymentID returns the payment gateway payment reference
func (s *Subscription) PaymentID() string {
	return s.paymentID
}

// CreatedAt returns when the record was created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the record was last replaced
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsExpired reports whether the subscription has lapsed at the given instant.
// A nil expiry never expires.
func (s *Subscription) IsExpired(now time.Time) bool {
	return s.expiresAt != nil && s.expiresAt.Before(now)
}

// EffectivePlan collapses an expired or non-active subscription to the free
// tier regardless of the stored plan.
func (s *Subscription) EffectivePlan(now time.Time) PlanID {
	if s.status != StatusActive || s.IsExpired(now) {
		return PlanFree
	}
	return s.plan
}
