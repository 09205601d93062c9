package usecases

import (
	"context"
	"fmt"
	"time"

	entitlement "captr/internal/application/entitlement/usecases"
	"captr/internal/domain/subscription"
	"captr/internal/shared/biztime"
	"captr/internal/shared/errors"
	"captr/internal/shared/id"
	"captr/internal/shared/logger"
	"captr/internal/shared/utils"
)

// ActivateSubscriptionCommand represents the input for activating a plan
// after client-side checkout completes.
type ActivateSubscriptionCommand struct {
	UserID    uint   `json:"user_id" validate:"required"`
	Plan      string `json:"plan" validate:"required"`
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// ActivateSubscriptionResult represents the activated subscription.
type ActivateSubscriptionResult struct {
	SID          string
	Plan         string
	Status       string
	SubscribedAt time.Time
	ExpiresAt    *time.Time
}

// ActivateSubscriptionUseCase verifies the payment signature and replaces the
// user's subscription record. Activation is idempotent per payment: replaying
// the same verified payment writes the same subscription state again.
type ActivateSubscriptionUseCase struct {
	subRepo subscription.Repository
	gateway PaymentGateway
	cache   entitlement.EntitlementCache
	logger  logger.Interface
}

// NewActivateSubscriptionUseCase creates a new ActivateSubscriptionUseCase
// instance. cache may be nil when entitlement caching is disabled.
func NewActivateSubscriptionUseCase(
	subRepo subscription.Repository,
	gateway PaymentGateway,
	cache entitlement.EntitlementCache,
	logger logger.Interface,
) *ActivateSubscriptionUseCase {
	return &ActivateSubscriptionUseCase{
		subRepo: subRepo,
		gateway: gateway,
		cache:   cache,
		logger:  logger,
	}
}

func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, cmd ActivateSubscriptionCommand) (*ActivateSubscriptionResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	planID := subscription.PlanID(cmd.Plan)
	if !planID.IsPaid() {
		return nil, errors.NewValidationError(fmt.Sprintf("plan %q is not purchasable", cmd.Plan))
	}

	if !uc.gateway.VerifySignature(cmd.OrderID, cmd.PaymentID, cmd.Signature) {
		uc.logger.Warnw("payment signature verification failed", "user_id", cmd.UserID, "order_id", cmd.OrderID)
		return nil, errors.NewUnauthorizedError("payment signature verification failed")
	}

	plan := subscription.GetPlan(planID)
	now := biztime.NowUTC()
	expiresAt := now.Add(plan.Duration)

	sid := id.MustGenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
	sub, err := subscription.NewSubscription(cmd.UserID, sid, planID, now, &expiresAt, cmd.OrderID, cmd.PaymentID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.subRepo.Replace(ctx, sub); err != nil {
		uc.logger.Errorw("failed to store subscription", "user_id", cmd.UserID, "plan", planID, "error", err)
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, cmd.UserID); err != nil {
			uc.logger.Warnw("failed to invalidate entitlement cache", "user_id", cmd.UserID, "error", err)
		}
	}

	uc.logger.Infow("subscription activated", "user_id", cmd.UserID, "plan", planID, "expires_at", expiresAt)

	return &ActivateSubscriptionResult{
		SID:          sub.SID(),
		Plan:         string(sub.Plan()),
		Status:       string(sub.Status()),
		SubscribedAt: sub.SubscribedAt(),
		ExpiresAt:    sub.ExpiresAt(),
	}, nil
}
