package usecases

import (
	"context"
	"fmt"
	"time"

	"captr/internal/domain/subscription"
	"captr/internal/shared/biztime"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// GetSubscriptionQuery represents the input for fetching the stored
// subscription record.
type GetSubscriptionQuery struct {
	UserID uint
}

// GetSubscriptionResult is the stored record plus the status as of now.
// Never-subscribed users get a synthetic free-plan record.
type GetSubscriptionResult struct {
	SID          string
	Plan         string
	Status       string
	SubscribedAt *time.Time
	ExpiresAt    *time.Time
}

// GetSubscriptionUseCase handles reading a user's subscription.
type GetSubscriptionUseCase struct {
	subRepo subscription.Repository
	logger  logger.Interface
}

// NewGetSubscriptionUseCase creates a new GetSubscriptionUseCase instance.
func NewGetSubscriptionUseCase(subRepo subscription.Repository, logger logger.Interface) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subRepo: subRepo,
		logger:  logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*GetSubscriptionResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	sub, err := uc.subRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	if sub == nil {
		return &GetSubscriptionResult{
			Plan:   string(subscription.PlanFree),
			Status: string(subscription.StatusActive),
		}, nil
	}

	status := sub.Status()
	if sub.IsExpired(biztime.NowUTC()) {
		status = subscription.StatusExpired
	}

	subscribedAt := sub.SubscribedAt()
	return &GetSubscriptionResult{
		SID:          sub.SID(),
		Plan:         string(sub.Plan()),
		Status:       string(status),
		SubscribedAt: &subscribedAt,
		ExpiresAt:    sub.ExpiresAt(),
	}, nil
}
