package usecases

import (
	"context"
	"fmt"
	"time"

	"captr/internal/domain/usage"
	"captr/internal/shared/biztime"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// GetUsageQuery represents the input for fetching current usage.
type GetUsageQuery struct {
	UserID uint
}

// GetUsageResult combines the current month's counter with the resolved
// entitlement, which is what the client needs to render the quota meter.
type GetUsageResult struct {
	MonthKey     string
	ScansUsed    int
	ScanLimit    int
	Plan         string
	Status       string
	Unlimited    bool
	ExpiresAt    *time.Time
	SubscribedAt *time.Time
}

// GetUsageUseCase handles reading the current month's usage and entitlement.
type GetUsageUseCase struct {
	resolver  EntitlementResolver
	usageRepo usage.Repository
	logger    logger.Interface
}

// NewGetUsageUseCase creates a new GetUsageUseCase instance.
func NewGetUsageUseCase(resolver EntitlementResolver, usageRepo usage.Repository, logger logger.Interface) *GetUsageUseCase {
	return &GetUsageUseCase{
		resolver:  resolver,
		usageRepo: usageRepo,
		logger:    logger,
	}
}

func (uc *GetUsageUseCase) Execute(ctx context.Context, query GetUsageQuery) (*GetUsageResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	resolution, err := uc.resolver.Execute(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	monthKey := biztime.CurrentMonthKey()
	count, err := uc.usageRepo.GetCount(ctx, query.UserID, monthKey)
	if err != nil {
		uc.logger.Errorw("failed to get scan usage", "user_id", query.UserID, "month", monthKey, "error", err)
		return nil, fmt.Errorf("failed to get scan usage: %w", err)
	}

	return &GetUsageResult{
		MonthKey:     monthKey,
		ScansUsed:    count,
		ScanLimit:    resolution.ScanLimit,
		Plan:         string(resolution.Plan),
		Status:       resolution.Status,
		Unlimited:    resolution.Unlimited(),
		ExpiresAt:    resolution.ExpiresAt,
		SubscribedAt: resolution.SubscribedAt,
	}, nil
}
