// Package usecases provides application-level use cases for scan usage
// metering: recording scans against the monthly quota and reporting usage.
package usecases

import (
	"context"
	"fmt"

	entitlement "captr/internal/application/entitlement/usecases"
	"captr/internal/domain/usage"
	"captr/internal/shared/biztime"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// EntitlementResolver resolves a user's effective plan and scan quota.
type EntitlementResolver interface {
	Execute(ctx context.Context, userID uint) (*entitlement.Resolution, error)
}

// RecordScanCommand represents the input for recording one scan.
type RecordScanCommand struct {
	UserID uint
}

// RecordScanResult represents the outcome of recording one scan.
type RecordScanResult struct {
	Count     int
	Limit     int // subscription.UnlimitedScans for paid tiers
	Plan      string
	Unlimited bool
}

// RecordScanUseCase meters one scan against the caller's entitlement. The
// quota check and the increment are a single conditional write, so concurrent
// scans at the boundary cannot push the counter past the limit.
type RecordScanUseCase struct {
	resolver  EntitlementResolver
	usageRepo usage.Repository
	logger    logger.Interface
}

// NewRecordScanUseCase creates a new RecordScanUseCase instance.
func NewRecordScanUseCase(resolver EntitlementResolver, usageRepo usage.Repository, logger logger.Interface) *RecordScanUseCase {
	return &RecordScanUseCase{
		resolver:  resolver,
		usageRepo: usageRepo,
		logger:    logger,
	}
}

func (uc *RecordScanUseCase) Execute(ctx context.Context, cmd RecordScanCommand) (*RecordScanResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	resolution, err := uc.resolver.Execute(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	monthKey := biztime.CurrentMonthKey()

	if resolution.Unlimited() {
		count, err := uc.usageRepo.Increment(ctx, cmd.UserID, monthKey)
		if err != nil {
			uc.logger.Errorw("failed to increment scan usage", "user_id", cmd.UserID, "month", monthKey, "error", err)
			return nil, fmt.Errorf("failed to increment scan usage: %w", err)
		}
		return &RecordScanResult{
			Count:     count,
			Limit:     resolution.ScanLimit,
			Plan:      string(resolution.Plan),
			Unlimited: true,
		}, nil
	}

	count, incremented, err := uc.usageRepo.IncrementIfBelow(ctx, cmd.UserID, monthKey, resolution.ScanLimit)
	if err != nil {
		uc.logger.Errorw("failed to increment scan usage", "user_id", cmd.UserID, "month", monthKey, "error", err)
		return nil, fmt.Errorf("failed to increment scan usage: %w", err)
	}
	if !incremented {
		uc.logger.Infow("monthly scan limit reached", "user_id", cmd.UserID, "month", monthKey, "count", count, "limit", resolution.ScanLimit)
		return nil, errors.NewLimitReachedError(
			"monthly scan limit reached, upgrade your plan to continue scanning",
			fmt.Sprintf("%d/%d scans used on the %s plan", count, resolution.ScanLimit, resolution.Plan),
		)
	}

	return &RecordScanResult{
		Count: count,
		Limit: resolution.ScanLimit,
		Plan:  string(resolution.Plan),
	}, nil
}
