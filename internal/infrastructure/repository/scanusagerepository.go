package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"captr/internal/domain/usage"
	"captr/internal/infrastructure/persistence/models"
	"captr/internal/shared/biztime"
	"captr/internal/shared/logger"
)

// ScanUsageRepository implements the scan usage repository interface on GORM.
// The quota-bounded increment is a single conditional UPDATE, so two
// concurrent scans at the limit boundary cannot both pass.
type ScanUsageRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewScanUsageRepository creates a new scan usage repository
func NewScanUsageRepository(db *gorm.DB, logger logger.Interface) usage.Repository {
	return &ScanUsageRepository{
		db:     db,
		logger: logger,
	}
}

// GetCount returns the counter for the month, 0 when no row exists yet.
func (r *ScanUsageRepository) GetCount(ctx context.Context, userID uint, monthKey string) (int, error) {
	var model models.ScanUsageModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month_key = ?", userID, monthKey).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		r.logger.Errorw("failed to get scan usage", "user_id", userID, "month", monthKey, "error", err)
		return 0, fmt.Errorf("failed to get scan usage: %w", err)
	}
	return model.Count, nil
}

// Increment unconditionally adds one scan and returns the new count.
func (r *ScanUsageRepository) Increment(ctx context.Context, userID uint, monthKey string) (int, error) {
	if err := r.ensureRow(ctx, userID, monthKey); err != nil {
		return 0, err
	}

	err := r.db.WithContext(ctx).
		Model(&models.ScanUsageModel{}).
		Where("user_id = ? AND month_key = ?", userID, monthKey).
		Updates(map[string]any{
			"count":      gorm.Expr("count + 1"),
			"updated_at": biztime.NowUTC(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to increment scan usage", "user_id", userID, "month", monthKey, "error", err)
		return 0, fmt.Errorf("failed to increment scan usage: %w", err)
	}

	return r.GetCount(ctx, userID, monthKey)
}

// IncrementIfBelow adds one scan only while count < limit. The check and the
// write are one statement; RowsAffected tells us which side of the limit we
// landed on.
func (r *ScanUsageRepository) IncrementIfBelow(ctx context.Context, userID uint, monthKey string, limit int) (int, bool, error) {
	if limit <= 0 {
		count, err := r.GetCount(ctx, userID, monthKey)
		return count, false, err
	}

	if err := r.ensureRow(ctx, userID, monthKey); err != nil {
		return 0, false, err
	}

	result := r.db.WithContext(ctx).
		Model(&models.ScanUsageModel{}).
		Where("user_id = ? AND month_key = ? AND count < ?", userID, monthKey, limit).
		Updates(map[string]any{
			"count":      gorm.Expr("count + 1"),
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to increment scan usage", "user_id", userID, "month", monthKey, "error", result.Error)
		return 0, false, fmt.Errorf("failed to increment scan usage: %w", result.Error)
	}

	count, err := r.GetCount(ctx, userID, monthKey)
	if err != nil {
		return 0, false, err
	}
	return count, result.RowsAffected == 1, nil
}

// ensureRow lazily creates the month's counter at zero. The conflict clause
// makes concurrent first scans of a month converge on one row.
func (r *ScanUsageRepository) ensureRow(ctx context.Context, userID uint, monthKey string) error {
	model := &models.ScanUsageModel{
		UserID:   userID,
		MonthKey: monthKey,
		Count:    0,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month_key"}},
		DoNothing: true,
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to create scan usage row", "user_id", userID, "month", monthKey, "error", err)
		return fmt.Errorf("failed to create scan usage row: %w", err)
	}
	return nil
}
