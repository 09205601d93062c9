package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"captr/internal/domain/subscription"
	"captr/internal/infrastructure/persistence/models"
	"captr/internal/shared/logger"
)

// SubscriptionRepository implements the subscription repository interface on
// GORM. The table holds at most one row per user.
type SubscriptionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserID retrieves the user's subscription, (nil, nil) when absent.
func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.UserID,
		subscription.PlanID(model.Plan),
		subscription.Status(model.Status),
		model.SubscribedAt,
		model.ExpiresAt,
		model.OrderID,
		model.PaymentID,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}

// Replace upserts the user's subscription row wholesale, keyed on user_id.
func (r *SubscriptionRepository) Replace(ctx context.Context, entity *subscription.Subscription) error {
	model := &models.SubscriptionModel{
		SID:          entity.SID(),
		UserID:       entity.UserID(),
		Plan:         string(entity.Plan()),
		Status:       string(entity.Status()),
		SubscribedAt: entity.SubscribedAt(),
		ExpiresAt:    entity.ExpiresAt(),
		OrderID:      entity.OrderID(),
		PaymentID:    entity.PaymentID(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sid", "plan", "status", "subscribed_at", "expires_at",
			"order_id", "payment_id", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to replace subscription", "user_id", entity.UserID(), "error", err)
		return fmt.Errorf("failed to replace subscription: %w", err)
	}

	r.logger.Infow("subscription replaced", "user_id", entity.UserID(), "plan", entity.Plan())
	return nil
}
