package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"captr/internal/domain/card"
	"captr/internal/infrastructure/persistence/models"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// CardRepository implements the card repository interface on GORM.
type CardRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *gorm.DB, logger logger.Interface) card.Repository {
	return &CardRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new card
func (r *CardRepository) Create(ctx context.Context, entity *card.Card) error {
	model := cardToModel(entity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create card", "user_id", entity.UserID(), "error", err)
		return fmt.Errorf("failed to create card: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set card ID: %w", err)
	}

	r.logger.Infow("card created", "id", model.ID, "sid", model.SID, "user_id", model.UserID)
	return nil
}

// GetBySID retrieves a card by its API-visible ID, scoped to the owner.
func (r *CardRepository) GetBySID(ctx context.Context, userID uint, sid string) (*card.Card, error) {
	var model models.CardModel

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sid = ?", userID, sid).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get card", "user_id", userID, "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return cardToEntity(&model)
}

// ListByUser lists the user's cards newest first. limit <= 0 means no limit.
func (r *CardRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*card.Card, error) {
	var modelList []models.CardModel

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list cards", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cards := make([]*card.Card, 0, len(modelList))
	for i := range modelList {
		entity, err := cardToEntity(&modelList[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, entity)
	}
	return cards, nil
}

// Update persists the card's current field values. A miss on the
// owner-scoped row surfaces as a not found error.
func (r *CardRepository) Update(ctx context.Context, entity *card.Card) error {
	model := cardToModel(entity)
	model.ID = entity.ID()

	result := r.db.WithContext(ctx).
		Model(&models.CardModel{}).
		Where("user_id = ? AND sid = ?", entity.UserID(), entity.SID()).
		Updates(map[string]any{
			"name":            model.Name,
			"job_title":       model.JobTitle,
			"company":         model.Company,
			"email":           model.Email,
			"phone":           model.Phone,
			"website":         model.Website,
			"address":         model.Address,
			"notes":           model.Notes,
			"front_image_url": model.FrontImageURL,
			"back_image_url":  model.BackImageURL,
			"raw_text_front":  model.RawTextFront,
			"raw_text_back":   model.RawTextBack,
			"updated_at":      entity.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update card", "sid", entity.SID(), "error", result.Error)
		return fmt.Errorf("failed to update card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("card not found")
	}

	return nil
}

// Delete removes the card, scoped to the owner.
func (r *CardRepository) Delete(ctx context.Context, userID uint, sid string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND sid = ?", userID, sid).
		Delete(&models.CardModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete card", "user_id", userID, "sid", sid, "error", result.Error)
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("card not found")
	}

	r.logger.Infow("card deleted", "user_id", userID, "sid", sid)
	return nil
}

func cardToModel(entity *card.Card) *models.CardModel {
	f := entity.Fields()
	return &models.CardModel{
		SID:           entity.SID(),
		UserID:        entity.UserID(),
		Name:          f.Name,
		JobTitle:      f.JobTitle,
		Company:       f.Company,
		Email:         f.Email,
		Phone:         f.Phone,
		Website:       f.Website,
		Address:       f.Address,
		Notes:         f.Notes,
		FrontImageURL: f.FrontImageURL,
		BackImageURL:  f.BackImageURL,
		RawTextFront:  f.RawTextFront,
		RawTextBack:   f.RawTextBack,
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}

func cardToEntity(model *models.CardModel) (*card.Card, error) {
	entity, err := card.ReconstructCard(
		model.ID,
		model.SID,
		model.UserID,
		card.Fields{
			Name:          model.Name,
			JobTitle:      model.JobTitle,
			Company:       model.Company,
			Email:         model.Email,
			Phone:         model.Phone,
			Website:       model.Website,
			Address:       model.Address,
			Notes:         model.Notes,
			FrontImageURL: model.FrontImageURL,
			BackImageURL:  model.BackImageURL,
			RawTextFront:  model.RawTextFront,
			RawTextBack:   model.RawTextBack,
		},
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to map card: %w", err)
	}
	return entity, nil
}
