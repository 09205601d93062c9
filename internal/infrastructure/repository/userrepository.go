package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"captr/internal/domain/user"
	"captr/internal/infrastructure/persistence/models"
	"captr/internal/shared/logger"
)

// UserRepository implements the user repository interface on GORM.
type UserRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := &models.UserModel{
		SID:          entity.SID(),
		Email:        entity.Email(),
		Name:         entity.Name(),
		PasswordHash: entity.PasswordHash(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "email", entity.Email(), "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "sid", model.SID)
	return nil
}

// GetByID retrieves a user by internal ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userToEntity(&model)
}

// GetBySID retrieves a user by API-visible ID
func (r *UserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userToEntity(&model)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userToEntity(&model)
}

func userToEntity(model *models.UserModel) (*user.User, error) {
	entity, err := user.ReconstructUser(
		model.ID,
		model.SID,
		model.Email,
		model.Name,
		model.PasswordHash,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return entity, nil
}
