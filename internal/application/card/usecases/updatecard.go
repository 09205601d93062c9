package usecases

import (
	"context"
	"fmt"

	"captr/internal/application/card/dto"
	"captr/internal/domain/card"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// UpdateCardCommand carries a partial update; only non-nil patch fields
// overwrite stored values.
type UpdateCardCommand struct {
	UserID uint
	SID    string
	Patch  card.Patch
}

// UpdateCardUseCase applies a field-level patch to an existing card.
type UpdateCardUseCase struct {
	cardRepo card.Repository
	logger   logger.Interface
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase instance.
func NewUpdateCardUseCase(cardRepo card.Repository, logger logger.Interface) *UpdateCardUseCase {
	return &UpdateCardUseCase{
		cardRepo: cardRepo,
		logger:   logger,
	}
}

func (uc *UpdateCardUseCase) Execute(ctx context.Context, cmd UpdateCardCommand) (*dto.CardDTO, error) {
	c, err := uc.cardRepo.GetBySID(ctx, cmd.UserID, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get card for update", "user_id", cmd.UserID, "card_id", cmd.SID, "error", err)
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("card not found")
	}

	c.ApplyPatch(cmd.Patch)

	if err := uc.cardRepo.Update(ctx, c); err != nil {
		// The row can disappear between the read and the write.
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update card", "user_id", cmd.UserID, "card_id", cmd.SID, "error", err)
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	uc.logger.Infow("card updated", "user_id", cmd.UserID, "card_id", cmd.SID)
	return dto.FromCard(c), nil
}
