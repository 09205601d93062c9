package usecases

import (
	"context"
	"fmt"

	"captr/internal/domain/card"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// DeleteCardUseCase hard-deletes a card owned by the caller.
type DeleteCardUseCase struct {
	cardRepo card.Repository
	logger   logger.Interface
}

// NewDeleteCardUseCase creates a new DeleteCardUseCase instance.
func NewDeleteCardUseCase(cardRepo card.Repository, logger logger.Interface) *DeleteCardUseCase {
	return &DeleteCardUseCase{
		cardRepo: cardRepo,
		logger:   logger,
	}
}

func (uc *DeleteCardUseCase) Execute(ctx context.Context, userID uint, sid string) error {
	if err := uc.cardRepo.Delete(ctx, userID, sid); err != nil {
		if errors.IsNotFoundError(err) {
			return err
		}
		uc.logger.Errorw("failed to delete card", "user_id", userID, "card_id", sid, "error", err)
		return fmt.Errorf("failed to delete card: %w", err)
	}

	uc.logger.Infow("card deleted", "user_id", userID, "card_id", sid)
	return nil
}
