package usecases

import (
	"context"
	"fmt"

	"captr/internal/application/card/dto"
	"captr/internal/domain/card"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// GetCardUseCase fetches a single card owned by the caller.
type GetCardUseCase struct {
	cardRepo card.Repository
	logger   logger.Interface
}

// NewGetCardUseCase creates a new GetCardUseCase instance.
func NewGetCardUseCase(cardRepo card.Repository, logger logger.Interface) *GetCardUseCase {
	return &GetCardUseCase{
		cardRepo: cardRepo,
		logger:   logger,
	}
}

func (uc *GetCardUseCase) Execute(ctx context.Context, userID uint, sid string) (*dto.CardDTO, error) {
	c, err := uc.cardRepo.GetBySID(ctx, userID, sid)
	if err != nil {
		uc.logger.Errorw("failed to get card", "user_id", userID, "card_id", sid, "error", err)
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("card not found")
	}

	return dto.FromCard(c), nil
}
