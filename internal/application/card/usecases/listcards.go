package usecases

import (
	"context"
	"fmt"

	"captr/internal/application/card/dto"
	"captr/internal/domain/card"
	"captr/internal/shared/logger"
)

// ListCardsCommand carries optional offset paging. Limit 0 returns the full
// collection, matching the client's sync behavior.
type ListCardsCommand struct {
	UserID uint
	Limit  int
	Offset int
}

// ListCardsUseCase returns the caller's cards, most recently scanned first.
type ListCardsUseCase struct {
	cardRepo card.Repository
	logger   logger.Interface
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(cardRepo card.Repository, logger logger.Interface) *ListCardsUseCase {
	return &ListCardsUseCase{
		cardRepo: cardRepo,
		logger:   logger,
	}
}

func (uc *ListCardsUseCase) Execute(ctx context.Context, cmd ListCardsCommand) ([]*dto.CardDTO, error) {
	cards, err := uc.cardRepo.ListByUser(ctx, cmd.UserID, cmd.Limit, cmd.Offset)
	if err != nil {
		uc.logger.Errorw("failed to list cards", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return dto.FromCards(cards), nil
}
