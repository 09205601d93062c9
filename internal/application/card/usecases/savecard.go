// Package usecases provides application-level use cases for card management.
package usecases

import (
	"context"
	"fmt"

	"captr/internal/application/card/dto"
	"captr/internal/domain/card"
	"captr/internal/shared/id"
	"captr/internal/shared/logger"
)

// SaveCardCommand carries the extracted fields to persist plus the caller's
// duplicate-handling decision.
type SaveCardCommand struct {
	UserID      uint
	Fields      card.Fields
	ForceInsert bool
}

// SaveCardResult is either a persisted card or a duplicate warning; exactly
// one of Card and Duplicate is set. A duplicate is a decision point for the
// caller, not a failure: nothing was persisted and re-invoking with
// ForceInsert saves unconditionally.
type SaveCardResult struct {
	Card      *dto.CardDTO
	Duplicate *dto.CardDTO
}

// SaveCardUseCase persists a new card, running duplicate detection first
// unless the caller forces the insert.
type SaveCardUseCase struct {
	cardRepo card.Repository
	logger   logger.Interface
}

// NewSaveCardUseCase creates a new SaveCardUseCase instance.
func NewSaveCardUseCase(cardRepo card.Repository, logger logger.Interface) *SaveCardUseCase {
	return &SaveCardUseCase{
		cardRepo: cardRepo,
		logger:   logger,
	}
}

func (uc *SaveCardUseCase) Execute(ctx context.Context, cmd SaveCardCommand) (*SaveCardResult, error) {
	if !cmd.ForceInsert {
		existing, err := uc.cardRepo.ListByUser(ctx, cmd.UserID, 0, 0)
		if err != nil {
			uc.logger.Errorw("failed to list cards for duplicate check", "user_id", cmd.UserID, "error", err)
			return nil, fmt.Errorf("failed to list cards: %w", err)
		}

		candidate := card.Candidate{
			Name:  cmd.Fields.Name,
			Email: cmd.Fields.Email,
			Phone: cmd.Fields.Phone,
		}
		if match := card.FindDuplicate(candidate, existing); match != nil {
			uc.logger.Infow("duplicate card detected",
				"user_id", cmd.UserID,
				"existing_card_id", match.SID(),
			)
			return &SaveCardResult{Duplicate: dto.FromCard(match)}, nil
		}
	}

	sid, err := id.GenerateWithPrefix(id.PrefixCard, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate card ID: %w", err)
	}

	newCard, err := card.NewCard(cmd.UserID, sid, cmd.Fields)
	if err != nil {
		return nil, err
	}

	if err := uc.cardRepo.Create(ctx, newCard); err != nil {
		uc.logger.Errorw("failed to create card", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	uc.logger.Infow("card created", "user_id", cmd.UserID, "card_id", sid)
	return &SaveCardResult{Card: dto.FromCard(newCard)}, nil
}
