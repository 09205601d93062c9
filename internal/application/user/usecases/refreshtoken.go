package usecases

import (
	"context"
	"fmt"

	"captr/internal/domain/user"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// RefreshTokenCommand represents the input for refreshing a token pair.
type RefreshTokenCommand struct {
	RefreshToken string
}

// RefreshTokenResult represents the new token pair.
type RefreshTokenResult struct {
	Tokens *TokenPair
}

// RefreshTokenUseCase exchanges a valid refresh token for a new pair.
type RefreshTokenUseCase struct {
	userRepo user.Repository
	tokens   TokenService
	logger   logger.Interface
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(userRepo user.Repository, tokens TokenService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}

	userID, err := uc.tokens.ValidateRefreshToken(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	pair, err := uc.tokens.GenerateTokenPair(u.ID(), u.SID(), u.Email())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &RefreshTokenResult{Tokens: pair}, nil
}
