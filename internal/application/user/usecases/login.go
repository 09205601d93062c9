package usecases

import (
	"context"
	"fmt"
	"strings"

	"captr/internal/domain/user"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// LoginCommand represents the input for login.
type LoginCommand struct {
	Email    string
	Password string
}

// LoginResult represents the outcome of a successful login.
type LoginResult struct {
	User   UserDTO
	Tokens *TokenPair
}

// LoginUseCase handles email/password login. Unknown email and wrong password
// return the same error so the endpoint cannot be used to probe accounts.
type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenService
	logger   logger.Interface
}

// NewLoginUseCase creates a new LoginUseCase instance.
func NewLoginUseCase(userRepo user.Repository, hasher PasswordHasher, tokens TokenService, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil || !uc.hasher.Verify(cmd.Password, u.PasswordHash()) {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	pair, err := uc.tokens.GenerateTokenPair(u.ID(), u.SID(), u.Email())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	uc.logger.Infow("user logged in", "user_sid", u.SID())

	return &LoginResult{User: toUserDTO(u), Tokens: pair}, nil
}
