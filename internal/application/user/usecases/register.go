// Package usecases provides application-level use cases for identity:
// registration, login, and token refresh.
package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"captr/internal/domain/user"
	"captr/internal/shared/errors"
	"captr/internal/shared/id"
	"captr/internal/shared/logger"
)

// PasswordHasher abstracts password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenService issues and validates the API's bearer tokens.
type TokenService interface {
	GenerateTokenPair(userID uint, userSID, email string) (*TokenPair, error)
	ValidateRefreshToken(token string) (userID uint, err error)
}

// TokenPair is an access token plus its refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// UserDTO is the API-visible user representation.
type UserDTO struct {
	SID       string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{
		SID:       u.SID(),
		Email:     u.Email(),
		Name:      u.Name(),
		CreatedAt: u.CreatedAt(),
	}
}

// RegisterCommand represents the input for user registration.
type RegisterCommand struct {
	Email    string
	Name     string
	Password string
}

// RegisterResult represents the outcome of registration.
type RegisterResult struct {
	User   UserDTO
	Tokens *TokenPair
}

// RegisterUseCase handles new user registration.
type RegisterUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenService
	logger   logger.Interface
}

// NewRegisterUseCase creates a new RegisterUseCase instance.
func NewRegisterUseCase(userRepo user.Repository, hasher PasswordHasher, tokens TokenService, logger logger.Interface) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" {
		return nil, errors.NewValidationError("email is required")
	}
	if len(cmd.Password) < 8 {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to check existing user", "email", email, "error", err)
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, errors.NewValidationError("an account with this email already exists")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	sid := id.MustGenerateWithPrefix(id.PrefixUser, id.DefaultLength)
	newUser, err := user.NewUser(sid, email, cmd.Name, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		uc.logger.Errorw("failed to create user", "email", email, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := uc.tokens.GenerateTokenPair(newUser.ID(), newUser.SID(), newUser.Email())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", newUser.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	uc.logger.Infow("user registered", "user_sid", newUser.SID())

	return &RegisterResult{User: toUserDTO(newUser), Tokens: pair}, nil
}
