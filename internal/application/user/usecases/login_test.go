package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"captr/internal/domain/user"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

type mockUserRepository struct {
	byEmail map[string]*user.User
	byID    map[uint]*user.User
	nextID  uint
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uint]*user.User),
		nextID:  1,
	}
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.nextID++
	m.byEmail[u.Email()] = u
	m.byID[u.ID()] = u
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.byID[id], nil
}

func (m *mockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	for _, u := range m.byID {
		if u.SID() == sid {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.byEmail[email], nil
}

// mockHasher hashes by reversible prefixing so tests stay fast.
type mockHasher struct{}

func (m *mockHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (m *mockHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

type mockTokenService struct {
	refreshUserID uint
	refreshErr    error
	pairs         int
}

func (m *mockTokenService) GenerateTokenPair(userID uint, userSID, email string) (*TokenPair, error) {
	m.pairs++
	return &TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil
}

func (m *mockTokenService) ValidateRefreshToken(token string) (uint, error) {
	return m.refreshUserID, m.refreshErr
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }

func registerTestUser(t *testing.T, repo *mockUserRepository, email, password string) {
	t.Helper()
	uc := NewRegisterUseCase(repo, &mockHasher{}, &mockTokenService{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), RegisterCommand{Email: email, Name: "Test", Password: password})
	require.NoError(t, err)
}

func TestRegisterUseCase_HappyPath(t *testing.T) {
	repo := newMockUserRepository()
	uc := NewRegisterUseCase(repo, &mockHasher{}, &mockTokenService{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), RegisterCommand{
		Email:    "  Jane@Example.COM ",
		Name:     "Jane",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", result.User.Email, "email is normalized")
	assert.True(t, strings.HasPrefix(result.User.SID, "user_"))
	assert.NotEmpty(t, result.Tokens.AccessToken)

	stored, repoErr := repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, repoErr)
	require.NotNil(t, stored)
	assert.Equal(t, "hashed:correct horse", stored.PasswordHash(), "password goes through the hasher")
}

func TestRegisterUseCase_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepository()
	registerTestUser(t, repo, "jane@example.com", "password1")

	uc := NewRegisterUseCase(repo, &mockHasher{}, &mockTokenService{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), RegisterCommand{
		Email:    "JANE@example.com",
		Password: "password2",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRegisterUseCase_ShortPassword(t *testing.T) {
	uc := NewRegisterUseCase(newMockUserRepository(), &mockHasher{}, &mockTokenService{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), RegisterCommand{Email: "a@b.com", Password: "short"})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestLoginUseCase_HappyPath(t *testing.T) {
	repo := newMockUserRepository()
	registerTestUser(t, repo, "jane@example.com", "password1")

	uc := NewLoginUseCase(repo, &mockHasher{}, &mockTokenService{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), LoginCommand{Email: "jane@example.com", Password: "password1"})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", result.User.Email)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
}

func TestLoginUseCase_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := newMockUserRepository()
	registerTestUser(t, repo, "jane@example.com", "password1")
	uc := NewLoginUseCase(repo, &mockHasher{}, &mockTokenService{}, &mockLogger{})

	_, wrongPass := uc.Execute(context.Background(), LoginCommand{Email: "jane@example.com", Password: "nope"})
	_, unknown := uc.Execute(context.Background(), LoginCommand{Email: "ghost@example.com", Password: "nope"})

	require.Error(t, wrongPass)
	require.Error(t, unknown)
	assert.Equal(t, wrongPass.Error(), unknown.Error(), "login failures must be indistinguishable")
}

func TestRefreshTokenUseCase_HappyPath(t *testing.T) {
	repo := newMockUserRepository()
	registerTestUser(t, repo, "jane@example.com", "password1")

	tokens := &mockTokenService{refreshUserID: 1}
	uc := NewRefreshTokenUseCase(repo, tokens, &mockLogger{})

	result, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
}

func TestRefreshTokenUseCase_UnknownUser(t *testing.T) {
	tokens := &mockTokenService{refreshUserID: 42}
	uc := NewRefreshTokenUseCase(newMockUserRepository(), tokens, &mockLogger{})

	_, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh"})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
}
