package usecases

import (
	"context"

	"captr/internal/domain/card"
	"captr/internal/shared/logger"
)

type mockCardRepository struct {
	CreateFunc     func(ctx context.Context, c *card.Card) error
	GetBySIDFunc   func(ctx context.Context, userID uint, sid string) (*card.Card, error)
	ListByUserFunc func(ctx context.Context, userID uint, limit, offset int) ([]*card.Card, error)
	UpdateFunc     func(ctx context.Context, c *card.Card) error
	DeleteFunc     func(ctx context.Context, userID uint, sid string) error
}

func (m *mockCardRepository) Create(ctx context.Context, c *card.Card) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCardRepository) GetBySID(ctx context.Context, userID uint, sid string) (*card.Card, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, userID, sid)
	}
	return nil, nil
}

func (m *mockCardRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*card.Card, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockCardRepository) Update(ctx context.Context, c *card.Card) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCardRepository) Delete(ctx context.Context, userID uint, sid string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, sid)
	}
	return nil
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
