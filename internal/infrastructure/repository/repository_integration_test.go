package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"captr/internal/domain/card"
	"captr/internal/domain/subscription"
	"captr/internal/infrastructure/persistence/models"
	"captr/internal/shared/biztime"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)           {}
func (noopLogger) Info(msg string, args ...any)            {}
func (noopLogger) Warn(msg string, args ...any)            {}
func (noopLogger) Error(msg string, args ...any)           {}
func (noopLogger) Debugw(msg string, keysAndValues ...any) {}
func (noopLogger) Infow(msg string, keysAndValues ...any)  {}
func (noopLogger) Warnw(msg string, keysAndValues ...any)  {}
func (noopLogger) Errorw(msg string, keysAndValues ...any) {}
func (noopLogger) With(args ...any) logger.Interface       { return noopLogger{} }
func (noopLogger) Named(name string) logger.Interface      { return noopLogger{} }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.CardModel{},
		&models.SubscriptionModel{},
		&models.ScanUsageModel{},
	))
	return db
}

func mustCard(t *testing.T, userID uint, sid string, fields card.Fields) *card.Card {
	t.Helper()
	c, err := card.NewCard(userID, sid, fields)
	require.NoError(t, err)
	return c
}

func TestCardRepository_CreateAndGet(t *testing.T) {
	repo := NewCardRepository(setupTestDB(t), noopLogger{})
	ctx := context.Background()

	created := mustCard(t, 1, "card_int001", card.Fields{Name: "Jane Doe", Email: "jane@acme.com"})
	require.NoError(t, repo.Create(ctx, created))
	assert.NotZero(t, created.ID())

	got, err := repo.GetBySID(ctx, 1, "card_int001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane Doe", got.Fields().Name)

	// Other users cannot see the card.
	other, err := repo.GetBySID(ctx, 2, "card_int001")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestCardRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCardRepository(db, noopLogger{})
	ctx := context.Background()

	// Backdate rows directly so ordering is deterministic.
	base := biztime.NowUTC().Add(-time.Hour)
	for i, sid := range []string{"card_a", "card_b", "card_c"} {
		c := mustCard(t, 1, sid, card.Fields{Name: sid})
		require.NoError(t, repo.Create(ctx, c))
		require.NoError(t, db.Model(&models.CardModel{}).
			Where("sid = ?", sid).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	cards, err := repo.ListByUser(ctx, 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "card_c", cards[0].SID())
	assert.Equal(t, "card_a", cards[2].SID())

	limited, err := repo.ListByUser(ctx, 1, 2, 1)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "card_b", limited[0].SID())
}

func TestCardRepository_UpdateAndDelete(t *testing.T) {
	repo := NewCardRepository(setupTestDB(t), noopLogger{})
	ctx := context.Background()

	c := mustCard(t, 1, "card_upd", card.Fields{Name: "Before", Notes: "keep"})
	require.NoError(t, repo.Create(ctx, c))

	name := "After"
	c.ApplyPatch(card.Patch{Name: &name})
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.GetBySID(ctx, 1, "card_upd")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Fields().Name)
	assert.Equal(t, "keep", got.Fields().Notes)

	require.NoError(t, repo.Delete(ctx, 1, "card_upd"))
	gone, err := repo.GetBySID(ctx, 1, "card_upd")
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.True(t, errors.IsNotFoundError(repo.Delete(ctx, 1, "card_upd")))
}

func TestCardRepository_MissingRowsSignalNotFound(t *testing.T) {
	repo := NewCardRepository(setupTestDB(t), noopLogger{})
	ctx := context.Background()

	err := repo.Delete(ctx, 1, "card_never")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	// Updating a card another session already deleted hits the same path.
	ghost := mustCard(t, 1, "card_ghost", card.Fields{Name: "Ghost"})
	require.NoError(t, repo.Create(ctx, ghost))
	require.NoError(t, repo.Delete(ctx, 1, "card_ghost"))

	err = repo.Update(ctx, ghost)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	// Another user's sid is a miss too, not a cross-tenant write.
	other := mustCard(t, 2, "card_theirs", card.Fields{Name: "Theirs"})
	require.NoError(t, repo.Create(ctx, other))
	assert.True(t, errors.IsNotFoundError(repo.Delete(ctx, 1, "card_theirs")))
}

func TestSubscriptionRepository_ReplaceUpserts(t *testing.T) {
	repo := NewSubscriptionRepository(setupTestDB(t), noopLogger{})
	ctx := context.Background()

	absent, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, absent)

	expires := biztime.NowUTC().Add(30 * 24 * time.Hour)
	first, err := subscription.NewSubscription(1, "sub_one", subscription.PlanMonthly, biztime.NowUTC(), &expires, "order_1", "pay_1")
	require.NoError(t, err)
	require.NoError(t, repo.Replace(ctx, first))

	expiresYear := biztime.NowUTC().Add(365 * 24 * time.Hour)
	second, err := subscription.NewSubscription(1, "sub_two", subscription.PlanYearly, biztime.NowUTC(), &expiresYear, "order_2", "pay_2")
	require.NoError(t, err)
	require.NoError(t, repo.Replace(ctx, second))

	got, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, subscription.PlanYearly, got.Plan())
	assert.Equal(t, "order_2", got.OrderID())
	assert.Equal(t, "sub_two", got.SID())
}

func TestScanUsageRepository_LazyRowAndCounting(t *testing.T) {
	repo := NewScanUsageRepository(setupTestDB(t), noopLogger{})
	ctx := context.Background()

	count, err := repo.GetCount(ctx, 1, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = repo.Increment(ctx, 1, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A different month is a fresh counter.
	count, err = repo.GetCount(ctx, 1, "2026-09")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestScanUsageRepository_IncrementIfBelowBoundary(t *testing.T) {
	repo := NewScanUsageRepository(setupTestDB(t), noopLogger{})
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		count, incremented, err := repo.IncrementIfBelow(ctx, 1, "2026-08", 3)
		require.NoError(t, err)
		assert.True(t, incremented)
		assert.Equal(t, i, count)
	}

	count, incremented, err := repo.IncrementIfBelow(ctx, 1, "2026-08", 3)
	require.NoError(t, err)
	assert.False(t, incremented)
	assert.Equal(t, 3, count, "rejected increment leaves the counter unchanged")
}
