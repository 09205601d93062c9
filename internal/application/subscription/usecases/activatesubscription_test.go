package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"captr/internal/domain/subscription"
	"captr/internal/shared/biztime"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

type mockSubscriptionRepository struct {
	stored *subscription.Subscription
}

func (m *mockSubscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	if m.stored != nil && m.stored.UserID() == userID {
		return m.stored, nil
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) Replace(ctx context.Context, sub *subscription.Subscription) error {
	m.stored = sub
	return nil
}

type mockGateway struct {
	orderID     string
	createErr   error
	validSig    string
	orderCalls  int
	lastAmount  int64
	lastReceipt string
}

func (m *mockGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	m.orderCalls++
	m.lastAmount = amountPaise
	m.lastReceipt = receipt
	return m.orderID, m.createErr
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == m.validSig
}

func (m *mockGateway) KeyID() string { return "rzp_test_key" }

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

func TestCreateOrderUseCase_PaidPlan(t *testing.T) {
	gateway := &mockGateway{orderID: "order_abc"}
	uc := NewCreateOrderUseCase(gateway, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateOrderCommand{UserID: 1, Plan: "monthly"})

	require.NoError(t, err)
	assert.Equal(t, "order_abc", result.OrderID)
	assert.Equal(t, int64(29900), result.AmountPaise)
	assert.Equal(t, "INR", result.Currency)
	assert.Equal(t, "rzp_test_key", result.KeyID)
	assert.Equal(t, int64(29900), gateway.lastAmount)
	assert.True(t, strings.HasPrefix(gateway.lastReceipt, "captr_1_"))
}

func TestCreateOrderUseCase_FreePlanRejected(t *testing.T) {
	uc := NewCreateOrderUseCase(&mockGateway{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), CreateOrderCommand{UserID: 1, Plan: "free"})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateOrderUseCase_UnknownPlanRejected(t *testing.T) {
	uc := NewCreateOrderUseCase(&mockGateway{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), CreateOrderCommand{UserID: 1, Plan: "lifetime"})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestActivateSubscriptionUseCase_ValidSignature(t *testing.T) {
	repo := &mockSubscriptionRepository{}
	gateway := &mockGateway{validSig: "good-signature"}
	uc := NewActivateSubscriptionUseCase(repo, gateway, nil, &mockLogger{})

	before := biztime.NowUTC()
	result, err := uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID:    1,
		Plan:      "yearly",
		OrderID:   "order_abc",
		PaymentID: "pay_abc",
		Signature: "good-signature",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.SID, "sub_"))
	assert.Equal(t, "yearly", result.Plan)
	assert.Equal(t, string(subscription.StatusActive), result.Status)
	require.NotNil(t, result.ExpiresAt)
	assert.WithinDuration(t, before.Add(365*24*time.Hour), *result.ExpiresAt, 5*time.Second)

	require.NotNil(t, repo.stored)
	assert.Equal(t, "order_abc", repo.stored.OrderID())
	assert.Equal(t, "pay_abc", repo.stored.PaymentID())
}

func TestActivateSubscriptionUseCase_MissingPaymentProofRejected(t *testing.T) {
	repo := &mockSubscriptionRepository{}
	uc := NewActivateSubscriptionUseCase(repo, &mockGateway{validSig: "sig"}, nil, &mockLogger{})

	_, err := uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID: 1, Plan: "monthly", OrderID: "order_1",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Nil(t, repo.stored)
}

func TestActivateSubscriptionUseCase_InvalidSignature(t *testing.T) {
	repo := &mockSubscriptionRepository{}
	gateway := &mockGateway{validSig: "good-signature"}
	uc := NewActivateSubscriptionUseCase(repo, gateway, nil, &mockLogger{})

	_, err := uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID:    1,
		Plan:      "monthly",
		OrderID:   "order_abc",
		PaymentID: "pay_abc",
		Signature: "tampered",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	assert.Nil(t, repo.stored, "failed verification must not store a subscription")
}

func TestActivateSubscriptionUseCase_ReplacesExistingPlan(t *testing.T) {
	repo := &mockSubscriptionRepository{}
	gateway := &mockGateway{validSig: "sig"}
	uc := NewActivateSubscriptionUseCase(repo, gateway, nil, &mockLogger{})

	_, err := uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID: 1, Plan: "monthly", OrderID: "order_1", PaymentID: "pay_1", Signature: "sig",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ActivateSubscriptionCommand{
		UserID: 1, Plan: "yearly", OrderID: "order_2", PaymentID: "pay_2", Signature: "sig",
	})
	require.NoError(t, err)

	assert.Equal(t, subscription.PlanYearly, repo.stored.Plan())
	assert.Equal(t, "order_2", repo.stored.OrderID())
}

func TestGetSubscriptionUseCase_NeverSubscribed(t *testing.T) {
	uc := NewGetSubscriptionUseCase(&mockSubscriptionRepository{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetSubscriptionQuery{UserID: 1})

	require.NoError(t, err)
	assert.Equal(t, "free", result.Plan)
	assert.Equal(t, string(subscription.StatusActive), result.Status)
	assert.Nil(t, result.ExpiresAt)
}

func TestGetSubscriptionUseCase_ExpiredReportedAsExpired(t *testing.T) {
	expiresAt := biztime.NowUTC().Add(-time.Hour)
	sub, err := subscription.ReconstructSubscription(
		1, "sub_old", 1, subscription.PlanMonthly, subscription.StatusActive,
		biztime.NowUTC().Add(-31*24*time.Hour), &expiresAt,
		"order_old", "pay_old",
		biztime.NowUTC().Add(-31*24*time.Hour), biztime.NowUTC(),
	)
	require.NoError(t, err)
	uc := NewGetSubscriptionUseCase(&mockSubscriptionRepository{stored: sub}, &mockLogger{})

	result, execErr := uc.Execute(context.Background(), GetSubscriptionQuery{UserID: 1})

	require.NoError(t, execErr)
	assert.Equal(t, "monthly", result.Plan)
	assert.Equal(t, string(subscription.StatusExpired), result.Status)
}
