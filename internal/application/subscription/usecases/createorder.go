// Package usecases provides application-level use cases for subscription
// purchase: creating payment orders, verifying payments, and activating
// plans.
package usecases

import (
	"context"
	"fmt"

	"captr/internal/domain/subscription"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// PaymentGateway abstracts the payment provider. CreateOrder registers a
// pending order with the provider and returns its order ID; VerifySignature
// checks the provider's payment signature in constant time.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (orderID string, err error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// CreateOrderCommand represents the input for creating a payment order.
type CreateOrderCommand struct {
	UserID uint
	Plan   string
}

// CreateOrderResult carries what the client-side checkout widget needs.
type CreateOrderResult struct {
	OrderID     string
	AmountPaise int64
	Currency    string
	Plan        string
	KeyID       string
}

// CreateOrderUseCase handles creating a payment order for a paid plan.
type CreateOrderUseCase struct {
	gateway PaymentGateway
	logger  logger.Interface
}

// NewCreateOrderUseCase creates a new CreateOrderUseCase instance.
func NewCreateOrderUseCase(gateway PaymentGateway, logger logger.Interface) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		gateway: gateway,
		logger:  logger,
	}
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	planID := subscription.PlanID(cmd.Plan)
	if !planID.IsPaid() {
		return nil, errors.NewValidationError(fmt.Sprintf("plan %q is not purchasable", cmd.Plan))
	}
	plan := subscription.GetPlan(planID)

	receipt := fmt.Sprintf("captr_%d_%s", cmd.UserID, planID)
	orderID, err := uc.gateway.CreateOrder(ctx, plan.PricePaise, "INR", receipt)
	if err != nil {
		uc.logger.Errorw("failed to create payment order", "user_id", cmd.UserID, "plan", planID, "error", err)
		return nil, errors.NewUpstreamError("failed to create payment order")
	}

	uc.logger.Infow("payment order created", "user_id", cmd.UserID, "plan", planID, "order_id", orderID)

	return &CreateOrderResult{
		OrderID:     orderID,
		AmountPaise: plan.PricePaise,
		Currency:    "INR",
		Plan:        string(planID),
		KeyID:       uc.gateway.KeyID(),
	}, nil
}
