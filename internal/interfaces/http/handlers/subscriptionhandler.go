package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"captr/internal/application/subscription/usecases"
	"captr/internal/interfaces/http/middleware"
	"captr/internal/shared/logger"
	"captr/internal/shared/utils"
)

// SubscriptionHandler handles plan purchase and subscription reads.
type SubscriptionHandler struct {
	createOrderUseCase *usecases.CreateOrderUseCase
	activateUseCase    *usecases.ActivateSubscriptionUseCase
	getUseCase         *usecases.GetSubscriptionUseCase
	logger             logger.Interface
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(
	createOrderUC *usecases.CreateOrderUseCase,
	activateUC *usecases.ActivateSubscriptionUseCase,
	getUC *usecases.GetSubscriptionUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createOrderUseCase: createOrderUC,
		activateUseCase:    activateUC,
		getUseCase:         getUC,
		logger:             logger,
	}
}

// CreateOrderRequest represents the order creation payload
type CreateOrderRequest struct {
	Plan string `json:"plan" binding:"required,oneof=monthly yearly"`
}

// VerifyPaymentRequest represents the checkout completion payload
type VerifyPaymentRequest struct {
	Plan      string `json:"plan" binding:"required,oneof=monthly yearly"`
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// CreateOrder registers a payment order for a paid plan
func (h *SubscriptionHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), usecases.CreateOrderCommand{
		UserID: middleware.UserID(c),
		Plan:   req.Plan,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"order_id": result.OrderID,
		"amount":   result.AmountPaise,
		"currency": result.Currency,
		"plan":     result.Plan,
		"key_id":   result.KeyID,
	})
}

// VerifyPayment verifies the checkout signature and activates the plan
func (h *SubscriptionHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.activateUseCase.Execute(c.Request.Context(), usecases.ActivateSubscriptionCommand{
		UserID:    middleware.UserID(c),
		Plan:      req.Plan,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"id":            result.SID,
		"plan":          result.Plan,
		"status":        result.Status,
		"subscribed_at": result.SubscribedAt,
		"expires_at":    result.ExpiresAt,
	})
}

// Get returns the caller's subscription, synthesizing a free-plan record for
// users who never subscribed
func (h *SubscriptionHandler) Get(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{
		UserID: middleware.UserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"id":            result.SID,
		"plan":          result.Plan,
		"status":        result.Status,
		"subscribed_at": result.SubscribedAt,
		"expires_at":    result.ExpiresAt,
	})
}
