// Package payment integrates the Razorpay payment gateway.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"captr/internal/shared/config"
	"captr/internal/shared/logger"
)

// RazorpayGateway implements the payment gateway on the Razorpay API. Order
// creation goes through the SDK; signature verification is local HMAC.
type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	logger    logger.Interface
}

// NewRazorpayGateway creates a new Razorpay gateway
func NewRazorpayGateway(cfg *config.RazorpayConfig, logger logger.Interface) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		logger:    logger,
	}
}

// KeyID returns the public API key the checkout widget needs.
func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateOrder registers a pending order and returns the provider's order ID.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.logger.Errorw("razorpay order creation failed", "receipt", receipt, "error", err)
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order response missing id")
	}

	return orderID, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256 over
// "orderID|paymentID" keyed with the API secret, compared in constant time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
