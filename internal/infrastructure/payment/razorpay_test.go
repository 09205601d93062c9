package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"captr/internal/shared/config"
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

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRazorpayGateway_VerifySignature(t *testing.T) {
	gateway := NewRazorpayGateway(&config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
	}, noopLogger{})

	valid := signPayload("secret", "order_1", "pay_1")

	assert.True(t, gateway.VerifySignature("order_1", "pay_1", valid))
	assert.False(t, gateway.VerifySignature("order_1", "pay_2", valid), "signature binds the payment ID")
	assert.False(t, gateway.VerifySignature("order_2", "pay_1", valid), "signature binds the order ID")
	assert.False(t, gateway.VerifySignature("order_1", "pay_1", valid+"00"))
	assert.False(t, gateway.VerifySignature("order_1", "pay_1", ""))

	foreign := signPayload("other-secret", "order_1", "pay_1")
	assert.False(t, gateway.VerifySignature("order_1", "pay_1", foreign))
}
