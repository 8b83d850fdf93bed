package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockGateway is a development/testing implementation of PaymentGateway.
// It simulates the processor without a real account and remembers created
// intents so RetrievePaymentIntent answers consistently.
type MockGateway struct {
	logger *zap.Logger

	mu      sync.Mutex
	intents map[string]ChargeDetails
}

// NewMockGateway creates a mock gateway for development.
func NewMockGateway(logger *zap.Logger) *MockGateway {
	return &MockGateway{logger: logger, intents: make(map[string]ChargeDetails)}
}

// CreatePaymentIntent simulates intent creation and returns mock IDs.
func (m *MockGateway) CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerEmail string, metadata map[string]string) (string, string, error) {
	paymentIntentID := fmt.Sprintf("pi_mock_%s", uuid.New().String()[:8])
	clientSecret := fmt.Sprintf("%s_secret_mock", paymentIntentID)

	m.mu.Lock()
	m.intents[paymentIntentID] = ChargeDetails{
		TransactionID: paymentIntentID,
		AmountCents:   amountCents,
		Currency:      currency,
		Status:        "succeeded",
		Metadata:      metadata,
	}
	m.mu.Unlock()

	m.logger.Info("[MOCK GATEWAY] payment intent created",
		zap.String("payment_intent_id", paymentIntentID),
		zap.Int64("amount_cents", amountCents),
		zap.String("currency", currency),
		zap.String("customer_email", customerEmail),
	)
	return paymentIntentID, clientSecret, nil
}

// RetrievePaymentIntent returns the remembered intent, succeeded.
func (m *MockGateway) RetrievePaymentIntent(ctx context.Context, paymentIntentID string) (ChargeDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	details, ok := m.intents[paymentIntentID]
	if !ok {
		return ChargeDetails{}, fmt.Errorf("unknown payment intent %s", paymentIntentID)
	}
	return details, nil
}

// CancelPaymentIntent simulates cancelling an intent.
func (m *MockGateway) CancelPaymentIntent(ctx context.Context, paymentIntentID string) error {
	m.logger.Info("[MOCK GATEWAY] payment intent cancelled",
		zap.String("payment_intent_id", paymentIntentID),
	)
	return nil
}

// CreateRefund simulates refunding a charge.
func (m *MockGateway) CreateRefund(ctx context.Context, paymentIntentID string, amountCents int64) error {
	m.logger.Info("[MOCK GATEWAY] refund created",
		zap.String("payment_intent_id", paymentIntentID),
		zap.Int64("amount_cents", amountCents),
	)
	return nil
}
