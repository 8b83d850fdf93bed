package adapter

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// StripeGateway implements PaymentGateway against the Stripe API.
type StripeGateway struct {
	logger *zap.Logger
}

// NewStripeGateway configures the Stripe client and returns a gateway.
func NewStripeGateway(secretKey string, logger *zap.Logger) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{logger: logger}
}

// CreatePaymentIntent creates a Stripe PaymentIntent for the payable amount.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerEmail string, metadata map[string]string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(currency),
		ReceiptEmail: stripe.String(customerEmail),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	g.logger.Info("payment intent created",
		zap.String("payment_intent_id", pi.ID),
		zap.Int64("amount_cents", amountCents),
		zap.String("currency", currency),
	)
	return pi.ID, pi.ClientSecret, nil
}

// RetrievePaymentIntent fetches an intent's current state from Stripe.
func (g *StripeGateway) RetrievePaymentIntent(ctx context.Context, paymentIntentID string) (ChargeDetails, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(paymentIntentID, params)
	if err != nil {
		return ChargeDetails{}, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	return ChargeDetails{
		TransactionID: pi.ID,
		AmountCents:   pi.AmountReceived,
		Currency:      string(pi.Currency),
		Status:        string(pi.Status),
		Metadata:      pi.Metadata,
	}, nil
}

// CancelPaymentIntent cancels an unconfirmed intent.
func (g *StripeGateway) CancelPaymentIntent(ctx context.Context, paymentIntentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx

	if _, err := paymentintent.Cancel(paymentIntentID, params); err != nil {
		return fmt.Errorf("failed to cancel payment intent: %w", err)
	}
	g.logger.Info("payment intent cancelled", zap.String("payment_intent_id", paymentIntentID))
	return nil
}

// CreateRefund refunds a captured charge.
func (g *StripeGateway) CreateRefund(ctx context.Context, paymentIntentID string, amountCents int64) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(amountCents),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("failed to create refund: %w", err)
	}
	g.logger.Info("refund created",
		zap.String("payment_intent_id", paymentIntentID),
		zap.Int64("amount_cents", amountCents),
	)
	return nil
}
