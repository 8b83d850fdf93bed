package adapter

import "context"

// ChargeDetails is the gateway's view of a charge, used to verify a
// confirmation against the amount we asked it to collect. Metadata echoes
// whatever was attached at intent creation, so the confirm path can
// recover the booking and coupon the intent was priced for without
// trusting the client to repeat them.
type ChargeDetails struct {
	TransactionID string
	AmountCents   int64
	Currency      string
	Status        string
	Metadata      map[string]string
}

// PaymentGateway is the anti-corruption layer over the card-payment
// processor. It decouples the booking domain from the Stripe API; the
// domain only ever sees intent IDs, client secrets and charge details.
type PaymentGateway interface {
	// CreatePaymentIntent creates an intent for the already-discounted
	// payable amount and returns its ID and client secret. The charge must
	// always be created from the final payable, never the raw total.
	// Metadata is stored on the intent and returned by RetrievePaymentIntent.
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerEmail string, metadata map[string]string) (paymentIntentID, clientSecret string, err error)

	// RetrievePaymentIntent fetches the gateway's record of an intent.
	RetrievePaymentIntent(ctx context.Context, paymentIntentID string) (ChargeDetails, error)

	// CancelPaymentIntent cancels an unconfirmed intent.
	CancelPaymentIntent(ctx context.Context, paymentIntentID string) error

	// CreateRefund refunds a captured charge.
	CreateRefund(ctx context.Context, paymentIntentID string, amountCents int64) error
}
