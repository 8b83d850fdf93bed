package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
	TopicGatewayEvents = "gateway.events"
)

// Event types.
const (
	BookingRequested = "booking.requested"
	BookingApproved  = "booking.approved"
	BookingRejected  = "booking.rejected"
	BookingCancelled = "booking.cancelled"
	BookingConfirmed = "booking.confirmed"

	PaymentConfirmed = "payment.confirmed"
	PaymentFailed    = "payment.failed"

	GatewayChargeSucceeded = "gateway.charge.succeeded"
	GatewayChargeFailed    = "gateway.charge.failed"
)

// BookingEvent is published on booking lifecycle transitions.
type BookingEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	CourtID     uuid.UUID `json:"court_id"`
	CourtName   string    `json:"court_name"`
	UserEmail   string    `json:"user_email"`
	BookingDate time.Time `json:"booking_date"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// PaymentConfirmedEvent is published after a successful reconciliation.
type PaymentConfirmedEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	BookingID     uuid.UUID `json:"booking_id"`
	UserEmail     string    `json:"user_email"`
	AmountCents   int64     `json:"amount_cents"`
	DiscountCents int64     `json:"discount_cents"`
	CouponCode    *string   `json:"coupon_code,omitempty"`
	TransactionID string    `json:"transaction_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PaymentFailedEvent is published when a charge fails or reconciliation
// cannot complete.
type PaymentFailedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ChargeSucceededEvent arrives from the gateway bridge when a card charge
// settles. It carries everything the reconciler needs.
type ChargeSucceededEvent struct {
	BookingID          uuid.UUID `json:"booking_id"`
	TransactionID      string    `json:"transaction_id"`
	AmountChargedCents int64     `json:"amount_charged_cents"`
	Currency           string    `json:"currency"`
	CouponCode         string    `json:"coupon_code,omitempty"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// ChargeFailedEvent arrives from the gateway bridge when a charge fails.
type ChargeFailedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}
