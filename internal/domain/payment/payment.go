package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/courthub/service-booking/pkg/domain"
)

// PaymentRecord is the immutable record of one successful card charge.
// Exactly one record exists per gateway transaction; the transaction ID is
// the idempotency key for reconciliation.
type PaymentRecord struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	userEmail     string
	amountCents   int64
	couponCode    *string
	discountCents int64
	transactionID string
	currency      string
	createdAt     time.Time
}

// NewPaymentRecord creates a record for a confirmed charge.
func NewPaymentRecord(bookingID uuid.UUID, userEmail string, amountCents int64, couponCode *string, discountCents int64, transactionID, currency string) (*PaymentRecord, error) {
	if transactionID == "" {
		return nil, domain.NewValidationError("transaction id is required")
	}
	if amountCents < 0 {
		return nil, domain.NewValidationError("amount cannot be negative")
	}
	if discountCents < 0 {
		return nil, domain.NewValidationError("discount cannot be negative")
	}

	return &PaymentRecord{
		id:            uuid.New(),
		bookingID:     bookingID,
		userEmail:     userEmail,
		amountCents:   amountCents,
		couponCode:    couponCode,
		discountCents: discountCents,
		transactionID: transactionID,
		currency:      currency,
		createdAt:     time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a PaymentRecord from persistence.
func Reconstruct(id, bookingID uuid.UUID, userEmail string, amountCents int64, couponCode *string, discountCents int64, transactionID, currency string, createdAt time.Time) *PaymentRecord {
	return &PaymentRecord{
		id: id, bookingID: bookingID, userEmail: userEmail,
		amountCents: amountCents, couponCode: couponCode, discountCents: discountCents,
		transactionID: transactionID, currency: currency, createdAt: createdAt,
	}
}

// Getters.
func (p *PaymentRecord) ID() uuid.UUID         { return p.id }
func (p *PaymentRecord) BookingID() uuid.UUID  { return p.bookingID }
func (p *PaymentRecord) UserEmail() string     { return p.userEmail }
func (p *PaymentRecord) AmountCents() int64    { return p.amountCents }
func (p *PaymentRecord) CouponCode() *string   { return p.couponCode }
func (p *PaymentRecord) DiscountCents() int64  { return p.discountCents }
func (p *PaymentRecord) TransactionID() string { return p.transactionID }
func (p *PaymentRecord) Currency() string      { return p.currency }
func (p *PaymentRecord) CreatedAt() time.Time  { return p.createdAt }
