package payment

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines persistence operations for payment records.
type PaymentRepository interface {
	// Save persists a new record. A duplicate transaction ID must fail with
	// a conflict so reconciliation retries are detected, never doubled.
	Save(ctx context.Context, p *PaymentRecord) error

	// Delete removes a record; used only as saga compensation before any
	// downstream effect has been committed.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByTransactionID retrieves a record by its gateway transaction ID.
	FindByTransactionID(ctx context.Context, transactionID string) (*PaymentRecord, error)

	// FindByBookingID retrieves the record for a booking.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*PaymentRecord, error)

	// ListByUserEmail retrieves a user's payment history, newest first.
	ListByUserEmail(ctx context.Context, email string) ([]*PaymentRecord, error)

	// ListAll retrieves all records with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*PaymentRecord, int64, error)

	// GetRevenueStats returns total collected cents and record count (admin).
	GetRevenueStats(ctx context.Context) (totalCents int64, count int64, err error)
}
