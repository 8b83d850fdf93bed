package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// Update persists changes with optimistic locking on the version column.
	Update(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// ListByUserEmail retrieves a user's bookings, optionally filtered by status.
	ListByUserEmail(ctx context.Context, email string, status Status) ([]*Booking, error)

	// ListByStatus retrieves bookings in a given status with pagination (admin).
	ListByStatus(ctx context.Context, status Status, page, limit int) ([]*Booking, int64, error)

	// HasApprovedOrConfirmed reports whether the user ever had a booking
	// approved; used to derive membership.
	HasApprovedOrConfirmed(ctx context.Context, email string) (bool, error)
}
