package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/courthub/service-booking/internal/domain/court"
	"github.com/courthub/service-booking/pkg/domain"
)

// Status is the lifecycle state of a booking request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking is the aggregate root for a user's validated intent to reserve
// one or more slots on one date. It is created only by RequestBuilder.Build
// and transitions status under admin action or payment confirmation.
type Booking struct {
	id             uuid.UUID
	courtID        uuid.UUID
	courtName      string
	courtType      string
	userEmail      string
	bookingDate    time.Time // calendar day, UTC midnight
	requestedAt    time.Time
	slots          []court.Slot
	totalCostCents int64
	status         Status
	version        int64
	createdAt      time.Time
	updatedAt      time.Time
}

// Reconstitute rebuilds a Booking from persisted data.
func Reconstitute(
	id, courtID uuid.UUID,
	courtName, courtType, userEmail string,
	bookingDate, requestedAt time.Time,
	slots []court.Slot,
	totalCostCents int64,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id: id, courtID: courtID,
		courtName: courtName, courtType: courtType, userEmail: userEmail,
		bookingDate: bookingDate, requestedAt: requestedAt,
		slots: slots, totalCostCents: totalCostCents,
		status: status, version: version,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// Approve transitions pending -> approved (admin action).
func (b *Booking) Approve() error {
	if b.status != StatusPending {
		return domain.NewInvalidStateError(string(b.status), string(StatusApproved))
	}
	b.status = StatusApproved
	b.touch()
	return nil
}

// Reject transitions pending -> rejected (admin action).
func (b *Booking) Reject() error {
	if b.status != StatusPending {
		return domain.NewInvalidStateError(string(b.status), string(StatusRejected))
	}
	b.status = StatusRejected
	b.touch()
	return nil
}

// Confirm transitions pending or approved -> confirmed after a successful
// payment reconciliation.
func (b *Booking) Confirm() error {
	if b.status != StatusPending && b.status != StatusApproved {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	b.status = StatusConfirmed
	b.touch()
	return nil
}

// Cancel transitions pending or approved -> cancelled. A confirmed booking
// cannot be cancelled here; that is a refund flow, not a cancellation.
func (b *Booking) Cancel() error {
	if b.status != StatusPending && b.status != StatusApproved {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.touch()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.touch()
}

func (b *Booking) touch() {
	b.updatedAt = time.Now().UTC()
}

// Getters.
func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) CourtID() uuid.UUID     { return b.courtID }
func (b *Booking) CourtName() string      { return b.courtName }
func (b *Booking) CourtType() string      { return b.courtType }
func (b *Booking) UserEmail() string      { return b.userEmail }
func (b *Booking) BookingDate() time.Time { return b.bookingDate }
func (b *Booking) RequestedAt() time.Time { return b.requestedAt }
func (b *Booking) Slots() []court.Slot    { return append([]court.Slot(nil), b.slots...) }
func (b *Booking) TotalCostCents() int64  { return b.totalCostCents }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) Version() int64         { return b.version }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time   { return b.updatedAt }
