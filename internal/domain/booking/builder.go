package booking

import (
	"time"

	"github.com/google/uuid"
)

// RequestBuilder assembles a submittable booking request. It walks the
// states empty -> date chosen -> slots chosen -> ready; Build succeeds
// only once both a future date and a non-empty selection are set.
//
// The builder holds no external resources; discarding it is the only
// cancellation needed before submission.
type RequestBuilder struct {
	date      time.Time
	dateSet   bool
	selection *SlotSelection
	now       func() time.Time
}

// NewRequestBuilder creates an empty builder.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{now: func() time.Time { return time.Now().UTC() }}
}

// newRequestBuilderAt pins the builder's clock; used by tests.
func newRequestBuilderAt(now time.Time) *RequestBuilder {
	return &RequestBuilder{now: func() time.Time { return now }}
}

// truncateToDay normalizes a timestamp to its UTC calendar day. Booking
// dates compare by calendar day only: a booking for later today is valid
// even when entered without a time component.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SetDate validates and stores the booking date. Dates before today's
// calendar day fail with PastDateError; today and later succeed.
func (rb *RequestBuilder) SetDate(date time.Time) error {
	day := truncateToDay(date)
	if day.Before(truncateToDay(rb.now())) {
		return &PastDateError{Date: day}
	}
	rb.date = day
	rb.dateSet = true
	return nil
}

// SetSlots attaches a non-empty slot selection.
func (rb *RequestBuilder) SetSlots(selection *SlotSelection) error {
	if selection == nil || selection.Count() == 0 {
		return &EmptySelectionError{}
	}
	rb.selection = selection
	return nil
}

// Ready reports whether both a date and at least one slot are set.
func (rb *RequestBuilder) Ready() bool {
	return rb.dateSet && rb.selection != nil && rb.selection.Count() > 0
}

// BuildInput carries the court and user attributes snapshotted into the
// booking at build time.
type BuildInput struct {
	CourtID    uuid.UUID
	CourtName  string
	CourtType  string
	PriceCents int64
	UserEmail  string
}

// Build produces an immutable pending Booking snapshot. The total cost is
// computed at build time from the selection count and the court's price.
// Build does not submit; the caller owns the hand-off to the backend and
// must restart the flow on a rejection.
func (rb *RequestBuilder) Build(in BuildInput) (*Booking, error) {
	if !rb.dateSet {
		return nil, &NoDateError{}
	}
	if rb.selection == nil || rb.selection.Count() == 0 {
		return nil, &EmptySelectionError{}
	}

	now := rb.now()
	return &Booking{
		id:             uuid.New(),
		courtID:        in.CourtID,
		courtName:      in.CourtName,
		courtType:      in.CourtType,
		userEmail:      in.UserEmail,
		bookingDate:    rb.date,
		requestedAt:    now,
		slots:          rb.selection.Slots(),
		totalCostCents: TotalCostCents(rb.selection.Count(), in.PriceCents),
		status:         StatusPending,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}
