package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courthub/service-booking/internal/domain/court"
)

var testNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func readySelection(t *testing.T) *SlotSelection {
	t.Helper()
	sel := NewSlotSelection(testCourt(t))
	require.NoError(t, sel.Toggle(court.Slot{StartTime: "18:00", EndTime: "19:00"}))
	require.NoError(t, sel.Toggle(court.Slot{StartTime: "20:00", EndTime: "21:00"}))
	return sel
}

func TestRequestBuilder_RejectsYesterday(t *testing.T) {
	rb := newRequestBuilderAt(testNow)

	err := rb.SetDate(testNow.AddDate(0, 0, -1))
	var pastErr *PastDateError
	require.ErrorAs(t, err, &pastErr)
	assert.False(t, rb.Ready())
}

func TestRequestBuilder_AcceptsToday(t *testing.T) {
	rb := newRequestBuilderAt(testNow)

	// Midnight of the current day is not "in the past" even though the
	// clock already reads mid-afternoon.
	require.NoError(t, rb.SetDate(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
}

func TestRequestBuilder_AcceptsFutureDate(t *testing.T) {
	rb := newRequestBuilderAt(testNow)
	require.NoError(t, rb.SetDate(testNow.AddDate(0, 0, 7)))
}

func TestRequestBuilder_RejectsEmptySelection(t *testing.T) {
	rb := newRequestBuilderAt(testNow)

	var emptyErr *EmptySelectionError
	require.ErrorAs(t, rb.SetSlots(nil), &emptyErr)

	sel := NewSlotSelection(testCourt(t))
	require.ErrorAs(t, rb.SetSlots(sel), &emptyErr)
}

func TestRequestBuilder_BuildRequiresDateAndSlots(t *testing.T) {
	rb := newRequestBuilderAt(testNow)
	require.NoError(t, rb.SetSlots(readySelection(t)))

	var noDate *NoDateError
	_, err := rb.Build(BuildInput{})
	require.ErrorAs(t, err, &noDate, "no date set")

	rb = newRequestBuilderAt(testNow)
	require.NoError(t, rb.SetDate(testNow.AddDate(0, 0, 1)))
	var emptySel *EmptySelectionError
	_, err = rb.Build(BuildInput{})
	require.ErrorAs(t, err, &emptySel, "no slots set")
}

func TestRequestBuilder_BuildSnapshotsPendingBooking(t *testing.T) {
	rb := newRequestBuilderAt(testNow)
	require.NoError(t, rb.SetDate(testNow.AddDate(0, 0, 1)))
	require.NoError(t, rb.SetSlots(readySelection(t)))
	require.True(t, rb.Ready())

	courtID := uuid.New()
	b, err := rb.Build(BuildInput{
		CourtID:    courtID,
		CourtName:  "Court 1",
		CourtType:  "badminton",
		PriceCents: 2000,
		UserEmail:  "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status())
	assert.Equal(t, courtID, b.CourtID())
	assert.Equal(t, "alice@example.com", b.UserEmail())
	assert.Equal(t, int64(4000), b.TotalCostCents(), "2 slots at 2000 each")
	assert.Equal(t, int64(1), b.Version())
	assert.Len(t, b.Slots(), 2)

	// The booking date is normalized to UTC midnight.
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), b.BookingDate())
}

func TestBooking_StatusTransitions(t *testing.T) {
	build := func(t *testing.T) *Booking {
		rb := newRequestBuilderAt(testNow)
		require.NoError(t, rb.SetDate(testNow.AddDate(0, 0, 1)))
		require.NoError(t, rb.SetSlots(readySelection(t)))
		b, err := rb.Build(BuildInput{CourtID: uuid.New(), PriceCents: 2000, UserEmail: "a@b.c"})
		require.NoError(t, err)
		return b
	}

	t.Run("approve then confirm", func(t *testing.T) {
		b := build(t)
		require.NoError(t, b.Approve())
		require.NoError(t, b.Confirm())
		assert.Equal(t, StatusConfirmed, b.Status())
	})

	t.Run("reject only from pending", func(t *testing.T) {
		b := build(t)
		require.NoError(t, b.Approve())
		require.Error(t, b.Reject())
	})

	t.Run("cancel approved", func(t *testing.T) {
		b := build(t)
		require.NoError(t, b.Approve())
		require.NoError(t, b.Cancel())
		assert.Equal(t, StatusCancelled, b.Status())
	})

	t.Run("confirmed cannot be cancelled", func(t *testing.T) {
		b := build(t)
		require.NoError(t, b.Confirm())
		require.Error(t, b.Cancel())
	})
}
