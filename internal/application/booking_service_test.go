package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/domain/booking"
	"github.com/courthub/service-booking/internal/domain/court"
)

type bookingFixture struct {
	service     *BookingService
	bookingRepo *fakeBookingRepo
	courtRepo   *fakeCourtRepo
	memberRepo  *fakeMemberRepo
	court       *court.Court
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	c, err := court.NewCourt("Court 1", "badminton", 2000, court.PricePerHour, []court.Slot{
		{StartTime: "18:00", EndTime: "19:00", Available: true},
		{StartTime: "19:00", EndTime: "20:00", Available: false},
		{StartTime: "20:00", EndTime: "21:00", Available: true},
	})
	require.NoError(t, err)

	fx := &bookingFixture{
		bookingRepo: newFakeBookingRepo(),
		courtRepo:   newFakeCourtRepo(),
		memberRepo:  newFakeMemberRepo(),
		court:       c,
	}
	require.NoError(t, fx.courtRepo.Save(context.Background(), c))

	fx.service = NewBookingService(fx.bookingRepo, fx.courtRepo, fx.memberRepo, nil, zap.NewNop())
	return fx
}

func TestSubmitBooking_PersistsPendingBooking(t *testing.T) {
	fx := newBookingFixture(t)

	dto, err := fx.service.SubmitBooking(context.Background(), "alice@example.com", SubmitBookingRequest{
		CourtID:     fx.court.ID(),
		BookingDate: time.Now().UTC().AddDate(0, 0, 1),
		Slots: []SlotDTO{
			{StartTime: "18:00", EndTime: "19:00"},
			{StartTime: "20:00", EndTime: "21:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, string(booking.StatusPending), dto.Status)
	assert.Equal(t, "alice@example.com", dto.UserEmail)
	assert.Equal(t, int64(4000), dto.TotalCostCents, "2 slots at 2000 each")
	assert.Len(t, dto.Slots, 2)

	stored, err := fx.bookingRepo.FindByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, stored.Status())
}

func TestSubmitBooking_TakenSlotIsConflict(t *testing.T) {
	fx := newBookingFixture(t)

	// The 19:00 window exists in the catalog but is already booked: the
	// user selected from a stale availability view.
	_, err := fx.service.SubmitBooking(context.Background(), "alice@example.com", SubmitBookingRequest{
		CourtID:     fx.court.ID(),
		BookingDate: time.Now().UTC().AddDate(0, 0, 1),
		Slots:       []SlotDTO{{StartTime: "19:00", EndTime: "20:00"}},
	})

	var conflict *booking.SubmissionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "19:00", conflict.Slot.StartTime)
	assert.Empty(t, fx.bookingRepo.bookings, "nothing persisted on conflict")
}

func TestSubmitBooking_UnknownWindowIsInvalid(t *testing.T) {
	fx := newBookingFixture(t)

	_, err := fx.service.SubmitBooking(context.Background(), "alice@example.com", SubmitBookingRequest{
		CourtID:     fx.court.ID(),
		BookingDate: time.Now().UTC().AddDate(0, 0, 1),
		Slots:       []SlotDTO{{StartTime: "07:00", EndTime: "08:00"}},
	})

	var invalid *booking.InvalidSlotError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, fx.bookingRepo.bookings)
}

func TestSubmitBooking_PastDateRejected(t *testing.T) {
	fx := newBookingFixture(t)

	_, err := fx.service.SubmitBooking(context.Background(), "alice@example.com", SubmitBookingRequest{
		CourtID:     fx.court.ID(),
		BookingDate: time.Now().UTC().AddDate(0, 0, -2),
		Slots:       []SlotDTO{{StartTime: "18:00", EndTime: "19:00"}},
	})

	var pastDate *booking.PastDateError
	require.ErrorAs(t, err, &pastDate)
}

func TestApproveBooking_PromotesRequesterToMember(t *testing.T) {
	fx := newBookingFixture(t)

	dto, err := fx.service.SubmitBooking(context.Background(), "alice@example.com", SubmitBookingRequest{
		CourtID:     fx.court.ID(),
		BookingDate: time.Now().UTC().AddDate(0, 0, 1),
		Slots:       []SlotDTO{{StartTime: "18:00", EndTime: "19:00"}},
	})
	require.NoError(t, err)

	approved, err := fx.service.ApproveBooking(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusApproved), approved.Status)

	_, err = fx.memberRepo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	// A second approval for the same user must not fail on the existing
	// membership.
	dto2, err := fx.service.SubmitBooking(context.Background(), "alice@example.com", SubmitBookingRequest{
		CourtID:     fx.court.ID(),
		BookingDate: time.Now().UTC().AddDate(0, 0, 2),
		Slots:       []SlotDTO{{StartTime: "20:00", EndTime: "21:00"}},
	})
	require.NoError(t, err)
	_, err = fx.service.ApproveBooking(context.Background(), dto2.ID)
	require.NoError(t, err)
}
