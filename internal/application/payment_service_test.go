package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/adapter"
	"github.com/courthub/service-booking/internal/domain/booking"
	"github.com/courthub/service-booking/internal/domain/coupon"
	"github.com/courthub/service-booking/internal/domain/court"
	"github.com/courthub/service-booking/internal/saga"
	"github.com/courthub/service-booking/pkg/domain"
)

type paymentFixture struct {
	service     *PaymentService
	bookingRepo *fakeBookingRepo
	couponRepo  *fakeCouponRepo
	paymentRepo *fakePaymentRepo
	booking     *booking.Booking
	coupon      *coupon.Coupon
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	slots := []court.Slot{
		{StartTime: "18:00", EndTime: "19:00", Available: true},
		{StartTime: "19:00", EndTime: "20:00", Available: true},
	}
	c, err := court.NewCourt("Court 1", "badminton", 2000, court.PricePerHour, slots)
	require.NoError(t, err)

	now := time.Now().UTC()
	b := booking.Reconstitute(
		uuid.New(), c.ID(),
		"Court 1", "badminton", "alice@example.com",
		now.AddDate(0, 0, 1), now,
		slots,
		4000,
		booking.StatusApproved,
		2,
		now, now,
	)

	cpn, err := coupon.NewCoupon("SAVE10", 10, now.AddDate(0, 1, 0), 5)
	require.NoError(t, err)

	fx := &paymentFixture{
		bookingRepo: newFakeBookingRepo(),
		couponRepo:  newFakeCouponRepo(),
		paymentRepo: newFakePaymentRepo(),
		booking:     b,
		coupon:      cpn,
	}
	courtRepo := newFakeCourtRepo()
	require.NoError(t, courtRepo.Save(context.Background(), c))
	require.NoError(t, fx.bookingRepo.Save(context.Background(), b))
	require.NoError(t, fx.couponRepo.Save(context.Background(), cpn))

	reconciler := saga.NewReconciler(fx.bookingRepo, courtRepo, fx.couponRepo, fx.paymentRepo, nil, zap.NewNop())
	gateway := adapter.NewMockGateway(zap.NewNop())
	fx.service = NewPaymentService(
		fx.bookingRepo, fx.couponRepo, fx.paymentRepo,
		gateway, reconciler, nil,
		"usd", zap.NewNop(),
	)
	return fx
}

func TestCreatePaymentIntent_QuotesDiscountedPayable(t *testing.T) {
	fx := newPaymentFixture(t)

	dto, err := fx.service.CreatePaymentIntent(context.Background(), "alice@example.com", CreatePaymentIntentRequest{
		BookingID:  fx.booking.ID(),
		CouponCode: "SAVE10",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), dto.TotalCents)
	assert.Equal(t, int64(400), dto.DiscountCents)
	assert.Equal(t, int64(3600), dto.PayableCents)
	assert.NotEmpty(t, dto.PaymentIntentID)
	assert.NotEmpty(t, dto.ClientSecret)
}

func TestConfirmPayment_CouponComesFromIntentNotClient(t *testing.T) {
	fx := newPaymentFixture(t)

	intent, err := fx.service.CreatePaymentIntent(context.Background(), "alice@example.com", CreatePaymentIntentRequest{
		BookingID:  fx.booking.ID(),
		CouponCode: "SAVE10",
	})
	require.NoError(t, err)

	// The confirm request carries only the booking and the transaction:
	// the coupon is recovered from the intent's metadata, so a client
	// that never repeats the code still reconciles cleanly.
	record, err := fx.service.ConfirmPayment(context.Background(), "alice@example.com", ConfirmPaymentRequest{
		BookingID:     fx.booking.ID(),
		TransactionID: intent.PaymentIntentID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3600), record.AmountCents)
	assert.Equal(t, int64(400), record.DiscountCents)
	require.NotNil(t, record.CouponCode)
	assert.Equal(t, "SAVE10", *record.CouponCode)
	assert.Equal(t, 1, fx.couponRepo.consumed[fx.coupon.ID()])

	stored, err := fx.bookingRepo.FindByID(context.Background(), fx.booking.ID())
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, stored.Status())
}

func TestConfirmPayment_WithoutCoupon(t *testing.T) {
	fx := newPaymentFixture(t)

	intent, err := fx.service.CreatePaymentIntent(context.Background(), "alice@example.com", CreatePaymentIntentRequest{
		BookingID: fx.booking.ID(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(4000), intent.PayableCents)

	record, err := fx.service.ConfirmPayment(context.Background(), "alice@example.com", ConfirmPaymentRequest{
		BookingID:     fx.booking.ID(),
		TransactionID: intent.PaymentIntentID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), record.AmountCents)
	assert.Nil(t, record.CouponCode)
	assert.Empty(t, fx.couponRepo.consumed)
}

func TestCreatePaymentIntent_RequiresApprovedBooking(t *testing.T) {
	fx := newPaymentFixture(t)

	now := time.Now().UTC()
	pending := booking.Reconstitute(
		uuid.New(), uuid.New(),
		"Court 1", "badminton", "alice@example.com",
		now.AddDate(0, 0, 1), now,
		[]court.Slot{{StartTime: "18:00", EndTime: "19:00", Available: true}},
		2000,
		booking.StatusPending,
		1,
		now, now,
	)
	require.NoError(t, fx.bookingRepo.Save(context.Background(), pending))

	_, err := fx.service.CreatePaymentIntent(context.Background(), "alice@example.com", CreatePaymentIntentRequest{
		BookingID: pending.ID(),
	})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidState(err))
}

func TestCreatePaymentIntent_RejectsForeignBooking(t *testing.T) {
	fx := newPaymentFixture(t)

	_, err := fx.service.CreatePaymentIntent(context.Background(), "mallory@example.com", CreatePaymentIntentRequest{
		BookingID: fx.booking.ID(),
	})
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestCreatePaymentIntent_RejectsExpiredCoupon(t *testing.T) {
	fx := newPaymentFixture(t)

	expired := coupon.Reconstruct(
		uuid.New(), "OLD10", 10,
		time.Now().UTC().AddDate(0, 0, -10),
		5, 0, true,
		time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, fx.couponRepo.Save(context.Background(), expired))

	_, err := fx.service.CreatePaymentIntent(context.Background(), "alice@example.com", CreatePaymentIntentRequest{
		BookingID:  fx.booking.ID(),
		CouponCode: "OLD10",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
