package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/domain/booking"
	"github.com/courthub/service-booking/internal/domain/coupon"
	"github.com/courthub/service-booking/internal/domain/court"
	"github.com/courthub/service-booking/internal/domain/payment"
	"github.com/courthub/service-booking/pkg/domain"
)

type fakePaymentRepo struct {
	records map[string]*payment.PaymentRecord
	saveErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{records: make(map[string]*payment.PaymentRecord)}
}

func (f *fakePaymentRepo) Save(ctx context.Context, p *payment.PaymentRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.records[p.TransactionID()]; ok {
		return domain.NewConflictError("payment for this transaction already recorded")
	}
	f.records[p.TransactionID()] = p
	return nil
}

func (f *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for txn, p := range f.records {
		if p.ID() == id {
			delete(f.records, txn)
			return nil
		}
	}
	return nil
}

func (f *fakePaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*payment.PaymentRecord, error) {
	p, ok := f.records[transactionID]
	if !ok {
		return nil, domain.NewNotFoundError("payment", transactionID)
	}
	return p, nil
}

func (f *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*payment.PaymentRecord, error) {
	for _, p := range f.records {
		if p.BookingID() == bookingID {
			return p, nil
		}
	}
	return nil, domain.NewNotFoundError("payment", bookingID.String())
}

func (f *fakePaymentRepo) ListByUserEmail(ctx context.Context, email string) ([]*payment.PaymentRecord, error) {
	return nil, nil
}

func (f *fakePaymentRepo) ListAll(ctx context.Context, page, limit int) ([]*payment.PaymentRecord, int64, error) {
	return nil, 0, nil
}

func (f *fakePaymentRepo) GetRevenueStats(ctx context.Context) (int64, int64, error) {
	return 0, 0, nil
}

type fakeBookingRepo struct {
	bookings  map[uuid.UUID]*booking.Booking
	updateErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (f *fakeBookingRepo) Save(ctx context.Context, b *booking.Booking) error {
	f.bookings[b.ID()] = b
	return nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *booking.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.bookings[b.ID()] = b
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return b, nil
}

func (f *fakeBookingRepo) ListByUserEmail(ctx context.Context, email string, status booking.Status) ([]*booking.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListByStatus(ctx context.Context, status booking.Status, page, limit int) ([]*booking.Booking, int64, error) {
	return nil, 0, nil
}

func (f *fakeBookingRepo) HasApprovedOrConfirmed(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type fakeCourtRepo struct {
	courts map[uuid.UUID]*court.Court
}

func newFakeCourtRepo() *fakeCourtRepo {
	return &fakeCourtRepo{courts: make(map[uuid.UUID]*court.Court)}
}

func (f *fakeCourtRepo) Save(ctx context.Context, c *court.Court) error {
	f.courts[c.ID()] = c
	return nil
}

func (f *fakeCourtRepo) Update(ctx context.Context, c *court.Court) error {
	f.courts[c.ID()] = c
	return nil
}

func (f *fakeCourtRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeCourtRepo) FindByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, domain.NewNotFoundError("court", id.String())
	}
	return c, nil
}

func (f *fakeCourtRepo) ListAll(ctx context.Context, page, limit int) ([]*court.Court, int64, error) {
	return nil, 0, nil
}

type fakeCouponRepo struct {
	coupons  map[uuid.UUID]*coupon.Coupon
	consumed map[uuid.UUID]int
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[uuid.UUID]*coupon.Coupon), consumed: make(map[uuid.UUID]int)}
}

func (f *fakeCouponRepo) Save(ctx context.Context, c *coupon.Coupon) error {
	f.coupons[c.ID()] = c
	return nil
}

func (f *fakeCouponRepo) Update(ctx context.Context, c *coupon.Coupon) error { return nil }
func (f *fakeCouponRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

func (f *fakeCouponRepo) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	for _, c := range f.coupons {
		if c.Code() == code {
			return c, nil
		}
	}
	return nil, domain.NewNotFoundError("coupon", code)
}

func (f *fakeCouponRepo) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	c, ok := f.coupons[id]
	if !ok {
		return nil, domain.NewNotFoundError("coupon", id.String())
	}
	return c, nil
}

func (f *fakeCouponRepo) List(ctx context.Context, search string) ([]*coupon.Coupon, error) {
	return nil, nil
}

func (f *fakeCouponRepo) FindActive(ctx context.Context, today time.Time) ([]*coupon.Coupon, error) {
	return nil, nil
}

func (f *fakeCouponRepo) ConsumeUse(ctx context.Context, id uuid.UUID) error {
	c, ok := f.coupons[id]
	if !ok {
		return domain.NewNotFoundError("coupon", id.String())
	}
	if f.consumed[id]+c.UsesConsumed() >= c.MaxUses() {
		return domain.NewConflictError("coupon has no remaining uses")
	}
	f.consumed[id]++
	return nil
}

type reconcilerFixture struct {
	reconciler  *Reconciler
	bookingRepo *fakeBookingRepo
	courtRepo   *fakeCourtRepo
	couponRepo  *fakeCouponRepo
	paymentRepo *fakePaymentRepo
	booking     *booking.Booking
	coupon      *coupon.Coupon
	court       *court.Court
}

func newReconcilerFixture(t *testing.T) *reconcilerFixture {
	t.Helper()

	c, err := court.NewCourt("Court 1", "badminton", 2000, court.PricePerHour, []court.Slot{
		{StartTime: "18:00", EndTime: "19:00", Available: true},
		{StartTime: "19:00", EndTime: "20:00", Available: true},
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	b := booking.Reconstitute(
		uuid.New(), c.ID(),
		"Court 1", "badminton", "alice@example.com",
		now.AddDate(0, 0, 1), now,
		[]court.Slot{
			{StartTime: "18:00", EndTime: "19:00", Available: true},
			{StartTime: "19:00", EndTime: "20:00", Available: true},
		},
		4000,
		booking.StatusApproved,
		2,
		now, now,
	)

	cpn, err := coupon.NewCoupon("SAVE10", 10, now.AddDate(0, 1, 0), 5)
	require.NoError(t, err)

	fx := &reconcilerFixture{
		bookingRepo: newFakeBookingRepo(),
		courtRepo:   newFakeCourtRepo(),
		couponRepo:  newFakeCouponRepo(),
		paymentRepo: newFakePaymentRepo(),
		booking:     b,
		coupon:      cpn,
		court:       c,
	}
	require.NoError(t, fx.bookingRepo.Save(context.Background(), b))
	require.NoError(t, fx.courtRepo.Save(context.Background(), c))
	require.NoError(t, fx.couponRepo.Save(context.Background(), cpn))

	fx.reconciler = NewReconciler(
		fx.bookingRepo, fx.courtRepo, fx.couponRepo, fx.paymentRepo,
		nil, zap.NewNop(),
	)
	return fx
}

func TestReconcile_Success(t *testing.T) {
	fx := newReconcilerFixture(t)
	ctx := context.Background()

	record, err := fx.reconciler.Reconcile(ctx, fx.booking, Charge{
		TransactionID: "pi_test_01",
		AmountCents:   3600,
		Currency:      "usd",
	}, fx.coupon)
	require.NoError(t, err)

	assert.Equal(t, int64(3600), record.AmountCents())
	assert.Equal(t, int64(400), record.DiscountCents())
	require.NotNil(t, record.CouponCode())
	assert.Equal(t, "SAVE10", *record.CouponCode())

	assert.Equal(t, booking.StatusConfirmed, fx.booking.Status())
	assert.Equal(t, 1, fx.couponRepo.consumed[fx.coupon.ID()])

	stored, err := fx.courtRepo.FindByID(ctx, fx.court.ID())
	require.NoError(t, err)
	assert.Empty(t, stored.AvailableSlots(), "booked slots must go unavailable")
}

func TestReconcile_WithoutCoupon(t *testing.T) {
	fx := newReconcilerFixture(t)

	record, err := fx.reconciler.Reconcile(context.Background(), fx.booking, Charge{
		TransactionID: "pi_test_02",
		AmountCents:   4000,
		Currency:      "usd",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(4000), record.AmountCents())
	assert.Equal(t, int64(0), record.DiscountCents())
	assert.Nil(t, record.CouponCode())
	assert.Empty(t, fx.couponRepo.consumed)
}

func TestReconcile_ReplayReturnsExistingRecord(t *testing.T) {
	fx := newReconcilerFixture(t)
	ctx := context.Background()
	charge := Charge{TransactionID: "pi_test_03", AmountCents: 3600, Currency: "usd"}

	first, err := fx.reconciler.Reconcile(ctx, fx.booking, charge, fx.coupon)
	require.NoError(t, err)

	second, err := fx.reconciler.Reconcile(ctx, fx.booking, charge, fx.coupon)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID())
	assert.Len(t, fx.paymentRepo.records, 1)
	assert.Equal(t, 1, fx.couponRepo.consumed[fx.coupon.ID()], "replay must not consume a second use")
}

func TestReconcile_AmountMismatchIsFatal(t *testing.T) {
	fx := newReconcilerFixture(t)

	_, err := fx.reconciler.Reconcile(context.Background(), fx.booking, Charge{
		TransactionID: "pi_test_04",
		AmountCents:   4000, // coupon quote says 3600
		Currency:      "usd",
	}, fx.coupon)

	var mismatch *payment.AmountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, int64(3600), mismatch.ExpectedCents)
	assert.Equal(t, int64(4000), mismatch.ChargedCents)

	assert.Empty(t, fx.paymentRepo.records, "nothing persisted on mismatch")
	assert.Equal(t, booking.StatusApproved, fx.booking.Status())
}

func TestReconcile_PersistenceFailureEscalates(t *testing.T) {
	fx := newReconcilerFixture(t)
	fx.bookingRepo.updateErr = errors.New("connection reset")

	_, err := fx.reconciler.Reconcile(context.Background(), fx.booking, Charge{
		TransactionID: "pi_test_05",
		AmountCents:   3600,
		Currency:      "usd",
	}, fx.coupon)

	var recErr *payment.ReconciliationError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, payment.KindRecordedNotPersisted, recErr.Kind)
	assert.Equal(t, "pi_test_05", recErr.TransactionID)

	// The saved payment record was compensated away.
	assert.Empty(t, fx.paymentRepo.records)
}
