package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/courthub/service-booking/internal/domain/booking"
	"github.com/courthub/service-booking/internal/domain/coupon"
	"github.com/courthub/service-booking/internal/domain/court"
	"github.com/courthub/service-booking/internal/domain/member"
	"github.com/courthub/service-booking/internal/domain/payment"
	"github.com/courthub/service-booking/pkg/domain"
)

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

func (f *fakeCourtRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.courts, id)
	return nil
}

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

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*booking.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (f *fakeBookingRepo) Save(ctx context.Context, b *booking.Booking) error {
	f.bookings[b.ID()] = b
	return nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *booking.Booking) error {
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
	var out []*booking.Booking
	for _, b := range f.bookings {
		if b.UserEmail() == email && (status == "" || b.Status() == status) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByStatus(ctx context.Context, status booking.Status, page, limit int) ([]*booking.Booking, int64, error) {
	var out []*booking.Booking
	for _, b := range f.bookings {
		if status == "" || b.Status() == status {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) HasApprovedOrConfirmed(ctx context.Context, email string) (bool, error) {
	for _, b := range f.bookings {
		if b.UserEmail() == email && (b.Status() == booking.StatusApproved || b.Status() == booking.StatusConfirmed) {
			return true, nil
		}
	}
	return false, nil
}

type fakeMemberRepo struct {
	members map[string]*member.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*member.Member)}
}

func (f *fakeMemberRepo) Save(ctx context.Context, m *member.Member) error {
	if _, ok := f.members[m.UserEmail()]; ok {
		return domain.NewConflictError("user is already a member")
	}
	f.members[m.UserEmail()] = m
	return nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for email, m := range f.members {
		if m.ID() == id {
			delete(f.members, email)
			return nil
		}
	}
	return domain.NewNotFoundError("member", id.String())
}

func (f *fakeMemberRepo) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	m, ok := f.members[email]
	if !ok {
		return nil, domain.NewNotFoundError("member", email)
	}
	return m, nil
}

func (f *fakeMemberRepo) List(ctx context.Context, search string) ([]*member.Member, error) {
	return nil, nil
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

type fakePaymentRepo struct {
	records map[string]*payment.PaymentRecord
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{records: make(map[string]*payment.PaymentRecord)}
}

func (f *fakePaymentRepo) Save(ctx context.Context, p *payment.PaymentRecord) error {
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
