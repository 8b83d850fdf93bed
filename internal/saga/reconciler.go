package saga

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/domain/booking"
	"github.com/courthub/service-booking/internal/domain/coupon"
	"github.com/courthub/service-booking/internal/domain/court"
	"github.com/courthub/service-booking/internal/domain/payment"
	"github.com/courthub/service-booking/internal/events"
	"github.com/courthub/service-booking/pkg/domain"
	"github.com/courthub/service-booking/pkg/kafka"
)

const eventSource = "service-booking"

// Charge is the gateway's confirmation of a settled card payment.
type Charge struct {
	TransactionID string
	AmountCents   int64
	Currency      string
}

// Reconciler records a confirmed charge against the system of record.
// The gateway transaction ID is the idempotency key: replaying the same
// confirmation returns the already-persisted record and changes nothing,
// in particular it never consumes a second coupon use.
type Reconciler struct {
	bookingRepo booking.BookingRepository
	courtRepo   court.CourtRepository
	couponRepo  coupon.CouponRepository
	paymentRepo payment.PaymentRepository
	producer    *kafka.Producer
	logger      *zap.Logger
}

// NewReconciler creates a payment reconciler.
func NewReconciler(
	bookingRepo booking.BookingRepository,
	courtRepo court.CourtRepository,
	couponRepo coupon.CouponRepository,
	paymentRepo payment.PaymentRepository,
	producer *kafka.Producer,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		bookingRepo: bookingRepo,
		courtRepo:   courtRepo,
		couponRepo:  couponRepo,
		paymentRepo: paymentRepo,
		producer:    producer,
		logger:      logger,
	}
}

// Reconcile verifies the charge and persists its effects: payment record,
// coupon use, booking confirmation and slot availability, all inside one
// compensating saga. A failure after the gateway has taken money is
// returned as a ReconciliationError that must be escalated, never dropped.
func (r *Reconciler) Reconcile(ctx context.Context, b *booking.Booking, charge Charge, cpn *coupon.Coupon) (*payment.PaymentRecord, error) {
	// Idempotency check before anything else.
	existing, err := r.paymentRepo.FindByTransactionID(ctx, charge.TransactionID)
	if err == nil && existing != nil {
		r.logger.Info("charge already reconciled, skipping",
			zap.String("transaction_id", charge.TransactionID),
			zap.String("booking_id", existing.BookingID().String()),
		)
		return existing, nil
	}
	if err != nil && !domain.IsNotFound(err) {
		return nil, &payment.ReconciliationError{
			Kind:          payment.KindRecordedNotPersisted,
			TransactionID: charge.TransactionID,
			Err:           err,
		}
	}

	// The amount the gateway collected must equal the payable we quoted.
	quote := booking.QuoteFor(b.TotalCostCents(), cpn)
	if charge.AmountCents != quote.PayableCents {
		return nil, &payment.AmountMismatchError{
			ExpectedCents: quote.PayableCents,
			ChargedCents:  charge.AmountCents,
			TransactionID: charge.TransactionID,
		}
	}

	var couponCode *string
	if cpn != nil {
		code := cpn.Code()
		couponCode = &code
	}

	record, err := payment.NewPaymentRecord(
		b.ID(), b.UserEmail(), charge.AmountCents,
		couponCode, quote.DiscountCents,
		charge.TransactionID, charge.Currency,
	)
	if err != nil {
		return nil, &payment.ReconciliationError{
			Kind:          payment.KindRecordedNotPersisted,
			TransactionID: charge.TransactionID,
			Err:           err,
		}
	}

	s := New("payment-reconciliation", r.logger)

	s.AddStep(Step{
		Name: "save_payment_record",
		Execute: func(ctx context.Context) error {
			return r.paymentRepo.Save(ctx, record)
		},
		Compensate: func(ctx context.Context) error {
			return r.paymentRepo.Delete(ctx, record.ID())
		},
	})

	if cpn != nil {
		couponID := cpn.ID()
		s.AddStep(Step{
			Name: "consume_coupon_use",
			Execute: func(ctx context.Context) error {
				return r.couponRepo.ConsumeUse(ctx, couponID)
			},
			// A consumed use stays consumed; the payment record is the
			// compensation anchor, not the counter.
		})
	}

	s.AddStep(Step{
		Name: "confirm_booking",
		Execute: func(ctx context.Context) error {
			if err := b.Confirm(); err != nil {
				return err
			}
			b.IncrementVersion()
			return r.bookingRepo.Update(ctx, b)
		},
	})

	s.AddStep(Step{
		Name: "mark_slots_unavailable",
		Execute: func(ctx context.Context) error {
			c, err := r.courtRepo.FindByID(ctx, b.CourtID())
			if err != nil {
				return err
			}
			if err := c.SetSlotAvailability(b.Slots(), false); err != nil {
				return err
			}
			return r.courtRepo.Update(ctx, c)
		},
	})

	if err := s.Execute(ctx); err != nil {
		recErr := &payment.ReconciliationError{
			Kind:          payment.KindRecordedNotPersisted,
			TransactionID: charge.TransactionID,
			Err:           err,
		}
		r.logger.Error("charge confirmed by gateway but not persisted, manual reconciliation required",
			zap.String("transaction_id", charge.TransactionID),
			zap.String("booking_id", b.ID().String()),
			zap.Int64("amount_cents", charge.AmountCents),
			zap.Error(err),
		)
		return nil, recErr
	}

	r.publishConfirmed(ctx, record)

	return record, nil
}

// publishConfirmed emits the confirmation events. The record is already
// the source of truth at this point, so publish failures only log.
func (r *Reconciler) publishConfirmed(ctx context.Context, record *payment.PaymentRecord) {
	if r.producer == nil {
		return
	}
	evt := events.PaymentConfirmedEvent{
		PaymentID:     record.ID(),
		BookingID:     record.BookingID(),
		UserEmail:     record.UserEmail(),
		AmountCents:   record.AmountCents(),
		DiscountCents: record.DiscountCents(),
		CouponCode:    record.CouponCode(),
		TransactionID: record.TransactionID(),
		OccurredAt:    time.Now().UTC(),
	}

	ce, err := kafka.NewCloudEvent(eventSource, events.PaymentConfirmed, evt)
	if err != nil {
		r.logger.Warn("failed to build payment confirmed event", zap.Error(err))
		return
	}
	if err := r.producer.PublishEvent(ctx, events.TopicPaymentEvents, ce); err != nil {
		r.logger.Warn("failed to publish payment confirmed event",
			zap.String("transaction_id", record.TransactionID()),
			zap.Error(err),
		)
	}
}
