package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/adapter"
	"github.com/courthub/service-booking/internal/domain/booking"
	"github.com/courthub/service-booking/internal/domain/coupon"
	"github.com/courthub/service-booking/internal/domain/payment"
	"github.com/courthub/service-booking/internal/events"
	"github.com/courthub/service-booking/internal/saga"
	"github.com/courthub/service-booking/pkg/domain"
	"github.com/courthub/service-booking/pkg/kafka"
)

// CreatePaymentIntentRequest is the DTO for starting a card payment.
type CreatePaymentIntentRequest struct {
	BookingID  uuid.UUID `json:"booking_id" binding:"required"`
	CouponCode string    `json:"coupon_code"`
}

// PaymentIntentDTO carries the client secret and the priced breakdown the
// intent was created for. The gateway is always asked to collect the
// payable amount, never the undiscounted total.
type PaymentIntentDTO struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	TotalCents      int64  `json:"total_cents"`
	DiscountCents   int64  `json:"discount_cents"`
	PayableCents    int64  `json:"payable_cents"`
	Currency        string `json:"currency"`
}

// ConfirmPaymentRequest is the DTO for reconciling a confirmed charge.
// The coupon is not part of the request: it was bound to the intent at
// creation time and is read back from the gateway's metadata.
type ConfirmPaymentRequest struct {
	BookingID     uuid.UUID `json:"booking_id" binding:"required"`
	TransactionID string    `json:"transaction_id" binding:"required"`
}

// PaymentRecordDTO is the API response DTO for payment history data.
type PaymentRecordDTO struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"booking_id"`
	UserEmail     string    `json:"user_email"`
	AmountCents   int64     `json:"amount_cents"`
	CouponCode    *string   `json:"coupon_code,omitempty"`
	DiscountCents int64     `json:"discount_cents"`
	TransactionID string    `json:"transaction_id"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentStatsDTO holds revenue statistics for the admin dashboard.
type PaymentStatsDTO struct {
	TotalRevenueCents int64 `json:"total_revenue_cents"`
	TotalPayments     int64 `json:"total_payments"`
}

// PaymentService is the application service that orchestrates the payment
// flow: intent creation against the gateway and reconciliation of
// confirmed charges into the system of record.
type PaymentService struct {
	bookingRepo booking.BookingRepository
	couponRepo  coupon.CouponRepository
	paymentRepo payment.PaymentRepository
	gateway     adapter.PaymentGateway
	reconciler  *saga.Reconciler
	producer    *kafka.Producer
	currency    string
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	bookingRepo booking.BookingRepository,
	couponRepo coupon.CouponRepository,
	paymentRepo payment.PaymentRepository,
	gateway adapter.PaymentGateway,
	reconciler *saga.Reconciler,
	producer *kafka.Producer,
	currency string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		bookingRepo: bookingRepo,
		couponRepo:  couponRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		reconciler:  reconciler,
		producer:    producer,
		currency:    currency,
		logger:      logger,
	}
}

// CreatePaymentIntent quotes an approved booking, optionally applying a
// coupon, and asks the gateway for an intent over the payable amount.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, userEmail string, req CreatePaymentIntentRequest) (*PaymentIntentDTO, error) {
	b, err := s.bookingRepo.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserEmail() != userEmail {
		return nil, &domain.DomainError{Err: domain.ErrUnauthorized, Message: "booking belongs to another user"}
	}
	if b.Status() != booking.StatusApproved {
		return nil, domain.NewInvalidStateError(string(b.Status()), "payment")
	}

	cpn, err := s.lookupValidCoupon(ctx, req.CouponCode)
	if err != nil {
		return nil, err
	}

	quote := booking.QuoteFor(b.TotalCostCents(), cpn)

	// The coupon travels on the intent itself so the confirm path never
	// depends on the client repeating it.
	metadata := map[string]string{"booking_id": b.ID().String()}
	if cpn != nil {
		metadata["coupon_code"] = cpn.Code()
	}

	intentID, clientSecret, err := s.gateway.CreatePaymentIntent(ctx, quote.PayableCents, s.currency, userEmail, metadata)
	if err != nil {
		s.logger.Error("failed to create payment intent",
			zap.String("booking_id", b.ID().String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("payment intent created for booking",
		zap.String("booking_id", b.ID().String()),
		zap.String("payment_intent_id", intentID),
		zap.Int64("payable_cents", quote.PayableCents),
		zap.Int64("discount_cents", quote.DiscountCents),
	)

	return &PaymentIntentDTO{
		PaymentIntentID: intentID,
		ClientSecret:    clientSecret,
		TotalCents:      quote.TotalCents,
		DiscountCents:   quote.DiscountCents,
		PayableCents:    quote.PayableCents,
		Currency:        s.currency,
	}, nil
}

// ConfirmPayment verifies a charge with the gateway and reconciles it.
// Replaying a confirmation is safe: the transaction ID is the idempotency
// key and the already-persisted record is returned unchanged.
func (s *PaymentService) ConfirmPayment(ctx context.Context, userEmail string, req ConfirmPaymentRequest) (*PaymentRecordDTO, error) {
	b, err := s.bookingRepo.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserEmail() != userEmail {
		return nil, &domain.DomainError{Err: domain.ErrUnauthorized, Message: "booking belongs to another user"}
	}

	details, err := s.gateway.RetrievePaymentIntent(ctx, req.TransactionID)
	if err != nil {
		return nil, &payment.ReconciliationError{
			Kind:          payment.KindPaymentFailed,
			TransactionID: req.TransactionID,
			Err:           err,
		}
	}
	if details.Status != "succeeded" {
		return nil, &payment.ReconciliationError{
			Kind:          payment.KindPaymentFailed,
			TransactionID: req.TransactionID,
			Err:           domain.NewValidationError("charge is not in succeeded state: " + details.Status),
		}
	}

	cpn, err := s.lookupCoupon(ctx, details.Metadata["coupon_code"])
	if err != nil {
		return nil, err
	}

	record, err := s.reconciler.Reconcile(ctx, b, saga.Charge{
		TransactionID: details.TransactionID,
		AmountCents:   details.AmountCents,
		Currency:      details.Currency,
	}, cpn)
	if err != nil {
		return nil, err
	}

	dto := toPaymentRecordDTO(record)
	return &dto, nil
}

// HandleChargeSucceeded reconciles an asynchronous gateway confirmation.
func (s *PaymentService) HandleChargeSucceeded(ctx context.Context, evt events.ChargeSucceededEvent) error {
	s.logger.Info("handling charge succeeded event",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("transaction_id", evt.TransactionID),
	)

	b, err := s.bookingRepo.FindByID(ctx, evt.BookingID)
	if err != nil {
		return err
	}

	cpn, err := s.lookupCoupon(ctx, evt.CouponCode)
	if err != nil {
		return err
	}

	_, err = s.reconciler.Reconcile(ctx, b, saga.Charge{
		TransactionID: evt.TransactionID,
		AmountCents:   evt.AmountChargedCents,
		Currency:      evt.Currency,
	}, cpn)
	return err
}

// HandleChargeFailed records a failed charge. The booking stays as it was;
// the user may retry with a fresh intent.
func (s *PaymentService) HandleChargeFailed(ctx context.Context, evt events.ChargeFailedEvent) error {
	s.logger.Warn("charge failed",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("transaction_id", evt.TransactionID),
		zap.String("reason", evt.Reason),
	)

	if s.producer == nil {
		return nil
	}
	out := events.PaymentFailedEvent{
		BookingID:     evt.BookingID,
		TransactionID: evt.TransactionID,
		Reason:        evt.Reason,
		OccurredAt:    time.Now().UTC(),
	}
	ce, err := kafka.NewCloudEvent(eventSource, events.PaymentFailed, out)
	if err != nil {
		return err
	}
	return s.producer.PublishEvent(ctx, events.TopicPaymentEvents, ce)
}

// GetPaymentHistory returns a user's payment history, newest first.
func (s *PaymentService) GetPaymentHistory(ctx context.Context, userEmail string) ([]PaymentRecordDTO, error) {
	records, err := s.paymentRepo.ListByUserEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	dtos := make([]PaymentRecordDTO, len(records))
	for i, r := range records {
		dtos[i] = toPaymentRecordDTO(r)
	}
	return dtos, nil
}

// ListAllPayments returns a paginated list of all payments (admin).
func (s *PaymentService) ListAllPayments(ctx context.Context, page, limit int) ([]PaymentRecordDTO, int64, error) {
	records, total, err := s.paymentRepo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]PaymentRecordDTO, len(records))
	for i, r := range records {
		dtos[i] = toPaymentRecordDTO(r)
	}
	return dtos, total, nil
}

// GetPaymentStats returns aggregate revenue statistics (admin).
func (s *PaymentService) GetPaymentStats(ctx context.Context) (*PaymentStatsDTO, error) {
	totalCents, count, err := s.paymentRepo.GetRevenueStats(ctx)
	if err != nil {
		return nil, err
	}
	return &PaymentStatsDTO{TotalRevenueCents: totalCents, TotalPayments: count}, nil
}

// lookupValidCoupon resolves a code and requires it to be redeemable today.
// An empty code means no coupon.
func (s *PaymentService) lookupValidCoupon(ctx context.Context, code string) (*coupon.Coupon, error) {
	if code == "" {
		return nil, nil
	}
	cpn, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	result := coupon.Validate(cpn, time.Now().UTC())
	if cErr := result.Err(); cErr != nil {
		return nil, domain.NewValidationError(cErr.Error())
	}
	return result.Coupon, nil
}

// lookupCoupon resolves a code without revalidating it. At reconciliation
// time the charge already reflects the discount quoted at intent creation;
// the usage cap is enforced by ConsumeUse inside the saga.
func (s *PaymentService) lookupCoupon(ctx context.Context, code string) (*coupon.Coupon, error) {
	if code == "" {
		return nil, nil
	}
	cpn, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return cpn, nil
}

func toPaymentRecordDTO(p *payment.PaymentRecord) PaymentRecordDTO {
	return PaymentRecordDTO{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		UserEmail:     p.UserEmail(),
		AmountCents:   p.AmountCents(),
		CouponCode:    p.CouponCode(),
		DiscountCents: p.DiscountCents(),
		TransactionID: p.TransactionID(),
		Currency:      p.Currency(),
		CreatedAt:     p.CreatedAt(),
	}
}
