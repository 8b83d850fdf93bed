package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/domain/booking"
	"github.com/courthub/service-booking/internal/domain/coupon"
	"github.com/courthub/service-booking/pkg/domain"
)

// CreateCouponRequest is the DTO for creating a coupon (admin).
type CreateCouponRequest struct {
	Code               string    `json:"code" binding:"required"`
	DiscountPercentage int       `json:"discount_percentage" binding:"required,min=1,max=100"`
	ExpiryDate         time.Time `json:"expiry_date" binding:"required"`
	MaxUses            int       `json:"max_uses" binding:"required,min=1,max=1000"`
}

// UpdateCouponRequest is the DTO for updating a coupon (admin).
type UpdateCouponRequest struct {
	DiscountPercentage int       `json:"discount_percentage" binding:"required,min=1,max=100"`
	ExpiryDate         time.Time `json:"expiry_date" binding:"required"`
	MaxUses            int       `json:"max_uses" binding:"required,min=1,max=1000"`
	Active             bool      `json:"active"`
}

// CouponDTO is the API response DTO for coupon data (admin).
type CouponDTO struct {
	ID                 uuid.UUID `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discount_percentage"`
	ExpiryDate         time.Time `json:"expiry_date"`
	MaxUses            int       `json:"max_uses"`
	UsesConsumed       int       `json:"uses_consumed"`
	RemainingUses      int       `json:"remaining_uses"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ValidateCouponRequest is the DTO for checking a code against a total.
type ValidateCouponRequest struct {
	Code       string `json:"code" binding:"required"`
	TotalCents int64  `json:"total_cents" binding:"required,gt=0"`
}

// CouponQuoteDTO reports the outcome of validating a coupon against a
// total. Discount and payable are zero/total unless the status is valid.
type CouponQuoteDTO struct {
	Status             string `json:"status"`
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage,omitempty"`
	TotalCents         int64  `json:"total_cents"`
	DiscountCents      int64  `json:"discount_cents"`
	PayableCents       int64  `json:"payable_cents"`
}

// CouponService is the application service for coupon use cases.
type CouponService struct {
	repo   coupon.CouponRepository
	logger *zap.Logger
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo coupon.CouponRepository, logger *zap.Logger) *CouponService {
	return &CouponService{repo: repo, logger: logger}
}

// CreateCoupon registers a new coupon code (admin).
func (s *CouponService) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*CouponDTO, error) {
	c, err := coupon.NewCoupon(req.Code, req.DiscountPercentage, req.ExpiryDate, req.MaxUses)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("coupon created",
		zap.String("coupon_id", c.ID().String()),
		zap.String("code", c.Code()),
	)
	dto := toCouponDTO(c)
	return &dto, nil
}

// UpdateCoupon replaces a coupon's editable attributes (admin).
func (s *CouponService) UpdateCoupon(ctx context.Context, id uuid.UUID, req UpdateCouponRequest) (*CouponDTO, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.DiscountPercentage, req.ExpiryDate, req.MaxUses, req.Active); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	dto := toCouponDTO(c)
	return &dto, nil
}

// DeleteCoupon removes a coupon (admin).
func (s *CouponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListCoupons returns coupons, optionally filtered by code substring (admin).
func (s *CouponService) ListCoupons(ctx context.Context, search string) ([]CouponDTO, error) {
	coupons, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	dtos := make([]CouponDTO, len(coupons))
	for i, c := range coupons {
		dtos[i] = toCouponDTO(c)
	}
	return dtos, nil
}

// OfferDTO is the public view of a currently redeemable coupon. It
// carries no usage counters.
type OfferDTO struct {
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discount_percentage"`
	ExpiryDate         time.Time `json:"expiry_date"`
}

// ListActiveOffers returns the coupons currently redeemable, for display
// as offers on the landing page.
func (s *CouponService) ListActiveOffers(ctx context.Context) ([]OfferDTO, error) {
	coupons, err := s.repo.FindActive(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	dtos := make([]OfferDTO, len(coupons))
	for i, c := range coupons {
		dtos[i] = OfferDTO{
			Code:               c.Code(),
			DiscountPercentage: c.DiscountPercentage(),
			ExpiryDate:         c.ExpiryDate(),
		}
	}
	return dtos, nil
}

// ValidateCoupon checks a user-entered code against a booking total and
// returns exactly one status. Validation never consumes a use; that
// happens only when a payment reconciles.
func (s *CouponService) ValidateCoupon(ctx context.Context, req ValidateCouponRequest) (*CouponQuoteDTO, error) {
	code := coupon.NormalizeCode(req.Code)

	c, err := s.repo.FindByCode(ctx, code)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}

	result := coupon.Validate(c, time.Now().UTC())
	dto := &CouponQuoteDTO{
		Status:       string(result.Status),
		Code:         code,
		TotalCents:   req.TotalCents,
		PayableCents: req.TotalCents,
	}
	if result.Status != coupon.StatusValid {
		return dto, nil
	}

	quote := booking.QuoteFor(req.TotalCents, result.Coupon)
	dto.DiscountPercentage = result.Coupon.DiscountPercentage()
	dto.DiscountCents = quote.DiscountCents
	dto.PayableCents = quote.PayableCents
	return dto, nil
}

func toCouponDTO(c *coupon.Coupon) CouponDTO {
	remaining := c.MaxUses() - c.UsesConsumed()
	if remaining < 0 {
		remaining = 0
	}
	return CouponDTO{
		ID:                 c.ID(),
		Code:               c.Code(),
		DiscountPercentage: c.DiscountPercentage(),
		ExpiryDate:         c.ExpiryDate(),
		MaxUses:            c.MaxUses(),
		UsesConsumed:       c.UsesConsumed(),
		RemainingUses:      remaining,
		Active:             c.Active(),
		CreatedAt:          c.CreatedAt(),
		UpdatedAt:          c.UpdatedAt(),
	}
}
