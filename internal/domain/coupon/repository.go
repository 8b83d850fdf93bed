package coupon

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CouponRepository defines persistence operations for coupons.
//
// ConsumeUse is the single authority for decrementing remaining uses: it
// must increment uses_consumed atomically, guarded by the usage cap, so
// concurrent redemptions can never push a coupon past max_uses.
type CouponRepository interface {
	Save(ctx context.Context, c *Coupon) error
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	List(ctx context.Context, search string) ([]*Coupon, error)
	FindActive(ctx context.Context, today time.Time) ([]*Coupon, error)
	ConsumeUse(ctx context.Context, id uuid.UUID) error
}
