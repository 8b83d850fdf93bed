package coupon

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courthub/service-booking/pkg/domain"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{4,20}$`)

// Coupon is the aggregate root for percentage-discount codes.
type Coupon struct {
	id                 uuid.UUID
	code               string
	discountPercentage int
	expiryDate         time.Time // calendar date, UTC midnight
	maxUses            int
	usesConsumed       int
	active             bool
	createdAt          time.Time
	updatedAt          time.Time
}

// NewCoupon creates a coupon. The code is normalized to uppercase and must
// be 4-20 alphanumeric characters.
func NewCoupon(code string, discountPercentage int, expiryDate time.Time, maxUses int) (*Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !codePattern.MatchString(code) {
		return nil, domain.NewValidationError("coupon code must be 4-20 uppercase alphanumeric characters")
	}
	if discountPercentage < 1 || discountPercentage > 100 {
		return nil, domain.NewValidationError("discount percentage must be between 1 and 100")
	}
	if maxUses < 1 || maxUses > 1000 {
		return nil, domain.NewValidationError("max uses must be between 1 and 1000")
	}
	if expiryDate.IsZero() {
		return nil, domain.NewValidationError("expiry date is required")
	}

	now := time.Now().UTC()
	return &Coupon{
		id:                 uuid.New(),
		code:               code,
		discountPercentage: discountPercentage,
		expiryDate:         truncateToDay(expiryDate),
		maxUses:            maxUses,
		usesConsumed:       0,
		active:             true,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// Reconstruct rebuilds a Coupon from persistence.
func Reconstruct(id uuid.UUID, code string, discountPercentage int, expiryDate time.Time, maxUses, usesConsumed int, active bool, createdAt, updatedAt time.Time) *Coupon {
	return &Coupon{
		id: id, code: code, discountPercentage: discountPercentage,
		expiryDate: expiryDate, maxUses: maxUses, usesConsumed: usesConsumed,
		active: active, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// NormalizeCode uppercases and trims a user-entered code for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Status evaluates the coupon against the given day. Exactly one state
// holds for any coupon: inactive beats expired beats exhausted.
// The expiry day itself is still valid; only expiryDate < today expires.
func (c *Coupon) Status(today time.Time) Status {
	switch {
	case !c.active:
		return StatusInactive
	case c.expiryDate.Before(truncateToDay(today)):
		return StatusExpired
	case c.usesConsumed >= c.maxUses:
		return StatusExhausted
	default:
		return StatusValid
	}
}

// DiscountFor returns the discount in cents for the given total, rounded
// down to the whole cent. The result never exceeds the total.
func (c *Coupon) DiscountFor(totalCents int64) int64 {
	discount := totalCents * int64(c.discountPercentage) / 100
	if discount > totalCents {
		discount = totalCents
	}
	return discount
}

// Update replaces the coupon's editable attributes.
func (c *Coupon) Update(discountPercentage int, expiryDate time.Time, maxUses int, active bool) error {
	if discountPercentage < 1 || discountPercentage > 100 {
		return domain.NewValidationError("discount percentage must be between 1 and 100")
	}
	if maxUses < 1 || maxUses > 1000 {
		return domain.NewValidationError("max uses must be between 1 and 1000")
	}
	if maxUses < c.usesConsumed {
		return domain.NewValidationError(fmt.Sprintf("max uses cannot be lowered below the %d uses already consumed", c.usesConsumed))
	}

	c.discountPercentage = discountPercentage
	c.expiryDate = truncateToDay(expiryDate)
	c.maxUses = maxUses
	c.active = active
	c.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate turns the coupon off without deleting its usage history.
func (c *Coupon) Deactivate() {
	c.active = false
	c.updatedAt = time.Now().UTC()
}

// Getters.
func (c *Coupon) ID() uuid.UUID           { return c.id }
func (c *Coupon) Code() string            { return c.code }
func (c *Coupon) DiscountPercentage() int { return c.discountPercentage }
func (c *Coupon) ExpiryDate() time.Time   { return c.expiryDate }
func (c *Coupon) MaxUses() int            { return c.maxUses }
func (c *Coupon) UsesConsumed() int       { return c.usesConsumed }
func (c *Coupon) Active() bool            { return c.active }
func (c *Coupon) CreatedAt() time.Time    { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time    { return c.updatedAt }
