package coupon

import "time"

// Status is the validation state of a coupon at a moment in time.
type Status string

const (
	StatusValid     Status = "valid"
	StatusExpired   Status = "expired"
	StatusExhausted Status = "exhausted"
	StatusInactive  Status = "inactive"
	StatusNotFound  Status = "not_found"
)

// CouponError reports why a coupon cannot be applied.
type CouponError struct {
	Kind Status
	Code string
}

func (e *CouponError) Error() string {
	switch e.Kind {
	case StatusNotFound:
		return "invalid coupon code"
	case StatusExpired:
		return "coupon expired"
	case StatusExhausted:
		return "coupon usage limit reached"
	case StatusInactive:
		return "coupon is not active"
	default:
		return "coupon cannot be applied"
	}
}

// ValidationResult is the outcome of validating a code against the table.
// Coupon is nil unless the state carries one (everything except NotFound).
type ValidationResult struct {
	Status Status
	Coupon *Coupon
}

// Validate evaluates a looked-up coupon for use today. A nil coupon means
// the code matched nothing. Only StatusValid permits a discount.
func Validate(c *Coupon, today time.Time) ValidationResult {
	if c == nil {
		return ValidationResult{Status: StatusNotFound}
	}
	return ValidationResult{Status: c.Status(today), Coupon: c}
}

// Err converts a non-valid result into the matching CouponError.
func (r ValidationResult) Err() error {
	if r.Status == StatusValid {
		return nil
	}
	code := ""
	if r.Coupon != nil {
		code = r.Coupon.Code()
	}
	return &CouponError{Kind: r.Status, Code: code}
}
