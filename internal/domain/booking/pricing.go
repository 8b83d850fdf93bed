package booking

import "github.com/courthub/service-booking/internal/domain/coupon"

// Quote is the priced breakdown of a booking at a moment in time. It is
// recomputed on every call; nothing here is cached across selection changes.
type Quote struct {
	TotalCents    int64
	DiscountCents int64
	PayableCents  int64
}

// TotalCostCents derives the raw cost: slot count times the court's price.
func TotalCostCents(slotCount int, priceCents int64) int64 {
	return int64(slotCount) * priceCents
}

// QuoteFor applies an optional coupon to a total. The discount is
// floor(total × percentage / 100) in whole cents; a nil coupon yields a
// zero discount. Invariant: 0 <= discount <= total and payable == total − discount.
func QuoteFor(totalCents int64, cpn *coupon.Coupon) Quote {
	q := Quote{TotalCents: totalCents, PayableCents: totalCents}
	if cpn == nil {
		return q
	}
	q.DiscountCents = cpn.DiscountFor(totalCents)
	q.PayableCents = totalCents - q.DiscountCents
	return q
}
