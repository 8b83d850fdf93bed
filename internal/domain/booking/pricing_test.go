package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courthub/service-booking/internal/domain/coupon"
)

func TestTotalCostCents(t *testing.T) {
	assert.Equal(t, int64(4000), TotalCostCents(2, 2000))
	assert.Equal(t, int64(0), TotalCostCents(0, 2000))
	assert.Equal(t, int64(2000), TotalCostCents(1, 2000))
}

func TestQuoteFor_NoCoupon(t *testing.T) {
	q := QuoteFor(4000, nil)
	assert.Equal(t, int64(4000), q.TotalCents)
	assert.Equal(t, int64(0), q.DiscountCents)
	assert.Equal(t, int64(4000), q.PayableCents)
}

func TestQuoteFor_TenPercentOff(t *testing.T) {
	// Two $20 slots with SAVE10: 4000 total, 400 off, 3600 payable.
	cpn, err := coupon.NewCoupon("SAVE10", 10, time.Now().UTC().AddDate(0, 1, 0), 5)
	require.NoError(t, err)

	q := QuoteFor(4000, cpn)
	assert.Equal(t, int64(4000), q.TotalCents)
	assert.Equal(t, int64(400), q.DiscountCents)
	assert.Equal(t, int64(3600), q.PayableCents)
}

func TestQuoteFor_RoundsDownToWholeCents(t *testing.T) {
	// 15% of 999 is 149.85; the discount floors to 149.
	cpn, err := coupon.NewCoupon("SAVE15", 15, time.Now().UTC().AddDate(0, 1, 0), 5)
	require.NoError(t, err)

	q := QuoteFor(999, cpn)
	assert.Equal(t, int64(149), q.DiscountCents)
	assert.Equal(t, int64(850), q.PayableCents)
}

func TestQuoteFor_FullDiscountNeverExceedsTotal(t *testing.T) {
	cpn, err := coupon.NewCoupon("FREE100", 100, time.Now().UTC().AddDate(0, 1, 0), 5)
	require.NoError(t, err)

	q := QuoteFor(4000, cpn)
	assert.Equal(t, int64(4000), q.DiscountCents)
	assert.Equal(t, int64(0), q.PayableCents)
}
