package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	couponDomain "github.com/courthub/service-booking/internal/domain/coupon"
	"github.com/courthub/service-booking/pkg/domain"
)

// CouponModel is the GORM persistence model for the coupons table.
type CouponModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code               string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	DiscountPercentage int       `gorm:"not null"`
	ExpiryDate         time.Time `gorm:"type:date;not null"`
	MaxUses            int       `gorm:"not null"`
	UsesConsumed       int       `gorm:"not null;default:0"`
	Active             bool      `gorm:"not null;default:true"`
	CreatedAt          time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt          time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (CouponModel) TableName() string { return "coupons" }

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository.
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Save persists a new coupon. A duplicate code fails with a conflict.
func (r *GormCouponRepository) Save(ctx context.Context, c *couponDomain.Coupon) error {
	model := toCouponModel(c)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("coupon code already exists")
		}
		return err
	}
	return nil
}

// Update replaces a coupon's editable attributes. The usage counter is
// deliberately excluded; only ConsumeUse touches it.
func (r *GormCouponRepository) Update(ctx context.Context, c *couponDomain.Coupon) error {
	result := r.db.WithContext(ctx).
		Model(&CouponModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]interface{}{
			"discount_percentage": c.DiscountPercentage(),
			"expiry_date":         c.ExpiryDate(),
			"max_uses":            c.MaxUses(),
			"active":              c.Active(),
			"updated_at":          c.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("coupon", c.ID().String())
	}
	return nil
}

// Delete removes a coupon.
func (r *GormCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CouponModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("coupon", id.String())
	}
	return nil
}

// FindByCode retrieves a coupon by its normalized code.
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*couponDomain.Coupon, error) {
	var model CouponModel
	if err := r.db.WithContext(ctx).Where("code = ?", couponDomain.NormalizeCode(code)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("coupon", code)
		}
		return nil, err
	}
	return toCouponDomain(&model), nil
}

// FindByID retrieves a coupon by ID.
func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*couponDomain.Coupon, error) {
	var model CouponModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("coupon", id.String())
		}
		return nil, err
	}
	return toCouponDomain(&model), nil
}

// List retrieves coupons, optionally filtered by a code substring (admin).
func (r *GormCouponRepository) List(ctx context.Context, search string) ([]*couponDomain.Coupon, error) {
	q := r.db.WithContext(ctx)
	if search != "" {
		q = q.Where("code LIKE ?", "%"+couponDomain.NormalizeCode(search)+"%")
	}

	var models []CouponModel
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	coupons := make([]*couponDomain.Coupon, len(models))
	for i := range models {
		coupons[i] = toCouponDomain(&models[i])
	}
	return coupons, nil
}

// FindActive retrieves coupons that are redeemable on the given day.
func (r *GormCouponRepository) FindActive(ctx context.Context, today time.Time) ([]*couponDomain.Coupon, error) {
	var models []CouponModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND expiry_date >= ? AND uses_consumed < max_uses", true, today).
		Order("code ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	coupons := make([]*couponDomain.Coupon, len(models))
	for i := range models {
		coupons[i] = toCouponDomain(&models[i])
	}
	return coupons, nil
}

// ConsumeUse atomically claims one use of the coupon. The cap guard lives
// in the WHERE clause so concurrent redemptions race on the database row,
// not on stale in-memory counters; losing the race is a conflict.
func (r *GormCouponRepository) ConsumeUse(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&CouponModel{}).
		Where("id = ? AND active = ? AND uses_consumed < max_uses", id, true).
		Updates(map[string]interface{}{
			"uses_consumed": gorm.Expr("uses_consumed + 1"),
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("coupon has no remaining uses")
	}
	return nil
}

func toCouponModel(c *couponDomain.Coupon) CouponModel {
	return CouponModel{
		ID:                 c.ID(),
		Code:               c.Code(),
		DiscountPercentage: c.DiscountPercentage(),
		ExpiryDate:         c.ExpiryDate(),
		MaxUses:            c.MaxUses(),
		UsesConsumed:       c.UsesConsumed(),
		Active:             c.Active(),
		CreatedAt:          c.CreatedAt(),
		UpdatedAt:          c.UpdatedAt(),
	}
}

func toCouponDomain(m *CouponModel) *couponDomain.Coupon {
	return couponDomain.Reconstruct(
		m.ID, m.Code, m.DiscountPercentage,
		m.ExpiryDate, m.MaxUses, m.UsesConsumed, m.Active,
		m.CreatedAt, m.UpdatedAt,
	)
}
