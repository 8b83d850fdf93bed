package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentDomain "github.com/courthub/service-booking/internal/domain/payment"
	"github.com/courthub/service-booking/pkg/domain"
)

// PaymentModel is the GORM persistence model for the payments table. The
// unique index on transaction_id enforces at-most-one record per gateway
// charge at the storage layer.
type PaymentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserEmail     string    `gorm:"type:varchar(255);not null;index"`
	AmountCents   int64     `gorm:"not null"`
	CouponCode    *string   `gorm:"type:varchar(20)"`
	DiscountCents int64     `gorm:"not null;default:0"`
	TransactionID string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Currency      string    `gorm:"type:varchar(3);not null"`
	CreatedAt     time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (PaymentModel) TableName() string { return "payments" }

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Save persists a new payment record. A duplicate transaction ID fails
// with a conflict so a replayed confirmation is detected, never doubled.
func (r *GormPaymentRepository) Save(ctx context.Context, p *paymentDomain.PaymentRecord) error {
	model := toPaymentModel(p)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("payment for this transaction already recorded")
		}
		return err
	}
	return nil
}

// Delete removes a payment record; saga compensation only.
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&PaymentModel{}).Error
}

// FindByTransactionID retrieves a record by its gateway transaction ID.
func (r *GormPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*paymentDomain.PaymentRecord, error) {
	var model PaymentModel
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("payment", transactionID)
		}
		return nil, err
	}
	return toPaymentDomain(&model), nil
}

// FindByBookingID retrieves the record for a booking.
func (r *GormPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*paymentDomain.PaymentRecord, error) {
	var model PaymentModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("payment", bookingID.String())
		}
		return nil, err
	}
	return toPaymentDomain(&model), nil
}

// ListByUserEmail retrieves a user's payment history, newest first.
func (r *GormPaymentRepository) ListByUserEmail(ctx context.Context, email string) ([]*paymentDomain.PaymentRecord, error) {
	var models []PaymentModel
	if err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toPaymentDomains(models), nil
}

// ListAll retrieves all records with pagination (admin).
func (r *GormPaymentRepository) ListAll(ctx context.Context, page, limit int) ([]*paymentDomain.PaymentRecord, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []PaymentModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return toPaymentDomains(models), total, nil
}

// GetRevenueStats returns the total collected and the record count (admin).
func (r *GormPaymentRepository) GetRevenueStats(ctx context.Context) (int64, int64, error) {
	var totalCents int64
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&totalCents).Error; err != nil {
		return 0, 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	return totalCents, count, nil
}

func toPaymentModel(p *paymentDomain.PaymentRecord) PaymentModel {
	return PaymentModel{
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

func toPaymentDomain(m *PaymentModel) *paymentDomain.PaymentRecord {
	return paymentDomain.Reconstruct(
		m.ID, m.BookingID, m.UserEmail,
		m.AmountCents, m.CouponCode, m.DiscountCents,
		m.TransactionID, m.Currency, m.CreatedAt,
	)
}

func toPaymentDomains(models []PaymentModel) []*paymentDomain.PaymentRecord {
	records := make([]*paymentDomain.PaymentRecord, len(models))
	for i := range models {
		records[i] = toPaymentDomain(&models[i])
	}
	return records
}
