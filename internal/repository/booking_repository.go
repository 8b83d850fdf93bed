package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/courthub/service-booking/internal/domain/booking"
	courtDomain "github.com/courthub/service-booking/internal/domain/court"
	"github.com/courthub/service-booking/pkg/domain"
)

// BookingModel is the GORM persistence model for the bookings table. The
// booked slot windows are denormalized as JSONB alongside the court name
// and type so history survives later court edits.
type BookingModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CourtID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CourtName      string          `gorm:"type:varchar(100);not null"`
	CourtType      string          `gorm:"type:varchar(50);not null"`
	UserEmail      string          `gorm:"type:varchar(255);not null;index"`
	BookingDate    time.Time       `gorm:"type:date;not null"`
	RequestedAt    time.Time       `gorm:"type:timestamptz;not null"`
	Slots          json.RawMessage `gorm:"type:jsonb;not null"`
	TotalCostCents int64           `gorm:"not null"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	Version        int64           `gorm:"not null;default:1"`
	CreatedAt      time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt      time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (BookingModel) TableName() string { return "bookings" }

// GormBookingRepository implements BookingRepository using GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	model, err := toBookingModel(b)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes with optimistic locking on the version column.
// The caller increments the version before calling; the update matches the
// previous version, so a concurrent writer makes RowsAffected zero.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	model, err := toBookingModel(b)
	if err != nil {
		return err
	}
	previousVersion := b.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"slots":      model.Slots,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// FindByID retrieves a booking by ID.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, err
	}
	return toBookingDomain(&model)
}

// ListByUserEmail retrieves a user's bookings, newest first, optionally
// filtered by status.
func (r *GormBookingRepository) ListByUserEmail(ctx context.Context, email string, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Where("user_email = ?", email)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var models []BookingModel
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toBookingDomains(models)
}

// ListByStatus retrieves bookings in a given status with pagination (admin).
// An empty status lists everything.
func (r *GormBookingRepository) ListByStatus(ctx context.Context, status bookingDomain.Status, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{})
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	bookings, err := toBookingDomains(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// HasApprovedOrConfirmed reports whether the user has ever had a booking
// approved or confirmed.
func (r *GormBookingRepository) HasApprovedOrConfirmed(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("user_email = ? AND status IN ?", email, []string{
			string(bookingDomain.StatusApproved),
			string(bookingDomain.StatusConfirmed),
		}).
		Count(&count).Error
	return count > 0, err
}

func toBookingModel(b *bookingDomain.Booking) (*BookingModel, error) {
	slots, err := json.Marshal(b.Slots())
	if err != nil {
		return nil, err
	}
	return &BookingModel{
		ID:             b.ID(),
		CourtID:        b.CourtID(),
		CourtName:      b.CourtName(),
		CourtType:      b.CourtType(),
		UserEmail:      b.UserEmail(),
		BookingDate:    b.BookingDate(),
		RequestedAt:    b.RequestedAt(),
		Slots:          slots,
		TotalCostCents: b.TotalCostCents(),
		Status:         string(b.Status()),
		Version:        b.Version(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}, nil
}

func toBookingDomain(m *BookingModel) (*bookingDomain.Booking, error) {
	var slots []courtDomain.Slot
	if err := json.Unmarshal(m.Slots, &slots); err != nil {
		return nil, err
	}
	return bookingDomain.Reconstitute(
		m.ID, m.CourtID,
		m.CourtName, m.CourtType, m.UserEmail,
		m.BookingDate, m.RequestedAt,
		slots, m.TotalCostCents,
		bookingDomain.Status(m.Status),
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toBookingDomains(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		b, err := toBookingDomain(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = b
	}
	return bookings, nil
}
