package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courtDomain "github.com/courthub/service-booking/internal/domain/court"
	"github.com/courthub/service-booking/pkg/domain"
)

// CourtModel is the GORM persistence model for the courts table. The slot
// inventory is stored as a JSONB document; slots are a value object of the
// court, never addressed outside it.
type CourtModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"type:varchar(100);not null"`
	SportType  string          `gorm:"type:varchar(50);not null;index"`
	PriceCents int64           `gorm:"not null"`
	PriceUnit  string          `gorm:"type:varchar(20);not null"`
	Slots      json.RawMessage `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt  time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (CourtModel) TableName() string { return "courts" }

// GormCourtRepository implements CourtRepository using GORM.
type GormCourtRepository struct {
	db *gorm.DB
}

// NewGormCourtRepository creates a new GormCourtRepository.
func NewGormCourtRepository(db *gorm.DB) *GormCourtRepository {
	return &GormCourtRepository{db: db}
}

// Save persists a new court.
func (r *GormCourtRepository) Save(ctx context.Context, c *courtDomain.Court) error {
	model, err := toCourtModel(c)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Update replaces a court's stored state.
func (r *GormCourtRepository) Update(ctx context.Context, c *courtDomain.Court) error {
	model, err := toCourtModel(c)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&CourtModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"sport_type":  model.SportType,
			"price_cents": model.PriceCents,
			"price_unit":  model.PriceUnit,
			"slots":       model.Slots,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("court", model.ID.String())
	}
	return nil
}

// Delete removes a court.
func (r *GormCourtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CourtModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("court", id.String())
	}
	return nil
}

// FindByID retrieves a court by ID.
func (r *GormCourtRepository) FindByID(ctx context.Context, id uuid.UUID) (*courtDomain.Court, error) {
	var model CourtModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("court", id.String())
		}
		return nil, err
	}
	return toCourtDomain(&model)
}

// ListAll retrieves courts ordered by name with pagination.
func (r *GormCourtRepository) ListAll(ctx context.Context, page, limit int) ([]*courtDomain.Court, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&CourtModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []CourtModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	courts := make([]*courtDomain.Court, len(models))
	for i := range models {
		c, err := toCourtDomain(&models[i])
		if err != nil {
			return nil, 0, err
		}
		courts[i] = c
	}
	return courts, total, nil
}

func toCourtModel(c *courtDomain.Court) (*CourtModel, error) {
	slots, err := json.Marshal(c.Slots())
	if err != nil {
		return nil, err
	}
	return &CourtModel{
		ID:         c.ID(),
		Name:       c.Name(),
		SportType:  c.SportType(),
		PriceCents: c.PriceCents(),
		PriceUnit:  string(c.PriceUnit()),
		Slots:      slots,
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}, nil
}

func toCourtDomain(m *CourtModel) (*courtDomain.Court, error) {
	var slots []courtDomain.Slot
	if err := json.Unmarshal(m.Slots, &slots); err != nil {
		return nil, err
	}
	return courtDomain.Reconstruct(
		m.ID, m.Name, m.SportType,
		m.PriceCents, courtDomain.PriceUnit(m.PriceUnit), slots,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
