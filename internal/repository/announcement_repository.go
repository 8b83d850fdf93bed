package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	announcementDomain "github.com/courthub/service-booking/internal/domain/announcement"
	"github.com/courthub/service-booking/pkg/domain"
)

// AnnouncementModel is the GORM persistence model for the announcements table.
type AnnouncementModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (AnnouncementModel) TableName() string { return "announcements" }

// GormAnnouncementRepository implements AnnouncementRepository using GORM.
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository creates a new GormAnnouncementRepository.
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Save persists a new announcement.
func (r *GormAnnouncementRepository) Save(ctx context.Context, a *announcementDomain.Announcement) error {
	model := toAnnouncementModel(a)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update replaces an announcement's content.
func (r *GormAnnouncementRepository) Update(ctx context.Context, a *announcementDomain.Announcement) error {
	result := r.db.WithContext(ctx).
		Model(&AnnouncementModel{}).
		Where("id = ?", a.ID()).
		Updates(map[string]interface{}{
			"title":      a.Title(),
			"message":    a.Message(),
			"updated_at": a.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("announcement", a.ID().String())
	}
	return nil
}

// Delete removes an announcement.
func (r *GormAnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AnnouncementModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("announcement", id.String())
	}
	return nil
}

// FindByID retrieves an announcement by ID.
func (r *GormAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*announcementDomain.Announcement, error) {
	var model AnnouncementModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("announcement", id.String())
		}
		return nil, err
	}
	return toAnnouncementDomain(&model), nil
}

// List retrieves all announcements, newest first.
func (r *GormAnnouncementRepository) List(ctx context.Context) ([]*announcementDomain.Announcement, error) {
	var models []AnnouncementModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	announcements := make([]*announcementDomain.Announcement, len(models))
	for i := range models {
		announcements[i] = toAnnouncementDomain(&models[i])
	}
	return announcements, nil
}

func toAnnouncementModel(a *announcementDomain.Announcement) AnnouncementModel {
	return AnnouncementModel{
		ID:        a.ID(),
		Title:     a.Title(),
		Message:   a.Message(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}

func toAnnouncementDomain(m *AnnouncementModel) *announcementDomain.Announcement {
	return announcementDomain.Reconstruct(m.ID, m.Title, m.Message, m.CreatedAt, m.UpdatedAt)
}
