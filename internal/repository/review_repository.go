package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reviewDomain "github.com/courthub/service-booking/internal/domain/review"
	"github.com/courthub/service-booking/pkg/domain"
)

// ReviewModel is the GORM persistence model for the reviews table.
type ReviewModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourtName   string    `gorm:"type:varchar(100);not null"`
	Rating      int       `gorm:"not null"`
	Comment     string    `gorm:"type:text;not null"`
	AuthorName  string    `gorm:"type:varchar(100);not null"`
	AuthorEmail string    `gorm:"type:varchar(255);not null;index"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (ReviewModel) TableName() string { return "reviews" }

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save persists a new review.
func (r *GormReviewRepository) Save(ctx context.Context, rev *reviewDomain.Review) error {
	model := toReviewModel(rev)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Delete removes a review.
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ReviewModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("review", id.String())
	}
	return nil
}

// FindByID retrieves a review by ID.
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*reviewDomain.Review, error) {
	var model ReviewModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review", id.String())
		}
		return nil, err
	}
	return toReviewDomain(&model), nil
}

// List retrieves all reviews, newest first.
func (r *GormReviewRepository) List(ctx context.Context) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	reviews := make([]*reviewDomain.Review, len(models))
	for i := range models {
		reviews[i] = toReviewDomain(&models[i])
	}
	return reviews, nil
}

func toReviewModel(rev *reviewDomain.Review) ReviewModel {
	return ReviewModel{
		ID:          rev.ID(),
		CourtName:   rev.CourtName(),
		Rating:      rev.Rating(),
		Comment:     rev.Comment(),
		AuthorName:  rev.AuthorName(),
		AuthorEmail: rev.AuthorEmail(),
		CreatedAt:   rev.CreatedAt(),
	}
}

func toReviewDomain(m *ReviewModel) *reviewDomain.Review {
	return reviewDomain.Reconstruct(m.ID, m.CourtName, m.Rating, m.Comment, m.AuthorName, m.AuthorEmail, m.CreatedAt)
}
