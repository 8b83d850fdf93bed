package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	memberDomain "github.com/courthub/service-booking/internal/domain/member"
	"github.com/courthub/service-booking/pkg/domain"
)

// MemberModel is the GORM persistence model for the members table.
type MemberModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserEmail   string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName string    `gorm:"type:varchar(100)"`
	MemberSince time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (MemberModel) TableName() string { return "members" }

// GormMemberRepository implements MemberRepository using GORM.
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository.
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// Save persists a new member. Promoting the same email twice is a
// conflict; promotion callers treat it as already-a-member.
func (r *GormMemberRepository) Save(ctx context.Context, m *memberDomain.Member) error {
	model := toMemberModel(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("user is already a member")
		}
		return err
	}
	return nil
}

// Delete removes a member record.
func (r *GormMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MemberModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("member", id.String())
	}
	return nil
}

// FindByEmail retrieves a member by email.
func (r *GormMemberRepository) FindByEmail(ctx context.Context, email string) (*memberDomain.Member, error) {
	var model MemberModel
	if err := r.db.WithContext(ctx).Where("user_email = ?", strings.ToLower(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("member", email)
		}
		return nil, err
	}
	return toMemberDomain(&model), nil
}

// List retrieves members, optionally filtered by an email substring (admin).
func (r *GormMemberRepository) List(ctx context.Context, search string) ([]*memberDomain.Member, error) {
	q := r.db.WithContext(ctx)
	if search != "" {
		q = q.Where("user_email LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var models []MemberModel
	if err := q.Order("member_since DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	members := make([]*memberDomain.Member, len(models))
	for i := range models {
		members[i] = toMemberDomain(&models[i])
	}
	return members, nil
}

func toMemberModel(m *memberDomain.Member) MemberModel {
	return MemberModel{
		ID:          m.ID(),
		UserEmail:   m.UserEmail(),
		DisplayName: m.DisplayName(),
		MemberSince: m.MemberSince(),
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
}

func toMemberDomain(m *MemberModel) *memberDomain.Member {
	return memberDomain.Reconstruct(m.ID, m.UserEmail, m.DisplayName, m.MemberSince, m.CreatedAt, m.UpdatedAt)
}
