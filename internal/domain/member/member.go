package member

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courthub/service-booking/pkg/domain"
)

// Member is a user whose booking has been approved at least once. Members
// gain access to the payment flow and member-only dashboard views.
type Member struct {
	id          uuid.UUID
	userEmail   string
	displayName string
	memberSince time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewMember promotes a user to member.
func NewMember(userEmail, displayName string) (*Member, error) {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return nil, domain.NewValidationError("user email is required")
	}

	now := time.Now().UTC()
	return &Member{
		id:          uuid.New(),
		userEmail:   userEmail,
		displayName: displayName,
		memberSince: now,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Member from persistence.
func Reconstruct(id uuid.UUID, userEmail, displayName string, memberSince, createdAt, updatedAt time.Time) *Member {
	return &Member{
		id: id, userEmail: userEmail, displayName: displayName,
		memberSince: memberSince, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// Getters.
func (m *Member) ID() uuid.UUID          { return m.id }
func (m *Member) UserEmail() string      { return m.userEmail }
func (m *Member) DisplayName() string    { return m.displayName }
func (m *Member) MemberSince() time.Time { return m.memberSince }
func (m *Member) CreatedAt() time.Time   { return m.createdAt }
func (m *Member) UpdatedAt() time.Time   { return m.updatedAt }
