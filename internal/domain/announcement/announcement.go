package announcement

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courthub/service-booking/pkg/domain"
)

// Announcement is a facility-wide notice published by an admin.
type Announcement struct {
	id        uuid.UUID
	title     string
	message   string
	createdAt time.Time
	updatedAt time.Time
}

// NewAnnouncement creates an announcement.
func NewAnnouncement(title, message string) (*Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.NewValidationError("message is required")
	}

	now := time.Now().UTC()
	return &Announcement{
		id:        uuid.New(),
		title:     title,
		message:   message,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds an Announcement from persistence.
func Reconstruct(id uuid.UUID, title, message string, createdAt, updatedAt time.Time) *Announcement {
	return &Announcement{id: id, title: title, message: message, createdAt: createdAt, updatedAt: updatedAt}
}

// Update replaces the announcement content.
func (a *Announcement) Update(title, message string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.NewValidationError("title is required")
	}
	if strings.TrimSpace(message) == "" {
		return domain.NewValidationError("message is required")
	}
	a.title = title
	a.message = message
	a.updatedAt = time.Now().UTC()
	return nil
}

// Getters.
func (a *Announcement) ID() uuid.UUID        { return a.id }
func (a *Announcement) Title() string        { return a.title }
func (a *Announcement) Message() string      { return a.message }
func (a *Announcement) CreatedAt() time.Time { return a.createdAt }
func (a *Announcement) UpdatedAt() time.Time { return a.updatedAt }
