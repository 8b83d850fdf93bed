package announcement

import (
	"context"

	"github.com/google/uuid"
)

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Save(ctx context.Context, a *Announcement) error
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	List(ctx context.Context) ([]*Announcement, error)
}
