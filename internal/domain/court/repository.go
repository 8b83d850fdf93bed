package court

import (
	"context"

	"github.com/google/uuid"
)

// CourtRepository defines persistence operations for courts.
type CourtRepository interface {
	Save(ctx context.Context, c *Court) error
	Update(ctx context.Context, c *Court) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Court, error)
	ListAll(ctx context.Context, page, limit int) ([]*Court, int64, error)
}
