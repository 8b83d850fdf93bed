package member

import (
	"context"

	"github.com/google/uuid"
)

// MemberRepository defines persistence operations for members.
type MemberRepository interface {
	Save(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByEmail(ctx context.Context, email string) (*Member, error)
	List(ctx context.Context, search string) ([]*Member, error)
}
