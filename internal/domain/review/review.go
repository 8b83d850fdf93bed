package review

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courthub/service-booking/pkg/domain"
)

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a member's rating and comment for a court, shown on the
// landing page carousel.
type Review struct {
	id          uuid.UUID
	courtName   string
	rating      int
	comment     string
	authorName  string
	authorEmail string
	createdAt   time.Time
}

// NewReview creates a review.
func NewReview(courtName string, rating int, comment, authorName, authorEmail string) (*Review, error) {
	courtName = strings.TrimSpace(courtName)
	if courtName == "" {
		return nil, domain.NewValidationError("court name is required")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, domain.NewValidationError("review text is required")
	}
	authorName = strings.TrimSpace(authorName)
	if authorName == "" {
		return nil, domain.NewValidationError("author name is required")
	}
	if authorEmail == "" {
		return nil, domain.NewValidationError("author email is required")
	}

	return &Review{
		id:          uuid.New(),
		courtName:   courtName,
		rating:      rating,
		comment:     comment,
		authorName:  authorName,
		authorEmail: authorEmail,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence.
func Reconstruct(id uuid.UUID, courtName string, rating int, comment, authorName, authorEmail string, createdAt time.Time) *Review {
	return &Review{
		id:          id,
		courtName:   courtName,
		rating:      rating,
		comment:     comment,
		authorName:  authorName,
		authorEmail: authorEmail,
		createdAt:   createdAt,
	}
}

// Getters.
func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) CourtName() string    { return r.courtName }
func (r *Review) Rating() int          { return r.rating }
func (r *Review) Comment() string      { return r.comment }
func (r *Review) AuthorName() string   { return r.authorName }
func (r *Review) AuthorEmail() string  { return r.authorEmail }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
