package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/domain/review"
)

// CreateReviewRequest is the DTO for submitting a court review.
type CreateReviewRequest struct {
	CourtName  string `json:"court_name" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"review" binding:"required"`
	AuthorName string `json:"author_name" binding:"required"`
}

// ReviewDTO is the API response DTO for review data.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	CourtName  string    `json:"court_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"review"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewService is the application service for court reviews.
type ReviewService struct {
	repo   review.ReviewRepository
	logger *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo review.ReviewRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{repo: repo, logger: logger}
}

// CreateReview records a review from an authenticated user.
func (s *ReviewService) CreateReview(ctx context.Context, userEmail string, req CreateReviewRequest) (*ReviewDTO, error) {
	rev, err := review.NewReview(req.CourtName, req.Rating, req.Comment, req.AuthorName, userEmail)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, rev); err != nil {
		return nil, err
	}

	s.logger.Info("review submitted",
		zap.String("review_id", rev.ID().String()),
		zap.String("court_name", rev.CourtName()),
		zap.Int("rating", rev.Rating()),
	)
	dto := toReviewDTO(rev)
	return &dto, nil
}

// ListReviews returns all reviews, newest first. The author's email stays
// internal; only the display name is exposed.
func (s *ReviewService) ListReviews(ctx context.Context) ([]ReviewDTO, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReviewDTO, len(reviews))
	for i, rev := range reviews {
		dtos[i] = toReviewDTO(rev)
	}
	return dtos, nil
}

// DeleteReview removes a review (admin).
func (s *ReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func toReviewDTO(rev *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:         rev.ID(),
		CourtName:  rev.CourtName(),
		Rating:     rev.Rating(),
		Comment:    rev.Comment(),
		AuthorName: rev.AuthorName(),
		CreatedAt:  rev.CreatedAt(),
	}
}
