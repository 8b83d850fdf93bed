package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/domain/announcement"
)

// CreateAnnouncementRequest is the DTO for publishing an announcement (admin).
type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// UpdateAnnouncementRequest is the DTO for editing an announcement (admin).
type UpdateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// AnnouncementDTO is the API response DTO for announcement data.
type AnnouncementDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnnouncementService is the application service for facility announcements.
type AnnouncementService struct {
	repo   announcement.AnnouncementRepository
	logger *zap.Logger
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(repo announcement.AnnouncementRepository, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, logger: logger}
}

// CreateAnnouncement publishes a new announcement (admin).
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, req CreateAnnouncementRequest) (*AnnouncementDTO, error) {
	a, err := announcement.NewAnnouncement(req.Title, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("announcement published",
		zap.String("announcement_id", a.ID().String()),
		zap.String("title", a.Title()),
	)
	dto := toAnnouncementDTO(a)
	return &dto, nil
}

// UpdateAnnouncement edits an existing announcement (admin).
func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, id uuid.UUID, req UpdateAnnouncementRequest) (*AnnouncementDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Update(req.Title, req.Message); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	dto := toAnnouncementDTO(a)
	return &dto, nil
}

// DeleteAnnouncement removes an announcement (admin).
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListAnnouncements returns all announcements, newest first.
func (s *AnnouncementService) ListAnnouncements(ctx context.Context) ([]AnnouncementDTO, error) {
	announcements, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]AnnouncementDTO, len(announcements))
	for i, a := range announcements {
		dtos[i] = toAnnouncementDTO(a)
	}
	return dtos, nil
}

func toAnnouncementDTO(a *announcement.Announcement) AnnouncementDTO {
	return AnnouncementDTO{
		ID:        a.ID(),
		Title:     a.Title(),
		Message:   a.Message(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}
