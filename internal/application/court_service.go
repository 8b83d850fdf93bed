package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/domain/court"
)

// SlotDTO is the API representation of one bookable time window.
type SlotDTO struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Available bool   `json:"available"`
}

// CreateCourtRequest is the DTO for creating a court (admin).
type CreateCourtRequest struct {
	Name       string    `json:"name" binding:"required"`
	SportType  string    `json:"sport_type" binding:"required"`
	PriceCents int64     `json:"price_cents" binding:"required,gt=0"`
	PriceUnit  string    `json:"price_unit" binding:"required"`
	Slots      []SlotDTO `json:"slots" binding:"required,min=1"`
}

// UpdateCourtRequest is the DTO for updating a court (admin).
type UpdateCourtRequest struct {
	Name       string    `json:"name" binding:"required"`
	SportType  string    `json:"sport_type" binding:"required"`
	PriceCents int64     `json:"price_cents" binding:"required,gt=0"`
	PriceUnit  string    `json:"price_unit" binding:"required"`
	Slots      []SlotDTO `json:"slots" binding:"required,min=1"`
}

// CourtDTO is the API response DTO for court data.
type CourtDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	SportType  string    `json:"sport_type"`
	PriceCents int64     `json:"price_cents"`
	PriceUnit  string    `json:"price_unit"`
	Slots      []SlotDTO `json:"slots"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CourtService is the application service for court catalog use cases.
type CourtService struct {
	repo   court.CourtRepository
	logger *zap.Logger
}

// NewCourtService creates a new CourtService.
func NewCourtService(repo court.CourtRepository, logger *zap.Logger) *CourtService {
	return &CourtService{repo: repo, logger: logger}
}

// CreateCourt registers a new court with its slot inventory (admin).
func (s *CourtService) CreateCourt(ctx context.Context, req CreateCourtRequest) (*CourtDTO, error) {
	c, err := court.NewCourt(req.Name, req.SportType, req.PriceCents, court.PriceUnit(req.PriceUnit), toSlots(req.Slots))
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("court created",
		zap.String("court_id", c.ID().String()),
		zap.String("name", c.Name()),
	)
	dto := toCourtDTO(c)
	return &dto, nil
}

// UpdateCourt replaces a court's attributes and slot inventory (admin).
func (s *CourtService) UpdateCourt(ctx context.Context, id uuid.UUID, req UpdateCourtRequest) (*CourtDTO, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Name, req.SportType, req.PriceCents, court.PriceUnit(req.PriceUnit), toSlots(req.Slots)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	dto := toCourtDTO(c)
	return &dto, nil
}

// DeleteCourt removes a court (admin).
func (s *CourtService) DeleteCourt(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("court deleted", zap.String("court_id", id.String()))
	return nil
}

// GetCourt retrieves one court with its full slot inventory.
func (s *CourtService) GetCourt(ctx context.Context, id uuid.UUID) (*CourtDTO, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toCourtDTO(c)
	return &dto, nil
}

// GetAvailableSlots returns only the currently bookable slots of a court,
// in catalog order. An empty result means the court is fully booked.
func (s *CourtService) GetAvailableSlots(ctx context.Context, id uuid.UUID) ([]SlotDTO, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSlotDTOs(c.AvailableSlots()), nil
}

// ListCourts returns the court catalog with pagination.
func (s *CourtService) ListCourts(ctx context.Context, page, limit int) ([]CourtDTO, int64, error) {
	courts, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]CourtDTO, len(courts))
	for i, c := range courts {
		dtos[i] = toCourtDTO(c)
	}
	return dtos, total, nil
}

func toSlots(dtos []SlotDTO) []court.Slot {
	slots := make([]court.Slot, len(dtos))
	for i, d := range dtos {
		slots[i] = court.Slot{StartTime: d.StartTime, EndTime: d.EndTime, Available: d.Available}
	}
	return slots
}

func toSlotDTOs(slots []court.Slot) []SlotDTO {
	dtos := make([]SlotDTO, len(slots))
	for i, s := range slots {
		dtos[i] = SlotDTO{StartTime: s.StartTime, EndTime: s.EndTime, Available: s.Available}
	}
	return dtos
}

func toCourtDTO(c *court.Court) CourtDTO {
	return CourtDTO{
		ID:         c.ID(),
		Name:       c.Name(),
		SportType:  c.SportType(),
		PriceCents: c.PriceCents(),
		PriceUnit:  string(c.PriceUnit()),
		Slots:      toSlotDTOs(c.Slots()),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}
