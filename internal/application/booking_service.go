package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/domain/booking"
	"github.com/courthub/service-booking/internal/domain/court"
	"github.com/courthub/service-booking/internal/domain/member"
	"github.com/courthub/service-booking/internal/events"
	"github.com/courthub/service-booking/pkg/domain"
	"github.com/courthub/service-booking/pkg/kafka"
)

const eventSource = "service-booking"

// SubmitBookingRequest is the DTO for submitting a booking request.
type SubmitBookingRequest struct {
	CourtID     uuid.UUID `json:"court_id" binding:"required"`
	BookingDate time.Time `json:"booking_date" binding:"required"`
	Slots       []SlotDTO `json:"slots" binding:"required,min=1"`
}

// BookingDTO is the API response DTO for booking data.
type BookingDTO struct {
	ID             uuid.UUID `json:"id"`
	CourtID        uuid.UUID `json:"court_id"`
	CourtName      string    `json:"court_name"`
	CourtType      string    `json:"court_type"`
	UserEmail      string    `json:"user_email"`
	BookingDate    time.Time `json:"booking_date"`
	RequestedAt    time.Time `json:"requested_at"`
	Slots          []SlotDTO `json:"slots"`
	TotalCostCents int64     `json:"total_cost_cents"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingService is the application service for booking lifecycle use cases.
type BookingService struct {
	bookingRepo booking.BookingRepository
	courtRepo   court.CourtRepository
	memberRepo  member.MemberRepository
	producer    *kafka.Producer
	logger      *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo booking.BookingRepository,
	courtRepo court.CourtRepository,
	memberRepo member.MemberRepository,
	producer *kafka.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		courtRepo:   courtRepo,
		memberRepo:  memberRepo,
		producer:    producer,
		logger:      logger,
	}
}

// SubmitBooking validates and persists a new pending booking. The selection
// is checked against the court's availability as stored right now, so a
// slot taken since the user last looked fails with a conflict instead of
// silently double-booking.
func (s *BookingService) SubmitBooking(ctx context.Context, userEmail string, req SubmitBookingRequest) (*BookingDTO, error) {
	c, err := s.courtRepo.FindByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	selection := booking.NewSlotSelection(c)
	inventory := c.Slots()
	for _, d := range req.Slots {
		slot := court.Slot{StartTime: d.StartTime, EndTime: d.EndTime}
		if err := selection.Toggle(slot); err != nil {
			// A window that exists but is no longer available is a race
			// with another booking, not bad input.
			for _, inv := range inventory {
				if inv.SameWindow(slot) && !inv.Available {
					return nil, &booking.SubmissionConflictError{Slot: slot}
				}
			}
			return nil, err
		}
	}

	builder := booking.NewRequestBuilder()
	if err := builder.SetDate(req.BookingDate); err != nil {
		return nil, err
	}
	if err := builder.SetSlots(selection); err != nil {
		return nil, err
	}

	b, err := builder.Build(booking.BuildInput{
		CourtID:    c.ID(),
		CourtName:  c.Name(),
		CourtType:  c.SportType(),
		PriceCents: c.PriceCents(),
		UserEmail:  userEmail,
	})
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking submitted",
		zap.String("booking_id", b.ID().String()),
		zap.String("court_id", c.ID().String()),
		zap.String("user_email", userEmail),
		zap.Int("slot_count", len(b.Slots())),
		zap.Int64("total_cost_cents", b.TotalCostCents()),
	)
	s.publishBookingEvent(ctx, events.BookingRequested, b)

	dto := toBookingDTO(b)
	return &dto, nil
}

// ApproveBooking transitions a pending booking to approved and promotes
// the requester to member on their first approval (admin).
func (s *BookingService) ApproveBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	b, err := s.transition(ctx, id, events.BookingApproved, func(b *booking.Booking) error {
		return b.Approve()
	})
	if err != nil {
		return nil, err
	}

	s.promoteToMember(ctx, b.UserEmail())

	dto := toBookingDTO(b)
	return &dto, nil
}

// RejectBooking transitions a pending booking to rejected (admin). The
// user's selection is gone; a new request must start from scratch.
func (s *BookingService) RejectBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	b, err := s.transition(ctx, id, events.BookingRejected, func(b *booking.Booking) error {
		return b.Reject()
	})
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(b)
	return &dto, nil
}

// CancelBooking cancels a pending or approved booking. Users may only
// cancel their own; admins pass an empty email to skip the ownership check.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID, userEmail string) (*BookingDTO, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if userEmail != "" && b.UserEmail() != userEmail {
		return nil, &domain.DomainError{Err: domain.ErrUnauthorized, Message: "booking belongs to another user"}
	}

	if err := b.Cancel(); err != nil {
		return nil, err
	}
	b.IncrementVersion()
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled", zap.String("booking_id", b.ID().String()))
	s.publishBookingEvent(ctx, events.BookingCancelled, b)

	dto := toBookingDTO(b)
	return &dto, nil
}

// GetBooking retrieves one booking.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(b)
	return &dto, nil
}

// ListUserBookings returns a user's bookings, optionally filtered by status.
func (s *BookingService) ListUserBookings(ctx context.Context, userEmail, status string) ([]BookingDTO, error) {
	bookings, err := s.bookingRepo.ListByUserEmail(ctx, userEmail, booking.Status(status))
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// ListBookings returns bookings by status with pagination (admin). An
// empty status lists everything.
func (s *BookingService) ListBookings(ctx context.Context, status string, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookingRepo.ListByStatus(ctx, booking.Status(status), page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toBookingDTOs(bookings), total, nil
}

// transition loads, mutates and persists a booking under optimistic
// locking, then publishes the lifecycle event.
func (s *BookingService) transition(ctx context.Context, id uuid.UUID, eventType string, fn func(*booking.Booking) error) (*booking.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	b.IncrementVersion()
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking transitioned",
		zap.String("booking_id", b.ID().String()),
		zap.String("status", string(b.Status())),
	)
	s.publishBookingEvent(ctx, eventType, b)
	return b, nil
}

// promoteToMember records first-approval membership. Already-a-member is
// expected on repeat approvals; anything else only logs.
func (s *BookingService) promoteToMember(ctx context.Context, userEmail string) {
	if _, err := s.memberRepo.FindByEmail(ctx, userEmail); err == nil {
		return
	} else if !domain.IsNotFound(err) {
		s.logger.Warn("member lookup failed", zap.String("user_email", userEmail), zap.Error(err))
		return
	}

	m, err := member.NewMember(userEmail, "")
	if err != nil {
		s.logger.Warn("member promotion failed", zap.String("user_email", userEmail), zap.Error(err))
		return
	}
	if err := s.memberRepo.Save(ctx, m); err != nil && !domain.IsConflict(err) {
		s.logger.Warn("member promotion failed", zap.String("user_email", userEmail), zap.Error(err))
		return
	}
	s.logger.Info("user promoted to member", zap.String("user_email", userEmail))
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, b *booking.Booking) {
	if s.producer == nil {
		return
	}
	evt := events.BookingEvent{
		BookingID:   b.ID(),
		CourtID:     b.CourtID(),
		CourtName:   b.CourtName(),
		UserEmail:   b.UserEmail(),
		BookingDate: b.BookingDate(),
		Status:      string(b.Status()),
		OccurredAt:  time.Now().UTC(),
	}
	ce, err := kafka.NewCloudEvent(eventSource, eventType, evt)
	if err != nil {
		s.logger.Warn("failed to build booking event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, ce); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.String("booking_id", b.ID().String()),
			zap.Error(err),
		)
	}
}

func toBookingDTO(b *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:             b.ID(),
		CourtID:        b.CourtID(),
		CourtName:      b.CourtName(),
		CourtType:      b.CourtType(),
		UserEmail:      b.UserEmail(),
		BookingDate:    b.BookingDate(),
		RequestedAt:    b.RequestedAt(),
		Slots:          toSlotDTOs(b.Slots()),
		TotalCostCents: b.TotalCostCents(),
		Status:         string(b.Status()),
		CreatedAt:      b.CreatedAt(),
	}
}

func toBookingDTOs(bookings []*booking.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos
}
