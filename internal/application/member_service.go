package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/domain/member"
	"github.com/courthub/service-booking/pkg/domain"
)

// MemberDTO is the API response DTO for member data.
type MemberDTO struct {
	ID          uuid.UUID `json:"id"`
	UserEmail   string    `json:"user_email"`
	DisplayName string    `json:"display_name,omitempty"`
	MemberSince time.Time `json:"member_since"`
}

// MemberService is the application service for member records.
type MemberService struct {
	repo   member.MemberRepository
	logger *zap.Logger
}

// NewMemberService creates a new MemberService.
func NewMemberService(repo member.MemberRepository, logger *zap.Logger) *MemberService {
	return &MemberService{repo: repo, logger: logger}
}

// IsMember reports whether the email belongs to a member.
func (s *MemberService) IsMember(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetMember retrieves one member by email.
func (s *MemberService) GetMember(ctx context.Context, email string) (*MemberDTO, error) {
	m, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	dto := toMemberDTO(m)
	return &dto, nil
}

// ListMembers returns members, optionally filtered by email substring (admin).
func (s *MemberService) ListMembers(ctx context.Context, search string) ([]MemberDTO, error) {
	members, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	dtos := make([]MemberDTO, len(members))
	for i, m := range members {
		dtos[i] = toMemberDTO(m)
	}
	return dtos, nil
}

// RemoveMember revokes a membership (admin).
func (s *MemberService) RemoveMember(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("member removed", zap.String("member_id", id.String()))
	return nil
}

func toMemberDTO(m *member.Member) MemberDTO {
	return MemberDTO{
		ID:          m.ID(),
		UserEmail:   m.UserEmail(),
		DisplayName: m.DisplayName(),
		MemberSince: m.MemberSince(),
	}
}
