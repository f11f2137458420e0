package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

type CheckInService struct {
	repo  domain.CheckInRepository
	clock Clock
}

func NewCheckInService(repo domain.CheckInRepository) *CheckInService {
	return &CheckInService{
		repo:  repo,
		clock: systemClock,
	}
}

func (s *CheckInService) WithClock(clock Clock) *CheckInService {
	s.clock = clock
	return s
}

type CreateCheckInInput struct {
	UserID           string
	Date             time.Time
	CravingIntensity int
	Mood             string
	Notes            string
}

func (s *CheckInService) Create(ctx context.Context, input CreateCheckInInput) (*domain.CheckIn, error) {
	checkIn, err := domain.NewCheckIn(input.UserID, input.Date, input.CravingIntensity, input.Mood, input.Notes, s.clock())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	return checkIn, nil
}

// List returns the user's check-ins between from and to (inclusive calendar
// days), newest first. Zero bounds are open.
func (s *CheckInService) List(ctx context.Context, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	if !from.IsZero() {
		from = domain.TruncateToDay(from)
	}
	if !to.IsZero() {
		to = domain.TruncateToDay(to)
	}
	return s.repo.ListByUserID(ctx, userID, from, to)
}

// Demo returns the synthetic check-ins shown to demo visitors.
func (s *CheckInService) Demo() []*domain.CheckIn {
	return DemoCheckIns(s.clock())
}
