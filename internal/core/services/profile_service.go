package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/progress"
)

type ProfileService struct {
	repo  domain.QuitProfileRepository
	clock Clock
}

func NewProfileService(repo domain.QuitProfileRepository) *ProfileService {
	return &ProfileService{
		repo:  repo,
		clock: systemClock,
	}
}

func (s *ProfileService) WithClock(clock Clock) *ProfileService {
	s.clock = clock
	return s
}

type SaveProfileInput struct {
	UserID            string
	QuitDate          time.Time
	CigarettesPerDay  int
	CostPerPack       float64
	CigarettesPerPack *int
	PersonalGoal      string
}

// ProfileView is a quit profile together with its headline figures.
type ProfileView struct {
	*domain.QuitProfile
	domain.ProfileStats
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*ProfileView, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(profile)
}

func (s *ProfileService) Save(ctx context.Context, input SaveProfileInput) (*ProfileView, error) {
	perPack := domain.DefaultCigarettesPerPack
	if input.CigarettesPerPack != nil {
		perPack = *input.CigarettesPerPack
	}

	profile, err := domain.NewQuitProfile(
		input.UserID,
		input.QuitDate,
		input.CigarettesPerDay,
		input.CostPerPack,
		perPack,
		input.PersonalGoal,
		s.clock(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile service: save profile: %w", err)
	}

	return s.view(profile)
}

// Demo returns the synthetic profile shown to demo visitors.
func (s *ProfileService) Demo() (*ProfileView, error) {
	return s.view(DemoProfile(s.clock()))
}

func (s *ProfileService) view(profile *domain.QuitProfile) (*ProfileView, error) {
	stats, err := progress.Stats(profile, s.clock())
	if err != nil {
		return nil, err
	}
	return &ProfileView{QuitProfile: profile, ProfileStats: stats}, nil
}
