package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/progress"
	"github.com/comitanigiacomo/smokefree-tracker/internal/observability"
)

const (
	SummarySourceProfile = "profile"
	SummarySourceDefault = "default"
	SummarySourceDemo    = "demo"
)

type ProgressService struct {
	profiles   domain.QuitProfileRepository
	checkIns   domain.CheckInRepository
	windowDays int
	clock      Clock
	metrics    *observability.Metrics
}

func NewProgressService(profiles domain.QuitProfileRepository, checkIns domain.CheckInRepository, windowDays int, metrics *observability.Metrics) *ProgressService {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &ProgressService{
		profiles:   profiles,
		checkIns:   checkIns,
		windowDays: windowDays,
		clock:      systemClock,
		metrics:    metrics,
	}
}

func (s *ProgressService) WithClock(clock Clock) *ProgressService {
	s.clock = clock
	return s
}

// GetSummary loads the profile and the recent check-in window in parallel and
// derives the summary. A user without a profile gets the default summary.
func (s *ProgressService) GetSummary(ctx context.Context, userID string) (*domain.ProgressSummary, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	now := s.clock()
	from := domain.TruncateToDay(now).AddDate(0, 0, -s.windowDays)

	var (
		profile  *domain.QuitProfile
		checkIns []*domain.CheckIn
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profiles.GetByUserID(gctx, userID)
		if errors.Is(err, domain.ErrQuitProfileNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("progress service: load profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		list, err := s.checkIns.ListByUserID(gctx, userID, from, now)
		if err != nil {
			return fmt.Errorf("progress service: load check-ins: %w", err)
		}
		checkIns = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if profile == nil {
		s.observe(SummarySourceDefault)
		return progress.Default(), nil
	}

	summary, err := progress.Summarize(profile, progress.FromCheckIns(checkIns), now)
	if err != nil {
		return nil, err
	}
	s.observe(SummarySourceProfile)
	return summary, nil
}

// DemoSummary derives a summary from the synthetic demo data without touching storage.
func (s *ProgressService) DemoSummary() (*domain.ProgressSummary, error) {
	now := s.clock()
	summary, err := progress.Summarize(DemoProfile(now), progress.FromCheckIns(DemoCheckIns(now)), now)
	if err != nil {
		return nil, err
	}
	s.observe(SummarySourceDemo)
	return summary, nil
}

func (s *ProgressService) observe(source string) {
	if s.metrics != nil {
		s.metrics.ProgressComputed.WithLabelValues(source).Inc()
	}
}
