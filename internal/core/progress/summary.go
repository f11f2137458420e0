package progress

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

// Summarize builds the full ProgressSummary. A nil profile yields Default().
func Summarize(profile *domain.QuitProfile, checkIns []CravingMood, now time.Time) (*domain.ProgressSummary, error) {
	if profile == nil {
		return Default(), nil
	}

	stats, saved, err := computeStats(profile, now)
	if err != nil {
		return nil, err
	}

	snapshot, err := HealthSnapshot(checkIns)
	if err != nil {
		return nil, err
	}

	return &domain.ProgressSummary{
		DaysSinceQuit:       stats.DaysSinceQuit,
		CigarettesAvoided:   stats.CigarettesAvoided,
		MoneySaved:          stats.MoneySaved,
		MilestoneStatuses:   MilestoneStatuses(stats.DaysSinceQuit),
		HealthSnapshot:      snapshot,
		MotivationalMessage: MotivationalMessage(stats.DaysSinceQuit, stats.CigarettesAvoided, saved),
	}, nil
}

// Stats returns the headline figures shown alongside a quit profile.
func Stats(profile *domain.QuitProfile, now time.Time) (domain.ProfileStats, error) {
	if profile == nil {
		return domain.ProfileStats{}, invalidArgument("quit profile is required")
	}
	stats, _, err := computeStats(profile, now)
	return stats, err
}

// Default is the summary served before a user has onboarded.
func Default() *domain.ProgressSummary {
	return &domain.ProgressSummary{
		MilestoneStatuses:   MilestoneStatuses(0),
		HealthSnapshot:      domain.HealthSnapshot{MostCommonMood: NoMood},
		MotivationalMessage: MotivationalMessage(0, 0, decimal.Zero),
	}
}

func computeStats(profile *domain.QuitProfile, now time.Time) (domain.ProfileStats, decimal.Decimal, error) {
	days, err := DaysSinceQuit(profile.QuitDate, now)
	if err != nil {
		return domain.ProfileStats{}, decimal.Zero, err
	}

	avoided, err := CigarettesAvoided(profile.CigarettesPerDay, days)
	if err != nil {
		return domain.ProfileStats{}, decimal.Zero, err
	}

	saved, err := MoneySaved(profile.CigarettesPerDay, days, profile.CostPerPack, profile.CigarettesPerPack)
	if err != nil {
		return domain.ProfileStats{}, decimal.Zero, fmt.Errorf("money saved for user %s: %w", profile.UserID, err)
	}

	return domain.ProfileStats{
		DaysSinceQuit:     days,
		CigarettesAvoided: avoided,
		MoneySaved:        saved.InexactFloat64(),
	}, saved, nil
}
