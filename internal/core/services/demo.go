package services

import (
	"time"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

// DemoUserID identifies the synthetic visitor served in demo guest mode.
const DemoUserID = "demo-user"

const demoQuitDaysAgo = 15

var demoCheckIns = []struct {
	craving int
	mood    string
	notes   string
}{
	{3, "motivated", "Feeling great today!"},
	{5, "determined", "Had a craving during lunch but resisted."},
	{4, "confident", "First smoke-free weekend!"},
	{6, "challenged", "Work stress made it harder today."},
	{4, "proud", "Told my family about my progress."},
	{5, "hopeful", "Money saved calculation was motivating."},
	{3, "excited", "Started tracking my progress!"},
}

// DemoProfile is built fresh from now on every call; nothing is stored.
func DemoProfile(now time.Time) *domain.QuitProfile {
	goal := "I want to save money for my family vacation and improve my health for my kids."
	today := domain.TruncateToDay(now)
	return &domain.QuitProfile{
		ID:                "demo-profile",
		UserID:            DemoUserID,
		QuitDate:          today.AddDate(0, 0, -demoQuitDaysAgo),
		CigarettesPerDay:  15,
		CostPerPack:       12.50,
		CigarettesPerPack: domain.DefaultCigarettesPerPack,
		PersonalGoal:      &goal,
		CreatedAt:         today.AddDate(0, 0, -demoQuitDaysAgo),
		UpdatedAt:         today.AddDate(0, 0, -demoQuitDaysAgo),
	}
}

// DemoCheckIns returns one check-in per day for the last week, newest first.
func DemoCheckIns(now time.Time) []*domain.CheckIn {
	today := domain.TruncateToDay(now)
	out := make([]*domain.CheckIn, 0, len(demoCheckIns))
	for i, c := range demoCheckIns {
		notes := c.notes
		date := today.AddDate(0, 0, -i)
		out = append(out, &domain.CheckIn{
			ID:               "demo-checkin-" + date.Format(domain.DateLayout),
			UserID:           DemoUserID,
			Date:             date,
			CravingIntensity: c.craving,
			Mood:             c.mood,
			Notes:            &notes,
			CreatedAt:        date,
		})
	}
	return out
}
