package domain

// MilestoneStatus reports whether a fixed day threshold has been reached.
type MilestoneStatus struct {
	Days     int  `json:"days"`
	Achieved bool `json:"achieved"`
}

type HealthSnapshot struct {
	AverageCravingIntensity float64 `json:"averageCravingIntensity"`
	RecentCheckInCount      int     `json:"recentCheckIns"`
	MostCommonMood          string  `json:"mostCommonMood"`
}

// ProgressSummary is derived on every read and never persisted.
type ProgressSummary struct {
	DaysSinceQuit       int               `json:"daysQuit"`
	CigarettesAvoided   int               `json:"cigarettesAvoided"`
	MoneySaved          float64           `json:"moneySaved"`
	MilestoneStatuses   []MilestoneStatus `json:"milestoneStatuses"`
	HealthSnapshot      HealthSnapshot    `json:"healthSnapshot"`
	MotivationalMessage string            `json:"motivationalMessage"`
}

// ProfileStats is the subset of progress figures returned with a quit profile.
type ProfileStats struct {
	DaysSinceQuit     int     `json:"daysSinceQuit"`
	CigarettesAvoided int     `json:"cigarettesAvoided"`
	MoneySaved        float64 `json:"moneySaved"`
}
