package progress

import "github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"

// MilestoneStatuses returns one entry per threshold, in threshold order.
// Each entry is evaluated on its own: achieved = daysSinceQuit >= threshold.
func MilestoneStatuses(daysSinceQuit int) []domain.MilestoneStatus {
	out := make([]domain.MilestoneStatus, len(MilestoneThresholds))
	for i, threshold := range MilestoneThresholds {
		out[i] = domain.MilestoneStatus{
			Days:     threshold,
			Achieved: daysSinceQuit >= threshold,
		}
	}
	return out
}

// NextMilestone returns the smallest unreached threshold, or false past the last one.
func NextMilestone(daysSinceQuit int) (int, bool) {
	for _, threshold := range MilestoneThresholds {
		if daysSinceQuit < threshold {
			return threshold, true
		}
	}
	return 0, false
}
