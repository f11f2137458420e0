package progress

import (
	"time"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

const secondsPerDay = 24 * 60 * 60

// DaysSinceQuit counts whole UTC calendar days from quitDate to now. A quit
// date in the future yields 0.
func DaysSinceQuit(quitDate, now time.Time) (int, error) {
	if quitDate.IsZero() {
		return 0, invalidArgument("quit date is required")
	}
	if now.IsZero() {
		return 0, invalidArgument("now is required")
	}

	from := domain.TruncateToDay(quitDate)
	to := domain.TruncateToDay(now)
	if !to.After(from) {
		return 0, nil
	}

	// Both ends sit on UTC midnight, so the difference is an exact multiple.
	return int((to.Unix() - from.Unix()) / secondsPerDay), nil
}
