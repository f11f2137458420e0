// Package progress derives a quitter's progress figures from their quit
// profile, recent check-ins and an injected "now". Everything here is pure:
// no I/O, no clock reads, no shared state.
package progress

import (
	"errors"
	"fmt"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

// ErrInvalidArgument marks a violated precondition. Wrapped errors carry the detail.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// MilestoneThresholds are the day counts every user is measured against, ascending.
var MilestoneThresholds = [...]int{1, 3, 7, 14, 30, 90, 365}

// CravingMood is the slice of a check-in the health snapshot needs.
type CravingMood struct {
	CravingIntensity int
	Mood             string
}

// FromCheckIns projects stored check-ins onto CravingMood, skipping nil entries.
func FromCheckIns(checkIns []*domain.CheckIn) []CravingMood {
	out := make([]CravingMood, 0, len(checkIns))
	for _, c := range checkIns {
		if c == nil {
			continue
		}
		out = append(out, CravingMood{CravingIntensity: c.CravingIntensity, Mood: c.Mood})
	}
	return out
}
