package progress

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

// NoMood is reported as the most common mood when there are no check-ins.
const NoMood = "N/A"

// HealthSnapshot summarises an already windowed list of check-ins.
//
// Moods are tallied case-insensitively; the winner is displayed with the
// casing of its first occurrence and an upper-cased first letter. Ties go to
// the mood seen first in input order.
func HealthSnapshot(checkIns []CravingMood) (domain.HealthSnapshot, error) {
	if len(checkIns) == 0 {
		return domain.HealthSnapshot{MostCommonMood: NoMood}, nil
	}

	type tally struct {
		display string
		count   int
	}

	total := 0
	counts := make(map[string]*tally, len(checkIns))
	order := make([]string, 0, len(checkIns))

	for _, c := range checkIns {
		if c.CravingIntensity < domain.MinCravingIntensity || c.CravingIntensity > domain.MaxCravingIntensity {
			return domain.HealthSnapshot{}, invalidArgument("craving intensity %d outside %d-%d",
				c.CravingIntensity, domain.MinCravingIntensity, domain.MaxCravingIntensity)
		}
		total += c.CravingIntensity

		mood := strings.TrimSpace(c.Mood)
		if mood == "" {
			return domain.HealthSnapshot{}, invalidArgument("mood is required")
		}
		key := strings.ToLower(mood)
		t, ok := counts[key]
		if !ok {
			t = &tally{display: mood}
			counts[key] = t
			order = append(order, key)
		}
		t.count++
	}

	mostCommon := NoMood
	best := 0
	for _, key := range order {
		if t := counts[key]; t.count > best {
			best = t.count
			mostCommon = capitalize(t.display)
		}
	}

	avg := float64(total) / float64(len(checkIns))

	return domain.HealthSnapshot{
		AverageCravingIntensity: roundTo(avg, 1),
		RecentCheckInCount:      len(checkIns),
		MostCommonMood:          mostCommon,
	}, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// roundTo rounds half away from zero.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
