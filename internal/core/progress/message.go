package progress

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MotivationalMessage picks the message for the first bucket daysSinceQuit falls in.
func MotivationalMessage(daysSinceQuit, cigarettesAvoided int, moneySaved decimal.Decimal) string {
	switch {
	case daysSinceQuit <= 0:
		return "Start your smoke-free journey today!"
	case daysSinceQuit == 1:
		return "Congratulations on your first smoke-free day!"
	case daysSinceQuit < 7:
		return fmt.Sprintf("Great job! You've been smoke-free for %d %s.", daysSinceQuit, pluralDays(daysSinceQuit))
	case daysSinceQuit < 30:
		return fmt.Sprintf("Amazing progress! %d days smoke-free and you've avoided %d cigarettes.",
			daysSinceQuit, cigarettesAvoided)
	case daysSinceQuit < 90:
		return fmt.Sprintf("Outstanding! You've saved $%s and avoided %d cigarettes.",
			moneySaved.StringFixed(2), cigarettesAvoided)
	case daysSinceQuit < 365:
		return fmt.Sprintf("Incredible! You're %d months smoke-free. Keep it up!", daysSinceQuit/30)
	default:
		return fmt.Sprintf("Fantastic! You've been smoke-free for over a year! You've avoided %d cigarettes and saved $%s.",
			cigarettesAvoided, moneySaved.StringFixed(2))
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
