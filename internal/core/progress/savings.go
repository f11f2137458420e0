package progress

import (
	"math"

	"github.com/shopspring/decimal"
)

// CigarettesAvoided is cigarettesPerDay × daysSinceQuit.
func CigarettesAvoided(cigarettesPerDay, daysSinceQuit int) (int, error) {
	if cigarettesPerDay < 0 {
		return 0, invalidArgument("cigarettesPerDay cannot be negative (got %d)", cigarettesPerDay)
	}
	if daysSinceQuit < 0 {
		return 0, invalidArgument("daysSinceQuit cannot be negative (got %d)", daysSinceQuit)
	}
	if daysSinceQuit > 0 && cigarettesPerDay > math.MaxInt/daysSinceQuit {
		return 0, invalidArgument("cigarettesPerDay %d over %d days overflows", cigarettesPerDay, daysSinceQuit)
	}
	return cigarettesPerDay * daysSinceQuit, nil
}

// MoneySaved is (cigarettesPerDay / cigarettesPerPack) × costPerPack × daysSinceQuit,
// rounded half away from zero to cents.
func MoneySaved(cigarettesPerDay, daysSinceQuit int, costPerPack float64, cigarettesPerPack int) (decimal.Decimal, error) {
	if cigarettesPerPack <= 0 {
		return decimal.Zero, invalidArgument("cigarettesPerPack must be positive (got %d)", cigarettesPerPack)
	}
	if cigarettesPerDay < 0 {
		return decimal.Zero, invalidArgument("cigarettesPerDay cannot be negative (got %d)", cigarettesPerDay)
	}
	if daysSinceQuit < 0 {
		return decimal.Zero, invalidArgument("daysSinceQuit cannot be negative (got %d)", daysSinceQuit)
	}
	if math.IsNaN(costPerPack) || math.IsInf(costPerPack, 0) {
		return decimal.Zero, invalidArgument("costPerPack must be a finite number")
	}
	if costPerPack < 0 {
		return decimal.Zero, invalidArgument("costPerPack cannot be negative (got %v)", costPerPack)
	}

	// Divide last so the only inexact step is the final one.
	spent := decimal.NewFromInt(int64(cigarettesPerDay)).
		Mul(decimal.NewFromFloat(costPerPack)).
		Mul(decimal.NewFromInt(int64(daysSinceQuit)))

	return spent.DivRound(decimal.NewFromInt(int64(cigarettesPerPack)), 2), nil
}
