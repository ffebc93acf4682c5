// Package calculator holds the compounding projector, the leveraged position
// calculator and portfolio valuation. Everything here is pure arithmetic.
package calculator

import (
	"fmt"
	"math"

	"github.com/Dan9191/crypto-companion/internal/models"
)

// MaxPeriods caps a projection so that non-converging rates terminate.
const MaxPeriods = 365

// Project compounds start by ratePercent per period until it reaches target
// or MaxPeriods periods have run. A result that hit the ceiling has
// FinalAmount below TargetAmount; no error is reported for it. The projection
// also stops before a period whose amount would overflow float64.
func Project(start, target, ratePercent float64) *models.CompoundingResult {
	amount := start
	days := 0
	breakdown := make([]models.DailyBalance, 0)

	for amount < target && days < MaxPeriods {
		next := amount * (1 + ratePercent/100)
		if math.IsInf(next, 0) || math.IsNaN(next) {
			break
		}
		amount = next
		days++
		breakdown = append(breakdown, models.DailyBalance{Day: days, Amount: amount})
	}

	return &models.CompoundingResult{
		StartingAmount: start,
		TargetAmount:   target,
		DailyRate:      ratePercent,
		Days:           days,
		FinalAmount:    amount,
		DailyBreakdown: breakdown,
	}
}

// ValidateCompounding checks the form before projecting
func ValidateCompounding(in models.CompoundingInput) error {
	for _, v := range []float64{in.StartingAmount, in.TargetAmount, in.DailyRate} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("amounts and rate must be finite numbers")
		}
	}
	if in.StartingAmount <= 0 {
		return fmt.Errorf("starting amount must be positive")
	}
	if in.TargetAmount <= 0 {
		return fmt.Errorf("target amount must be positive")
	}
	return nil
}
