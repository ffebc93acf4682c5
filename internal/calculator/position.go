package calculator

import (
	"fmt"
	"math"

	"github.com/Dan9191/crypto-companion/internal/models"
)

// Calculate solves a leveraged position for whichever of target price and
// profit is unknown.
//
// With a close price the profit is the magnitude of the move applied to the
// position size; direction is not consulted, so a losing move reports the
// same profit as a winning one. With a required profit the target price is
// moved up for long and down for short positions.
//
// Calculate does not guard its divisions: a zero open price or position size
// produces Inf or NaN. Run ValidatePosition first.
func Calculate(in models.PositionInput) *models.PositionResult {
	totalPositionSize := in.Investment * in.Leverage

	var targetPrice, expectedProfit, changePercent float64
	if in.ClosePrice != nil {
		priceChange := math.Abs(*in.ClosePrice - in.OpenPrice)
		changePercent = priceChange / in.OpenPrice
		expectedProfit = changePercent * totalPositionSize
		targetPrice = *in.ClosePrice
	} else {
		var requiredProfit float64
		if in.RequiredProfit != nil {
			requiredProfit = *in.RequiredProfit
		}
		changePercent = requiredProfit / totalPositionSize
		if in.Direction == models.Long {
			targetPrice = in.OpenPrice * (1 + changePercent)
		} else {
			targetPrice = in.OpenPrice * (1 - changePercent)
		}
		expectedProfit = requiredProfit
	}

	return &models.PositionResult{
		TargetPrice:        targetPrice,
		ExpectedProfit:     expectedProfit,
		TotalPositionSize:  totalPositionSize,
		PriceChangePercent: changePercent,
		Investment:         in.Investment,
		Leverage:           in.Leverage,
		Direction:          in.Direction,
		OpenPrice:          in.OpenPrice,
	}
}

// ValidatePosition checks the form before calculating
func ValidatePosition(in models.PositionInput) error {
	if in.Investment <= 0 {
		return fmt.Errorf("investment must be positive")
	}
	if in.Leverage <= 0 {
		return fmt.Errorf("leverage must be positive")
	}
	if in.OpenPrice <= 0 {
		return fmt.Errorf("open price must be positive")
	}
	if in.Direction != models.Long && in.Direction != models.Short {
		return fmt.Errorf("position type must be %q or %q", models.Long, models.Short)
	}
	if (in.ClosePrice == nil) == (in.RequiredProfit == nil) {
		return fmt.Errorf("exactly one of close price and required profit is required")
	}
	if in.ClosePrice != nil && *in.ClosePrice <= 0 {
		return fmt.Errorf("close price must be positive")
	}
	return nil
}
