package calculator

import (
	"math"
	"testing"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestProject_DoublesInSeventyDays(t *testing.T) {
	result := Project(100, 200, 1)

	assert.Equal(t, 70, result.Days)
	assert.InDelta(t, 200.6763, result.FinalAmount, 0.001)
	require.Len(t, result.DailyBreakdown, 70)
	assert.Equal(t, result.FinalAmount, result.DailyBreakdown[69].Amount)
	assert.True(t, result.Reached())
}

func TestProject_Converges(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		target float64
		rate   float64
	}{
		{"one percent", 100, 200, 1},
		{"five percent to a thousandfold", 1, 1000, 5},
		{"huge rate", 10, 11, 50},
		{"fractional amounts", 0.5, 0.75, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Project(tt.start, tt.target, tt.rate)
			assert.LessOrEqual(t, result.Days, MaxPeriods)
			assert.GreaterOrEqual(t, result.FinalAmount, tt.target)
			assert.Len(t, result.DailyBreakdown, result.Days)
			for i := 1; i < len(result.DailyBreakdown); i++ {
				assert.Greater(t, result.DailyBreakdown[i].Amount, result.DailyBreakdown[i-1].Amount)
				assert.Equal(t, i+1, result.DailyBreakdown[i].Day)
			}
		})
	}
}

func TestProject_CeilingWithoutGrowth(t *testing.T) {
	for _, rate := range []float64{0, -1, -50} {
		result := Project(100, 200, rate)
		assert.Equal(t, MaxPeriods, result.Days, "rate %v", rate)
		assert.Len(t, result.DailyBreakdown, MaxPeriods)
		assert.Less(t, result.FinalAmount, 200.0)
		assert.False(t, result.Reached())
	}
}

func TestProject_CeilingWithSlowGrowth(t *testing.T) {
	result := Project(100, 1000, 0.01)

	assert.Equal(t, MaxPeriods, result.Days)
	assert.Less(t, result.FinalAmount, 1000.0)
	assert.Equal(t, result.DailyBreakdown[MaxPeriods-1].Amount, result.FinalAmount)
}

func TestProject_AlreadyAtTarget(t *testing.T) {
	result := Project(500, 200, 1)

	assert.Equal(t, 0, result.Days)
	assert.Equal(t, 500.0, result.FinalAmount)
	assert.Empty(t, result.DailyBreakdown)
	assert.True(t, result.Reached())
}

func TestProject_StopsBeforeOverflow(t *testing.T) {
	result := Project(1, 1e308, 1e300)

	assert.False(t, math.IsInf(result.FinalAmount, 0))
	assert.False(t, result.Reached())
	assert.Equal(t, 1, result.Days)
	require.Len(t, result.DailyBreakdown, 1)
	assert.InEpsilon(t, 1e298, result.FinalAmount, 1e-9)
}

func TestValidateCompounding(t *testing.T) {
	assert.NoError(t, ValidateCompounding(models.CompoundingInput{StartingAmount: 1, TargetAmount: 2, DailyRate: -3}))
	assert.Error(t, ValidateCompounding(models.CompoundingInput{StartingAmount: math.Inf(1), TargetAmount: 2}))
	assert.Error(t, ValidateCompounding(models.CompoundingInput{StartingAmount: 1, TargetAmount: 2, DailyRate: math.NaN()}))
	assert.Error(t, ValidateCompounding(models.CompoundingInput{StartingAmount: 0, TargetAmount: 2}))
	assert.Error(t, ValidateCompounding(models.CompoundingInput{StartingAmount: 1, TargetAmount: -2}))
}

func TestCalculate_RequiredProfitLong(t *testing.T) {
	result := Calculate(models.PositionInput{
		Investment:     1000,
		Leverage:       10,
		Direction:      models.Long,
		OpenPrice:      100,
		RequiredProfit: ptr(50),
	})

	assert.Equal(t, 10000.0, result.TotalPositionSize)
	assert.InDelta(t, 0.005, result.PriceChangePercent, 1e-12)
	assert.InDelta(t, 100.5, result.TargetPrice, 1e-9)
	assert.Equal(t, 50.0, result.ExpectedProfit)
}

func TestCalculate_RequiredProfitShort(t *testing.T) {
	result := Calculate(models.PositionInput{
		Investment:     1000,
		Leverage:       10,
		Direction:      models.Short,
		OpenPrice:      100,
		RequiredProfit: ptr(50),
	})

	assert.InDelta(t, 99.5, result.TargetPrice, 1e-9)
	assert.Equal(t, 50.0, result.ExpectedProfit)
}

func TestCalculate_ClosePriceIgnoresSign(t *testing.T) {
	base := models.PositionInput{Investment: 500, Leverage: 5, OpenPrice: 100}

	up := base
	up.Direction = models.Long
	up.ClosePrice = ptr(110)
	down := base
	down.Direction = models.Short
	down.ClosePrice = ptr(90)
	losingLong := base
	losingLong.Direction = models.Long
	losingLong.ClosePrice = ptr(90)

	upResult := Calculate(up)
	assert.InDelta(t, 250.0, upResult.ExpectedProfit, 1e-9)
	assert.Equal(t, 110.0, upResult.TargetPrice)
	assert.InDelta(t, upResult.ExpectedProfit, Calculate(down).ExpectedProfit, 1e-9)
	assert.InDelta(t, upResult.ExpectedProfit, Calculate(losingLong).ExpectedProfit, 1e-9)
}

func TestCalculate_RoundTrip(t *testing.T) {
	for _, dir := range []models.Direction{models.Long, models.Short} {
		for _, profit := range []float64{1, 50, 1234.5} {
			in := models.PositionInput{
				Investment:     750,
				Leverage:       20,
				Direction:      dir,
				OpenPrice:      43210.5,
				RequiredProfit: ptr(profit),
			}
			target := Calculate(in).TargetPrice

			back := Calculate(models.PositionInput{
				Investment: in.Investment,
				Leverage:   in.Leverage,
				Direction:  dir,
				OpenPrice:  in.OpenPrice,
				ClosePrice: ptr(target),
			})
			assert.InDelta(t, profit, back.ExpectedProfit, 1e-6, "%s %v", dir, profit)
		}
	}
}

func TestCalculate_ZeroOpenPriceIsNotFinite(t *testing.T) {
	result := Calculate(models.PositionInput{Investment: 1, Leverage: 1, OpenPrice: 0, ClosePrice: ptr(10)})
	assert.True(t, math.IsInf(result.ExpectedProfit, 1))

	result = Calculate(models.PositionInput{Investment: 0, Leverage: 1, OpenPrice: 10, Direction: models.Long, RequiredProfit: ptr(0)})
	assert.True(t, math.IsNaN(result.TargetPrice))
}

func TestValidatePosition(t *testing.T) {
	valid := models.PositionInput{Investment: 1, Leverage: 2, Direction: models.Long, OpenPrice: 3, ClosePrice: ptr(4)}
	require.NoError(t, ValidatePosition(valid))

	tests := []struct {
		name   string
		mutate func(in *models.PositionInput)
	}{
		{"no investment", func(in *models.PositionInput) { in.Investment = 0 }},
		{"no leverage", func(in *models.PositionInput) { in.Leverage = -1 }},
		{"no open price", func(in *models.PositionInput) { in.OpenPrice = 0 }},
		{"unknown direction", func(in *models.PositionInput) { in.Direction = "sideways" }},
		{"both modes", func(in *models.PositionInput) { in.RequiredProfit = ptr(10) }},
		{"no mode", func(in *models.PositionInput) { in.ClosePrice = nil }},
		{"zero close price", func(in *models.PositionInput) { in.ClosePrice = ptr(0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.Error(t, ValidatePosition(in))
		})
	}
}

func TestTotalValue(t *testing.T) {
	holdings := []models.Holding{
		{CoinID: "bitcoin", Price: 50000, Quantity: 0.5, IsSelected: true},
		{CoinID: "ethereum", Price: 3000, Quantity: 2, IsSelected: false},
		{CoinID: "tether", Price: 1, Quantity: 100, IsSelected: true},
	}

	assert.Equal(t, 25100.0, TotalValue(holdings))
	assert.Zero(t, TotalValue(nil))
}

func TestInBitcoin(t *testing.T) {
	assert.Equal(t, 0.5, InBitcoin(25000, 50000))
	assert.Equal(t, 100.0, InBitcoin(100, 0))
}
