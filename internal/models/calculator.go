package models

// CompoundingInput represents the daily compounding calculator form
type CompoundingInput struct {
	StartingAmount float64 `json:"starting_amount"`
	TargetAmount   float64 `json:"target_amount"`
	DailyRate      float64 `json:"daily_rate"` // percent, may be zero or negative
}

// CompoundingResult represents a compounding projection
type CompoundingResult struct {
	StartingAmount float64        `json:"starting_amount"`
	TargetAmount   float64        `json:"target_amount"`
	DailyRate      float64        `json:"daily_rate"`
	Days           int            `json:"days"`
	FinalAmount    float64        `json:"final_amount"`
	DailyBreakdown []DailyBalance `json:"daily_breakdown"`
}

// Reached reports whether the projection got to the target before the period ceiling
func (r *CompoundingResult) Reached() bool {
	return r.FinalAmount >= r.TargetAmount
}

// DailyBalance represents the projected amount at the end of a day
type DailyBalance struct {
	Day    int     `json:"day"`
	Amount float64 `json:"amount"`
}

// Direction of a leveraged position
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// PositionInput represents the position calculator form.
// Exactly one of ClosePrice and RequiredProfit is set.
type PositionInput struct {
	Investment     float64   `json:"investment"`
	Leverage       float64   `json:"leverage"`
	Direction      Direction `json:"position_type"`
	OpenPrice      float64   `json:"open_price"`
	ClosePrice     *float64  `json:"close_price,omitempty"`
	RequiredProfit *float64  `json:"required_profit,omitempty"`
}

// PositionResult represents the position calculator output
type PositionResult struct {
	TargetPrice        float64   `json:"target_price"`
	ExpectedProfit     float64   `json:"expected_profit"`
	TotalPositionSize  float64   `json:"total_position_size"`
	PriceChangePercent float64   `json:"price_change_percent"`
	Investment         float64   `json:"investment"`
	Leverage           float64   `json:"leverage"`
	Direction          Direction `json:"position_type"`
	OpenPrice          float64   `json:"open_price"`
}
