package models

import "time"

// Holding represents a coin in a user's portfolio
type Holding struct {
	UserID     string    `json:"-"`
	CoinID     string    `json:"coin_id"`
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   float64   `json:"quantity"`
	Value      float64   `json:"value"`
	IsSelected bool      `json:"is_selected"`
	CreatedAt  time.Time `json:"created_at"`
}

// Revalue sets the price and recomputes the value
func (h *Holding) Revalue(price float64) {
	h.Price = price
	h.Value = price * h.Quantity
}

// Quote is the current price of one asset in the reference currency
type Quote struct {
	ID     string  `json:"id"`
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"current_price"`
	Image  string  `json:"image,omitempty"`
}

// Dashboard summarizes the selected holdings of a user
type Dashboard struct {
	TotalUSD     float64 `json:"total_usd"`
	TotalBTC     float64 `json:"total_btc"`
	TotalDisplay string  `json:"total_display"`
	Holdings     int     `json:"holdings"`
}

// Portfolio is a user's holdings valued at current prices
type Portfolio struct {
	Holdings     []Holding `json:"holdings"`
	TotalValue   float64   `json:"total_value"` // selected holdings only
	TotalDisplay string    `json:"total_display"`
}

// Conversion is the result of converting an amount between two assets
type Conversion struct {
	Amount    string  `json:"amount"`
	From      Quote   `json:"from"`
	To        Quote   `json:"to"`
	Converted float64 `json:"converted"`
	Display   string  `json:"display"`
}
