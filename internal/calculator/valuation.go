package calculator

import "github.com/Dan9191/crypto-companion/internal/models"

// TotalValue sums price times quantity over the selected holdings
func TotalValue(holdings []models.Holding) float64 {
	var total float64
	for _, h := range holdings {
		if h.IsSelected {
			total += h.Price * h.Quantity
		}
	}
	return total
}

// InBitcoin expresses a USD total in BTC. A missing or zero bitcoin price
// counts as 1.
func InBitcoin(totalUSD, btcPrice float64) float64 {
	if btcPrice == 0 {
		btcPrice = 1
	}
	return totalUSD / btcPrice
}
