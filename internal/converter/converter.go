// Package converter converts amounts between assets using their quotes in
// the reference currency.
package converter

import (
	"math"
	"regexp"
	"strings"

	"github.com/Dan9191/crypto-companion/internal/models"
)

var lettersOnly = regexp.MustCompile(`^[a-zA-Z]+$`)

// Convert expresses amount units of from in units of to
func Convert(amount float64, from, to models.Quote) float64 {
	return amount * from.Price / to.Price
}

// Result converts when both quotes are known and usably priced and returns
// 0 otherwise. A quote without a price decodes to 0.
func Result(amount float64, from, to *models.Quote) float64 {
	if from == nil || to == nil {
		return 0
	}
	if !finite(amount) || !finite(from.Price) || !finite(to.Price) || to.Price == 0 {
		return 0
	}
	return Convert(amount, *from, *to)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Tradable keeps the quotes whose ticker is made of ASCII letters only and
// upper-cases their symbols.
func Tradable(quotes []models.Quote) []models.Quote {
	out := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if !lettersOnly.MatchString(q.Symbol) {
			continue
		}
		q.Symbol = strings.ToUpper(q.Symbol)
		out = append(out, q)
	}
	return out
}

// Search keeps the quotes whose name or symbol contains query, ignoring case.
// An empty query keeps everything.
func Search(quotes []models.Quote, query string) []models.Quote {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return quotes
	}
	out := make([]models.Quote, 0)
	for _, q := range quotes {
		if strings.Contains(strings.ToLower(q.Name), query) || strings.Contains(strings.ToLower(q.Symbol), query) {
			out = append(out, q)
		}
	}
	return out
}

// Find returns the quote with the given asset id
func Find(quotes []models.Quote, id string) *models.Quote {
	for i := range quotes {
		if quotes[i].ID == id {
			return &quotes[i]
		}
	}
	return nil
}
