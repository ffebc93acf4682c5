package converter

import (
	"strconv"
	"strings"

	"github.com/Dan9191/crypto-companion/internal/format"
	"github.com/Dan9191/crypto-companion/internal/models"
)

// Default pair selected once the asset list is loaded
const (
	DefaultFrom = "bitcoin"
	DefaultTo   = "tether"
)

// KeyClear resets the amount on the keypad
const KeyClear = "clear"

// View is the state behind the converter screen. Every mutation recomputes
// the converted amount, so Converted is always current.
type View struct {
	assets    []models.Quote
	filtered  []models.Quote
	query     string
	amount    string
	from      *models.Quote
	to        *models.Quote
	converted float64
}

// NewView starts a converter with the amount "1" and no assets loaded
func NewView() *View {
	return &View{amount: "1"}
}

// Load replaces the asset list with its tradable subset and selects the
// default pair when both assets are present.
func (v *View) Load(quotes []models.Quote) {
	v.assets = Tradable(quotes)
	v.filtered = Search(v.assets, v.query)
	from := Find(v.assets, DefaultFrom)
	to := Find(v.assets, DefaultTo)
	if from != nil && to != nil {
		v.from, v.to = from, to
	}
	v.recompute()
}

// Filter narrows the selectable assets
func (v *View) Filter(query string) []models.Quote {
	v.query = query
	v.filtered = Search(v.assets, query)
	return v.filtered
}

// Assets returns the currently selectable assets
func (v *View) Assets() []models.Quote {
	return v.filtered
}

// SelectFrom picks the source asset by id and clears the search
func (v *View) SelectFrom(id string) bool {
	q := Find(v.assets, id)
	if q == nil {
		return false
	}
	v.from = q
	v.Filter("")
	v.recompute()
	return true
}

// SelectTo picks the destination asset by id and clears the search
func (v *View) SelectTo(id string) bool {
	q := Find(v.assets, id)
	if q == nil {
		return false
	}
	v.to = q
	v.Filter("")
	v.recompute()
	return true
}

// Swap exchanges source and destination when both are selected
func (v *View) Swap() {
	if v.from == nil || v.to == nil {
		return
	}
	v.from, v.to = v.to, v.from
	v.recompute()
}

// SetAmount replaces the amount text
func (v *View) SetAmount(amount string) {
	v.amount = amount
	v.recompute()
}

// Press applies one keypad key: a digit, "." or KeyClear
func (v *View) Press(key string) {
	switch {
	case key == KeyClear:
		v.amount = "0"
	case key == ".":
		if !strings.Contains(v.amount, ".") {
			v.amount += "."
		}
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		if v.amount == "0" {
			v.amount = key
		} else {
			v.amount += key
		}
	default:
		return
	}
	v.recompute()
}

// Amount returns the amount text as typed
func (v *View) Amount() string { return v.amount }

// From returns the source asset, nil until one is selected
func (v *View) From() *models.Quote { return v.from }

// To returns the destination asset, nil until one is selected
func (v *View) To() *models.Quote { return v.to }

// Converted returns the converted amount
func (v *View) Converted() float64 { return v.converted }

// Display returns the converted amount as rendered on screen
func (v *View) Display() string { return format.Amount(v.converted) }

func (v *View) recompute() {
	if v.from == nil || v.to == nil {
		return
	}
	// ParseFloat accepts "NaN" and "Inf"; both count as zero like unparsable text
	amt, err := strconv.ParseFloat(v.amount, 64)
	if err != nil || !finite(amt) {
		amt = 0
	}
	v.converted = Result(amt, v.from, v.to)
}
