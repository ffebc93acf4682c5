// Package format renders prices and amounts the way the client displays them.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	smallDecimals      = 8
	compactAfterZeros  = 2
	significantDigits  = 6
	compactMarkerStart = "0x"
)

// Amount renders a non-negative amount. Values of at least 1 get two
// decimals. Smaller values get up to eight decimals; when more than two
// zeros follow the decimal point they collapse into a "0x{N}" marker and
// the next six significant digits, so 0.00000123456 renders as
// "0.0x5123456". NaN renders as "0.00" and infinities as "∞".
func Amount(v float64) string {
	switch {
	case v == 0 || math.IsNaN(v):
		return "0.00"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	d := decimal.NewFromFloat(v)
	if v >= 1 || v <= -1 {
		return d.StringFixed(2)
	}

	fixed := d.StringFixed(smallDecimals)
	whole, frac, _ := strings.Cut(fixed, ".")
	zeros := leadingZeros(frac)
	if zeros == smallDecimals {
		return whole + "." + compactMarkerStart + strconv.Itoa(zeros)
	}
	if zeros <= compactAfterZeros {
		return strings.TrimRight(strings.TrimRight(fixed, "0"), ".")
	}

	// Rounding to eight decimals can carry into the zero run, so the zeros
	// are recounted on the longer rounding the digits come from.
	digits := fraction(d, zeros+significantDigits)
	for n := leadingZeros(digits); n > zeros; n = leadingZeros(digits) {
		zeros = n
		digits = fraction(d, zeros+significantDigits)
	}
	return whole + "." + compactMarkerStart + strconv.Itoa(zeros) + digits[zeros:]
}

func fraction(d decimal.Decimal, places int) string {
	_, frac, _ := strings.Cut(d.StringFixed(int32(places)), ".")
	return frac
}

func leadingZeros(s string) int {
	return len(s) - len(strings.TrimLeft(s, "0"))
}

// Price renders a unit price in dollars
func Price(v float64) string {
	return "$" + Amount(v)
}

// USD renders a portfolio total, for example "$1,234.56". Non-finite totals
// render as "$0.00".
func USD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	cents := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// Grouped renders a value with thousands separators and two decimals,
// for example "1,234.50"
func Grouped(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
