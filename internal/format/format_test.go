package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0.00"},
		{"one", 1, "1.00"},
		{"large", 50000, "50000.00"},
		{"rounds to cents", 1234.567, "1234.57"},
		{"half", 0.5, "0.5"},
		{"two leading zeros stay", 0.001234, "0.001234"},
		{"eight decimals", 0.12345678912, "0.12345679"},
		{"three zeros compact", 0.000456789, "0.0x3456789"},
		{"four zeros compact", 0.00001234, "0.0x4123400"},
		{"five zeros compact", 0.0000012345678, "0.0x5123457"},
		{"below eight decimals", 0.000000001, "0.0x8"},
		{"rounding carries into zero run", 0.000099995, "0.0x4999950"},
		{"not a number", math.NaN(), "0.00"},
		{"infinite", math.Inf(1), "∞"},
		{"negative infinite", math.Inf(-1), "-∞"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.in))
		})
	}
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "$64000.10", Price(64000.1))
	assert.Equal(t, "$0.0x4123400", Price(0.00001234))
	assert.Equal(t, "$0.25", Price(0.25))
}

func TestUSD(t *testing.T) {
	assert.Equal(t, "$1,234.50", USD(1234.5))
	assert.Equal(t, "$0.00", USD(0))
	assert.Equal(t, "$1,234.56", USD(1234.56))
	assert.Equal(t, "$0.00", USD(math.Inf(1)))
}

func TestGrouped(t *testing.T) {
	assert.Equal(t, "1,234.50", Grouped(1234.5))
	assert.Equal(t, "101.00", Grouped(101))
}
