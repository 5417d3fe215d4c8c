package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0.0000000"},
		{"nan", math.NaN(), "0.0000000"},
		{"inf", math.Inf(1), "0.0000000"},
		{"regular", 10.5, "10.5000000"},
		{"rounded to seven places", 1.23456789, "1.2345679"},
		{"at threshold", 0.0001, "0.0001000"},
		{"tiny", 0.00001234, "0.0000123400"},
		{"very tiny", 1.5e-9, "0.00000000150000"},
		{"tiny rounding up a digit", 0.00009999999, "0.000100000"},
		{"negative tiny", -0.00002, "-0.0000200000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.in))
		})
	}
}

func TestPrice_Pure(t *testing.T) {
	assert.Equal(t, Price(0.00000123), Price(0.00000123))
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "$0.00M", Compact(0))
	assert.Equal(t, "$950.00M", Compact(950_000_000))
	assert.Equal(t, "$1.50M", Compact(1_500_000))
	assert.Equal(t, "$2.10B", Compact(2_100_000_000))
	assert.Equal(t, "$0.00M", Compact(math.NaN()))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "+4.50%", Percent(4.5))
	assert.Equal(t, "-3.20%", Percent(-3.2))
	assert.Equal(t, "+0.00%", Percent(0))
	assert.Equal(t, "+0.00%", Percent(math.Inf(-1)))
}

func TestRate(t *testing.T) {
	assert.Equal(t, "4.2%", Rate(4.2))
	assert.Equal(t, "1.85%", Rate(1.85))
	assert.Equal(t, "-", Rate(0))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, "23.81%", Ratio(500_000_000, 2_100_000_000))
	assert.Equal(t, "100.00%", Ratio(5, 5))
	assert.Equal(t, "", Ratio(1, 0))
}
