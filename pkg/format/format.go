// Package format renders market values for display.
//
// Precision rules:
//   - prices at or above TinyPriceThreshold use 7 fixed decimals;
//   - smaller non-zero prices are expanded from their scientific notation to
//     TinyPriceSignificantDigits significant digits, so 0.00001234 renders as
//     0.0000123400;
//   - zero and non-finite prices render as 0.0000000.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	TinyPriceThreshold         = 0.0001
	TinyPriceSignificantDigits = 6

	priceDecimals = 7
)

var (
	million = decimal.NewFromInt(1_000_000)
	billion = decimal.NewFromInt(1_000_000_000)
	hundred = decimal.NewFromInt(100)
)

func Price(p float64) string {
	if p == 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return decimal.Zero.StringFixed(priceDecimals)
	}

	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}

	if p >= TinyPriceThreshold {
		return sign + decimal.NewFromFloat(p).StringFixed(priceDecimals)
	}

	places := TinyPriceSignificantDigits - 1 - exponent(p)
	return sign + decimal.NewFromFloat(p).StringFixed(int32(places))
}

// exponent returns the base-10 exponent of p as printed in scientific
// notation with TinyPriceSignificantDigits digits.
func exponent(p float64) int {
	s := strconv.FormatFloat(p, 'e', TinyPriceSignificantDigits-1, 64)
	i := strings.IndexByte(s, 'e')
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return int(math.Floor(math.Log10(p)))
	}
	return exp
}

// Compact renders a dollar amount in millions, or billions from 1e9 up.
func Compact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	d := decimal.NewFromFloat(v)
	if d.Abs().GreaterThanOrEqual(billion) {
		return "$" + d.Div(billion).StringFixed(2) + "B"
	}
	return "$" + d.Div(million).StringFixed(2) + "M"
}

// Percent renders a signed percentage with two decimals.
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	s := decimal.NewFromFloat(v).StringFixed(2)
	if v >= 0 {
		s = "+" + s
	}
	return s + "%"
}

// Rate renders a static lending rate; zero means no rate is offered.
func Rate(r float64) string {
	if r == 0 {
		return "-"
	}
	return decimal.NewFromFloat(r).String() + "%"
}

// Ratio renders part/whole as a percentage with two decimals. It returns an
// empty string when whole is zero.
func Ratio(part, whole float64) string {
	if whole == 0 || math.IsNaN(part) || math.IsNaN(whole) || math.IsInf(part, 0) || math.IsInf(whole, 0) {
		return ""
	}
	r := decimal.NewFromFloat(part).Div(decimal.NewFromFloat(whole)).Mul(hundred)
	return r.StringFixed(2) + "%"
}
