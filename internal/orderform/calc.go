package orderform

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// gaugeFactor converts film gauge to thickness.
const gaugeFactor = 3300

const zeroWeight = "0.000"

// parseNumber reads a cell value as a float. Blank, malformed and
// non-finite values read as 0.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// exactDigits is enough fraction digits to write any float64 exactly.
const exactDigits = 1074

// formatFixed3 rounds the exact binary value of v to three places, ties
// away from zero.
func formatFixed3(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	if err != nil {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	return d.Round(3).StringFixed(3)
}

// RequiredWeight derives the film weight for a row. Any non-positive input
// yields "0.000".
func RequiredWeight(width, length, gauge, pieces string) string {
	w := parseNumber(width)
	l := parseNumber(length)
	g := parseNumber(gauge)
	p := parseNumber(pieces)
	if w <= 0 || l <= 0 || g <= 0 || p <= 0 {
		return zeroWeight
	}
	result := (w * l) / (g / gaugeFactor) / 1000 * p
	return formatFixed3(result)
}

// AggregateTotals sums pieces and weight over the rows. Pieces are summed as
// floats and not rounded.
func AggregateTotals(items []LineItem) (float64, string) {
	var pieces, weight float64
	for _, it := range items {
		pieces += parseNumber(it.Pieces)
		weight += parseNumber(it.Weight)
	}
	return pieces, formatFixed3(weight)
}
