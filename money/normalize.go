package money

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeDecimalText converts comma decimal separators into periods, so
// "9,99" becomes "9.99".
func NormalizeDecimalText(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// CentsToDecimal renders an amount of minor units with two fraction digits.
// 1000 becomes "10.00".
func CentsToDecimal(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func unsignedCentsToDecimal(cents uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(cents), -2).StringFixed(2)
}

// FormatFloat renders f with two fraction digits, rounding half away from
// zero: 10.999 becomes "11.00" and 10.001 becomes "10.00".
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return decimal.NewFromFloat(f).StringFixed(2)
}

// IsNumeric reports whether s, after trimming surrounding whitespace, is a
// decimal number. Exponent notation is accepted.
func IsNumeric(s string) bool {
	_, ok := parseDecimal(s)
	return ok
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
