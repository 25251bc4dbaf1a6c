package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LooseEqual compares two identities the way loosely typed callers expect:
// when both look numeric they are compared as numbers ("01" equals "1",
// "1.0" equals "1"), otherwise as exact strings.
func LooseEqual(a, b string) bool {
	if a == b {
		return true
	}
	da, errA := decimal.NewFromString(strings.TrimSpace(a))
	if errA != nil {
		return false
	}
	db, errB := decimal.NewFromString(strings.TrimSpace(b))
	if errB != nil {
		return false
	}
	return da.Equal(db)
}
