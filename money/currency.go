package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"

	"github.com/hupe1980/sessioncart/core"
)

// Currency is an ISO 4217 currency known to the go-money currency table.
// The zero value is not a valid currency.
type Currency struct {
	Code     string
	Fraction int
}

// ParseCurrency resolves a currency code, ignoring case and surrounding
// whitespace. Unknown codes fail with core.ErrInvalidCurrency.
func ParseCurrency(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return Currency{}, core.NewArgumentError("money.ParseCurrency", code, core.ErrInvalidCurrency)
	}
	c := gomoney.GetCurrency(normalized)
	if c == nil {
		return Currency{}, core.NewArgumentError("money.ParseCurrency", code, core.ErrInvalidCurrency)
	}
	return Currency{Code: c.Code, Fraction: c.Fraction}, nil
}

// String returns the currency code.
func (c Currency) String() string { return c.Code }

// Zero returns a zero amount in c.
func (c Currency) Zero() Amount { return Amount{Currency: c.Code} }

// fractionOf returns the minor unit digits of code, two for unknown codes.
func fractionOf(code string) int {
	if c := gomoney.GetCurrency(code); c != nil {
		return c.Fraction
	}
	return 2
}
