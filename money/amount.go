package money

import (
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/hupe1980/sessioncart/core"
)

// ErrCurrencyMismatch is returned when amounts of different currencies are
// added.
var ErrCurrencyMismatch = gomoney.ErrCurrencyMismatch

// Amount is a money value in integer minor units of its currency.
type Amount struct {
	Minor    int64  `json:"amount"`
	Currency string `json:"currency"`
}

// NewAmount returns minor units of c.
func NewAmount(minor int64, c Currency) Amount {
	return Amount{Minor: minor, Currency: c.Code}
}

// AmountFromDecimal converts a decimal value into minor units of c,
// rounding half away from zero at the currency's fraction digits.
func AmountFromDecimal(d decimal.Decimal, c Currency) Amount {
	minor := d.Shift(int32(c.Fraction)).Round(0).IntPart()
	return Amount{Minor: minor, Currency: c.Code}
}

// ParseAmount parses decimal text (comma or period separator) into an
// amount of c.
func ParseAmount(text string, c Currency) (Amount, error) {
	d, ok := parseDecimal(NormalizeDecimalText(text))
	if !ok {
		return Amount{}, core.NewArgumentError("money.ParseAmount", text, core.ErrInvalidArgument)
	}
	return AmountFromDecimal(d, c), nil
}

// Add returns a + b using integer minor unit addition. Both amounts must
// share one currency.
func (a Amount) Add(b Amount) (Amount, error) {
	sum, err := gomoney.New(a.Minor, a.Currency).Add(gomoney.New(b.Minor, b.Currency))
	if err != nil {
		return Amount{}, fmt.Errorf("add %s %s to %s %s: %w", b, b.Currency, a, a.Currency, err)
	}
	return Amount{Minor: sum.Amount(), Currency: a.Currency}, nil
}

// IsZero reports whether the amount has no minor units.
func (a Amount) IsZero() bool { return a.Minor == 0 }

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.Minor, -int32(fractionOf(a.Currency)))
}

// String renders the major unit value with the currency's fraction digits,
// e.g. "20.00" for 2000 EUR minor units.
func (a Amount) String() string {
	return a.Decimal().StringFixed(int32(fractionOf(a.Currency)))
}

// Display renders the amount with the currency's symbol and separators,
// e.g. "€20.00".
func (a Amount) Display() string {
	return gomoney.New(a.Minor, a.Currency).Display()
}
