package money

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Kind tags the representation a Price currently holds.
type Kind int

const (
	// KindUnset is the zero Price.
	KindUnset Kind = iota
	// KindText holds decimal text as given, after separator normalization.
	KindText
	// KindFloat is the canonical form without a currency.
	KindFloat
	// KindAmount is the canonical form with a currency.
	KindAmount
)

// String returns the kind name used in persisted state.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFloat:
		return "float"
	case KindAmount:
		return "amount"
	default:
		return "unset"
	}
}

// Price is a tagged price value. Raw input is kept as text or float until a
// cart normalizes it into a float or an Amount.
type Price struct {
	kind   Kind
	text   string
	float  float64
	amount Amount
}

// NewTextPrice returns a price holding decimal text verbatim.
func NewTextPrice(s string) Price { return Price{kind: KindText, text: s} }

// NewFloatPrice returns a float price.
func NewFloatPrice(f float64) Price { return Price{kind: KindFloat, float: f} }

// NewAmountPrice returns a currency amount price.
func NewAmountPrice(a Amount) Price { return Price{kind: KindAmount, amount: a} }

// ParsePrice converts raw input into a Price:
//   - strings have comma separators replaced by periods
//   - integers are minor units and become text with two fraction digits
//   - floats are kept as floats
//   - decimals become their exact text, amounts and prices are kept
//
// Any other value keeps its fmt text, which normalization coerces to zero.
func ParsePrice(v any) Price {
	switch p := v.(type) {
	case nil:
		return Price{}
	case Price:
		return p
	case *Price:
		if p == nil {
			return Price{}
		}
		return *p
	case string:
		return NewTextPrice(NormalizeDecimalText(p))
	case json.Number:
		return NewTextPrice(NormalizeDecimalText(p.String()))
	case int:
		return NewTextPrice(CentsToDecimal(int64(p)))
	case int8:
		return NewTextPrice(CentsToDecimal(int64(p)))
	case int16:
		return NewTextPrice(CentsToDecimal(int64(p)))
	case int32:
		return NewTextPrice(CentsToDecimal(int64(p)))
	case int64:
		return NewTextPrice(CentsToDecimal(p))
	case uint:
		return NewTextPrice(unsignedCentsToDecimal(uint64(p)))
	case uint8:
		return NewTextPrice(unsignedCentsToDecimal(uint64(p)))
	case uint16:
		return NewTextPrice(unsignedCentsToDecimal(uint64(p)))
	case uint32:
		return NewTextPrice(unsignedCentsToDecimal(uint64(p)))
	case uint64:
		return NewTextPrice(unsignedCentsToDecimal(p))
	case float32:
		return NewFloatPrice(float64(p))
	case float64:
		return NewFloatPrice(p)
	case decimal.Decimal:
		return NewTextPrice(p.String())
	case Amount:
		return NewAmountPrice(p)
	default:
		return NewTextPrice(fmt.Sprint(v))
	}
}

// Kind returns the representation tag.
func (p Price) Kind() Kind { return p.kind }

// IsSet reports whether the price holds any value.
func (p Price) IsSet() bool { return p.kind != KindUnset }

// IsEmpty reports whether the price is unset or empty text.
func (p Price) IsEmpty() bool {
	return p.kind == KindUnset || (p.kind == KindText && p.text == "")
}

// Text returns the raw decimal text of a text price.
func (p Price) Text() (string, bool) { return p.text, p.kind == KindText }

// Float returns the value of a float price.
func (p Price) Float() (float64, bool) { return p.float, p.kind == KindFloat }

// Amount returns the value of an amount price.
func (p Price) Amount() (Amount, bool) { return p.amount, p.kind == KindAmount }

// Decimal returns the numeric value of the price in major units. It is false
// for unset prices and non-numeric text.
func (p Price) Decimal() (decimal.Decimal, bool) {
	switch p.kind {
	case KindText:
		return parseDecimal(p.text)
	case KindFloat:
		if math.IsNaN(p.float) || math.IsInf(p.float, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(p.float), true
	case KindAmount:
		return p.amount.Decimal(), true
	default:
		return decimal.Zero, false
	}
}

// String renders the price for display. Text is returned as stored, floats
// and amounts with their fraction digits.
func (p Price) String() string {
	switch p.kind {
	case KindText:
		return p.text
	case KindFloat:
		return FormatFloat(p.float)
	case KindAmount:
		return p.amount.String()
	default:
		return ""
	}
}

// Normalize returns the canonical form of p. Non-numeric, non-finite and
// unset prices become zero. Without a currency the result is a float; with one it is an
// Amount in minor units of cur. An amount of another currency keeps its
// decimal value; no exchange rate is applied.
func (p Price) Normalize(cur *Currency) (Price, error) {
	if cur == nil {
		d, ok := p.Decimal()
		if !ok {
			return NewFloatPrice(0), nil
		}
		if p.kind == KindFloat {
			return p, nil
		}
		f, _ := d.Float64()
		return NewFloatPrice(f), nil
	}
	if _, err := ParseCurrency(cur.Code); err != nil {
		return Price{}, err
	}
	if p.kind == KindAmount && p.amount.Currency == cur.Code {
		return p, nil
	}
	d, ok := p.Decimal()
	if !ok {
		d = decimal.Zero
	}
	return NewAmountPrice(AmountFromDecimal(d, *cur)), nil
}

type priceJSON struct {
	Kind     string   `json:"kind"`
	Text     *string  `json:"text,omitempty"`
	Float    *float64 `json:"float,omitempty"`
	Amount   *int64   `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// MarshalJSON encodes the price with its kind tag so every representation
// round-trips exactly.
func (p Price) MarshalJSON() ([]byte, error) {
	out := priceJSON{Kind: p.kind.String()}
	switch p.kind {
	case KindText:
		out.Text = &p.text
	case KindFloat:
		out.Float = &p.float
	case KindAmount:
		out.Amount = &p.amount.Minor
		out.Currency = p.amount.Currency
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (p *Price) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Price{}
		return nil
	}
	var in priceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "text":
		*p = NewTextPrice(deref(in.Text))
	case "float":
		*p = NewFloatPrice(deref(in.Float))
	case "amount":
		*p = NewAmountPrice(Amount{Minor: deref(in.Amount), Currency: in.Currency})
	case "unset", "":
		*p = Price{}
	default:
		return fmt.Errorf("unknown price kind %q", in.Kind)
	}
	return nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
