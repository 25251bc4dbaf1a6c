package cart

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hupe1980/sessioncart/core"
)

// ValueKind tags the scalar held by a Value.
type ValueKind int

const (
	ValueInvalid ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
)

// Value is a custom item field: a string, a number or a boolean.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// StringValue returns a string field value.
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

// NumberValue returns a numeric field value.
func NumberValue(f float64) Value { return Value{kind: ValueNumber, num: f} }

// BoolValue returns a boolean field value.
func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

// ValueOf converts a Go scalar into a Value. Anything other than strings,
// booleans and numbers fails with core.ErrInvalidFieldsArgument.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		if x.kind == ValueInvalid {
			break
		}
		return x, nil
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case int:
		return NumberValue(float64(x)), nil
	case int8:
		return NumberValue(float64(x)), nil
	case int16:
		return NumberValue(float64(x)), nil
	case int32:
		return NumberValue(float64(x)), nil
	case int64:
		return NumberValue(float64(x)), nil
	case uint:
		return NumberValue(float64(x)), nil
	case uint8:
		return NumberValue(float64(x)), nil
	case uint16:
		return NumberValue(float64(x)), nil
	case uint32:
		return NumberValue(float64(x)), nil
	case uint64:
		return NumberValue(float64(x)), nil
	case float32:
		return NumberValue(float64(x)), nil
	case float64:
		return NumberValue(x), nil
	case json.Number:
		f, err := x.Float64()
		if err == nil {
			return NumberValue(f), nil
		}
	}
	return Value{}, core.NewArgumentError("cart.ValueOf", v, core.ErrInvalidFieldsArgument)
}

// Kind returns the scalar tag.
func (v Value) Kind() ValueKind { return v.kind }

// AsString returns the string of a string value.
func (v Value) AsString() (string, bool) { return v.str, v.kind == ValueString }

// AsNumber returns the number of a numeric value.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == ValueNumber }

// AsBool returns the boolean of a boolean value.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == ValueBool }

// Interface returns the held scalar as string, float64 or bool.
func (v Value) Interface() any {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return v.num
	case ValueBool:
		return v.b
	default:
		return nil
	}
}

// String formats the held scalar.
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// MarshalJSON writes the plain JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON reads a plain JSON scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = Value{}
		return nil
	}
	out, err := ValueOf(raw)
	if err != nil {
		return fmt.Errorf("decode field value %s: %w", data, err)
	}
	*v = out
	return nil
}
