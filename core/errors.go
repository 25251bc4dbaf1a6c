package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a cart operation receives a value
	// that is neither an item nor a list of items.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingIdentity is returned when an item without identity is added
	// or a cart identity is set to a blank string.
	ErrMissingIdentity = errors.New("missing identity")

	// ErrDuplicateIdentity signals a broken invariant: more than one stored
	// item shares one identity.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrInvalidFieldsArgument is returned when custom fields are set from
	// something that is not a string keyed mapping of scalars.
	ErrInvalidFieldsArgument = errors.New("invalid fields argument")

	// ErrInvalidQuantity is returned for non-integer or negative quantities.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidCurrency is returned for currency codes outside ISO 4217.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrItemNotFound is returned by cart lookups that match no item.
	ErrItemNotFound = errors.New("item not found")

	// ErrKeyNotFound is returned by SessionStore.Get for missing keys.
	ErrKeyNotFound = errors.New("session key not found")
)

// ArgumentError reports the operation and the offending value behind one of
// the argument error kinds. It unwraps to the kind.
type ArgumentError struct {
	Op    string
	Value any
	Err   error
}

// NewArgumentError builds an ArgumentError for the given kind.
func NewArgumentError(op string, value any, kind error) *ArgumentError {
	return &ArgumentError{Op: op, Value: value, Err: kind}
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %v, value passed: %s", e.Op, e.Err, describe(e.Value))
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// DuplicateIdentityError names the item identity that matched more than one
// stored item and the cart holding them.
type DuplicateIdentityError struct {
	ItemID string
	CartID string
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("there is more than one item with the id %q on the cart with id %q", e.ItemID, e.CartID)
}

// Is makes errors.Is(err, ErrDuplicateIdentity) hold.
func (e *DuplicateIdentityError) Is(target error) bool { return target == ErrDuplicateIdentity }

// describe renders a value for error messages, preferring its JSON form.
func describe(v any) string {
	if v == nil {
		return "null"
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%#v", v)
}
