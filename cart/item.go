package cart

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/hupe1980/sessioncart/core"
	"github.com/hupe1980/sessioncart/money"
)

// Known item attribute names, in the order Properties reports them.
const (
	PropertyID       = "id"
	PropertyName     = "name"
	PropertyQuantity = "quantity"
	PropertyPrice    = "price"
	PropertyFields   = "fields"
)

// Item is a cart line: an identity, an optional name, a quantity, a price and
// an open bag of custom fields. Quantity stays absent until set; the cart sets
// it to 1 when an item without quantity is added.
type Item struct {
	id       string
	name     string
	quantity *int
	price    money.Price
	fields   map[string]Value
}

// NewItem returns an item carrying only its identity.
func NewItem(id string) *Item {
	return &Item{id: id}
}

// NewItemFromMap builds an item from keyed attributes. The keys id, name,
// quantity, price and fields go through the matching setters; every other
// key becomes a custom field. The fields key is applied first so extra keys
// are merged into it.
func NewItemFromMap(attrs map[string]any) (*Item, error) {
	it := &Item{}
	if raw, ok := attrs[PropertyFields]; ok {
		if err := it.SetFields(raw); err != nil {
			return nil, err
		}
	}
	if raw, ok := attrs[PropertyID]; ok {
		it.id = identityOf(raw)
	}
	if raw, ok := attrs[PropertyName]; ok {
		it.name = identityOf(raw)
	}
	if raw, ok := attrs[PropertyQuantity]; ok {
		q, err := quantityOf(raw)
		if err != nil {
			return nil, err
		}
		if err := it.SetQuantity(q); err != nil {
			return nil, err
		}
	}
	if raw, ok := attrs[PropertyPrice]; ok {
		it.SetPrice(raw)
	}

	extra := make([]string, 0, len(attrs))
	for k := range attrs {
		if !isProperty(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		v, err := ValueOf(attrs[k])
		if err != nil {
			return nil, err
		}
		it.SetField(k, v)
	}
	return it, nil
}

// ID returns the item identity.
func (it *Item) ID() string { return it.id }

// SetID reassigns the identity.
func (it *Item) SetID(id string) *Item {
	it.id = id
	return it
}

// Name returns the display name.
func (it *Item) Name() string { return it.name }

// SetName sets the display name.
func (it *Item) SetName(name string) *Item {
	it.name = name
	return it
}

// Quantity returns the quantity, 0 while it is absent.
func (it *Item) Quantity() int {
	if it.quantity == nil {
		return 0
	}
	return *it.quantity
}

// HasQuantity reports whether a quantity was set.
func (it *Item) HasQuantity() bool { return it.quantity != nil }

// SetQuantity sets the quantity. Negative quantities fail with
// core.ErrInvalidQuantity.
func (it *Item) SetQuantity(q int) error {
	if q < 0 {
		return core.NewArgumentError("cart.Item.SetQuantity", q, core.ErrInvalidQuantity)
	}
	it.quantity = &q
	return nil
}

// Price returns the price as stored. Items read from a cart hold the
// normalized form.
func (it *Item) Price() money.Price { return it.price }

// SetPrice stores raw price input, see money.ParsePrice: "9,99" is kept as
// "9.99", integers are minor units and floats stay floats.
func (it *Item) SetPrice(v any) *Item {
	it.price = money.ParsePrice(v)
	return it
}

// Fields returns a copy of the custom fields, nil when none were set.
func (it *Item) Fields() map[string]Value {
	return copyFields(it.fields)
}

// Field returns one custom field.
func (it *Item) Field(key string) (Value, bool) {
	v, ok := it.fields[key]
	return v, ok
}

// SetField sets one custom field.
func (it *Item) SetField(key string, v Value) *Item {
	if it.fields == nil {
		it.fields = map[string]Value{}
	}
	it.fields[key] = v
	return it
}

// SetFields replaces all custom fields. It accepts map[string]any,
// map[string]Value and map[string]string; anything else fails with
// core.ErrInvalidFieldsArgument.
func (it *Item) SetFields(v any) error {
	fields := map[string]Value{}
	switch m := v.(type) {
	case map[string]Value:
		for k, val := range m {
			fields[k] = val
		}
	case map[string]string:
		for k, val := range m {
			fields[k] = StringValue(val)
		}
	case map[string]any:
		for k, raw := range m {
			val, err := ValueOf(raw)
			if err != nil {
				return core.NewArgumentError("cart.Item.SetFields", v, core.ErrInvalidFieldsArgument)
			}
			fields[k] = val
		}
	default:
		return core.NewArgumentError("cart.Item.SetFields", v, core.ErrInvalidFieldsArgument)
	}
	it.fields = fields
	return nil
}

// Properties lists the known attribute names.
func (it *Item) Properties() []string {
	return []string{PropertyID, PropertyName, PropertyQuantity, PropertyPrice, PropertyFields}
}

// Clone returns a deep copy.
func (it *Item) Clone() *Item {
	c := *it
	if it.quantity != nil {
		q := *it.quantity
		c.quantity = &q
	}
	c.fields = copyFields(it.fields)
	return &c
}

type itemJSON struct {
	ID       string           `json:"id"`
	Name     string           `json:"name,omitempty"`
	Quantity *int             `json:"quantity,omitempty"`
	Price    money.Price      `json:"price"`
	Fields   map[string]Value `json:"fields"`
}

// MarshalJSON encodes every attribute, keeping an absent quantity absent.
func (it *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{ID: it.id, Name: it.name, Quantity: it.quantity, Price: it.price, Fields: it.fields})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (it *Item) UnmarshalJSON(data []byte) error {
	var in itemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*it = Item{id: in.ID, name: in.Name, quantity: in.Quantity, price: in.Price, fields: in.Fields}
	return nil
}

func copyFields(in map[string]Value) map[string]Value {
	if in == nil {
		return nil
	}
	out := make(map[string]Value, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func isProperty(key string) bool {
	switch key {
	case PropertyID, PropertyName, PropertyQuantity, PropertyPrice, PropertyFields:
		return true
	}
	return false
}

// identityOf renders scalar identity input; numbers keep their integer form.
func identityOf(v any) string {
	if v == nil {
		return ""
	}
	val, err := ValueOf(v)
	if err != nil {
		return ""
	}
	return val.String()
}

// quantityOf accepts Go integers and integral json.Number values.
func quantityOf(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		if x >= math.MinInt && x <= math.MaxInt {
			return int(x), nil
		}
	case uint:
		if uint64(x) <= math.MaxInt {
			return int(x), nil
		}
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint64:
		if x <= math.MaxInt {
			return int(x), nil
		}
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return quantityOf(n)
		}
	}
	return 0, core.NewArgumentError("cart.Item.SetQuantity", v, core.ErrInvalidQuantity)
}
