package testutil

import (
	"github.com/hupe1980/sessioncart/cart"
)

// ItemBuilder helps construct cart items with fluent chaining for tests.
// Example:
//
//	it := NewItemBuilder("sku-1").Name("Mug").Quantity(2).Price(1000).Field("color", "red").Build()
type ItemBuilder struct {
	id       string
	name     string
	quantity *int
	price    any
	fields   map[string]cart.Value
}

// NewItemBuilder creates a builder for an item with the given id.
func NewItemBuilder(id string) *ItemBuilder {
	return &ItemBuilder{id: id}
}

// Name sets the display name (chainable).
func (b *ItemBuilder) Name(n string) *ItemBuilder { b.name = n; return b }

// Quantity sets the quantity (chainable). Negative values are ignored by Build.
func (b *ItemBuilder) Quantity(q int) *ItemBuilder { b.quantity = &q; return b }

// Price sets raw price input as accepted by Item.SetPrice (chainable).
func (b *ItemBuilder) Price(v any) *ItemBuilder { b.price = v; return b }

// Field adds a string custom field (chainable).
func (b *ItemBuilder) Field(key, val string) *ItemBuilder {
	return b.Value(key, cart.StringValue(val))
}

// Value adds a custom field of any scalar kind (chainable).
func (b *ItemBuilder) Value(key string, v cart.Value) *ItemBuilder {
	if b.fields == nil {
		b.fields = map[string]cart.Value{}
	}
	b.fields[key] = v
	return b
}

// Build returns the *cart.Item.
func (b *ItemBuilder) Build() *cart.Item {
	it := cart.NewItem(b.id).SetName(b.name)
	if b.quantity != nil {
		_ = it.SetQuantity(*b.quantity)
	}
	if b.price != nil {
		it.SetPrice(b.price)
	}
	for k, v := range b.fields {
		it.SetField(k, v)
	}
	return it
}
