package cart_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sessioncart/cart"
	"github.com/hupe1980/sessioncart/core"
	"github.com/hupe1980/sessioncart/money"
)

func TestNewItemFromMap(t *testing.T) {
	it, err := cart.NewItemFromMap(map[string]any{
		"id":       42,
		"name":     "Mug",
		"quantity": 3,
		"price":    "7,25",
		"fields":   map[string]any{"color": "red"},
		"gift":     true,
		"weight":   0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "42", it.ID())
	assert.Equal(t, "Mug", it.Name())
	assert.Equal(t, 3, it.Quantity())
	assert.Equal(t, money.KindText, it.Price().Kind())
	assert.Equal(t, "7.25", it.Price().String())
	assert.Equal(t, map[string]cart.Value{
		"color":  cart.StringValue("red"),
		"gift":   cart.BoolValue(true),
		"weight": cart.NumberValue(0.5),
	}, it.Fields())
}

func TestNewItemFromMap_Errors(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]any
		want  error
	}{
		{"string quantity", map[string]any{"id": "1", "quantity": "2"}, core.ErrInvalidQuantity},
		{"fractional quantity", map[string]any{"id": "1", "quantity": 2.5}, core.ErrInvalidQuantity},
		{"negative quantity", map[string]any{"id": "1", "quantity": -1}, core.ErrInvalidQuantity},
		{"fields not a map", map[string]any{"id": "1", "fields": "color=red"}, core.ErrInvalidFieldsArgument},
		{"nested field value", map[string]any{"id": "1", "fields": map[string]any{"x": []int{1}}}, core.ErrInvalidFieldsArgument},
		{"extra key not scalar", map[string]any{"id": "1", "meta": struct{}{}}, core.ErrInvalidFieldsArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cart.NewItemFromMap(tt.attrs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewItemFromMap_JSONNumberQuantity(t *testing.T) {
	it, err := cart.NewItemFromMap(map[string]any{"id": "1", "quantity": json.Number("4")})
	require.NoError(t, err)
	assert.Equal(t, 4, it.Quantity())
}

func TestNewItemFromMap_UnsignedQuantity(t *testing.T) {
	for _, q := range []any{uint(3), uint8(3), uint16(3), uint32(3), uint64(3)} {
		it, err := cart.NewItemFromMap(map[string]any{"id": "1", "quantity": q})
		require.NoError(t, err)
		assert.Equal(t, 3, it.Quantity())
	}

	_, err := cart.NewItemFromMap(map[string]any{"id": "1", "quantity": uint64(math.MaxUint64)})
	assert.ErrorIs(t, err, core.ErrInvalidQuantity)
}

func TestItem_SetFields(t *testing.T) {
	it := cart.NewItem("1")
	require.NoError(t, it.SetFields(map[string]string{"a": "b"}))
	assert.Equal(t, map[string]cart.Value{"a": cart.StringValue("b")}, it.Fields())

	require.NoError(t, it.SetFields(map[string]cart.Value{"n": cart.NumberValue(2)}))
	assert.Equal(t, map[string]cart.Value{"n": cart.NumberValue(2)}, it.Fields())

	err := it.SetFields([]string{"a"})
	assert.ErrorIs(t, err, core.ErrInvalidFieldsArgument)
	assert.Equal(t, map[string]cart.Value{"n": cart.NumberValue(2)}, it.Fields())
}

func TestItem_QuantityAbsentUntilSet(t *testing.T) {
	it := cart.NewItem("1")
	assert.False(t, it.HasQuantity())
	assert.Equal(t, 0, it.Quantity())

	require.NoError(t, it.SetQuantity(2))
	assert.True(t, it.HasQuantity())
	assert.ErrorIs(t, it.SetQuantity(-3), core.ErrInvalidQuantity)
	assert.Equal(t, 2, it.Quantity())
}

func TestItem_CloneIsDeep(t *testing.T) {
	it := cart.NewItem("1").SetField("k", cart.StringValue("v"))
	require.NoError(t, it.SetQuantity(1))

	c := it.Clone()
	require.NoError(t, c.SetQuantity(9))
	c.SetField("k", cart.StringValue("changed"))

	assert.Equal(t, 1, it.Quantity())
	v, _ := it.Field("k")
	assert.Equal(t, "v", v.String())
}

func TestItem_JSON(t *testing.T) {
	it := cart.NewItem("1").SetName("Mug").SetPrice(1.5).SetField("gift", cart.BoolValue(true))

	raw, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"Mug","price":{"kind":"float","float":1.5},"fields":{"gift":true}}`, string(raw))

	var back cart.Item
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "Mug", back.Name())
	assert.False(t, back.HasQuantity())
	f, ok := back.Price().Float()
	require.True(t, ok)
	assert.Equal(t, 1.5, f)
}

func TestValue(t *testing.T) {
	v, err := cart.ValueOf(int64(7))
	require.NoError(t, err)
	assert.Equal(t, cart.ValueNumber, v.Kind())
	assert.Equal(t, "7", v.String())

	_, err = cart.ValueOf(map[string]any{})
	assert.ErrorIs(t, err, core.ErrInvalidFieldsArgument)

	var out map[string]cart.Value
	require.NoError(t, json.Unmarshal([]byte(`{"s":"x","n":1.25,"b":false}`), &out))
	assert.Equal(t, map[string]cart.Value{
		"s": cart.StringValue("x"),
		"n": cart.NumberValue(1.25),
		"b": cart.BoolValue(false),
	}, out)

	assert.Error(t, json.Unmarshal([]byte(`{"o":{"nested":1}}`), &out))
}
