package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hupe1980/sessioncart/core"
	"github.com/hupe1980/sessioncart/internal/util"
	"github.com/hupe1980/sessioncart/logging"
	"github.com/hupe1980/sessioncart/money"
	"github.com/hupe1980/sessioncart/session"
)

const (
	// DefaultIDKey is the reserved session key holding the default cart id.
	DefaultIDKey = "_defaultCartIdKey"
	// DefaultIDPrefix prefixes generated cart ids.
	DefaultIDPrefix = "_cart_"
)

// Options configures a Cart. Every unset dependency gets a default.
type Options struct {
	// ID selects the cart. Blank resolves the per-session default id.
	ID string

	// SessionStore persists the cart. Defaults to an in-memory store.
	SessionStore core.SessionStore

	// Codec serializes the cart state. Defaults to JSONCodec.
	Codec Codec

	// Logger defaults to NoOp logger if nil.
	Logger logging.Logger

	// NewToken returns the uniqueness token of generated ids. Defaults to
	// a random UUID without hyphens.
	NewToken func() string
}

// Cart is an ordered, identity-deduplicated list of items with an optional
// currency. Every mutation re-saves the whole cart under its id in the
// session store. A Cart is not safe for concurrent use.
type Cart struct {
	id       string
	items    []*Item
	currency string
	session  core.SessionStore
	codec    Codec
	logger   logging.Logger
}

// New opens a cart. A blank Options.ID resolves the default id stored under
// DefaultIDKey, minting one on first use. The cart stored under the
// resolved id is rehydrated when present; otherwise an empty cart is created
// and saved right away. This holds for the default id too, so the default
// cart keeps its items across requests instead of being reset to empty.
// New fails only on session store or encoding errors.
func New(ctx context.Context, optFns ...func(o *Options)) (*Cart, error) {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Codec:        JSONCodec{},
		Logger:       logging.NoOpLogger{},
		NewToken:     newToken,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore()
	}
	if opts.Codec == nil {
		opts.Codec = JSONCodec{}
	}
	if opts.NewToken == nil {
		opts.NewToken = newToken
	}

	c := &Cart{
		items:   []*Item{},
		session: opts.SessionStore,
		codec:   opts.Codec,
		logger:  logging.OrNoOp(opts.Logger),
	}

	id := strings.TrimSpace(opts.ID)
	if id == "" {
		defaultID, err := c.defaultID(ctx, opts.NewToken)
		if err != nil {
			return nil, err
		}
		id = defaultID
	}

	found, err := c.retrieve(ctx, id)
	if err != nil {
		return nil, err
	}
	if found {
		c.logger.Debug("cart restored from session", "cart_id", c.id, "items", len(c.items))
		return c, nil
	}

	c.id = id
	if err := c.persist(ctx); err != nil {
		return nil, err
	}
	c.logger.Debug("cart created", "cart_id", c.id)
	return c, nil
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// defaultID returns the id stored under DefaultIDKey, storing a new one
// when the slot is empty.
func (c *Cart) defaultID(ctx context.Context, token func() string) (string, error) {
	has, err := c.session.Has(ctx, DefaultIDKey)
	if err != nil {
		return "", fmt.Errorf("look up default cart id: %w", err)
	}
	if has {
		raw, err := c.session.Get(ctx, DefaultIDKey)
		switch {
		case err == nil && strings.TrimSpace(string(raw)) != "":
			return strings.TrimSpace(string(raw)), nil
		case err != nil && !errors.Is(err, core.ErrKeyNotFound):
			return "", fmt.Errorf("load default cart id: %w", err)
		}
	}

	id := DefaultIDPrefix + token()
	if _, err := c.session.Put(ctx, DefaultIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("store default cart id: %w", err)
	}
	return id, nil
}

// retrieve copies the state stored under id onto c. A missing key or a
// value that is not cart state reports false.
func (c *Cart) retrieve(ctx context.Context, id string) (bool, error) {
	raw, err := c.session.Get(ctx, id)
	if errors.Is(err, core.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load cart %q: %w", id, err)
	}

	var st State
	if err := c.codec.Unmarshal(raw, &st); err != nil || st.ID == "" {
		c.logger.Warn("stored value is not a cart, starting a new one", "cart_id", id, "error", err)
		return false, nil
	}

	c.id = st.ID
	c.currency = st.Currency
	c.items = make([]*Item, 0, len(st.Items))
	for _, it := range st.Items {
		if it != nil {
			c.items = append(c.items, it)
		}
	}
	return true, nil
}

func (c *Cart) state() State {
	return State{ID: c.id, Currency: c.currency, Items: c.items}
}

// persist writes the whole cart under its current id.
func (c *Cart) persist(ctx context.Context) error {
	return c.save(ctx, c.state())
}

// save writes st under st.ID. Mutations save the next state first and only
// commit it to c once the store accepted it.
func (c *Cart) save(ctx context.Context, st State) error {
	blob, err := c.codec.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode cart %q: %w", st.ID, err)
	}
	if _, err := c.session.Put(ctx, st.ID, blob); err != nil {
		return fmt.Errorf("save cart %q: %w", st.ID, err)
	}
	return nil
}

// ID returns the cart identity.
func (c *Cart) ID() string { return c.id }

// SetID moves the cart to a new identity and saves it there. The entry under
// the previous id is left in the session store.
func (c *Cart) SetID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return core.NewArgumentError("cart.SetID", id, core.ErrMissingIdentity)
	}
	previous := c.id
	if err := c.save(ctx, State{ID: id, Currency: c.currency, Items: c.items}); err != nil {
		return err
	}
	c.id = id
	c.logger.Debug("cart id changed", "cart_id", c.id, "previous_id", previous)
	return nil
}

// Session returns the session store the cart saves to.
func (c *Cart) Session() core.SessionStore { return c.session }

// SetSession swaps the session store. Nothing is written until the next
// mutation. A nil store is ignored.
func (c *Cart) SetSession(store core.SessionStore) {
	if store != nil {
		c.session = store
	}
}

// Properties lists the cart attribute names.
func (c *Cart) Properties() []string {
	return []string{"id", "items", "currency", "session"}
}

// Currency returns the selected currency code, empty in plain decimal mode.
func (c *Cart) Currency() string { return c.currency }

// SetCurrency selects a currency, converts every stored price into an
// amount of it and saves the cart. Unknown codes fail with
// core.ErrInvalidCurrency and leave the cart unchanged.
func (c *Cart) SetCurrency(ctx context.Context, code string) error {
	cur, err := money.ParseCurrency(code)
	if err != nil {
		return err
	}
	items, err := c.renormalize(&cur)
	if err != nil {
		return err
	}
	if err := c.save(ctx, State{ID: c.id, Currency: cur.Code, Items: items}); err != nil {
		return err
	}
	c.items, c.currency = items, cur.Code
	c.logger.Debug("cart currency changed", "cart_id", c.id, "currency", c.currency)
	return nil
}

// ClearCurrency returns the cart to plain decimal mode, converting stored
// amounts into floats, and saves it.
func (c *Cart) ClearCurrency(ctx context.Context) error {
	items, err := c.renormalize(nil)
	if err != nil {
		return err
	}
	if err := c.save(ctx, State{ID: c.id, Items: items}); err != nil {
		return err
	}
	c.items, c.currency = items, ""
	return nil
}

// renormalize returns copies of the items with prices normalized to cur.
func (c *Cart) renormalize(cur *money.Currency) ([]*Item, error) {
	items := make([]*Item, len(c.items))
	for i, it := range c.items {
		p, err := it.price.Normalize(cur)
		if err != nil {
			return nil, err
		}
		items[i] = it.Clone()
		items[i].price = p
	}
	return items, nil
}

// with returns a copy of the item list where idx is replaced by it, or it is
// appended when idx is out of range.
func (c *Cart) with(idx int, it *Item) []*Item {
	items := make([]*Item, len(c.items), len(c.items)+1)
	copy(items, c.items)
	if idx >= 0 && idx < len(items) {
		items[idx] = it
		return items
	}
	return append(items, it)
}

// currencyRef resolves the selected currency, nil in plain decimal mode.
func (c *Cart) currencyRef() (*money.Currency, error) {
	if c.currency == "" {
		return nil, nil
	}
	cur, err := money.ParseCurrency(c.currency)
	if err != nil {
		return nil, err
	}
	return &cur, nil
}

// Add inserts items in order. An item whose id is already in the cart is
// ignored; use Update to change it. An item without id fails with
// core.ErrMissingIdentity. Items added before a failing one stay in the
// cart.
func (c *Cart) Add(ctx context.Context, items ...*Item) error {
	for _, it := range items {
		if it == nil {
			return core.NewArgumentError("cart.Add", nil, core.ErrInvalidArgument)
		}
		if err := c.addItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// AddAny adds an *Item, an Item or a slice of either. Elements of a []any
// that are not items are skipped. Any other value fails with
// core.ErrInvalidArgument.
func (c *Cart) AddAny(ctx context.Context, v any) error {
	switch x := v.(type) {
	case *Item:
		return c.Add(ctx, x)
	case Item:
		return c.Add(ctx, &x)
	case []*Item:
		return c.Add(ctx, x...)
	case []Item:
		for i := range x {
			if err := c.Add(ctx, &x[i]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, el := range x {
			switch it := el.(type) {
			case *Item:
				if it == nil {
					continue
				}
				if err := c.Add(ctx, it); err != nil {
					return err
				}
			case Item:
				if err := c.Add(ctx, &it); err != nil {
					return err
				}
			default:
				c.logger.Debug("non-item element skipped", "cart_id", c.id, "element", fmt.Sprintf("%T", el))
			}
		}
		return nil
	default:
		return core.NewArgumentError("cart.AddAny", v, core.ErrInvalidArgument)
	}
}

func (c *Cart) addItem(ctx context.Context, it *Item) error {
	_, found, err := c.find(it.ID())
	if err != nil {
		return err
	}
	if found {
		c.logger.Debug("item already in cart, ignored", "cart_id", c.id, "item_id", it.ID())
		return nil
	}
	if it.ID() == "" {
		return core.NewArgumentError("cart.Add", it, core.ErrMissingIdentity)
	}

	cur, err := c.currencyRef()
	if err != nil {
		return err
	}
	stored := it.Clone()
	if !stored.HasQuantity() {
		one := 1
		stored.quantity = &one
	}
	price, err := stored.price.Normalize(cur)
	if err != nil {
		return err
	}
	stored.price = price

	items := c.with(-1, stored)
	if err := c.save(ctx, State{ID: c.id, Currency: c.currency, Items: items}); err != nil {
		return err
	}
	c.items = items
	c.logger.Debug("item added", "cart_id", c.id, "item_id", stored.id, "items", len(c.items))
	return nil
}

// Update merges the attributes of item into the stored item with the same
// id. Attributes that are unset or empty strings are skipped, so partial
// items only change what they carry. An unknown id is a no-op.
func (c *Cart) Update(ctx context.Context, item *Item) error {
	if item == nil {
		return core.NewArgumentError("cart.Update", nil, core.ErrInvalidArgument)
	}
	idx, found, err := c.find(item.ID())
	if err != nil {
		return err
	}
	if !found {
		c.logger.Debug("item not in cart, update skipped", "cart_id", c.id, "item_id", item.ID())
		return nil
	}

	var price *money.Price
	if !item.price.IsEmpty() {
		cur, err := c.currencyRef()
		if err != nil {
			return err
		}
		p, err := item.price.Normalize(cur)
		if err != nil {
			return err
		}
		price = &p
	}

	current := c.items[idx].Clone()
	if item.id != "" {
		current.id = item.id
	}
	if item.name != "" {
		current.name = item.name
	}
	if item.quantity != nil {
		q := *item.quantity
		current.quantity = &q
	}
	if price != nil {
		current.price = *price
	}
	if item.fields != nil {
		current.fields = copyFields(item.fields)
	}

	items := c.with(idx, current)
	if err := c.save(ctx, State{ID: c.id, Currency: c.currency, Items: items}); err != nil {
		return err
	}
	c.items = items
	c.logger.Debug("item updated", "cart_id", c.id, "item_id", current.id)
	return nil
}

// find scans the items for id. More than one match is a broken invariant
// and returns a *core.DuplicateIdentityError.
func (c *Cart) find(id string) (int, bool, error) {
	idx := -1
	for i, it := range c.items {
		if !util.LooseEqual(it.id, id) {
			continue
		}
		if idx >= 0 {
			return 0, false, &core.DuplicateIdentityError{ItemID: id, CartID: c.id}
		}
		idx = i
	}
	return idx, idx >= 0, nil
}

// Item returns a copy of the item with the given id. Numeric-looking ids
// match loosely ("01" finds "1"). A miss returns core.ErrItemNotFound.
func (c *Cart) Item(id string) (*Item, error) {
	idx, found, err := c.find(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", core.ErrItemNotFound, id)
	}
	return c.items[idx].Clone(), nil
}

// Has reports whether a lookup by the item's id succeeds. An id shared by
// more than one stored item reports false; Item returns the
// *core.DuplicateIdentityError for it.
func (c *Cart) Has(item *Item) bool {
	if item == nil {
		return false
	}
	_, found, err := c.find(item.ID())
	return err == nil && found
}

// Items returns copies of the items in insertion order.
func (c *Cart) Items() []*Item {
	out := make([]*Item, len(c.items))
	for i, it := range c.items {
		out[i] = it.Clone()
	}
	return out
}

// Len returns the number of items.
func (c *Cart) Len() int { return len(c.items) }

// Subtotal sums the stored prices. Without a currency the result is a float
// price; with one it is an amount computed in integer minor units, and a
// stored currency code that is not valid fails with core.ErrInvalidCurrency.
//
// Quantities are not multiplied in: the subtotal is the sum of prices as
// stored.
func (c *Cart) Subtotal() (money.Price, error) {
	if c.currency == "" {
		total := 0.0
		for _, it := range c.items {
			p, _ := it.price.Normalize(nil)
			f, _ := p.Float()
			total += f
		}
		return money.NewFloatPrice(total), nil
	}

	cur, err := money.ParseCurrency(c.currency)
	if err != nil {
		return money.Price{}, err
	}
	total := cur.Zero()
	for _, it := range c.items {
		p, err := it.price.Normalize(&cur)
		if err != nil {
			return money.Price{}, err
		}
		a, _ := p.Amount()
		if total, err = total.Add(a); err != nil {
			return money.Price{}, err
		}
	}
	return money.NewAmountPrice(total), nil
}
