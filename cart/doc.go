// Package cart implements the session-backed shopping cart.
//
// A Cart holds Items in insertion order, unique by identity, plus an optional
// ISO 4217 currency. It saves its whole State into a core.SessionStore under
// its own id after every mutation (Add, Update, SetID, SetCurrency) and
// rehydrates from the store when opened with an id that is already stored.
//
// Prices are normalized on the way in (see package money): without a
// currency they become floats, with one they become integer minor unit
// amounts. Subtotal sums the stored prices.
//
// Example:
//
//	c, err := cart.New(ctx, func(o *cart.Options) {
//	    o.ID = "checkout-42"
//	    o.SessionStore = store
//	})
//	if err != nil { ... }
//	err = c.Add(ctx, cart.NewItem("sku-1").SetPrice("9,99"))
//	total, err := c.Subtotal()
package cart
