// Package sessioncart provides a high-level façade over session-backed
// shopping carts. Most applications interact with this package by:
//  1. Creating a SessionCart via New() (optionally overriding the default
//     in-memory session store, codec and logger)
//  2. Opening carts by id (Open) or the per-session default cart (OpenDefault)
//  3. Adding, updating and totalling items through the returned *cart.Cart
//
// All defaults are safe for local development and testing; production
// deployments typically supply a durable store such as redisstore.Store and
// a structured logger.
package sessioncart

import (
	"context"

	"github.com/hupe1980/sessioncart/cart"
	"github.com/hupe1980/sessioncart/core"
	"github.com/hupe1980/sessioncart/logging"
	"github.com/hupe1980/sessioncart/session"
)

// Options configures the SessionCart instance.
type Options struct {
	// SessionStore persists carts (defaults to an in-memory store if nil).
	SessionStore core.SessionStore

	// Codec serializes cart state (defaults to cart.JSONCodec).
	Codec cart.Codec

	// Currency applied to carts that have none yet. Empty keeps plain
	// decimal mode.
	Currency string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// SessionCart opens carts that share one session store, codec and logger.
type SessionCart struct {
	opts Options
}

// New creates a SessionCart with optional overrides.
func New(optFns ...func(o *Options)) *SessionCart {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Codec:        cart.JSONCodec{},
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore()
	}

	return &SessionCart{opts: opts}
}

// SessionStore returns the store carts are saved to.
func (s *SessionCart) SessionStore() core.SessionStore { return s.opts.SessionStore }

// Open loads the cart stored under id, or creates and saves an empty one.
func (s *SessionCart) Open(ctx context.Context, id string) (*cart.Cart, error) {
	c, err := cart.New(ctx, func(o *cart.Options) {
		o.ID = id
		o.SessionStore = s.opts.SessionStore
		o.Codec = s.opts.Codec
		o.Logger = s.opts.Logger
	})
	if err != nil {
		return nil, err
	}

	if s.opts.Currency != "" && c.Currency() == "" {
		if err := c.SetCurrency(ctx, s.opts.Currency); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// OpenDefault opens the per-session default cart.
func (s *SessionCart) OpenDefault(ctx context.Context) (*cart.Cart, error) {
	return s.Open(ctx, "")
}

// Forget removes the cart stored under id from the session store.
func (s *SessionCart) Forget(ctx context.Context, id string) error {
	return s.opts.SessionStore.Forget(ctx, id)
}

// Flush drops every cart of the session, the default cart id included.
func (s *SessionCart) Flush(ctx context.Context) error {
	return s.opts.SessionStore.Flush(ctx)
}
