// Package logging provides a minimal logging interface and adapters for sessioncart.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that carts and session stores use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - CartLogger carrying component and cart attributes
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	c, err := cart.New(ctx, func(o *cart.Options) { o.Logger = logger })
package logging
