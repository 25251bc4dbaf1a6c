package core

import "context"

// SessionStore persists opaque, already serialized values by key inside a
// single namespace (bucket). Carts write their whole state under their own
// identity after every mutation and read it back on construction.
//
// Implementations must be safe for concurrent use. Short method names
// (Put/Get/Has/Forget/Flush) mirror the other store contracts.
type SessionStore interface {
	// Put stores value under key, replacing any previous value, and returns
	// the stored representation.
	Put(ctx context.Context, key string, value []byte) ([]byte, error)
	// Get returns a copy of the stored value or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Has reports whether key is present.
	Has(ctx context.Context, key string) (bool, error)
	// Forget removes key. Removing a missing key is not an error.
	Forget(ctx context.Context, key string) error
	// Flush removes every key of this store's namespace.
	Flush(ctx context.Context) error
}
