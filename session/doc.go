// Package session houses concrete implementations of the core.SessionStore.
// The interface itself lives in the core package so carts depend on the
// contract only; the wiring layer decides which implementation to
// instantiate.
//
// InMemoryStore is the default. Durable backends live in sub-packages
// (see session/redis) and can be swapped in without changing calling code.
package session
