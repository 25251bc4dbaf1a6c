// Package testutil contains helper builders and doubles used across tests
// to reduce boilerplate when constructing cart items, inspecting persisted
// cart state and simulating failing session stores. Not intended for
// production usage.
package testutil
