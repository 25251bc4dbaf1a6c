// Package core provides the contracts shared by every sessioncart package:
//
//   - SessionStore, the key-value boundary carts persist through
//   - the error kinds returned by cart and money operations
//   - ArgumentError and DuplicateIdentityError, which carry context and
//     unwrap to those kinds
//
// The package keeps implementation concerns (storage backends, encoding,
// money arithmetic) out of scope so custom stores only depend on it.
package core
