// Package money turns raw price input into canonical cart prices.
//
// Raw input is a string with a comma or period decimal separator, an integer
// number of minor units (cents), a float, a decimal.Decimal or an Amount.
// ParsePrice keeps that input in a tagged Price; Price.Normalize then
// produces the canonical form a cart stores: a float64 when no currency is
// selected, or an Amount in integer minor units bound to an ISO 4217
// Currency. Amount arithmetic is integer only.
//
// Every function in this package is pure.
package money
