// Package queries contains the read side of the checkout core.
//
// Plain listings (cart, addresses, orders) read straight from the database
// with raw SQL and never load aggregates. Priced views (checkout summary,
// coupon evaluation) reprice from the live catalog inside a read-only unit of
// work that is always rolled back.
package queries
