// Package cart implements the Cart Engine domain: a mutable collection of line
// items keyed by product variant, owned by a user or an anonymous session.
//
// Key business rules:
//   - One line per variant; adding an existing variant increments its quantity
//   - Quantities are always at least 1
//   - Price and tax rate are snapshots refreshed on every add and summary; they become
//     durable facts only when copied into an order
//   - Every mutation bumps the cart version, which makes earlier checkout summaries stale
//   - Emptying a cart never deletes it
package cart
