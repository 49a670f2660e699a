// Package address implements the Address Store domain: shipping/billing addresses
// owned by a user and the Book that enforces at most one default address per owner.
//
// Placed orders never reference an Address directly; they hold a frozen snapshot
// taken at commit time (see package order).
package address
