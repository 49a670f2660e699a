// Package ports defines the contracts between the checkout core and its
// adapters: repositories, the unit of work, and external collaborators.
package ports

import (
	"context"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
)

// AddressRepository persists address books.
type AddressRepository interface {
	// LockOwner serializes address-book changes of ownerID until the
	// surrounding transaction ends.
	LockOwner(ctx context.Context, ownerID kernel.UUID) error

	// ListByOwner returns all addresses of ownerID, oldest first.
	ListByOwner(ctx context.Context, ownerID kernel.UUID) ([]*address.Address, error)

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*address.Address, error)

	// Save inserts or updates an address including its default flag.
	Save(ctx context.Context, a *address.Address) error

	Delete(ctx context.Context, id kernel.UUID) error
}
