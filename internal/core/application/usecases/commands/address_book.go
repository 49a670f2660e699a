package commands

import (
	"context"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
)

// loadBook locks the owner's address book for the rest of the transaction.
func loadBook(ctx context.Context, repo ports.AddressRepository, ownerID kernel.UUID) (*address.Book, error) {
	if err := repo.LockOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	addresses, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return address.NewBook(ownerID, addresses)
}

// saveBook writes every address back so default flags stay consistent.
func saveBook(ctx context.Context, repo ports.AddressRepository, book *address.Book) error {
	for _, a := range book.Addresses() {
		if err := repo.Save(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
