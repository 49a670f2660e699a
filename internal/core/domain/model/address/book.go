package address

import (
	"errors"
	"sort"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

var ErrForeignAddress = errors.New("address belongs to another owner")

// Book is every address of one owner. All default-flag changes go through the
// Book so that, whenever the owner has at least one address, exactly one of
// them is the default.
type Book struct {
	ownerID   kernel.UUID
	addresses []*Address
}

// NewBook loads an owner's addresses. Inconsistent persisted state (zero or
// several defaults) is repaired in memory; the repair is persisted by the next Save.
func NewBook(ownerID kernel.UUID, addresses []*Address) (*Book, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	for _, a := range addresses {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if !a.IsOwnedBy(ownerID) {
			return nil, ErrForeignAddress
		}
	}

	b := &Book{ownerID: ownerID, addresses: append([]*Address(nil), addresses...)}
	sort.SliceStable(b.addresses, func(i, j int) bool {
		return b.addresses[i].createdAt.Before(b.addresses[j].createdAt)
	})
	b.repair()
	return b, nil
}

// Addresses returns the owner's addresses ordered by creation time.
func (b *Book) Addresses() []*Address {
	return append([]*Address(nil), b.addresses...)
}

// Default returns the default address or nil when the book is empty.
func (b *Book) Default() *Address {
	for _, a := range b.addresses {
		if a.isDefault {
			return a
		}
	}
	return nil
}

// Find looks up an address by id.
func (b *Book) Find(id kernel.UUID) (*Address, error) {
	for _, a := range b.addresses {
		if a.id.IsEqual(id) {
			return a, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("address", id.String())
}

// Add appends an address. The first address always becomes the default.
func (b *Book) Add(a *Address, makeDefault bool) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsOwnedBy(b.ownerID) {
		return ErrForeignAddress
	}
	a.isDefault = false
	b.addresses = append(b.addresses, a)
	if makeDefault || len(b.addresses) == 1 {
		b.setDefault(a)
	}
	return nil
}

// Update edits an address and optionally makes it the default. Clearing the
// default flag is not possible directly; another address must be made default.
func (b *Book) Update(id kernel.UUID, details Details, makeDefault bool) (*Address, error) {
	a, err := b.Find(id)
	if err != nil {
		return nil, err
	}
	if err = a.Update(details); err != nil {
		return nil, err
	}
	if makeDefault {
		b.setDefault(a)
	}
	return a, nil
}

// SetDefault makes id the single default address.
func (b *Book) SetDefault(id kernel.UUID) error {
	a, err := b.Find(id)
	if err != nil {
		return err
	}
	b.setDefault(a)
	return nil
}

// Remove deletes an address. Removing the default promotes the most recently
// created remaining address.
func (b *Book) Remove(id kernel.UUID) (*Address, error) {
	a, err := b.Find(id)
	if err != nil {
		return nil, err
	}

	kept := b.addresses[:0]
	for _, other := range b.addresses {
		if !other.id.IsEqual(id) {
			kept = append(kept, other)
		}
	}
	b.addresses = kept

	if a.isDefault && len(b.addresses) > 0 {
		b.setDefault(b.addresses[len(b.addresses)-1])
	}
	return a, nil
}

func (b *Book) setDefault(target *Address) {
	for _, a := range b.addresses {
		a.isDefault = a == target
	}
}

func (b *Book) repair() {
	if len(b.addresses) == 0 {
		return
	}
	var chosen *Address
	for _, a := range b.addresses {
		if a.isDefault {
			chosen = a
		}
	}
	if chosen == nil {
		chosen = b.addresses[len(b.addresses)-1]
	}
	b.setDefault(chosen)
}
