package queries

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrListAddressesQueryIsNotConstructed = errors.New(
	"ListAddressesQuery must be created via NewListAddressesQuery constructor",
)

type ListAddressesQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListAddressesQuery(session kernel.Session) (ListAddressesQuery, error) {
	ownerID, err := session.RequireUser()
	if err != nil {
		return ListAddressesQuery{}, err
	}
	return ListAddressesQuery{ownerID: ownerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAddressesQuery) Validate() error {
	return q.guard.Validate(ErrListAddressesQueryIsNotConstructed)
}

func (q ListAddressesQuery) OwnerID() kernel.UUID { return q.ownerID }

type AddressView struct {
	ID        kernel.UUID
	Details   address.Details
	IsDefault bool
	CreatedAt time.Time
}

// NewAddressView renders an aggregate like a listed row.
func NewAddressView(a *address.Address) AddressView {
	return AddressView{ID: a.ID(), Details: a.Details(), IsDefault: a.IsDefault(), CreatedAt: a.CreatedAt()}
}
