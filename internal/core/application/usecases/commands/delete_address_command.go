package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrDeleteAddressCommandIsNotConstructed = errors.New(
	"DeleteAddressCommand must be created via NewDeleteAddressCommand constructor",
)

// DeleteAddressCommand removes one of the caller's addresses. Placed orders
// keep their own snapshots and are unaffected.
type DeleteAddressCommand struct {
	ownerID   kernel.UUID
	addressID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteAddressCommand(session kernel.Session, addressID kernel.UUID) (DeleteAddressCommand, error) {
	ownerID, err := session.RequireUser()
	if err != nil {
		return DeleteAddressCommand{}, err
	}
	if err = addressID.Validate(); err != nil {
		return DeleteAddressCommand{}, err
	}
	return DeleteAddressCommand{ownerID: ownerID, addressID: addressID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteAddressCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAddressCommandIsNotConstructed)
}

func (c DeleteAddressCommand) OwnerID() kernel.UUID   { return c.ownerID }
func (c DeleteAddressCommand) AddressID() kernel.UUID { return c.addressID }
