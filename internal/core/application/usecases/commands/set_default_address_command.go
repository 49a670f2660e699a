package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrSetDefaultAddressCommandIsNotConstructed = errors.New(
	"SetDefaultAddressCommand must be created via NewSetDefaultAddressCommand constructor",
)

// SetDefaultAddressCommand makes one address the caller's default.
type SetDefaultAddressCommand struct {
	ownerID   kernel.UUID
	addressID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSetDefaultAddressCommand(session kernel.Session, addressID kernel.UUID) (SetDefaultAddressCommand, error) {
	ownerID, err := session.RequireUser()
	if err != nil {
		return SetDefaultAddressCommand{}, err
	}
	if err = addressID.Validate(); err != nil {
		return SetDefaultAddressCommand{}, err
	}
	return SetDefaultAddressCommand{ownerID: ownerID, addressID: addressID, guard: guard.NewConstructorGuard()}, nil
}

func (c SetDefaultAddressCommand) Validate() error {
	return c.guard.Validate(ErrSetDefaultAddressCommandIsNotConstructed)
}

func (c SetDefaultAddressCommand) OwnerID() kernel.UUID   { return c.ownerID }
func (c SetDefaultAddressCommand) AddressID() kernel.UUID { return c.addressID }
