package commands

import (
	"errors"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrUpdateAddressCommandIsNotConstructed = errors.New(
	"UpdateAddressCommand must be created via NewUpdateAddressCommand constructor",
)

// UpdateAddressCommand edits one of the caller's addresses.
type UpdateAddressCommand struct {
	ownerID     kernel.UUID
	addressID   kernel.UUID
	details     address.Details
	makeDefault bool

	guard guard.ConstructorGuard
}

func NewUpdateAddressCommand(
	session kernel.Session,
	addressID kernel.UUID,
	details address.Details,
	makeDefault bool,
) (UpdateAddressCommand, error) {
	ownerID, err := session.RequireUser()
	if err != nil {
		return UpdateAddressCommand{}, err
	}
	if err = addressID.Validate(); err != nil {
		return UpdateAddressCommand{}, err
	}
	return UpdateAddressCommand{
		ownerID:     ownerID,
		addressID:   addressID,
		details:     details,
		makeDefault: makeDefault,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAddressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAddressCommandIsNotConstructed)
}

func (c UpdateAddressCommand) OwnerID() kernel.UUID     { return c.ownerID }
func (c UpdateAddressCommand) AddressID() kernel.UUID   { return c.addressID }
func (c UpdateAddressCommand) Details() address.Details { return c.details }
func (c UpdateAddressCommand) MakeDefault() bool        { return c.makeDefault }
