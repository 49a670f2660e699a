package commands

import (
	"errors"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrCreateAddressCommandIsNotConstructed = errors.New(
	"CreateAddressCommand must be created via NewCreateAddressCommand constructor",
)

// CreateAddressCommand adds an address to the caller's address book.
type CreateAddressCommand struct {
	ownerID     kernel.UUID
	details     address.Details
	makeDefault bool

	guard guard.ConstructorGuard
}

func NewCreateAddressCommand(session kernel.Session, details address.Details, makeDefault bool) (CreateAddressCommand, error) {
	ownerID, err := session.RequireUser()
	if err != nil {
		return CreateAddressCommand{}, err
	}
	return CreateAddressCommand{
		ownerID:     ownerID,
		details:     details,
		makeDefault: makeDefault,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateAddressCommand) Validate() error {
	return c.guard.Validate(ErrCreateAddressCommandIsNotConstructed)
}

func (c CreateAddressCommand) OwnerID() kernel.UUID     { return c.ownerID }
func (c CreateAddressCommand) Details() address.Details { return c.details }
func (c CreateAddressCommand) MakeDefault() bool        { return c.makeDefault }
