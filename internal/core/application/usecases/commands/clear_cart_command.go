package commands

import (
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

type ClearCartCommand struct {
	owner cart.Owner

	guard guard.ConstructorGuard
}

func NewClearCartCommand(session kernel.Session) (ClearCartCommand, error) {
	owner, err := cart.OwnerForSession(session)
	if err != nil {
		return ClearCartCommand{}, err
	}
	return ClearCartCommand{owner: owner, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) Owner() cart.Owner { return c.owner }
