package commands

import (
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

type RemoveCartItemCommand struct {
	owner  cart.Owner
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(session kernel.Session, itemID kernel.UUID) (RemoveCartItemCommand, error) {
	owner, err := cart.OwnerForSession(session)
	if err != nil {
		return RemoveCartItemCommand{}, err
	}
	if itemID.IsZero() {
		return RemoveCartItemCommand{}, errs.NewValueIsRequiredError("itemId")
	}
	return RemoveCartItemCommand{owner: owner, itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) Owner() cart.Owner   { return c.owner }
func (c RemoveCartItemCommand) ItemID() kernel.UUID { return c.itemID }
