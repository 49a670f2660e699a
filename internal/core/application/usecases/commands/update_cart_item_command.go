package commands

import (
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrUpdateCartItemCommandIsNotConstructed = errors.New(
	"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
)

type UpdateCartItemCommand struct {
	owner    cart.Owner
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

func NewUpdateCartItemCommand(session kernel.Session, itemID kernel.UUID, quantity int) (UpdateCartItemCommand, error) {
	owner, err := cart.OwnerForSession(session)
	var itemErr, qtyErr error
	if itemID.IsZero() {
		itemErr = errs.NewValueIsRequiredError("itemId")
	}
	if quantity < 1 {
		qtyErr = cart.ErrInvalidQuantity
	}
	if err = errors.Join(err, itemErr, qtyErr); err != nil {
		return UpdateCartItemCommand{}, err
	}

	return UpdateCartItemCommand{
		owner:    owner,
		itemID:   itemID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

func (c UpdateCartItemCommand) Owner() cart.Owner   { return c.owner }
func (c UpdateCartItemCommand) ItemID() kernel.UUID { return c.itemID }
func (c UpdateCartItemCommand) Quantity() int       { return c.quantity }
