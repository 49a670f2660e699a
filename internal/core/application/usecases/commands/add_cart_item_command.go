package commands

import (
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

type AddCartItemCommand struct {
	owner     cart.Owner
	variantID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(session kernel.Session, variantID kernel.UUID, quantity int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOwner(session),
		cmd.setVariantID(variantID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) Owner() cart.Owner      { return c.owner }
func (c AddCartItemCommand) VariantID() kernel.UUID { return c.variantID }
func (c AddCartItemCommand) Quantity() int          { return c.quantity }

func (c *AddCartItemCommand) setOwner(session kernel.Session) (err error) {
	c.owner, err = cart.OwnerForSession(session)
	return err
}

func (c *AddCartItemCommand) setVariantID(variantID kernel.UUID) error {
	if variantID.IsZero() {
		return errs.NewValueIsRequiredError("variantId")
	}
	c.variantID = variantID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return cart.ErrInvalidQuantity
	}
	c.quantity = quantity
	return nil
}
