package commands

import (
	"context"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
)

// AddCartItemCommandHandler adds a variant to the caller's cart. The cart row
// is locked for the whole read-modify-write, so concurrent adds of the same
// variant end up as one line with the summed quantity.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	pricer     pricing.Pricer
	clock      kernel.Clock
}

func NewAddCartItemCommandHandler(uowFactory CartUoWFactory, pricer pricing.Pricer, clock kernel.Clock) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{uowFactory: uowFactory, pricer: pricer, clock: clock}
}

func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	repo := uow.CartRepository()
	c, err := repo.GetForUpdate(ctx, cmd.Owner(), now)
	if err != nil {
		return nil, err
	}

	wanted := c.QuantityOf(cmd.VariantID()) + cmd.Quantity()
	if err = h.pricer.EnsureAvailable(ctx, cmd.VariantID(), wanted); err != nil {
		return nil, err
	}
	price, err := h.pricer.Price(ctx, cmd.VariantID())
	if err != nil {
		return nil, err
	}
	if _, err = c.AddItem(cmd.VariantID(), cmd.Quantity(), price, now); err != nil {
		return nil, err
	}
	if err = repo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
