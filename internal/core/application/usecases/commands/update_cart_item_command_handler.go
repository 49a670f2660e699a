package commands

import (
	"context"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
)

// UpdateCartItemCommandHandler sets a line's quantity after re-validating stock.
type UpdateCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	pricer     pricing.Pricer
	clock      kernel.Clock
}

func NewUpdateCartItemCommandHandler(uowFactory CartUoWFactory, pricer pricing.Pricer, clock kernel.Clock) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{uowFactory: uowFactory, pricer: pricer, clock: clock}
}

func (h UpdateCartItemCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemCommand) (*cart.Cart, error) {
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
	it, err := c.Item(cmd.ItemID())
	if err != nil {
		return nil, err
	}
	if err = h.pricer.EnsureAvailable(ctx, it.VariantID(), cmd.Quantity()); err != nil {
		return nil, err
	}
	if _, err = c.UpdateItem(cmd.ItemID(), cmd.Quantity(), now); err != nil {
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
