package commands

import (
	"context"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
)

// RemoveCartItemCommandHandler drops a line. The cart itself survives empty.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	clock      kernel.Clock
}

func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory, clock kernel.Clock) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) (*cart.Cart, error) {
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
	if err = c.RemoveItem(cmd.ItemID(), now); err != nil {
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
