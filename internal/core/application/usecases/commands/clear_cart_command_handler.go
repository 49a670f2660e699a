package commands

import (
	"context"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
)

type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
	clock      kernel.Clock
}

func NewClearCartCommandHandler(uowFactory CartUoWFactory, clock kernel.Clock) ClearCartCommandHandler {
	return ClearCartCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) (*cart.Cart, error) {
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
	c.Clear(now)
	if err = repo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
