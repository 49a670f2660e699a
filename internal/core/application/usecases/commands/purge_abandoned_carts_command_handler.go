package commands

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
)

type PurgeAbandonedCartsCommandHandler struct {
	uowFactory CartUoWFactory
	clock      kernel.Clock
}

func NewPurgeAbandonedCartsCommandHandler(uowFactory CartUoWFactory, clock kernel.Clock) PurgeAbandonedCartsCommandHandler {
	return PurgeAbandonedCartsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the number of carts removed.
func (h PurgeAbandonedCartsCommandHandler) Handle(ctx context.Context, cmd PurgeAbandonedCartsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.CartRepository().DeleteAbandonedAnonymous(ctx, h.clock.Now().Add(-cmd.TTL()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}
