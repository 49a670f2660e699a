package commands

import (
	"context"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
)

// MergeCartsCommandHandler sums the guest cart into the user cart per variant
// and deletes the guest cart. Carts are always locked user first, then guest.
type MergeCartsCommandHandler struct {
	uowFactory CartUoWFactory
	pricer     pricing.Pricer
	clock      kernel.Clock
}

func NewMergeCartsCommandHandler(uowFactory CartUoWFactory, pricer pricing.Pricer, clock kernel.Clock) MergeCartsCommandHandler {
	return MergeCartsCommandHandler{uowFactory: uowFactory, pricer: pricer, clock: clock}
}

func (h MergeCartsCommandHandler) Handle(ctx context.Context, cmd MergeCartsCommand) (*cart.Cart, error) {
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
	target, err := repo.GetForUpdate(ctx, cmd.User(), now)
	if err != nil {
		return nil, err
	}
	guest, err := repo.GetForUpdate(ctx, cmd.Anonymous(), now)
	if err != nil {
		return nil, err
	}

	if !guest.IsEmpty() {
		for _, it := range guest.Items() {
			wanted := target.QuantityOf(it.VariantID()) + it.Quantity()
			if err = h.pricer.EnsureAvailable(ctx, it.VariantID(), wanted); err != nil {
				return nil, err
			}
		}
		if err = target.Merge(guest, now); err != nil {
			return nil, err
		}
		if err = repo.Save(ctx, target); err != nil {
			return nil, err
		}
	}
	if err = repo.Delete(ctx, guest.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return target, nil
}
