package commands

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
)

type DeactivateExpiredCouponsCommandHandler struct {
	uowFactory CouponUoWFactory
	clock      kernel.Clock
}

func NewDeactivateExpiredCouponsCommandHandler(
	uowFactory CouponUoWFactory,
	clock kernel.Clock,
) DeactivateExpiredCouponsCommandHandler {
	return DeactivateExpiredCouponsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the number of coupons deactivated.
func (h DeactivateExpiredCouponsCommandHandler) Handle(ctx context.Context, cmd DeactivateExpiredCouponsCommand) (int, error) {
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

	now := h.clock.Now()
	repo := uow.CouponRepository()
	expired, err := repo.ListExpiredActive(ctx, now)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, c := range expired {
		if !c.IsExpired(now) {
			continue
		}
		c.Deactivate()
		if err = repo.Update(ctx, c); err != nil {
			return 0, err
		}
		count++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return count, nil
}
