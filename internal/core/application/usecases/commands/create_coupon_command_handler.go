package commands

import (
	"context"

	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
)

type CreateCouponCommandHandler struct {
	uowFactory CouponUoWFactory
}

func NewCreateCouponCommandHandler(uowFactory CouponUoWFactory) CreateCouponCommandHandler {
	return CreateCouponCommandHandler{uowFactory: uowFactory}
}

// Handle fails with ports.ErrCouponCodeTaken when the code exists.
func (h CreateCouponCommandHandler) Handle(ctx context.Context, cmd CreateCouponCommand) (*coupon.Coupon, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := coupon.NewCoupon(kernel.NewUUID(), cmd.Code(), cmd.Terms())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CouponRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
