package queries

import (
	"context"
	"errors"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// EvaluateCouponQueryResponse is the outcome for the cart's live subtotal.
type EvaluateCouponQueryResponse struct {
	Outcome  coupon.Outcome
	Subtotal decimal.Decimal
}

type EvaluateCouponQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	pricer     pricing.Pricer
	clock      kernel.Clock
}

func NewEvaluateCouponQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	pricer pricing.Pricer,
	clock kernel.Clock,
) EvaluateCouponQueryHandler {
	return EvaluateCouponQueryHandler{uowFactory: uowFactory, pricer: pricer, clock: clock}
}

func (h EvaluateCouponQueryHandler) Handle(ctx context.Context, query EvaluateCouponQuery) (EvaluateCouponQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EvaluateCouponQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return EvaluateCouponQueryResponse{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	subtotal, err := h.subtotal(ctx, uow.CartRepository(), query.Owner())
	if err != nil {
		return EvaluateCouponQueryResponse{}, err
	}

	repo := uow.CouponRepository()
	c, err := repo.FindByCode(ctx, query.Code())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return EvaluateCouponQueryResponse{Outcome: coupon.Rejected(query.Code(), coupon.ReasonNotFound), Subtotal: subtotal}, nil
	}
	if err != nil {
		return EvaluateCouponQueryResponse{}, err
	}

	usage := 0
	if !query.UserID().IsZero() {
		if usage, err = repo.UserUsage(ctx, c.ID(), query.UserID()); err != nil {
			return EvaluateCouponQueryResponse{}, err
		}
	}

	outcome := services.EvaluateCoupon(query.Code(), c, h.clock.Now(), subtotal, usage)
	return EvaluateCouponQueryResponse{Outcome: outcome, Subtotal: subtotal}, nil
}

// subtotal reprices the cart from the catalog; a missing cart is worth zero.
func (h EvaluateCouponQueryHandler) subtotal(ctx context.Context, repo ports.CartRepository, owner cart.Owner) (decimal.Decimal, error) {
	c, err := repo.Find(ctx, owner)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	if err = h.pricer.Reprice(ctx, c); err != nil {
		return decimal.Zero, err
	}
	return c.Subtotal(), nil
}
