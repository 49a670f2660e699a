package queries

import (
	"context"
	"errors"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// GetCheckoutSummaryQueryHandler recomputes the summary on every call; a
// summary is never cached because carts and addresses change out of band.
type GetCheckoutSummaryQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	pricer     pricing.Pricer
	clock      kernel.Clock
}

func NewGetCheckoutSummaryQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	pricer pricing.Pricer,
	clock kernel.Clock,
) GetCheckoutSummaryQueryHandler {
	return GetCheckoutSummaryQueryHandler{uowFactory: uowFactory, pricer: pricer, clock: clock}
}

func (h GetCheckoutSummaryQueryHandler) Handle(ctx context.Context, query GetCheckoutSummaryQuery) (services.Summary, error) {
	if err := query.Validate(); err != nil {
		return services.Summary{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Summary{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := cart.UserOwner(query.UserID())
	if err != nil {
		return services.Summary{}, err
	}
	c, err := uow.CartRepository().Find(ctx, owner)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return services.Summary{}, services.ErrEmptyCart
	}
	if err != nil {
		return services.Summary{}, err
	}

	summary, _, err := h.pricer.Summarize(ctx, uow, c, pricing.Request{
		UserID:        query.UserID(),
		AddressID:     query.AddressID(),
		CouponCode:    query.CouponCode(),
		PaymentMethod: query.PaymentMethod(),
		Now:           h.clock.Now(),
	})
	return summary, err
}
