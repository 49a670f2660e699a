package commands

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/metric"
)

// ChangeOrderStatusCommandHandler applies an admin transition. Two admins
// racing on the same order are resolved by the repository's version check:
// the loser gets errs.ErrVersionIsInvalid.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Transition(cmd.Status(), order.ActorAdmin, h.clock.Now())
	})
}

// transitionOrder loads an order, applies change and stores it in its own
// unit of work.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	change func(o *order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err = change(o); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	metric.OrderTransitionsTotal.WithLabelValues(o.Status().String()).Inc()
	return o, nil
}
