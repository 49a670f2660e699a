package commands

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order. Customers only see their own
// orders; anyone else's order is reported as not found.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if cmd.Actor() == order.ActorCustomer && !o.IsOwnedBy(cmd.UserID()) {
			return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
		}
		return o.Transition(order.Cancelled, cmd.Actor(), h.clock.Now())
	})
}
