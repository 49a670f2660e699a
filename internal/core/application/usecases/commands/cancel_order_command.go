package commands

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order on behalf of its owner or an admin.
type CancelOrderCommand struct {
	userID  kernel.UUID
	actor   order.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(session kernel.Session, orderID kernel.UUID) (CancelOrderCommand, error) {
	userID, err := session.RequireUser()
	if err != nil {
		return CancelOrderCommand{}, err
	}
	if orderID.IsZero() {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("orderId")
	}

	actor := order.ActorCustomer
	if session.IsAdmin() {
		actor = order.ActorAdmin
	}
	return CancelOrderCommand{userID: userID, actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) UserID() kernel.UUID  { return c.userID }
func (c CancelOrderCommand) Actor() order.Actor   { return c.actor }
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }
