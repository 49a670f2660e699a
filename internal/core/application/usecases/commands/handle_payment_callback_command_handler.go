package commands

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"
)

// HandlePaymentCallbackCommandHandler applies a gateway notification to the
// order holding the gateway order id. Confirmations are checked against the
// checkout signature, failures against the payment as the gateway reports it.
// Redelivered notifications are no-ops.
type HandlePaymentCallbackCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	clock      kernel.Clock
}

func NewHandlePaymentCallbackCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	clock kernel.Clock,
) HandlePaymentCallbackCommandHandler {
	return HandlePaymentCallbackCommandHandler{uowFactory: uowFactory, gateway: gateway, clock: clock}
}

func (h HandlePaymentCallbackCommandHandler) Handle(ctx context.Context, cmd HandlePaymentCallbackCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.authenticate(ctx, cmd); err != nil {
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
	repo := uow.OrderRepository()
	o, err := repo.GetByRazorpayOrderID(ctx, cmd.RazorpayOrderID())
	if err != nil {
		return nil, err
	}

	if cmd.Succeeded() {
		err = o.ConfirmPayment(cmd.RazorpayOrderID(), cmd.RazorpayPaymentID(), now)
	} else {
		err = o.MarkPaymentFailed(cmd.RazorpayOrderID(), now)
	}
	if err != nil {
		return nil, err
	}
	if len(o.Events()) == 0 {
		return o, nil
	}
	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (h HandlePaymentCallbackCommandHandler) authenticate(ctx context.Context, cmd HandlePaymentCallbackCommand) error {
	if cmd.Succeeded() {
		ok, err := h.gateway.Verify(ctx, cmd.RazorpayOrderID(), cmd.RazorpayPaymentID(), cmd.Signature())
		if err != nil {
			return err
		}
		if !ok {
			return ErrPaymentVerificationFailed
		}
		return nil
	}

	payment, err := h.gateway.FetchPayment(ctx, cmd.RazorpayPaymentID())
	if err != nil {
		return err
	}
	if payment.OrderID != cmd.RazorpayOrderID() || payment.Status != ports.GatewayPaymentFailed {
		return ErrPaymentVerificationFailed
	}
	return nil
}
