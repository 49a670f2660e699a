package commands

import (
	"context"
	"errors"
	"fmt"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// PaymentIntent is a gateway order for the summarized amount.
type PaymentIntent struct {
	GatewayOrder ports.GatewayOrder
	Summary      services.Summary
}

type CreatePaymentIntentCommandHandler struct {
	uowFactory CheckoutUoWFactory
	pricer     pricing.Pricer
	gateway    ports.PaymentGateway
	clock      kernel.Clock
	currency   string
}

func NewCreatePaymentIntentCommandHandler(
	uowFactory CheckoutUoWFactory,
	pricer pricing.Pricer,
	gateway ports.PaymentGateway,
	clock kernel.Clock,
	currency string,
) CreatePaymentIntentCommandHandler {
	return CreatePaymentIntentCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		gateway:    gateway,
		clock:      clock,
		currency:   currency,
	}
}

func (h CreatePaymentIntentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentIntentCommand) (PaymentIntent, error) {
	if err := cmd.Validate(); err != nil {
		return PaymentIntent{}, err
	}

	summary, err := h.summarize(ctx, cmd)
	if err != nil {
		return PaymentIntent{}, err
	}

	receipt := fmt.Sprintf("cart-%s-v%d", summary.CartID, summary.CartVersion)
	gwOrder, err := h.gateway.CreateOrder(ctx, summary.GrandTotal, h.currency, receipt)
	if err != nil {
		return PaymentIntent{}, err
	}
	return PaymentIntent{GatewayOrder: gwOrder, Summary: summary}, nil
}

// summarize reads inside a unit of work that is always rolled back, so the
// gateway is never called while database locks are held.
func (h CreatePaymentIntentCommandHandler) summarize(ctx context.Context, cmd CreatePaymentIntentCommand) (services.Summary, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Summary{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := cart.UserOwner(cmd.UserID())
	if err != nil {
		return services.Summary{}, err
	}
	c, err := uow.CartRepository().Find(ctx, owner)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return services.Summary{}, ErrEmptyCart
	}
	if err != nil {
		return services.Summary{}, err
	}

	summary, _, err := h.pricer.Summarize(ctx, uow, c, pricing.Request{
		UserID:        cmd.UserID(),
		AddressID:     cmd.AddressID(),
		CouponCode:    cmd.CouponCode(),
		PaymentMethod: order.MethodRazorpay,
		Now:           h.clock.Now(),
	})
	return summary, err
}
