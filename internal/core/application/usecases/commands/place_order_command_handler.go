package commands

import (
	"context"
	"errors"
	"fmt"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/metric"
)

// PlaceOrderCommandHandler turns the caller's cart into an order in a single
// transaction: the cart and the coupon row stay locked from re-pricing until
// commit, so the order, the coupon redemption and the cleared cart are
// written together or not at all. It never retries on its own.
//
// A gateway order id (from a payment proof or a payment intent) is bound to
// at most one order, and its amount must equal the grand total computed here.
type PlaceOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	pricer     pricing.Pricer
	drafter    services.OrderDrafter
	gateway    ports.PaymentGateway
	clock      kernel.Clock
}

func NewPlaceOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	pricer pricing.Pricer,
	drafter services.OrderDrafter,
	gateway ports.PaymentGateway,
	clock kernel.Clock,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		drafter:    drafter,
		gateway:    gateway,
		clock:      clock,
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.verify(ctx, cmd.Proof()); err != nil {
		return nil, err
	}
	gwOrder, err := h.gatewayOrder(ctx, cmd.GatewayOrderID())
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

	now := h.clock.Now()
	owner, err := cart.UserOwner(cmd.UserID())
	if err != nil {
		return nil, err
	}
	c, err := uow.CartRepository().GetForUpdate(ctx, owner, now)
	if err != nil {
		return nil, err
	}
	if v := cmd.ExpectedCartVersion(); v != nil && *v != c.Version() {
		return nil, ErrStaleSummary
	}

	summary, cp, err := h.pricer.Summarize(ctx, uow, c, pricing.Request{
		UserID:        cmd.UserID(),
		AddressID:     cmd.AddressID(),
		CouponCode:    cmd.CouponCode(),
		PaymentMethod: cmd.PaymentMethod(),
		Now:           now,
		LockCoupon:    true,
	})
	if err != nil {
		return nil, err
	}
	if err = h.bindPayment(ctx, uow.OrderRepository(), gwOrder, summary); err != nil {
		return nil, err
	}
	if err = h.redeem(ctx, uow.CouponRepository(), summary, cp, cmd.UserID()); err != nil {
		return nil, err
	}

	if err = h.pricer.EnsureCartAvailable(ctx, c); err != nil {
		if errors.Is(err, pricing.ErrOutOfStock) {
			return nil, ErrInventoryUnavailable
		}
		return nil, err
	}
	details, err := h.pricer.Details(ctx, c)
	if err != nil {
		return nil, err
	}
	billing, err := h.billingAddress(ctx, uow.AddressRepository(), cmd.BillingAddressID())
	if err != nil {
		return nil, err
	}

	draft, err := h.drafter.Draft(cmd.UserID(), summary, details, billing, cmd.GatewayOrderID())
	if err != nil {
		return nil, err
	}
	o, err := order.NewOrder(kernel.NewUUID(), draft, now)
	if err != nil {
		return nil, err
	}
	if p := cmd.Proof(); p != nil {
		if err = o.ConfirmPayment(p.RazorpayOrderID, p.RazorpayPaymentID, now); err != nil {
			return nil, err
		}
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	c.Clear(now)
	if err = uow.CartRepository().Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	metric.OrdersPlacedTotal.WithLabelValues(o.PaymentMethod().String()).Inc()
	if summary.Coupon != nil {
		metric.CouponRedemptionsTotal.WithLabelValues("redeemed").Inc()
	}
	return o, nil
}

func (h PlaceOrderCommandHandler) verify(ctx context.Context, proof *PaymentProof) error {
	if proof == nil {
		return nil
	}
	ok, err := h.gateway.Verify(ctx, proof.RazorpayOrderID, proof.RazorpayPaymentID, proof.Signature)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPaymentVerificationFailed
	}
	return nil
}

func (h PlaceOrderCommandHandler) gatewayOrder(ctx context.Context, gatewayOrderID string) (*ports.GatewayOrder, error) {
	if gatewayOrderID == "" {
		return nil, nil
	}
	gw, err := h.gateway.FetchOrder(ctx, gatewayOrderID)
	if err != nil {
		return nil, err
	}
	if gw.ID != gatewayOrderID {
		return nil, ErrPaymentVerificationFailed
	}
	return &gw, nil
}

// bindPayment rejects a gateway order that already belongs to an order or was
// created for a different amount than summary charges.
func (h PlaceOrderCommandHandler) bindPayment(
	ctx context.Context,
	repo ports.OrderRepository,
	gw *ports.GatewayOrder,
	summary services.Summary,
) error {
	if gw == nil {
		return nil
	}
	_, err := repo.GetByRazorpayOrderID(ctx, gw.ID)
	switch {
	case err == nil:
		return ErrPaymentAlreadyUsed
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if total := summary.GrandTotal.Round(2); !gw.Amount.Equal(total) {
		return fmt.Errorf("%w: gateway order is for %s, order total is %s",
			ErrPaymentAmountMismatch, gw.Amount.StringFixed(2), total.StringFixed(2))
	}
	return nil
}

// redeem re-validates the coupon under its row lock and books the usage.
func (h PlaceOrderCommandHandler) redeem(
	ctx context.Context,
	repo ports.CouponRepository,
	summary services.Summary,
	cp *coupon.Coupon,
	userID kernel.UUID,
) error {
	if summary.Coupon == nil {
		return nil
	}
	if !summary.Coupon.IsAccepted() {
		metric.CouponRedemptionsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: %s", ErrCouponNoLongerEligible, summary.Coupon.Reason())
	}

	err := cp.Redeem()
	if err == nil {
		err = repo.Redeem(ctx, cp, userID)
	}
	if errors.Is(err, coupon.ErrUsageLimitReached) {
		metric.CouponRedemptionsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: %s", ErrCouponNoLongerEligible, coupon.ReasonUsageLimitReached)
	}
	return err
}

func (h PlaceOrderCommandHandler) billingAddress(
	ctx context.Context,
	repo ports.AddressRepository,
	id kernel.UUID,
) (*address.Address, error) {
	if id.IsZero() {
		return nil, nil
	}
	a, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrAddressNotFound
	}
	return a, err
}
