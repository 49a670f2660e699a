package order_test

import (
	"testing"
	"time"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validDraft(t *testing.T, method order.PaymentMethod) order.Draft {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Phone 12 / 128GB", "PH12-128", dec("1000"), 1, dec("0.18"))
	require.NoError(t, err)
	eta := placedAt.AddDate(0, 0, 5)
	return order.Draft{
		UserID:        kernel.NewUUID(),
		PaymentMethod: method,
		Items:         []order.Item{item},
		ShippingAddress: order.Address{Type: order.AddressShipping, Details: address.Details{
			Name: "Asha", Line1: "12 MG Road", City: "Bengaluru", State: "KA", Country: "IN", Pincode: "560001",
		}},
		Totals: order.Totals{
			Subtotal: dec("1000"),
			Discount: dec("100"),
			Tax:      dec("180"),
			Shipping: decimal.Zero,
			Grand:    dec("1080"),
		},
		CouponCode:            "save10",
		RazorpayOrderID:       "order_ABC",
		EstimatedDeliveryDate: &eta,
	}
}

func newOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), validDraft(t, method), placedAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("online order starts CREATED/PENDING", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, "SAVE10", o.CouponCode())
		assert.Equal(t, "180.00", o.Items()[0].TaxAmount.StringFixed(2))
		require.Len(t, o.Events(), 1)
		assert.Equal(t, order.EventOrderPlaced, o.Events()[0].EventName())
	})

	t.Run("cod order starts CREATED/COD", func(t *testing.T) {
		o := newOrder(t, order.MethodCOD)
		assert.Equal(t, order.PaymentCOD, o.PaymentStatus())
	})

	t.Run("rejects inconsistent grand total", func(t *testing.T) {
		draft := validDraft(t, order.MethodRazorpay)
		draft.Totals.Grand = dec("1180")

		_, err := order.NewOrder(kernel.NewUUID(), draft, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "grandTotal")
	})

	t.Run("rejects empty items and missing shipping address", func(t *testing.T) {
		draft := validDraft(t, order.MethodRazorpay)
		draft.Items = nil
		draft.ShippingAddress.Type = order.AddressBilling

		_, err := order.NewOrder(kernel.NewUUID(), draft, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "shipping address")
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_SnapshotImmutability(t *testing.T) {
	draft := validDraft(t, order.MethodRazorpay)
	o, err := order.NewOrder(kernel.NewUUID(), draft, placedAt)
	require.NoError(t, err)

	draft.Items[0].UnitPrice = dec("1")
	draft.Items[0].Title = "changed"
	items := o.Items()
	items[0].Quantity = 99
	*draft.EstimatedDeliveryDate = placedAt

	assert.Equal(t, "1000.00", o.Items()[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "Phone 12 / 128GB", o.Items()[0].Title)
	assert.Equal(t, 1, o.Items()[0].Quantity)
	assert.Equal(t, placedAt.AddDate(0, 0, 5), *o.EstimatedDeliveryDate())
}

func TestOrder_PaymentThenFulfillment(t *testing.T) {
	o := newOrder(t, order.MethodRazorpay)
	now := placedAt.Add(time.Hour)

	err := o.Transition(order.Delivered, order.ActorAdmin, now)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Created, o.Status())

	require.NoError(t, o.ConfirmPayment("order_ABC", "pay_1", now))
	assert.Equal(t, order.Paid, o.Status())
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	assert.Equal(t, "pay_1", o.RazorpayPaymentID())

	require.NoError(t, o.Transition(order.Packed, order.ActorAdmin, now))
	require.NoError(t, o.Transition(order.Shipped, order.ActorAdmin, now))
	require.NoError(t, o.Transition(order.Delivered, order.ActorAdmin, now))
	require.NotNil(t, o.ActualDeliveryDate())
	require.NoError(t, o.Transition(order.Completed, order.ActorAdmin, now))
	assert.True(t, o.Status().IsTerminal())
}

func TestOrder_TransitionToPaid(t *testing.T) {
	now := placedAt.Add(time.Hour)

	t.Run("gateway settles a pending payment", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)

		require.NoError(t, o.Transition(order.Paid, order.ActorPaymentGateway, now))
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())

		require.NoError(t, o.Transition(order.Packed, order.ActorAdmin, now))
		assert.Equal(t, order.Packed, o.Status())
	})

	tests := []struct {
		name   string
		method order.PaymentMethod
		actor  order.Actor
		failed bool
		want   error
	}{
		{"admin may not mark paid", order.MethodRazorpay, order.ActorAdmin, false, order.ErrActorNotPermitted},
		{"cash on delivery is not gateway paid", order.MethodCOD, order.ActorPaymentGateway, false, order.ErrPaymentMismatch},
		{"failed payment stays failed", order.MethodRazorpay, order.ActorPaymentGateway, true, order.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrder(t, tt.method)
			if tt.failed {
				require.NoError(t, o.MarkPaymentFailed("order_ABC", placedAt))
			}
			payment := o.PaymentStatus()

			err := o.Transition(order.Paid, tt.actor, now)

			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, order.Created, o.Status())
			assert.Equal(t, payment, o.PaymentStatus())
		})
	}
}

func TestOrder_ConfirmPayment(t *testing.T) {
	t.Run("second confirmation is a no-op", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)
		require.NoError(t, o.ConfirmPayment("order_ABC", "pay_1", placedAt))
		events := len(o.Events())

		require.NoError(t, o.ConfirmPayment("order_ABC", "pay_1", placedAt.Add(time.Minute)))

		assert.Equal(t, order.Paid, o.Status())
		assert.Len(t, o.Events(), events)
	})

	t.Run("foreign gateway order", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)
		require.ErrorIs(t, o.ConfirmPayment("order_OTHER", "pay_1", placedAt), order.ErrPaymentMismatch)
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("cod orders are not gateway payable", func(t *testing.T) {
		o := newOrder(t, order.MethodCOD)
		require.ErrorIs(t, o.ConfirmPayment("order_ABC", "pay_1", placedAt), order.ErrPaymentMismatch)
	})

	t.Run("failed payment cannot become paid", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)
		require.NoError(t, o.MarkPaymentFailed("order_ABC", placedAt))
		require.NoError(t, o.MarkPaymentFailed("order_ABC", placedAt))

		err := o.ConfirmPayment("order_ABC", "pay_2", placedAt)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("paid cannot fail", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)
		require.NoError(t, o.ConfirmPayment("order_ABC", "pay_1", placedAt))
		require.ErrorIs(t, o.MarkPaymentFailed("order_ABC", placedAt), order.ErrInvalidTransition)
	})

	t.Run("cancelled order rejects late payment", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)
		require.NoError(t, o.Transition(order.Cancelled, order.ActorCustomer, placedAt))

		require.ErrorIs(t, o.ConfirmPayment("order_ABC", "pay_1", placedAt), order.ErrInvalidTransition)
	})
}

func TestOrder_RefundAndCOD(t *testing.T) {
	t.Run("cancelling a paid order refunds it", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)
		require.NoError(t, o.ConfirmPayment("order_ABC", "pay_1", placedAt))

		require.NoError(t, o.Transition(order.Cancelled, order.ActorCustomer, placedAt))

		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})

	t.Run("cancelling an unpaid order keeps payment pending", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)
		require.NoError(t, o.Transition(order.Cancelled, order.ActorAdmin, placedAt))
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("online order cannot be packed unpaid", func(t *testing.T) {
		o := newOrder(t, order.MethodRazorpay)
		require.ErrorIs(t, o.Transition(order.Packed, order.ActorAdmin, placedAt), order.ErrInvalidTransition)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("cod is collected on delivery", func(t *testing.T) {
		o := newOrder(t, order.MethodCOD)
		for _, s := range []order.Status{order.Packed, order.Shipped, order.Delivered} {
			require.NoError(t, o.Transition(s, order.ActorAdmin, placedAt))
		}
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())

		require.NoError(t, o.Transition(order.Returned, order.ActorAdmin, placedAt))
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})

	t.Run("customer cannot cancel after shipping", func(t *testing.T) {
		o := newOrder(t, order.MethodCOD)
		require.NoError(t, o.Transition(order.Packed, order.ActorAdmin, placedAt))
		require.NoError(t, o.Transition(order.Shipped, order.ActorAdmin, placedAt))

		err := o.Transition(order.Cancelled, order.ActorCustomer, placedAt)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("customer cannot drive fulfillment", func(t *testing.T) {
		o := newOrder(t, order.MethodCOD)

		err := o.Transition(order.Packed, order.ActorCustomer, placedAt)

		require.ErrorIs(t, err, order.ErrActorNotPermitted)
		var te *order.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "CREATED", te.From)
		assert.Equal(t, "PACKED", te.To)
	})
}

func TestOrder_EventsAreClearable(t *testing.T) {
	o := newOrder(t, order.MethodCOD)
	require.NoError(t, o.Transition(order.Packed, order.ActorAdmin, placedAt))
	require.Len(t, o.Events(), 2)

	o.ClearEvents()

	assert.Empty(t, o.Events())
}

func TestRestoreOrder_RoundTripsState(t *testing.T) {
	o := newOrder(t, order.MethodRazorpay)
	require.NoError(t, o.ConfirmPayment("order_ABC", "pay_1", placedAt))
	state := o.State()
	state.Version = 4

	restored, err := order.RestoreOrder(state)

	require.NoError(t, err)
	assert.Equal(t, state, restored.State())
	assert.Empty(t, restored.Events())
	assert.Equal(t, 4, restored.Version())
}
