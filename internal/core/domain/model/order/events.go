package order

import (
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventPaymentConfirmed   = "order.payment_confirmed"
	EventPaymentFailed      = "order.payment_failed"
)

type baseEvent struct {
	OrderID kernel.UUID `json:"orderId"`
	At      time.Time   `json:"occurredAt"`
}

func (e baseEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e baseEvent) OccurredAt() time.Time    { return e.At }

type PlacedEvent struct {
	baseEvent
	UserID        kernel.UUID     `json:"userId"`
	PaymentMethod string          `json:"paymentMethod"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	CouponCode    string          `json:"couponCode,omitempty"`
}

func (PlacedEvent) EventName() string { return EventOrderPlaced }

type StatusChangedEvent struct {
	baseEvent
	From          string `json:"from"`
	To            string `json:"to"`
	PaymentStatus string `json:"paymentStatus"`
	Actor         string `json:"actor"`
}

func (StatusChangedEvent) EventName() string { return EventOrderStatusChanged }

type PaymentConfirmedEvent struct {
	baseEvent
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
}

func (PaymentConfirmedEvent) EventName() string { return EventPaymentConfirmed }

type PaymentFailedEvent struct {
	baseEvent
	RazorpayOrderID string `json:"razorpayOrderId"`
}

func (PaymentFailedEvent) EventName() string { return EventPaymentFailed }
