package order

import (
	"errors"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// Draft carries everything needed to place an order.
type Draft struct {
	UserID          kernel.UUID
	PaymentMethod   PaymentMethod
	Items           []Item
	ShippingAddress Address
	// BillingAddress is nil when billing equals shipping.
	BillingAddress        *Address
	Totals                Totals
	CouponCode            string
	RazorpayOrderID       string
	EstimatedDeliveryDate *time.Time
}

// State is the full persisted state of an order, used by RestoreOrder.
type State struct {
	ID                    kernel.UUID
	UserID                kernel.UUID
	Status                Status
	PaymentStatus         PaymentStatus
	PaymentMethod         PaymentMethod
	Items                 []Item
	Addresses             []Address
	Totals                Totals
	CouponCode            string
	RazorpayOrderID       string
	RazorpayPaymentID     string
	EstimatedDeliveryDate *time.Time
	ActualDeliveryDate    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Version               int
}

// Order is the aggregate root of order placement and lifecycle.
type Order struct {
	state  State
	events []kernel.DomainEvent

	guard guard.ConstructorGuard
}

// NewOrder places an order in CREATED with PENDING (online) or COD payment status.
func NewOrder(id kernel.UUID, draft Draft, now time.Time) (*Order, error) {
	addresses := []Address{draft.ShippingAddress}
	if draft.BillingAddress != nil {
		addresses = append(addresses, *draft.BillingAddress)
	}

	o, err := RestoreOrder(State{
		ID:                    id,
		UserID:                draft.UserID,
		Status:                Created,
		PaymentStatus:         draft.PaymentMethod.InitialPaymentStatus(),
		PaymentMethod:         draft.PaymentMethod,
		Items:                 draft.Items,
		Addresses:             addresses,
		Totals:                draft.Totals,
		CouponCode:            strings.ToUpper(strings.TrimSpace(draft.CouponCode)),
		RazorpayOrderID:       draft.RazorpayOrderID,
		EstimatedDeliveryDate: draft.EstimatedDeliveryDate,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	if err != nil {
		return nil, err
	}

	o.record(PlacedEvent{
		baseEvent:     baseEvent{OrderID: id, At: now},
		UserID:        draft.UserID,
		PaymentMethod: draft.PaymentMethod.String(),
		GrandTotal:    draft.Totals.Grand,
		CouponCode:    o.state.CouponCode,
	})
	return o, nil
}

// RestoreOrder rebuilds an order from persistence. Slices are copied.
func RestoreOrder(s State) (*Order, error) {
	var itemsErr, addrErr error
	if len(s.Items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	for _, it := range s.Items {
		itemsErr = errors.Join(itemsErr, it.Validate())
	}
	shipping := 0
	for _, a := range s.Addresses {
		if a.Type == AddressShipping {
			shipping++
		}
	}
	if shipping != 1 {
		addrErr = errs.NewValueIsInvalidError("addresses: exactly one shipping address is required")
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.UserID.Validate(),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
		s.PaymentMethod.Validate(),
		s.Totals.Validate(),
		itemsErr,
		addrErr,
	); err != nil {
		return nil, err
	}

	s.Items = append([]Item(nil), s.Items...)
	s.Addresses = append([]Address(nil), s.Addresses...)
	return &Order{state: s, guard: guard.NewConstructorGuard()}, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID              { return o.state.ID }
func (o *Order) UserID() kernel.UUID          { return o.state.UserID }
func (o *Order) Status() Status               { return o.state.Status }
func (o *Order) PaymentStatus() PaymentStatus { return o.state.PaymentStatus }
func (o *Order) PaymentMethod() PaymentMethod { return o.state.PaymentMethod }
func (o *Order) Totals() Totals               { return o.state.Totals }
func (o *Order) CouponCode() string           { return o.state.CouponCode }
func (o *Order) RazorpayOrderID() string      { return o.state.RazorpayOrderID }
func (o *Order) RazorpayPaymentID() string    { return o.state.RazorpayPaymentID }
func (o *Order) CreatedAt() time.Time         { return o.state.CreatedAt }
func (o *Order) UpdatedAt() time.Time         { return o.state.UpdatedAt }

// Version is the persisted version this aggregate was loaded at.
func (o *Order) Version() int { return o.state.Version }

func (o *Order) EstimatedDeliveryDate() *time.Time { return copyTime(o.state.EstimatedDeliveryDate) }
func (o *Order) ActualDeliveryDate() *time.Time    { return copyTime(o.state.ActualDeliveryDate) }

// Items returns a copy of the frozen lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.state.Items...)
}

// Addresses returns a copy of the frozen address snapshots.
func (o *Order) Addresses() []Address {
	return append([]Address(nil), o.state.Addresses...)
}

// State returns a copy of the full state for persistence adapters.
func (o *Order) State() State {
	s := o.state
	s.Items = o.Items()
	s.Addresses = o.Addresses()
	s.EstimatedDeliveryDate = copyTime(s.EstimatedDeliveryDate)
	s.ActualDeliveryDate = copyTime(s.ActualDeliveryDate)
	return s
}

func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.state.UserID.IsEqual(userID)
}

// Transition moves the order to status to on behalf of actor. A rejected
// transition leaves the order unchanged.
//
// Moving to PAID settles a pending online payment. ConfirmPayment does the
// same and also records the gateway payment id.
func (o *Order) Transition(to Status, actor Actor, now time.Time) error {
	from := o.state.Status
	if err := from.ValidateTransition(to, actor); err != nil {
		return err
	}

	switch {
	case to == Paid:
		if err := o.payable(actor); err != nil {
			return err
		}
		o.state.PaymentStatus = PaymentPaid
	case from == Created && to == Packed && o.state.PaymentMethod != MethodCOD:
		return newTransitionError(from, to, actor, ErrInvalidTransition)
	}

	o.apply(to, actor, now)
	return nil
}

func (o *Order) payable(actor Actor) error {
	if !o.state.PaymentMethod.IsOnline() {
		return ErrPaymentMismatch
	}
	if o.state.PaymentStatus != PaymentPending {
		return newTransitionError(o.state.PaymentStatus, PaymentPaid, actor, ErrInvalidTransition)
	}
	return nil
}

func (o *Order) apply(to Status, actor Actor, now time.Time) {
	from := o.state.Status
	o.state.Status = to

	switch to {
	case Cancelled, Returned:
		if o.state.PaymentStatus == PaymentPaid {
			o.state.PaymentStatus = PaymentRefunded
		}
	case Delivered:
		delivered := now
		o.state.ActualDeliveryDate = &delivered
		if o.state.PaymentStatus == PaymentCOD {
			o.state.PaymentStatus = PaymentPaid
		}
	}
	o.state.UpdatedAt = now

	o.record(StatusChangedEvent{
		baseEvent:     baseEvent{OrderID: o.state.ID, At: now},
		From:          from.String(),
		To:            to.String(),
		PaymentStatus: o.state.PaymentStatus.String(),
		Actor:         actor.String(),
	})
}

// ConfirmPayment applies a verified gateway payment: PENDING becomes PAID and
// the order moves CREATED -> PAID. Confirming an already paid order is a no-op.
func (o *Order) ConfirmPayment(razorpayOrderID, razorpayPaymentID string, now time.Time) error {
	if err := o.matchGatewayOrder(razorpayOrderID); err != nil {
		return err
	}
	if razorpayPaymentID == "" {
		return errs.NewValueIsRequiredError("razorpayPaymentId")
	}
	if o.state.PaymentStatus == PaymentPaid {
		return nil
	}
	if o.state.PaymentStatus != PaymentPending {
		return newTransitionError(o.state.PaymentStatus, PaymentPaid, ActorPaymentGateway, ErrInvalidTransition)
	}
	if err := o.state.Status.ValidateTransition(Paid, ActorPaymentGateway); err != nil {
		return err
	}

	o.state.RazorpayOrderID = razorpayOrderID
	o.state.RazorpayPaymentID = razorpayPaymentID
	o.record(PaymentConfirmedEvent{
		baseEvent:         baseEvent{OrderID: o.state.ID, At: now},
		RazorpayOrderID:   razorpayOrderID,
		RazorpayPaymentID: razorpayPaymentID,
	})
	return o.Transition(Paid, ActorPaymentGateway, now)
}

// MarkPaymentFailed records a failed gateway payment. The order stays CREATED
// so the customer can cancel it. Repeated failures are no-ops.
func (o *Order) MarkPaymentFailed(razorpayOrderID string, now time.Time) error {
	if err := o.matchGatewayOrder(razorpayOrderID); err != nil {
		return err
	}
	switch o.state.PaymentStatus {
	case PaymentFailed:
		return nil
	case PaymentPending:
	default:
		return newTransitionError(o.state.PaymentStatus, PaymentFailed, ActorPaymentGateway, ErrInvalidTransition)
	}

	o.state.RazorpayOrderID = razorpayOrderID
	o.state.PaymentStatus = PaymentFailed
	o.state.UpdatedAt = now
	o.record(PaymentFailedEvent{
		baseEvent:       baseEvent{OrderID: o.state.ID, At: now},
		RazorpayOrderID: razorpayOrderID,
	})
	return nil
}

func (o *Order) matchGatewayOrder(razorpayOrderID string) error {
	if !o.state.PaymentMethod.IsOnline() {
		return ErrPaymentMismatch
	}
	if razorpayOrderID == "" {
		return errs.NewValueIsRequiredError("razorpayOrderId")
	}
	if o.state.RazorpayOrderID != "" && o.state.RazorpayOrderID != razorpayOrderID {
		return ErrPaymentMismatch
	}
	return nil
}

// Events returns the events recorded since the aggregate was loaded.
func (o *Order) Events() []kernel.DomainEvent {
	return append([]kernel.DomainEvent(nil), o.events...)
}

// ClearEvents drops recorded events once they have been published.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) record(e kernel.DomainEvent) {
	o.events = append(o.events, e)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
