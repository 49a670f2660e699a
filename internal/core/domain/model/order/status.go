package order

import (
	"fmt"
	"strings"

	"checkout/internal/pkg/errs"
)

// Status is the fulfillment state of an order.
type Status int

const (
	Unknown Status = iota
	Created
	Paid
	Packed
	Shipped
	Delivered
	Completed
	Cancelled
	Returned
)

var statusNames = map[Status]string{
	Created:   "CREATED",
	Paid:      "PAID",
	Packed:    "PACKED",
	Shipped:   "SHIPPED",
	Delivered: "DELIVERED",
	Completed: "COMPLETED",
	Cancelled: "CANCELLED",
	Returned:  "RETURNED",
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Created, Paid, Packed, Shipped, Delivered, Completed, Cancelled, Returned}
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	for e := range transitions {
		if e.from == s {
			return false
		}
	}
	return true
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("status " + s)
}

type edge struct {
	from Status
	to   Status
}

// transitions enumerates every allowed edge and who may drive it. Any pair
// missing here is rejected.
var transitions = map[edge][]Actor{
	{Created, Paid}:        {ActorPaymentGateway},
	{Created, Packed}:      {ActorAdmin},
	{Paid, Packed}:         {ActorAdmin},
	{Packed, Shipped}:      {ActorAdmin},
	{Shipped, Delivered}:   {ActorAdmin},
	{Delivered, Completed}: {ActorAdmin},
	{Created, Cancelled}:   {ActorCustomer, ActorAdmin},
	{Paid, Cancelled}:      {ActorCustomer, ActorAdmin},
	{Packed, Cancelled}:    {ActorCustomer, ActorAdmin},
	{Shipped, Returned}:    {ActorAdmin},
	{Delivered, Returned}:  {ActorAdmin},
}

// CanTransition reports whether (s, to) is an allowed edge for any actor.
func (s Status) CanTransition(to Status) bool {
	_, ok := transitions[edge{s, to}]
	return ok
}

// ValidateTransition checks the edge and the actor without side effects.
func (s Status) ValidateTransition(to Status, actor Actor) error {
	actors, ok := transitions[edge{s, to}]
	if !ok {
		return newTransitionError(s, to, actor, ErrInvalidTransition)
	}
	for _, a := range actors {
		if a == actor {
			return nil
		}
	}
	return newTransitionError(s, to, actor, ErrActorNotPermitted)
}
