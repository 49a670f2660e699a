package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidTransition is returned for any (from, to) pair outside the transition graph.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrActorNotPermitted is returned when the edge exists but the actor may not drive it.
	ErrActorNotPermitted = errors.New("actor is not permitted to perform this transition")

	// ErrPaymentMismatch is returned when a gateway callback references another gateway order.
	ErrPaymentMismatch = errors.New("payment does not belong to this order")
)

// TransitionError describes a rejected status or payment-status change.
type TransitionError struct {
	From  string
	To    string
	Actor Actor
	Err   error
}

func newTransitionError(from, to fmt.Stringer, actor Actor, err error) *TransitionError {
	return &TransitionError{From: from.String(), To: to.String(), Actor: actor, Err: err}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s by %s", e.Err, e.From, e.To, e.Actor)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
