package commands

import (
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrMergeCartsCommandIsNotConstructed = errors.New(
	"MergeCartsCommand must be created via NewMergeCartsCommand constructor",
)

// MergeCartsCommand folds the guest cart of the session into the signed-in
// user's cart. It is issued right after login.
type MergeCartsCommand struct {
	user      cart.Owner
	anonymous cart.Owner

	guard guard.ConstructorGuard
}

func NewMergeCartsCommand(session kernel.Session) (MergeCartsCommand, error) {
	if _, err := session.RequireUser(); err != nil {
		return MergeCartsCommand{}, err
	}
	if session.SessionID() == "" {
		return MergeCartsCommand{}, errs.NewValueIsRequiredError("sessionId")
	}

	user, err := cart.OwnerForSession(session)
	if err != nil {
		return MergeCartsCommand{}, err
	}
	anonymous, err := cart.AnonymousOwner(session.SessionID())
	if err != nil {
		return MergeCartsCommand{}, err
	}

	return MergeCartsCommand{user: user, anonymous: anonymous, guard: guard.NewConstructorGuard()}, nil
}

func (c MergeCartsCommand) Validate() error {
	return c.guard.Validate(ErrMergeCartsCommandIsNotConstructed)
}

func (c MergeCartsCommand) User() cart.Owner      { return c.user }
func (c MergeCartsCommand) Anonymous() cart.Owner { return c.anonymous }
