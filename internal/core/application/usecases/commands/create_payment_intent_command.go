package commands

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrCreatePaymentIntentCommandIsNotConstructed = errors.New(
	"CreatePaymentIntentCommand must be created via NewCreatePaymentIntentCommand constructor",
)

// CreatePaymentIntentCommand registers the authoritative grand total of the
// caller's cart with the payment gateway before online checkout.
type CreatePaymentIntentCommand struct {
	userID     kernel.UUID
	addressID  kernel.UUID
	couponCode string

	guard guard.ConstructorGuard
}

func NewCreatePaymentIntentCommand(session kernel.Session, addressID kernel.UUID, couponCode string) (CreatePaymentIntentCommand, error) {
	userID, err := session.RequireUser()
	if err != nil {
		return CreatePaymentIntentCommand{}, err
	}
	if addressID.IsZero() {
		return CreatePaymentIntentCommand{}, errs.NewValueIsRequiredError("addressId")
	}
	return CreatePaymentIntentCommand{
		userID:     userID,
		addressID:  addressID,
		couponCode: strings.TrimSpace(couponCode),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePaymentIntentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentIntentCommandIsNotConstructed)
}

func (c CreatePaymentIntentCommand) UserID() kernel.UUID    { return c.userID }
func (c CreatePaymentIntentCommand) AddressID() kernel.UUID { return c.addressID }
func (c CreatePaymentIntentCommand) CouponCode() string     { return c.couponCode }
