package commands

import (
	"errors"

	"checkout/internal/pkg/guard"
)

var ErrDeactivateExpiredCouponsCommandIsNotConstructed = errors.New(
	"DeactivateExpiredCouponsCommand must be created via NewDeactivateExpiredCouponsCommand constructor",
)

// DeactivateExpiredCouponsCommand switches off every active coupon whose
// validity window has closed. Issued by the coupon expiry job.
type DeactivateExpiredCouponsCommand struct {
	guard guard.ConstructorGuard
}

func NewDeactivateExpiredCouponsCommand() (DeactivateExpiredCouponsCommand, error) {
	return DeactivateExpiredCouponsCommand{guard: guard.NewConstructorGuard()}, nil
}

func (c DeactivateExpiredCouponsCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateExpiredCouponsCommandIsNotConstructed)
}
