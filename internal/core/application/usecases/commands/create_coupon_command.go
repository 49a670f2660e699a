package commands

import (
	"errors"

	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrCreateCouponCommandIsNotConstructed = errors.New(
	"CreateCouponCommand must be created via NewCreateCouponCommand constructor",
)

// CreateCouponCommand is an administrative request to publish a coupon.
type CreateCouponCommand struct {
	code  string
	terms coupon.Terms

	guard guard.ConstructorGuard
}

func NewCreateCouponCommand(session kernel.Session, code string, terms coupon.Terms) (CreateCouponCommand, error) {
	if err := requireAdmin(session); err != nil {
		return CreateCouponCommand{}, err
	}

	normalized, codeErr := coupon.NormalizeCode(code)
	if err := errors.Join(codeErr, terms.Validate()); err != nil {
		return CreateCouponCommand{}, err
	}

	return CreateCouponCommand{code: normalized, terms: terms, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCouponCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouponCommandIsNotConstructed)
}

func (c CreateCouponCommand) Code() string        { return c.code }
func (c CreateCouponCommand) Terms() coupon.Terms { return c.terms }
