package queries

import (
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrEvaluateCouponQueryIsNotConstructed = errors.New(
	"EvaluateCouponQuery must be created via NewEvaluateCouponQuery constructor",
)

// EvaluateCouponQuery checks a code against the caller's current cart.
// A malformed code is a validation error, not a rejection.
type EvaluateCouponQuery struct {
	owner  cart.Owner
	userID kernel.UUID
	code   string

	guard guard.ConstructorGuard
}

func NewEvaluateCouponQuery(session kernel.Session, code string) (EvaluateCouponQuery, error) {
	owner, err := cart.OwnerForSession(session)
	if err != nil {
		return EvaluateCouponQuery{}, err
	}
	normalized, err := coupon.NormalizeCode(code)
	if err != nil {
		return EvaluateCouponQuery{}, err
	}
	userID, _ := session.UserID()
	return EvaluateCouponQuery{owner: owner, userID: userID, code: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (q EvaluateCouponQuery) Validate() error {
	return q.guard.Validate(ErrEvaluateCouponQueryIsNotConstructed)
}

func (q EvaluateCouponQuery) Owner() cart.Owner { return q.owner }

// UserID is zero for guests; per-user limits then count no prior usage.
func (q EvaluateCouponQuery) UserID() kernel.UUID { return q.userID }
func (q EvaluateCouponQuery) Code() string        { return q.code }
