package queries

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrGetCheckoutSummaryQueryIsNotConstructed = errors.New(
	"GetCheckoutSummaryQuery must be created via NewGetCheckoutSummaryQuery constructor",
)

// GetCheckoutSummaryQuery prices the caller's cart for an address, payment
// method and optional coupon. It has no side effects.
type GetCheckoutSummaryQuery struct {
	userID        kernel.UUID
	addressID     kernel.UUID
	couponCode    string
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

func NewGetCheckoutSummaryQuery(
	session kernel.Session,
	addressID kernel.UUID,
	couponCode string,
	paymentMethod order.PaymentMethod,
) (GetCheckoutSummaryQuery, error) {
	userID, err := session.RequireUser()
	if err != nil {
		return GetCheckoutSummaryQuery{}, err
	}
	var addrErr error
	if addressID.IsZero() {
		addrErr = errs.NewValueIsRequiredError("addressId")
	}
	if err = errors.Join(addrErr, paymentMethod.Validate()); err != nil {
		return GetCheckoutSummaryQuery{}, err
	}
	return GetCheckoutSummaryQuery{
		userID:        userID,
		addressID:     addressID,
		couponCode:    strings.TrimSpace(couponCode),
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetCheckoutSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetCheckoutSummaryQueryIsNotConstructed)
}

func (q GetCheckoutSummaryQuery) UserID() kernel.UUID                { return q.userID }
func (q GetCheckoutSummaryQuery) AddressID() kernel.UUID             { return q.addressID }
func (q GetCheckoutSummaryQuery) CouponCode() string                 { return q.couponCode }
func (q GetCheckoutSummaryQuery) PaymentMethod() order.PaymentMethod { return q.paymentMethod }
