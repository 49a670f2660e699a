package commands

import (
	"errors"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
)

var (
	ErrEmptyCart            = services.ErrEmptyCart
	ErrAddressNotFound      = services.ErrAddressNotFound
	ErrOutOfStock           = pricing.ErrOutOfStock
	ErrInventoryUnavailable = pricing.ErrInventoryUnavailable
	ErrUnauthenticated      = kernel.ErrAuthenticationRequired

	// ErrCouponNoLongerEligible means a coupon accepted by the summary was
	// rejected when re-validated under lock at placement.
	ErrCouponNoLongerEligible = errors.New("coupon is no longer eligible")

	// ErrPaymentVerificationFailed means the gateway signature did not match.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// ErrPaymentAlreadyUsed means the gateway order is already held by another order.
	ErrPaymentAlreadyUsed = ports.ErrGatewayOrderTaken

	// ErrPaymentAmountMismatch means the gateway order was created for another total.
	ErrPaymentAmountMismatch = errors.New("payment amount does not match the order total")

	// ErrStaleSummary means the cart changed after the summary was issued.
	ErrStaleSummary = errors.New("checkout summary is stale")

	// ErrForbidden is returned to authenticated callers lacking the admin role.
	ErrForbidden = errors.New("operation not permitted")
)
