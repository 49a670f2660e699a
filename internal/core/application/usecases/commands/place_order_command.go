package commands

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PaymentProof is the gateway's proof that the customer already paid.
type PaymentProof struct {
	RazorpayOrderID   string
	RazorpayPaymentID string
	Signature         string
}

func (p PaymentProof) validate() error {
	var err error
	if p.RazorpayOrderID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("paymentProof.razorpayOrderId"))
	}
	if p.RazorpayPaymentID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("paymentProof.razorpayPaymentId"))
	}
	if p.Signature == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("paymentProof.razorpaySignature"))
	}
	return err
}

// PlaceOrderParams are the optional parts of an order placement request.
type PlaceOrderParams struct {
	BillingAddressID kernel.UUID
	CouponCode       string
	Proof            *PaymentProof
	// GatewayOrderID links an online order to a payment intent that will be
	// confirmed later by callback. Ignored when Proof is set.
	GatewayOrderID string
	// ExpectedCartVersion is the cartVersion of the summary the customer saw.
	ExpectedCartVersion *int
}

type PlaceOrderCommand struct {
	userID        kernel.UUID
	addressID     kernel.UUID
	paymentMethod order.PaymentMethod
	params        PlaceOrderParams

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	session kernel.Session,
	addressID kernel.UUID,
	paymentMethod order.PaymentMethod,
	params PlaceOrderParams,
) (PlaceOrderCommand, error) {
	userID, err := session.RequireUser()
	if err != nil {
		return PlaceOrderCommand{}, err
	}

	var addrErr, proofErr error
	if addressID.IsZero() {
		addrErr = errs.NewValueIsRequiredError("addressId")
	}
	if params.Proof != nil {
		proofErr = params.Proof.validate()
		if proofErr == nil && !paymentMethod.IsOnline() {
			proofErr = errs.NewValueIsInvalidErrorWithCause("paymentProof", order.ErrPaymentMismatch)
		}
		params.GatewayOrderID = params.Proof.RazorpayOrderID
	}
	if err = errors.Join(addrErr, paymentMethod.Validate(), proofErr); err != nil {
		return PlaceOrderCommand{}, err
	}
	if !paymentMethod.IsOnline() {
		params.GatewayOrderID = ""
	}
	params.CouponCode = strings.TrimSpace(params.CouponCode)

	return PlaceOrderCommand{
		userID:        userID,
		addressID:     addressID,
		paymentMethod: paymentMethod,
		params:        params,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) UserID() kernel.UUID                { return c.userID }
func (c PlaceOrderCommand) AddressID() kernel.UUID             { return c.addressID }
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c PlaceOrderCommand) BillingAddressID() kernel.UUID      { return c.params.BillingAddressID }
func (c PlaceOrderCommand) CouponCode() string                 { return c.params.CouponCode }
func (c PlaceOrderCommand) Proof() *PaymentProof               { return c.params.Proof }
func (c PlaceOrderCommand) GatewayOrderID() string             { return c.params.GatewayOrderID }
func (c PlaceOrderCommand) ExpectedCartVersion() *int          { return c.params.ExpectedCartVersion }
