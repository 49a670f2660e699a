package commands

import (
	"errors"
	"strings"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrHandlePaymentCallbackCommandIsNotConstructed = errors.New(
	"HandlePaymentCallbackCommand must be created via NewHandlePaymentCallbackCommand constructor",
)

// HandlePaymentCallbackCommand carries a payment gateway notification.
// Every notification names the payment; successful ones must also be signed.
type HandlePaymentCallbackCommand struct {
	razorpayOrderID   string
	razorpayPaymentID string
	signature         string
	succeeded         bool

	guard guard.ConstructorGuard
}

// NewHandlePaymentCallbackCommand accepts the gateway status "captured",
// "authorized" or "paid" as success and "failed" as failure.
func NewHandlePaymentCallbackCommand(razorpayOrderID, razorpayPaymentID, signature, status string) (HandlePaymentCallbackCommand, error) {
	cmd := HandlePaymentCallbackCommand{
		razorpayOrderID:   strings.TrimSpace(razorpayOrderID),
		razorpayPaymentID: strings.TrimSpace(razorpayPaymentID),
		signature:         strings.TrimSpace(signature),
		guard:             guard.NewConstructorGuard(),
	}

	switch strings.ToLower(strings.TrimSpace(status)) {
	case "captured", "authorized", "paid":
		cmd.succeeded = true
	case "failed":
	default:
		return HandlePaymentCallbackCommand{}, errs.NewValueIsInvalidError("status")
	}

	var err error
	if cmd.razorpayOrderID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("razorpayOrderId"))
	}
	if cmd.razorpayPaymentID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("razorpayPaymentId"))
	}
	if cmd.succeeded && cmd.signature == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("razorpaySignature"))
	}
	if err != nil {
		return HandlePaymentCallbackCommand{}, err
	}
	return cmd, nil
}

func (c HandlePaymentCallbackCommand) Validate() error {
	return c.guard.Validate(ErrHandlePaymentCallbackCommandIsNotConstructed)
}

func (c HandlePaymentCallbackCommand) RazorpayOrderID() string   { return c.razorpayOrderID }
func (c HandlePaymentCallbackCommand) RazorpayPaymentID() string { return c.razorpayPaymentID }
func (c HandlePaymentCallbackCommand) Signature() string         { return c.signature }
func (c HandlePaymentCallbackCommand) Succeeded() bool           { return c.succeeded }
