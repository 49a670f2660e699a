package order

import (
	"fmt"
	"strings"

	"checkout/internal/pkg/errs"
)

// PaymentStatus is the payment axis of an order, independent of Status.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentRefunded
	PaymentCOD
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending:  "PENDING",
	PaymentPaid:     "PAID",
	PaymentFailed:   "FAILED",
	PaymentRefunded: "REFUNDED",
	PaymentCOD:      "COD",
}

func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidError("paymentStatus " + s)
}

// PaymentMethod is how the customer pays.
type PaymentMethod int

const (
	MethodUnknown PaymentMethod = iota
	MethodRazorpay
	MethodCOD
)

var paymentMethodNames = map[PaymentMethod]string{
	MethodRazorpay: "RAZORPAY",
	MethodCOD:      "COD",
}

func (m PaymentMethod) String() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

func (m PaymentMethod) Validate() error {
	if _, ok := paymentMethodNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// IsOnline reports whether the method settles through the payment gateway.
func (m PaymentMethod) IsOnline() bool {
	return m == MethodRazorpay
}

// InitialPaymentStatus is PENDING for gateway methods and COD for cash on delivery.
func (m PaymentMethod) InitialPaymentStatus() PaymentStatus {
	if m == MethodCOD {
		return PaymentCOD
	}
	return PaymentPending
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, name := range paymentMethodNames {
		if strings.EqualFold(name, s) {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidError("paymentMethod " + s)
}
