package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// GatewayPaymentFailed is the gateway status of a payment that did not go through.
const GatewayPaymentFailed = "failed"

// GatewayOrder is a payment order created at the gateway before checkout.
type GatewayOrder struct {
	ID       string
	Amount   decimal.Decimal
	Currency string
	Status   string
}

// GatewayPayment is one payment attempt against a gateway order.
type GatewayPayment struct {
	ID       string
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Status   string
}

// PaymentGateway is the online payment collaborator.
type PaymentGateway interface {
	// CreateOrder registers amount with the gateway. receipt is our own reference.
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (GatewayOrder, error)

	// FetchOrder reads back a gateway order, including the amount it was created for.
	FetchOrder(ctx context.Context, gatewayOrderID string) (GatewayOrder, error)

	// FetchPayment reads a payment as the gateway recorded it.
	FetchPayment(ctx context.Context, paymentID string) (GatewayPayment, error)

	// Verify checks a payment signature. A false result with nil error is a
	// signature mismatch; errors are transport failures.
	Verify(ctx context.Context, gatewayOrderID, paymentID, signature string) (bool, error)
}
