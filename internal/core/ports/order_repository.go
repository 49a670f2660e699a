package ports

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
)

// ErrGatewayOrderTaken is returned by Add when another order already holds
// the same gateway order id.
var ErrGatewayOrderTaken = errors.New("gateway order already belongs to an order")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order with its frozen items and addresses.
	// It fails with ErrGatewayOrderTaken for a reused gateway order id.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, payment and delivery changes. It is an optimistic
	// compare-and-swap on the version the aggregate was loaded at and fails with
	// errs.ErrVersionIsInvalid when another transition won the race.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByRazorpayOrderID finds the order a gateway callback refers to, or
	// returns errs.ErrObjectNotFound.
	GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*order.Order, error)
}
