package services

import (
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ShippingPolicy prices shipping for a cart subtotal.
type ShippingPolicy interface {
	ShippingFor(subtotal decimal.Decimal) decimal.Decimal
}

// FlatShippingPolicy charges Fee unless the subtotal reaches FreeThreshold.
// A zero FreeThreshold ships every order free.
type FlatShippingPolicy struct {
	Fee           decimal.Decimal
	FreeThreshold decimal.Decimal
}

func NewFlatShippingPolicy(fee, freeThreshold decimal.Decimal) (FlatShippingPolicy, error) {
	if err := kernel.ValidateMoney("shippingFee", fee); err != nil {
		return FlatShippingPolicy{}, err
	}
	if err := kernel.ValidateMoney("freeShippingThreshold", freeThreshold); err != nil {
		return FlatShippingPolicy{}, err
	}
	return FlatShippingPolicy{Fee: kernel.RoundMoney(fee), FreeThreshold: freeThreshold}, nil
}

func (p FlatShippingPolicy) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.Fee
}

// DeliveryPolicy estimates when an order placed at placedAt reaches pincode.
type DeliveryPolicy interface {
	EstimateFor(placedAt time.Time, pincode string) time.Time
}

// FixedDaysDeliveryPolicy promises delivery Days calendar days after placement.
type FixedDaysDeliveryPolicy struct {
	Days int
}

func (p FixedDaysDeliveryPolicy) EstimateFor(placedAt time.Time, _ string) time.Time {
	y, m, d := placedAt.AddDate(0, 0, p.Days).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, placedAt.Location())
}
