package services

import (
	"errors"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
)

// ErrVariantDetailsMissing means the catalog returned no title/sku for a line.
var ErrVariantDetailsMissing = errors.New("variant details missing")

// VariantDetails are the catalog facts frozen into an order line.
type VariantDetails struct {
	Title string
	SKU   string
}

// OrderDrafter turns an authoritative summary into an order draft.
type OrderDrafter struct{}

func NewOrderDrafter() OrderDrafter {
	return OrderDrafter{}
}

// Draft copies every summary line and the address into frozen order values.
// billing is optional and is only snapshotted when it differs from shipping.
func (OrderDrafter) Draft(
	userID kernel.UUID,
	summary Summary,
	details map[kernel.UUID]VariantDetails,
	billing *address.Address,
	razorpayOrderID string,
) (order.Draft, error) {
	if summary.Address == nil {
		return order.Draft{}, ErrAddressNotFound
	}
	if len(summary.Lines) == 0 {
		return order.Draft{}, ErrEmptyCart
	}

	items := make([]order.Item, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		d, ok := details[line.VariantID]
		if !ok {
			return order.Draft{}, errs.NewObjectNotFoundErrorWithCause("variant", line.VariantID.String(), ErrVariantDetailsMissing)
		}
		item, err := order.NewItem(line.VariantID, d.Title, d.SKU, line.UnitPrice, line.Quantity, line.TaxRate)
		if err != nil {
			return order.Draft{}, err
		}
		items = append(items, item)
	}

	draft := order.Draft{
		UserID:          userID,
		PaymentMethod:   summary.PaymentMethod,
		Items:           items,
		ShippingAddress: order.Address{Type: order.AddressShipping, Details: summary.Address.Details()},
		Totals:          summary.Totals(),
		CouponCode:      summary.AppliedCouponCode(),
		RazorpayOrderID: razorpayOrderID,
	}
	if billing != nil && !billing.ID().IsEqual(summary.Address.ID()) {
		if !billing.IsOwnedBy(userID) {
			return order.Draft{}, ErrAddressNotFound
		}
		draft.BillingAddress = &order.Address{Type: order.AddressBilling, Details: billing.Details()}
	}
	if !summary.EstimatedDelivery.IsZero() {
		eta := summary.EstimatedDelivery
		draft.EstimatedDeliveryDate = &eta
	}
	return draft, nil
}
