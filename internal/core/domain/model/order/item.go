package order

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is a frozen order line copied from the cart and catalog at placement.
type Item struct {
	ID        kernel.UUID
	VariantID kernel.UUID
	Title     string
	SKU       string
	UnitPrice decimal.Decimal
	Quantity  int
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
}

// NewItem snapshots a line and derives its tax from the undiscounted subtotal.
func NewItem(variantID kernel.UUID, title, sku string, unitPrice decimal.Decimal, quantity int, taxRate decimal.Decimal) (Item, error) {
	item := Item{
		ID:        kernel.NewUUID(),
		VariantID: variantID,
		Title:     strings.TrimSpace(title),
		SKU:       strings.TrimSpace(sku),
		UnitPrice: unitPrice,
		Quantity:  quantity,
		TaxRate:   taxRate,
	}
	item.TaxAmount = kernel.RoundMoney(item.Subtotal().Mul(taxRate))
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (i Item) Validate() error {
	var titleErr, qtyErr error
	if i.Title == "" {
		titleErr = errs.NewValueIsRequiredError("item title")
	}
	if i.Quantity < 1 {
		qtyErr = errs.NewValueIsInvalidError("item quantity")
	}
	return errors.Join(
		i.ID.Validate(),
		i.VariantID.Validate(),
		titleErr,
		qtyErr,
		kernel.ValidateMoney("item unitPrice", i.UnitPrice),
		kernel.ValidateRate("item taxRate", i.TaxRate),
		kernel.ValidateMoney("item taxAmount", i.TaxAmount),
	)
}

func (i Item) Subtotal() decimal.Decimal {
	return kernel.RoundMoney(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

func (i Item) Total() decimal.Decimal {
	return i.Subtotal().Add(i.TaxAmount)
}

// AddressType distinguishes shipping and billing snapshots.
type AddressType int

const (
	AddressShipping AddressType = iota + 1
	AddressBilling
)

func (t AddressType) String() string {
	switch t {
	case AddressShipping:
		return "SHIPPING"
	case AddressBilling:
		return "BILLING"
	default:
		return "UNKNOWN"
	}
}

func ParseAddressType(s string) (AddressType, error) {
	switch strings.ToUpper(s) {
	case "SHIPPING":
		return AddressShipping, nil
	case "BILLING":
		return AddressBilling, nil
	default:
		return 0, errs.NewValueIsInvalidError("address type " + s)
	}
}

// Address is a frozen copy of a customer address.
type Address struct {
	Type    AddressType
	Details address.Details
}

// Totals are the authoritative amounts computed at placement.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Grand    decimal.Decimal
}

// GrandTotalOf is max(0, subtotal + shipping + tax - discount).
func GrandTotalOf(subtotal, shipping, tax, discount decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, subtotal.Add(shipping).Add(tax).Sub(discount))
}

func (t Totals) Validate() error {
	var grandErr error
	if !t.Grand.Equal(GrandTotalOf(t.Subtotal, t.Shipping, t.Tax, t.Discount)) {
		grandErr = errs.NewValueIsInvalidError("grandTotal")
	}
	return errors.Join(
		kernel.ValidateMoney("subtotal", t.Subtotal),
		kernel.ValidateMoney("discountTotal", t.Discount),
		kernel.ValidateMoney("taxTotal", t.Tax),
		kernel.ValidateMoney("shippingTotal", t.Shipping),
		grandErr,
	)
}
