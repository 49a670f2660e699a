package cart

import (
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity rejects quantities below 1.
var ErrInvalidQuantity = errs.NewValueIsInvalidError("quantity")

// Price is the catalog price snapshot applied to a line.
type Price struct {
	Unit    decimal.Decimal
	TaxRate decimal.Decimal
}

func (p Price) Validate() error {
	return errors.Join(
		kernel.ValidateMoney("unitPrice", p.Unit),
		kernel.ValidateRate("taxRate", p.TaxRate),
	)
}

// Item is one cart line.
type Item struct {
	id        kernel.UUID
	variantID kernel.UUID
	quantity  int
	price     Price
}

func newItem(id, variantID kernel.UUID, quantity int, price Price) (*Item, error) {
	if err := errors.Join(id.Validate(), variantID.Validate(), validateQuantity(quantity), price.Validate()); err != nil {
		return nil, err
	}
	return &Item{id: id, variantID: variantID, quantity: quantity, price: price}, nil
}

// RestoreItem rebuilds a line from persistence.
func RestoreItem(id, variantID kernel.UUID, quantity int, price Price) (*Item, error) {
	return newItem(id, variantID, quantity, price)
}

func (i *Item) ID() kernel.UUID        { return i.id }
func (i *Item) VariantID() kernel.UUID { return i.variantID }
func (i *Item) Quantity() int          { return i.quantity }
func (i *Item) Price() Price           { return i.price }

// Subtotal is unit price times quantity.
func (i *Item) Subtotal() decimal.Decimal {
	return kernel.RoundMoney(i.price.Unit.Mul(decimal.NewFromInt(int64(i.quantity))))
}

// TaxAmount is tax on the undiscounted line subtotal.
func (i *Item) TaxAmount() decimal.Decimal {
	return kernel.RoundMoney(i.Subtotal().Mul(i.price.TaxRate))
}

func (i *Item) Total() decimal.Decimal {
	return i.Subtotal().Add(i.TaxAmount())
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
