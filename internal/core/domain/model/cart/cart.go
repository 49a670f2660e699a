package cart

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

// Cart is the aggregate root of the Cart Engine.
type Cart struct {
	id        kernel.UUID
	owner     Owner
	items     []*Item
	version   int
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewCart creates an empty cart for owner.
func NewCart(id kernel.UUID, owner Owner, now time.Time) (*Cart, error) {
	if err := errors.Join(id.Validate(), owner.Validate()); err != nil {
		return nil, err
	}
	return &Cart{
		id:        id,
		owner:     owner,
		items:     make([]*Item, 0),
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreCart rebuilds a cart from persistence. Duplicate variants are rejected.
func RestoreCart(id kernel.UUID, owner Owner, items []*Item, version int, updatedAt time.Time) (*Cart, error) {
	c, err := NewCart(id, owner, updatedAt)
	if err != nil {
		return nil, err
	}
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.variantID]; dup {
			return nil, errs.NewValueIsInvalidError("items: duplicate variant " + it.variantID.String())
		}
		seen[it.variantID] = struct{}{}
		c.items = append(c.items, it)
	}
	c.version = version
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

func (c *Cart) ID() kernel.UUID      { return c.id }
func (c *Cart) Owner() Owner         { return c.owner }
func (c *Cart) Version() int         { return c.version }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }
func (c *Cart) IsEmpty() bool        { return len(c.items) == 0 }

// Items returns the lines in insertion order.
func (c *Cart) Items() []*Item {
	return append([]*Item(nil), c.items...)
}

// QuantityOf returns the quantity currently held for variantID (0 if absent).
func (c *Cart) QuantityOf(variantID kernel.UUID) int {
	if it := c.findVariant(variantID); it != nil {
		return it.quantity
	}
	return 0
}

// Item looks up a line by id.
func (c *Cart) Item(itemID kernel.UUID) (*Item, error) {
	for _, it := range c.items {
		if it.id.IsEqual(itemID) {
			return it, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("cart item", itemID.String())
}

// AddItem adds quantity of variantID at price. An existing line for the
// variant is incremented and re-priced instead of duplicated. Stock
// availability of the resulting quantity is checked by the caller.
func (c *Cart) AddItem(variantID kernel.UUID, quantity int, price Price, now time.Time) (*Item, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := price.Validate(); err != nil {
		return nil, err
	}

	if existing := c.findVariant(variantID); existing != nil {
		existing.quantity += quantity
		existing.price = price
		c.touch(now)
		return existing, nil
	}

	it, err := newItem(kernel.NewUUID(), variantID, quantity, price)
	if err != nil {
		return nil, err
	}
	c.items = append(c.items, it)
	c.touch(now)
	return it, nil
}

// UpdateItem sets the quantity of a line.
func (c *Cart) UpdateItem(itemID kernel.UUID, quantity int, now time.Time) (*Item, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	it, err := c.Item(itemID)
	if err != nil {
		return nil, err
	}
	it.quantity = quantity
	c.touch(now)
	return it, nil
}

// RemoveItem drops a line. Removing the last line leaves an empty cart.
func (c *Cart) RemoveItem(itemID kernel.UUID, now time.Time) error {
	for i, it := range c.items {
		if it.id.IsEqual(itemID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.touch(now)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("cart item", itemID.String())
}

// Clear removes every line.
func (c *Cart) Clear(now time.Time) {
	c.items = make([]*Item, 0)
	c.touch(now)
}

// Reprice refreshes the snapshot of a variant's line. It does not bump the
// version: the line's identity and quantity are unchanged.
func (c *Cart) Reprice(variantID kernel.UUID, price Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	it := c.findVariant(variantID)
	if it == nil {
		return errs.NewObjectNotFoundError("cart variant", variantID.String())
	}
	it.price = price
	return nil
}

// Merge adds every line of other into c, summing quantities per variant.
// other is left untouched; the caller deletes it.
func (c *Cart) Merge(other *Cart, now time.Time) error {
	if err := other.Validate(); err != nil {
		return err
	}
	if len(other.items) == 0 {
		return nil
	}
	for _, it := range other.items {
		if _, err := c.AddItem(it.variantID, it.quantity, it.price, now); err != nil {
			return err
		}
	}
	return nil
}

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, it := range c.items {
		total += it.quantity
	}
	return total
}

func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.TaxAmount())
	}
	return total
}

func (c *Cart) GrandTotal() decimal.Decimal {
	return c.Subtotal().Add(c.TaxTotal())
}

func (c *Cart) findVariant(variantID kernel.UUID) *Item {
	for _, it := range c.items {
		if it.variantID.IsEqual(variantID) {
			return it
		}
	}
	return nil
}

func (c *Cart) touch(now time.Time) {
	c.version++
	c.updatedAt = now
}
