// Package cartrepo maps carts and their lines to the carts and cart_items tables.
package cartrepo

import (
	"time"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO is one cart. OwnerKey is unique so each owner has at most one cart.
type CartDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	OwnerKey  string        `gorm:"type:varchar(160);not null;uniqueIndex"`
	UserID    *uuid.UUID    `gorm:"type:uuid;index"`
	Version   int           `gorm:"not null"`
	CreatedAt time.Time     `gorm:"not null"`
	UpdatedAt time.Time     `gorm:"not null;index"`
	Items     []CartItemDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO is one cart line; a variant appears at most once per cart.
type CartItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_variant"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_variant"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxRate   decimal.Decimal `gorm:"type:numeric(6,4);not null"`
	Position  int             `gorm:"not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

func fromDomain(c *cart.Cart) CartDTO {
	id := c.ID().Bytes()

	var userID *uuid.UUID
	if uid, ok := c.Owner().UserID(); ok {
		raw := uid.Bytes()
		userID = &raw
	}

	items := make([]CartItemDTO, 0, len(c.Items()))
	for i, it := range c.Items() {
		items = append(items, CartItemDTO{
			ID:        it.ID().Bytes(),
			CartID:    id,
			VariantID: it.VariantID().Bytes(),
			Quantity:  it.Quantity(),
			UnitPrice: it.Price().Unit,
			TaxRate:   it.Price().TaxRate,
			Position:  i,
		})
	}

	return CartDTO{
		ID:        id,
		OwnerKey:  c.Owner().Key(),
		UserID:    userID,
		Version:   c.Version(),
		UpdatedAt: c.UpdatedAt(),
		Items:     items,
	}
}

// toDomain expects dto.Items sorted by position.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	owner, err := cart.OwnerFromKey(dto.OwnerKey)
	if err != nil {
		return nil, err
	}

	items := make([]*cart.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		it, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, it)
	}

	return cart.RestoreCart(id, owner, items, dto.Version, dto.UpdatedAt)
}

func itemToDomain(dto CartItemDTO) (*cart.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}
	return cart.RestoreItem(id, variantID, dto.Quantity, cart.Price{Unit: dto.UnitPrice, TaxRate: dto.TaxRate})
}
