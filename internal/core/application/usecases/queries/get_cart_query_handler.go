package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"checkout/internal/core/domain/model/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetCartQueryHandler struct {
	db *gorm.DB
}

func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle returns an empty view when the owner has no cart yet.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	var (
		id        uuid.UUID
		version   int
		updatedAt time.Time
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, version, updated_at
		FROM carts
		WHERE owner_key = ?
	`, query.Owner().Key()).Row()
	if err := row.Scan(&id, &version, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return emptyCartView(), nil
		}
		return GetCartQueryResponse{}, err
	}
	cartID, err := toUUID(id)
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, variant_id, quantity, unit_price, tax_rate
		FROM cart_items
		WHERE cart_id = ?
		ORDER BY position
	`, id).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	items := make([]*cart.Item, 0)
	for rows.Next() {
		var (
			itemID, variantID  uuid.UUID
			quantity           int
			unitPrice, taxRate decimal.Decimal
		)
		if err = rows.Scan(&itemID, &variantID, &quantity, &unitPrice, &taxRate); err != nil {
			return GetCartQueryResponse{}, err
		}
		it, itemErr := restoreCartItem(itemID, variantID, quantity, cart.Price{Unit: unitPrice, TaxRate: taxRate})
		if itemErr != nil {
			return GetCartQueryResponse{}, itemErr
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	c, err := cart.RestoreCart(cartID, query.Owner(), items, version, updatedAt)
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	return NewCartView(c), nil
}

func restoreCartItem(itemID, variantID uuid.UUID, quantity int, price cart.Price) (*cart.Item, error) {
	id, err := toUUID(itemID)
	if err != nil {
		return nil, err
	}
	variant, err := toUUID(variantID)
	if err != nil {
		return nil, err
	}
	return cart.RestoreItem(id, variant, quantity, price)
}
