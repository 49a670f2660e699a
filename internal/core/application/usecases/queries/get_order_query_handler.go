package queries

import (
	"context"
	"database/sql"
	"errors"

	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle reports orders of other customers as not found.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)
	notFound := errs.NewObjectNotFoundError("order", query.OrderID().String())

	var (
		v                 OrderView
		userID            uuid.UUID
		estimated, actual sql.NullTime
	)
	t := &v.Totals
	err := db.Raw(`
		SELECT user_id, status, payment_status, payment_method,
			subtotal, discount, tax, shipping, grand_total,
			coupon_code, razorpay_order_id, razorpay_payment_id,
			estimated_delivery_date, actual_delivery_date, created_at, updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(
		&userID, &v.Status, &v.PaymentStatus, &v.PaymentMethod,
		&t.Subtotal, &t.Discount, &t.Tax, &t.Shipping, &t.Grand,
		&v.CouponCode, &v.RazorpayOrderID, &v.RazorpayPaymentID,
		&estimated, &actual, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, notFound
	}
	if err != nil {
		return OrderView{}, err
	}

	v.ID = query.OrderID()
	if v.UserID, err = toUUID(userID); err != nil {
		return OrderView{}, err
	}
	if !query.IsAdmin() && !v.UserID.IsEqual(query.UserID()) {
		return OrderView{}, notFound
	}
	if estimated.Valid {
		v.EstimatedDeliveryDate = &estimated.Time
	}
	if actual.Valid {
		v.ActualDeliveryDate = &actual.Time
	}

	if v.Items, err = h.items(db, query); err != nil {
		return OrderView{}, err
	}
	if v.Addresses, err = h.addresses(db, query); err != nil {
		return OrderView{}, err
	}
	return v, nil
}

func (h GetOrderQueryHandler) items(db *gorm.DB, query GetOrderQuery) ([]OrderItemView, error) {
	rows, err := db.Raw(`
		SELECT id, variant_id, title, sku, unit_price, quantity, tax_rate, tax_amount
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			it            OrderItemView
			id, variantID uuid.UUID
		)
		if err = rows.Scan(&id, &variantID, &it.Title, &it.SKU, &it.UnitPrice, &it.Quantity, &it.TaxRate, &it.TaxAmount); err != nil {
			return nil, err
		}
		if it.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if it.VariantID, err = toUUID(variantID); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (h GetOrderQueryHandler) addresses(db *gorm.DB, query GetOrderQuery) ([]OrderAddressView, error) {
	rows, err := db.Raw(`
		SELECT type, name, phone, line1, line2, city, state, country, pincode
		FROM order_addresses
		WHERE order_id = ?
		ORDER BY CASE type WHEN ? THEN 0 ELSE 1 END
	`, query.OrderID().Bytes(), order.AddressShipping.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := make([]OrderAddressView, 0)
	for rows.Next() {
		var a OrderAddressView
		d := &a.Details
		if err = rows.Scan(&a.Type, &d.Name, &d.Phone, &d.Line1, &d.Line2, &d.City, &d.State, &d.Country, &d.Pincode); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}
