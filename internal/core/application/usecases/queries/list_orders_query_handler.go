package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.payment_status,
			o.payment_method,
			o.grand_total,
			COALESCE(SUM(i.quantity), 0) AS item_count,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = ?
		GROUP BY o.id
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?
	`, query.UserID().Bytes(), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderListItem, 0)
	for rows.Next() {
		var (
			item OrderListItem
			id   uuid.UUID
		)
		if err = rows.Scan(
			&id, &item.Status, &item.PaymentStatus, &item.PaymentMethod,
			&item.GrandTotal, &item.ItemCount, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if item.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
