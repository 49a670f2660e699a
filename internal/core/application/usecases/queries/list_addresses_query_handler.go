package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListAddressesQueryHandler struct {
	db *gorm.DB
}

func NewListAddressesQueryHandler(db *gorm.DB) ListAddressesQueryHandler {
	return ListAddressesQueryHandler{db: db}
}

// Handle lists the caller's addresses, default first, then newest first.
func (h ListAddressesQueryHandler) Handle(ctx context.Context, query ListAddressesQuery) ([]AddressView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, phone, line1, line2, city, state, country, pincode, is_default, created_at
		FROM addresses
		WHERE owner_id = ?
		ORDER BY is_default DESC, created_at DESC
	`, query.OwnerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]AddressView, 0)
	for rows.Next() {
		var (
			v  AddressView
			id uuid.UUID
		)
		d := &v.Details
		if err = rows.Scan(
			&id, &d.Name, &d.Phone, &d.Line1, &d.Line2, &d.City, &d.State, &d.Country, &d.Pincode,
			&v.IsDefault, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		if v.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
