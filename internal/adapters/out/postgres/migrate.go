package postgres

import (
	"checkout/internal/adapters/out/postgres/addressrepo"
	"checkout/internal/adapters/out/postgres/cartrepo"
	"checkout/internal/adapters/out/postgres/catalogrepo"
	"checkout/internal/adapters/out/postgres/couponrepo"
	"checkout/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Models lists every table the service reads or writes.
func Models() []any {
	return []any{
		&addressrepo.AddressDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartItemDTO{},
		&couponrepo.CouponDTO{},
		&couponrepo.CouponUsageDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderAddressDTO{},
		&catalogrepo.VariantDTO{},
	}
}

// Migrate creates or alters the tables in Models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
