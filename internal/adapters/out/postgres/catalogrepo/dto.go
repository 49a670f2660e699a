// Package catalogrepo reads variant prices and stock from the shared catalog
// tables. The catalog service owns these rows; checkout only reads them.
package catalogrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VariantDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title     string          `gorm:"type:varchar(255);not null"`
	SKU       string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
	PriceSale decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxRate   decimal.Decimal `gorm:"type:numeric(6,4);not null"`
	Stock     int             `gorm:"not null"`
}

func (VariantDTO) TableName() string {
	return "variants"
}
