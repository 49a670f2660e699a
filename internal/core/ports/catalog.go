package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// VariantPrice is the live sale price and tax rate of a variant.
type VariantPrice struct {
	Price   decimal.Decimal
	TaxRate decimal.Decimal
}

// Catalog is the product catalog and inventory collaborator. Implementations
// return errs.ErrObjectNotFound for unknown variants and
// errs.ErrDependencyUnavailable for timeouts and transport failures.
type Catalog interface {
	GetVariantPrice(ctx context.Context, variantID kernel.UUID) (VariantPrice, error)
	CheckAvailability(ctx context.Context, variantID kernel.UUID, quantity int) (bool, error)
	GetVariantDetails(ctx context.Context, variantID kernel.UUID) (services.VariantDetails, error)
}
