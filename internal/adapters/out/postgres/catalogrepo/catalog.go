package catalogrepo

import (
	"context"
	"errors"
	"time"

	"checkout/internal/adapters/out/postgres/pgerr"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/metric"

	"gorm.io/gorm"
)

// GormCatalog implements ports.Catalog. Every call runs outside the caller's
// transaction and is bounded by timeout.
type GormCatalog struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormCatalog(db *gorm.DB, timeout time.Duration) *GormCatalog {
	return &GormCatalog{db: db, timeout: timeout}
}

func (c *GormCatalog) GetVariantPrice(ctx context.Context, variantID kernel.UUID) (ports.VariantPrice, error) {
	dto, err := c.variant(ctx, "price", variantID)
	if err != nil {
		return ports.VariantPrice{}, err
	}
	return ports.VariantPrice{Price: dto.PriceSale, TaxRate: dto.TaxRate}, nil
}

func (c *GormCatalog) CheckAvailability(ctx context.Context, variantID kernel.UUID, quantity int) (bool, error) {
	dto, err := c.variant(ctx, "availability", variantID)
	if err != nil {
		return false, err
	}
	return dto.Stock >= quantity, nil
}

func (c *GormCatalog) GetVariantDetails(ctx context.Context, variantID kernel.UUID) (services.VariantDetails, error) {
	dto, err := c.variant(ctx, "details", variantID)
	if err != nil {
		return services.VariantDetails{}, err
	}
	return services.VariantDetails{Title: dto.Title, SKU: dto.SKU}, nil
}

func (c *GormCatalog) variant(ctx context.Context, operation string, variantID kernel.UUID) (VariantDTO, error) {
	if err := variantID.Validate(); err != nil {
		return VariantDTO{}, err
	}

	started := time.Now()
	defer func() {
		metric.CatalogDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var dto VariantDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", variantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VariantDTO{}, errs.NewObjectNotFoundError("variant", variantID.String())
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return VariantDTO{}, errs.NewDependencyUnavailableErrorWithCause("catalog", err)
		}
		return VariantDTO{}, pgerr.Classify(err)
	}
	return dto, nil
}
