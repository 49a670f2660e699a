package cartrepo

import (
	"context"
	"errors"
	"time"

	"checkout/internal/adapters/out/postgres/pgerr"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetForUpdate inserts an empty cart if the owner has none, then locks the row
// with SELECT ... FOR UPDATE. Concurrent first writers converge on one cart.
func (r *GormCartRepository) GetForUpdate(ctx context.Context, owner cart.Owner, now time.Time) (*cart.Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	fresh, err := cart.NewCart(kernel.NewUUID(), owner, now)
	if err != nil {
		return nil, err
	}
	dto := fromDomain(fresh)
	dto.CreatedAt = now
	if err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "owner_key"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(&dto).Error; err != nil {
		return nil, pgerr.Classify(err)
	}

	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), owner)
}

func (r *GormCartRepository) Find(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	return r.load(ctx, r.db.WithContext(ctx), owner)
}

func (r *GormCartRepository) load(ctx context.Context, query *gorm.DB, owner cart.Owner) (*cart.Cart, error) {
	var dto CartDTO
	if err := query.First(&dto, "owner_key = ?", owner.Key()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", owner.Key())
		}
		return nil, pgerr.Classify(err)
	}

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", dto.ID).
		Order("position").
		Find(&dto.Items).Error; err != nil {
		return nil, pgerr.Classify(err)
	}
	return toDomain(dto)
}

// Save upserts the cart row and replaces its lines.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	dto.CreatedAt = c.UpdatedAt()
	db := r.db.WithContext(ctx)

	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "updated_at"}),
		}).
		Omit(clause.Associations).
		Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}

	if err := db.Where("cart_id = ?", dto.ID).Delete(&CartItemDTO{}).Error; err != nil {
		return pgerr.Classify(err)
	}
	if len(dto.Items) == 0 {
		return nil
	}
	return pgerr.Classify(db.Create(&dto.Items).Error)
}

func (r *GormCartRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return pgerr.Classify(r.db.WithContext(ctx).Delete(&CartDTO{}, "id = ?", id.Bytes()).Error)
}

// DeleteAbandonedAnonymous removes guest carts (no user) idle since idleSince.
// Lines go with them through the cascading foreign key.
func (r *GormCartRepository) DeleteAbandonedAnonymous(ctx context.Context, idleSince time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id IS NULL AND updated_at < ?", idleSince).
		Delete(&CartDTO{})
	if result.Error != nil {
		return 0, pgerr.Classify(result.Error)
	}
	return result.RowsAffected, nil
}
