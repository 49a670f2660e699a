package addressrepo

import (
	"context"
	"errors"

	"checkout/internal/adapters/out/postgres/pgerr"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAddressRepository implements ports.AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// LockOwner takes a transaction-scoped advisory lock keyed by the owner, so
// two requests cannot both promote a default address.
func (r *GormAddressRepository) LockOwner(ctx context.Context, ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", "address-book:"+ownerID.String()).
		Error
	return pgerr.Classify(err)
}

func (r *GormAddressRepository) ListByOwner(ctx context.Context, ownerID kernel.UUID) ([]*address.Address, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AddressDTO
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify(err)
	}

	addresses := make([]*address.Address, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, nil
}

func (r *GormAddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.Address, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", id.String())
		}
		return nil, pgerr.Classify(err)
	}
	return toDomain(dto)
}

// Save upserts the address.
func (r *GormAddressRepository) Save(ctx context.Context, a *address.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "phone", "line1", "line2", "city", "state", "country", "pincode", "is_default", "updated_at",
			}),
		}).
		Create(&dto).Error
	return pgerr.Classify(err)
}

func (r *GormAddressRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AddressDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("address", id.String())
	}
	return nil
}
