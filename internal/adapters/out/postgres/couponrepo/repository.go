package couponrepo

import (
	"context"
	"errors"
	"time"

	"checkout/internal/adapters/out/postgres/pgerr"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCouponRepository implements ports.CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ports.ErrCouponCodeTaken
		}
		return pgerr.Classify(err)
	}
	return nil
}

func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.findByCode(r.db.WithContext(ctx), code)
}

func (r *GormCouponRepository) FindByCodeForUpdate(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.findByCode(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), code)
}

func (r *GormCouponRepository) findByCode(query *gorm.DB, code string) (*coupon.Coupon, error) {
	var dto CouponDTO
	if err := query.First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", code)
		}
		return nil, pgerr.Classify(err)
	}
	return toDomain(dto)
}

func (r *GormCouponRepository) UserUsage(ctx context.Context, couponID, userID kernel.UUID) (int, error) {
	var count int
	err := r.db.WithContext(ctx).
		Model(&CouponUsageDTO{}).
		Select("COALESCE(SUM(count), 0)").
		Where("coupon_id = ? AND user_id = ?", couponID.Bytes(), userID.Bytes()).
		Scan(&count).Error
	return count, pgerr.Classify(err)
}

// Redeem increments used_count only while it is below usage_limit, so two
// transactions can never both take the last redemption.
func (r *GormCouponRepository) Redeem(ctx context.Context, c *coupon.Coupon, userID kernel.UUID) error {
	if err := errors.Join(c.Validate(), userID.Validate()); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)

	result := db.Model(&CouponDTO{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", c.ID().Bytes()).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return coupon.ErrUsageLimitReached
	}

	usage := CouponUsageDTO{CouponID: c.ID().Bytes(), UserID: userID.Bytes(), Count: 1}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "coupon_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("coupon_usages.count + 1")}),
	}).Create(&usage).Error
	return pgerr.Classify(err)
}

// Update persists the active flag.
func (r *GormCouponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	if err := c.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("id = ?", c.ID().Bytes()).
		Update("is_active", c.IsActive())
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("coupon", c.ID().String())
	}
	return nil
}

func (r *GormCouponRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*coupon.Coupon, error) {
	var dtos []CouponDTO
	if err := r.db.WithContext(ctx).
		Where("is_active AND end_at <= ?", now).
		Order("end_at").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify(err)
	}

	coupons := make([]*coupon.Coupon, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, nil
}
