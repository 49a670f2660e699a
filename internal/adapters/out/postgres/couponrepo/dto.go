// Package couponrepo maps coupons and per-user redemption counters.
package couponrepo

import (
	"time"

	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponDTO struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Code              string              `gorm:"type:varchar(32);not null;uniqueIndex"`
	Type              string              `gorm:"type:varchar(16);not null"`
	Value             decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	MinOrderAmount    decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	MaxDiscountAmount decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	StartAt           time.Time           `gorm:"not null"`
	EndAt             time.Time           `gorm:"not null;index"`
	UsageLimit        int                 `gorm:"not null"`
	PerUserLimit      int                 `gorm:"not null"`
	UsedCount         int                 `gorm:"not null"`
	IsActive          bool                `gorm:"not null;index"`
}

func (CouponDTO) TableName() string {
	return "coupons"
}

// CouponUsageDTO counts redemptions of one coupon by one user.
type CouponUsageDTO struct {
	CouponID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Count    int       `gorm:"not null"`
}

func (CouponUsageDTO) TableName() string {
	return "coupon_usages"
}

func fromDomain(c *coupon.Coupon) CouponDTO {
	terms := c.Terms()
	return CouponDTO{
		ID:                c.ID().Bytes(),
		Code:              c.Code(),
		Type:              terms.Type.String(),
		Value:             terms.Value,
		MinOrderAmount:    nullable(terms.MinOrderAmount),
		MaxDiscountAmount: nullable(terms.MaxDiscountAmount),
		StartAt:           terms.StartAt,
		EndAt:             terms.EndAt,
		UsageLimit:        terms.UsageLimit,
		PerUserLimit:      terms.PerUserLimit,
		UsedCount:         c.UsedCount(),
		IsActive:          c.IsActive(),
	}
}

func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	typ, err := coupon.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	return coupon.RestoreCoupon(id, dto.Code, coupon.Terms{
		Type:              typ,
		Value:             dto.Value,
		MinOrderAmount:    optional(dto.MinOrderAmount),
		MaxDiscountAmount: optional(dto.MaxDiscountAmount),
		StartAt:           dto.StartAt,
		EndAt:             dto.EndAt,
		UsageLimit:        dto.UsageLimit,
		PerUserLimit:      dto.PerUserLimit,
	}, dto.UsedCount, dto.IsActive)
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func optional(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
