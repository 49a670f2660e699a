package ports

import (
	"context"
	"errors"
	"time"

	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
)

// ErrCouponCodeTaken is returned by Add when the code already exists.
var ErrCouponCodeTaken = errors.New("coupon code already exists")

// CouponRepository persists coupons and their usage counters.
type CouponRepository interface {
	Add(ctx context.Context, c *coupon.Coupon) error

	// FindByCode looks a normalized code up; errs.ErrObjectNotFound if none.
	FindByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// FindByCodeForUpdate is FindByCode holding a row lock until the
	// transaction ends, so usage checks and Redeem cannot interleave.
	FindByCodeForUpdate(ctx context.Context, code string) (*coupon.Coupon, error)

	// UserUsage counts successful redemptions of couponID by userID.
	UserUsage(ctx context.Context, couponID, userID kernel.UUID) (int, error)

	// Redeem increments the global and per-user counters atomically. It fails
	// with coupon.ErrUsageLimitReached if the global limit is already reached.
	Redeem(ctx context.Context, c *coupon.Coupon, userID kernel.UUID) error

	// Update persists the active flag.
	Update(ctx context.Context, c *coupon.Coupon) error

	// ListExpiredActive returns active coupons whose window closed before now.
	ListExpiredActive(ctx context.Context, now time.Time) ([]*coupon.Coupon, error)
}
