package coupon

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon constructor")
	ErrUsageLimitReached      = errors.New("coupon usage limit reached")

	codePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)
	hundred     = decimal.NewFromInt(100)
)

// Terms is the commercial definition of a coupon. Nil amounts are unset.
type Terms struct {
	Type              Type
	Value             decimal.Decimal
	MinOrderAmount    *decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	StartAt           time.Time
	EndAt             time.Time
	// UsageLimit caps successful redemptions across all users; 0 means unlimited.
	UsageLimit int
	// PerUserLimit caps redemptions per user; 0 means unlimited.
	PerUserLimit int
}

func (t Terms) Validate() error {
	var windowErr error
	if !t.StartAt.Before(t.EndAt) {
		windowErr = errs.NewValueIsInvalidErrorWithCause("endAt", fmt.Errorf("must be after startAt"))
	}

	var valueErr error
	switch {
	case !t.Value.IsPositive():
		valueErr = errs.NewValueIsInvalidErrorWithCause("value", fmt.Errorf("%s is not positive", t.Value))
	case t.Type == Percentage && t.Value.GreaterThan(hundred):
		valueErr = errs.NewValueIsOutOfRangeError("value", t.Value.String(), 0, 100)
	}

	var limitsErr error
	if t.UsageLimit < 0 || t.PerUserLimit < 0 {
		limitsErr = errs.NewValueIsInvalidError("usage limits")
	}

	return errors.Join(
		t.Type.Validate(),
		valueErr,
		validateOptionalMoney("minOrderAmount", t.MinOrderAmount),
		validateOptionalMoney("maxDiscountAmount", t.MaxDiscountAmount),
		windowErr,
		limitsErr,
	)
}

func validateOptionalMoney(name string, amount *decimal.Decimal) error {
	if amount == nil {
		return nil
	}
	return kernel.ValidateMoney(name, *amount)
}

// NormalizeCode trims and upper-cases a code; codes are matched case-insensitively.
func NormalizeCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !codePattern.MatchString(normalized) {
		return "", errs.NewValueIsInvalidError("coupon code")
	}
	return normalized, nil
}

// Coupon is the aggregate root of the Coupon Evaluator.
type Coupon struct {
	id        kernel.UUID
	code      string
	terms     Terms
	usedCount int
	isActive  bool

	guard guard.ConstructorGuard
}

// NewCoupon creates an active, unused coupon.
func NewCoupon(id kernel.UUID, code string, terms Terms) (*Coupon, error) {
	return RestoreCoupon(id, code, terms, 0, true)
}

// RestoreCoupon rebuilds a coupon from persistence.
func RestoreCoupon(id kernel.UUID, code string, terms Terms, usedCount int, isActive bool) (*Coupon, error) {
	normalized, codeErr := NormalizeCode(code)

	var usedErr error
	if usedCount < 0 {
		usedErr = errs.NewValueIsInvalidError("usedCount")
	}

	if err := errors.Join(id.Validate(), codeErr, terms.Validate(), usedErr); err != nil {
		return nil, err
	}

	return &Coupon{
		id:        id,
		code:      normalized,
		terms:     terms,
		usedCount: usedCount,
		isActive:  isActive,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c *Coupon) Validate() error {
	if c == nil {
		return ErrCouponIsNotConstructed
	}
	return c.guard.Validate(ErrCouponIsNotConstructed)
}

func (c *Coupon) ID() kernel.UUID { return c.id }
func (c *Coupon) Code() string    { return c.code }
func (c *Coupon) Terms() Terms    { return c.terms }
func (c *Coupon) UsedCount() int  { return c.usedCount }
func (c *Coupon) IsActive() bool  { return c.isActive }

// Evaluate checks eligibility for a cart with the given subtotal and the
// requesting user's prior redemptions, and computes the discount.
func (c *Coupon) Evaluate(now time.Time, subtotal decimal.Decimal, userUsage int) Outcome {
	if reason := c.rejection(now, subtotal, userUsage); reason != ReasonNone {
		return Rejected(c.code, reason)
	}
	return Accepted(c.code, c.Discount(subtotal))
}

// rejection checks the validity window before the active flag, so a coupon
// switched off by the expiry sweep still reports EXPIRED.
func (c *Coupon) rejection(now time.Time, subtotal decimal.Decimal, userUsage int) Reason {
	switch {
	case now.Before(c.terms.StartAt):
		return ReasonNotStarted
	case !now.Before(c.terms.EndAt):
		return ReasonExpired
	case !c.isActive:
		return ReasonInactive
	case c.terms.MinOrderAmount != nil && subtotal.LessThan(*c.terms.MinOrderAmount):
		return ReasonBelowMinimum
	case c.terms.UsageLimit > 0 && c.usedCount >= c.terms.UsageLimit:
		return ReasonUsageLimitReached
	case c.terms.PerUserLimit > 0 && userUsage >= c.terms.PerUserLimit:
		return ReasonPerUserLimitReached
	default:
		return ReasonNone
	}
}

// Discount computes the clamped, rounded discount for subtotal without
// checking eligibility: min(raw, maxDiscountAmount, subtotal), never negative.
func (c *Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}

	var raw decimal.Decimal
	switch c.terms.Type {
	case Percentage:
		raw = subtotal.Mul(c.terms.Value).Div(hundred)
	case Fixed:
		raw = c.terms.Value
	}

	discount := decimal.Min(raw, subtotal)
	if c.terms.MaxDiscountAmount != nil {
		discount = decimal.Min(discount, *c.terms.MaxDiscountAmount)
	}
	discount = kernel.RoundMoney(decimal.Max(discount, decimal.Zero))
	// Rounding half up can push a percentage of a sub-cent subtotal above it.
	return decimal.Min(discount, subtotal)
}

// Redeem records one successful use.
func (c *Coupon) Redeem() error {
	if c.terms.UsageLimit > 0 && c.usedCount >= c.terms.UsageLimit {
		return ErrUsageLimitReached
	}
	c.usedCount++
	return nil
}

// IsExpired reports whether the validity window has closed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return !now.Before(c.terms.EndAt)
}

// Deactivate switches the coupon off. It is idempotent.
func (c *Coupon) Deactivate() {
	c.isActive = false
}
