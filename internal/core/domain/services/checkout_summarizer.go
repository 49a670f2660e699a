package services

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart is terminal: the caller must send the customer back to the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrAddressNotFound covers both missing addresses and addresses owned by someone else.
	ErrAddressNotFound = errors.New("address not found")
)

// SummaryInput is everything the summarizer needs. Coupon is nil when
// CouponCode matched no coupon.
type SummaryInput struct {
	Cart          *cart.Cart
	Address       *address.Address
	UserID        kernel.UUID
	PaymentMethod order.PaymentMethod
	CouponCode    string
	Coupon        *coupon.Coupon
	CouponUsage   int
	Now           time.Time
}

// SummaryLine is one priced cart line.
type SummaryLine struct {
	ItemID    kernel.UUID
	VariantID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// Summary is an ephemeral priced preview of a checkout. It is never persisted.
type Summary struct {
	CartID        kernel.UUID
	CartVersion   int
	Lines         []SummaryLine
	Address       *address.Address
	PaymentMethod order.PaymentMethod
	Subtotal      decimal.Decimal
	Shipping      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	GrandTotal    decimal.Decimal
	// Coupon is nil when no code was supplied.
	Coupon            *coupon.Outcome
	EstimatedDelivery time.Time
}

// Totals converts the summary amounts into order totals.
func (s Summary) Totals() order.Totals {
	return order.Totals{
		Subtotal: s.Subtotal,
		Discount: s.Discount,
		Tax:      s.Tax,
		Shipping: s.Shipping,
		Grand:    s.GrandTotal,
	}
}

// AppliedCouponCode is the code of an accepted coupon, or empty.
func (s Summary) AppliedCouponCode() string {
	if s.Coupon == nil || !s.Coupon.IsAccepted() {
		return ""
	}
	return s.Coupon.Code()
}

type CheckoutSummarizer struct {
	shipping ShippingPolicy
	delivery DeliveryPolicy
}

func NewCheckoutSummarizer(shipping ShippingPolicy, delivery DeliveryPolicy) CheckoutSummarizer {
	return CheckoutSummarizer{shipping: shipping, delivery: delivery}
}

// Summarize prices the cart. A rejected coupon never fails the summary: it
// yields discount 0 and the rejection reason.
func (s CheckoutSummarizer) Summarize(in SummaryInput) (Summary, error) {
	if err := in.Cart.Validate(); err != nil {
		return Summary{}, err
	}
	if in.Cart.IsEmpty() {
		return Summary{}, ErrEmptyCart
	}
	if in.Address == nil || in.Address.Validate() != nil || !in.Address.IsOwnedBy(in.UserID) {
		return Summary{}, ErrAddressNotFound
	}
	if err := in.PaymentMethod.Validate(); err != nil {
		return Summary{}, err
	}

	items := in.Cart.Items()
	lines := make([]SummaryLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, SummaryLine{
			ItemID:    it.ID(),
			VariantID: it.VariantID(),
			Quantity:  it.Quantity(),
			UnitPrice: it.Price().Unit,
			TaxRate:   it.Price().TaxRate,
			Subtotal:  it.Subtotal(),
			Tax:       it.TaxAmount(),
			Total:     it.Total(),
		})
	}

	subtotal := in.Cart.Subtotal()
	tax := in.Cart.TaxTotal()
	shipping := s.shipping.ShippingFor(subtotal)

	summary := Summary{
		CartID:            in.Cart.ID(),
		CartVersion:       in.Cart.Version(),
		Lines:             lines,
		Address:           in.Address,
		PaymentMethod:     in.PaymentMethod,
		Subtotal:          subtotal,
		Shipping:          shipping,
		Tax:               tax,
		Discount:          decimal.Zero,
		EstimatedDelivery: s.delivery.EstimateFor(in.Now, in.Address.Details().Pincode),
	}

	if in.CouponCode != "" {
		outcome := EvaluateCoupon(in.CouponCode, in.Coupon, in.Now, subtotal, in.CouponUsage)
		summary.Coupon = &outcome
		summary.Discount = outcome.Discount()
	}

	summary.GrandTotal = order.GrandTotalOf(subtotal, shipping, tax, summary.Discount)
	return summary, nil
}

// EvaluateCoupon runs the coupon evaluator for a looked-up coupon; a nil
// coupon, or one whose code differs from the request, is rejected as NotFound.
func EvaluateCoupon(code string, c *coupon.Coupon, now time.Time, subtotal decimal.Decimal, userUsage int) coupon.Outcome {
	normalized, err := coupon.NormalizeCode(code)
	if err != nil || c == nil || c.Code() != normalized {
		return coupon.Rejected(normalized, coupon.ReasonNotFound)
	}
	return c.Evaluate(now, subtotal, userUsage)
}
