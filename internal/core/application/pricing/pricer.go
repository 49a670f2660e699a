// Package pricing snapshots live catalog prices into carts and assembles
// checkout summaries. Catalog reads are idempotent and are retried with
// exponential backoff; nothing here ever writes.
package pricing

import (
	"context"
	"errors"
	"time"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

var (
	// ErrOutOfStock rejects a cart mutation whose resulting quantity exceeds stock.
	ErrOutOfStock = errors.New("requested quantity exceeds available stock")

	// ErrInventoryUnavailable means stock vanished between summary and placement.
	ErrInventoryUnavailable = errors.New("inventory no longer available")
)

// BackOffFactory returns a fresh policy for each catalog call.
type BackOffFactory func() backoff.BackOff

// DefaultBackOff retries for at most two seconds.
func DefaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 2 * time.Second
	return b
}

type Pricer struct {
	catalog    ports.Catalog
	summarizer services.CheckoutSummarizer
	backOff    BackOffFactory
}

func NewPricer(catalog ports.Catalog, summarizer services.CheckoutSummarizer, backOff BackOffFactory) Pricer {
	if backOff == nil {
		backOff = DefaultBackOff
	}
	return Pricer{catalog: catalog, summarizer: summarizer, backOff: backOff}
}

// retry runs op until it succeeds, fails with a non-retryable error, or the
// policy gives up.
func (p Pricer) retry(ctx context.Context, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err != nil && !errs.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(p.backOff(), ctx))
}

// Price fetches the current price snapshot of a variant.
func (p Pricer) Price(ctx context.Context, variantID kernel.UUID) (cart.Price, error) {
	var vp ports.VariantPrice
	err := p.retry(ctx, func() (err error) {
		vp, err = p.catalog.GetVariantPrice(ctx, variantID)
		return err
	})
	if err != nil {
		return cart.Price{}, err
	}
	return cart.Price{Unit: vp.Price, TaxRate: vp.TaxRate}, nil
}

// EnsureAvailable fails with ErrOutOfStock when quantity cannot be served.
func (p Pricer) EnsureAvailable(ctx context.Context, variantID kernel.UUID, quantity int) error {
	var ok bool
	err := p.retry(ctx, func() (err error) {
		ok, err = p.catalog.CheckAvailability(ctx, variantID, quantity)
		return err
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrOutOfStock
	}
	return nil
}

// Reprice refreshes every line's price snapshot from the catalog.
func (p Pricer) Reprice(ctx context.Context, c *cart.Cart) error {
	for _, it := range c.Items() {
		price, err := p.Price(ctx, it.VariantID())
		if err != nil {
			return err
		}
		if err = c.Reprice(it.VariantID(), price); err != nil {
			return err
		}
	}
	return nil
}

// EnsureCartAvailable re-checks stock for every line.
func (p Pricer) EnsureCartAvailable(ctx context.Context, c *cart.Cart) error {
	for _, it := range c.Items() {
		if err := p.EnsureAvailable(ctx, it.VariantID(), it.Quantity()); err != nil {
			return err
		}
	}
	return nil
}

// Details fetches title and sku for every line of c.
func (p Pricer) Details(ctx context.Context, c *cart.Cart) (map[kernel.UUID]services.VariantDetails, error) {
	details := make(map[kernel.UUID]services.VariantDetails, len(c.Items()))
	for _, it := range c.Items() {
		var d services.VariantDetails
		err := p.retry(ctx, func() (err error) {
			d, err = p.catalog.GetVariantDetails(ctx, it.VariantID())
			return err
		})
		if err != nil {
			return nil, err
		}
		details[it.VariantID()] = d
	}
	return details, nil
}

// Request identifies what to summarize.
type Request struct {
	UserID        kernel.UUID
	AddressID     kernel.UUID
	CouponCode    string
	PaymentMethod order.PaymentMethod
	Now           time.Time
	// LockCoupon takes a row lock on the coupon; used at placement.
	LockCoupon bool
}

// Sources are the repositories a summary reads from.
type Sources interface {
	AddressRepository() ports.AddressRepository
	CouponRepository() ports.CouponRepository
}

// Summarize reprices c from the catalog and prices it for req. The returned
// coupon is nil when no code was given or the code matched nothing.
func (p Pricer) Summarize(ctx context.Context, src Sources, c *cart.Cart, req Request) (services.Summary, *coupon.Coupon, error) {
	if c.IsEmpty() {
		return services.Summary{}, nil, services.ErrEmptyCart
	}
	if err := p.Reprice(ctx, c); err != nil {
		return services.Summary{}, nil, err
	}

	addr, err := src.AddressRepository().Get(ctx, req.AddressID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return services.Summary{}, nil, services.ErrAddressNotFound
	}
	if err != nil {
		return services.Summary{}, nil, err
	}

	in := services.SummaryInput{
		Cart:          c,
		Address:       addr,
		UserID:        req.UserID,
		PaymentMethod: req.PaymentMethod,
		CouponCode:    req.CouponCode,
		Now:           req.Now,
	}
	if req.CouponCode != "" {
		in.Coupon, in.CouponUsage, err = p.lookupCoupon(ctx, src.CouponRepository(), req)
		if err != nil {
			return services.Summary{}, nil, err
		}
	}

	summary, err := p.summarizer.Summarize(in)
	if err != nil {
		return services.Summary{}, nil, err
	}
	return summary, in.Coupon, nil
}

func (p Pricer) lookupCoupon(ctx context.Context, repo ports.CouponRepository, req Request) (*coupon.Coupon, int, error) {
	code, err := coupon.NormalizeCode(req.CouponCode)
	if err != nil {
		return nil, 0, nil
	}

	var c *coupon.Coupon
	if req.LockCoupon {
		c, err = repo.FindByCodeForUpdate(ctx, code)
	} else {
		c, err = repo.FindByCode(ctx, code)
	}
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	usage, err := repo.UserUsage(ctx, c.ID(), req.UserID)
	if err != nil {
		return nil, 0, err
	}
	return c, usage, nil
}
