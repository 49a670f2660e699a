package queries_test

import (
	"fmt"
	"testing"
	"time"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/core/ports/mocks"

	"github.com/brianvoe/gofakeit"
	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

type uowFactory struct{ uow *mocks.UnitOfWork }

func (f uowFactory) Create() ports.UnitOfWork { return f.uow }

func testPricer(catalog *mocks.Catalog) pricing.Pricer {
	shipping, _ := services.NewFlatShippingPolicy(decimal.NewFromInt(49), decimal.NewFromInt(500))
	summarizer := services.NewCheckoutSummarizer(shipping, services.FixedDaysDeliveryPolicy{Days: 4})
	return pricing.NewPricer(catalog, summarizer, func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1)
	})
}

func session(t *testing.T, userID kernel.UUID) kernel.Session {
	t.Helper()
	s, err := kernel.NewUserSession(userID, "sess", kernel.RoleCustomer)
	require.NoError(t, err)
	return s
}

func ownedAddress(t *testing.T, ownerID kernel.UUID) *address.Address {
	t.Helper()
	a, err := address.RestoreAddress(kernel.NewUUID(), ownerID, address.Details{
		Name:    gofakeit.Name(),
		Line1:   gofakeit.Street(),
		City:    gofakeit.City(),
		State:   gofakeit.State(),
		Country: "IN",
		Pincode: fmt.Sprintf("%d", gofakeit.Number(110001, 855117)),
	}, true, now.Add(-time.Hour))
	require.NoError(t, err)
	return a
}

func cartWith(t *testing.T, owner cart.Owner, variantID kernel.UUID, qty int, unit string) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), owner, now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = c.AddItem(variantID, qty, cart.Price{Unit: decimal.RequireFromString(unit), TaxRate: decimal.RequireFromString("0.18")}, now)
	require.NoError(t, err)
	return c
}

func percentCoupon(t *testing.T, code string, minOrder int64) *coupon.Coupon {
	t.Helper()
	m := decimal.NewFromInt(minOrder)
	c, err := coupon.NewCoupon(kernel.NewUUID(), code, coupon.Terms{
		Type:           coupon.Percentage,
		Value:          decimal.NewFromInt(10),
		MinOrderAmount: &m,
		StartAt:        now.Add(-time.Hour),
		EndAt:          now.Add(time.Hour),
	})
	require.NoError(t, err)
	return c
}
