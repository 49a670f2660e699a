package commands_test

import (
	"fmt"
	"testing"
	"time"

	"checkout/internal/core/application/pricing"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/core/ports/mocks"

	"github.com/brianvoe/gofakeit"
	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type (
	addressFactory  struct{ uow *mocks.UnitOfWork }
	cartFactory     struct{ uow *mocks.UnitOfWork }
	couponFactory   struct{ uow *mocks.UnitOfWork }
	orderFactory    struct{ uow *mocks.UnitOfWork }
	checkoutFactory struct{ uow *mocks.UnitOfWork }
)

func (f addressFactory) Create() commands.AddressUoW   { return f.uow }
func (f cartFactory) Create() commands.CartUoW         { return f.uow }
func (f couponFactory) Create() commands.CouponUoW     { return f.uow }
func (f orderFactory) Create() commands.OrderUoW       { return f.uow }
func (f checkoutFactory) Create() commands.CheckoutUoW { return f.uow }

func fakeDetails() address.Details {
	return address.Details{
		Name:    gofakeit.Name(),
		Phone:   fmt.Sprintf("9%09d", gofakeit.Number(0, 999999999)),
		Line1:   gofakeit.Street(),
		City:    gofakeit.City(),
		State:   gofakeit.State(),
		Country: "IN",
		Pincode: fmt.Sprintf("%d", gofakeit.Number(110001, 855117)),
	}
}

func userSession(t *testing.T, userID kernel.UUID) kernel.Session {
	t.Helper()
	s, err := kernel.NewUserSession(userID, "sess-"+userID.String()[:8], kernel.RoleCustomer)
	require.NoError(t, err)
	return s
}

func adminSession(t *testing.T) kernel.Session {
	t.Helper()
	s, err := kernel.NewUserSession(kernel.NewUUID(), "", kernel.RoleAdmin)
	require.NoError(t, err)
	return s
}

func savedAddress(t *testing.T, ownerID kernel.UUID, isDefault bool, createdAt time.Time) *address.Address {
	t.Helper()
	a, err := address.RestoreAddress(kernel.NewUUID(), ownerID, fakeDetails(), isDefault, createdAt)
	require.NoError(t, err)
	return a
}

func price(unit string, rate string) cart.Price {
	return cart.Price{Unit: decimal.RequireFromString(unit), TaxRate: decimal.RequireFromString(rate)}
}

func catalogPrice(unit, rate string) ports.VariantPrice {
	return ports.VariantPrice{Price: decimal.RequireFromString(unit), TaxRate: decimal.RequireFromString(rate)}
}

func userCart(t *testing.T, userID kernel.UUID) *cart.Cart {
	t.Helper()
	owner, err := cart.OwnerForSession(userSession(t, userID))
	require.NoError(t, err)
	c, err := cart.NewCart(kernel.NewUUID(), owner, now.Add(-time.Hour))
	require.NoError(t, err)
	return c
}

func testPricer(catalog *mocks.Catalog) pricing.Pricer {
	shipping, _ := services.NewFlatShippingPolicy(decimal.NewFromInt(50), decimal.NewFromInt(500))
	summarizer := services.NewCheckoutSummarizer(shipping, services.FixedDaysDeliveryPolicy{Days: 5})
	return pricing.NewPricer(catalog, summarizer, func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	})
}

func placedOrder(t *testing.T, userID kernel.UUID, method order.PaymentMethod, gatewayOrderID string) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Kettle", "KTL-1", decimal.NewFromInt(1000), 1, decimal.RequireFromString("0.18"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.Draft{
		UserID:          userID,
		PaymentMethod:   method,
		Items:           []order.Item{item},
		ShippingAddress: order.Address{Type: order.AddressShipping, Details: fakeDetails()},
		Totals: order.Totals{
			Subtotal: decimal.NewFromInt(1000),
			Discount: decimal.Zero,
			Tax:      decimal.NewFromInt(180),
			Shipping: decimal.Zero,
			Grand:    decimal.NewFromInt(1180),
		},
		RazorpayOrderID: gatewayOrderID,
	}, now.Add(-time.Hour))
	require.NoError(t, err)
	o.ClearEvents()
	return o
}
