package queries_test

import (
	"testing"

	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/core/ports/mocks"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetCheckoutSummaryQueryHandler_Handle(t *testing.T) {
	t.Run("scenario with accepted coupon", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		variantID := kernel.NewUUID()
		owner, _ := cart.UserOwner(userID)
		c := cartWith(t, owner, variantID, 1, "900")
		addr := ownedAddress(t, userID)
		cp := percentCoupon(t, "SAVE10", 500)

		carts := new(mocks.CartRepository)
		carts.On("Find", ctx, owner).Return(c, nil).Once()
		addresses := new(mocks.AddressRepository)
		addresses.On("Get", ctx, addr.ID()).Return(addr, nil).Once()
		coupons := new(mocks.CouponRepository)
		coupons.On("FindByCode", ctx, "SAVE10").Return(cp, nil).Once()
		coupons.On("UserUsage", ctx, cp.ID(), userID).Return(0, nil).Once()
		catalog := new(mocks.Catalog)
		catalog.On("GetVariantPrice", ctx, variantID).
			Return(ports.VariantPrice{Price: decimal.NewFromInt(1000), TaxRate: decimal.RequireFromString("0.18")}, nil).Once()
		uow := new(mocks.UnitOfWork).AllowTx()
		uow.On("CartRepository").Return(carts)
		uow.On("AddressRepository").Return(addresses)
		uow.On("CouponRepository").Return(coupons)

		query, err := queries.NewGetCheckoutSummaryQuery(session(t, userID), addr.ID(), "save10", order.MethodRazorpay)
		require.NoError(t, err)
		h := queries.NewGetCheckoutSummaryQueryHandler(uowFactory{uow}, testPricer(catalog), kernel.FixedClock(now))
		summary, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "1000.00", summary.Subtotal.StringFixed(2))
		assert.Equal(t, "180.00", summary.Tax.StringFixed(2))
		assert.Equal(t, "100.00", summary.Discount.StringFixed(2))
		assert.Equal(t, "0.00", summary.Shipping.StringFixed(2))
		assert.Equal(t, "1080.00", summary.GrandTotal.StringFixed(2))
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		coupons.AssertNotCalled(t, "FindByCodeForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("no cart is an empty cart", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		carts := new(mocks.CartRepository)
		carts.On("Find", ctx, mock.Anything).Return(nil, errs.NewObjectNotFoundError("cart", userID)).Once()
		uow := new(mocks.UnitOfWork).AllowTx()
		uow.On("CartRepository").Return(carts)

		query, _ := queries.NewGetCheckoutSummaryQuery(session(t, userID), kernel.NewUUID(), "", order.MethodCOD)
		h := queries.NewGetCheckoutSummaryQueryHandler(uowFactory{uow}, testPricer(new(mocks.Catalog)), kernel.FixedClock(now))
		_, err := h.Handle(ctx, query)

		require.ErrorIs(t, err, services.ErrEmptyCart)
	})

	t.Run("invalid query", func(t *testing.T) {
		h := queries.NewGetCheckoutSummaryQueryHandler(uowFactory{new(mocks.UnitOfWork)}, testPricer(new(mocks.Catalog)), kernel.FixedClock(now))
		_, err := h.Handle(t.Context(), queries.GetCheckoutSummaryQuery{})
		require.ErrorIs(t, err, queries.ErrGetCheckoutSummaryQueryIsNotConstructed)
	})
}
