package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userID    = kernel.NewUUID()
	addressID = kernel.NewUUID()
)

func do(t *testing.T, h Handlers, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := NewEcho(NewServer(h, nil))

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func asUser() map[string]string {
	return map[string]string{HeaderUserID: userID.String()}
}

func TestServer_Health(t *testing.T) {
	rec, _ := do(t, Handlers{}, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	rec, _ := do(t, Handlers{}, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServer_GuestCart(t *testing.T) {
	var seen cart.Owner
	h := Handlers{
		GetCart: UseCaseFunc[queries.GetCartQuery, queries.GetCartQueryResponse](
			func(_ context.Context, q queries.GetCartQuery) (queries.GetCartQueryResponse, error) {
				seen = q.Owner()
				return queries.GetCartQueryResponse{Items: []queries.CartItemView{}}, nil
			}),
	}

	rec, body := do(t, h, http.MethodGet, "/cart", "", map[string]string{HeaderSessionID: "guest-42"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen.IsAnonymous())
	assert.Equal(t, "session:guest-42", seen.Key())
	assert.Equal(t, "0.00", body["grandTotal"])
	assert.Empty(t, body["items"])
}

func TestServer_CheckoutSummary(t *testing.T) {
	outcome := coupon.Accepted("SAVE10", decimal.NewFromInt(100))
	var seen queries.GetCheckoutSummaryQuery
	h := Handlers{
		GetCheckoutSummary: UseCaseFunc[queries.GetCheckoutSummaryQuery, services.Summary](
			func(_ context.Context, q queries.GetCheckoutSummaryQuery) (services.Summary, error) {
				seen = q
				return services.Summary{
					CartID:            kernel.NewUUID(),
					CartVersion:       3,
					PaymentMethod:     q.PaymentMethod(),
					Subtotal:          decimal.NewFromInt(1000),
					Shipping:          decimal.Zero,
					Tax:               decimal.NewFromInt(180),
					Discount:          decimal.NewFromInt(100),
					GrandTotal:        decimal.NewFromInt(1080),
					Coupon:            &outcome,
					EstimatedDelivery: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
				}, nil
			}),
	}

	rec, body := do(t, h, http.MethodPost, "/checkout/summary",
		`{"addressId":"`+addressID.String()+`","couponCode":"save10","paymentMethod":"cod"}`, asUser())

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, seen.UserID().IsEqual(userID))
	assert.True(t, seen.AddressID().IsEqual(addressID))
	assert.Equal(t, order.MethodCOD, seen.PaymentMethod())
	assert.Equal(t, "1000.00", body["subtotal"])
	assert.Equal(t, "180.00", body["tax"])
	assert.Equal(t, "100.00", body["discount"])
	assert.Equal(t, "0.00", body["shipping"])
	assert.Equal(t, "1080.00", body["grandTotal"])
	assert.EqualValues(t, 3, body["cartVersion"])
	assert.Equal(t, true, body["coupon"].(map[string]any)["accepted"])
}

func TestServer_EmptyCartRedirects(t *testing.T) {
	h := Handlers{
		GetCheckoutSummary: UseCaseFunc[queries.GetCheckoutSummaryQuery, services.Summary](
			func(context.Context, queries.GetCheckoutSummaryQuery) (services.Summary, error) {
				return services.Summary{}, commands.ErrEmptyCart
			}),
	}

	rec, body := do(t, h, http.MethodPost, "/checkout/summary",
		`{"addressId":"`+addressID.String()+`","paymentMethod":"RAZORPAY"}`, asUser())

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "EMPTY_CART", body["code"])
	assert.Equal(t, "/cart", body["redirect"])
	assert.Equal(t, false, body["retryable"])
}

func TestServer_PlaceOrderRequiresUser(t *testing.T) {
	called := false
	h := Handlers{
		PlaceOrder: UseCaseFunc[commands.PlaceOrderCommand, *order.Order](
			func(context.Context, commands.PlaceOrderCommand) (*order.Order, error) {
				called = true
				return nil, nil
			}),
	}

	rec, body := do(t, h, http.MethodPost, "/orders",
		`{"addressId":"`+addressID.String()+`","paymentMethod":"COD"}`,
		map[string]string{HeaderSessionID: "guest-42"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", body["code"])
	assert.False(t, called)
}

func TestServer_PlaceOrderStaleSummary(t *testing.T) {
	var seen commands.PlaceOrderCommand
	h := Handlers{
		PlaceOrder: UseCaseFunc[commands.PlaceOrderCommand, *order.Order](
			func(_ context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error) {
				seen = cmd
				return nil, commands.ErrStaleSummary
			}),
	}

	rec, body := do(t, h, http.MethodPost, "/orders",
		`{"addressId":"`+addressID.String()+`","paymentMethod":"RAZORPAY","couponCode":" SAVE10 ",`+
			`"expectedCartVersion":2,"paymentProof":{"razorpayOrderId":"order_1","razorpayPaymentId":"pay_1","razorpaySignature":"ab12"}}`,
		asUser())

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "STALE_SUMMARY", body["code"])
	assert.Equal(t, "SAVE10", seen.CouponCode())
	require.NotNil(t, seen.ExpectedCartVersion())
	assert.Equal(t, 2, *seen.ExpectedCartVersion())
	assert.Equal(t, "order_1", seen.GatewayOrderID())
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"catalog down", errs.NewDependencyUnavailableError("catalog"), http.StatusServiceUnavailable, "DEPENDENCY_UNAVAILABLE", true},
		{"out of stock", commands.ErrOutOfStock, http.StatusConflict, "OUT_OF_STOCK", false},
		{"bad quantity", cart.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY", false},
		{"unknown variant", errs.NewObjectNotFoundError("variant", "x"), http.StatusNotFound, "NOT_FOUND", false},
		{"replayed payment", commands.ErrPaymentAlreadyUsed, http.StatusConflict, "PAYMENT_ALREADY_USED", false},
		{"underpaid gateway order", commands.ErrPaymentAmountMismatch, http.StatusUnprocessableEntity, "PAYMENT_AMOUNT_MISMATCH", false},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "INTERNAL", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Handlers{
				AddCartItem: UseCaseFunc[commands.AddCartItemCommand, *cart.Cart](
					func(context.Context, commands.AddCartItemCommand) (*cart.Cart, error) {
						return nil, tt.err
					}),
			}

			rec, body := do(t, h, http.MethodPost, "/cart/items",
				`{"variantId":"`+kernel.NewUUID().String()+`","quantity":1}`, asUser())

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.retryable, body["retryable"])
		})
	}
}

func TestServer_RequestValidation(t *testing.T) {
	t.Run("malformed path id", func(t *testing.T) {
		rec, body := do(t, Handlers{}, http.MethodGet, "/orders/not-a-uuid", "", asUser())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", body["code"])
	})

	t.Run("missing required field", func(t *testing.T) {
		rec, body := do(t, Handlers{}, http.MethodPost, "/addresses", `{"name":"Asha"}`, asUser())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", body["code"])
	})

	t.Run("malformed user header", func(t *testing.T) {
		rec, body := do(t, Handlers{}, http.MethodGet, "/cart", "", map[string]string{HeaderUserID: "nope"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", body["code"])
	})

	t.Run("unknown route", func(t *testing.T) {
		rec, body := do(t, Handlers{}, http.MethodGet, "/nowhere", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "ROUTE_NOT_FOUND", body["code"])
	})
}

func TestServer_StatusChangeNeedsAdmin(t *testing.T) {
	orderID := kernel.NewUUID()
	called := false
	h := Handlers{
		ChangeOrderStatus: UseCaseFunc[commands.ChangeOrderStatusCommand, *order.Order](
			func(context.Context, commands.ChangeOrderStatusCommand) (*order.Order, error) {
				called = true
				return nil, order.ErrInvalidTransition
			}),
	}

	rec, body := do(t, h, http.MethodPatch, "/orders/"+orderID.String()+"/status", `{"status":"PACKED"}`, asUser())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.False(t, called)

	admin := asUser()
	admin[HeaderActorRole] = "admin"
	rec, body = do(t, h, http.MethodPatch, "/orders/"+orderID.String()+"/status", `{"status":"DELIVERED"}`, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_TRANSITION", body["code"])
	assert.True(t, called)
}

func TestServer_DeleteAddress(t *testing.T) {
	var seen commands.DeleteAddressCommand
	h := Handlers{
		DeleteAddress: ActionFunc[commands.DeleteAddressCommand](
			func(_ context.Context, cmd commands.DeleteAddressCommand) error {
				seen = cmd
				return nil
			}),
	}

	rec, _ := do(t, h, http.MethodDelete, "/addresses/"+addressID.String(), "", asUser())

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, seen.Validate())
}
