// Package http exposes the checkout use cases over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// UseCase is a command or query handler returning a result.
type UseCase[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Action is a command handler without a result.
type Action[In any] interface {
	Handle(ctx context.Context, in In) error
}

type UseCaseFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f UseCaseFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

type ActionFunc[In any] func(ctx context.Context, in In) error

func (f ActionFunc[In]) Handle(ctx context.Context, in In) error {
	return f(ctx, in)
}

// Handlers are the use cases the server dispatches to.
type Handlers struct {
	// Cart
	GetCart        UseCase[queries.GetCartQuery, queries.GetCartQueryResponse]
	AddCartItem    UseCase[commands.AddCartItemCommand, *cart.Cart]
	UpdateCartItem UseCase[commands.UpdateCartItemCommand, *cart.Cart]
	RemoveCartItem UseCase[commands.RemoveCartItemCommand, *cart.Cart]
	ClearCart      UseCase[commands.ClearCartCommand, *cart.Cart]
	MergeCarts     UseCase[commands.MergeCartsCommand, *cart.Cart]

	// Addresses
	ListAddresses     UseCase[queries.ListAddressesQuery, []queries.AddressView]
	CreateAddress     UseCase[commands.CreateAddressCommand, *address.Address]
	UpdateAddress     UseCase[commands.UpdateAddressCommand, *address.Address]
	DeleteAddress     Action[commands.DeleteAddressCommand]
	SetDefaultAddress Action[commands.SetDefaultAddressCommand]

	// Coupons
	EvaluateCoupon UseCase[queries.EvaluateCouponQuery, queries.EvaluateCouponQueryResponse]
	CreateCoupon   UseCase[commands.CreateCouponCommand, *coupon.Coupon]

	// Checkout and orders
	GetCheckoutSummary    UseCase[queries.GetCheckoutSummaryQuery, services.Summary]
	CreatePaymentIntent   UseCase[commands.CreatePaymentIntentCommand, commands.PaymentIntent]
	PlaceOrder            UseCase[commands.PlaceOrderCommand, *order.Order]
	ListOrders            UseCase[queries.ListOrdersQuery, []queries.OrderListItem]
	GetOrder              UseCase[queries.GetOrderQuery, queries.OrderView]
	ChangeOrderStatus     UseCase[commands.ChangeOrderStatusCommand, *order.Order]
	CancelOrder           UseCase[commands.CancelOrderCommand, *order.Order]
	HandlePaymentCallback UseCase[commands.HandlePaymentCallbackCommand, *order.Order]
}

// Server translates HTTP requests into commands and queries and renders
// their results.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, logger: logger.With("component", "http")}
}

// NewEcho builds the router with validation, error rendering and the
// observability middleware installed.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = s.handleHTTPError
	e.Use(Observe(), Recover(s.logger), Session())
	s.Register(e)
	return e
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/cart", s.GetCart)
	e.POST("/cart/items", s.AddCartItem)
	e.PATCH("/cart/items/:itemId", s.UpdateCartItem)
	e.DELETE("/cart/items/:itemId", s.RemoveCartItem)
	e.DELETE("/cart", s.ClearCart)
	e.POST("/cart/merge", s.MergeCarts)

	e.GET("/addresses", s.ListAddresses)
	e.POST("/addresses", s.CreateAddress)
	e.PUT("/addresses/:id", s.UpdateAddress)
	e.DELETE("/addresses/:id", s.DeleteAddress)
	e.PUT("/addresses/:id/default", s.SetDefaultAddress)

	e.POST("/coupons/evaluate", s.EvaluateCoupon)
	e.POST("/admin/coupons", s.CreateCoupon)

	e.POST("/checkout/summary", s.GetCheckoutSummary)
	e.POST("/checkout/payment-intent", s.CreatePaymentIntent)

	e.POST("/orders", s.PlaceOrder)
	e.GET("/orders", s.ListOrders)
	e.GET("/orders/:id", s.GetOrder)
	e.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	e.POST("/orders/:id/cancel", s.CancelOrder)

	e.POST("/payments/razorpay/callback", s.HandlePaymentCallback)
}

// Health godoc
//
//	@Summary	Liveness check
//	@Tags		ops
//	@Success	200	{string}	string	"Healthy"
//	@Router		/health [get]
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
