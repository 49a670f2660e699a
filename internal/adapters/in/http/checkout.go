package http

import (
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// GetCheckoutSummary godoc
//
//	@Summary	Price the caller's cart for an address, payment method and optional coupon
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CheckoutSummaryRequest	true	"Checkout selection"
//	@Success	200		{object}	CheckoutSummaryResponse
//	@Failure	422		{object}	ErrorResponse	"EMPTY_CART or ADDRESS_NOT_FOUND"
//	@Failure	503		{object}	ErrorResponse
//	@Router		/checkout/summary [post]
func (s *Server) GetCheckoutSummary(c echo.Context) error {
	var req CheckoutSummaryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return err
	}
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return err
	}
	query, err := queries.NewGetCheckoutSummaryQuery(session(c), addressID, req.CouponCode, method)
	if err != nil {
		return err
	}
	summary, err := s.h.GetCheckoutSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSummaryResponse(summary))
}

// CreatePaymentIntent godoc
//
//	@Summary	Register the cart's grand total with the payment gateway
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		body	body		PaymentIntentRequest	true	"Checkout selection"
//	@Success	201		{object}	PaymentIntentResponse
//	@Failure	422		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Router		/checkout/payment-intent [post]
func (s *Server) CreatePaymentIntent(c echo.Context) error {
	var req PaymentIntentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreatePaymentIntentCommand(session(c), addressID, req.CouponCode)
	if err != nil {
		return err
	}
	intent, err := s.h.CreatePaymentIntent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newPaymentIntentResponse(intent))
}
