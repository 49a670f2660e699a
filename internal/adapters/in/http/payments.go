package http

import (
	"net/http"
	"strings"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/pkg/metric"

	"github.com/labstack/echo/v4"
)

// HandlePaymentCallback godoc
//
//	@Summary	Apply a signed Razorpay payment notification to its order
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		body	body		PaymentCallbackRequest	true	"Gateway notification"
//	@Success	200		{object}	OrderStatusResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse	"PAYMENT_VERIFICATION_FAILED"
//	@Router		/payments/razorpay/callback [post]
func (s *Server) HandlePaymentCallback(c echo.Context) error {
	var req PaymentCallbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewHandlePaymentCallbackCommand(
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, req.Status)
	if err != nil {
		return err
	}
	updated, err := s.h.HandlePaymentCallback.Handle(c.Request().Context(), cmd)
	if err != nil {
		_, body := toResponse(err)
		metric.PaymentCallbacksTotal.WithLabelValues(strings.ToLower(body.Code)).Inc()
		return err
	}
	metric.PaymentCallbacksTotal.WithLabelValues("applied").Inc()
	return c.JSON(http.StatusOK, newOrderStatusResponse(updated))
}
