package http

import (
	"errors"
	"log/slog"
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/sl"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Redirect  string `json:"redirect,omitempty"`
}

type errorMapping struct {
	target   error
	status   int
	code     string
	redirect string
}

// Checked in order: specific reasons before the generic errs categories they
// may also wrap.
var errorMappings = []errorMapping{
	{commands.ErrEmptyCart, http.StatusUnprocessableEntity, "EMPTY_CART", "/cart"},
	{commands.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED", ""},
	{kernel.ErrSessionIsNotConstructed, http.StatusUnauthorized, "UNAUTHENTICATED", ""},
	{commands.ErrForbidden, http.StatusForbidden, "FORBIDDEN", ""},
	{order.ErrActorNotPermitted, http.StatusForbidden, "FORBIDDEN", ""},
	{commands.ErrAddressNotFound, http.StatusUnprocessableEntity, "ADDRESS_NOT_FOUND", ""},
	{address.ErrForeignAddress, http.StatusUnprocessableEntity, "ADDRESS_NOT_FOUND", ""},
	{commands.ErrOutOfStock, http.StatusConflict, "OUT_OF_STOCK", ""},
	{commands.ErrInventoryUnavailable, http.StatusConflict, "INVENTORY_UNAVAILABLE", ""},
	{commands.ErrCouponNoLongerEligible, http.StatusConflict, "COUPON_NOT_ELIGIBLE", ""},
	{coupon.ErrUsageLimitReached, http.StatusConflict, "COUPON_USAGE_LIMIT_REACHED", ""},
	{ports.ErrCouponCodeTaken, http.StatusConflict, "COUPON_CODE_TAKEN", ""},
	{commands.ErrPaymentVerificationFailed, http.StatusUnprocessableEntity, "PAYMENT_VERIFICATION_FAILED", ""},
	{commands.ErrPaymentAlreadyUsed, http.StatusConflict, "PAYMENT_ALREADY_USED", ""},
	{commands.ErrPaymentAmountMismatch, http.StatusUnprocessableEntity, "PAYMENT_AMOUNT_MISMATCH", ""},
	{order.ErrPaymentMismatch, http.StatusUnprocessableEntity, "PAYMENT_MISMATCH", ""},
	{commands.ErrStaleSummary, http.StatusConflict, "STALE_SUMMARY", ""},
	{order.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION", ""},
	{cart.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY", ""},
	{errs.ErrDependencyUnavailable, http.StatusServiceUnavailable, "DEPENDENCY_UNAVAILABLE", ""},
	{errs.ErrVersionIsInvalid, http.StatusConflict, "CONCURRENT_MODIFICATION", ""},
	{errs.ErrObjectNotFound, http.StatusNotFound, "NOT_FOUND", ""},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "VALIDATION_FAILED", ""},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "VALIDATION_FAILED", ""},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "VALIDATION_FAILED", ""},
}

// toResponse maps an error to its status and body. Unknown errors become a
// 500 without internal details.
func toResponse(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		return he.Code, ErrorResponse{Code: httpErrorCode(he.Code), Message: msg}
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, ErrorResponse{
				Code:      m.code,
				Message:   err.Error(),
				Retryable: errs.IsRetryable(err),
				Redirect:  m.redirect,
			}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL",
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

func httpErrorCode(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "INTERNAL"
	case status == http.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case status == http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case status == http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	default:
		return "BAD_REQUEST"
	}
}

func (s *Server) handleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := toResponse(err)

	ctx := c.Request().Context()
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx, "request failed",
			sl.Traced(ctx), sl.Err(err),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Int("status", status))
	} else {
		s.logger.DebugContext(ctx, "request rejected",
			sl.Traced(ctx), sl.Err(err),
			slog.String("code", body.Code))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to write error response", sl.Traced(ctx), sl.Err(err))
	}
}
