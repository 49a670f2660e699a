package http

import (
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// EvaluateCoupon godoc
//
//	@Summary	Evaluate a coupon against the caller's cart without redeeming it
//	@Tags		coupons
//	@Accept		json
//	@Produce	json
//	@Param		body	body		EvaluateCouponRequest	true	"Coupon code"
//	@Success	200		{object}	EvaluateCouponResponse
//	@Failure	422		{object}	ErrorResponse	"EMPTY_CART"
//	@Router		/coupons/evaluate [post]
func (s *Server) EvaluateCoupon(c echo.Context) error {
	var req EvaluateCouponRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	query, err := queries.NewEvaluateCouponQuery(session(c), req.Code)
	if err != nil {
		return err
	}
	result, err := s.h.EvaluateCoupon.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, EvaluateCouponResponse{
		CouponOutcomeResponse: newCouponOutcomeResponse(result.Outcome),
		Subtotal:              money(result.Subtotal),
	})
}

// CreateCoupon godoc
//
//	@Summary	Publish a coupon (admin)
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		X-Actor-Role	header		string				true	"admin"
//	@Param		body			body		CreateCouponRequest	true	"Coupon terms"
//	@Success	201				{object}	CouponResponse
//	@Failure	403				{object}	ErrorResponse
//	@Failure	409				{object}	ErrorResponse	"COUPON_CODE_TAKEN"
//	@Router		/admin/coupons [post]
func (s *Server) CreateCoupon(c echo.Context) error {
	var req CreateCouponRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	terms, err := req.terms()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateCouponCommand(session(c), req.Code, terms)
	if err != nil {
		return err
	}
	created, err := s.h.CreateCoupon.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newCouponResponse(created))
}
