package http

import (
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const defaultOrdersPageSize = 20

// PlaceOrder godoc
//
//	@Summary	Place an order from the caller's cart
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		body	body		PlaceOrderRequest	true	"Order placement"
//	@Success	201		{object}	OrderStatusResponse
//	@Failure	409		{object}	ErrorResponse	"STALE_SUMMARY, OUT_OF_STOCK or COUPON_NOT_ELIGIBLE"
//	@Failure	422		{object}	ErrorResponse	"EMPTY_CART or PAYMENT_VERIFICATION_FAILED"
//	@Failure	503		{object}	ErrorResponse
//	@Router		/orders [post]
func (s *Server) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return err
	}
	billingID, err := optionalUUID("billingAddressId", req.BillingAddressID)
	if err != nil {
		return err
	}
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return err
	}

	params := commands.PlaceOrderParams{
		BillingAddressID:    billingID,
		CouponCode:          req.CouponCode,
		GatewayOrderID:      req.GatewayOrderID,
		ExpectedCartVersion: req.ExpectedCartVersion,
	}
	if p := req.PaymentProof; p != nil {
		params.Proof = &commands.PaymentProof{
			RazorpayOrderID:   p.RazorpayOrderID,
			RazorpayPaymentID: p.RazorpayPaymentID,
			Signature:         p.RazorpaySignature,
		}
	}

	cmd, err := commands.NewPlaceOrderCommand(session(c), addressID, method, params)
	if err != nil {
		return err
	}
	placed, err := s.h.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newOrderStatusResponse(placed))
}

// ListOrders godoc
//
//	@Summary	Orders of the caller, newest first
//	@Tags		orders
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (1-100)"	default(20)
//	@Param		offset	query		int	false	"Rows to skip"		default(0)
//	@Success	200		{object}	OrderListResponse
//	@Router		/orders [get]
func (s *Server) ListOrders(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultOrdersPageSize)
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	query, err := queries.NewListOrdersQuery(session(c), limit, offset)
	if err != nil {
		return err
	}
	items, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := OrderListResponse{
		Orders: make([]OrderListItemResponse, 0, len(items)),
		Limit:  limit,
		Offset: offset,
	}
	for _, it := range items {
		resp.Orders = append(resp.Orders, OrderListItemResponse{
			ID:            it.ID.String(),
			Status:        it.Status,
			PaymentStatus: it.PaymentStatus,
			PaymentMethod: it.PaymentMethod,
			GrandTotal:    money(it.GrandTotal),
			ItemCount:     it.ItemCount,
			CreatedAt:     it.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrder godoc
//
//	@Summary	One order with its frozen items and addresses
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order id"
//	@Success	200	{object}	OrderResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orders/{id} [get]
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(session(c), id)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(view))
}

// ChangeOrderStatus godoc
//
//	@Summary	Move an order along the fulfilment graph (admin)
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Order id"
//	@Param		body	body		ChangeOrderStatusRequest	true	"Target status"
//	@Success	200		{object}	OrderResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse	"INVALID_TRANSITION"
//	@Router		/orders/{id}/status [patch]
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ChangeOrderStatusRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewChangeOrderStatusCommand(session(c), id, status)
	if err != nil {
		return err
	}
	changed, err := s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(queries.NewOrderView(changed)))
}

// CancelOrder godoc
//
//	@Summary	Cancel an order before it ships
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order id"
//	@Success	200	{object}	OrderResponse
//	@Failure	409	{object}	ErrorResponse	"INVALID_TRANSITION"
//	@Router		/orders/{id}/cancel [post]
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(session(c), id)
	if err != nil {
		return err
	}
	cancelled, err := s.h.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(queries.NewOrderView(cancelled)))
}
