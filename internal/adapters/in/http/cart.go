package http

import (
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetCart godoc
//
//	@Summary	Current cart of the caller (user or guest session)
//	@Tags		cart
//	@Produce	json
//	@Param		X-User-ID		header		string	false	"Authenticated user"
//	@Param		X-Session-ID	header		string	false	"Guest session"
//	@Success	200				{object}	CartResponse
//	@Failure	401				{object}	ErrorResponse
//	@Router		/cart [get]
func (s *Server) GetCart(c echo.Context) error {
	query, err := queries.NewGetCartQuery(session(c))
	if err != nil {
		return err
	}
	view, err := s.h.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(view))
}

// AddCartItem godoc
//
//	@Summary	Add a variant to the cart, merging with an existing line
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		body	body		AddCartItemRequest	true	"Variant and quantity"
//	@Success	200		{object}	CartResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse	"OUT_OF_STOCK"
//	@Failure	503		{object}	ErrorResponse
//	@Router		/cart/items [post]
func (s *Server) AddCartItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	variantID, err := kernel.UUIDFromString(req.VariantID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAddCartItemCommand(session(c), variantID, req.Quantity)
	if err != nil {
		return err
	}
	return renderCart(c, s.h.AddCartItem, cmd)
}

// UpdateCartItem godoc
//
//	@Summary	Set the quantity of a cart line; zero removes it
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		itemId	path		string					true	"Cart item id"
//	@Param		body	body		UpdateCartItemRequest	true	"New quantity"
//	@Success	200		{object}	CartResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/cart/items/{itemId} [patch]
func (s *Server) UpdateCartItem(c echo.Context) error {
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	var req UpdateCartItemRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateCartItemCommand(session(c), itemID, req.Quantity)
	if err != nil {
		return err
	}
	return renderCart(c, s.h.UpdateCartItem, cmd)
}

// RemoveCartItem godoc
//
//	@Summary	Remove a cart line
//	@Tags		cart
//	@Produce	json
//	@Param		itemId	path		string	true	"Cart item id"
//	@Success	200		{object}	CartResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/cart/items/{itemId} [delete]
func (s *Server) RemoveCartItem(c echo.Context) error {
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewRemoveCartItemCommand(session(c), itemID)
	if err != nil {
		return err
	}
	return renderCart(c, s.h.RemoveCartItem, cmd)
}

// ClearCart godoc
//
//	@Summary	Remove every line from the cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart [delete]
func (s *Server) ClearCart(c echo.Context) error {
	cmd, err := commands.NewClearCartCommand(session(c))
	if err != nil {
		return err
	}
	return renderCart(c, s.h.ClearCart, cmd)
}

// MergeCarts godoc
//
//	@Summary	Merge the guest cart of X-Session-ID into the user's cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/cart/merge [post]
func (s *Server) MergeCarts(c echo.Context) error {
	cmd, err := commands.NewMergeCartsCommand(session(c))
	if err != nil {
		return err
	}
	return renderCart(c, s.h.MergeCarts, cmd)
}

// renderCart runs a cart command and writes the resulting cart.
func renderCart[T any](c echo.Context, h UseCase[T, *cart.Cart], cmd T) error {
	updated, err := h.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(queries.NewCartView(updated)))
}
