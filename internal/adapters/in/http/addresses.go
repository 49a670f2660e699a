package http

import (
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListAddresses godoc
//
//	@Summary	Address book of the caller, oldest first
//	@Tags		addresses
//	@Produce	json
//	@Success	200	{array}		AddressResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/addresses [get]
func (s *Server) ListAddresses(c echo.Context) error {
	query, err := queries.NewListAddressesQuery(session(c))
	if err != nil {
		return err
	}
	views, err := s.h.ListAddresses.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	resp := make([]AddressResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, newAddressResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateAddress godoc
//
//	@Summary	Add an address; the first one becomes the default
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		body	body		AddressRequest	true	"Address"
//	@Success	201		{object}	AddressResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/addresses [post]
func (s *Server) CreateAddress(c echo.Context) error {
	var req AddressRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateAddressCommand(session(c), req.details(), req.IsDefault)
	if err != nil {
		return err
	}
	created, err := s.h.CreateAddress.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newAddressResponse(queries.NewAddressView(created)))
}

// UpdateAddress godoc
//
//	@Summary	Replace the details of an address
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Address id"
//	@Param		body	body		AddressRequest	true	"Address"
//	@Success	200		{object}	AddressResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/addresses/{id} [put]
func (s *Server) UpdateAddress(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req AddressRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateAddressCommand(session(c), id, req.details(), req.IsDefault)
	if err != nil {
		return err
	}
	updated, err := s.h.UpdateAddress.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAddressResponse(queries.NewAddressView(updated)))
}

// DeleteAddress godoc
//
//	@Summary	Delete an address; a deleted default is replaced by the newest remaining one
//	@Tags		addresses
//	@Param		id	path	string	true	"Address id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/addresses/{id} [delete]
func (s *Server) DeleteAddress(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteAddressCommand(session(c), id)
	if err != nil {
		return err
	}
	if err = s.h.DeleteAddress.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetDefaultAddress godoc
//
//	@Summary	Make an address the default
//	@Tags		addresses
//	@Param		id	path	string	true	"Address id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/addresses/{id}/default [put]
func (s *Server) SetDefaultAddress(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetDefaultAddressCommand(session(c), id)
	if err != nil {
		return err
	}
	if err = s.h.SetDefaultAddress.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
