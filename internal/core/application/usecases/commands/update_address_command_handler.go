package commands

import (
	"context"

	"checkout/internal/core/domain/model/address"
)

// UpdateAddressCommandHandler edits an address. Addresses of other owners are
// reported as not found.
type UpdateAddressCommandHandler struct {
	uowFactory AddressUoWFactory
}

func NewUpdateAddressCommandHandler(uowFactory AddressUoWFactory) UpdateAddressCommandHandler {
	return UpdateAddressCommandHandler{uowFactory: uowFactory}
}

func (h UpdateAddressCommandHandler) Handle(ctx context.Context, cmd UpdateAddressCommand) (*address.Address, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AddressRepository()
	book, err := loadBook(ctx, repo, cmd.OwnerID())
	if err != nil {
		return nil, err
	}
	a, err := book.Update(cmd.AddressID(), cmd.Details(), cmd.MakeDefault())
	if err != nil {
		return nil, err
	}
	if err = saveBook(ctx, repo, book); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}
