package commands

import (
	"context"
)

// SetDefaultAddressCommandHandler switches the default atomically: the
// previous default is cleared in the same transaction.
type SetDefaultAddressCommandHandler struct {
	uowFactory AddressUoWFactory
}

func NewSetDefaultAddressCommandHandler(uowFactory AddressUoWFactory) SetDefaultAddressCommandHandler {
	return SetDefaultAddressCommandHandler{uowFactory: uowFactory}
}

func (h SetDefaultAddressCommandHandler) Handle(ctx context.Context, cmd SetDefaultAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AddressRepository()
	book, err := loadBook(ctx, repo, cmd.OwnerID())
	if err != nil {
		return err
	}
	if err = book.SetDefault(cmd.AddressID()); err != nil {
		return err
	}
	if err = saveBook(ctx, repo, book); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
