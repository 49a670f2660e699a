package commands

import (
	"context"
)

// DeleteAddressCommandHandler removes an address, promoting the newest
// remaining address when the default is removed.
type DeleteAddressCommandHandler struct {
	uowFactory AddressUoWFactory
}

func NewDeleteAddressCommandHandler(uowFactory AddressUoWFactory) DeleteAddressCommandHandler {
	return DeleteAddressCommandHandler{uowFactory: uowFactory}
}

func (h DeleteAddressCommandHandler) Handle(ctx context.Context, cmd DeleteAddressCommand) error {
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
	removed, err := book.Remove(cmd.AddressID())
	if err != nil {
		return err
	}
	if err = repo.Delete(ctx, removed.ID()); err != nil {
		return err
	}
	if err = saveBook(ctx, repo, book); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
