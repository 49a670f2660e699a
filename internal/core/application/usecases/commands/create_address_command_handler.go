package commands

import (
	"context"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
)

// CreateAddressCommandHandler adds an address. The owner's first address
// becomes the default automatically.
type CreateAddressCommandHandler struct {
	uowFactory AddressUoWFactory
	clock      kernel.Clock
}

func NewCreateAddressCommandHandler(uowFactory AddressUoWFactory, clock kernel.Clock) CreateAddressCommandHandler {
	return CreateAddressCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateAddressCommandHandler) Handle(ctx context.Context, cmd CreateAddressCommand) (*address.Address, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	a, err := address.NewAddress(kernel.NewUUID(), cmd.OwnerID(), cmd.Details(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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
	if err = book.Add(a, cmd.MakeDefault()); err != nil {
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
