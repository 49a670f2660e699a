package commands_test

import (
	"testing"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMergeCartsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	session, err := kernel.NewUserSession(userID, "guest-7", kernel.RoleCustomer)
	require.NoError(t, err)
	cmd, err := commands.NewMergeCartsCommand(session)
	require.NoError(t, err)

	shared := kernel.NewUUID()
	only := kernel.NewUUID()
	target := userCart(t, userID)
	_, _ = target.AddItem(shared, 1, price("100", "0.12"), now)
	guest, err := cart.NewCart(kernel.NewUUID(), cmd.Anonymous(), now)
	require.NoError(t, err)
	_, _ = guest.AddItem(shared, 2, price("100", "0.12"), now)
	_, _ = guest.AddItem(only, 1, price("50", "0.12"), now)

	repo := new(mocks.CartRepository)
	catalog := new(mocks.Catalog)
	uow := new(mocks.UnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, cmd.User(), now).Return(target, nil).Once(),
		repo.On("GetForUpdate", ctx, cmd.Anonymous(), now).Return(guest, nil).Once(),
		catalog.On("CheckAvailability", ctx, shared, 3).Return(true, nil).Once(),
		catalog.On("CheckAvailability", ctx, only, 1).Return(true, nil).Once(),
		repo.On("Save", ctx, target).Return(nil).Once(),
		repo.On("Delete", ctx, guest.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewMergeCartsCommandHandler(cartFactory{uow}, testPricer(catalog), kernel.FixedClock(now))
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Len(t, got.Items(), 2)
	assert.Equal(t, 3, got.QuantityOf(shared))
	assert.Equal(t, 1, got.QuantityOf(only))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
