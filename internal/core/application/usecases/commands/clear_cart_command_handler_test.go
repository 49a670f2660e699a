package commands_test

import (
	"testing"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearCartCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	anon, err := kernel.NewAnonymousSession("guest-1")
	require.NoError(t, err)
	owner, err := cart.OwnerForSession(anon)
	require.NoError(t, err)
	c, err := cart.NewCart(kernel.NewUUID(), owner, now)
	require.NoError(t, err)
	_, err = c.AddItem(kernel.NewUUID(), 2, price("10", "0"), now)
	require.NoError(t, err)
	cmd, err := commands.NewClearCartCommand(anon)
	require.NoError(t, err)

	repo := new(mocks.CartRepository)
	repo.On("GetForUpdate", ctx, owner, now).Return(c, nil).Once()
	repo.On("Save", ctx, c).Return(nil).Once()
	uow := new(mocks.UnitOfWork).AllowTx()
	uow.On("CartRepository").Return(repo)

	h := commands.NewClearCartCommandHandler(cartFactory{uow}, kernel.FixedClock(now))
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	repo.AssertExpectations(t)
}
