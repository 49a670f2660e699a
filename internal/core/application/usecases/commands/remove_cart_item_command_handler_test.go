package commands_test

import (
	"testing"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveCartItemCommandHandler_Handle_LastItemKeepsCart(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	c := userCart(t, userID)
	it, err := c.AddItem(kernel.NewUUID(), 1, price("10", "0"), now)
	require.NoError(t, err)
	cmd, err := commands.NewRemoveCartItemCommand(userSession(t, userID), it.ID())
	require.NoError(t, err)

	repo := new(mocks.CartRepository)
	repo.On("GetForUpdate", ctx, mock.Anything, now).Return(c, nil).Once()
	repo.On("Save", ctx, c).Return(nil).Once()
	uow := new(mocks.UnitOfWork).AllowTx()
	uow.On("CartRepository").Return(repo)

	h := commands.NewRemoveCartItemCommandHandler(cartFactory{uow}, kernel.FixedClock(now))
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
