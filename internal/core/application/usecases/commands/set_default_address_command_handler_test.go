package commands_test

import (
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetDefaultAddressCommandHandler_Handle_KeepsSingleDefault(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	first := savedAddress(t, userID, true, now.Add(-2*time.Hour))
	second := savedAddress(t, userID, false, now.Add(-time.Hour))
	cmd, err := commands.NewSetDefaultAddressCommand(userSession(t, userID), second.ID())
	require.NoError(t, err)

	repo := new(mocks.AddressRepository)
	repo.On("LockOwner", ctx, userID).Return(nil)
	repo.On("ListByOwner", ctx, userID).Return([]*address.Address{first, second}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*address.Address")).Return(nil).Twice()
	uow := new(mocks.UnitOfWork).AllowTx()
	uow.On("AddressRepository").Return(repo)

	h := commands.NewSetDefaultAddressCommandHandler(addressFactory{uow})
	require.NoError(t, h.Handle(ctx, cmd))

	assert.False(t, first.IsDefault())
	assert.True(t, second.IsDefault())
	uow.AssertCalled(t, "Commit", ctx)
}
