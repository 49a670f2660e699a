package commands_test

import (
	"testing"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateAddressCommand_ValidInput(t *testing.T) {
	userID := kernel.NewUUID()
	addressID := kernel.NewUUID()
	details := fakeDetails()

	cmd, err := commands.NewUpdateAddressCommand(userSession(t, userID), addressID, details, false)

	require.NoError(t, err)
	assert.Equal(t, userID, cmd.OwnerID())
	assert.Equal(t, addressID, cmd.AddressID())
	assert.Equal(t, details, cmd.Details())
	assert.False(t, cmd.MakeDefault())
}

func TestNewUpdateAddressCommand_InvalidAddressID(t *testing.T) {
	_, err := commands.NewUpdateAddressCommand(userSession(t, kernel.NewUUID()), kernel.UUID{}, fakeDetails(), false)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewUpdateAddressCommand_RequiresUser(t *testing.T) {
	anon, _ := kernel.NewAnonymousSession("guest")
	_, err := commands.NewUpdateAddressCommand(anon, kernel.NewUUID(), fakeDetails(), false)
	require.ErrorIs(t, err, kernel.ErrAuthenticationRequired)
}
