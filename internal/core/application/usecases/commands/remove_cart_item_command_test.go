package commands_test

import (
	"testing"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemoveCartItemCommand_ValidInput(t *testing.T) {
	itemID := kernel.NewUUID()

	cmd, err := commands.NewRemoveCartItemCommand(userSession(t, kernel.NewUUID()), itemID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, itemID, cmd.ItemID())
}

func TestNewRemoveCartItemCommand_EmptyItemID(t *testing.T) {
	_, err := commands.NewRemoveCartItemCommand(userSession(t, kernel.NewUUID()), kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
