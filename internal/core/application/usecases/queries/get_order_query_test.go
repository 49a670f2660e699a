package queries_test

import (
	"testing"

	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(session(t, kernel.NewUUID()), orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, query.OrderID())
	assert.False(t, query.IsAdmin())

	admin, err := kernel.NewUserSession(kernel.NewUUID(), "", kernel.RoleAdmin)
	require.NoError(t, err)
	query, err = queries.NewGetOrderQuery(admin, orderID)
	require.NoError(t, err)
	assert.True(t, query.IsAdmin())

	_, err = queries.NewGetOrderQuery(session(t, kernel.NewUUID()), kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
