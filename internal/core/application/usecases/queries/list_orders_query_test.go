package queries_test

import (
	"testing"

	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_ValidInput(t *testing.T) {
	query, err := queries.NewListOrdersQuery(session(t, kernel.NewUUID()), 20, 40)

	require.NoError(t, err)
	assert.Equal(t, 20, query.Limit())
	assert.Equal(t, 40, query.Offset())
}

func TestNewListOrdersQuery_Paging(t *testing.T) {
	s := session(t, kernel.NewUUID())

	for _, limit := range []int{0, 101} {
		_, err := queries.NewListOrdersQuery(s, limit, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, limit)
	}

	_, err := queries.NewListOrdersQuery(s, 10, -1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
