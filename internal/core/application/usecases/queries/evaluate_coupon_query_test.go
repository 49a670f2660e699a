package queries_test

import (
	"testing"

	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluateCouponQuery_NormalizesCode(t *testing.T) {
	userID := kernel.NewUUID()

	query, err := queries.NewEvaluateCouponQuery(session(t, userID), " save10 ")

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "SAVE10", query.Code())
	assert.Equal(t, userID, query.UserID())
}

func TestNewEvaluateCouponQuery_GuestHasNoUser(t *testing.T) {
	guest, err := kernel.NewAnonymousSession("guest-1")
	require.NoError(t, err)

	query, err := queries.NewEvaluateCouponQuery(guest, "SAVE10")

	require.NoError(t, err)
	assert.True(t, query.UserID().IsZero())
	assert.True(t, query.Owner().IsAnonymous())
}

func TestNewEvaluateCouponQuery_MalformedCode(t *testing.T) {
	_, err := queries.NewEvaluateCouponQuery(session(t, kernel.NewUUID()), "x")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
