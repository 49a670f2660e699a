package queries_test

import (
	"testing"

	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCheckoutSummaryQuery_ValidInput(t *testing.T) {
	userID := kernel.NewUUID()
	addressID := kernel.NewUUID()

	query, err := queries.NewGetCheckoutSummaryQuery(session(t, userID), addressID, " save10 ", order.MethodCOD)

	require.NoError(t, err)
	assert.Equal(t, userID, query.UserID())
	assert.Equal(t, addressID, query.AddressID())
	assert.Equal(t, "save10", query.CouponCode())
	assert.Equal(t, order.MethodCOD, query.PaymentMethod())
}

func TestNewGetCheckoutSummaryQuery_InvalidInput(t *testing.T) {
	guest, _ := kernel.NewAnonymousSession("guest-1")
	_, err := queries.NewGetCheckoutSummaryQuery(guest, kernel.NewUUID(), "", order.MethodCOD)
	require.ErrorIs(t, err, kernel.ErrAuthenticationRequired)

	_, err = queries.NewGetCheckoutSummaryQuery(session(t, kernel.NewUUID()), kernel.UUID{}, "", order.PaymentMethod(0))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
