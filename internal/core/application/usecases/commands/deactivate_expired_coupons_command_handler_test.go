package commands_test

import (
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeactivateExpiredCouponsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	expired, err := coupon.NewCoupon(kernel.NewUUID(), "OLD", fixedTerms(now.Add(-48*time.Hour), now.Add(-time.Hour)))
	require.NoError(t, err)
	edge, err := coupon.NewCoupon(kernel.NewUUID(), "EDGE", fixedTerms(now.Add(-48*time.Hour), now))
	require.NoError(t, err)
	live, err := coupon.NewCoupon(kernel.NewUUID(), "LIVE", fixedTerms(now.Add(-time.Hour), now.Add(time.Hour)))
	require.NoError(t, err)

	repo := new(mocks.CouponRepository)
	repo.On("ListExpiredActive", ctx, now).Return([]*coupon.Coupon{expired, edge, live}, nil).Once()
	repo.On("Update", ctx, expired).Return(nil).Once()
	repo.On("Update", ctx, edge).Return(nil).Once()
	uow := new(mocks.UnitOfWork).AllowTx()
	uow.On("CouponRepository").Return(repo)

	cmd, err := commands.NewDeactivateExpiredCouponsCommand()
	require.NoError(t, err)
	n, err := commands.NewDeactivateExpiredCouponsCommandHandler(couponFactory{uow}, kernel.FixedClock(now)).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, expired.IsActive())
	assert.False(t, edge.IsActive())
	assert.True(t, live.IsActive())
	repo.AssertExpectations(t)
}
