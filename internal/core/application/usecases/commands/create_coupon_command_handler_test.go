package commands_test

import (
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/ports"
	"checkout/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCouponCommandHandler_Handle(t *testing.T) {
	t.Run("adds coupon", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateCouponCommand(adminSession(t), "FLAT150", fixedTerms(now, now.Add(time.Hour)))
		require.NoError(t, err)

		repo := new(mocks.CouponRepository)
		uow := new(mocks.UnitOfWork)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CouponRepository").Return(repo).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*coupon.Coupon")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := commands.NewCreateCouponCommandHandler(couponFactory{uow}).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, c.IsActive())
		assert.Equal(t, 0, c.UsedCount())
		uow.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCreateCouponCommand(adminSession(t), "FLAT150", fixedTerms(now, now.Add(time.Hour)))

		repo := new(mocks.CouponRepository)
		repo.On("Add", ctx, mock.Anything).Return(ports.ErrCouponCodeTaken).Once()
		uow := new(mocks.UnitOfWork).AllowTx()
		uow.On("CouponRepository").Return(repo)

		_, err := commands.NewCreateCouponCommandHandler(couponFactory{uow}).Handle(ctx, cmd)

		require.ErrorIs(t, err, ports.ErrCouponCodeTaken)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
