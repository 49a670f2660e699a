package commands_test

import (
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTerms(startAt, endAt time.Time) coupon.Terms {
	return coupon.Terms{
		Type:    coupon.Fixed,
		Value:   decimal.NewFromInt(150),
		StartAt: startAt,
		EndAt:   endAt,
	}
}

func TestNewCreateCouponCommand(t *testing.T) {
	terms := fixedTerms(now, now.Add(time.Hour))

	_, err := commands.NewCreateCouponCommand(userSession(t, kernel.NewUUID()), "FLAT150", terms)
	require.ErrorIs(t, err, commands.ErrForbidden)

	_, err = commands.NewCreateCouponCommand(adminSession(t), "no spaces allowed", terms)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewCreateCouponCommand(adminSession(t), "FLAT150", fixedTerms(now, now))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewCreateCouponCommand(adminSession(t), " flat150 ", terms)
	require.NoError(t, err)
	assert.Equal(t, "FLAT150", cmd.Code())
}
