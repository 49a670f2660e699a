package kernel_test

import (
	"testing"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundMoney(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"99.999", "100"},
		{"180", "180"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got := kernel.RoundMoney(decimal.RequireFromString(tc.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)), "got %s", got)
		})
	}
}

func TestValidateMoney(t *testing.T) {
	require.NoError(t, kernel.ValidateMoney("price", decimal.Zero))
	require.ErrorIs(t, kernel.ValidateMoney("price", decimal.NewFromInt(-1)), errs.ErrValueIsInvalid)
}

func TestValidateRate(t *testing.T) {
	require.NoError(t, kernel.ValidateRate("taxRate", decimal.RequireFromString("0.18")))
	require.NoError(t, kernel.ValidateRate("taxRate", decimal.NewFromInt(1)))
	require.ErrorIs(t, kernel.ValidateRate("taxRate", decimal.RequireFromString("1.5")), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, kernel.ValidateRate("taxRate", decimal.RequireFromString("-0.1")), errs.ErrValueIsOutOfRange)
}
