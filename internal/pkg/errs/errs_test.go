package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order 123", err.Error())
		assert.Equal(t, []error{errs.ErrObjectNotFound}, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("address", 42, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: address 42 (cause: record not found)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("pincode")

		assert.Equal(t, "pincode", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: pincode", err.Error())
		assert.Equal(t, []error{errs.ErrValueIsInvalid}, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be 6 digits")
		err := errs.NewValueIsInvalidErrorWithCause("pincode", cause)

		assert.Equal(t, "value is invalid: pincode (cause: must be 6 digits)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("percentage", 150, 0, 100)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, "value is out of range: percentage is 150, min value is 0, max value is 100", err.Error())
		assert.Equal(t, []error{errs.ErrValueIsOutOfRange}, err.Unwrap())
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredErrorWithCause("code", errors.New("blank"))

	assert.Equal(t, "value is required: code (cause: blank)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Len(t, err.Unwrap(), 2)
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("cart", 3)

	assert.Equal(t, "version is invalid: cart, expected version 3", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestDependencyUnavailableError(t *testing.T) {
	t.Run("is retryable", func(t *testing.T) {
		err := errs.NewDependencyUnavailableErrorWithCause("catalog", context.DeadlineExceeded)

		assert.Equal(t, "dependency is unavailable: catalog (cause: context deadline exceeded)", err.Error())
		assert.True(t, errs.IsRetryable(err))
		assert.True(t, errs.IsRetryable(fmt.Errorf("wrapped: %w", err)))
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("other errors are not retryable", func(t *testing.T) {
		assert.False(t, errs.IsRetryable(errs.NewValueIsInvalidError("quantity")))
		assert.False(t, errs.IsRetryable(nil))
	})
}
