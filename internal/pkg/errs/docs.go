// Package errs holds the error categories shared by the checkout core and its
// adapters.
//
// Every category is a sentinel plus a struct carrying the offending parameter
// and an optional cause:
//
//	ErrValueIsRequired        ValueIsRequiredError
//	ErrValueIsInvalid         ValueIsInvalidError
//	ErrValueIsOutOfRange      ValueIsOutOfRangeError
//	ErrObjectNotFound         ObjectNotFoundError
//	ErrVersionIsInvalid       VersionIsInvalidError
//	ErrDependencyUnavailable  DependencyUnavailableError
//
// Unwrap returns both the sentinel and the cause, so a single errors.Is call
// matches either:
//
//	err := errs.NewDependencyUnavailableErrorWithCause("catalog", context.DeadlineExceeded)
//	errors.Is(err, errs.ErrDependencyUnavailable) // true
//	errors.Is(err, context.DeadlineExceeded)      // true
//
// IsRetryable reports whether a caller may repeat the operation with backoff.
// Only dependency failures qualify; validation failures and state conflicts
// need a new decision from the caller.
package errs
