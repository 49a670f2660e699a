// Package pgerr classifies PostgreSQL driver errors into the errs taxonomy.
package pgerr

import (
	"context"
	"errors"
	"net"

	"checkout/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	lockNotAvailable     = "55P03"
	queryCanceled        = "57014"
)

const dependency = "postgres"

// IsUniqueViolation reports a duplicate key.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Classify wraps transient failures (lock conflicts, timeouts, lost
// connections) as errs.ErrDependencyUnavailable so callers may retry.
// Everything else is returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case serializationFailure, deadlockDetected, lockNotAvailable, queryCanceled:
			return errs.NewDependencyUnavailableErrorWithCause(dependency, err)
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return errs.NewDependencyUnavailableErrorWithCause(dependency, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return errs.NewDependencyUnavailableErrorWithCause(dependency, err)
	}
	return err
}
