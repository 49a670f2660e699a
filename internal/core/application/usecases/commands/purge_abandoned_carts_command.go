package commands

import (
	"errors"
	"time"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrPurgeAbandonedCartsCommandIsNotConstructed = errors.New(
	"PurgeAbandonedCartsCommand must be created via NewPurgeAbandonedCartsCommand constructor",
)

// PurgeAbandonedCartsCommand removes guest carts idle for longer than ttl.
// Carts of signed-in users are never purged.
type PurgeAbandonedCartsCommand struct {
	ttl time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeAbandonedCartsCommand(ttl time.Duration) (PurgeAbandonedCartsCommand, error) {
	if ttl <= 0 {
		return PurgeAbandonedCartsCommand{}, errs.NewValueIsInvalidError("ttl")
	}
	return PurgeAbandonedCartsCommand{ttl: ttl, guard: guard.NewConstructorGuard()}, nil
}

func (c PurgeAbandonedCartsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeAbandonedCartsCommandIsNotConstructed)
}

func (c PurgeAbandonedCartsCommand) TTL() time.Duration { return c.ttl }
