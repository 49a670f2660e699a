package ports

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
)

// CartRepository persists carts. There is exactly one cart per owner.
type CartRepository interface {
	// GetForUpdate loads the owner's cart and locks it until the transaction
	// ends, creating an empty cart first when none exists.
	GetForUpdate(ctx context.Context, owner cart.Owner, now time.Time) (*cart.Cart, error)

	// Find loads the owner's cart without locking; errs.ErrObjectNotFound if none.
	Find(ctx context.Context, owner cart.Owner) (*cart.Cart, error)

	// Save replaces the cart's lines and stores its version.
	Save(ctx context.Context, c *cart.Cart) error

	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteAbandonedAnonymous removes guest carts untouched since idleSince.
	DeleteAbandonedAnonymous(ctx context.Context, idleSince time.Time) (int64, error)
}
