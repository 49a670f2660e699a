// Package commands contains the write operations of the checkout core.
// Every handler follows the same shape: validate the command, open a unit of
// work, load and lock what it changes, apply domain behavior, persist, commit.
package commands

import (
	"context"

	"checkout/internal/core/ports"
)

// Unit of Work views narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AddressUoW interface {
		TxManager
		AddressRepoFactory
	}

	AddressUoWFactory interface {
		Create() AddressUoW
	}

	CartUoW interface {
		TxManager
		CartRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	CouponUoW interface {
		TxManager
		CouponRepoFactory
	}

	CouponUoWFactory interface {
		Create() CouponUoW
	}

	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW spans every aggregate touched by order placement:
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil { return err }
	//	defer uow.Rollback(ctx)
	//	c, _ := uow.CartRepository().GetForUpdate(ctx, owner, now)
	//	// ... price, redeem coupon, add order, clear cart
	//	return uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		AddressRepoFactory
		CartRepoFactory
		CouponRepoFactory
		OrderRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)
