// Package mocks provides testify mocks of the ports for handler tests.
package mocks

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type UnitOfWork struct{ mock.Mock }

func (m *UnitOfWork) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *UnitOfWork) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *UnitOfWork) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *UnitOfWork) AddressRepository() ports.AddressRepository {
	return m.Called().Get(0).(ports.AddressRepository)
}

func (m *UnitOfWork) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}

func (m *UnitOfWork) CouponRepository() ports.CouponRepository {
	return m.Called().Get(0).(ports.CouponRepository)
}

func (m *UnitOfWork) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

// AllowTx stubs Begin, Commit and Rollback to succeed any number of times.
func (m *UnitOfWork) AllowTx() *UnitOfWork {
	m.On("Begin", mock.Anything).Return(nil).Maybe()
	m.On("Commit", mock.Anything).Return(nil).Maybe()
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
	return m
}

type AddressRepository struct{ mock.Mock }

func (m *AddressRepository) LockOwner(ctx context.Context, ownerID kernel.UUID) error {
	return m.Called(ctx, ownerID).Error(0)
}

func (m *AddressRepository) ListByOwner(ctx context.Context, ownerID kernel.UUID) ([]*address.Address, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*address.Address), args.Error(1)
}

func (m *AddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *AddressRepository) Save(ctx context.Context, a *address.Address) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AddressRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type CartRepository struct{ mock.Mock }

func (m *CartRepository) GetForUpdate(ctx context.Context, owner cart.Owner, now time.Time) (*cart.Cart, error) {
	args := m.Called(ctx, owner, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *CartRepository) Find(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CartRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CartRepository) DeleteAbandonedAnonymous(ctx context.Context, idleSince time.Time) (int64, error) {
	args := m.Called(ctx, idleSince)
	return args.Get(0).(int64), args.Error(1)
}

type CouponRepository struct{ mock.Mock }

func (m *CouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *CouponRepository) FindByCodeForUpdate(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *CouponRepository) UserUsage(ctx context.Context, couponID, userID kernel.UUID) (int, error) {
	args := m.Called(ctx, couponID, userID)
	return args.Int(0), args.Error(1)
}

func (m *CouponRepository) Redeem(ctx context.Context, c *coupon.Coupon, userID kernel.UUID) error {
	return m.Called(ctx, c, userID).Error(0)
}

func (m *CouponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CouponRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*coupon.Coupon, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coupon.Coupon), args.Error(1)
}

type OrderRepository struct{ mock.Mock }

func (m *OrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepository) GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*order.Order, error) {
	args := m.Called(ctx, razorpayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type Catalog struct{ mock.Mock }

func (m *Catalog) GetVariantPrice(ctx context.Context, variantID kernel.UUID) (ports.VariantPrice, error) {
	args := m.Called(ctx, variantID)
	return args.Get(0).(ports.VariantPrice), args.Error(1)
}

func (m *Catalog) CheckAvailability(ctx context.Context, variantID kernel.UUID, quantity int) (bool, error) {
	args := m.Called(ctx, variantID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *Catalog) GetVariantDetails(ctx context.Context, variantID kernel.UUID) (services.VariantDetails, error) {
	args := m.Called(ctx, variantID)
	return args.Get(0).(services.VariantDetails), args.Error(1)
}

type PaymentGateway struct{ mock.Mock }

func (m *PaymentGateway) CreateOrder(
	ctx context.Context,
	amount decimal.Decimal,
	currency, receipt string,
) (ports.GatewayOrder, error) {
	args := m.Called(ctx, amount, currency, receipt)
	return args.Get(0).(ports.GatewayOrder), args.Error(1)
}

func (m *PaymentGateway) FetchOrder(ctx context.Context, gatewayOrderID string) (ports.GatewayOrder, error) {
	args := m.Called(ctx, gatewayOrderID)
	return args.Get(0).(ports.GatewayOrder), args.Error(1)
}

func (m *PaymentGateway) FetchPayment(ctx context.Context, paymentID string) (ports.GatewayPayment, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(ports.GatewayPayment), args.Error(1)
}

func (m *PaymentGateway) Verify(ctx context.Context, gatewayOrderID, paymentID, signature string) (bool, error) {
	args := m.Called(ctx, gatewayOrderID, paymentID, signature)
	return args.Bool(0), args.Error(1)
}

type EventPublisher struct{ mock.Mock }

func (m *EventPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}
