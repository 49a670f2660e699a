package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	postgres_adapter "checkout/internal/adapters/out/postgres"
	"checkout/internal/adapters/out/postgres/catalogrepo"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"
	"checkout/internal/core/ports/mocks"
	"checkout/internal/pkg/errs"

	"github.com/brianvoe/gofakeit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var placedAt = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite runs the unit of work and every repository
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *mocks.EventPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

// SetupTest truncates every table and installs a fresh publisher mock.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE addresses, carts, cart_items, coupons, coupon_usages,
		orders, order_items, order_addresses, variants`).Error
	suite.Require().NoError(err)

	suite.publisher = new(mocks.EventPublisher)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin")
	suite.Require().Error(uow.Rollback(ctx), "rollback without begin")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "nested begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_RoundTrip() {
	ctx := context.Background()
	placed := suite.newOrder(order.MethodRazorpay, "order_RT1")
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Created, loaded.Status())
	suite.Equal(order.PaymentPending, loaded.PaymentStatus())
	suite.Equal("1080.00", loaded.Totals().Grand.StringFixed(2))
	suite.Equal("SAVE10", loaded.CouponCode())
	suite.Require().Len(loaded.Items(), 2)
	suite.Equal("Phone 12 / 128GB", loaded.Items()[0].Title)
	suite.Equal("CASE-12", loaded.Items()[1].SKU)
	suite.Require().Len(loaded.Addresses(), 1)
	suite.Equal(placed.Addresses()[0].Details, loaded.Addresses()[0].Details)
	suite.True(placed.EstimatedDeliveryDate().Equal(*loaded.EstimatedDeliveryDate()))
	suite.Empty(loaded.Events(), "restored orders carry no events")

	byGateway, err := suite.factory.Create().OrderRepository().GetByRazorpayOrderID(ctx, "order_RT1")
	suite.Require().NoError(err)
	suite.True(byGateway.ID().IsEqual(placed.ID()))

	_, err = suite.factory.Create().OrderRepository().GetByRazorpayOrderID(ctx, "order_missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_GatewayOrderBelongsToOneOrder() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	repo := suite.factory.Create().OrderRepository()

	suite.Require().NoError(repo.Add(ctx, suite.newOrder(order.MethodRazorpay, "order_U1")))
	err := repo.Add(ctx, suite.newOrder(order.MethodRazorpay, "order_U1"))
	suite.Require().ErrorIs(err, ports.ErrGatewayOrderTaken)

	suite.Require().NoError(repo.Add(ctx, suite.newOrder(order.MethodCOD, "")))
	suite.Require().NoError(repo.Add(ctx, suite.newOrder(order.MethodCOD, "")), "orders without a gateway order never collide")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_UpdateIsCompareAndSwap() {
	ctx := context.Background()
	placed := suite.newOrder(order.MethodCOD, "")
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, placed))

	first, err := suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	second, err := suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Transition(order.Packed, order.ActorAdmin, placedAt.Add(time.Hour)))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Update(ctx, first))

	suite.Require().NoError(second.Transition(order.Cancelled, order.ActorCustomer, placedAt.Add(time.Hour)))
	err = suite.factory.Create().OrderRepository().Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	current, err := suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Packed, current.Status())
	suite.Equal(1, current.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublishesEventsAfterCommit() {
	ctx := context.Background()
	placed := suite.newOrder(order.MethodRazorpay, "order_EV1")
	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []kernel.DomainEvent) bool {
		return len(events) == 1 && events[0].EventName() == order.EventOrderPlaced
	})).Return(errors.New("broker down")).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)

	suite.Require().NoError(uow.Commit(ctx), "publish failures do not fail the commit")
	suite.publisher.AssertExpectations(suite.T())
	suite.Empty(placed.Events())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDropsEvents() {
	ctx := context.Background()
	placed := suite.newOrder(order.MethodRazorpay, "order_RB1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCartRepository_GetForUpdateCreatesAndSaves() {
	ctx := context.Background()
	owner, err := cart.UserOwner(kernel.NewUUID())
	suite.Require().NoError(err)
	first, second := kernel.NewUUID(), kernel.NewUUID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	c, err := uow.CartRepository().GetForUpdate(ctx, owner, placedAt)
	suite.Require().NoError(err)
	suite.True(c.IsEmpty())
	_, err = c.AddItem(second, 1, price("250"), placedAt)
	suite.Require().NoError(err)
	_, err = c.AddItem(first, 3, price("100"), placedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CartRepository().Save(ctx, c))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().CartRepository().Find(ctx, owner)
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(c.ID()))
	suite.Equal(c.Version(), loaded.Version())
	suite.Require().Len(loaded.Items(), 2)
	suite.True(loaded.Items()[0].VariantID().IsEqual(second), "line order is preserved")
	suite.Equal(3, loaded.QuantityOf(first))
	suite.Equal("550.00", loaded.Subtotal().StringFixed(2))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCartRepository_ConcurrentAddsMergeIntoOneLine() {
	ctx := context.Background()
	owner, err := cart.AnonymousOwner("sess-" + gofakeit.Name())
	suite.Require().NoError(err)
	variant := kernel.NewUUID()

	var wg sync.WaitGroup
	errsCh := make(chan error, 2)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errsCh <- suite.addOne(ctx, owner, variant)
		}()
	}
	wg.Wait()
	close(errsCh)
	for err := range errsCh {
		suite.Require().NoError(err)
	}

	loaded, err := suite.factory.Create().CartRepository().Find(ctx, owner)
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal(2, loaded.Items()[0].Quantity())
}

func (suite *UnitOfWorkIntegrationTestSuite) addOne(ctx context.Context, owner cart.Owner, variant kernel.UUID) error {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CartRepository().GetForUpdate(ctx, owner, placedAt)
	if err != nil {
		return err
	}
	if _, err = c.AddItem(variant, 1, price("99"), placedAt); err != nil {
		return err
	}
	if err = uow.CartRepository().Save(ctx, c); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCartRepository_DeleteAbandonedAnonymous() {
	ctx := context.Background()
	repo := suite.factory.Create().CartRepository()

	guest, _ := cart.AnonymousOwner("old-guest")
	fresh, _ := cart.AnonymousOwner("fresh-guest")
	user, _ := cart.UserOwner(kernel.NewUUID())
	_, err := repo.GetForUpdate(ctx, guest, placedAt.Add(-72*time.Hour))
	suite.Require().NoError(err)
	_, err = repo.GetForUpdate(ctx, fresh, placedAt)
	suite.Require().NoError(err)
	_, err = repo.GetForUpdate(ctx, user, placedAt.Add(-72*time.Hour))
	suite.Require().NoError(err)

	deleted, err := repo.DeleteAbandonedAnonymous(ctx, placedAt.Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.EqualValues(1, deleted)

	_, err = repo.Find(ctx, guest)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = repo.Find(ctx, user)
	suite.Require().NoError(err, "user carts are never purged")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCouponRepository_AddAndFind() {
	ctx := context.Background()
	repo := suite.factory.Create().CouponRepository()
	c := suite.newCoupon("WELCOME", 0)

	suite.Require().NoError(repo.Add(ctx, c))
	suite.Require().ErrorIs(repo.Add(ctx, suite.newCoupon("WELCOME", 0)), ports.ErrCouponCodeTaken)

	found, err := repo.FindByCode(ctx, "WELCOME")
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(c.ID()))
	suite.Equal(coupon.Percentage, found.Terms().Type)
	suite.Require().NotNil(found.Terms().MinOrderAmount)
	suite.Equal("500.00", found.Terms().MinOrderAmount.StringFixed(2))
	suite.Nil(found.Terms().MaxDiscountAmount)

	_, err = repo.FindByCode(ctx, "MISSING")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCouponRepository_RedeemNeverOversells() {
	ctx := context.Background()
	c := suite.newCoupon("LIMITED", 3)
	suite.Require().NoError(suite.factory.Create().CouponRepository().Add(ctx, c))

	const buyers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		redeemed int
	)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if suite.redeem(ctx, "LIMITED", kernel.NewUUID()) == nil {
				mu.Lock()
				redeemed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(3, redeemed)
	stored, err := suite.factory.Create().CouponRepository().FindByCode(ctx, "LIMITED")
	suite.Require().NoError(err)
	suite.Equal(3, stored.UsedCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) redeem(ctx context.Context, code string, userID kernel.UUID) error {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CouponRepository()
	c, err := repo.FindByCodeForUpdate(ctx, code)
	if err != nil {
		return err
	}
	if err = c.Redeem(); err != nil {
		return err
	}
	if err = repo.Redeem(ctx, c, userID); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCouponRepository_UsageAndExpiry() {
	ctx := context.Background()
	repo := suite.factory.Create().CouponRepository()
	c := suite.newCoupon("ONCEEACH", 0)
	userID := kernel.NewUUID()
	suite.Require().NoError(repo.Add(ctx, c))

	usage, err := repo.UserUsage(ctx, c.ID(), userID)
	suite.Require().NoError(err)
	suite.Zero(usage)

	suite.Require().NoError(repo.Redeem(ctx, c, userID))
	suite.Require().NoError(repo.Redeem(ctx, c, userID))
	usage, err = repo.UserUsage(ctx, c.ID(), userID)
	suite.Require().NoError(err)
	suite.Equal(2, usage)

	expired, err := repo.ListExpiredActive(ctx, placedAt.AddDate(0, 2, 0))
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)

	expired[0].Deactivate()
	suite.Require().NoError(repo.Update(ctx, expired[0]))
	expired, err = repo.ListExpiredActive(ctx, placedAt.AddDate(0, 2, 0))
	suite.Require().NoError(err)
	suite.Empty(expired)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAddressRepository_Crud() {
	ctx := context.Background()
	ownerID := kernel.NewUUID()
	older := suite.newAddress(ownerID, placedAt.Add(-time.Hour))
	newer := suite.newAddress(ownerID, placedAt)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	repo := uow.AddressRepository()
	suite.Require().NoError(repo.LockOwner(ctx, ownerID))
	book, err := address.NewBook(ownerID, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(book.Add(newer, false))
	suite.Require().NoError(book.Add(older, false))
	for _, a := range book.Addresses() {
		suite.Require().NoError(repo.Save(ctx, a))
	}
	suite.Require().NoError(uow.Commit(ctx))

	listed, err := suite.factory.Create().AddressRepository().ListByOwner(ctx, ownerID)
	suite.Require().NoError(err)
	suite.Require().Len(listed, 2)
	suite.True(listed[0].ID().IsEqual(older.ID()), "oldest first")
	suite.True(listed[1].IsDefault(), "first added address is the default")

	repo = suite.factory.Create().AddressRepository()
	suite.Require().NoError(repo.Delete(ctx, older.ID()))
	_, err = repo.Get(ctx, older.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(repo.Delete(ctx, older.ID()), errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCatalog_ReadsVariants() {
	ctx := context.Background()
	variant := catalogrepo.VariantDTO{
		ID:        kernel.NewUUID().Bytes(),
		Title:     "Phone 12 / 128GB",
		SKU:       "PH12-128",
		PriceSale: decimal.RequireFromString("999.00"),
		TaxRate:   decimal.RequireFromString("0.18"),
		Stock:     2,
	}
	suite.Require().NoError(suite.db.Create(&variant).Error)
	id, err := kernel.UUIDFromBytes(variant.ID[:])
	suite.Require().NoError(err)
	catalog := catalogrepo.NewGormCatalog(suite.db, time.Second)

	p, err := catalog.GetVariantPrice(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("999.00", p.Price.StringFixed(2))

	ok, err := catalog.CheckAvailability(ctx, id, 2)
	suite.Require().NoError(err)
	suite.True(ok)
	ok, err = catalog.CheckAvailability(ctx, id, 3)
	suite.Require().NoError(err)
	suite.False(ok)

	details, err := catalog.GetVariantDetails(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("PH12-128", details.SKU)

	_, err = catalog.GetVariantPrice(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func price(unit string) cart.Price {
	return cart.Price{Unit: decimal.RequireFromString(unit), TaxRate: decimal.RequireFromString("0.18")}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(method order.PaymentMethod, gatewayOrderID string) *order.Order {
	phone, err := order.NewItem(kernel.NewUUID(), "Phone 12 / 128GB", "PH12-128", decimal.NewFromInt(900), 1, decimal.RequireFromString("0.18"))
	suite.Require().NoError(err)
	caseItem, err := order.NewItem(kernel.NewUUID(), "Case", "CASE-12", decimal.NewFromInt(50), 2, decimal.RequireFromString("0.18"))
	suite.Require().NoError(err)
	eta := placedAt.AddDate(0, 0, 5)

	o, err := order.NewOrder(kernel.NewUUID(), order.Draft{
		UserID:        kernel.NewUUID(),
		PaymentMethod: method,
		Items:         []order.Item{phone, caseItem},
		ShippingAddress: order.Address{Type: order.AddressShipping, Details: address.Details{
			Name:    gofakeit.Name(),
			Line1:   gofakeit.Street(),
			City:    gofakeit.City(),
			State:   gofakeit.State(),
			Country: "IN",
			Pincode: "560001",
		}},
		Totals: order.Totals{
			Subtotal: decimal.NewFromInt(1000),
			Discount: decimal.NewFromInt(100),
			Tax:      decimal.NewFromInt(180),
			Shipping: decimal.Zero,
			Grand:    decimal.NewFromInt(1080),
		},
		CouponCode:            "save10",
		RazorpayOrderID:       gatewayOrderID,
		EstimatedDeliveryDate: &eta,
	}, placedAt)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newCoupon(code string, usageLimit int) *coupon.Coupon {
	minOrder := decimal.NewFromInt(500)
	c, err := coupon.NewCoupon(kernel.NewUUID(), code, coupon.Terms{
		Type:           coupon.Percentage,
		Value:          decimal.NewFromInt(10),
		MinOrderAmount: &minOrder,
		StartAt:        placedAt.Add(-24 * time.Hour),
		EndAt:          placedAt.AddDate(0, 1, 0),
		UsageLimit:     usageLimit,
	})
	suite.Require().NoError(err)
	return c
}

func (suite *UnitOfWorkIntegrationTestSuite) newAddress(ownerID kernel.UUID, createdAt time.Time) *address.Address {
	a, err := address.NewAddress(kernel.NewUUID(), ownerID, address.Details{
		Name:    gofakeit.Name(),
		Line1:   gofakeit.Street(),
		City:    gofakeit.City(),
		State:   gofakeit.State(),
		Country: "IN",
		Pincode: fmt.Sprintf("%d", gofakeit.Number(110001, 855117)),
	}, createdAt)
	suite.Require().NoError(err)
	return a
}
