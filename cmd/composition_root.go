package cmd

import (
	"log/slog"

	httpin "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/kafka"
	"checkout/internal/adapters/out/postgres"
	"checkout/internal/adapters/out/postgres/catalogrepo"
	"checkout/internal/adapters/out/razorpay"
	"checkout/internal/core/application/pricing"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	pricer     pricing.Pricer
	gateway    ports.PaymentGateway
	clock      kernel.Clock
}

// NewCompositionRoot wires the adapters around the core. publisher may be nil
// when no broker is configured; events are then dropped after commit.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) (*CompositionRoot, error) {
	shipping, err := services.NewFlatShippingPolicy(cfg.FlatShippingFee, cfg.FreeShippingThreshold)
	if err != nil {
		return nil, err
	}
	summarizer := services.NewCheckoutSummarizer(shipping, services.FixedDaysDeliveryPolicy{Days: cfg.DeliveryDays})
	catalog := catalogrepo.NewGormCatalog(gormDB, cfg.ExternalCallTimeout)

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		pricer:     pricing.NewPricer(catalog, summarizer, pricing.DefaultBackOff),
		gateway: razorpay.NewGateway(razorpay.Config{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
			BaseURL:   cfg.RazorpayBaseURL,
			Timeout:   cfg.ExternalCallTimeout,
		}, logger),
		clock: kernel.SystemClock{},
	}, nil
}

// NewEventPublisher connects to Kafka, or returns nil when no brokers are set.
func NewEventPublisher(cfg Config, logger *slog.Logger) (*kafka.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaClientID)
	if err != nil {
		return nil, err
	}
	return kafka.NewPublisher(producer, cfg.KafkaOrderEventsTopic, logger), nil
}

func (c *CompositionRoot) addressUoW() commands.AddressUoWFactory {
	return FuncAddressUoWFactory(func() commands.AddressUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) cartUoW() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) couponUoW() commands.CouponUoWFactory {
	return FuncCouponUoWFactory(func() commands.CouponUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) checkoutUoW() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW { return c.uowFactory.Create() })
}

// Handlers builds every use case exposed over HTTP.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	return httpin.Handlers{
		GetCart:        queries.NewGetCartQueryHandler(c.gormDB),
		AddCartItem:    commands.NewAddCartItemCommandHandler(c.cartUoW(), c.pricer, c.clock),
		UpdateCartItem: commands.NewUpdateCartItemCommandHandler(c.cartUoW(), c.pricer, c.clock),
		RemoveCartItem: commands.NewRemoveCartItemCommandHandler(c.cartUoW(), c.clock),
		ClearCart:      commands.NewClearCartCommandHandler(c.cartUoW(), c.clock),
		MergeCarts:     commands.NewMergeCartsCommandHandler(c.cartUoW(), c.pricer, c.clock),

		ListAddresses:     queries.NewListAddressesQueryHandler(c.gormDB),
		CreateAddress:     commands.NewCreateAddressCommandHandler(c.addressUoW(), c.clock),
		UpdateAddress:     commands.NewUpdateAddressCommandHandler(c.addressUoW()),
		DeleteAddress:     commands.NewDeleteAddressCommandHandler(c.addressUoW()),
		SetDefaultAddress: commands.NewSetDefaultAddressCommandHandler(c.addressUoW()),

		EvaluateCoupon: queries.NewEvaluateCouponQueryHandler(c.uowFactory, c.pricer, c.clock),
		CreateCoupon:   commands.NewCreateCouponCommandHandler(c.couponUoW()),

		GetCheckoutSummary: queries.NewGetCheckoutSummaryQueryHandler(c.uowFactory, c.pricer, c.clock),
		CreatePaymentIntent: commands.NewCreatePaymentIntentCommandHandler(
			c.checkoutUoW(), c.pricer, c.gateway, c.clock, c.cfg.Currency),
		PlaceOrder: commands.NewPlaceOrderCommandHandler(
			c.checkoutUoW(), c.pricer, services.NewOrderDrafter(), c.gateway, c.clock),
		ListOrders:            queries.NewListOrdersQueryHandler(c.gormDB),
		GetOrder:              queries.NewGetOrderQueryHandler(c.gormDB),
		ChangeOrderStatus:     commands.NewChangeOrderStatusCommandHandler(c.orderUoW(), c.clock),
		CancelOrder:           commands.NewCancelOrderCommandHandler(c.orderUoW(), c.clock),
		HandlePaymentCallback: commands.NewHandlePaymentCallbackCommandHandler(c.orderUoW(), c.gateway, c.clock),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		commands.NewDeactivateExpiredCouponsCommandHandler(c.couponUoW(), c.clock),
		commands.NewPurgeAbandonedCartsCommandHandler(c.cartUoW(), c.clock),
		c.cfg.AbandonedCartTTL,
		jobs.Schedules{CouponExpiry: c.cfg.CouponExpirySchedule, CartPurge: c.cfg.CartPurgeSchedule},
		c.logger,
	)
}

type FuncAddressUoWFactory func() commands.AddressUoW

func (f FuncAddressUoWFactory) Create() commands.AddressUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCouponUoWFactory func() commands.CouponUoW

func (f FuncCouponUoWFactory) Create() commands.CouponUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
