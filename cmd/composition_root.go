package cmd

import (
	"log/slog"

	httpserver "pressing/internal/adapters/in/http"
	"pressing/internal/adapters/out/notifier"
	"pressing/internal/adapters/out/postgres"
	"pressing/internal/adapters/out/stripepay"
	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/core/domain/services"
	"pressing/internal/core/ports"
	"pressing/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	pricing    *services.PricingCalculator
	checkout   ports.CheckoutProvider
	publisher  ports.NotificationPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	pricing, err := services.NewPricingCalculator(services.DefaultPricingConfig())
	if err != nil {
		return nil, err
	}

	checkout, err := stripepay.NewProvider(stripepay.Config{
		SecretKey:  config.StripeSecretKey,
		SuccessURL: config.CheckoutSuccessURL,
		CancelURL:  config.CheckoutCancelURL,
		Currency:   config.CheckoutCurrency,
	})
	if err != nil {
		return nil, err
	}

	publisher, err := notifier.NewLogPublisher(logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricing:    pricing,
		checkout:   checkout,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.pricing)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.ClaimUoWFactory = FuncClaimUoWFactory(func() commands.ClaimUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.ClaimUoWFactory = FuncClaimUoWFactory(func() commands.ClaimUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.pricing)
}

func (c *CompositionRoot) CreateWeighOrderCommandHandler() commands.WeighOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewWeighOrderCommandHandler(f, c.pricing)
}

func (c *CompositionRoot) CreateApplyPromoCommandHandler() commands.ApplyPromoCommandHandler {
	var f commands.PromoUoWFactory = FuncPromoUoWFactory(func() commands.PromoUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyPromoCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCheckoutSessionCommandHandler() commands.CreateCheckoutSessionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCheckoutSessionCommandHandler(f, c.checkout)
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	var f commands.ReconcileUoWFactory = FuncReconcileUoWFactory(func() commands.ReconcileUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcilePaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelStaleOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchOutboxCommandHandler() commands.DispatchOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOutboxCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetClientOrdersQueryHandler() queries.GetClientOrdersQueryHandler {
	return queries.NewGetClientOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFulfillerOrdersQueryHandler() queries.GetFulfillerOrdersQueryHandler {
	return queries.NewGetFulfillerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateValidatePromoQueryHandler() queries.ValidatePromoQueryHandler {
	return queries.NewValidatePromoQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpserver.Server, error) {
	return httpserver.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateWeighOrderCommandHandler(),
		c.CreateApplyPromoCommandHandler(),
		c.CreateCreateCheckoutSessionCommandHandler(),
		c.CreateReconcilePaymentCommandHandler(),
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetClientOrdersQueryHandler(),
		c.CreateGetFulfillerOrdersQueryHandler(),
		c.CreateValidatePromoQueryHandler(),
		c.config.StripeWebhookSecret,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchOutboxCommandHandler(),
		c.CreateCancelStaleOrdersCommandHandler(),
		c.config.OrderPendingTTL,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncClaimUoWFactory func() commands.ClaimUoW

func (f FuncClaimUoWFactory) Create() commands.ClaimUoW {
	return f()
}

type FuncPromoUoWFactory func() commands.PromoUoW

func (f FuncPromoUoWFactory) Create() commands.PromoUoW {
	return f()
}

type FuncReconcileUoWFactory func() commands.ReconcileUoW

func (f FuncReconcileUoWFactory) Create() commands.ReconcileUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
