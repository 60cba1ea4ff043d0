package cmd

import (
	"context"
	"io"
	"log/slog"
	"time"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/assignment"
	"orderflow/internal/adapters/out/notification"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/businesshourrepo"
	"orderflow/internal/adapters/out/pricing"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	clock      clock.Clock
	location   *time.Location

	pricing       ports.PricingService
	businessHours ports.BusinessHourService
	assignments   ports.DeliveryAssignmentGateway
	notifier      ports.NotificationGateway

	closers []io.Closer
}

func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	fees, err := pricing.NewFlatRateService(cfg.Tariff())
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:           cfg,
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		logger:        logger,
		clock:         clock.System(),
		location:      loc,
		pricing:       fees,
		businessHours: businesshourrepo.NewGormBusinessHourService(gormDB, loc),
		assignments:   assignment.NewHTTPGateway(cfg.AssignmentServiceURL, cfg.AssignmentTimeout, logger),
	}

	if c.notifier, err = c.newNotificationGateway(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// newNotificationGateway uses Pub/Sub and Firebase when configured and
// falls back to log-only channels otherwise.
func (c *CompositionRoot) newNotificationGateway(ctx context.Context) (*notification.Gateway, error) {
	var gateway *notification.Gateway

	var sms interface {
		PublishSMS(ctx context.Context, sms notification.SMS) error
	} = notification.NewLoggingSMSPublisher(c.logger)
	if c.cfg.PubSubProjectID != "" {
		publisher, err := notification.NewPubSubSMSPublisher(ctx, c.cfg.PubSubProjectID, c.cfg.PubSubSMSTopic, c.logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, publisher)
		sms = publisher
	}

	if c.cfg.FirebaseCredentialsFile != "" {
		push, err := notification.NewFirebaseSender(ctx, c.cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		gateway = notification.NewGateway(sms, push, c.logger)
	} else {
		gateway = notification.NewGateway(sms, notification.NewLoggingPushSender(c.logger), c.logger)
	}
	return gateway, nil
}

// Close releases adapter connections. The database is closed by the caller.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) packageUoW() commands.PackageUoWFactory {
	return FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) pickupResolver() services.PickupTimeResolver {
	return services.NewPickupTimeResolver(c.cfg.PickupLead, c.cfg.PickupMaxAhead)
}

func (c *CompositionRoot) placementWorkflow() commands.OrderPlacementWorkflow {
	return commands.NewOrderPlacementWorkflow(c.pickupResolver(), c.businessHours, c.clock)
}

func (c *CompositionRoot) packageCanceller() commands.PackageCanceller {
	return commands.NewPackageCanceller(c.assignments, c.clock)
}

func (c *CompositionRoot) CreateCreateDeliveryOrderCommandHandler() commands.CreateDeliveryOrderCommandHandler {
	return commands.NewCreateDeliveryOrderCommandHandler(c.uow(), c.pricing, c.clock)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.uow(), c.placementWorkflow())
}

func (c *CompositionRoot) CreateDuplicateOrderCommandHandler() commands.DuplicateOrderCommandHandler {
	return commands.NewDuplicateOrderCommandHandler(c.uow(), c.placementWorkflow(), c.clock)
}

func (c *CompositionRoot) CreateCreateDeliveryRequestCommandHandler() commands.CreateDeliveryRequestCommandHandler {
	return commands.NewCreateDeliveryRequestCommandHandler(c.uow(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateConfirmDeliveryRequestCommandHandler() commands.ConfirmDeliveryRequestCommandHandler {
	return commands.NewConfirmDeliveryRequestCommandHandler(c.uow(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateUpdatePackageCommandHandler() commands.UpdatePackageCommandHandler {
	return commands.NewUpdatePackageCommandHandler(c.packageUoW(), c.pickupResolver(), c.businessHours, c.clock)
}

func (c *CompositionRoot) CreateDeletePackageCommandHandler() commands.DeletePackageCommandHandler {
	return commands.NewDeletePackageCommandHandler(c.packageUoW())
}

func (c *CompositionRoot) CreateCancelPackageCommandHandler() commands.CancelPackageCommandHandler {
	return commands.NewCancelPackageCommandHandler(c.packageUoW(), c.packageCanceller())
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	return commands.NewReconcilePaymentCommandHandler(c.uow(), c.placementWorkflow())
}

func (c *CompositionRoot) CreateSweepExpiredPackagesCommandHandler() commands.SweepExpiredPackagesCommandHandler {
	return commands.NewSweepExpiredPackagesCommandHandler(c.packageUoW(), c.packageCanceller(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPackageEventsQueryHandler() queries.ListPackageEventsQueryHandler {
	return queries.NewListPackageEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:            c.CreateCreateDeliveryOrderCommandHandler(),
		PlaceOrder:             c.CreatePlaceOrderCommandHandler(),
		DuplicateOrder:         c.CreateDuplicateOrderCommandHandler(),
		CreateDeliveryRequest:  c.CreateCreateDeliveryRequestCommandHandler(),
		ConfirmDeliveryRequest: c.CreateConfirmDeliveryRequestCommandHandler(),
		UpdatePackage:          c.CreateUpdatePackageCommandHandler(),
		DeletePackage:          c.CreateDeletePackageCommandHandler(),
		CancelPackage:          c.CreateCancelPackageCommandHandler(),
		ReconcilePayment:       c.CreateReconcilePaymentCommandHandler(),
		GetOrderDetails:        c.CreateGetOrderDetailsQueryHandler(),
		ListPackageEvents:      c.CreateListPackageEventsQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepExpiredPackagesCommandHandler(), c.cfg.SweepSchedule, c.location, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}
