package cmd

import (
	"context"
	"log/slog"

	httpadapter "waterdelivery/internal/adapters/in/http"
	"waterdelivery/internal/adapters/out/notify"
	"waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/postgres/catalogrepo"
	"waterdelivery/internal/adapters/out/postgres/clientrepo"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// CompositionRoot builds the application handlers on shared infrastructure.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   *notify.Async
	vocabulary services.StatusVocabulary
}

// NewCompositionRoot wires notifications to Redis when redisClient is not nil and to the
// log otherwise.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *CompositionRoot {
	var sender notify.Sender = notify.NewLogSender(logger)
	if redisClient != nil {
		sender = notify.NewRedisPublisher(redisClient, cfg.NotifyChannel)
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notify.NewAsync(sender, cfg.NotifyMaxInFlight, cfg.NotifyTimeout, logger),
		vocabulary: services.NewStatusVocabulary(),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		catalogrepo.NewGormCatalog(c.gormDB),
		clientrepo.NewGormAddressStore(c.gormDB),
	)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateSetStageCommandHandler() commands.SetStageCommandHandler {
	return commands.NewSetStageCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateGetQueuePositionQueryHandler() queries.GetQueuePositionQueryHandler {
	return queries.NewGetQueuePositionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableOrdersQueryHandler() queries.ListAvailableOrdersQueryHandler {
	return queries.NewListAvailableOrdersQueryHandler(c.gormDB, c.vocabulary)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

// HTTPHandlers collects every use case the HTTP adapter serves.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		ClaimOrder:      c.CreateClaimOrderCommandHandler(),
		SetStage:        c.CreateSetStageCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		CreateDriver:    c.CreateCreateDriverCommandHandler(),
		QueuePosition:   c.CreateGetQueuePositionQueryHandler(),
		AvailableOrders: c.CreateListAvailableOrdersQueryHandler(),
		OrderDetails:    c.CreateGetOrderDetailsQueryHandler(),
	}
}

// Shutdown waits for in-flight notifications until ctx is done.
func (c *CompositionRoot) Shutdown(ctx context.Context) error {
	return c.notifier.Wait(ctx)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
