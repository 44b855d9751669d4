package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"transit/internal/adapters/out/kafka"
	"transit/internal/adapters/out/notify"
	"transit/internal/adapters/out/postgres"
	"transit/internal/adapters/out/postgres/accesspolicy"
	"transit/internal/adapters/out/postgres/hubrepo"
	redisadapter "transit/internal/adapters/out/redis"
	"transit/internal/core/application/usecases/commands"
	"transit/internal/core/application/usecases/queries"
	"transit/internal/core/domain/services"
	"transit/internal/core/ports"
	"transit/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the application use cases.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     ports.AccessPolicy
	publisher  ports.EventPublisher
	limiter    ports.AttemptLimiter
	otpSink    commands.DispatchedOtpSink
	topology   commands.TopologyProvider
	planner    *services.RoutePlanner
	logger     *slog.Logger
}

// NewCompositionRoot builds the dependency graph for the given configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	uowFactory, err := postgres.NewGormUnitOfWorkFactory(gormDB)
	if err != nil {
		return nil, err
	}

	policy, err := accesspolicy.NewGormAccessPolicy(gormDB)
	if err != nil {
		return nil, err
	}

	publisher, err := kafka.NewOrderChangedPublisher(config.KafkaHost, config.KafkaOrderChangedTopic)
	if err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	limiter, err := redisadapter.NewAttemptLimiter(
		redisClient,
		redisadapter.DefaultLimit,
		redisadapter.DefaultWindow,
	)
	if err != nil {
		return nil, err
	}

	hubRepo, err := hubrepo.NewGormHubRepository(gormDB)
	if err != nil {
		return nil, err
	}

	topology := &hubTopologyProvider{hubs: hubRepo, ttl: time.Minute}
	// A registry without exactly one active origin warehouse cannot route
	// anything. Build the first snapshot now so boot fails instead of the
	// first request.
	if _, err = topology.Topology(context.Background()); err != nil {
		return nil, fmt.Errorf("hub topology is invalid: %w", err)
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
		limiter:    limiter,
		otpSink:    notify.NewLogNotifier(logger),
		topology:   topology,
		planner:    services.NewRoutePlanner(),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.topology, c.planner)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateScanInOrderCommandHandler() commands.ScanInOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewScanInOrderCommandHandler(f, c.policy, c.publisher)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, c.policy, c.publisher, c.otpSink)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptAssignmentCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateStartFinalDeliveryCommandHandler() commands.StartFinalDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartFinalDeliveryCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmDeliveryCommandHandler(f, c.limiter, c.publisher)
}

func (c *CompositionRoot) CreateRepairRoutesCommandHandler() commands.RepairRoutesCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRepairRoutesCommandHandler(f, c.topology, c.planner)
}

func (c *CompositionRoot) CreateGetTrackingViewQueryHandler() queries.GetTrackingViewQueryHandler {
	return queries.NewGetTrackingViewQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHubOrdersQueryHandler() queries.GetHubOrdersQueryHandler {
	return queries.NewGetHubOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDispatchedOrdersQueryHandler() queries.GetDispatchedOrdersQueryHandler {
	return queries.NewGetDispatchedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHubStatsQueryHandler() queries.GetHubStatsQueryHandler {
	return queries.NewGetHubStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRepairRoutesCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// hubTopologyProvider rebuilds the topology from the hub registry, caching
// the snapshot briefly so bursts of commands do not hammer the hubs table.
type hubTopologyProvider struct {
	hubs ports.HubRepository
	ttl  time.Duration

	mu       sync.Mutex
	cached   *services.Topology
	cachedAt time.Time
}

func (p *hubTopologyProvider) Topology(ctx context.Context) (*services.Topology, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && time.Since(p.cachedAt) < p.ttl {
		return p.cached, nil
	}

	hubs, err := p.hubs.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	topology, err := services.NewTopology(hubs)
	if err != nil {
		return nil, err
	}

	p.cached = topology
	p.cachedAt = time.Now()
	return topology, nil
}
