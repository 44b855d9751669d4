package queries_test

import (
	"context"
	"testing"
	"time"

	"transit/internal/adapters/out/postgres/hubrepo"
	"transit/internal/adapters/out/postgres/orderrepo"
	"transit/internal/core/application/usecases/queries"
	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"
	"transit/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// stubAggregateTracker satisfies the repository's tracker without recording.
type stubAggregateTracker struct{}

func (stubAggregateTracker) TrackAggregate(kernel.UUID, interface{}) {}

// QueriesIntegrationTestSuite exercises the read side against a real
// PostgreSQL container, with data seeded through the write side.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository

	origin   *hub.Hub
	regional *hub.Hub
	local    *hub.Hub
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &hubrepo.HubDTO{}))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, hubs").Error)

	repository, err := orderrepo.NewGormOrderRepository(suite.db, stubAggregateTracker{})
	suite.Require().NoError(err)
	suite.orders = repository

	suite.origin = suite.seedHub("Kochi Warehouse", "Ernakulam", 0, hub.OriginWarehouse, true)
	suite.regional = suite.seedHub("Thrissur Regional", "Thrissur", 1, hub.RegionalHub, true)
	suite.local = suite.seedHub("Kozhikode Local", "Kozhikode", 2, hub.LocalHub, true)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetTrackingView_ReturnsRouteAndTimeline() {
	ctx := context.Background()

	testOrder := suite.seedOrderAtRegional(ctx)

	query, err := queries.NewGetTrackingViewQuery(testOrder.ID())
	suite.Require().NoError(err)

	handler := queries.NewGetTrackingViewQueryHandler(suite.db)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(testOrder.ID().IsEqual(view.OrderID))
	suite.Equal("Kozhikode", view.DestinationDistrict)
	suite.Equal("APPROVED", view.Status)
	suite.Equal("NOT_ASSIGNED", view.DeliveryStatus)

	suite.Require().NotNil(view.CurrentHub)
	suite.Equal("Thrissur Regional", view.CurrentHub.Name)

	suite.Require().Len(view.Route, 3)
	suite.Equal("Kochi Warehouse", view.Route[0].Name)
	suite.Equal("Thrissur Regional", view.Route[1].Name)
	suite.Equal("Kozhikode Local", view.Route[2].Name)

	statuses := make([]string, len(view.Timeline))
	for i, entry := range view.Timeline {
		statuses[i] = entry.Status
	}
	suite.Equal([]string{"ORDER_PLACED", "ARRIVED_AT_HUB", "IN_TRANSIT", "ARRIVED_AT_HUB"}, statuses)

	suite.Require().NotNil(view.Timeline[1].HubName)
	suite.Equal("Kochi Warehouse", *view.Timeline[1].HubName)
	suite.Require().NotNil(view.Timeline[3].HubName)
	suite.Equal("Thrissur Regional", *view.Timeline[3].HubName)
}

func (suite *QueriesIntegrationTestSuite) TestGetTrackingView_UnknownOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	query, err := queries.NewGetTrackingViewQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	handler := queries.NewGetTrackingViewQueryHandler(suite.db)
	_, err = handler.Handle(ctx, query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueriesIntegrationTestSuite) TestGetHubOrders_ListsResidentOrdersOnly() {
	ctx := context.Background()

	resident := suite.seedOrderAtRegional(ctx)
	suite.seedPendingOrder(ctx)

	query, err := queries.NewGetHubOrdersQuery(suite.regional.ID())
	suite.Require().NoError(err)

	handler := queries.NewGetHubOrdersQueryHandler(suite.db)
	orders, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 1)
	suite.True(resident.ID().IsEqual(orders[0].OrderID))
	suite.Equal("APPROVED", orders[0].Status)
	suite.NotNil(orders[0].ArrivedAt)

	// The origin already dispatched the order, so its queue is empty.
	originQuery, err := queries.NewGetHubOrdersQuery(suite.origin.ID())
	suite.Require().NoError(err)

	originOrders, err := handler.Handle(ctx, originQuery)
	suite.Require().NoError(err)
	suite.Empty(originOrders)
}

func (suite *QueriesIntegrationTestSuite) TestGetDispatchedOrders_ReportsDownstreamArrival() {
	ctx := context.Background()

	dispatched := suite.seedOrderAtRegional(ctx)
	suite.seedPendingOrder(ctx)

	query, err := queries.NewGetDispatchedOrdersQuery(suite.origin.ID())
	suite.Require().NoError(err)

	handler := queries.NewGetDispatchedOrdersQueryHandler(suite.db)
	orders, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 1)
	suite.True(dispatched.ID().IsEqual(orders[0].OrderID))
	suite.True(orders[0].Arrived)

	// The regional hub has not dispatched anything yet.
	regionalQuery, err := queries.NewGetDispatchedOrdersQuery(suite.regional.ID())
	suite.Require().NoError(err)

	regionalOrders, err := handler.Handle(ctx, regionalQuery)
	suite.Require().NoError(err)
	suite.Empty(regionalOrders)
}

func (suite *QueriesIntegrationTestSuite) TestGetHubStats_IncludesZeroCountsInLineOrder() {
	ctx := context.Background()

	suite.seedOrderAtRegional(ctx)
	suite.seedHub("Closed Hub", "Alappuzha", 3, hub.LocalHub, false)

	handler := queries.NewGetHubStatsQueryHandler(suite.db)
	stats, err := handler.Handle(ctx, queries.NewGetHubStatsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(stats, 3)
	suite.Equal("Kochi Warehouse", stats[0].Name)
	suite.Equal(0, stats[0].Orders)
	suite.Equal("Thrissur Regional", stats[1].Name)
	suite.Equal(1, stats[1].Orders)
	suite.Equal("Kozhikode Local", stats[2].Name)
	suite.Equal(0, stats[2].Orders)

	suite.Equal("ORIGIN_WAREHOUSE", stats[0].Kind)
}

// seedHub stores a hub row and returns the domain entity.
func (suite *QueriesIntegrationTestSuite) seedHub(
	name, districtName string, position int, kind hub.Kind, isActive bool,
) *hub.Hub {
	district, err := kernel.NewDistrict(districtName)
	suite.Require().NoError(err)

	entity, err := hub.RestoreHub(kernel.NewUUID(), name, district, position, kind, isActive, nil)
	suite.Require().NoError(err)

	dto := hubrepo.HubDTO{
		ID:       entity.ID().Bytes(),
		Name:     entity.Name(),
		District: entity.District().Name(),
		Position: entity.Position(),
		Kind:     int(entity.Kind()),
		IsActive: entity.IsActive(),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	return entity
}

// seedOrderAtRegional walks an approved order from the origin into the
// regional hub and persists it.
func (suite *QueriesIntegrationTestSuite) seedOrderAtRegional(ctx context.Context) *order.Order {
	destination, err := kernel.NewDistrict("Kozhikode")
	suite.Require().NoError(err)

	route := []kernel.UUID{suite.origin.ID(), suite.regional.ID(), suite.local.ID()}

	testOrder, err := order.NewOrder(kernel.NewUUID(), destination, route, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.Approve())
	suite.Require().NoError(testOrder.ScanIn(suite.origin, time.Now().UTC()))
	suite.Require().NoError(testOrder.DispatchToNextHub(suite.origin, suite.regional, time.Now().UTC()))
	suite.Require().NoError(testOrder.ScanIn(suite.regional, time.Now().UTC()))

	suite.Require().NoError(suite.orders.Add(ctx, testOrder))
	return testOrder
}

// seedPendingOrder persists an order that has not entered the network yet.
func (suite *QueriesIntegrationTestSuite) seedPendingOrder(ctx context.Context) *order.Order {
	destination, err := kernel.NewDistrict("Thrissur")
	suite.Require().NoError(err)

	route := []kernel.UUID{suite.origin.ID(), suite.regional.ID()}

	testOrder, err := order.NewOrder(kernel.NewUUID(), destination, route, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orders.Add(ctx, testOrder))
	return testOrder
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
