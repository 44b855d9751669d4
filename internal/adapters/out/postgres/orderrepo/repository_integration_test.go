package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"transit/internal/adapters/out/postgres/orderrepo"
	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"
	"transit/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	repository, err := orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.Require().NoError(err)
	suite.repository = repository
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsFullAggregate() {
	ctx := context.Background()

	testOrder, relay := suite.createInTransitOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(testOrder.ID().IsEqual(retrieved.ID()))
	suite.Equal(testOrder.DestinationDistrict().Name(), retrieved.DestinationDistrict().Name())
	suite.Equal(order.StatusApproved, retrieved.Status())
	suite.Equal(order.DeliveryNotAssigned, retrieved.DeliveryStatus())
	suite.Equal(testOrder.Version(), retrieved.Version())

	suite.Require().Len(retrieved.Route(), len(testOrder.Route()))
	for i, hubID := range testOrder.Route() {
		suite.True(hubID.IsEqual(retrieved.Route()[i]))
	}

	suite.Require().NotNil(retrieved.CurrentHub())
	suite.True(relay.ID().IsEqual(*retrieved.CurrentHub()))

	suite.Require().Len(retrieved.Timeline(), len(testOrder.Timeline()))
	for i, event := range testOrder.Timeline() {
		suite.Equal(event.Status, retrieved.Timeline()[i].Status)
		suite.Equal(event.Location, retrieved.Timeline()[i].Location)
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsStoredVersion() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Approve())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusApproved, retrieved.Status())
	suite.Equal(testOrder.Version()+1, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First writer wins, bumping the stored version past the aggregate's.
	suite.Require().NoError(testOrder.Approve())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsVersionError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createPendingOrder())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsDeliveryCodeOnNull() {
	ctx := context.Background()

	testOrder, carrierID := suite.createOutForDeliveryOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NotNil(testOrder.DeliveryOtp())

	code := testOrder.DeliveryOtp().String()
	suite.Require().NoError(testOrder.ConfirmDelivery(carrierID, code, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusDelivered, retrieved.Status())
	suite.Nil(retrieved.DeliveryOtp())
	suite.Nil(retrieved.OtpIssuedAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_SkipsTerminalOrders() {
	ctx := context.Background()

	active := suite.createPendingOrder()
	cancelled := suite.createPendingOrder()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, active))

	suite.Require().NoError(cancelled.Cancel(time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	orders, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 1)
	suite.True(active.ID().IsEqual(orders[0].ID()))

	suite.tracker.AssertExpectations(suite.T())
}

// createPendingOrder creates an order freshly placed toward a two hop route.
func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrder() *order.Order {
	destination, err := kernel.NewDistrict("Thrissur")
	suite.Require().NoError(err)

	route := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	testOrder, err := order.NewOrder(kernel.NewUUID(), destination, route, time.Now().UTC())
	suite.Require().NoError(err)
	return testOrder
}

// createInTransitOrder creates an approved order scanned into the first hub
// of its route.
func (suite *OrderRepositoryIntegrationTestSuite) createInTransitOrder() (*order.Order, *hub.Hub) {
	district, err := kernel.NewDistrict("Ernakulam")
	suite.Require().NoError(err)
	destination, err := kernel.NewDistrict("Thrissur")
	suite.Require().NoError(err)

	origin, err := hub.NewHub(kernel.NewUUID(), "Kochi Warehouse", district, 0, hub.OriginWarehouse)
	suite.Require().NoError(err)
	relay, err := hub.NewHub(kernel.NewUUID(), "Thrissur Regional", destination, 1, hub.RegionalHub)
	suite.Require().NoError(err)

	route := []kernel.UUID{origin.ID(), relay.ID()}

	testOrder, err := order.NewOrder(kernel.NewUUID(), destination, route, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.Approve())
	suite.Require().NoError(testOrder.ScanIn(origin, time.Now().UTC()))
	suite.Require().NoError(testOrder.DispatchToNextHub(origin, relay, time.Now().UTC()))
	suite.Require().NoError(testOrder.ScanIn(relay, time.Now().UTC()))

	return testOrder, relay
}

// createOutForDeliveryOrder walks an order to the final hub and hands it to
// a carrier, returning the carrier for the delivery confirmation.
func (suite *OrderRepositoryIntegrationTestSuite) createOutForDeliveryOrder() (*order.Order, kernel.UUID) {
	testOrder, relay := suite.createInTransitOrder()
	carrierID := kernel.NewUUID()

	_, err := testOrder.DispatchToCarrier(relay, carrierID, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AcceptAssignment(carrierID))
	suite.Require().NoError(testOrder.StartFinalDelivery(carrierID))

	return testOrder, carrierID
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
