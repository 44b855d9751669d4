package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"transit/internal/core/application/usecases/commands"
	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"
	"transit/internal/core/domain/services"
	"transit/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockHubRepository struct{ mock.Mock }

func (m *MockHubRepository) Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hub.Hub), args.Error(1)
}
func (m *MockHubRepository) GetAll(_ context.Context) ([]*hub.Hub, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) HubRepository() ports.HubRepository {
	args := m.Called()
	return args.Get(0).(ports.HubRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockAccessPolicy struct{ mock.Mock }

func (m *MockAccessPolicy) ManagesHub(ctx context.Context, operatorID, hubID kernel.UUID) (bool, error) {
	args := m.Called(ctx, operatorID, hubID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessPolicy) CarrierEligible(ctx context.Context, carrierID kernel.UUID, district kernel.District) (bool, error) {
	args := m.Called(ctx, carrierID, district)
	return args.Bool(0), args.Error(1)
}

type MockAttemptLimiter struct{ mock.Mock }

func (m *MockAttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// recordingPublisher captures published events without a broker.
type recordingPublisher struct {
	events []ports.OrderChanged
	err    error
}

func (p *recordingPublisher) PublishOrderChanged(_ context.Context, event ports.OrderChanged) error {
	p.events = append(p.events, event)
	return p.err
}

// staticTopology serves a fixed snapshot.
type staticTopology struct {
	topology *services.Topology
	err      error
}

func (s *staticTopology) Topology(_ context.Context) (*services.Topology, error) {
	return s.topology, s.err
}

// transitFixture is a three-hub line with an approved order at the origin.
type transitFixture struct {
	origin   *hub.Hub
	regional *hub.Hub
	local    *hub.Hub
	topology *services.Topology
	order    *order.Order
}

func newTransitFixture(t *testing.T) transitFixture {
	t.Helper()

	makeHub := func(name, districtName string, position int, kind hub.Kind) *hub.Hub {
		district, err := kernel.NewDistrict(districtName)
		require.NoError(t, err)
		h, err := hub.NewHub(kernel.NewUUID(), name, district, position, kind)
		require.NoError(t, err)
		return h
	}

	origin := makeHub("Kochi Warehouse", "Ernakulam", 0, hub.OriginWarehouse)
	regional := makeHub("Thrissur Regional", "Thrissur", 1, hub.RegionalHub)
	local := makeHub("Kozhikode Local", "Kozhikode", 2, hub.LocalHub)

	topology, err := services.NewTopology([]*hub.Hub{origin, regional, local})
	require.NoError(t, err)

	destination, err := kernel.NewDistrict("Kozhikode")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), destination,
		[]kernel.UUID{origin.ID(), regional.ID(), local.ID()}, testNow)
	require.NoError(t, err)
	require.NoError(t, o.Approve())

	return transitFixture{
		origin:   origin,
		regional: regional,
		local:    local,
		topology: topology,
		order:    o,
	}
}
