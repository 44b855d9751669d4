package commands

import (
	"context"
	"time"

	"transit/internal/core/domain/model/order"
	"transit/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Plans the hub route from the current topology and stores the order in
// Pending status with its placement event.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	topology   TopologyProvider
	planner    *services.RoutePlanner
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence, a
// TopologyProvider for the hub line and the RoutePlanner.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	topology TopologyProvider,
	planner *services.RoutePlanner,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		topology:   topology,
		planner:    planner,
	}
}

// Handle processes the order creation command.
// The route is fixed at creation time: later hub changes do not affect
// existing orders unless a route repair runs.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	topology, err := h.topology.Topology(ctx)
	if err != nil {
		return err
	}

	route, err := h.planner.PlanRouteIDs(topology, cmd.Destination())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.Destination(), route, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
