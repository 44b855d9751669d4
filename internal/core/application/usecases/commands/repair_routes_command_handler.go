package commands

import (
	"context"
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"
	"transit/internal/core/domain/services"
	"transit/internal/pkg/errs"
)

// RepairRoutesCommandHandler re-plans routes against the current topology.
//
// Orders whose planned route no longer matches what the planner would
// produce today (a hub was deactivated or inserted) get the fresh route;
// orders already matching are left alone. Terminal orders and orders on
// the last mile are skipped by the aggregate itself.
type RepairRoutesCommandHandler struct {
	uowFactory OrderUoWFactory
	topology   TopologyProvider
	planner    *services.RoutePlanner
}

// NewRepairRoutesCommandHandler creates a handler for route repair.
func NewRepairRoutesCommandHandler(
	uowFactory OrderUoWFactory,
	topology TopologyProvider,
	planner *services.RoutePlanner,
) RepairRoutesCommandHandler {
	return RepairRoutesCommandHandler{
		uowFactory: uowFactory,
		topology:   topology,
		planner:    planner,
	}
}

// Handle processes the repair command and returns how many orders were
// actually re-routed.
func (h *RepairRoutesCommandHandler) Handle(ctx context.Context, cmd RepairRoutesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	topology, err := h.topology.Topology(ctx)
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	var aggregates []*order.Order
	if target := cmd.OrderID(); target != nil {
		aggregate, getErr := orderRepo.Get(ctx, *target)
		if getErr != nil {
			return 0, getErr
		}
		aggregates = append(aggregates, aggregate)
	} else {
		aggregates, err = orderRepo.GetAllActive(ctx)
		if err != nil {
			return 0, err
		}
	}

	repaired := 0
	for _, aggregate := range aggregates {
		changed, repairErr := h.repairOne(topology, aggregate)
		if repairErr != nil {
			// A destination without an active hub cannot be repaired
			// during a sweep; leave that order as is.
			if cmd.OrderID() == nil && errors.Is(repairErr, errs.ErrObjectNotFound) {
				continue
			}
			return repaired, repairErr
		}
		if !changed {
			continue
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return repaired, err
		}
		repaired++
	}

	if err = uow.Commit(ctx); err != nil {
		return repaired, err
	}

	return repaired, nil
}

func (h *RepairRoutesCommandHandler) repairOne(topology *services.Topology, aggregate *order.Order) (bool, error) {
	if aggregate.Status().IsTerminal() || aggregate.Status() == order.StatusOutForDelivery {
		return false, nil
	}

	fresh, err := h.planner.PlanRouteIDs(topology, aggregate.DestinationDistrict())
	if err != nil {
		return false, err
	}

	if sameRoute(aggregate.Route(), fresh) {
		return false, nil
	}

	if err = aggregate.RepairRoute(fresh); err != nil {
		return false, err
	}
	return true, nil
}

func sameRoute(a, b []kernel.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].IsEqual(b[i]) {
			return false
		}
	}
	return true
}
