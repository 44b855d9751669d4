package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrRepairRoutesCommandIsNotConstructed = errors.New(
	"RepairRoutesCommand must be created via a NewRepairRoutes constructor",
)

// RepairRoutesCommand re-plans order routes after a topology change, for
// one order or as a sweep across every active order.
type RepairRoutesCommand struct { //nolint:recvcheck //using for validation
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRepairRoutesCommand creates a sweep across all active orders.
func NewRepairRoutesCommand() RepairRoutesCommand {
	return RepairRoutesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// NewRepairOrderRouteCommand creates a repair targeting a single order.
func NewRepairOrderRouteCommand(orderID kernel.UUID) (RepairRoutesCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RepairRoutesCommand{}, err
	}

	return RepairRoutesCommand{
		orderID: &orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c RepairRoutesCommand) Validate() error {
	return c.guard.Validate(ErrRepairRoutesCommandIsNotConstructed)
}

// OrderID returns the targeted order, or nil for a sweep.
func (c RepairRoutesCommand) OrderID() *kernel.UUID {
	return c.orderID
}
