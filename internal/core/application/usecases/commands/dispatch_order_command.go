package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var (
	ErrDispatchOrderCommandIsNotConstructed = errors.New(
		"DispatchOrderCommand must be created via a NewDispatchOrder constructor",
	)

	// ErrDispatchTargetIsAmbiguous means both a next hub and a carrier
	// were named; a dispatch goes to exactly one of them.
	ErrDispatchTargetIsAmbiguous = errors.New("dispatch must name either a next hub or a carrier, not both")
)

// DispatchOrderCommand represents a hub operator sending an order onward:
// either to the next hub on its route or, from the final hub, to a
// last-mile carrier. Exactly one target is set, enforced by the two
// constructors.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	hubID      kernel.UUID
	operatorID kernel.UUID
	nextHubID  *kernel.UUID
	carrierID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchOrderToHubCommand creates a dispatch toward the next hub.
func NewDispatchOrderToHubCommand(orderID, hubID, operatorID, nextHubID kernel.UUID) (DispatchOrderCommand, error) {
	cmd := DispatchOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCommon(orderID, hubID, operatorID),
		nextHubID.Validate(),
	); err != nil {
		return DispatchOrderCommand{}, err
	}

	cmd.nextHubID = &nextHubID
	return cmd, nil
}

// NewDispatchOrderToCarrierCommand creates a final-hub carrier handover.
func NewDispatchOrderToCarrierCommand(orderID, hubID, operatorID, carrierID kernel.UUID) (DispatchOrderCommand, error) {
	cmd := DispatchOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCommon(orderID, hubID, operatorID),
		carrierID.Validate(),
	); err != nil {
		return DispatchOrderCommand{}, err
	}

	cmd.carrierID = &carrierID
	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c DispatchOrderCommand) Validate() error {
	if err := c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed); err != nil {
		return err
	}
	if c.nextHubID != nil && c.carrierID != nil {
		return ErrDispatchTargetIsAmbiguous
	}
	return nil
}

// OrderID returns the unique identifier for the order.
func (c DispatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// HubID returns the dispatching hub.
func (c DispatchOrderCommand) HubID() kernel.UUID {
	return c.hubID
}

// OperatorID returns the operator performing the dispatch.
func (c DispatchOrderCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

// NextHubID returns the hub target, or nil for a carrier handover.
func (c DispatchOrderCommand) NextHubID() *kernel.UUID {
	return c.nextHubID
}

// CarrierID returns the carrier target, or nil for a hub dispatch.
func (c DispatchOrderCommand) CarrierID() *kernel.UUID {
	return c.carrierID
}

func (c *DispatchOrderCommand) setCommon(orderID, hubID, operatorID kernel.UUID) error {
	return errors.Join(
		c.setOrderID(orderID),
		c.setHubID(hubID),
		c.setOperatorID(operatorID),
	)
}

func (c *DispatchOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DispatchOrderCommand) setHubID(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return err
	}

	c.hubID = hubID
	return nil
}

func (c *DispatchOrderCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	c.operatorID = operatorID
	return nil
}
