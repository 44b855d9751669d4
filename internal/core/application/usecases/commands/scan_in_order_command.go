package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrScanInOrderCommandIsNotConstructed = errors.New(
	"ScanInOrderCommand must be created via NewScanInOrderCommand constructor",
)

// ScanInOrderCommand represents a hub operator scanning an arriving order.
// The operator must manage the scanning hub.
type ScanInOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	hubID      kernel.UUID
	operatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewScanInOrderCommand creates a command recording a hub arrival scan.
func NewScanInOrderCommand(orderID, hubID, operatorID kernel.UUID) (ScanInOrderCommand, error) {
	cmd := ScanInOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setHubID(hubID),
		cmd.setOperatorID(operatorID),
	); err != nil {
		return ScanInOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScanInOrderCommand) Validate() error {
	return c.guard.Validate(ErrScanInOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c ScanInOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// HubID returns the hub performing the scan.
func (c ScanInOrderCommand) HubID() kernel.UUID {
	return c.hubID
}

// OperatorID returns the operator performing the scan.
func (c ScanInOrderCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c *ScanInOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ScanInOrderCommand) setHubID(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return err
	}

	c.hubID = hubID
	return nil
}

func (c *ScanInOrderCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	c.operatorID = operatorID
	return nil
}
