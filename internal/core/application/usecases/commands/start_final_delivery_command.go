package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrStartFinalDeliveryCommandIsNotConstructed = errors.New(
	"StartFinalDeliveryCommand must be created via NewStartFinalDeliveryCommand constructor",
)

// StartFinalDeliveryCommand represents a carrier leaving the local hub
// toward the recipient.
type StartFinalDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	carrierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartFinalDeliveryCommand creates a command starting the last mile.
func NewStartFinalDeliveryCommand(orderID, carrierID kernel.UUID) (StartFinalDeliveryCommand, error) {
	cmd := StartFinalDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCarrierID(carrierID),
	); err != nil {
		return StartFinalDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartFinalDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartFinalDeliveryCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c StartFinalDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CarrierID returns the carrier starting the delivery.
func (c StartFinalDeliveryCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

func (c *StartFinalDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartFinalDeliveryCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}
