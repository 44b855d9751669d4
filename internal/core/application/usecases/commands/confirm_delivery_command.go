package commands

import (
	"errors"
	"fmt"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"
	"transit/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents a carrier submitting the recipient's
// one-time code to complete the delivery.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	carrierID kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command confirming final delivery.
// The code is only checked for shape here; matching happens on the
// aggregate.
func NewConfirmDeliveryCommand(orderID, carrierID kernel.UUID, code string) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCarrierID(carrierID),
		cmd.setCode(code),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c ConfirmDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CarrierID returns the carrier submitting the code.
func (c ConfirmDeliveryCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// Code returns the submitted one-time code.
func (c ConfirmDeliveryCommand) Code() string {
	return c.code
}

func (c *ConfirmDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmDeliveryCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *ConfirmDeliveryCommand) setCode(code string) error {
	if len(code) != kernel.OtpLength {
		return errs.NewValueIsInvalidErrorWithCause("code",
			fmt.Errorf("code must be %d digits", kernel.OtpLength))
	}

	c.code = code
	return nil
}
