package order

import (
	"fmt"

	"transit/internal/pkg/errs"
)

// Status represents the overall lifecycle state of an order.
//
// The lifecycle is:
//
//	Pending -> Approved -> OutForDelivery -> Delivered
//
// with Cancelled reachable from Pending and Approved. Delivered and
// Cancelled are terminal. Hub transit does not change Status: an order
// stays Approved while it moves between hubs, and only the final-hub
// handover to a carrier advances it to OutForDelivery.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending means the order was placed and awaits approval.
	StatusPending

	// StatusApproved means the order was approved and may transit hubs.
	StatusApproved

	// StatusOutForDelivery means a carrier holds the order for the last mile.
	StatusOutForDelivery

	// StatusDelivered means the recipient confirmed receipt. Terminal.
	StatusDelivered

	// StatusCancelled means the order was withdrawn before handover. Terminal.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their string
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusPending:        "PENDING",
		StatusApproved:       "APPROVED",
		StatusOutForDelivery: "OUT_FOR_DELIVERY",
		StatusDelivered:      "DELIVERED",
		StatusCancelled:      "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:        "PENDING",
		StatusApproved:       "APPROVED",
		StatusOutForDelivery: "OUT_FOR_DELIVERY",
		StatusDelivered:      "DELIVERED",
		StatusCancelled:      "CANCELLED",
	}
}

// Validate checks if the Status value is valid.
// StatusUnknown and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "OUT_FOR_DELIVERY".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire name produced by String back into a Status.
func StatusFromString(str string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == str {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid order status", str))
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Approve transitions Pending to Approved.
func (s Status) Approve() (Status, error) {
	if s != StatusPending {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot approve order in status %s", s))
	}
	return StatusApproved, nil
}

// Cancel transitions Pending or Approved to Cancelled. Orders already
// handed to a carrier can no longer be cancelled.
func (s Status) Cancel() (Status, error) {
	if s != StatusPending && s != StatusApproved {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot cancel order in status %s", s))
	}
	return StatusCancelled, nil
}

// MarkOutForDelivery transitions Approved to OutForDelivery. This happens
// only when the final hub dispatches the order to a carrier.
func (s Status) MarkOutForDelivery() (Status, error) {
	if s != StatusApproved {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot mark order out for delivery in status %s", s))
	}
	return StatusOutForDelivery, nil
}

// MarkDelivered transitions OutForDelivery to Delivered.
func (s Status) MarkDelivered() (Status, error) {
	if s != StatusOutForDelivery {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot mark order delivered in status %s", s))
	}
	return StatusDelivered, nil
}
