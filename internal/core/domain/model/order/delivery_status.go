package order

import (
	"fmt"

	"transit/internal/pkg/errs"
)

// DeliveryStatus tracks the final-mile leg separately from the overall
// order Status. It stays DeliveryNotAssigned for the whole hub transit and
// only starts moving once the last hub hands the order to a carrier:
//
//	DeliveryNotAssigned -> DeliveryAssigned -> DeliveryAccepted
//	  -> DeliveryOutForDelivery -> DeliveryDelivered
type DeliveryStatus int

const (
	// DeliveryNotAssigned means no carrier is attached yet. Unlike the
	// other enums in this package the zero value is the legitimate initial
	// state, because every order starts its life without a carrier.
	DeliveryNotAssigned DeliveryStatus = iota

	// DeliveryAssigned means a carrier was picked at final dispatch.
	DeliveryAssigned

	// DeliveryAccepted means the carrier confirmed the assignment.
	DeliveryAccepted

	// DeliveryOutForDelivery means the carrier started the last mile.
	DeliveryOutForDelivery

	// DeliveryDelivered means handover was confirmed with the one-time code.
	DeliveryDelivered
)

// getDeliveryStatusStrings returns a map of DeliveryStatus values to their
// string representations.
func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryNotAssigned:    "NOT_ASSIGNED",
		DeliveryAssigned:       "ASSIGNED",
		DeliveryAccepted:       "ACCEPTED",
		DeliveryOutForDelivery: "OUT_FOR_DELIVERY",
		DeliveryDelivered:      "DELIVERED",
	}
}

// Validate checks if the DeliveryStatus value is in range.
// DeliveryNotAssigned is valid here: it is the initial state.
func (s DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the wire name of the delivery status.
// Returns "UNKNOWN" for out-of-range values. Implements fmt.Stringer.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// DeliveryStatusFromString parses a wire name produced by String back into
// a DeliveryStatus.
func DeliveryStatusFromString(str string) (DeliveryStatus, error) {
	for status, name := range getDeliveryStatusStrings() {
		if name == str {
			return status, nil
		}
	}
	return DeliveryNotAssigned, errs.NewValueIsInvalidErrorWithCause("delivery status is invalid",
		fmt.Errorf("%q is not a valid delivery status", str))
}

// Assign transitions NotAssigned to Assigned.
func (s DeliveryStatus) Assign() (DeliveryStatus, error) {
	if s != DeliveryNotAssigned {
		return DeliveryNotAssigned, errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("cannot assign carrier in delivery status %s", s))
	}
	return DeliveryAssigned, nil
}

// Accept transitions Assigned to Accepted.
func (s DeliveryStatus) Accept() (DeliveryStatus, error) {
	if s != DeliveryAssigned {
		return DeliveryNotAssigned, errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("cannot accept assignment in delivery status %s", s))
	}
	return DeliveryAccepted, nil
}

// Depart transitions Accepted to OutForDelivery.
func (s DeliveryStatus) Depart() (DeliveryStatus, error) {
	if s != DeliveryAccepted {
		return DeliveryNotAssigned, errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("cannot start delivery in delivery status %s", s))
	}
	return DeliveryOutForDelivery, nil
}

// Complete transitions OutForDelivery to Delivered.
func (s DeliveryStatus) Complete() (DeliveryStatus, error) {
	if s != DeliveryOutForDelivery {
		return DeliveryNotAssigned, errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("cannot complete delivery in delivery status %s", s))
	}
	return DeliveryDelivered, nil
}
