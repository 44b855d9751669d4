package order

import (
	"fmt"
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"
)

// EventStatus labels an entry in an order's tracking timeline.
type EventStatus int

const (
	// EventUnknown represents an invalid or undefined event status.
	EventUnknown EventStatus = iota

	// EventOrderPlaced is the first timeline entry, written at creation.
	EventOrderPlaced

	// EventArrivedAtHub records a scan-in at a hub on the route.
	EventArrivedAtHub

	// EventInTransit records a dispatch toward the next hub. The event's
	// hub is the hub the order DEPARTED from, not the destination.
	EventInTransit

	// EventOutForDelivery records the final-hub handover to a carrier.
	EventOutForDelivery

	// EventDelivered records confirmed receipt by the recipient.
	EventDelivered

	// EventCancelled records cancellation of the order.
	EventCancelled
)

// getEventStatusStrings returns a map of EventStatus values to their string
// representations.
func getEventStatusStrings() map[EventStatus]string {
	return map[EventStatus]string{
		EventUnknown:        "UNKNOWN",
		EventOrderPlaced:    "ORDER_PLACED",
		EventArrivedAtHub:   "ARRIVED_AT_HUB",
		EventInTransit:      "IN_TRANSIT",
		EventOutForDelivery: "OUT_FOR_DELIVERY",
		EventDelivered:      "DELIVERED",
		EventCancelled:      "CANCELLED",
	}
}

// getValidEventStatusStrings returns a map of only valid EventStatus values.
func getValidEventStatusStrings() map[EventStatus]string {
	//nolint:exhaustive // EventUnknown is intentionally excluded as it's invalid
	return map[EventStatus]string{
		EventOrderPlaced:    "ORDER_PLACED",
		EventArrivedAtHub:   "ARRIVED_AT_HUB",
		EventInTransit:      "IN_TRANSIT",
		EventOutForDelivery: "OUT_FOR_DELIVERY",
		EventDelivered:      "DELIVERED",
		EventCancelled:      "CANCELLED",
	}
}

// Validate checks if the EventStatus value is valid.
func (s EventStatus) Validate() error {
	if _, ok := getValidEventStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event status is invalid",
			fmt.Errorf("%d is not a valid event status", s))
	}
	return nil
}

// String returns the wire name of the event status, e.g. "ARRIVED_AT_HUB".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s EventStatus) String() string {
	if str, ok := getEventStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// EventStatusFromString parses a wire name produced by String back into an
// EventStatus.
func EventStatusFromString(str string) (EventStatus, error) {
	for status, name := range getValidEventStatusStrings() {
		if name == str {
			return status, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause("event status is invalid",
		fmt.Errorf("%q is not a valid event status", str))
}

// TrackingEvent is an immutable entry in an order's tracking timeline.
// The timeline is append-only: events are never edited or removed, and the
// transit rules (duplicate-scan detection, dispatch-once) are derived from
// it rather than from separate flags.
type TrackingEvent struct {
	// Status labels what happened.
	Status EventStatus

	// Hub identifies the hub the event happened at (the departure hub for
	// EventInTransit). Nil for events outside the hub network, such as
	// EventOrderPlaced and EventDelivered.
	Hub *kernel.UUID

	// Timestamp records when the event was appended.
	Timestamp time.Time

	// Location is the human-readable place shown on the tracking page.
	Location string

	// Description is the human-readable narration of the event.
	Description string
}

// NewTrackingEvent builds a validated timeline entry.
func NewTrackingEvent(status EventStatus, hubID *kernel.UUID, at time.Time, location, description string) (TrackingEvent, error) {
	if err := status.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if hubID != nil {
		if err := hubID.Validate(); err != nil {
			return TrackingEvent{}, err
		}
	}
	if at.IsZero() {
		return TrackingEvent{}, errs.NewValueIsRequiredError("event timestamp")
	}

	return TrackingEvent{
		Status:      status,
		Hub:         hubID,
		Timestamp:   at,
		Location:    location,
		Description: description,
	}, nil
}

// AtHub reports whether the event happened at the given hub.
func (e TrackingEvent) AtHub(hubID kernel.UUID) bool {
	return e.Hub != nil && e.Hub.IsEqual(hubID)
}
