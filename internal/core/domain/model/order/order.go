package order

import (
	"errors"
	"fmt"
	"time"

	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"
)

// OtpValidFor is how long a delivery one-time code stays usable after the
// final hub issues it.
const OtpValidFor = 24 * time.Hour

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderTerminal means the order reached Delivered or Cancelled and
	// accepts no further transitions.
	ErrOrderTerminal = errors.New("order is in a terminal status")

	// ErrOrderNotApproved means the order has not been approved for transit.
	ErrOrderNotApproved = errors.New("order is not approved for transit")

	// ErrRouteIsEmpty means a route with no hubs was supplied.
	ErrRouteIsEmpty = errors.New("route must contain at least one hub")

	// ErrHubNotOnRoute means the hub does not appear on the order's route.
	ErrHubNotOnRoute = errors.New("hub is not on the order's route")

	// ErrSequenceViolation means a scan-in skipped ahead of the planned
	// route order or arrived without a matching dispatch.
	ErrSequenceViolation = errors.New("scan violates the planned hub sequence")

	// ErrNotCurrentHub means the acting hub is not where the order
	// currently sits.
	ErrNotCurrentHub = errors.New("order is not at the acting hub")

	// ErrNotArrivedAtHub means the order was never scanned in anywhere, so
	// there is nothing to dispatch.
	ErrNotArrivedAtHub = errors.New("order has not arrived at any hub")

	// ErrAlreadyDispatched means this hub already dispatched the order.
	ErrAlreadyDispatched = errors.New("order was already dispatched from this hub")

	// ErrNoNextHubAvailable means the order sits at the last hub of its
	// route; the only remaining dispatch is the carrier handover.
	ErrNoNextHubAvailable = errors.New("no next hub on the route")

	// ErrInvalidNextHub means the requested destination is not the
	// immediate successor on the route.
	ErrInvalidNextHub = errors.New("destination is not the next hub on the route")

	// ErrNotAtFinalHub means carrier handover was attempted before the
	// order reached the last hub of its route.
	ErrNotAtFinalHub = errors.New("order is not at the final hub of its route")

	// ErrCarrierMismatch means the acting carrier is not the one assigned.
	ErrCarrierMismatch = errors.New("carrier is not assigned to this order")

	// ErrOtpNotIssued means delivery confirmation was attempted before any
	// one-time code was generated.
	ErrOtpNotIssued = errors.New("no delivery code was issued for this order")

	// ErrOtpExpired means the issued one-time code is past its validity.
	ErrOtpExpired = errors.New("delivery code has expired")

	// ErrOtpMismatch means the supplied one-time code is wrong. The order
	// state is left untouched so the recipient can retry.
	ErrOtpMismatch = errors.New("delivery code does not match")
)

// Order is the aggregate root of the transit domain. It carries the planned
// hub route, the current physical position, two state machines (the overall
// Status and the final-mile DeliveryStatus) and the append-only tracking
// timeline the transit rules are derived from.
//
// Order maintains these invariants:
//   - the route is a non-empty sequence of distinct hub identifiers fixed
//     at planning time (only RepairRoute may replace it)
//   - currentHub is nil until the first scan-in and afterwards always a
//     member of the route
//   - the timeline only grows; duplicate-scan and dispatch-once rules are
//     answered from it
//   - terminal statuses freeze the aggregate
//   - can only be created through its constructors
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// destinationDistrict is where the order must end up
	destinationDistrict kernel.District

	// route is the planned ordered sequence of hub identifiers
	route []kernel.UUID

	// currentHub is the hub the order physically sits at, nil before the
	// first scan-in
	currentHub *kernel.UUID

	// status is the overall lifecycle state
	status Status

	// deliveryStatus is the final-mile leg state
	deliveryStatus DeliveryStatus

	// carrierID is the assigned final-mile carrier, nil until handover
	carrierID *kernel.UUID

	// deliveryOtp is the active handover code, nil outside the final leg
	deliveryOtp *kernel.Otp

	// otpIssuedAt records when the active code was generated
	otpIssuedAt *time.Time

	// timeline is the append-only tracking history
	timeline []TrackingEvent

	// version supports optimistic concurrency control in the repository
	version int64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order with a freshly planned route. The order
// starts Pending with an ORDER_PLACED timeline entry and no current hub:
// it is not considered inside the network until the first hub scans it in.
func NewOrder(id kernel.UUID, destination kernel.District, route []kernel.UUID, now time.Time) (*Order, error) {
	o := &Order{
		status:         StatusPending,
		deliveryStatus: DeliveryNotAssigned,
		version:        1,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDestination(destination),
		o.setRoute(route),
	); err != nil {
		return nil, err
	}

	placed, err := NewTrackingEvent(EventOrderPlaced, nil, now, "", "Order placed")
	if err != nil {
		return nil, err
	}
	o.timeline = append(o.timeline, placed)

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence.
// Unlike NewOrder it performs no transition logic: the stored state is
// taken as-is after field validation.
func RestoreOrder(
	id kernel.UUID,
	destination kernel.District,
	route []kernel.UUID,
	currentHub *kernel.UUID,
	status Status,
	deliveryStatus DeliveryStatus,
	carrierID *kernel.UUID,
	deliveryOtp *kernel.Otp,
	otpIssuedAt *time.Time,
	timeline []TrackingEvent,
	version int64,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDestination(destination),
		o.setRoute(route),
		o.setStatus(status),
		o.setDeliveryStatus(deliveryStatus),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	if currentHub != nil {
		if err := currentHub.Validate(); err != nil {
			return nil, err
		}
		ch := *currentHub
		o.currentHub = &ch
	}
	if carrierID != nil {
		if err := carrierID.Validate(); err != nil {
			return nil, err
		}
		c := *carrierID
		o.carrierID = &c
	}
	if deliveryOtp != nil {
		if err := deliveryOtp.Validate(); err != nil {
			return nil, err
		}
		otp := *deliveryOtp
		o.deliveryOtp = &otp
	}
	if otpIssuedAt != nil {
		at := *otpIssuedAt
		o.otpIssuedAt = &at
	}
	o.timeline = append([]TrackingEvent(nil), timeline...)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DestinationDistrict returns the district the order is addressed to.
func (o *Order) DestinationDistrict() kernel.District {
	return o.destinationDistrict
}

// Route returns a copy of the planned hub sequence.
func (o *Order) Route() []kernel.UUID {
	return append([]kernel.UUID(nil), o.route...)
}

// CurrentHub returns the hub the order physically sits at, or nil if the
// order has not been scanned in anywhere yet.
func (o *Order) CurrentHub() *kernel.UUID {
	if o.currentHub == nil {
		return nil
	}
	ch := *o.currentHub
	return &ch
}

// Status returns the overall lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryStatus returns the final-mile leg state.
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// CarrierID returns the assigned carrier, or nil before handover.
func (o *Order) CarrierID() *kernel.UUID {
	if o.carrierID == nil {
		return nil
	}
	c := *o.carrierID
	return &c
}

// DeliveryOtp returns the active handover code, or nil when none is issued.
func (o *Order) DeliveryOtp() *kernel.Otp {
	if o.deliveryOtp == nil {
		return nil
	}
	otp := *o.deliveryOtp
	return &otp
}

// OtpIssuedAt returns when the active code was generated, or nil.
func (o *Order) OtpIssuedAt() *time.Time {
	if o.otpIssuedAt == nil {
		return nil
	}
	at := *o.otpIssuedAt
	return &at
}

// Timeline returns a copy of the tracking history in append order.
func (o *Order) Timeline() []TrackingEvent {
	return append([]TrackingEvent(nil), o.timeline...)
}

// Version returns the optimistic-concurrency version.
func (o *Order) Version() int64 {
	return o.version
}

// Approve moves a Pending order into Approved, making it eligible for hub
// transit.
func (o *Order) Approve() error {
	if err := o.Validate(); err != nil {
		return err
	}

	next, err := o.status.Approve()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Cancel withdraws the order before carrier handover and appends a
// CANCELLED timeline entry.
func (o *Order) Cancel(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	event, err := NewTrackingEvent(EventCancelled, nil, now, "", "Order cancelled")
	if err != nil {
		return err
	}

	o.status = next
	o.timeline = append(o.timeline, event)
	return nil
}

// ScanIn records the order's physical arrival at a hub.
//
// The first scan must happen at the first hub of the route. Every later
// scan must happen at the immediate successor of the hub the order was
// last dispatched from; anything else is a sequence violation. Scanning
// the order again at the hub it already sits at is a no-op, so a doubled
// barcode read does not pollute the timeline.
//
// On success currentHub moves to the scanned hub and an ARRIVED_AT_HUB
// entry is appended.
func (o *Order) ScanIn(at *hub.Hub, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := at.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	if o.status != StatusApproved {
		return ErrOrderNotApproved
	}

	hubID := at.ID()
	idx := o.routeIndex(hubID)
	if idx < 0 {
		return ErrHubNotOnRoute
	}

	// Duplicate scan at the resident hub is idempotent.
	if o.currentHub != nil && o.currentHub.IsEqual(hubID) {
		return nil
	}

	if o.currentHub == nil {
		if idx != 0 {
			return ErrSequenceViolation
		}
	} else {
		departed := o.lastDispatchHub()
		if departed == nil {
			return ErrSequenceViolation
		}
		departedIdx := o.routeIndex(*departed)
		if departedIdx < 0 || idx != departedIdx+1 {
			return ErrSequenceViolation
		}
	}

	event, err := NewTrackingEvent(EventArrivedAtHub, &hubID, now, at.Name(),
		fmt.Sprintf("Arrived at %s", at.Name()))
	if err != nil {
		return err
	}

	o.currentHub = &hubID
	o.timeline = append(o.timeline, event)
	return nil
}

// DispatchToNextHub records the order leaving the acting hub toward the
// next hub on the route.
//
// The order must physically sit at the acting hub, must not already have
// been dispatched from it, and the requested destination must be the
// immediate successor on the route. An IN_TRANSIT entry tagged with the
// DEPARTING hub is appended; currentHub does not move until the next hub
// scans the order in, so the tracking page shows the true last confirmed
// position while the order rides a truck.
func (o *Order) DispatchToNextHub(from, next *hub.Hub, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := from.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	if o.status != StatusApproved {
		return ErrOrderNotApproved
	}

	fromID := from.ID()
	idx, err := o.dispatchPosition(fromID)
	if err != nil {
		return err
	}
	if idx == len(o.route)-1 {
		return ErrNoNextHubAvailable
	}
	if !o.route[idx+1].IsEqual(next.ID()) {
		return ErrInvalidNextHub
	}

	event, err := NewTrackingEvent(EventInTransit, &fromID, now, from.Name(),
		fmt.Sprintf("Departed %s for %s", from.Name(), next.Name()))
	if err != nil {
		return err
	}

	o.timeline = append(o.timeline, event)
	return nil
}

// DispatchToCarrier hands the order from the final hub of its route to a
// last-mile carrier.
//
// A fresh one-time code is generated and returned so the caller can pass
// it to the recipient notification channel; the aggregate keeps its own
// copy for later confirmation. The overall status advances to
// OutForDelivery and the delivery leg to Assigned.
func (o *Order) DispatchToCarrier(from *hub.Hub, carrierID kernel.UUID, now time.Time) (kernel.Otp, error) {
	if err := o.Validate(); err != nil {
		return kernel.Otp{}, err
	}
	if err := from.Validate(); err != nil {
		return kernel.Otp{}, err
	}
	if err := carrierID.Validate(); err != nil {
		return kernel.Otp{}, err
	}
	if o.status.IsTerminal() {
		return kernel.Otp{}, ErrOrderTerminal
	}
	if o.status != StatusApproved {
		return kernel.Otp{}, ErrOrderNotApproved
	}

	fromID := from.ID()
	idx, err := o.dispatchPosition(fromID)
	if err != nil {
		return kernel.Otp{}, err
	}
	if idx != len(o.route)-1 {
		return kernel.Otp{}, ErrNotAtFinalHub
	}

	nextStatus, err := o.status.MarkOutForDelivery()
	if err != nil {
		return kernel.Otp{}, err
	}
	nextDelivery, err := o.deliveryStatus.Assign()
	if err != nil {
		return kernel.Otp{}, err
	}

	otp, err := kernel.NewOtp()
	if err != nil {
		return kernel.Otp{}, err
	}

	event, err := NewTrackingEvent(EventOutForDelivery, &fromID, now, from.Name(),
		fmt.Sprintf("Out for delivery from %s", from.Name()))
	if err != nil {
		return kernel.Otp{}, err
	}

	o.status = nextStatus
	o.deliveryStatus = nextDelivery
	o.carrierID = &carrierID
	o.deliveryOtp = &otp
	issuedAt := now
	o.otpIssuedAt = &issuedAt
	o.timeline = append(o.timeline, event)
	return otp, nil
}

// AcceptAssignment records the carrier's confirmation of the assignment.
func (o *Order) AcceptAssignment(carrierID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	if o.carrierID == nil || !o.carrierID.IsEqual(carrierID) {
		return ErrCarrierMismatch
	}

	next, err := o.deliveryStatus.Accept()
	if err != nil {
		return err
	}
	o.deliveryStatus = next
	return nil
}

// StartFinalDelivery records the carrier leaving for the recipient.
func (o *Order) StartFinalDelivery(carrierID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	if o.carrierID == nil || !o.carrierID.IsEqual(carrierID) {
		return ErrCarrierMismatch
	}

	next, err := o.deliveryStatus.Depart()
	if err != nil {
		return err
	}
	o.deliveryStatus = next
	return nil
}

// ConfirmDelivery verifies the recipient's one-time code and completes the
// order.
//
// A wrong code leaves the aggregate untouched so the recipient can retry;
// a code past OtpValidFor is rejected as expired. On success both state
// machines reach Delivered, a DELIVERED entry is appended and the stored
// code is cleared so it cannot be replayed.
func (o *Order) ConfirmDelivery(carrierID kernel.UUID, suppliedCode string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	if o.carrierID == nil || !o.carrierID.IsEqual(carrierID) {
		return ErrCarrierMismatch
	}

	nextDelivery, err := o.deliveryStatus.Complete()
	if err != nil {
		return err
	}
	nextStatus, err := o.status.MarkDelivered()
	if err != nil {
		return err
	}

	if o.deliveryOtp == nil || o.otpIssuedAt == nil {
		return ErrOtpNotIssued
	}
	if now.Sub(*o.otpIssuedAt) > OtpValidFor {
		return ErrOtpExpired
	}
	if !o.deliveryOtp.Matches(suppliedCode) {
		return ErrOtpMismatch
	}

	event, err := NewTrackingEvent(EventDelivered, nil, now, o.destinationDistrict.Name(),
		"Delivered to recipient")
	if err != nil {
		return err
	}

	o.status = nextStatus
	o.deliveryStatus = nextDelivery
	o.deliveryOtp = nil
	o.otpIssuedAt = nil
	o.timeline = append(o.timeline, event)
	return nil
}

// RepairRoute replaces the planned route after a topology change, such as
// a hub on the old route being deactivated. If the order's current hub is
// not part of the new route the position is reset: the order re-enters the
// sequence at the next scan, which must then happen at the repaired
// route's first hub.
func (o *Order) RepairRoute(newRoute []kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	if o.status == StatusOutForDelivery {
		// The order already left the hub network.
		return nil
	}

	previous := o.route
	if err := o.setRoute(newRoute); err != nil {
		o.route = previous
		return err
	}

	if o.currentHub != nil && o.routeIndex(*o.currentHub) < 0 {
		o.currentHub = nil
	}
	return nil
}

// HasArrivedAt reports whether the timeline records an arrival at the hub.
func (o *Order) HasArrivedAt(hubID kernel.UUID) bool {
	for _, e := range o.timeline {
		if e.Status == EventArrivedAtHub && e.AtHub(hubID) {
			return true
		}
	}
	return false
}

// WasDispatchedFrom reports whether the timeline records a dispatch
// departing the hub. Carrier handover counts as a dispatch.
func (o *Order) WasDispatchedFrom(hubID kernel.UUID) bool {
	for _, e := range o.timeline {
		if (e.Status == EventInTransit || e.Status == EventOutForDelivery) && e.AtHub(hubID) {
			return true
		}
	}
	return false
}

// dispatchPosition runs the shared dispatch preconditions and returns the
// acting hub's index on the route.
func (o *Order) dispatchPosition(fromID kernel.UUID) (int, error) {
	if o.currentHub == nil {
		return 0, ErrNotArrivedAtHub
	}
	if !o.currentHub.IsEqual(fromID) {
		return 0, ErrNotCurrentHub
	}

	idx := o.routeIndex(fromID)
	if idx < 0 {
		return 0, ErrHubNotOnRoute
	}
	if o.WasDispatchedFrom(fromID) {
		return 0, ErrAlreadyDispatched
	}
	return idx, nil
}

// lastDispatchHub returns the departing hub of the most recent IN_TRANSIT
// entry, or nil if the order was never dispatched.
func (o *Order) lastDispatchHub() *kernel.UUID {
	for i := len(o.timeline) - 1; i >= 0; i-- {
		if o.timeline[i].Status == EventInTransit {
			return o.timeline[i].Hub
		}
	}
	return nil
}

// routeIndex returns the hub's position on the route, or -1.
func (o *Order) routeIndex(hubID kernel.UUID) int {
	for i, id := range o.route {
		if id.IsEqual(hubID) {
			return i
		}
	}
	return -1
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setDestination validates and sets the destination district.
func (o *Order) setDestination(destination kernel.District) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destinationDistrict = destination
	return nil
}

// setRoute validates and sets the planned hub sequence.
// Every element must be a valid, distinct identifier.
func (o *Order) setRoute(route []kernel.UUID) error {
	if len(route) == 0 {
		return ErrRouteIsEmpty
	}

	seen := make(map[kernel.UUID]struct{}, len(route))
	for i, id := range route {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("route",
				fmt.Errorf("hub at index %d: %w", i, err))
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("route",
				fmt.Errorf("hub %s appears twice", id))
		}
		seen[id] = struct{}{}
	}

	o.route = append([]kernel.UUID(nil), route...)
	return nil
}

// setStatus validates and sets the overall status.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setDeliveryStatus validates and sets the final-mile status.
func (o *Order) setDeliveryStatus(status DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.deliveryStatus = status
	return nil
}

// setVersion validates and sets the optimistic-concurrency version.
func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is below 1", version))
	}
	o.version = version
	return nil
}
