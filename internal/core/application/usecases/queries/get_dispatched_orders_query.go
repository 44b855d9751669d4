package queries

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrGetDispatchedOrdersQueryIsNotConstructed = errors.New(
	"GetDispatchedOrdersQuery must be created via NewGetDispatchedOrdersQuery constructor",
)

// GetDispatchedOrdersQuery retrieves orders a hub has already sent onward,
// for reconciling what left the dock against what arrived downstream.
type GetDispatchedOrdersQuery struct { //nolint:recvcheck //using for validation
	hubID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDispatchedOrdersQuery creates a dispatched orders query for one hub.
func NewGetDispatchedOrdersQuery(hubID kernel.UUID) (GetDispatchedOrdersQuery, error) {
	if err := hubID.Validate(); err != nil {
		return GetDispatchedOrdersQuery{}, err
	}

	return GetDispatchedOrdersQuery{
		hubID: hubID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchedOrdersQueryIsNotConstructed)
}

// HubID returns the hub whose outbound orders are requested.
func (q GetDispatchedOrdersQuery) HubID() kernel.UUID {
	return q.hubID
}

// GetDispatchedOrdersQueryResponse is one order sent onward by the hub.
type GetDispatchedOrdersQueryResponse struct {
	OrderID             kernel.UUID
	DestinationDistrict string
	Status              string
	// Arrived reports whether a downstream hub has confirmed the order
	// since this hub dispatched it.
	Arrived bool
}
