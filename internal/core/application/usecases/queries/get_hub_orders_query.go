package queries

import (
	"errors"
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrGetHubOrdersQueryIsNotConstructed = errors.New(
	"GetHubOrdersQuery must be created via NewGetHubOrdersQuery constructor",
)

// GetHubOrdersQuery retrieves the orders physically sitting at a hub that
// still await dispatch. This is the hub operator's work queue.
type GetHubOrdersQuery struct { //nolint:recvcheck //using for validation
	hubID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetHubOrdersQuery creates a work queue query for one hub.
func NewGetHubOrdersQuery(hubID kernel.UUID) (GetHubOrdersQuery, error) {
	if err := hubID.Validate(); err != nil {
		return GetHubOrdersQuery{}, err
	}

	return GetHubOrdersQuery{
		hubID: hubID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetHubOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetHubOrdersQueryIsNotConstructed)
}

// HubID returns the hub whose queue is requested.
func (q GetHubOrdersQuery) HubID() kernel.UUID {
	return q.hubID
}

// GetHubOrdersQueryResponse is one order awaiting dispatch at the hub.
type GetHubOrdersQueryResponse struct {
	OrderID             kernel.UUID
	DestinationDistrict string
	Status              string
	ArrivedAt           *time.Time
}
