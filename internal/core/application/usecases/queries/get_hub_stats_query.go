package queries

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrGetHubStatsQueryIsNotConstructed = errors.New(
	"GetHubStatsQuery must be created via NewGetHubStatsQuery constructor",
)

// GetHubStatsQuery retrieves the number of in-network orders sitting at
// each active hub, for the operations dashboard.
type GetHubStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetHubStatsQuery creates a hub load query.
// This is a parameterless query covering every active hub.
func NewGetHubStatsQuery() GetHubStatsQuery {
	return GetHubStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetHubStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetHubStatsQueryIsNotConstructed)
}

// GetHubStatsQueryResponse is the order load of one hub.
type GetHubStatsQueryResponse struct {
	HubID    kernel.UUID
	Name     string
	District string
	Kind     string
	Orders   int
}
