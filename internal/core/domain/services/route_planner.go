package services

import (
	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"
)

// RoutePlanner computes the hub sequence an order must traverse from the
// origin warehouse to its destination district.
//
// Because active hubs form a single line, a route is simply the contiguous
// span between the origin and the destination hub, walked in whichever
// direction the destination lies. An order addressed to the origin's own
// district never leaves the warehouse: its route is the origin alone.
type RoutePlanner struct{}

// NewRoutePlanner creates the planning service.
func NewRoutePlanner() *RoutePlanner {
	return &RoutePlanner{}
}

// PlanRoute returns the ordered hubs an order addressed to the destination
// district must pass through, starting at the origin warehouse.
// Returns errs.ObjectNotFoundError when no active hub serves the district.
func (p *RoutePlanner) PlanRoute(topology *Topology, destination kernel.District) ([]*hub.Hub, error) {
	if err := destination.Validate(); err != nil {
		return nil, err
	}

	origin := topology.Origin()
	target, ok := topology.ByDistrict(destination)
	if !ok {
		return nil, errs.NewObjectNotFoundError("destinationDistrict", destination.Name())
	}

	if target.IsEqual(origin) {
		return []*hub.Hub{origin}, nil
	}

	if target.Position() > origin.Position() {
		return topology.span(origin.Position(), target.Position()), nil
	}

	hubs := topology.span(target.Position(), origin.Position())
	for i, j := 0, len(hubs)-1; i < j; i, j = i+1, j-1 {
		hubs[i], hubs[j] = hubs[j], hubs[i]
	}
	return hubs, nil
}

// PlanRouteIDs is PlanRoute projected onto hub identifiers, the form the
// Order aggregate stores.
func (p *RoutePlanner) PlanRouteIDs(topology *Topology, destination kernel.District) ([]kernel.UUID, error) {
	hubs, err := p.PlanRoute(topology, destination)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(hubs))
	for _, h := range hubs {
		ids = append(ids, h.ID())
	}
	return ids, nil
}
