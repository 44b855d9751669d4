package services

import (
	"errors"
	"sort"

	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
)

var (
	// ErrNoOriginWarehouse means the hub registry holds no active origin
	// warehouse. The network cannot route anything without one, so this is
	// fatal at startup.
	ErrNoOriginWarehouse = errors.New("no active origin warehouse in the hub registry")

	// ErrMultipleOriginWarehouses means more than one active origin
	// warehouse was registered. The topology assumes a single fixed source.
	ErrMultipleOriginWarehouses = errors.New("more than one active origin warehouse in the hub registry")
)

// Topology is the in-memory view of the active hub network: every active
// hub sorted by its global position, indexed by identifier and by district.
// It is an immutable snapshot built from the registry; rebuild it to pick
// up hub changes.
//
// Only active hubs participate. Inactive hubs are invisible to routing, so
// a deactivated hub silently drops out of newly planned routes.
type Topology struct {
	ordered    []*hub.Hub
	byID       map[kernel.UUID]*hub.Hub
	byDistrict map[string]*hub.Hub
	origin     *hub.Hub
}

// NewTopology builds a Topology snapshot from the given hubs.
// Inactive hubs are skipped. Exactly one active origin warehouse must be
// present. Hubs sharing a position are kept in registry order: the sort is
// stable and tied hubs simply sit next to each other on the line.
func NewTopology(hubs []*hub.Hub) (*Topology, error) {
	t := &Topology{
		byID:       make(map[kernel.UUID]*hub.Hub),
		byDistrict: make(map[string]*hub.Hub),
	}

	for _, h := range hubs {
		if err := h.Validate(); err != nil {
			return nil, err
		}
		if !h.IsActive() {
			continue
		}
		t.ordered = append(t.ordered, h)
	}

	sort.SliceStable(t.ordered, func(i, j int) bool {
		return t.ordered[i].Position() < t.ordered[j].Position()
	})

	for _, h := range t.ordered {
		t.byID[h.ID()] = h

		// The first hub of a district in position order answers lookups
		// for that district.
		if _, ok := t.byDistrict[h.District().Key()]; !ok {
			t.byDistrict[h.District().Key()] = h
		}

		if h.IsOrigin() {
			if t.origin != nil {
				return nil, ErrMultipleOriginWarehouses
			}
			t.origin = h
		}
	}

	if t.origin == nil {
		return nil, ErrNoOriginWarehouse
	}

	return t, nil
}

// Origin returns the network's single active origin warehouse.
func (t *Topology) Origin() *hub.Hub {
	return t.origin
}

// ByID looks a hub up by identifier.
func (t *Topology) ByID(id kernel.UUID) (*hub.Hub, bool) {
	h, ok := t.byID[id]
	return h, ok
}

// ByDistrict looks up the hub serving the given district.
func (t *Topology) ByDistrict(district kernel.District) (*hub.Hub, bool) {
	h, ok := t.byDistrict[district.Key()]
	return h, ok
}

// Next returns the hub immediately after the given one in position order,
// or false at the end of the line.
func (t *Topology) Next(id kernel.UUID) (*hub.Hub, bool) {
	for i, h := range t.ordered {
		if h.ID().IsEqual(id) {
			if i+1 < len(t.ordered) {
				return t.ordered[i+1], true
			}
			return nil, false
		}
	}
	return nil, false
}

// Ordered returns the active hubs in position order.
func (t *Topology) Ordered() []*hub.Hub {
	return append([]*hub.Hub(nil), t.ordered...)
}

// Size returns the number of active hubs in the snapshot.
func (t *Topology) Size() int {
	return len(t.ordered)
}

// span returns the ordered hubs between two positions inclusive.
// from must not exceed to.
func (t *Topology) span(from, to int) []*hub.Hub {
	var hubs []*hub.Hub
	for _, h := range t.ordered {
		if h.Position() >= from && h.Position() <= to {
			hubs = append(hubs, h)
		}
	}
	return hubs
}
