package hub

import (
	"errors"
	"fmt"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"
)

var (
	// ErrHubIsNotConstructed is returned when a Hub instance was not created
	// through the NewHub or RestoreHub factory methods.
	ErrHubIsNotConstructed = errors.New("Hub must be created via NewHub or RestoreHub constructor")
)

// Hub represents a physical node in the distribution network: the origin
// warehouse, a regional relay, or a local hub close to recipients.
//
// Hub maintains these invariants:
//   - valid unique identifier and non-empty name
//   - valid district and kind
//   - position is the hub's slot in the single global linear ordering of
//     all hubs (not per-district)
//   - can only be created through its constructors
//
// The registry treats hubs as read-only: creation and deactivation happen in
// administrative tooling; the transit core only reads them and checks
// manager membership for scan/dispatch authorization.
type Hub struct {
	// id is the unique identifier for the hub
	id kernel.UUID

	// name is the human-readable hub name, used in tracking descriptions
	name string

	// district is the administrative region the hub serves
	district kernel.District

	// position is the hub's slot in the global linear ordering
	position int

	// kind classifies the hub's role in the network
	kind Kind

	// isActive marks hubs eligible for route computation
	isActive bool

	// managers holds operator identities authorized for scan/dispatch
	managers []kernel.UUID

	// isConstructed ensures the hub was created via a constructor
	isConstructed bool
}

// NewHub creates a new Hub instance with validation. This is the only way,
// together with RestoreHub, to obtain a valid Hub.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: human-readable hub name (must be non-empty)
//   - district: the administrative region the hub serves
//   - position: slot in the global linear hub ordering (must be >= 0)
//   - kind: the hub's role in the network
//
// The new hub starts active with no managers assigned.
func NewHub(id kernel.UUID, name string, district kernel.District, position int, kind Kind) (*Hub, error) {
	h := &Hub{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		h.setID(id),
		h.setName(name),
		h.setDistrict(district),
		h.setPosition(position),
		h.setKind(kind),
	); err != nil {
		return nil, err
	}

	return h, nil
}

// RestoreHub reconstructs a Hub from persistence, including its active flag
// and manager set. The same validation as NewHub applies.
func RestoreHub(
	id kernel.UUID,
	name string,
	district kernel.District,
	position int,
	kind Kind,
	isActive bool,
	managers []kernel.UUID,
) (*Hub, error) {
	h, err := NewHub(id, name, district, position, kind)
	if err != nil {
		return nil, err
	}

	h.isActive = isActive
	h.managers = append([]kernel.UUID(nil), managers...)
	return h, nil
}

// Validate ensures the Hub instance was properly constructed.
// Returns ErrHubIsNotConstructed otherwise.
func (h *Hub) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHubIsNotConstructed
	}

	return nil
}

// IsEqual compares two hubs by their unique identifiers.
func (h *Hub) IsEqual(other *Hub) bool {
	return other != nil && h.id.IsEqual(other.id)
}

// ID returns the hub's unique identifier.
func (h *Hub) ID() kernel.UUID {
	return h.id
}

// Name returns the human-readable hub name.
func (h *Hub) Name() string {
	return h.name
}

// District returns the administrative region the hub serves.
func (h *Hub) District() kernel.District {
	return h.district
}

// Position returns the hub's slot in the global linear ordering.
func (h *Hub) Position() int {
	return h.position
}

// Kind returns the hub's role in the network.
func (h *Hub) Kind() Kind {
	return h.kind
}

// IsActive reports whether the hub participates in route computation.
func (h *Hub) IsActive() bool {
	return h.isActive
}

// IsOrigin reports whether this hub is the network's origin warehouse.
func (h *Hub) IsOrigin() bool {
	return h.kind == OriginWarehouse
}

// Managers returns a copy of the operator identities authorized to perform
// scan/dispatch against this hub.
func (h *Hub) Managers() []kernel.UUID {
	return append([]kernel.UUID(nil), h.managers...)
}

// IsManagedBy reports whether the given operator belongs to the hub's
// manager set.
func (h *Hub) IsManagedBy(operatorID kernel.UUID) bool {
	for _, m := range h.managers {
		if m.IsEqual(operatorID) {
			return true
		}
	}
	return false
}

// setID validates and sets the hub's unique identifier.
func (h *Hub) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

// setName validates and sets the hub's name.
func (h *Hub) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("hub name")
	}
	h.name = name
	return nil
}

// setDistrict validates and sets the hub's district.
func (h *Hub) setDistrict(district kernel.District) error {
	if err := district.Validate(); err != nil {
		return err
	}
	h.district = district
	return nil
}

// setPosition validates and sets the hub's ordering position.
func (h *Hub) setPosition(position int) error {
	if position < 0 {
		return errs.NewValueIsInvalidErrorWithCause("position is invalid",
			fmt.Errorf("%d is negative", position))
	}
	h.position = position
	return nil
}

// setKind validates and sets the hub's kind.
func (h *Hub) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	h.kind = kind
	return nil
}
