package kernel

import (
	"fmt"
	"strings"

	"transit/internal/pkg/errs"
	"transit/internal/pkg/guard"
)

// ErrDistrictIsNotConstructed is returned when attempting to use an
// improperly initialized District. Districts must be created using the
// NewDistrict constructor to ensure validity.
var ErrDistrictIsNotConstructed = errs.NewValueIsRequiredError(
	"district must be created via NewDistrict constructor")

// District represents an administrative region served by the distribution
// network. It is an immutable value object: the name is stored trimmed and
// compared case-insensitively, because district names arrive from shipping
// addresses and hub records with inconsistent casing.
//
// The zero value of District is invalid and will fail validation - use the
// constructor to create instances.
//
// Example:
//
//	d, err := kernel.NewDistrict("Kottayam")
//	if err != nil {
//	    // handle validation error
//	}
//	same, _ := kernel.NewDistrict("  kottayam ")
//	d.IsEqual(same) // true
type District struct { //nolint:recvcheck //using for validation
	name  string
	guard guard.ConstructorGuard
}

// NewDistrict creates a District from a raw name. Leading and trailing
// whitespace is trimmed; an empty result is rejected.
func NewDistrict(name string) (District, error) {
	d := District{
		guard: guard.NewConstructorGuard(),
	}

	if err := d.setName(name); err != nil {
		return District{}, err
	}

	return d, nil
}

// Validate checks if the District was properly constructed using the
// constructor. The zero value fails this validation.
func (d District) Validate() error {
	return d.guard.Validate(ErrDistrictIsNotConstructed)
}

// Name returns the district name as provided, trimmed.
func (d District) Name() string {
	return d.name
}

// String returns a human-readable representation of the district.
// This method implements the fmt.Stringer interface.
func (d District) String() string {
	return d.name
}

// IsEqual compares two districts case-insensitively.
// Both districts must be properly constructed for the comparison to succeed.
func (d District) IsEqual(other District) (bool, error) {
	if err := d.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return strings.EqualFold(d.name, other.name), nil
}

// Matches reports whether the district equals the given raw name,
// case-insensitively. Convenience for lookups keyed by free-text input.
func (d District) Matches(name string) bool {
	return strings.EqualFold(d.name, strings.TrimSpace(name))
}

// Key returns the canonical lowercase form used as a map key by the
// topology when indexing hubs by district.
func (d District) Key() string {
	return strings.ToLower(d.name)
}

// setName trims and validates the district name.
// Note: pointer receiver for self-encapsulated validation during
// construction, while the public API uses value receivers.
func (d *District) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredErrorWithCause("district name",
			fmt.Errorf("%q is empty after trimming", name))
	}

	d.name = trimmed
	return nil
}
