// Package guard provides a lightweight defensive-construction helper for
// domain value objects, entities, commands and queries. Embedding a
// ConstructorGuard in a struct makes zero-value instances detectable, so
// objects that bypassed their constructor fail validation instead of
// silently carrying invalid state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. The zero value is "not constructed" and fails
// validation, which is what enforces the pattern.
//
// Example usage:
//
//	var ErrDistrictIsNotConstructed = errors.New("District must be created via NewDistrict")
//
//	type District struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewDistrict(name string) (District, error) {
//	    if name == "" {
//	        return District{}, errors.New("name is required")
//	    }
//	    return District{name: name, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (d District) Validate() error {
//	    return d.guard.Validate(ErrDistrictIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks the embedding object as
// properly constructed. Call it in every constructor of a guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
