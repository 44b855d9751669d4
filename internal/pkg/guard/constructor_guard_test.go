package guard_test

import (
	"errors"
	"testing"

	"transit/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard should be
// used in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type ServiceArea struct {
		district string
		pincode  string
		guard    guard.ConstructorGuard
	}

	var errServiceAreaNotConstructed = errors.New("ServiceArea must be created via NewServiceArea")

	newServiceArea := func(district, pincode string) (ServiceArea, error) {
		if district == "" {
			return ServiceArea{}, errors.New("district is required")
		}
		if pincode == "" {
			return ServiceArea{}, errors.New("pincode is required")
		}
		return ServiceArea{
			district: district,
			pincode:  pincode,
			guard:    guard.NewConstructorGuard(),
		}, nil
	}

	validateServiceArea := func(a ServiceArea) error {
		return a.guard.Validate(errServiceAreaNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		// When
		area, err := newServiceArea("Kottayam", "686001")

		// Then
		require.NoError(t, err)
		require.NoError(t, validateServiceArea(area))
		assert.Equal(t, "Kottayam", area.district)
		assert.Equal(t, "686001", area.pincode)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		// Given
		var area ServiceArea // zero value

		// When
		err := validateServiceArea(area)

		// Then
		require.Error(t, err)
		assert.Equal(t, errServiceAreaNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newServiceArea("", "686001")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "district is required")

		_, err = newServiceArea("Kottayam", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pincode is required")
	})
}

// TestConstructorGuardDefaultError verifies the default error behavior.
func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				err := g.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	for range 100 {
		<-done
	}
}
