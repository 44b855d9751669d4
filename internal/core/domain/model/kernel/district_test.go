package kernel_test

import (
	"testing"

	"transit/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistrict(t *testing.T) {
	t.Run("should create valid district", func(t *testing.T) {
		d, err := kernel.NewDistrict("Kottayam")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, "Kottayam", d.Name())
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		d, err := kernel.NewDistrict("  Ernakulam \n")

		require.NoError(t, err)
		assert.Equal(t, "Ernakulam", d.Name())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := kernel.NewDistrict("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "district name")
	})

	t.Run("should fail with whitespace-only name", func(t *testing.T) {
		_, err := kernel.NewDistrict("   ")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "district name")
	})
}

func TestDistrict_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var d kernel.District

		err := d.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrDistrictIsNotConstructed, err)
	})
}

func TestDistrict_IsEqual(t *testing.T) {
	t.Run("should compare case-insensitively", func(t *testing.T) {
		a, _ := kernel.NewDistrict("Kozhikode")
		b, _ := kernel.NewDistrict("kozhikode")

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("should report different districts as unequal", func(t *testing.T) {
		a, _ := kernel.NewDistrict("Kannur")
		b, _ := kernel.NewDistrict("Wayanad")

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("should fail when either side is unconstructed", func(t *testing.T) {
		a, _ := kernel.NewDistrict("Kannur")
		var b kernel.District

		_, err := a.IsEqual(b)

		require.Error(t, err)
	})
}

func TestDistrict_Matches(t *testing.T) {
	d, _ := kernel.NewDistrict("Thiruvananthapuram")

	assert.True(t, d.Matches("thiruvananthapuram"))
	assert.True(t, d.Matches("  THIRUVANANTHAPURAM "))
	assert.False(t, d.Matches("Kollam"))
}

func TestDistrict_Key(t *testing.T) {
	d, _ := kernel.NewDistrict("Palakkad")

	assert.Equal(t, "palakkad", d.Key())
}
