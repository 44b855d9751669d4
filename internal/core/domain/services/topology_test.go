package services_test

import (
	"testing"

	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHub(t *testing.T, name, districtName string, position int, kind hub.Kind, active bool) *hub.Hub {
	t.Helper()
	district, err := kernel.NewDistrict(districtName)
	require.NoError(t, err)
	h, err := hub.RestoreHub(kernel.NewUUID(), name, district, position, kind, active, nil)
	require.NoError(t, err)
	return h
}

// lineFixture is a five-hub line with the warehouse in the middle, so
// destinations exist on both sides of the origin.
func lineFixture(t *testing.T) []*hub.Hub {
	t.Helper()
	return []*hub.Hub{
		makeHub(t, "Kollam Local", "Kollam", 0, hub.LocalHub, true),
		makeHub(t, "Alappuzha Regional", "Alappuzha", 1, hub.RegionalHub, true),
		makeHub(t, "Kochi Warehouse", "Ernakulam", 2, hub.OriginWarehouse, true),
		makeHub(t, "Thrissur Regional", "Thrissur", 3, hub.RegionalHub, true),
		makeHub(t, "Kozhikode Local", "Kozhikode", 4, hub.LocalHub, true),
	}
}

func TestNewTopology(t *testing.T) {
	t.Run("orders hubs by position", func(t *testing.T) {
		hubs := lineFixture(t)
		// Feed in shuffled order.
		shuffled := []*hub.Hub{hubs[3], hubs[0], hubs[4], hubs[2], hubs[1]}

		topology, err := services.NewTopology(shuffled)

		require.NoError(t, err)
		ordered := topology.Ordered()
		require.Len(t, ordered, 5)
		for i := 1; i < len(ordered); i++ {
			assert.Less(t, ordered[i-1].Position(), ordered[i].Position())
		}
		assert.Equal(t, "Kochi Warehouse", topology.Origin().Name())
	})

	t.Run("skips inactive hubs", func(t *testing.T) {
		hubs := lineFixture(t)
		hubs = append(hubs, makeHub(t, "Closed Local", "Wayanad", 9, hub.LocalHub, false))

		topology, err := services.NewTopology(hubs)

		require.NoError(t, err)
		assert.Equal(t, 5, topology.Size())
		wayanad, err2 := kernel.NewDistrict("Wayanad")
		require.NoError(t, err2)
		_, ok := topology.ByDistrict(wayanad)
		assert.False(t, ok)
	})

	t.Run("requires an origin warehouse", func(t *testing.T) {
		hubs := lineFixture(t)[0:2]

		_, err := services.NewTopology(hubs)

		assert.ErrorIs(t, err, services.ErrNoOriginWarehouse)
	})

	t.Run("rejects a second origin warehouse", func(t *testing.T) {
		hubs := lineFixture(t)
		hubs = append(hubs, makeHub(t, "Shadow Warehouse", "Idukki", 5, hub.OriginWarehouse, true))

		_, err := services.NewTopology(hubs)

		assert.ErrorIs(t, err, services.ErrMultipleOriginWarehouses)
	})

	t.Run("an inactive origin does not count", func(t *testing.T) {
		hubs := lineFixture(t)
		hubs[2] = makeHub(t, "Kochi Warehouse", "Ernakulam", 2, hub.OriginWarehouse, false)

		_, err := services.NewTopology(hubs)

		assert.ErrorIs(t, err, services.ErrNoOriginWarehouse)
	})

	t.Run("tied positions keep registry order", func(t *testing.T) {
		hubs := lineFixture(t)
		twin := makeHub(t, "Twin Regional", "Idukki", 3, hub.RegionalHub, true)
		hubs = append(hubs, twin)

		topology, err := services.NewTopology(hubs)

		require.NoError(t, err)
		ordered := topology.Ordered()
		require.Len(t, ordered, 6)
		assert.Equal(t, "Thrissur Regional", ordered[3].Name())
		assert.Equal(t, "Twin Regional", ordered[4].Name())

		// Feeding the tied hub first flips the pair: the sort is stable.
		flipped := append([]*hub.Hub{twin}, lineFixture(t)...)
		topology, err = services.NewTopology(flipped)

		require.NoError(t, err)
		ordered = topology.Ordered()
		assert.Equal(t, "Twin Regional", ordered[3].Name())
		assert.Equal(t, "Thrissur Regional", ordered[4].Name())
	})
}

func TestTopology_Lookups(t *testing.T) {
	hubs := lineFixture(t)
	topology, err := services.NewTopology(hubs)
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		h, ok := topology.ByID(hubs[3].ID())

		require.True(t, ok)
		assert.Equal(t, "Thrissur Regional", h.Name())

		_, ok = topology.ByID(kernel.NewUUID())
		assert.False(t, ok)
	})

	t.Run("by district is case-insensitive", func(t *testing.T) {
		district, err := kernel.NewDistrict("  thrissur ")
		require.NoError(t, err)

		h, ok := topology.ByDistrict(district)

		require.True(t, ok)
		assert.Equal(t, "Thrissur Regional", h.Name())
	})

	t.Run("next walks the line", func(t *testing.T) {
		next, ok := topology.Next(hubs[2].ID())

		require.True(t, ok)
		assert.Equal(t, "Thrissur Regional", next.Name())

		_, ok = topology.Next(hubs[4].ID())
		assert.False(t, ok)
	})
}

func TestRoutePlanner_PlanRoute(t *testing.T) {
	hubs := lineFixture(t)
	topology, err := services.NewTopology(hubs)
	require.NoError(t, err)
	planner := services.NewRoutePlanner()

	plan := func(t *testing.T, districtName string) []*hub.Hub {
		t.Helper()
		district, err := kernel.NewDistrict(districtName)
		require.NoError(t, err)
		route, err := planner.PlanRoute(topology, district)
		require.NoError(t, err)
		return route
	}

	t.Run("destination in the origin's district stays at the warehouse", func(t *testing.T) {
		route := plan(t, "Ernakulam")

		require.Len(t, route, 1)
		assert.Equal(t, "Kochi Warehouse", route[0].Name())
	})

	t.Run("destination after the origin walks forward", func(t *testing.T) {
		route := plan(t, "Kozhikode")

		require.Len(t, route, 3)
		assert.Equal(t, "Kochi Warehouse", route[0].Name())
		assert.Equal(t, "Thrissur Regional", route[1].Name())
		assert.Equal(t, "Kozhikode Local", route[2].Name())
	})

	t.Run("destination before the origin walks backward", func(t *testing.T) {
		route := plan(t, "Kollam")

		require.Len(t, route, 3)
		assert.Equal(t, "Kochi Warehouse", route[0].Name())
		assert.Equal(t, "Alappuzha Regional", route[1].Name())
		assert.Equal(t, "Kollam Local", route[2].Name())
	})

	t.Run("routes always start at the origin and end at the destination", func(t *testing.T) {
		for _, name := range []string{"Kollam", "Alappuzha", "Thrissur", "Kozhikode"} {
			route := plan(t, name)

			assert.True(t, route[0].IsOrigin())
			assert.True(t, route[len(route)-1].District().Matches(name))
		}
	})

	t.Run("unknown district is not found", func(t *testing.T) {
		district, err := kernel.NewDistrict("Mahe")
		require.NoError(t, err)

		_, err = planner.PlanRoute(topology, district)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "object not found")
	})

	t.Run("tied relay positions are both included in the span", func(t *testing.T) {
		tied := lineFixture(t)
		tied = append(tied, makeHub(t, "Twin Regional", "Idukki", 3, hub.RegionalHub, true))
		tiedTopology, err := services.NewTopology(tied)
		require.NoError(t, err)

		district, err := kernel.NewDistrict("Kozhikode")
		require.NoError(t, err)
		route, err := planner.PlanRoute(tiedTopology, district)

		require.NoError(t, err)
		require.Len(t, route, 4)
		assert.Equal(t, "Kochi Warehouse", route[0].Name())
		assert.Equal(t, "Thrissur Regional", route[1].Name())
		assert.Equal(t, "Twin Regional", route[2].Name())
		assert.Equal(t, "Kozhikode Local", route[3].Name())
	})

	t.Run("a deactivated relay drops out of new routes", func(t *testing.T) {
		reduced := lineFixture(t)
		reduced[3] = makeHub(t, "Thrissur Regional", "Thrissur", 3, hub.RegionalHub, false)
		reducedTopology, err := services.NewTopology(reduced)
		require.NoError(t, err)

		district, err := kernel.NewDistrict("Kozhikode")
		require.NoError(t, err)
		route, err := planner.PlanRoute(reducedTopology, district)

		require.NoError(t, err)
		require.Len(t, route, 2)
		assert.Equal(t, "Kochi Warehouse", route[0].Name())
		assert.Equal(t, "Kozhikode Local", route[1].Name())
	})
}

func TestRoutePlanner_PlanRouteIDs(t *testing.T) {
	hubs := lineFixture(t)
	topology, err := services.NewTopology(hubs)
	require.NoError(t, err)
	planner := services.NewRoutePlanner()

	district, err := kernel.NewDistrict("Kozhikode")
	require.NoError(t, err)

	ids, err := planner.PlanRouteIDs(topology, district)

	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.True(t, ids[0].IsEqual(hubs[2].ID()))
	assert.True(t, ids[2].IsEqual(hubs[4].ID()))
}
