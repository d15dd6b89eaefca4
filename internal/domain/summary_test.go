package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCentroid = Geo{Lat: 47.5, Lon: -120.5}

func TestBuildSummaries(t *testing.T) {
	t.Run("desert code is retained with zero ports", func(t *testing.T) {
		demand := []ZipDemand{{PostalCode: "98101", Vehicles: 60, County: "King", City: "Seattle"}}

		got := BuildSummaries(demand, nil, testCentroid)

		require.Len(t, got, 1)
		z := got[0]
		assert.Equal(t, "98101", z.PostalCode)
		assert.Equal(t, 60, z.TotalEVs)
		assert.Equal(t, 0, z.TotalPorts)
		assert.True(t, math.IsInf(z.Ratio, 1))
		assert.Equal(t, PriorityCritical, z.Priority)
		assert.True(t, z.IsDesert())
	})

	t.Run("matched code divides vehicles by ports", func(t *testing.T) {
		demand := []ZipDemand{{PostalCode: "98001", Vehicles: 30}}
		supply := []ZipSupply{{PostalCode: "98001", Ports: 1, Geo: Geo{Lat: 47.3, Lon: -122.2}}}

		got := BuildSummaries(demand, supply, testCentroid)

		require.Len(t, got, 1)
		z := got[0]
		assert.Equal(t, 1, z.TotalPorts)
		assert.Equal(t, 30.0, z.Ratio)
		assert.Equal(t, PriorityWellServed, z.Priority)
		assert.Equal(t, GeoSourceStations, z.GeoSource)
		assert.Equal(t, 0.0, z.NearestStationKm)
	})

	t.Run("every demand code appears exactly once", func(t *testing.T) {
		demand := []ZipDemand{
			{PostalCode: "98001", Vehicles: 5},
			{PostalCode: "98002", Vehicles: 7},
			{PostalCode: "98003", Vehicles: 9},
		}
		supply := []ZipSupply{
			{PostalCode: "98002", Ports: 3},
			{PostalCode: "99999", Ports: 10}, // supply-only code never surfaces
		}

		got := BuildSummaries(demand, supply, testCentroid)

		require.Len(t, got, 3)
		seen := map[string]int{}
		for _, z := range got {
			seen[z.PostalCode]++
		}
		for code, n := range seen {
			assert.Equal(t, 1, n, "code %s duplicated", code)
		}
		assert.NotContains(t, seen, "99999")
	})

	t.Run("ratio infinite iff ports zero", func(t *testing.T) {
		demand := []ZipDemand{
			{PostalCode: "98001", Vehicles: 10},
			{PostalCode: "98002", Vehicles: 10},
		}
		supply := []ZipSupply{{PostalCode: "98002", Ports: 2}}

		got := BuildSummaries(demand, supply, testCentroid)

		require.Len(t, got, 2)
		for _, z := range got {
			assert.Equal(t, z.TotalPorts == 0, math.IsInf(z.Ratio, 1), "code %s", z.PostalCode)
		}
	})

	t.Run("coordinate fallback chain", func(t *testing.T) {
		demand := []ZipDemand{
			{PostalCode: "98001", Vehicles: 1, FirstLocation: "POINT (-122.26 47.30)"},
			{PostalCode: "98002", Vehicles: 1, FirstLocation: "POINT (-122.20 47.31)"},
			{PostalCode: "98003", Vehicles: 1, FirstLocation: "not a point"},
		}
		supply := []ZipSupply{{PostalCode: "98001", Ports: 2, Geo: Geo{Lat: 47.29, Lon: -122.25}}}

		got := BuildSummaries(demand, supply, testCentroid)
		require.Len(t, got, 3)

		// Tier 1: station mean wins even when the vehicle location parses.
		assert.Equal(t, GeoSourceStations, got[0].GeoSource)
		assert.Equal(t, Geo{Lat: 47.29, Lon: -122.25}, got[0].Geo)

		// Tier 2: no station coordinate, vehicle location parses.
		assert.Equal(t, GeoSourceVehicle, got[1].GeoSource)
		assert.Equal(t, Geo{Lat: 47.31, Lon: -122.20}, got[1].Geo)

		// Tier 3: unparsable location resolves to the centroid, never nil, never a crash.
		assert.Equal(t, GeoSourceCentroid, got[2].GeoSource)
		assert.Equal(t, testCentroid, got[2].Geo)
	})

	t.Run("station aggregate without coordinate falls through to vehicle point", func(t *testing.T) {
		demand := []ZipDemand{{PostalCode: "98820", Vehicles: 4, FirstLocation: "POINT (-120.31 47.42)"}}
		supply := []ZipSupply{{PostalCode: "98820", Ports: 2}} // ports but no usable coordinate

		got := BuildSummaries(demand, supply, testCentroid)

		require.Len(t, got, 1)
		assert.Equal(t, GeoSourceVehicle, got[0].GeoSource)
		assert.Equal(t, 2, got[0].TotalPorts)
	})

	t.Run("nearest station distance for deserts", func(t *testing.T) {
		// Desert in Auburn, nearest coordinated supply in Seattle (~30 km),
		// a farther one in Spokane.
		demand := []ZipDemand{{PostalCode: "98092", Vehicles: 55, FirstLocation: "POINT (-122.11 47.26)"}}
		supply := []ZipSupply{
			{PostalCode: "98101", Ports: 10, Geo: Geo{Lat: 47.61, Lon: -122.33}},
			{PostalCode: "99201", Ports: 6, Geo: Geo{Lat: 47.66, Lon: -117.43}},
		}

		got := BuildSummaries(demand, supply, testCentroid)

		require.Len(t, got, 1)
		assert.Greater(t, got[0].NearestStationKm, 30.0)
		assert.Less(t, got[0].NearestStationKm, 50.0)
	})

	t.Run("nearest station distance is -1 when no supply coordinates exist", func(t *testing.T) {
		demand := []ZipDemand{{PostalCode: "98092", Vehicles: 55}}

		got := BuildSummaries(demand, nil, testCentroid)

		require.Len(t, got, 1)
		assert.Equal(t, -1.0, got[0].NearestStationKm)
	})
}
