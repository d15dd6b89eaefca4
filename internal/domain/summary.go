package domain

import "github.com/tkrajina/gpxgo/gpx"

const metersPerKm = 1000.0

// Coordinate provenance for a summary row.
const (
	GeoSourceStations = "stations"
	GeoSourceVehicle  = "vehicle"
	GeoSourceCentroid = "centroid"
)

// BuildSummaries left-joins the station aggregate onto the vehicle aggregate
// and scores every vehicle-bearing postal code. Codes with no station match
// are retained with zero ports — those are the charging deserts the analysis
// exists to find. Demand-side rows are never dropped.
//
// The representative coordinate follows a three-tier fallback, in order:
// mean station coordinate, coordinate parsed from the code's first vehicle
// location text, fixed regional centroid.
func BuildSummaries(demand []ZipDemand, supply []ZipSupply, centroid Geo) []ZipSummary {
	supplyByCode := make(map[string]ZipSupply, len(supply))
	for _, s := range supply {
		supplyByCode[s.PostalCode] = s
	}

	summaries := make([]ZipSummary, 0, len(demand))
	for _, d := range demand {
		s := supplyByCode[d.PostalCode] // zero value when unmatched: 0 ports

		z := ZipSummary{
			PostalCode: d.PostalCode,
			County:     d.County,
			City:       d.City,
			TotalEVs:   d.Vehicles,
			TotalPorts: s.Ports,
		}
		z.Geo, z.GeoSource = resolveGeo(s.Geo, d.FirstLocation, centroid)
		z.Ratio = EVPortRatio(z.TotalEVs, z.TotalPorts)
		z.Priority = ClassifyRatio(z.Ratio)
		z.NearestStationKm = nearestStationKm(z, supply)
		summaries = append(summaries, z)
	}
	return summaries
}

func resolveGeo(stationMean Geo, vehicleLocation string, centroid Geo) (Geo, string) {
	if !stationMean.IsZero() {
		return stationMean, GeoSourceStations
	}
	if g, ok := ParsePoint(vehicleLocation); ok {
		return g, GeoSourceVehicle
	}
	return centroid, GeoSourceCentroid
}

// nearestStationKm returns the great-circle distance from the row's
// coordinate to the closest supply-side coordinate. Codes with their own
// ports are 0 by definition; -1 means no station in the dataset carries a
// usable coordinate.
func nearestStationKm(z ZipSummary, supply []ZipSupply) float64 {
	if z.TotalPorts > 0 {
		return 0
	}

	nearest := -1.0
	for _, s := range supply {
		if s.Geo.IsZero() {
			continue
		}
		d := gpx.Distance2D(z.Geo.Lat, z.Geo.Lon, s.Geo.Lat, s.Geo.Lon, true) / metersPerKm
		if nearest < 0 || d < nearest {
			nearest = d
		}
	}
	return nearest
}
