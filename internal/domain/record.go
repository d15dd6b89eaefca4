package domain

import (
	"encoding/json"
	"math"
)

// VehicleRecord is one row of the state vehicle-registration extract.
type VehicleRecord struct {
	VIN         string `json:"vin"` // first 10 characters only; the extract truncates the rest
	County      string `json:"county"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	VehicleType string `json:"vehicle_type"` // e.g. "Battery Electric Vehicle (BEV)"
	Location    string `json:"location"`     // WKT point text, e.g. "POINT (-122.89165 47.03954)"
}

// StationRecord is one row of the charging-station extract.
type StationRecord struct {
	Name        string  `json:"name"`
	City        string  `json:"city"`
	PostalCode  string  `json:"postal_code"`
	AccessCode  string  `json:"access_code"` // "public" or "private"
	Level2Ports int     `json:"level2_ports"`
	DCFastPorts int     `json:"dc_fast_ports"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// TotalPorts returns the station's combined port count across charger levels.
// Missing counts are parsed as zero upstream, so absence means zero installed
// ports of that type, not "unknown".
func (s StationRecord) TotalPorts() int {
	return s.Level2Ports + s.DCFastPorts
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsZero reports whether the coordinate is unset. The null island origin is
// treated as unset; no postal code in the source data sits at (0, 0).
func (g Geo) IsZero() bool {
	return g.Lat == 0 && g.Lon == 0
}

// ZipDemand is the per-postal-code vehicle aggregate.
type ZipDemand struct {
	PostalCode string
	Vehicles   int
	County     string // first-seen county for the code
	City       string // most frequent city for the code
	// FirstLocation carries the first vehicle's raw location text so the
	// scorer can fall back to it when no station supplies a coordinate.
	FirstLocation string
}

// ZipSupply is the per-postal-code station aggregate.
type ZipSupply struct {
	PostalCode string
	Ports      int
	Stations   int
	Geo        Geo // mean coordinate of the code's stations
}

// ZipSummary is one scored row of the joined demand/supply table.
type ZipSummary struct {
	PostalCode string   `json:"postal_code"`
	County     string   `json:"county"`
	City       string   `json:"city"`
	TotalEVs   int      `json:"total_evs"`
	TotalPorts int      `json:"total_ports"`
	Geo        Geo      `json:"geo"`
	GeoSource  string   `json:"geo_source"` // "stations", "vehicle", or "centroid"
	Ratio      float64  `json:"ratio"`      // +Inf when TotalPorts is zero
	Priority   Priority `json:"priority"`

	// NearestStationKm is the great-circle distance to the closest public
	// station coordinate in the dataset. Zero for codes with their own
	// stations, -1 when no station anywhere carries a usable coordinate.
	NearestStationKm float64 `json:"nearest_station_km"`

	// PlaceName is optional reverse-lookup enrichment; empty unless a place
	// namer is configured.
	PlaceName string `json:"place_name,omitempty"`
}

// IsDesert reports whether the code has qualifying demand but zero public ports.
func (z ZipSummary) IsDesert() bool {
	return z.TotalPorts == 0
}

// zipSummaryJSON mirrors ZipSummary with a nullable ratio. JSON has no
// representation for +Inf, so an infinite ratio serializes as null.
type zipSummaryJSON struct {
	PostalCode       string   `json:"postal_code"`
	County           string   `json:"county"`
	City             string   `json:"city"`
	TotalEVs         int      `json:"total_evs"`
	TotalPorts       int      `json:"total_ports"`
	Geo              Geo      `json:"geo"`
	GeoSource        string   `json:"geo_source"`
	Ratio            *float64 `json:"ratio"`
	Priority         Priority `json:"priority"`
	NearestStationKm float64  `json:"nearest_station_km"`
	PlaceName        string   `json:"place_name,omitempty"`
}

func (z ZipSummary) MarshalJSON() ([]byte, error) {
	out := zipSummaryJSON{
		PostalCode:       z.PostalCode,
		County:           z.County,
		City:             z.City,
		TotalEVs:         z.TotalEVs,
		TotalPorts:       z.TotalPorts,
		Geo:              z.Geo,
		GeoSource:        z.GeoSource,
		Priority:         z.Priority,
		NearestStationKm: z.NearestStationKm,
		PlaceName:        z.PlaceName,
	}
	if !math.IsInf(z.Ratio, 1) {
		r := z.Ratio
		out.Ratio = &r
	}
	return json.Marshal(out)
}

func (z *ZipSummary) UnmarshalJSON(data []byte) error {
	var in zipSummaryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*z = ZipSummary{
		PostalCode:       in.PostalCode,
		County:           in.County,
		City:             in.City,
		TotalEVs:         in.TotalEVs,
		TotalPorts:       in.TotalPorts,
		Geo:              in.Geo,
		GeoSource:        in.GeoSource,
		Ratio:            math.Inf(1),
		Priority:         in.Priority,
		NearestStationKm: in.NearestStationKm,
		PlaceName:        in.PlaceName,
	}
	if in.Ratio != nil {
		z.Ratio = *in.Ratio
	}
	return nil
}
