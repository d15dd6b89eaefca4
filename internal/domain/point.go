package domain

import (
	"strconv"
	"strings"
)

// ParsePoint extracts a coordinate from the registration extract's location
// text, e.g. "POINT (-122.89165 47.03954)". The WKT order is lon lat.
// Returns ok=false on any malformed input; the caller decides the fallback —
// bad geodata never fails the pipeline.
func ParsePoint(location string) (Geo, bool) {
	parts := strings.Fields(location)
	if len(parts) < 3 {
		return Geo{}, false
	}

	lon, err := strconv.ParseFloat(strings.TrimPrefix(parts[1], "("), 64)
	if err != nil {
		return Geo{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSuffix(parts[2], ")"), 64)
	if err != nil {
		return Geo{}, false
	}

	return Geo{Lat: lat, Lon: lon}, true
}
