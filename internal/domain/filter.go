package domain

// Population filter constants. Values match the source extracts verbatim.
const (
	// BatteryElectric selects pure EVs. Plug-in hybrids retain a fuel backup
	// and are excluded from a public-charging-demand metric.
	BatteryElectric = "Battery Electric Vehicle (BEV)"

	// PublicAccess selects stations whose access classification permits
	// unrestricted public use.
	PublicAccess = "public"
)

// FilterVehicles restricts the registration extract to battery-electric
// vehicles registered in the target region and normalizes their postal codes.
// The input is never mutated; rows with missing or malformed postal codes pass
// through and group under their literal value.
func FilterVehicles(records []VehicleRecord, region string) []VehicleRecord {
	var kept []VehicleRecord
	for _, r := range records {
		if r.State != region || r.VehicleType != BatteryElectric {
			continue
		}
		r.PostalCode = NormalizeZIP(r.PostalCode)
		kept = append(kept, r)
	}
	return kept
}

// FilterStations restricts the station extract to publicly accessible sites
// and normalizes their postal codes. The input is never mutated.
func FilterStations(records []StationRecord) []StationRecord {
	var kept []StationRecord
	for _, r := range records {
		if r.AccessCode != PublicAccess {
			continue
		}
		r.PostalCode = NormalizeZIP(r.PostalCode)
		kept = append(kept, r)
	}
	return kept
}
