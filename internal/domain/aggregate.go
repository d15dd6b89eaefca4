package domain

import "sort"

// AggregateVehicles collapses filtered vehicle records to one ZipDemand per
// postal code. The county is the first one seen in input order; the city is
// the most frequent one for the code, with frequency ties broken by the
// lexicographically smallest name so that re-runs over reordered input stay
// deterministic. Output is sorted by postal code.
func AggregateVehicles(records []VehicleRecord) []ZipDemand {
	type acc struct {
		demand ZipDemand
		cities map[string]int
	}

	byCode := make(map[string]*acc)
	for _, r := range records {
		a, ok := byCode[r.PostalCode]
		if !ok {
			a = &acc{
				demand: ZipDemand{
					PostalCode:    r.PostalCode,
					County:        r.County,
					FirstLocation: r.Location,
				},
				cities: make(map[string]int),
			}
			byCode[r.PostalCode] = a
		}
		a.demand.Vehicles++
		a.cities[r.City]++
	}

	demands := make([]ZipDemand, 0, len(byCode))
	for _, a := range byCode {
		a.demand.City = mostFrequentCity(a.cities)
		demands = append(demands, a.demand)
	}
	sort.Slice(demands, func(i, j int) bool {
		return demands[i].PostalCode < demands[j].PostalCode
	})
	return demands
}

func mostFrequentCity(counts map[string]int) string {
	var best string
	bestCount := -1
	for city, n := range counts {
		if n > bestCount || (n == bestCount && city < best) {
			best = city
			bestCount = n
		}
	}
	return best
}

// AggregateStations collapses filtered station records to one ZipSupply per
// postal code: port totals are summed and the representative coordinate is
// the mean over stations that carry one. Codes whose stations all lack
// coordinates get a zero Geo and rely on the scorer's fallback chain.
// Output is sorted by postal code.
func AggregateStations(records []StationRecord) []ZipSupply {
	type acc struct {
		supply          ZipSupply
		latSum, lonSum  float64
		coordedStations int
	}

	byCode := make(map[string]*acc)
	for _, r := range records {
		a, ok := byCode[r.PostalCode]
		if !ok {
			a = &acc{supply: ZipSupply{PostalCode: r.PostalCode}}
			byCode[r.PostalCode] = a
		}
		a.supply.Ports += r.TotalPorts()
		a.supply.Stations++
		if g := (Geo{Lat: r.Lat, Lon: r.Lon}); !g.IsZero() {
			a.latSum += g.Lat
			a.lonSum += g.Lon
			a.coordedStations++
		}
	}

	supplies := make([]ZipSupply, 0, len(byCode))
	for _, a := range byCode {
		if a.coordedStations > 0 {
			a.supply.Geo = Geo{
				Lat: a.latSum / float64(a.coordedStations),
				Lon: a.lonSum / float64(a.coordedStations),
			}
		}
		supplies = append(supplies, a.supply)
	}
	sort.Slice(supplies, func(i, j int) bool {
		return supplies[i].PostalCode < supplies[j].PostalCode
	})
	return supplies
}
