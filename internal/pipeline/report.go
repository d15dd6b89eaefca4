package pipeline

import (
	"sort"
	"time"

	"github.com/gridscope/chargegap/internal/domain"
)

// ReportConfig holds the view thresholds. It is an explicit value handed to
// the reporter; nothing here mutates process-wide display state.
type ReportConfig struct {
	// Construction sites: codes needing chargers poured now.
	MaxConstructionSites int // rows kept, default 10
	MinSiteVehicles      int // vehicles must exceed this, default 50
	MaxSitePorts         int // ports must be below this, default 2

	// Investment zones: the broader ranked export.
	MaxInvestmentZones int // rows kept, default 50
	MinZoneVehicles    int // vehicles must exceed this, default 20
}

// DefaultReportConfig returns the study's standard thresholds.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		MaxConstructionSites: 10,
		MinSiteVehicles:      50,
		MaxSitePorts:         2,
		MaxInvestmentZones:   50,
		MinZoneVehicles:      20,
	}
}

// PriorityStats aggregates one priority bucket.
type PriorityStats struct {
	Zips  int `json:"zips"`
	EVs   int `json:"evs"`
	Ports int `json:"ports"`
}

// Stats are the headline numbers of a run.
type Stats struct {
	TotalEVs     int                              `json:"total_evs"`
	TotalPorts   int                              `json:"total_ports"`
	AverageRatio float64                          `json:"average_ratio"` // +Inf when the region has zero ports
	DesertZips   int                              `json:"desert_zips"`
	DesertEVs    int                              `json:"desert_evs"`
	ByPriority   map[domain.Priority]PriorityStats `json:"by_priority"`
}

// Report is the complete, immutable result of one analysis run.
type Report struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Region      string              `json:"region"`
	Summaries   []domain.ZipSummary `json:"summaries"`

	// ConstructionSites is the top-N list of codes with heavy demand and
	// near-zero infrastructure. InvestmentZones is the broader ranked list
	// handed to the exporter and publisher. Both are independent copies;
	// consumers may not reach the underlying summary rows through them.
	ConstructionSites []domain.ZipSummary `json:"construction_sites"`
	InvestmentZones   []domain.ZipSummary `json:"investment_zones"`

	Stats Stats `json:"stats"`
}

// BuildReport derives the ranked views and headline stats from the scored
// summaries. The input slice is not modified.
func BuildReport(cfg ReportConfig, region string, summaries []domain.ZipSummary) *Report {
	return &Report{
		GeneratedAt:       domain.Now(),
		Region:            region,
		Summaries:         summaries,
		ConstructionSites: constructionSites(cfg, summaries),
		InvestmentZones:   investmentZones(cfg, summaries),
		Stats:             buildStats(summaries),
	}
}

// constructionSites selects codes with ports below the cutoff and vehicles
// above it, ranked by vehicle count.
func constructionSites(cfg ReportConfig, summaries []domain.ZipSummary) []domain.ZipSummary {
	var sites []domain.ZipSummary
	for _, z := range summaries {
		if z.TotalPorts < cfg.MaxSitePorts && z.TotalEVs > cfg.MinSiteVehicles {
			sites = append(sites, z)
		}
	}
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].TotalEVs != sites[j].TotalEVs {
			return sites[i].TotalEVs > sites[j].TotalEVs
		}
		return sites[i].PostalCode < sites[j].PostalCode
	})
	return head(sites, cfg.MaxConstructionSites)
}

// investmentZones selects codes above the vehicle floor, ranked by ratio.
// Infinite ratios sort first; ties fall back to vehicle count, then code.
func investmentZones(cfg ReportConfig, summaries []domain.ZipSummary) []domain.ZipSummary {
	var zones []domain.ZipSummary
	for _, z := range summaries {
		if z.TotalEVs > cfg.MinZoneVehicles {
			zones = append(zones, z)
		}
	}
	sort.Slice(zones, func(i, j int) bool {
		if zones[i].Ratio != zones[j].Ratio {
			return zones[i].Ratio > zones[j].Ratio
		}
		if zones[i].TotalEVs != zones[j].TotalEVs {
			return zones[i].TotalEVs > zones[j].TotalEVs
		}
		return zones[i].PostalCode < zones[j].PostalCode
	})
	return head(zones, cfg.MaxInvestmentZones)
}

func head(rows []domain.ZipSummary, n int) []domain.ZipSummary {
	if len(rows) > n {
		rows = rows[:n]
	}
	out := make([]domain.ZipSummary, len(rows))
	copy(out, rows)
	return out
}

func buildStats(summaries []domain.ZipSummary) Stats {
	s := Stats{ByPriority: make(map[domain.Priority]PriorityStats)}
	for _, z := range summaries {
		s.TotalEVs += z.TotalEVs
		s.TotalPorts += z.TotalPorts
		if z.IsDesert() {
			s.DesertZips++
			s.DesertEVs += z.TotalEVs
		}
		ps := s.ByPriority[z.Priority]
		ps.Zips++
		ps.EVs += z.TotalEVs
		ps.Ports += z.TotalPorts
		s.ByPriority[z.Priority] = ps
	}
	s.AverageRatio = domain.EVPortRatio(s.TotalEVs, s.TotalPorts)
	return s
}
