package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gridscope/chargegap/internal/domain"
	"github.com/gridscope/chargegap/internal/observability"
)

// VehicleSource reads the full vehicle-registration extract.
type VehicleSource interface {
	Vehicles(ctx context.Context) ([]domain.VehicleRecord, error)
}

// StationSource reads the full charging-station extract.
type StationSource interface {
	Stations(ctx context.Context) ([]domain.StationRecord, error)
}

// ZoneExporter writes the ranked investment-zone table.
type ZoneExporter interface {
	ExportZones(ctx context.Context, zones []domain.ZipSummary) error
}

// MapRenderer renders the complete summary table as a map artifact.
type MapRenderer interface {
	RenderMap(ctx context.Context, summaries []domain.ZipSummary) error
}

// ZonePublisher hands ranked zones to a downstream consumer.
type ZonePublisher interface {
	PublishZones(ctx context.Context, zones []domain.ZipSummary) error
}

// ReportStore persists a completed report for later querying.
type ReportStore interface {
	SaveReport(ctx context.Context, report *Report) (int64, error)
}

// PlaceNamer resolves a human-readable place name for a postal code.
type PlaceNamer interface {
	PlaceName(ctx context.Context, postalCode string) (string, error)
}

// Sinks are the optional downstream collaborators of a run. Nil fields are
// skipped; the pipeline itself only produces the in-memory report.
type Sinks struct {
	Exporter  ZoneExporter
	Renderer  MapRenderer
	Publisher ZonePublisher
	Store     ReportStore
	Namer     PlaceNamer
}

// RunConfig is the immutable per-run configuration.
type RunConfig struct {
	Region   string     // registration state to analyze, e.g. "WA"
	Centroid domain.Geo // coordinate of last resort for unmappable codes
	Report   ReportConfig
}

// Pipeline executes one load → filter → aggregate → join/score → report pass.
// Fully synchronous; every stage consumes its predecessor's output as an
// immutable value.
type Pipeline struct {
	vehicles VehicleSource
	stations StationSource
	sinks    Sinks
	cfg      RunConfig
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline over the given sources and sinks.
func New(vehicles VehicleSource, stations StationSource, sinks Sinks, cfg RunConfig, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		vehicles: vehicles,
		stations: stations,
		sinks:    sinks,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes the analysis once and returns the report. Source I/O errors
// abort the run; bad rows inside readable sources never do.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	vehicles, err := p.vehicles.Vehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	stations, err := p.stations.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	p.metrics.VehiclesRead.Add(float64(len(vehicles)))
	p.metrics.StationsRead.Add(float64(len(stations)))

	bevs := domain.FilterVehicles(vehicles, p.cfg.Region)
	public := domain.FilterStations(stations)
	p.metrics.VehiclesKept.Add(float64(len(bevs)))
	p.metrics.StationsKept.Add(float64(len(public)))
	p.logger.Info("population filtered",
		"region", p.cfg.Region,
		"bevs", len(bevs), "vehicles_total", len(vehicles),
		"public_stations", len(public), "stations_total", len(stations),
	)

	demand := domain.AggregateVehicles(bevs)
	supply := domain.AggregateStations(public)
	summaries := domain.BuildSummaries(demand, supply, p.cfg.Centroid)

	p.metrics.SummaryZips.Set(float64(len(summaries)))
	for _, z := range summaries {
		if z.GeoSource == domain.GeoSourceCentroid {
			p.metrics.CentroidFallbacks.Inc()
		}
	}

	report := BuildReport(p.cfg.Report, p.cfg.Region, summaries)
	p.metrics.DesertZips.Set(float64(report.Stats.DesertZips))

	p.enrichPlaceNames(ctx, report.ConstructionSites)

	if err := p.dispatch(ctx, report); err != nil {
		return nil, err
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("analysis complete",
		"zip_codes", len(report.Summaries),
		"total_bevs", report.Stats.TotalEVs,
		"total_ports", report.Stats.TotalPorts,
		"desert_zips", report.Stats.DesertZips,
		"desert_bevs", report.Stats.DesertEVs,
		"duration", time.Since(start),
	)
	return report, nil
}

// enrichPlaceNames is best-effort display enrichment; lookup failures are
// logged and skipped, never fatal.
func (p *Pipeline) enrichPlaceNames(ctx context.Context, zones []domain.ZipSummary) {
	if p.sinks.Namer == nil {
		return
	}
	for i := range zones {
		name, err := p.sinks.Namer.PlaceName(ctx, zones[i].PostalCode)
		if err != nil {
			p.metrics.GeocodeLookups.WithLabelValues("error").Inc()
			p.logger.Warn("place lookup failed", "postal_code", zones[i].PostalCode, "error", err)
			continue
		}
		p.metrics.GeocodeLookups.WithLabelValues("success").Inc()
		zones[i].PlaceName = name
	}
}

func (p *Pipeline) dispatch(ctx context.Context, report *Report) error {
	if p.sinks.Exporter != nil {
		if err := p.sinks.Exporter.ExportZones(ctx, report.InvestmentZones); err != nil {
			return fmt.Errorf("export zones: %w", err)
		}
	}
	if p.sinks.Renderer != nil {
		if err := p.sinks.Renderer.RenderMap(ctx, report.Summaries); err != nil {
			return fmt.Errorf("render map: %w", err)
		}
	}
	if p.sinks.Publisher != nil {
		if err := p.sinks.Publisher.PublishZones(ctx, report.InvestmentZones); err != nil {
			return fmt.Errorf("publish zones: %w", err)
		}
	}
	if p.sinks.Store != nil {
		runID, err := p.sinks.Store.SaveReport(ctx, report)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		p.logger.Info("report persisted", "run_id", runID)
	}
	return nil
}
