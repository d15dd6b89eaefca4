package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, gauges, and histograms for an
// analysis run.
type Metrics struct {
	VehiclesRead prometheus.Counter
	StationsRead prometheus.Counter
	VehiclesKept prometheus.Counter
	StationsKept prometheus.Counter

	SummaryZips       prometheus.Gauge
	DesertZips        prometheus.Gauge
	CentroidFallbacks prometheus.Counter

	GeocodeLookups *prometheus.CounterVec // labels: outcome={success,error}
	RunDuration    prometheus.Histogram
}

// NewMetrics creates and registers all run metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.VehiclesRead,
		m.StationsRead,
		m.VehiclesKept,
		m.StationsKept,
		m.SummaryZips,
		m.DesertZips,
		m.CentroidFallbacks,
		m.GeocodeLookups,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		VehiclesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chargegap",
			Name:      "vehicles_read_total",
			Help:      "Vehicle registration rows read from the source extract.",
		}),
		StationsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chargegap",
			Name:      "stations_read_total",
			Help:      "Charging station rows read from the source extract.",
		}),
		VehiclesKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chargegap",
			Name:      "vehicles_kept_total",
			Help:      "Vehicle rows surviving the region and drivetrain filters.",
		}),
		StationsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chargegap",
			Name:      "stations_kept_total",
			Help:      "Station rows surviving the public-access filter.",
		}),
		SummaryZips: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chargegap",
			Name:      "summary_zip_codes",
			Help:      "Postal codes in the scored summary table.",
		}),
		DesertZips: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chargegap",
			Name:      "desert_zip_codes",
			Help:      "Postal codes with qualifying demand and zero public ports.",
		}),
		CentroidFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chargegap",
			Name:      "centroid_fallbacks_total",
			Help:      "Summary rows whose coordinate fell back to the regional centroid.",
		}),
		GeocodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chargegap",
			Name:      "geocode_lookups_total",
			Help:      "Place-name lookups by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chargegap",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete analysis run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}
