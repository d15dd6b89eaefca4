package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/gridscope/chargegap/internal/adapter/csvfile"
	"github.com/gridscope/chargegap/internal/adapter/htmlmap"
	"github.com/gridscope/chargegap/internal/adapter/kafka"
	"github.com/gridscope/chargegap/internal/adapter/nominatim"
	"github.com/gridscope/chargegap/internal/adapter/sqlite"
	"github.com/gridscope/chargegap/internal/config"
	"github.com/gridscope/chargegap/internal/domain"
	"github.com/gridscope/chargegap/internal/observability"
	"github.com/gridscope/chargegap/internal/pipeline"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Run the charging gap analysis over the two source extracts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "vehicles",
				Usage:    "Vehicle registration CSV",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "stations",
				Usage:    "Charging station CSV",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "out-csv",
				Usage: "Investment zone CSV output path",
				Value: "investment_zones.csv",
			},
			&cli.StringFlag{
				Name:  "out-map",
				Usage: "HTML map output path (skipped when empty)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite archive for run history (skipped when empty)",
			},
			&cli.StringFlag{
				Name:  "region",
				Usage: "Registration state to analyze (overrides REGION)",
			},
		},
		Action: analyzeAction,
	}
}

func analyzeAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if region := c.String("region"); region != "" {
		cfg.Region = region
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	ctx := c.Context

	sinks := pipeline.Sinks{
		Exporter: csvfile.NewZoneWriter(c.String("out-csv")),
	}

	centroid := domain.Geo{Lat: cfg.CentroidLat, Lon: cfg.CentroidLon}
	if path := c.String("out-map"); path != "" {
		sinks.Renderer = htmlmap.NewRenderer(path, centroid)
	}
	if cfg.KafkaEnabled {
		writer := kafka.NewWriter(cfg, logger)
		defer writer.Close()
		sinks.Publisher = writer
	}
	if path := c.String("db"); path != "" {
		store, err := sqlite.NewStore(ctx, path, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		sinks.Store = store
	}
	if cfg.NominatimEnabled {
		sinks.Namer = nominatim.NewClient(cfg.NominatimServer, cfg.Region, cfg.GeocodeCacheTTL, logger)
	}

	p := pipeline.New(
		csvfile.NewVehicleReader(c.String("vehicles")),
		csvfile.NewStationReader(c.String("stations")),
		sinks,
		pipeline.RunConfig{
			Region:   cfg.Region,
			Centroid: centroid,
			Report:   pipeline.DefaultReportConfig(),
		},
		logger,
		metrics,
	)

	report, err := p.Run(ctx)
	if err != nil {
		return err
	}

	printReport(report)

	if cfg.PushgatewayURL != "" {
		if err := observability.PushMetrics(cfg.PushgatewayURL, "chargegap"); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}
	return nil
}

func printReport(report *pipeline.Report) {
	fmt.Printf("Charging gap analysis for %s (%s)\n\n", report.Region,
		report.GeneratedAt.Format("2006-01-02 15:04 MST"))

	fmt.Printf("Postal codes analyzed: %d\n", len(report.Summaries))
	fmt.Printf("Registered BEVs:       %d\n", report.Stats.TotalEVs)
	fmt.Printf("Public ports:          %d\n", report.Stats.TotalPorts)
	fmt.Printf("Overall EV/port ratio: %s\n", domain.FormatRatio(report.Stats.AverageRatio))
	fmt.Printf("Charging deserts:      %d codes, %d stranded BEVs\n\n",
		report.Stats.DesertZips, report.Stats.DesertEVs)

	fmt.Println("Top construction sites (high demand, almost no ports):")
	printZones(report.ConstructionSites)

	fmt.Println("Top investment zones (worst EV/port ratios):")
	printZones(report.InvestmentZones)
}

func printZones(zones []domain.ZipSummary) {
	if len(zones) == 0 {
		fmt.Println("  none")
		fmt.Println()
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ZIP\tCity\tCounty\tEVs\tPorts\tRatio\tPriority")
	for _, z := range zones {
		name := z.City
		if z.PlaceName != "" {
			name = z.PlaceName
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			z.PostalCode, name, z.County, z.TotalEVs, z.TotalPorts,
			domain.FormatRatio(z.Ratio), z.Priority)
	}
	w.Flush()
	fmt.Println()
}
