package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/gridscope/chargegap/internal/adapter/sqlite"
	"github.com/gridscope/chargegap/internal/config"
	"github.com/gridscope/chargegap/internal/observability"
)

func zipsCommand() *cli.Command {
	return &cli.Command{
		Name:  "zips",
		Usage: "Show the worst-served postal codes from an archived run",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Usage:    "SQLite archive written by analyze --db",
				Required: true,
			},
			&cli.Int64Flag{
				Name:  "run",
				Usage: "Run id to query (latest when zero)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Rows to show",
				Value: 20,
			},
		},
		Action: zipsAction,
	}
}

func zipsAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := sqlite.NewStore(c.Context, c.String("db"), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	zones, err := store.TopZips(c.Context, c.Int64("run"), c.Int("limit"))
	if err != nil {
		return err
	}
	if len(zones) == 0 {
		fmt.Println("No archived runs found.")
		return nil
	}

	printZones(zones)
	return nil
}

func runsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "List archived analysis runs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Usage:    "SQLite archive written by analyze --db",
				Required: true,
			},
		},
		Action: runsAction,
	}
}

func runsAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := sqlite.NewStore(c.Context, c.String("db"), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(c.Context)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tGenerated\tRegion\tZIPs\tEVs\tPorts\tDeserts")
	for _, r := range runs {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.ID, r.GeneratedAt.Format("2006-01-02 15:04"), r.Region,
			r.ZipCodes, r.TotalEVs, r.TotalPorts, r.DesertZips)
	}
	w.Flush()
	return nil
}
