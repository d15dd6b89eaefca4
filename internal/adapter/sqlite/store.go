// Package sqlite persists completed analysis runs so past results stay
// queryable without rerunning the pipeline against the raw extracts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/patrickmn/go-cache"

	"github.com/gridscope/chargegap/internal/domain"
	"github.com/gridscope/chargegap/internal/pipeline"
)

const (
	cacheDefaultExpiry = 5 * time.Minute
	cacheCleanupTime   = 10 * time.Minute
)

// Store is a SQLite-backed report archive with a read-through query cache.
// It implements pipeline.ReportStore.
type Store struct {
	db    *sql.DB
	cache *cache.Cache
	log   *slog.Logger
}

// RunInfo is one archived run's header row.
type RunInfo struct {
	ID          int64
	GeneratedAt time.Time
	Region      string
	ZipCodes    int
	TotalEVs    int
	TotalPorts  int
	DesertZips  int
}

// NewStore opens (or creates) the database at dbPath and ensures the schema.
func NewStore(ctx context.Context, dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{
		db:    db,
		cache: cache.New(cacheDefaultExpiry, cacheCleanupTime),
		log:   logger,
	}, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		generated_at TEXT NOT NULL,
		region TEXT NOT NULL,
		zip_codes INTEGER NOT NULL,
		total_evs INTEGER NOT NULL,
		total_ports INTEGER NOT NULL,
		desert_zips INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS zip_summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		postal_code TEXT NOT NULL,
		county TEXT NOT NULL,
		city TEXT NOT NULL,
		total_evs INTEGER NOT NULL,
		total_ports INTEGER NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		geo_source TEXT NOT NULL,
		ratio REAL,
		priority TEXT NOT NULL,
		nearest_station_km REAL NOT NULL,
		place_name TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_zip_summaries_run ON zip_summaries(run_id);
	CREATE INDEX IF NOT EXISTS idx_zip_summaries_code ON zip_summaries(postal_code);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveReport archives a full report in one transaction and returns the run id.
// Infinite ratios are stored as NULL; REAL has no +Inf that survives every
// driver, and NULL reads back unambiguously.
func (s *Store) SaveReport(ctx context.Context, report *pipeline.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (generated_at, region, zip_codes, total_evs, total_ports, desert_zips)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		report.GeneratedAt.UTC().Format(time.RFC3339),
		report.Region,
		len(report.Summaries),
		report.Stats.TotalEVs,
		report.Stats.TotalPorts,
		report.Stats.DesertZips,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO zip_summaries
		 (run_id, postal_code, county, city, total_evs, total_ports, lat, lon,
		  geo_source, ratio, priority, nearest_station_km, place_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare summary insert: %w", err)
	}
	defer stmt.Close()

	for _, z := range report.Summaries {
		ratio := sql.NullFloat64{Float64: z.Ratio, Valid: !math.IsInf(z.Ratio, 1)}
		if _, err := stmt.ExecContext(ctx,
			runID, z.PostalCode, z.County, z.City, z.TotalEVs, z.TotalPorts,
			z.Geo.Lat, z.Geo.Lon, z.GeoSource, ratio, string(z.Priority),
			z.NearestStationKm, z.PlaceName,
		); err != nil {
			return 0, fmt.Errorf("insert summary %s: %w", z.PostalCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}

	s.cache.Flush()
	s.log.Info("run archived", "run_id", runID, "zip_codes", len(report.Summaries))
	return runID, nil
}

// Runs lists archived run headers, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	const key = "runs"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]RunInfo), nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, generated_at, region, zip_codes, total_evs, total_ports, desert_zips
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		var generated string
		if err := rows.Scan(&r.ID, &generated, &r.Region, &r.ZipCodes, &r.TotalEVs, &r.TotalPorts, &r.DesertZips); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, generated); err == nil {
			r.GeneratedAt = t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %w", err)
	}

	s.cache.Set(key, runs, cache.DefaultExpiration)
	return runs, nil
}

// TopZips returns the highest-ratio summaries of the latest run. A zero run id
// selects the most recent run. Infinite ratios sort first.
func (s *Store) TopZips(ctx context.Context, runID int64, limit int) ([]domain.ZipSummary, error) {
	key := fmt.Sprintf("top:%d:%d", runID, limit)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]domain.ZipSummary), nil
	}

	if runID == 0 {
		if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM runs").Scan(&runID); err != nil {
			return nil, fmt.Errorf("latest run: %w", err)
		}
		if runID == 0 {
			return nil, nil
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT postal_code, county, city, total_evs, total_ports, lat, lon,
		        geo_source, ratio, priority, nearest_station_km, place_name
		 FROM zip_summaries
		 WHERE run_id = ?
		 ORDER BY (ratio IS NULL) DESC, ratio DESC, total_evs DESC, postal_code ASC
		 LIMIT ?`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var zones []domain.ZipSummary
	for rows.Next() {
		var z domain.ZipSummary
		var ratio sql.NullFloat64
		var priority string
		if err := rows.Scan(&z.PostalCode, &z.County, &z.City, &z.TotalEVs, &z.TotalPorts,
			&z.Geo.Lat, &z.Geo.Lon, &z.GeoSource, &ratio, &priority,
			&z.NearestStationKm, &z.PlaceName); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		z.Priority = domain.Priority(priority)
		if ratio.Valid {
			z.Ratio = ratio.Float64
		} else {
			z.Ratio = math.Inf(1)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %w", err)
	}

	s.cache.Set(key, zones, cache.DefaultExpiration)
	return zones, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
