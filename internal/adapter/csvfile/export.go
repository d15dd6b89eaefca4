package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gridscope/chargegap/internal/domain"
)

// exportHeader is the fixed column order of the investment-zone export.
var exportHeader = []string{
	"Postal Code", "County", "City", "Total EVs", "Total Ports",
	"EV to Port Ratio", "Priority Level", "Nearest Station Km",
}

// ZoneWriter writes the ranked investment-zone table to a CSV file.
// It implements pipeline.ZoneExporter.
type ZoneWriter struct {
	path string
}

// NewZoneWriter creates a writer targeting path. Parent directories are
// created on demand.
func NewZoneWriter(path string) *ZoneWriter {
	return &ZoneWriter{path: path}
}

// ExportZones writes the zones in the order given. Infinite ratios are
// serialized as "inf".
func (w *ZoneWriter) ExportZones(_ context.Context, zones []domain.ZipSummary) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, z := range zones {
		row := []string{
			z.PostalCode,
			z.County,
			z.City,
			strconv.Itoa(z.TotalEVs),
			strconv.Itoa(z.TotalPorts),
			domain.FormatRatioCSV(z.Ratio),
			string(z.Priority),
			strconv.FormatFloat(z.NearestStationKm, 'f', 1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", z.PostalCode, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(w.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
