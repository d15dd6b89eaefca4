package csvfile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gridscope/chargegap/internal/domain"
)

// Station extract column names (NREL AFDC station CSV).
const (
	colStationName = "Station Name"
	colStationCity = "City"
	colZIP         = "ZIP"
	colAccessCode  = "Access Code"
	colLevel2Num   = "EV Level2 EVSE Num"
	colDCFastNum   = "EV DC Fast Count"
	colLatitude    = "Latitude"
	colLongitude   = "Longitude"
)

var stationColumns = []string{
	colStationName, colStationCity, colZIP, colAccessCode,
	colLevel2Num, colDCFastNum, colLatitude, colLongitude,
}

// StationReader reads the charging-station extract wholesale.
// It implements pipeline.StationSource.
type StationReader struct {
	path string
}

// NewStationReader creates a reader for the extract at path.
func NewStationReader(path string) *StationReader {
	return &StationReader{path: path}
}

// Stations loads every row of the extract. Blank port counts read as zero:
// absence of a figure means zero installed ports of that type, not "unknown".
func (r *StationReader) Stations(_ context.Context) ([]domain.StationRecord, error) {
	rows, idx, err := readTable(r.path, stationColumns)
	if err != nil {
		return nil, fmt.Errorf("station extract: %w", err)
	}

	records := make([]domain.StationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.StationRecord{
			Name:        get(row, idx, colStationName),
			City:        get(row, idx, colStationCity),
			PostalCode:  get(row, idx, colZIP),
			AccessCode:  get(row, idx, colAccessCode),
			Level2Ports: parseCountOrZero(get(row, idx, colLevel2Num)),
			DCFastPorts: parseCountOrZero(get(row, idx, colDCFastNum)),
			Lat:         parseFloatOrZero(get(row, idx, colLatitude)),
			Lon:         parseFloatOrZero(get(row, idx, colLongitude)),
		})
	}
	return records, nil
}

// parseCountOrZero parses a port count, tolerating float serialization
// ("4.0"). Missing or malformed values are zero by policy.
func parseCountOrZero(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
