// Package csvfile reads the two source extracts and writes the tabular
// export. Column names are fixed string literals; schema drift in either
// source is a hard failure, not something negotiated at runtime.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/gridscope/chargegap/internal/domain"
)

// Vehicle extract column names (WA DOL EV population CSV).
const (
	colVIN         = "VIN (1-10)"
	colCounty      = "County"
	colCity        = "City"
	colState       = "State"
	colPostalCode  = "Postal Code"
	colVehicleType = "Electric Vehicle Type"
	colLocation    = "Vehicle Location"
)

var vehicleColumns = []string{
	colVIN, colCounty, colCity, colState, colPostalCode, colVehicleType, colLocation,
}

// VehicleReader reads the vehicle-registration extract wholesale.
// It implements pipeline.VehicleSource.
type VehicleReader struct {
	path string
}

// NewVehicleReader creates a reader for the extract at path.
func NewVehicleReader(path string) *VehicleReader {
	return &VehicleReader{path: path}
}

// Vehicles loads every row of the extract. Rows with missing or malformed
// fields are not rejected here; population filtering is the domain's job.
func (r *VehicleReader) Vehicles(_ context.Context) ([]domain.VehicleRecord, error) {
	rows, idx, err := readTable(r.path, vehicleColumns)
	if err != nil {
		return nil, fmt.Errorf("vehicle extract: %w", err)
	}

	records := make([]domain.VehicleRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.VehicleRecord{
			VIN:         get(row, idx, colVIN),
			County:      get(row, idx, colCounty),
			City:        get(row, idx, colCity),
			State:       get(row, idx, colState),
			PostalCode:  get(row, idx, colPostalCode),
			VehicleType: get(row, idx, colVehicleType),
			Location:    get(row, idx, colLocation),
		})
	}
	return records, nil
}

// readTable loads a CSV wholesale and verifies the required columns exist.
func readTable(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows pass through, they just read as empty fields
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing column(s): %s", strings.Join(missing, ", "))
	}

	return rows[1:], idx, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
