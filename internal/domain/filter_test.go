package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterVehicles(t *testing.T) {
	records := []VehicleRecord{
		{VIN: "5YJ3E1EA4J", State: "WA", VehicleType: BatteryElectric, PostalCode: "98101.0"},
		{VIN: "1N4AZ0CP5D", State: "WA", VehicleType: "Plug-in Hybrid Electric Vehicle (PHEV)", PostalCode: "98101"},
		{VIN: "5YJSA1E26M", State: "OR", VehicleType: BatteryElectric, PostalCode: "97201"},
		{VIN: "7SAYGDEE9P", State: "WA", VehicleType: BatteryElectric, PostalCode: ""},
	}

	kept := FilterVehicles(records, "WA")

	require.Len(t, kept, 2)
	assert.Equal(t, "98101", kept[0].PostalCode, "postal code normalized")
	assert.Equal(t, "", kept[1].PostalCode, "missing code passes through")

	// Source slice is not mutated.
	assert.Equal(t, "98101.0", records[0].PostalCode)
}

func TestFilterStations(t *testing.T) {
	records := []StationRecord{
		{Name: "City Hall Garage", AccessCode: PublicAccess, PostalCode: "98101"},
		{Name: "Corporate Lot", AccessCode: "private", PostalCode: "98101"},
		{Name: "Library", AccessCode: PublicAccess, PostalCode: " 98102 "},
	}

	kept := FilterStations(records)

	require.Len(t, kept, 2)
	assert.Equal(t, "City Hall Garage", kept[0].Name)
	assert.Equal(t, "98102", kept[1].PostalCode)
}
