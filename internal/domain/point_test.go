package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name     string
		location string
		expected Geo
		ok       bool
	}{
		{"standard point", "POINT (-122.89165 47.03954)", Geo{Lat: 47.03954, Lon: -122.89165}, true},
		{"no space after keyword", "POINT(-122.3 47.6)", Geo{}, false},
		{"empty string", "", Geo{}, false},
		{"free text", "somewhere in Olympia", Geo{}, false},
		{"non-numeric coordinates", "POINT (east west)", Geo{}, false},
		{"missing latitude", "POINT (-122.3)", Geo{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := ParsePoint(tt.location)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, g)
		})
	}
}
