package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeZIP(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"float artifact", "98101.0", "98101"},
		{"bare dot", "98101.", "98101"},
		{"longer fraction", "98101.00", "98101"},
		{"already clean", "98101", "98101"},
		{"surrounding whitespace", " 98101 ", "98101"},
		{"empty", "", ""},
		{"non-numeric garbage preserved", "N/A", "N/A"},
		{"dot followed by letters preserved", "98101.x", "98101.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeZIP(tt.code))
		})
	}
}
