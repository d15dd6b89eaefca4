package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEVPortRatio(t *testing.T) {
	t.Run("finite ratio", func(t *testing.T) {
		assert.Equal(t, 30.0, EVPortRatio(30, 1))
		assert.Equal(t, 12.5, EVPortRatio(25, 2))
	})

	t.Run("zero ports is infinite, not an error", func(t *testing.T) {
		assert.True(t, math.IsInf(EVPortRatio(60, 0), 1))
		assert.True(t, math.IsInf(EVPortRatio(0, 0), 1))
	})

	t.Run("infinite iff zero ports", func(t *testing.T) {
		assert.False(t, math.IsInf(EVPortRatio(1000000, 1), 1))
	})
}

func TestClassifyRatio(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected Priority
	}{
		{"infinite", math.Inf(1), PriorityCritical},
		{"well above high threshold", 150, PriorityHigh},
		{"just above high threshold", 100.01, PriorityHigh},
		{"exactly high threshold", 100, PriorityMedium},
		{"between thresholds", 75, PriorityMedium},
		{"exactly medium threshold", 50, PriorityWellServed},
		{"well served", 10, PriorityWellServed},
		{"zero", 0, PriorityWellServed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRatio(tt.ratio))
		})
	}
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "∞", FormatRatio(math.Inf(1)))
	assert.Equal(t, "30", FormatRatio(30.0))
	assert.Equal(t, "12", FormatRatio(12.4)) // rounded for display
}

func TestFormatRatioCSV(t *testing.T) {
	assert.Equal(t, "inf", FormatRatioCSV(math.Inf(1)))
	assert.Equal(t, "12.5", FormatRatioCSV(12.5))
	assert.Equal(t, "30", FormatRatioCSV(30.0))
}
