package domain

import (
	"math"
	"strconv"
)

// Priority is the ordinal opportunity bucket assigned to a postal code.
type Priority string

const (
	PriorityCritical   Priority = "CRITICAL - No Ports"
	PriorityHigh       Priority = "High Opportunity"
	PriorityMedium     Priority = "Medium Opportunity"
	PriorityWellServed Priority = "Well Served"
)

// Ratio classification thresholds. These are fixed constants of the model,
// not configuration.
const (
	highOpportunityRatio   = 100.0
	mediumOpportunityRatio = 50.0
)

// EVPortRatio computes the demand/supply metric for a code. A code with zero
// ports has unbounded demand and zero supply; the ratio is +Inf by definition,
// not an error.
func EVPortRatio(vehicles, ports int) float64 {
	if ports == 0 {
		return math.Inf(1)
	}
	return float64(vehicles) / float64(ports)
}

// ClassifyRatio maps an EV/port ratio to its priority bucket. The conditions
// form an ordered, non-overlapping partition; first match wins.
func ClassifyRatio(ratio float64) Priority {
	switch {
	case math.IsInf(ratio, 1):
		return PriorityCritical
	case ratio > highOpportunityRatio:
		return PriorityHigh
	case ratio > mediumOpportunityRatio:
		return PriorityMedium
	default:
		return PriorityWellServed
	}
}

// FormatRatio renders a ratio for display, substituting the infinity symbol
// for the zero-port sentinel. The underlying value is never altered.
func FormatRatio(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "∞"
	}
	return strconv.FormatFloat(ratio, 'f', 0, 64)
}

// FormatRatioCSV renders a ratio for the tabular export. Infinite ratios are
// written as "inf" so spreadsheet tools round-trip them.
func FormatRatioCSV(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "inf"
	}
	return strconv.FormatFloat(ratio, 'f', -1, 64)
}
