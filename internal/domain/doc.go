// Package domain models the two public datasets behind the charging-gap
// analysis and the pure transforms that join and score them.
//
// # Data Sources
//
// Vehicle demand comes from the Washington State Department of Licensing
// Electric Vehicle Population extract, one row per registered vehicle. Station
// supply comes from the NREL Alternative Fuels Data Center station extract,
// one row per charging site. Both are plain CSV; the adapters under
// internal/adapter/csvfile read them wholesale.
//
// # Source Data Conventions
//
// Postal codes:
//
//	The vehicle extract serializes postal codes as floats ("98101.0"), the
//	station extract as integers ("98101"). [NormalizeZIP] strips the trailing
//	fractional artifact so the two sides join. Missing or malformed codes are
//	passed through untouched; they group under their literal value and fail
//	to match anything, which is documented behavior rather than an error.
//
// Vehicle location:
//
//	WKT point text in lon/lat order: "POINT (-122.89165 47.03954)".
//	Parsed by [ParsePoint]; failures never propagate — the scorer falls back
//	through the coordinate chain instead.
//
// Port counts:
//
//	"EV Level2 EVSE Num" and "EV DC Fast Count" may be blank. Blank means
//	zero installed ports of that type, not "unknown"; the CSV adapter parses
//	them with that policy and [StationRecord.TotalPorts] sums the two.
//
// Access classification:
//
//	The station extract's "Access Code" column is lowercase "public" or
//	"private". Only public sites count toward addressable infrastructure.
//
// # Scoring
//
// The opportunity metric is vehicles per port, +Inf for codes with zero
// ports ([EVPortRatio]). Priority buckets partition the ratio, first match
// wins ([ClassifyRatio]):
//
//	+Inf     CRITICAL - No Ports
//	>100     High Opportunity
//	>50      Medium Opportunity
//	≤50      Well Served
//
// Every postal code with at least one qualifying vehicle appears exactly once
// in the output of [BuildSummaries], station match or not. The left-anchored
// join is the core invariant of the analysis: dropping a desert code would
// hide exactly the rows the study exists to surface.
package domain
