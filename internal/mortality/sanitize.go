// Package mortality implements the curve derivation and statistics engine
// shared by every table view: sanitization, lx/dx/ex derivation, summary
// statistics, and multi-table alignment. All functions are pure; callers can
// run them concurrently across tables without coordination.
package mortality

import (
	"math"
	"sort"

	"mortality-engine/internal/model"
)

// SanitizeReport counts what Sanitize had to repair.
type SanitizeReport struct {
	Clamped      int
	Dropped      int
	Deduplicated int
}

// Sanitize normalizes a raw table: sorts by age ascending, clamps qx into
// [0, 1], drops points with non-finite qx, and keeps the first of any
// duplicate ages. An empty input yields an empty output, never an error.
func Sanitize(points []model.MortalityPoint) []model.MortalityPoint {
	out, _ := SanitizeWithReport(points)
	return out
}

// SanitizeWithReport is Sanitize plus a tally of repairs, so callers can
// surface warnings about malformed upstream data.
func SanitizeWithReport(points []model.MortalityPoint) ([]model.MortalityPoint, SanitizeReport) {
	var report SanitizeReport

	sorted := make([]model.MortalityPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Age < sorted[j].Age })

	out := make([]model.MortalityPoint, 0, len(sorted))
	for _, p := range sorted {
		if math.IsNaN(p.Qx) || math.IsInf(p.Qx, 0) {
			report.Dropped++
			continue
		}
		if len(out) > 0 && out[len(out)-1].Age == p.Age {
			report.Deduplicated++
			continue
		}
		if p.Qx < 0 {
			p.Qx = 0
			report.Clamped++
		} else if p.Qx > 1 {
			p.Qx = 1
			report.Clamped++
		}
		out = append(out, p)
	}
	return out, report
}
