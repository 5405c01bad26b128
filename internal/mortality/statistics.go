package mortality

import (
	"fmt"
	"math"
	"sort"

	"mortality-engine/internal/model"
)

// Age band boundaries, inclusive.
const (
	youngMaxAge = 30
	adultMaxAge = 65
)

// nearestRankIndex is the percentile convention used across the dashboard:
// index = ceil(p/100 * n) - 1, clamped to [0, n-1]. Not interpolated;
// changing the method changes displayed numbers.
func nearestRankIndex(p float64, n int) int {
	i := int(math.Ceil(p/100*float64(n))) - 1
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}

// lowerMidIndex is the median convention for even-length series: the lower
// of the two middle elements, not their average.
func lowerMidIndex(n int) int {
	return (n - 1) / 2
}

// ComputeStatistics summarizes a sanitized table: moments and nearest-rank
// percentiles over qx, average qx per age band, life expectancy at the first
// tabulated age, and the modal-age heuristic. An empty table yields the zero
// value with "0-0" band labels.
func ComputeStatistics(points []model.MortalityPoint) model.Statistics {
	stats := model.Statistics{
		AgeBands: []model.AgeBandStat{
			{Band: model.BandYoung, Ages: "0-0"},
			{Band: model.BandAdult, Ages: "0-0"},
			{Band: model.BandElderly, Ages: "0-0"},
		},
	}

	n := len(points)
	if n == 0 {
		return stats
	}

	sorted := make([]float64, n)
	for i, p := range points {
		sorted[i] = p.Qx
	}
	sort.Float64s(sorted)

	stats.Min = sorted[0]
	stats.Max = sorted[n-1]
	stats.Median = sorted[lowerMidIndex(n)]

	var sum float64
	for _, q := range sorted {
		sum += q
	}
	stats.Mean = sum / float64(n)

	// Population standard deviation (divisor n, not n-1).
	var sumSq float64
	for _, q := range sorted {
		d := q - stats.Mean
		sumSq += d * d
	}
	stats.StdDev = math.Sqrt(sumSq / float64(n))

	stats.Percentiles = model.Percentiles{
		P25: sorted[nearestRankIndex(25, n)],
		P50: sorted[nearestRankIndex(50, n)],
		P75: sorted[nearestRankIndex(75, n)],
		P90: sorted[nearestRankIndex(90, n)],
		P95: sorted[nearestRankIndex(95, n)],
	}

	fillAgeBands(points, stats.AgeBands)

	e0 := DeriveLifeExpectancy(points)[0]
	whole := math.Floor(e0)
	stats.LifeExpectancyAtFirstAge = model.LifeExpectancyAtFirstAge{
		Years:  e0,
		Whole:  int(whole),
		Months: int(math.Round((e0 - whole) * 12)),
	}

	stats.ModalAge = modalAge(points)
	return stats
}

func bandIndex(age int) int {
	switch {
	case age <= youngMaxAge:
		return 0
	case age <= adultMaxAge:
		return 1
	default:
		return 2
	}
}

func fillAgeBands(points []model.MortalityPoint, bands []model.AgeBandStat) {
	type acc struct {
		sum    float64
		count  int
		minAge int
		maxAge int
	}
	accs := make([]acc, len(bands))

	for _, p := range points {
		a := &accs[bandIndex(p.Age)]
		if a.count == 0 || p.Age < a.minAge {
			a.minAge = p.Age
		}
		if a.count == 0 || p.Age > a.maxAge {
			a.maxAge = p.Age
		}
		a.sum += p.Qx
		a.count++
	}

	for i, a := range accs {
		if a.count == 0 {
			continue
		}
		bands[i].Ages = fmt.Sprintf("%d-%d", a.minAge, a.maxAge)
		bands[i].AvgQx = a.sum / float64(a.count)
	}
}

// modalAge returns the age at the largest positive increase of qx between
// consecutive ages. This is the dashboard's historical heuristic for peak
// mortality acceleration; it is NOT the actuarial modal age at death
// (argmax of dx). Kept as-is for output compatibility.
func modalAge(points []model.MortalityPoint) int {
	best := 0.0
	age := points[0].Age
	for i := 1; i < len(points); i++ {
		d := points[i].Qx - points[i-1].Qx
		if d > best {
			best = d
			age = points[i].Age
		}
	}
	return age
}
