package mortality

import "mortality-engine/internal/model"

// Curve kinds selectable for a comparison.
const (
	KindMortality      = "mortality"
	KindSurvival       = "survival"
	KindLifeExpectancy = "life_expectancy"
	KindDeaths         = "deaths"
)

// CurveFunc derives one series from a sanitized table, aligned with its ages.
type CurveFunc func(points []model.MortalityPoint) []float64

var curveRegistry = map[string]CurveFunc{
	KindMortality:      rawQx,
	KindSurvival:       DeriveSurvivorship,
	KindLifeExpectancy: DeriveLifeExpectancy,
	KindDeaths:         DeriveDeaths,
}

// CurveFor resolves a curve kind to its deriver.
func CurveFor(kind string) (CurveFunc, bool) {
	f, ok := curveRegistry[kind]
	return f, ok
}

func rawQx(points []model.MortalityPoint) []float64 {
	qx := make([]float64, len(points))
	for i, p := range points {
		qx[i] = p.Qx
	}
	return qx
}
