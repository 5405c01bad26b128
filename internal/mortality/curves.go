package mortality

import "mortality-engine/internal/model"

// Radix is the initial survivor population the lx curve is seeded with.
const Radix = 100000.0

// DeriveSurvivorship returns lx for a sanitized table. lx[i] counts the
// survivors entering the interval at ages[i], before that interval's
// mortality applies, consistent with standard actuarial notation.
func DeriveSurvivorship(points []model.MortalityPoint) []float64 {
	lx := make([]float64, len(points))
	survivors := Radix
	for i, p := range points {
		lx[i] = survivors
		survivors *= 1 - p.Qx
	}
	return lx
}

// DeriveDeaths returns dx, the expected deaths in each age interval. It is
// computed from the survivorship series as lx[i] * qx[i], so dx and lx can
// never drift apart.
func DeriveDeaths(points []model.MortalityPoint) []float64 {
	lx := DeriveSurvivorship(points)
	dx := make([]float64, len(points))
	for i, p := range points {
		dx[i] = lx[i] * p.Qx
	}
	return dx
}

// DeriveLifeExpectancy returns curtate ex over the tabulated ages only:
// ex[i] = sum(lx[j] for j >= i) / lx[i], zero when the cohort is extinct.
// With no tail beyond the last tabulated age this understates true life
// expectancy near the end of the table; accepted limitation.
func DeriveLifeExpectancy(points []model.MortalityPoint) []float64 {
	return lifeExpectancyFrom(DeriveSurvivorship(points))
}

func lifeExpectancyFrom(lx []float64) []float64 {
	ex := make([]float64, len(lx))
	tail := 0.0
	for i := len(lx) - 1; i >= 0; i-- {
		tail += lx[i]
		if lx[i] > 0 {
			ex[i] = tail / lx[i]
		}
	}
	return ex
}

// DeriveCurves bundles all three derived series with the age and qx axes,
// aligned index-for-index with the input table.
func DeriveCurves(points []model.MortalityPoint) model.DerivedCurves {
	n := len(points)
	ages := make([]int, n)
	qx := make([]float64, n)
	for i, p := range points {
		ages[i] = p.Age
		qx[i] = p.Qx
	}

	lx := DeriveSurvivorship(points)
	dx := make([]float64, n)
	for i := range points {
		dx[i] = lx[i] * qx[i]
	}

	return model.DerivedCurves{
		Ages:           ages,
		Qx:             qx,
		Survivors:      lx,
		Deaths:         dx,
		LifeExpectancy: lifeExpectancyFrom(lx),
	}
}
