package mortality

import "mortality-engine/internal/model"

// Align re-indexes one derived curve from each table onto the contiguous
// integer age range spanning all tables. Ages a table does not cover get an
// explicit gap, never an interpolated or zero-filled value, so renderers can
// connect through or skip them. Returns false for an unknown curve kind.
func Align(tables []model.MortalityTable, kind string) (model.Comparison, bool) {
	derive, ok := CurveFor(kind)
	if !ok {
		return model.Comparison{}, false
	}

	comp := model.Comparison{CurveKind: kind}

	minAge, maxAge := 0, 0
	found := false
	for _, t := range tables {
		for _, p := range t.Points {
			if !found {
				minAge, maxAge = p.Age, p.Age
				found = true
				continue
			}
			if p.Age < minAge {
				minAge = p.Age
			}
			if p.Age > maxAge {
				maxAge = p.Age
			}
		}
	}

	if found {
		comp.Ages = make([]int, maxAge-minAge+1)
		for i := range comp.Ages {
			comp.Ages[i] = minAge + i
		}
	}

	for _, t := range tables {
		values := make([]model.AlignedValue, len(comp.Ages))
		curve := derive(t.Points)
		for i, p := range t.Points {
			values[p.Age-minAge] = model.Some(curve[i])
		}
		comp.Series = append(comp.Series, model.ComparisonSeries{
			Name:   t.Name,
			Color:  t.Color,
			Values: values,
		})
	}
	return comp, true
}
