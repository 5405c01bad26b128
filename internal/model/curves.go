package model

import json "github.com/goccy/go-json"

// DerivedCurves holds the standard actuarial curves for one table, all
// aligned index-for-index with Ages.
type DerivedCurves struct {
	Ages           []int     `json:"ages"`
	Qx             []float64 `json:"qx"`
	Survivors      []float64 `json:"lx"`
	Deaths         []float64 `json:"dx"`
	LifeExpectancy []float64 `json:"ex"`
}

// Statistics summarizes the qx values of a single table.
type Statistics struct {
	Min                      float64                  `json:"min"`
	Max                      float64                  `json:"max"`
	Mean                     float64                  `json:"mean"`
	Median                   float64                  `json:"median"`
	StdDev                   float64                  `json:"std_dev"`
	Percentiles              Percentiles              `json:"percentiles"`
	AgeBands                 []AgeBandStat            `json:"age_bands"`
	LifeExpectancyAtFirstAge LifeExpectancyAtFirstAge `json:"life_expectancy_at_first_age"`
	ModalAge                 int                      `json:"modal_age"`
}

type Percentiles struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
}

// AgeBandStat is the average qx over one age band. Ages is a "lo-hi" label of
// the ages actually present in the band, "0-0" when the band is empty.
type AgeBandStat struct {
	Band  string  `json:"band"`
	Ages  string  `json:"ages"`
	AvgQx float64 `json:"avg_qx"`
}

const (
	BandYoung   = "young"
	BandAdult   = "adult"
	BandElderly = "elderly"
)

// LifeExpectancyAtFirstAge is ex at the table's first age, with a whole
// years + months decomposition for display.
type LifeExpectancyAtFirstAge struct {
	Years  float64 `json:"years"`
	Whole  int     `json:"whole_years"`
	Months int     `json:"months"`
}

// Comparison aligns one derived curve from several tables onto the union age
// axis. Every series' Values slice has len(Ages) entries.
type Comparison struct {
	CurveKind string             `json:"curve_kind"`
	Ages      []int              `json:"ages"`
	Series    []ComparisonSeries `json:"series"`
}

type ComparisonSeries struct {
	Name   string         `json:"name"`
	Color  string         `json:"color,omitempty"`
	Values []AlignedValue `json:"values"`
}

// AlignedValue is one point of an aligned series: either a value or an
// explicit gap for an age the table does not cover. Gaps marshal as JSON
// null so renderers can skip them instead of interpolating.
type AlignedValue struct {
	Value   float64
	Present bool
}

// Some returns a present AlignedValue.
func Some(v float64) AlignedValue {
	return AlignedValue{Value: v, Present: true}
}

var nullLiteral = []byte("null")

func (v AlignedValue) MarshalJSON() ([]byte, error) {
	if !v.Present {
		return nullLiteral, nil
	}
	return json.Marshal(v.Value)
}

func (v *AlignedValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = AlignedValue{}
		return nil
	}
	if err := json.Unmarshal(data, &v.Value); err != nil {
		return err
	}
	v.Present = true
	return nil
}
