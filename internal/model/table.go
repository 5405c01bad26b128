package model

// MortalityPoint is one row of a mortality table: the probability of death
// between age x and x+1.
type MortalityPoint struct {
	Age int     `json:"age"`
	Qx  float64 `json:"qx"`
}

// MortalityTable is an age-ascending, age-unique sequence of points fetched
// from the table API or supplied inline. The engine never mutates it.
type MortalityTable struct {
	TableID string           `json:"table_id"`
	Name    string           `json:"name"`
	Gender  string           `json:"gender"`
	Color   string           `json:"color,omitempty"`
	Points  []MortalityPoint `json:"points"`
}

const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderUnisex = "U"
)
