package model

type AnalysisRequest struct {
	Tables    []TableSelector `json:"tables"`
	CurveKind string          `json:"curve_kind,omitempty"`
}

// TableSelector names one table for an analysis: either a table_id resolved
// through the table API, or inline points (e.g. a table the user just
// uploaded and has not saved yet). MinAge/MaxAge bound the rows either way.
type TableSelector struct {
	TableID string           `json:"table_id,omitempty"`
	Name    string           `json:"name,omitempty"`
	Gender  string           `json:"gender,omitempty"`
	Color   string           `json:"color,omitempty"`
	MinAge  *int             `json:"min_age,omitempty"`
	MaxAge  *int             `json:"max_age,omitempty"`
	Points  []MortalityPoint `json:"points,omitempty"`
}

// DisplayName falls back to the table id when the caller gave no name.
func (s *TableSelector) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.TableID
}
