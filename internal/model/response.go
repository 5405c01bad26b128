package model

type AnalysisMetadata struct {
	AnalysisID          string `json:"analysis_id"`
	AnalysisStartedAt   string `json:"analysis_started_at"`
	AnalysisCompletedAt string `json:"analysis_completed_at"`
	AnalysisDurationMs  int64  `json:"analysis_duration_ms"`
	AnalysisOutcome     string `json:"analysis_outcome"`
}

type CurvesResponse struct {
	AnalysisMetadata AnalysisMetadata `json:"analysis_metadata"`
	AnalysisResult   CurvesResult     `json:"analysis_result"`
}

type CurvesResult struct {
	Messages []AnalysisMessage `json:"messages"`
	Table    *MortalityTable   `json:"table"`
	Curves   *DerivedCurves    `json:"curves"`
}

type StatisticsResponse struct {
	AnalysisMetadata AnalysisMetadata `json:"analysis_metadata"`
	AnalysisResult   StatisticsResult `json:"analysis_result"`
}

type StatisticsResult struct {
	Messages   []AnalysisMessage `json:"messages"`
	Table      *MortalityTable   `json:"table"`
	Statistics *Statistics       `json:"statistics"`
}

type ComparisonResponse struct {
	AnalysisMetadata AnalysisMetadata `json:"analysis_metadata"`
	AnalysisResult   ComparisonResult `json:"analysis_result"`
}

type ComparisonResult struct {
	Messages   []AnalysisMessage `json:"messages"`
	Comparison *Comparison       `json:"comparison"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
