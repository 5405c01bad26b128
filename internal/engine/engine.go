// Package engine orchestrates analyses: it resolves the requested tables,
// runs the mortality derivations, and wraps results in a response envelope
// with messages and metadata.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mortality-engine/internal/model"
	"mortality-engine/internal/mortality"
	"mortality-engine/internal/tableregistry"
)

type Engine struct {
	registry *tableregistry.Registry
	logger   *zap.Logger
}

func New(registry *tableregistry.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{registry: registry, logger: logger}
}

// Curves derives lx, dx and ex for a single table.
func (e *Engine) Curves(req *model.AnalysisRequest) *model.CurvesResponse {
	start := time.Now()
	tables, msgs, hasCritical := e.resolveTables(req)

	result := model.CurvesResult{}
	outcome := model.OutcomeFailure
	if !hasCritical {
		table := singleTable(tables, &msgs)
		curves := mortality.DeriveCurves(table.Points)
		result.Table = &table
		result.Curves = &curves
		outcome = model.OutcomeSuccess
	}
	result.Messages = finalize(msgs)

	e.logDone("curves", outcome, result.Messages)
	return &model.CurvesResponse{
		AnalysisMetadata: newMetadata(start, outcome),
		AnalysisResult:   result,
	}
}

// Statistics computes the summary statistics for a single table.
func (e *Engine) Statistics(req *model.AnalysisRequest) *model.StatisticsResponse {
	start := time.Now()
	tables, msgs, hasCritical := e.resolveTables(req)

	result := model.StatisticsResult{}
	outcome := model.OutcomeFailure
	if !hasCritical {
		table := singleTable(tables, &msgs)
		stats := mortality.ComputeStatistics(table.Points)
		result.Table = &table
		result.Statistics = &stats
		outcome = model.OutcomeSuccess
	}
	result.Messages = finalize(msgs)

	e.logDone("statistics", outcome, result.Messages)
	return &model.StatisticsResponse{
		AnalysisMetadata: newMetadata(start, outcome),
		AnalysisResult:   result,
	}
}

// Comparison aligns one derived curve from every requested table onto the
// union age axis. An empty curve_kind defaults to raw mortality.
func (e *Engine) Comparison(req *model.AnalysisRequest) *model.ComparisonResponse {
	start := time.Now()

	kind := req.CurveKind
	if kind == "" {
		kind = mortality.KindMortality
	}

	var msgs []model.AnalysisMessage
	result := model.ComparisonResult{}
	outcome := model.OutcomeFailure

	if _, ok := mortality.CurveFor(kind); !ok {
		msgs = append(msgs, model.AnalysisMessage{
			Level:   model.LevelCritical,
			Code:    "UNKNOWN_CURVE_KIND",
			Message: fmt.Sprintf("Unknown curve kind: %s", kind),
		})
	} else {
		tables, resolved, hasCritical := e.resolveTables(req)
		msgs = resolved
		if !hasCritical {
			comp, _ := mortality.Align(tables, kind)
			result.Comparison = &comp
			outcome = model.OutcomeSuccess
		}
	}
	result.Messages = finalize(msgs)

	e.logDone("comparison", outcome, result.Messages)
	return &model.ComparisonResponse{
		AnalysisMetadata: newMetadata(start, outcome),
		AnalysisResult:   result,
	}
}

// resolveTables turns the request selectors into sanitized tables. Stored
// tables are fetched through the registry, fanning out when several are
// requested; inline points are bounded locally. Repairs made by sanitization
// become WARNING messages; an unresolvable table is CRITICAL.
func (e *Engine) resolveTables(req *model.AnalysisRequest) ([]model.MortalityTable, []model.AnalysisMessage, bool) {
	var msgs []model.AnalysisMessage
	addMsg := func(level, code, message string) {
		msgs = append(msgs, model.AnalysisMessage{ID: len(msgs), Level: level, Code: code, Message: message})
	}

	if len(req.Tables) == 0 {
		addMsg(model.LevelCritical, "NO_TABLES", "At least one table is required")
		return nil, msgs, true
	}

	var remote []tableregistry.Request
	var remoteIdx []int
	for i, sel := range req.Tables {
		if sel.TableID != "" && len(sel.Points) == 0 {
			remote = append(remote, tableregistry.Request{TableID: sel.TableID, MinAge: sel.MinAge, MaxAge: sel.MaxAge})
			remoteIdx = append(remoteIdx, i)
		}
	}
	fetched := make(map[int]tableregistry.Result, len(remote))
	if len(remote) > 0 {
		results := e.registry.FetchAll(remote)
		for j, idx := range remoteIdx {
			fetched[idx] = results[j]
		}
	}

	hasCritical := false
	tables := make([]model.MortalityTable, 0, len(req.Tables))
	for i := range req.Tables {
		sel := &req.Tables[i]
		name := sel.DisplayName()

		var raw []model.MortalityPoint
		if res, ok := fetched[i]; ok {
			if res.Err != nil {
				addMsg(model.LevelCritical, "TABLE_UNAVAILABLE",
					fmt.Sprintf("Table %s could not be fetched: %v", name, res.Err))
				hasCritical = true
				continue
			}
			raw = res.Points
		} else {
			raw = clipPoints(sel.Points, sel.MinAge, sel.MaxAge)
		}

		points, report := mortality.SanitizeWithReport(raw)
		if report.Clamped > 0 {
			addMsg(model.LevelWarning, "QX_CLAMPED",
				fmt.Sprintf("Table %s: %d qx value(s) clamped into [0, 1]", name, report.Clamped))
		}
		if report.Dropped > 0 {
			addMsg(model.LevelWarning, "POINTS_DROPPED",
				fmt.Sprintf("Table %s: %d point(s) with non-finite qx dropped", name, report.Dropped))
		}
		if report.Deduplicated > 0 {
			addMsg(model.LevelWarning, "DUPLICATE_AGES",
				fmt.Sprintf("Table %s: %d duplicate age(s) discarded", name, report.Deduplicated))
		}
		if len(points) == 0 {
			addMsg(model.LevelWarning, "EMPTY_TABLE",
				fmt.Sprintf("Table %s has no usable points", name))
		}

		tables = append(tables, model.MortalityTable{
			TableID: sel.TableID,
			Name:    name,
			Gender:  sel.Gender,
			Color:   sel.Color,
			Points:  points,
		})
	}
	return tables, msgs, hasCritical
}

func clipPoints(points []model.MortalityPoint, minAge, maxAge *int) []model.MortalityPoint {
	if minAge == nil && maxAge == nil {
		return points
	}
	out := make([]model.MortalityPoint, 0, len(points))
	for _, p := range points {
		if minAge != nil && p.Age < *minAge {
			continue
		}
		if maxAge != nil && p.Age > *maxAge {
			continue
		}
		out = append(out, p)
	}
	return out
}

// singleTable picks the table for single-table operations, warning when the
// caller sent more than one.
func singleTable(tables []model.MortalityTable, msgs *[]model.AnalysisMessage) model.MortalityTable {
	if len(tables) > 1 {
		*msgs = append(*msgs, model.AnalysisMessage{
			Level:   model.LevelWarning,
			Code:    "EXTRA_TABLES_IGNORED",
			Message: fmt.Sprintf("%d extra table(s) ignored; this operation uses the first table only", len(tables)-1),
		})
	}
	return tables[0]
}

// finalize renumbers message ids and guarantees a non-nil slice so the JSON
// field is [] rather than null.
func finalize(msgs []model.AnalysisMessage) []model.AnalysisMessage {
	if msgs == nil {
		return []model.AnalysisMessage{}
	}
	for i := range msgs {
		msgs[i].ID = i
	}
	return msgs
}

func newMetadata(start time.Time, outcome string) model.AnalysisMetadata {
	elapsed := time.Since(start)
	now := time.Now().UTC()
	return model.AnalysisMetadata{
		AnalysisID:          uuid.New().String(),
		AnalysisStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
		AnalysisCompletedAt: now.Format(time.RFC3339),
		AnalysisDurationMs:  elapsed.Milliseconds(),
		AnalysisOutcome:     outcome,
	}
}

func (e *Engine) logDone(op, outcome string, msgs []model.AnalysisMessage) {
	e.logger.Debug("analysis complete",
		zap.String("op", op),
		zap.String("outcome", outcome),
		zap.Int("messages", len(msgs)),
	)
}
