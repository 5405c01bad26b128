package handler

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"mortality-engine/internal/engine"
	"mortality-engine/internal/model"
)

func newTestHandler() *Handler {
	return New(engine.New(nil, nil), nil)
}

func doRequest(h *Handler, method, path, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	h.Handle(&ctx)
	return &ctx
}

func TestHealth(t *testing.T) {
	ctx := doRequest(newTestHandler(), fasthttp.MethodGet, "/health", "")

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
}

func TestCurvesEndpoint(t *testing.T) {
	body := `{"tables":[{"name":"AT-2000","points":[{"age":60,"qx":0.01},{"age":61,"qx":0.02}]}]}`
	ctx := doRequest(newTestHandler(), fasthttp.MethodPost, "/v1/curves", body)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}

	var resp model.CurvesResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AnalysisMetadata.AnalysisOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.AnalysisMetadata.AnalysisOutcome)
	}
	if resp.AnalysisResult.Curves == nil || len(resp.AnalysisResult.Curves.Survivors) != 2 {
		t.Fatalf("expected 2 lx values, got %+v", resp.AnalysisResult.Curves)
	}
	if resp.AnalysisResult.Curves.Survivors[0] != 100000 {
		t.Fatalf("expected lx[0] = 100000, got %v", resp.AnalysisResult.Curves.Survivors[0])
	}
}

func TestComparisonEndpointGapsAreNull(t *testing.T) {
	body := `{"curve_kind":"mortality","tables":[` +
		`{"name":"A","points":[{"age":60,"qx":0.01},{"age":61,"qx":0.02}]},` +
		`{"name":"B","points":[{"age":61,"qx":0.03},{"age":62,"qx":0.04}]}]}`
	ctx := doRequest(newTestHandler(), fasthttp.MethodPost, "/v1/comparison", body)

	var resp model.ComparisonResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	comp := resp.AnalysisResult.Comparison
	if comp == nil {
		t.Fatal("expected comparison in response")
	}
	if len(comp.Ages) != 3 {
		t.Fatalf("expected union ages 60-62, got %v", comp.Ages)
	}
	if comp.Series[0].Values[2].Present {
		t.Fatal("expected a gap for table A at age 62")
	}
}

func TestBadJSONBody(t *testing.T) {
	ctx := doRequest(newTestHandler(), fasthttp.MethodPost, "/v1/statistics", `{"tables":`)

	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ctx.Response.StatusCode())
	}

	var errResp model.ErrorResponse
	if err := json.Unmarshal(ctx.Response.Body(), &errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Status != fasthttp.StatusBadRequest {
		t.Fatalf("expected status 400 in body, got %d", errResp.Status)
	}
}

func TestWrongMethod(t *testing.T) {
	ctx := doRequest(newTestHandler(), fasthttp.MethodGet, "/v1/curves", "")

	if ctx.Response.StatusCode() != fasthttp.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", ctx.Response.StatusCode())
	}
}

func TestUnknownPath(t *testing.T) {
	ctx := doRequest(newTestHandler(), fasthttp.MethodGet, "/v1/reserves", "")

	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", ctx.Response.StatusCode())
	}
}
