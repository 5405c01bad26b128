package handler

import (
	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"mortality-engine/internal/engine"
	"mortality-engine/internal/model"
)

type Handler struct {
	engine *engine.Engine
	logger *zap.Logger
}

func New(eng *engine.Engine, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: eng, logger: logger}
}

// Handle routes all engine endpoints.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/health":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/v1/curves":
		h.analysis(ctx, func(req *model.AnalysisRequest) interface{} {
			return h.engine.Curves(req)
		})
	case "/v1/statistics":
		h.analysis(ctx, func(req *model.AnalysisRequest) interface{} {
			return h.engine.Statistics(req)
		})
	case "/v1/comparison":
		h.analysis(ctx, func(req *model.AnalysisRequest) interface{} {
			return h.engine.Comparison(req)
		})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) analysis(ctx *fasthttp.RequestCtx, run func(*model.AnalysisRequest) interface{}) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.AnalysisRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.logger.Debug("invalid request body",
			zap.String("op", "handler"),
			zap.Error(err),
		)
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, run(&req))
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
