package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasks/api/transport"
	"github.com/fastygo/tasks/pkg/httpcontext"
	taskUC "github.com/fastygo/tasks/usecase/task"
)

type HealthHandler struct {
	baseHandler
	tasks *taskUC.UseCase
}

func NewHealthHandler(tasks *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		tasks:       tasks,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, err := h.tasks.CountTasks(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.HealthResponse{
		Status:    "ok",
		Tasks:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
