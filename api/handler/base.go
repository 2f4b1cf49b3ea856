package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasks/api/transport"
	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/pkg/httpcontext"
	"github.com/fastygo/tasks/pkg/logger"
)

const internalErrorMessage = "Internal server error"

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(transport.NewError(internalErrorMessage))
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondNoContent(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(http.StatusNoContent)
	ctx.ResetBody()
}

// respondError maps err onto a status and a client-safe message. The cause of
// validation and internal failures is logged, never echoed.
func (h baseHandler) respondError(stdCtx context.Context, ctx *fasthttp.RequestCtx, err error) {
	status, message := mapError(err)
	log := logger.WithRequestID(stdCtx, h.logger)
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("request failed", zap.Error(err))
	default:
		log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(message))
}

func mapError(err error) (int, string) {
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		return http.StatusInternalServerError, internalErrorMessage
	}
	switch dErr.Code {
	case domain.ErrCodeInvalid:
		return http.StatusBadRequest, domain.ErrInvalidInput.Message
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, dErr.Message
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
