package router

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/tasks/api/handler"
	"github.com/fastygo/tasks/api/transport"
	"github.com/fastygo/tasks/pkg/httpcontext"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, logger *zap.Logger) *router.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := router.New()
	r.RedirectTrailingSlash = false

	r.GET("/health", handlers.Health.Check)

	r.GET("/tasks", handlers.Task.ListTasks)
	r.POST("/tasks", handlers.Task.CreateTask)
	r.GET("/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/tasks/{id}", handlers.Task.DeleteTask)

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		writeMessage(ctx, http.StatusNotFound, "Not Found")
	}
	r.MethodNotAllowed = func(ctx *fasthttp.RequestCtx) {
		writeMessage(ctx, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
	r.PanicHandler = func(ctx *fasthttp.RequestCtx, recovered interface{}) {
		logger.Error("handler panic",
			zap.String("request_id", httpcontext.RequestID(ctx)),
			zap.String("method", string(ctx.Method())),
			zap.String("path", string(ctx.Path())),
			zap.String("panic", fmt.Sprint(recovered)),
			zap.Stack("stack"))
		writeMessage(ctx, http.StatusInternalServerError, "Internal server error")
	}

	return r
}

func writeMessage(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(transport.NewError(message))
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
