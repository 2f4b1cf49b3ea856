package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasks/api/transport"
	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/pkg/httpcontext"
	taskUC "github.com/fastygo/tasks/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Create task
// @Tags tasks
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	input, err := transport.DecodeTaskInput(ctx.PostBody())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	created, err := h.uc.CreateTask(stdCtx, input)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, created)
}

// @Summary Get task
// @Tags tasks
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	h.withTaskID(ctx, func(stdCtx context.Context, id int64) {
		task, err := h.uc.GetTask(stdCtx, id)
		if err != nil {
			h.respondError(stdCtx, ctx, err)
			return
		}
		h.respondJSON(ctx, http.StatusOK, task)
	})
}

// @Summary Update task
// @Tags tasks
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	h.withTaskID(ctx, func(stdCtx context.Context, id int64) {
		patch, err := transport.DecodeTaskPatch(ctx.PostBody())
		if err != nil {
			h.respondError(stdCtx, ctx, err)
			return
		}

		updated, err := h.uc.UpdateTask(stdCtx, id, patch)
		if err != nil {
			h.respondError(stdCtx, ctx, err)
			return
		}
		h.respondJSON(ctx, http.StatusOK, updated)
	})
}

// @Summary Delete task
// @Tags tasks
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	h.withTaskID(ctx, func(stdCtx context.Context, id int64) {
		if err := h.uc.DeleteTask(stdCtx, id); err != nil {
			h.respondError(stdCtx, ctx, err)
			return
		}
		h.respondNoContent(ctx)
	})
}

// withTaskID parses the {id} path parameter and runs fn with a request context.
func (h *TaskHandler) withTaskID(ctx *fasthttp.RequestCtx, fn func(stdCtx context.Context, id int64)) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := parseTaskID(ctx.UserValue("id"))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	fn(stdCtx, id)
}

var errMissingID = errors.New("missing task id")

func parseTaskID(value interface{}) (int64, error) {
	raw, _ := value.(string)
	if raw == "" {
		return 0, domain.Invalid(errMissingID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.Invalid(fmt.Errorf("task id %q: %w", raw, err))
	}
	return id, nil
}
