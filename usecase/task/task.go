package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/pkg/logger"
	"github.com/fastygo/tasks/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.List(ctx)
}

func (uc *UseCase) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CountTasks(ctx context.Context) (int, error) {
	return uc.tasks.Count(ctx)
}

func (uc *UseCase) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	created, err := uc.tasks.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	logger.WithRequestID(ctx, uc.logger).Info("task created", zap.Int64("task_id", created.ID))
	return created, nil
}

// UpdateTask validates the patch before looking the task up, so an invalid
// patch against a missing id reports the validation failure.
func (uc *UseCase) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	updated, err := uc.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	logger.WithRequestID(ctx, uc.logger).Info("task updated",
		zap.Int64("task_id", id),
		zap.Bool("title", patch.Title != nil),
		zap.Bool("description", patch.Description.Set),
		zap.Bool("completed", patch.Completed != nil))
	return updated, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id int64) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	logger.WithRequestID(ctx, uc.logger).Info("task deleted", zap.Int64("task_id", id))
	return nil
}
