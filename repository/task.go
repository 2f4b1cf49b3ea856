package repository

import (
	"context"

	"github.com/fastygo/tasks/domain"
)

// TaskRepository owns task identity, storage and lifecycle timestamps.
// Returned tasks are snapshots; mutating them does not touch the store.
type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
