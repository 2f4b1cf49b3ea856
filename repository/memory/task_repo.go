package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/repository"
)

// Option customizes a TaskRepository.
type Option func(*TaskRepository)

// WithClock overrides the time source used for created_at / updated_at.
func WithClock(now func() time.Time) Option {
	return func(r *TaskRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// TaskRepository keeps tasks in process memory. A single RWMutex guards the
// map, the insertion order and the id counter.
type TaskRepository struct {
	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	order  []int64
	nextID int64
	now    func() time.Time
}

// NewTaskRepository returns an empty in-memory store whose ids start at 1.
func NewTaskRepository(opts ...Option) *TaskRepository {
	r := &TaskRepository{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	snapshot := task.Clone()
	return &snapshot, nil
}

// List returns tasks in insertion order. The slice is never nil.
func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		tasks = append(tasks, r.tasks[id].Clone())
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	task := &domain.Task{
		ID:        r.nextID,
		Title:     input.Title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Description != nil {
		desc := *input.Description
		task.Description = &desc
	}

	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	r.nextID++

	snapshot := task.Clone()
	return &snapshot, nil
}

func (r *TaskRepository) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	patch.Apply(task)
	task.Touch(r.now())

	snapshot := task.Clone()
	return &snapshot, nil
}

// Delete removes the task. Its id is never handed out again.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	if idx := slices.Index(r.order, id); idx >= 0 {
		r.order = slices.Delete(r.order, idx, idx+1)
	}
	return nil
}

func (r *TaskRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks), nil
}
