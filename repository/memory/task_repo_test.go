package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasks/domain"
)

// stepClock returns a clock that advances by one second on every call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(WithClock(stepClock()))

	first, err := repo.Create(ctx, domain.TaskInput{Title: "Test task", Description: strPtr("Test description")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Test task", first.Title)
	require.NotNil(t, first.Description)
	assert.Equal(t, "Test description", *first.Description)
	assert.False(t, first.Completed)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	second, err := repo.Create(ctx, domain.TaskInput{Title: "Minimal task"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Nil(t, second.Description)
}

func TestCreateCopiesDescription(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	desc := "original"
	created, err := repo.Create(ctx, domain.TaskInput{Title: "t", Description: &desc})
	require.NoError(t, err)
	desc = "changed by caller"

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", *got.Description)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewTaskRepository()
	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	created, err := repo.Create(ctx, domain.TaskInput{Title: "stable", Description: strPtr("d")})
	require.NoError(t, err)

	created.Title = "mutated"
	*created.Description = "mutated"

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	listed[0].Completed = true

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "stable", got.Title)
	assert.Equal(t, "d", *got.Description)
	assert.False(t, got.Completed)
}

func TestListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	for i := 1; i <= 5; i++ {
		_, err := repo.Create(ctx, domain.TaskInput{Title: fmt.Sprintf("Task %d", i)})
		require.NoError(t, err)
	}

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 5)
	for i, task := range tasks {
		assert.Equal(t, fmt.Sprintf("Task %d", i+1), task.Title)
	}

	require.NoError(t, repo.Delete(ctx, 2))
	_, err = repo.Create(ctx, domain.TaskInput{Title: "Task 6"})
	require.NoError(t, err)

	tasks, err = repo.List(ctx)
	require.NoError(t, err)
	var ids []int64
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int64{1, 3, 4, 5, 6}, ids)
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(WithClock(stepClock()))

	created, err := repo.Create(ctx, domain.TaskInput{Title: "Test task", Description: strPtr("Test description")})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, domain.TaskPatch{
		Title:     strPtr("Updated task"),
		Completed: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Updated task", updated.Title)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Test description", *updated.Description)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	cleared, err := repo.Update(ctx, created.ID, domain.TaskPatch{Description: domain.Optional{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
	assert.Equal(t, "Updated task", cleared.Title)
	assert.True(t, cleared.Completed)
}

func TestUpdateNeverRewindsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(-time.Hour)
	}
	repo := NewTaskRepository(WithClock(clock))

	created, err := repo.Create(ctx, domain.TaskInput{Title: "skew"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, domain.TaskPatch{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewTaskRepository()
	_, err := repo.Update(context.Background(), 42, domain.TaskPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	created, err := repo.Create(ctx, domain.TaskInput{Title: "Task to delete"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrTaskNotFound)
	_, err = repo.Update(ctx, created.ID, domain.TaskPatch{Completed: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	first, err := repo.Create(ctx, domain.TaskInput{Title: "first"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first.ID))

	second, err := repo.Create(ctx, domain.TaskInput{Title: "second"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.ID, first.ID)
}

func TestConcurrentCreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	const workers = 16
	const perWorker = 50

	ids := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				task, err := repo.Create(ctx, domain.TaskInput{Title: fmt.Sprintf("w%d-%d", w, i)})
				if err != nil {
					t.Errorf("create: %v", err)
					return
				}
				ids <- task.ID
			}
		}(w)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, workers*perWorker)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, count)

	next, err := repo.Create(ctx, domain.TaskInput{Title: "after"})
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker+1), next.ID)
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()

	created, err := repo.Create(ctx, domain.TaskInput{Title: "shared"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.Update(ctx, created.ID, domain.TaskPatch{Completed: boolPtr(i%2 == 0)})
			_, _ = repo.GetByID(ctx, created.ID)
			_, _ = repo.List(ctx)
		}(i)
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "shared", got.Title)
}
