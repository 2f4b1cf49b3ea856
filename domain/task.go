package domain

import (
	"errors"
	"strings"
	"time"
)

// Task is a single to-do record owned by the task store.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a copy that shares no mutable state with t.
func (t Task) Clone() Task {
	out := t
	out.Description = cloneString(t.Description)
	return out
}

// Touch refreshes UpdatedAt, never letting it fall behind CreatedAt.
func (t *Task) Touch(now time.Time) {
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

// TaskInput carries the fields accepted on creation.
type TaskInput struct {
	Title       string
	Description *string
}

// Validate checks the creation payload. Description is optional.
func (in TaskInput) Validate() error {
	if err := validateTitle(in.Title); err != nil {
		return Invalid(err)
	}
	return nil
}

// Optional records whether a nullable field was present in a patch.
type Optional struct {
	Set   bool
	Value *string
}

// TaskPatch is a partial update: nil / unset fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description Optional
	Completed   *bool
}

// Validate checks only the fields present in the patch.
func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return Invalid(err)
		}
	}
	return nil
}

// Empty reports whether the patch carries no fields.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && !p.Description.Set && p.Completed == nil
}

// Apply merges the present fields into t. Timestamps are the caller's job.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description.Set {
		t.Description = cloneString(p.Description.Value)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

var errBlankTitle = errors.New("title must not be empty")

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errBlankTitle
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
