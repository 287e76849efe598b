package model

import (
	"time"

	"github.com/google/uuid"
)

const DefaultTodoTitle = "new todo"

// Todo is a single task record owned by a Group.
type Todo struct {
	ID          string
	Title       string
	Description string
	EndAt       *time.Time
	// Visible is derived by the search filter and never persisted.
	Visible bool

	progress  Ref
	priority  Ref
	createdAt time.Time
}

// NewTodo is the factory used when a user creates a todo.
func NewTodo(title, description string, progress, priority Ref, endAt *time.Time, now time.Time) *Todo {
	return &Todo{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		EndAt:       copyTime(endAt),
		Visible:     true,
		progress:    progress,
		priority:    priority,
		createdAt:   now,
	}
}

// DefaultTodo fills a slot with placeholder values.
func DefaultTodo(now time.Time) *Todo {
	return &Todo{
		ID:        uuid.NewString(),
		Title:     DefaultTodoTitle,
		Visible:   true,
		createdAt: now,
	}
}

// RestoreTodo rebuilds a persisted todo, keeping its original creation time.
func RestoreTodo(id, title, description string, progress, priority Ref, createdAt time.Time, endAt *time.Time) *Todo {
	if id == "" {
		id = uuid.NewString()
	}
	return &Todo{
		ID:          id,
		Title:       title,
		Description: description,
		EndAt:       copyTime(endAt),
		Visible:     true,
		progress:    progress,
		priority:    priority,
		createdAt:   createdAt,
	}
}

func (t *Todo) CreatedAt() time.Time { return t.createdAt }

func (t *Todo) ProgressRef() Ref { return t.progress }

func (t *Todo) PriorityRef() Ref { return t.priority }

// Priority resolves the todo's priority, refreshing a stale ref in place.
func (t *Todo) Priority(reg *Registry) Priority {
	p, ref := reg.ResolvePriority(t.priority)
	t.priority = ref
	return p
}

func (t *Todo) Progress(reg *Registry) Progress {
	p, ref := reg.ResolveProgress(t.progress)
	t.progress = ref
	return p
}

func (t *Todo) SetPriority(reg *Registry, i int) {
	t.priority = reg.Ref(KindPriority, i)
}

func (t *Todo) SetProgress(reg *Registry, i int) {
	t.progress = reg.Ref(KindProgress, i)
}

// Overdue reports whether the todo has an end date at or before now.
func (t *Todo) Overdue(now time.Time) bool {
	return t.EndAt != nil && !t.EndAt.After(now)
}

func copyTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
