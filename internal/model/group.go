package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const DefaultGroupTitle = "New group"

// Group is an ordered collection of todos tied to one tag and, optionally,
// one external asset.
type Group struct {
	ID    string
	Title string
	Note  string
	Asset AssetRef
	// Visible is derived by the search filter and never persisted.
	Visible bool

	tag   Ref
	todos []*Todo
}

func NewGroup(title string, tag Ref) *Group {
	return &Group{
		ID:      uuid.NewString(),
		Title:   title,
		Visible: true,
		tag:     tag,
	}
}

func DefaultGroup() *Group {
	return NewGroup(DefaultGroupTitle, Ref{})
}

// RestoreGroup rebuilds a persisted group with its todos in stored order.
func RestoreGroup(id, title, note string, tag Ref, asset AssetRef, todos []*Todo) *Group {
	g := NewGroup(title, tag)
	if id != "" {
		g.ID = id
	}
	g.Note = note
	g.Asset = asset
	g.todos = append(g.todos, todos...)
	return g
}

func (g *Group) TagRef() Ref { return g.tag }

// Tag resolves the group's tag, refreshing a stale ref in place.
func (g *Group) Tag(reg *Registry) Tag {
	t, ref := reg.ResolveTag(g.tag)
	g.tag = ref
	return t
}

func (g *Group) SetTag(reg *Registry, i int) {
	g.tag = reg.Ref(KindTag, i)
}

// Todos returns the group's todos in display order. The slice is a copy; the
// todos are shared.
func (g *Group) Todos() []*Todo {
	return append([]*Todo(nil), g.todos...)
}

func (g *Group) Len() int { return len(g.todos) }

func (g *Group) TodoAt(i int) *Todo {
	if i < 0 || i >= len(g.todos) {
		return nil
	}
	return g.todos[i]
}

func (g *Group) IndexOf(t *Todo) int {
	for i, cur := range g.todos {
		if cur == t {
			return i
		}
	}
	return -1
}

func (g *Group) AddTodo(t *Todo) {
	if t == nil {
		return
	}
	g.todos = append(g.todos, t)
}

// RemoveTodo removes t by identity.
func (g *Group) RemoveTodo(t *Todo) bool {
	i := g.IndexOf(t)
	if i < 0 {
		return false
	}
	g.todos = append(g.todos[:i], g.todos[i+1:]...)
	return true
}

// MoveTodo removes the todo at from and inserts it at to, where to is a
// position in the sequence after removal.
func (g *Group) MoveTodo(from, to int) bool {
	n := len(g.todos)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	t := g.todos[from]
	g.todos = append(g.todos[:from], g.todos[from+1:]...)
	g.todos = append(g.todos, nil)
	copy(g.todos[to+1:], g.todos[to:])
	g.todos[to] = t
	return true
}

// NextTodoTitle is the placeholder title for a new todo, e.g. "TODO 3".
func (g *Group) NextTodoTitle(tag Tag) string {
	return fmt.Sprintf("%s %d", tag.Name, len(g.todos)+1)
}

// NewTodoFor creates a todo with the session defaults (second progress and
// second priority entries) and appends it.
func (g *Group) NewTodoFor(reg *Registry, now time.Time) *Todo {
	t := NewTodo(g.NextTodoTitle(g.Tag(reg)), "", reg.Ref(KindProgress, 1), reg.Ref(KindPriority, 1), nil, now)
	g.AddTodo(t)
	return t
}
