// Package reorder turns pointer motion over todo rows into a move within the
// owning group.
package reorder

import (
	"math"

	"github.com/sandeepkv93/todotree/internal/model"
)

type State int

const (
	StateIdle State = iota
	StatePressed
	StateDragging
)

func (s State) String() string {
	switch s {
	case StatePressed:
		return "pressed"
	case StateDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Engine tracks one press-drag-release interaction. The group is only
// mutated on Commit.
type Engine struct {
	RowHeight float64

	state     State
	group     *model.Group
	start     int
	startY    float64
	expected  int
	suspended bool
}

func NewEngine(rowHeight float64) *Engine {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	return &Engine{RowHeight: rowHeight, start: -1, expected: -1}
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Active() bool { return e.state != StateIdle }

// Start is the pressed row, or -1 when idle.
func (e *Engine) Start() int { return e.start }

// Expected is the projected drop row, or -1 when idle.
func (e *Engine) Expected() int { return e.expected }

func (e *Engine) Group() *model.Group { return e.group }

// SetSuspended blocks new presses and drops any in-flight drag. Row positions
// do not map to indices while a search hides rows.
func (e *Engine) SetSuspended(v bool) {
	e.suspended = v
	if v {
		e.Cancel()
	}
}

func (e *Engine) Suspended() bool { return e.suspended }

// Begin records a press on row index at vertical position y.
func (e *Engine) Begin(g *model.Group, index int, y float64) bool {
	if e.suspended || g == nil || index < 0 || index >= g.Len() {
		return false
	}
	e.state = StatePressed
	e.group = g
	e.start = index
	e.startY = y
	e.expected = index
	return true
}

// Update projects the drop row for pointer position y without touching the
// group.
func (e *Engine) Update(y float64) int {
	if e.state == StateIdle {
		return -1
	}
	e.state = StateDragging
	e.expected = e.project(y)
	return e.expected
}

func (e *Engine) project(y float64) int {
	delta := int(math.Floor((y - e.startY) / e.RowHeight))
	last := e.group.Len() - 1
	idx := e.start + delta
	if idx > last {
		idx = last
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Commit moves the pressed todo to the projected row and returns to Idle.
// It reports whether a press was active and the move applied.
func (e *Engine) Commit() bool {
	if e.state == StateIdle {
		return false
	}
	g, from, to := e.group, e.start, e.expected
	e.Cancel()
	if last := g.Len() - 1; to > last {
		to = last
	}
	return g.MoveTodo(from, to)
}

// Cancel drops the interaction without moving anything.
func (e *Engine) Cancel() {
	e.state = StateIdle
	e.group = nil
	e.start = -1
	e.expected = -1
	e.startY = 0
}
