package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/todotree/internal/model"
)

var (
	ErrInvalidDueTime = errors.New("scheduler: invalid due time")
	ErrMissingTodoID  = errors.New("scheduler: missing todo id")
	ErrStopped        = errors.New("scheduler: engine stopped")
)

// DueEvent fires when a todo's end date is reached.
type DueEvent struct {
	TodoID  string
	GroupID string
	Title   string
	DueAt   time.Time
}

type queueItem struct {
	event DueEvent
	index int
}

type dueQueue []*queueItem

func (q dueQueue) Len() int { return len(q) }

func (q dueQueue) Less(i, j int) bool {
	return q[i].event.DueAt.Before(q[j].event.DueAt)
}

func (q dueQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *dueQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *dueQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[0 : n-1]
	return item
}

// Engine holds at most one pending event per todo and emits each on C once
// its due time passes. Sends never block; events that find the buffer full
// are counted in Dropped.
type Engine struct {
	mu      sync.Mutex
	queue   dueQueue
	byTodo  map[string]*queueItem
	out     chan DueEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(dueQueue, 0),
		byTodo: make(map[string]*queueItem),
		out:    make(chan DueEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan DueEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues ev, replacing any pending event for the same todo.
func (e *Engine) Schedule(ev DueEvent) error {
	if ev.TodoID == "" {
		return ErrMissingTodoID
	}
	if ev.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	if item, ok := e.byTodo[ev.TodoID]; ok {
		item.event = ev
		heap.Fix(&e.queue, item.index)
	} else {
		item := &queueItem{event: ev}
		heap.Push(&e.queue, item)
		e.byTodo[ev.TodoID] = item
	}
	e.signalWakeup()
	return nil
}

// Cancel drops the pending event for todoID. It reports whether one existed.
func (e *Engine) Cancel(todoID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.byTodo[todoID]
	if !ok {
		return false
	}
	heap.Remove(&e.queue, item.index)
	delete(e.byTodo, todoID)
	e.signalWakeup()
	return true
}

// Pending returns the number of queued events.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// SyncStore schedules every todo in store whose end date is after now and
// cancels events for todos that no longer have one. It returns the number of
// events scheduled.
func (e *Engine) SyncStore(store *model.Store, now time.Time) int {
	live := make(map[string]struct{})
	scheduled := 0
	for _, g := range store.Groups() {
		for _, t := range g.Todos() {
			if t.EndAt == nil || !t.EndAt.After(now) {
				continue
			}
			live[t.ID] = struct{}{}
			if err := e.Schedule(EventFor(g, t)); err == nil {
				scheduled++
			}
		}
	}

	e.mu.Lock()
	var stale []string
	for id := range e.byTodo {
		if _, ok := live[id]; !ok {
			stale = append(stale, id)
		}
	}
	e.mu.Unlock()
	for _, id := range stale {
		e.Cancel(id)
	}
	return scheduled
}

// EventFor builds the due event for t. The caller checks EndAt is set.
func EventFor(g *model.Group, t *model.Todo) DueEvent {
	ev := DueEvent{TodoID: t.ID, GroupID: g.ID, Title: t.Title}
	if t.EndAt != nil {
		ev.DueAt = t.EndAt.UTC()
	}
	return ev
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, ev := range e.popDue(time.Now().UTC()) {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (DueEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return DueEvent{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []DueEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]DueEvent, 0)
	for len(e.queue) > 0 {
		if e.queue[0].event.DueAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(*queueItem)
		delete(e.byTodo, item.event.TodoID)
		out = append(out, item.event)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
