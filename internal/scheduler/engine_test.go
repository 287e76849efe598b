package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/todotree/internal/model"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(DueEvent{TodoID: "later", DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(DueEvent{TodoID: "sooner", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TodoID != "sooner" || second.TodoID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TodoID, second.TodoID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	due := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(DueEvent{
			TodoID: string(rune('a' + i)),
			DueAt:  due,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesEvent(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(DueEvent{TodoID: "bad"}); !errors.Is(err, ErrInvalidDueTime) {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
	if err := engine.Schedule(DueEvent{DueAt: time.Now()}); !errors.Is(err, ErrMissingTodoID) {
		t.Fatalf("expected ErrMissingTodoID, got %v", err)
	}
	engine.Stop()
	if err := engine.Schedule(DueEvent{TodoID: "x", DueAt: time.Now()}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestScheduleReplacesPendingEventForSameTodo(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(DueEvent{TodoID: "t1", Title: "old", DueAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(DueEvent{TodoID: "t1", Title: "new", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 pending event, got %d", engine.Pending())
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Title != "new" {
		t.Fatalf("expected rescheduled event, got %q", ev.Title)
	}
}

func TestCancelRemovesPendingEvent(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	_ = engine.Schedule(DueEvent{TodoID: "keep", DueAt: now.Add(60 * time.Millisecond)})
	_ = engine.Schedule(DueEvent{TodoID: "drop", DueAt: now.Add(20 * time.Millisecond)})

	if !engine.Cancel("drop") {
		t.Fatal("cancel reported no pending event")
	}
	if engine.Cancel("drop") {
		t.Fatal("second cancel should report false")
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.TodoID != "keep" {
		t.Fatalf("cancelled event fired: %s", ev.TodoID)
	}
}

func TestSyncStoreSchedulesFutureDueDates(t *testing.T) {
	reg := model.NewRegistry()
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	g := model.NewGroup("Level", reg.Ref(model.KindTag, 0))
	overdue := model.NewTodo("overdue", "", reg.Ref(model.KindProgress, 1), reg.Ref(model.KindPriority, 1), &past, now)
	upcoming := model.NewTodo("upcoming", "", reg.Ref(model.KindProgress, 1), reg.Ref(model.KindPriority, 1), &future, now)
	undated := model.NewTodo("undated", "", reg.Ref(model.KindProgress, 1), reg.Ref(model.KindPriority, 1), nil, now)
	g.AddTodo(overdue)
	g.AddTodo(upcoming)
	g.AddTodo(undated)
	store := model.NewStore(g)

	engine := NewEngine(4)
	if got := engine.SyncStore(store, now); got != 1 {
		t.Fatalf("scheduled %d events, want 1", got)
	}

	upcoming.EndAt = nil
	engine.SyncStore(store, now)
	if engine.Pending() != 0 {
		t.Fatalf("expected stale event cancelled, %d pending", engine.Pending())
	}
}

func TestEventForCopiesTodoFields(t *testing.T) {
	reg := model.NewRegistry()
	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("x", 3600))
	g := model.NewGroup("Audio", reg.Ref(model.KindTag, 0))
	todo := model.NewTodo("Mix", "", reg.Ref(model.KindProgress, 0), reg.Ref(model.KindPriority, 0), &due, due)

	ev := EventFor(g, todo)
	if ev.TodoID != todo.ID || ev.GroupID != g.ID || ev.Title != "Mix" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.DueAt.Location() != time.UTC || !ev.DueAt.Equal(due) {
		t.Fatalf("due time not normalised to UTC: %v", ev.DueAt)
	}
}

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}
