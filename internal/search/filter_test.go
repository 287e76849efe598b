package search

import (
	"testing"
	"time"

	"github.com/sandeepkv93/todotree/internal/model"
)

type fixture struct {
	reg    *model.Registry
	store  *model.Store
	group  *model.Group
	fix    *model.Todo
	update *model.Todo
}

func newFixture() fixture {
	reg := model.NewRegistry()
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	g := model.NewGroup("Player", reg.Ref(model.KindTag, 0))
	fix := model.NewTodo("Fix crash", "", reg.Ref(model.KindProgress, 1), reg.Ref(model.KindPriority, 1), nil, now)
	upd := model.NewTodo("Update docs", "", reg.Ref(model.KindProgress, 1), reg.Ref(model.KindPriority, 1), nil, now)
	g.AddTodo(fix)
	g.AddTodo(upd)
	return fixture{reg: reg, store: model.NewStore(g), group: g, fix: fix, update: upd}
}

func TestSearchEndToEnd(t *testing.T) {
	fx := newFixture()
	var f Filter

	if !f.Apply(fx.store.Groups(), "fix") {
		t.Fatal("expected a rescan for a new query")
	}
	if !fx.fix.Visible || fx.update.Visible || !fx.group.Visible {
		t.Fatalf("after 'fix': fix=%v update=%v group=%v", fx.fix.Visible, fx.update.Visible, fx.group.Visible)
	}
	if !f.Active() {
		t.Fatal("filter should be active")
	}

	f.Apply(fx.store.Groups(), "")
	if !fx.fix.Visible || !fx.update.Visible || !fx.group.Visible {
		t.Fatal("clearing the query must restore visibility")
	}
	if f.Active() {
		t.Fatal("filter should be inactive after clearing")
	}
}

func TestSearchIsIdempotentAndMemoized(t *testing.T) {
	fx := newFixture()
	var f Filter

	f.Apply(fx.store.Groups(), "DOCS")
	first := []bool{fx.fix.Visible, fx.update.Visible, fx.group.Visible}

	// Flip a flag behind the filter's back: an unchanged query must not rescan.
	fx.fix.Visible = true
	if f.Apply(fx.store.Groups(), "DOCS") {
		t.Fatal("unchanged query should not rescan")
	}
	fx.fix.Visible = first[0]

	f.Reset()
	if !f.Apply(fx.store.Groups(), "DOCS") {
		t.Fatal("reset should force a rescan")
	}
	second := []bool{fx.fix.Visible, fx.update.Visible, fx.group.Visible}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("flags differ between identical queries: %v vs %v", first, second)
		}
	}
	if first[0] || !first[1] || !first[2] {
		t.Fatalf("unexpected flags for 'DOCS': %v", first)
	}
}

func TestSearchHidesGroupsWithoutMatches(t *testing.T) {
	fx := newFixture()
	empty := model.NewGroup("Empty", fx.reg.Ref(model.KindTag, 1))
	fx.store.AddGroup(empty)
	var f Filter

	f.Apply(fx.store.Groups(), "nothing matches this")
	if fx.group.Visible || empty.Visible {
		t.Fatal("groups without matching todos must be hidden")
	}
	if fx.fix.Visible || fx.update.Visible {
		t.Fatal("no todo should match")
	}
}

func TestSearchTrimsLeadingWhitespace(t *testing.T) {
	fx := newFixture()
	var f Filter

	f.Apply(fx.store.Groups(), "   crash")
	if f.Query() != "crash" {
		t.Fatalf("query = %q, want %q", f.Query(), "crash")
	}
	if !fx.fix.Visible || fx.update.Visible {
		t.Fatal("leading whitespace should be ignored")
	}
	if f.Apply(fx.store.Groups(), "crash") {
		t.Fatal("normalized query equals the previous one")
	}
	f.Apply(fx.store.Groups(), "   ")
	if f.Active() || !fx.update.Visible {
		t.Fatal("whitespace-only query cancels the search")
	}
}
