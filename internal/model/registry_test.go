package model

import (
	"testing"
	"time"
)

func assertDense(t *testing.T, reg *Registry) {
	t.Helper()
	for _, kind := range []Kind{KindTag, KindPriority, KindProgress} {
		for i := 0; i < reg.Len(kind); i++ {
			if got := reg.Lookup(kind, i).Index; got != i {
				t.Fatalf("%s[%d].Index = %d, want %d", kind, i, got, i)
			}
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := NewRegistry()
	if got := reg.Names(KindTag); len(got) != 2 || got[0] != "TODO" || got[1] != "FIX ME" {
		t.Fatalf("unexpected default tags: %v", got)
	}
	if got := reg.Names(KindPriority); len(got) != 4 || got[0] != "Default" || got[3] != "Major" {
		t.Fatalf("unexpected default priorities: %v", got)
	}
	if got := reg.Names(KindProgress); len(got) != 4 || got[1] != "Active" || got[3] != "Completed" {
		t.Fatalf("unexpected default progresses: %v", got)
	}
	assertDense(t, reg)
}

func TestReindexRestoresDenseIndices(t *testing.T) {
	reg := RestoreRegistry(
		[]Tag{{Name: "a", Index: 7}, {Name: "b", Index: 7}, {Name: "c", Index: 0}},
		[]Priority{{Name: "Default", Index: 3}},
		[]Progress{{Status: "Default", Index: 1}, {Status: "Done", Index: 1}},
	)
	gen := reg.Generation()

	if !reg.Reindex() {
		t.Fatal("expected reindex to report a change")
	}
	assertDense(t, reg)
	if reg.Generation() <= gen {
		t.Fatalf("generation did not advance: %d -> %d", gen, reg.Generation())
	}

	gen = reg.Generation()
	if reg.Reindex() {
		t.Fatal("expected reindex of a dense registry to be a no-op")
	}
	if reg.Generation() != gen {
		t.Fatalf("no-op reindex bumped generation: %d -> %d", gen, reg.Generation())
	}
}

func TestMutationsKeepRegistryDense(t *testing.T) {
	reg := NewRegistry()
	reg.AddTag("BUG", ColorWhite)
	reg.AddTag("IDEA", ColorWhite)
	reg.MoveTag(3, 0)
	reg.RemoveTag(1)
	reg.AddPriority("Blocker", ColorBlack)
	reg.AddProgress("Review", ColorBlack)
	reg.RemoveProgress(2)
	assertDense(t, reg)

	if got := reg.Names(KindTag); len(got) != 3 || got[0] != "IDEA" || got[1] != "FIX ME" || got[2] != "BUG" {
		t.Fatalf("unexpected tags after mutations: %v", got)
	}
}

func TestLookupFallsBackToFirstEntry(t *testing.T) {
	reg := NewRegistry()
	reg.AddTag("THIRD", ColorWhite)

	cases := []int{999, 3, -1}
	for _, i := range cases {
		got := reg.Lookup(KindTag, i)
		if got.Index != 0 || got.Label != "TODO" {
			t.Fatalf("Lookup(tag, %d) = %+v, want index 0", i, got)
		}
	}
	if p := reg.PriorityAt(42); p.Name != "Default" {
		t.Fatalf("PriorityAt(42) = %+v, want Default", p)
	}
	if p := reg.ProgressAt(-5); p.Status != "Default" {
		t.Fatalf("ProgressAt(-5) = %+v, want Default", p)
	}
}

func TestRemoveTagKeepsAtLeastTwo(t *testing.T) {
	reg := NewRegistry()
	gen := reg.Generation()
	for i := 0; i < 2; i++ {
		if reg.RemoveTag(i) {
			t.Fatalf("RemoveTag(%d) succeeded with only two tags", i)
		}
	}
	if reg.Len(KindTag) != 2 {
		t.Fatalf("tag count = %d, want 2", reg.Len(KindTag))
	}
	if reg.Generation() != gen {
		t.Fatal("rejected removal must not publish a new generation")
	}

	reg.AddTag("EXTRA", ColorWhite)
	if !reg.RemoveTag(0) {
		t.Fatal("expected removal with three tags to succeed")
	}
	if reg.Len(KindTag) != 2 {
		t.Fatalf("tag count = %d, want 2", reg.Len(KindTag))
	}
}

func TestDefaultPriorityAndProgressAreNotRemovable(t *testing.T) {
	reg := RestoreRegistry(nil, []Priority{{Name: "Default"}}, []Progress{{Status: "Default"}})
	if reg.RemovePriority(0) || reg.RemoveProgress(0) {
		t.Fatal("Default entries must not be removable")
	}
	if reg.Len(KindPriority) != 1 || reg.Len(KindProgress) != 1 {
		t.Fatal("lists shrank below one entry")
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	reg := NewRegistry()
	before := reg.Snapshot()
	reg.RenameTag(0, "LATER")

	if before.TagAt(0).Name != "TODO" {
		t.Fatalf("old snapshot changed: %+v", before.TagAt(0))
	}
	if reg.TagAt(0).Name != "LATER" {
		t.Fatalf("rename not visible: %+v", reg.TagAt(0))
	}
	if reg.Generation() != before.Generation()+1 {
		t.Fatalf("generation = %d, want %d", reg.Generation(), before.Generation()+1)
	}

	tags := reg.Snapshot().Tags()
	tags[0].Name = "mutated"
	if reg.TagAt(0).Name != "LATER" {
		t.Fatal("Tags() leaked internal storage")
	}
}

func TestRefStaleness(t *testing.T) {
	reg := NewRegistry()
	ref := reg.Ref(KindTag, 1)
	if ref.Stale(reg.Generation()) {
		t.Fatal("fresh ref reported stale")
	}
	reg.AddTag("NEW", ColorWhite)
	if !ref.Stale(reg.Generation()) {
		t.Fatal("ref should be stale after a mutation")
	}
	if got := reg.Ref(KindTag, 10); got.Index != 0 {
		t.Fatalf("out-of-range ref index = %d, want 0", got.Index)
	}
}

func TestRefsIntoDefaultRegistryKeepPosition(t *testing.T) {
	reg := NewRegistry()
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

	crash := NewGroup("Crash", reg.Ref(KindTag, 1))
	docs := NewGroup("Docs", reg.Ref(KindTag, 0))
	store := NewStore(crash, docs)
	if got := crash.Tag(reg).Name; got != "FIX ME" {
		t.Fatalf("group tag = %q, want FIX ME", got)
	}
	fixMe := reg.TagAt(1)
	if got := store.VisibleGroups(&fixMe); len(got) != 1 || got[0] != crash {
		t.Fatalf("VisibleGroups(FIX ME) = %d groups, want only Crash", len(got))
	}

	todo := NewTodo("null deref", "", reg.Ref(KindProgress, 1), reg.Ref(KindPriority, 3), nil, now)
	if got := todo.Priority(reg).Name; got != "Major" {
		t.Fatalf("priority = %q, want Major", got)
	}
	if got := todo.Progress(reg).Status; got != "Active" {
		t.Fatalf("progress = %q, want Active", got)
	}
}

func TestRefsResolveByPositionBeforeReindex(t *testing.T) {
	reg := RestoreRegistry(
		[]Tag{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		[]Priority{{Name: "Default"}, {Name: "High"}},
		nil,
	)
	if got := reg.Ref(KindTag, 2); got.Index != 2 {
		t.Fatalf("ref index = %d, want 2", got.Index)
	}
	tag, ref := reg.ResolveTag(Ref{Index: 1})
	if tag.Name != "b" || ref.Index != 1 || ref.Gen != reg.Generation() {
		t.Fatalf("resolved %q at %d gen %d", tag.Name, ref.Index, ref.Gen)
	}
	if p, ref := reg.ResolvePriority(Ref{Index: 9}); p.Name != "Default" || ref.Index != 0 {
		t.Fatalf("out-of-range priority resolved to %q at %d", p.Name, ref.Index)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("ff3300")
	if err != nil {
		t.Fatalf("parse color: %v", err)
	}
	if c.Hex() != "#ff3300" {
		t.Fatalf("hex = %s, want #ff3300", c.Hex())
	}
	if _, err := ParseColor("not-a-color"); err == nil {
		t.Fatal("expected error for invalid color")
	}
	if ColorWhite.Emphasis().Hex() != "#000000" {
		t.Fatal("white should emphasize as black")
	}
}
