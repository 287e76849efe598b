package model

import "fmt"

// Kind selects one of the three lookup lists held by a Registry.
type Kind int

const (
	KindTag Kind = iota
	KindPriority
	KindProgress
)

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindPriority:
		return "priority"
	case KindProgress:
		return "progress"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MinTags is the smallest tag count RemoveTag will leave behind.
const MinTags = 2

type Tag struct {
	Name  string
	Color Color
	Index int
}

type Priority struct {
	Name  string
	Color Color
	Index int
}

type Progress struct {
	Status string
	Color  Color
	Index  int
}

// Entry is the kind-agnostic projection of a lookup element.
type Entry struct {
	Label string
	Color Color
	Index int
}

// Ref points at a lookup element by position. Gen records the registry
// generation the position was last resolved against.
type Ref struct {
	Index int
	Gen   uint64
}

// Stale reports whether the ref was resolved against an older registry.
func (r Ref) Stale(gen uint64) bool {
	return r.Gen != gen
}

func DefaultTags() []Tag {
	return []Tag{
		{Name: "TODO", Color: RGB(1, 0.9, 0.19)},
		{Name: "FIX ME", Color: RGB(1, 0.2, 0.23)},
	}
}

func DefaultPriorities() []Priority {
	return []Priority{
		{Name: "Default", Color: ColorWhite},
		{Name: "Minor", Color: RGB(1, 0.72, 0)},
		{Name: "Medium", Color: RGB(0, 1, 0.32)},
		{Name: "Major", Color: RGB(1, 0.2, 0.2)},
	}
}

func DefaultProgresses() []Progress {
	return []Progress{
		{Status: "Default", Color: ColorWhite},
		{Status: "Active", Color: RGB(0, 1, 0.67)},
		{Status: "OnHold", Color: RGB(0.4, 0.5, 1)},
		{Status: "Completed", Color: ColorYellow},
	}
}

// Snapshot is an immutable view of the registry at one generation.
type Snapshot struct {
	gen        uint64
	tags       []Tag
	priorities []Priority
	progresses []Progress
}

func (s *Snapshot) Generation() uint64 { return s.gen }

func (s *Snapshot) Len(kind Kind) int {
	switch kind {
	case KindTag:
		return len(s.tags)
	case KindPriority:
		return len(s.priorities)
	case KindProgress:
		return len(s.progresses)
	default:
		return 0
	}
}

// TagAt returns the tag at position i, or the first tag when i is out of range.
func (s *Snapshot) TagAt(i int) Tag {
	if i < 0 || i >= len(s.tags) {
		return s.tags[0]
	}
	return s.tags[i]
}

func (s *Snapshot) PriorityAt(i int) Priority {
	if i < 0 || i >= len(s.priorities) {
		return s.priorities[0]
	}
	return s.priorities[i]
}

func (s *Snapshot) ProgressAt(i int) Progress {
	if i < 0 || i >= len(s.progresses) {
		return s.progresses[0]
	}
	return s.progresses[i]
}

// Lookup is the fail-soft getByIndex over any list.
func (s *Snapshot) Lookup(kind Kind, i int) Entry {
	switch kind {
	case KindPriority:
		p := s.PriorityAt(i)
		return Entry{Label: p.Name, Color: p.Color, Index: p.Index}
	case KindProgress:
		p := s.ProgressAt(i)
		return Entry{Label: p.Status, Color: p.Color, Index: p.Index}
	default:
		t := s.TagAt(i)
		return Entry{Label: t.Name, Color: t.Color, Index: t.Index}
	}
}

// position clamps i into kind's list, collapsing out-of-range values to 0.
func (s *Snapshot) position(kind Kind, i int) int {
	if i < 0 || i >= s.Len(kind) {
		return 0
	}
	return i
}

// Names projects a list to its labels, in order, for selection widgets.
func (s *Snapshot) Names(kind Kind) []string {
	n := s.Len(kind)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = s.Lookup(kind, i).Label
	}
	return out
}

func (s *Snapshot) Tags() []Tag {
	return append([]Tag(nil), s.tags...)
}

func (s *Snapshot) Priorities() []Priority {
	return append([]Priority(nil), s.priorities...)
}

func (s *Snapshot) Progresses() []Progress {
	return append([]Progress(nil), s.progresses...)
}

func (s *Snapshot) clone() *Snapshot {
	return &Snapshot{
		gen:        s.gen,
		tags:       s.Tags(),
		priorities: s.Priorities(),
		progresses: s.Progresses(),
	}
}

// reindex makes every index equal its position and reports whether any moved.
func (s *Snapshot) reindex() bool {
	changed := false
	for i := range s.tags {
		if s.tags[i].Index != i {
			s.tags[i].Index = i
			changed = true
		}
	}
	for i := range s.priorities {
		if s.priorities[i].Index != i {
			s.priorities[i].Index = i
			changed = true
		}
	}
	for i := range s.progresses {
		if s.progresses[i].Index != i {
			s.progresses[i].Index = i
			changed = true
		}
	}
	return changed
}

// Registry owns the tag, priority and progress lists. Each mutation publishes
// a new dense Snapshot under the next generation; earlier snapshots stay valid.
type Registry struct {
	snap *Snapshot
}

// NewRegistry returns the default lists, already dense.
func NewRegistry() *Registry {
	r := RestoreRegistry(DefaultTags(), DefaultPriorities(), DefaultProgresses())
	r.snap.reindex()
	return r
}

// RestoreRegistry rebuilds a registry from persisted lists exactly as given,
// indices included. Empty lists fall back to the defaults so no list is ever
// empty. Call Reindex before trusting the indices.
func RestoreRegistry(tags []Tag, priorities []Priority, progresses []Progress) *Registry {
	if len(tags) == 0 {
		tags = DefaultTags()
	}
	if len(priorities) == 0 {
		priorities = DefaultPriorities()
	}
	if len(progresses) == 0 {
		progresses = DefaultProgresses()
	}
	return &Registry{snap: &Snapshot{
		gen:        1,
		tags:       append([]Tag(nil), tags...),
		priorities: append([]Priority(nil), priorities...),
		progresses: append([]Progress(nil), progresses...),
	}}
}

func (r *Registry) Snapshot() *Snapshot { return r.snap }

func (r *Registry) Generation() uint64 { return r.snap.gen }

func (r *Registry) Len(kind Kind) int { return r.snap.Len(kind) }

func (r *Registry) TagAt(i int) Tag { return r.snap.TagAt(i) }

func (r *Registry) PriorityAt(i int) Priority { return r.snap.PriorityAt(i) }

func (r *Registry) ProgressAt(i int) Progress { return r.snap.ProgressAt(i) }

func (r *Registry) Lookup(kind Kind, i int) Entry { return r.snap.Lookup(kind, i) }

func (r *Registry) Names(kind Kind) []string { return r.snap.Names(kind) }

// Reindex restores position-equals-index on all three lists. It is a no-op on
// an already dense registry and only then leaves the generation unchanged.
func (r *Registry) Reindex() bool {
	next := r.snap.clone()
	if !next.reindex() {
		return false
	}
	r.publish(next)
	return true
}

func (r *Registry) publish(next *Snapshot) {
	next.reindex()
	next.gen = r.snap.gen + 1
	r.snap = next
}

// Ref returns a fresh ref to position i of kind, collapsing out-of-range
// positions to 0.
func (r *Registry) Ref(kind Kind, i int) Ref {
	return Ref{Index: r.snap.position(kind, i), Gen: r.snap.gen}
}

// ResolveTag re-resolves ref by position against the current generation.
func (r *Registry) ResolveTag(ref Ref) (Tag, Ref) {
	i := r.snap.position(KindTag, ref.Index)
	return r.snap.tags[i], Ref{Index: i, Gen: r.snap.gen}
}

func (r *Registry) ResolvePriority(ref Ref) (Priority, Ref) {
	i := r.snap.position(KindPriority, ref.Index)
	return r.snap.priorities[i], Ref{Index: i, Gen: r.snap.gen}
}

func (r *Registry) ResolveProgress(ref Ref) (Progress, Ref) {
	i := r.snap.position(KindProgress, ref.Index)
	return r.snap.progresses[i], Ref{Index: i, Gen: r.snap.gen}
}

func (r *Registry) AddTag(name string, color Color) Tag {
	next := r.snap.clone()
	next.tags = append(next.tags, Tag{Name: name, Color: color, Index: len(next.tags)})
	r.publish(next)
	return r.snap.tags[len(r.snap.tags)-1]
}

// RemoveTag removes the tag at position i unless fewer than MinTags would remain.
func (r *Registry) RemoveTag(i int) bool {
	if i < 0 || i >= len(r.snap.tags) || len(r.snap.tags)-1 < MinTags {
		return false
	}
	next := r.snap.clone()
	next.tags = append(next.tags[:i], next.tags[i+1:]...)
	r.publish(next)
	return true
}

func (r *Registry) RenameTag(i int, name string) bool {
	if i < 0 || i >= len(r.snap.tags) {
		return false
	}
	next := r.snap.clone()
	next.tags[i].Name = name
	r.publish(next)
	return true
}

func (r *Registry) SetTagColor(i int, c Color) bool {
	if i < 0 || i >= len(r.snap.tags) {
		return false
	}
	next := r.snap.clone()
	next.tags[i].Color = c
	r.publish(next)
	return true
}

// MoveTag moves the tag at from so it ends up at position to.
func (r *Registry) MoveTag(from, to int) bool {
	n := len(r.snap.tags)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	next := r.snap.clone()
	t := next.tags[from]
	next.tags = append(next.tags[:from], next.tags[from+1:]...)
	next.tags = append(next.tags[:to], append([]Tag{t}, next.tags[to:]...)...)
	r.publish(next)
	return true
}

func (r *Registry) AddPriority(name string, color Color) Priority {
	next := r.snap.clone()
	next.priorities = append(next.priorities, Priority{Name: name, Color: color})
	r.publish(next)
	return r.snap.priorities[len(r.snap.priorities)-1]
}

// RemovePriority never removes the Default entry at position 0.
func (r *Registry) RemovePriority(i int) bool {
	if i <= 0 || i >= len(r.snap.priorities) {
		return false
	}
	next := r.snap.clone()
	next.priorities = append(next.priorities[:i], next.priorities[i+1:]...)
	r.publish(next)
	return true
}

func (r *Registry) AddProgress(status string, color Color) Progress {
	next := r.snap.clone()
	next.progresses = append(next.progresses, Progress{Status: status, Color: color})
	r.publish(next)
	return r.snap.progresses[len(r.snap.progresses)-1]
}

// RemoveProgress never removes the Default entry at position 0.
func (r *Registry) RemoveProgress(i int) bool {
	if i <= 0 || i >= len(r.snap.progresses) {
		return false
	}
	next := r.snap.clone()
	next.progresses = append(next.progresses[:i], next.progresses[i+1:]...)
	r.publish(next)
	return true
}
