package model

// Store owns every group in display order.
type Store struct {
	groups []*Group
}

func NewStore(groups ...*Group) *Store {
	s := &Store{}
	for _, g := range groups {
		s.AddGroup(g)
	}
	return s
}

// Groups returns all groups in display order. The slice is a copy.
func (s *Store) Groups() []*Group {
	return append([]*Group(nil), s.groups...)
}

func (s *Store) Len() int { return len(s.groups) }

// VisibleGroups returns every group when tag is nil, otherwise only the groups
// whose tag position equals tag.Index.
func (s *Store) VisibleGroups(tag *Tag) []*Group {
	if tag == nil {
		return s.Groups()
	}
	out := make([]*Group, 0, len(s.groups))
	for _, g := range s.groups {
		if g.tag.Index == tag.Index {
			out = append(out, g)
		}
	}
	return out
}

func (s *Store) AddGroup(g *Group) {
	if g == nil {
		return
	}
	s.groups = append(s.groups, g)
}

// RemoveGroup removes g by identity. Groups that still hold todos are kept.
func (s *Store) RemoveGroup(g *Group) bool {
	if g == nil || g.Len() > 0 {
		return false
	}
	for i, cur := range s.groups {
		if cur == g {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Find(id string) *Group {
	for _, g := range s.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// CountByTag counts groups tagged with position index.
func (s *Store) CountByTag(index int) int {
	n := 0
	for _, g := range s.groups {
		if g.tag.Index == index {
			n++
		}
	}
	return n
}

// SyncTagReferences re-resolves every group's tag against reg by position, so
// groups follow whatever tag now sits at their index.
func (s *Store) SyncTagReferences(reg *Registry) {
	for _, g := range s.groups {
		g.Tag(reg)
	}
}

// Sync runs the full two-phase protocol: reindex the registry, then
// re-resolve the groups against it.
func (s *Store) Sync(reg *Registry) {
	reg.Reindex()
	s.SyncTagReferences(reg)
}

// FindTodo locates a todo by id across all groups.
func (s *Store) FindTodo(id string) (*Group, *Todo) {
	for _, g := range s.groups {
		for _, t := range g.todos {
			if t.ID == id {
				return g, t
			}
		}
	}
	return nil, nil
}
