package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todotree/internal/model"
	"github.com/sandeepkv93/todotree/internal/storage"
)

const saveTimeout = 5 * time.Second

// save writes the registry and store when a repository is attached.
func (m *Model) save() error {
	if m.Repo == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := storage.Save(ctx, m.Repo, m.Registry, m.Store); err != nil {
		m.Logger.Error("save failed", "err", err)
		return err
	}
	m.Logger.Debug("saved", "groups", m.Store.Len(), "tags", m.Registry.Len(model.KindTag))
	return nil
}

// currentTag is the toolbar selection, or nil for "All".
func (m Model) currentTag() *model.Tag {
	if m.SelectedTag == AllTags || m.SelectedTag >= m.Registry.Len(model.KindTag) {
		return nil
	}
	t := m.Registry.TagAt(m.SelectedTag)
	return &t
}

// visibleGroups lists the sidebar rows: the current tag's groups that pass
// the search.
func (m Model) visibleGroups() []*model.Group {
	all := m.Store.VisibleGroups(m.currentTag())
	out := make([]*model.Group, 0, len(all))
	for _, g := range all {
		if g.Visible {
			out = append(out, g)
		}
	}
	return out
}

func (m Model) selectedGroup() *model.Group {
	if m.SelectedGroupID == "" {
		return nil
	}
	for _, g := range m.visibleGroups() {
		if g.ID == m.SelectedGroupID {
			return g
		}
	}
	return nil
}

func visibleTodos(g *model.Group) []*model.Todo {
	if g == nil {
		return nil
	}
	all := g.Todos()
	out := make([]*model.Todo, 0, len(all))
	for _, t := range all {
		if t.Visible {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) selectedTodo() *model.Todo {
	todos := visibleTodos(m.selectedGroup())
	if m.Cursor < 0 || m.Cursor >= len(todos) {
		return nil
	}
	return todos[m.Cursor]
}

// ensureSelection keeps the group selection on a visible row and the todo
// cursor in range.
func (m *Model) ensureSelection() {
	if m.SelectedTag != AllTags && m.SelectedTag >= m.Registry.Len(model.KindTag) {
		m.SelectedTag = m.Registry.Len(model.KindTag) - 1
	}
	if m.selectedGroup() == nil {
		m.SelectedGroupID = ""
		m.Cursor = 0
		if groups := m.visibleGroups(); len(groups) > 0 {
			m.SelectedGroupID = groups[0].ID
		}
	}
	n := len(visibleTodos(m.selectedGroup()))
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) selectTag(i int) {
	switch {
	case i < 0:
		i = AllTags
	case i >= m.Registry.Len(model.KindTag):
		i = m.Registry.Len(model.KindTag) - 1
	}
	if i != m.SelectedTag {
		m.SelectedTag = i
		m.Cursor = 0
	}
	m.ensureSelection()
}

func (m *Model) selectGroup(id string) {
	for _, g := range m.visibleGroups() {
		if g.ID == id {
			if m.SelectedGroupID != id {
				m.Cursor = 0
			}
			m.SelectedGroupID = id
			return
		}
	}
}

// stepGroup moves the group selection by delta within the sidebar.
func (m *Model) stepGroup(delta int) {
	groups := m.visibleGroups()
	if len(groups) == 0 {
		return
	}
	idx := 0
	for i, g := range groups {
		if g.ID == m.SelectedGroupID {
			idx = i
			break
		}
	}
	idx = clamp(idx+delta, 0, len(groups)-1)
	m.selectGroup(groups[idx].ID)
}

func selectTagCmd(i int) tea.Cmd {
	return func() tea.Msg { return SelectTagMsg{Index: i} }
}

func selectGroupCmd(id string) tea.Cmd {
	return func() tea.Msg { return SelectGroupMsg{ID: id} }
}
