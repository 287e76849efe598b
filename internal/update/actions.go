package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/sandeepkv93/todotree/internal/model"
	"github.com/sandeepkv93/todotree/internal/scheduler"
)

func (m *Model) fail(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	m.Status = StatusBar{Text: text, IsError: true}
	m.Logger.Warn(text)
}

func (m *Model) info(format string, args ...any) {
	m.Status = StatusBar{Text: fmt.Sprintf(format, args...)}
}

// syncRegistry runs reindex-then-sync after a registry edit.
func (m *Model) syncRegistry() {
	m.Store.Sync(m.Registry)
	m.ensureSelection()
}

// nextTagColor spreads hues so consecutive new tags are distinguishable.
func nextTagColor(n int) model.Color {
	c := colorful.Hsv(float64((n*67)%360), 0.65, 0.95).Clamped()
	return model.RGB(c.R, c.G, c.B)
}

func (m *Model) addTag(name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		name = NewTagTitle
	}
	t := m.Registry.AddTag(name, nextTagColor(m.Registry.Len(model.KindTag)))
	m.syncRegistry()
	m.Logger.Info("tag added", "tag", t.Name, "index", t.Index)
	m.info("added tag %s", t.Name)
	return selectTagCmd(t.Index)
}

func (m *Model) removeSelectedTag() tea.Cmd {
	tag := m.currentTag()
	if tag == nil {
		m.fail("select a tag to remove")
		return nil
	}
	if tag.Index < model.MinTags {
		m.fail("tag %s is built in and cannot be removed", tag.Name)
		return nil
	}
	if n := m.Store.CountByTag(tag.Index); n > 0 {
		m.fail("tag %s still has %d group(s)", tag.Name, n)
		return nil
	}
	if !m.Registry.RemoveTag(tag.Index) {
		m.fail("tag %s cannot be removed", tag.Name)
		return nil
	}
	m.syncRegistry()
	m.Logger.Info("tag removed", "tag", tag.Name, "index", tag.Index)
	m.info("removed tag %s", tag.Name)
	return selectTagCmd(tag.Index - 1)
}

// editableTag is the selected tag when it may be renamed or recolored.
func (m *Model) editableTag() (*model.Tag, bool) {
	tag := m.currentTag()
	if tag == nil {
		m.fail("select a tag first")
		return nil, false
	}
	if tag.Index < model.MinTags {
		m.fail("tag %s is built in and cannot be edited", tag.Name)
		return nil, false
	}
	return tag, true
}

func (m *Model) renameTag(name string) {
	tag, ok := m.editableTag()
	if !ok {
		return
	}
	if m.Registry.RenameTag(tag.Index, name) {
		m.syncRegistry()
		m.info("renamed tag %s to %s", tag.Name, name)
	}
}

func (m *Model) setTagColor(c model.Color) {
	tag := m.currentTag()
	if tag == nil {
		m.fail("select a tag first")
		return
	}
	if m.Registry.SetTagColor(tag.Index, c) {
		m.syncRegistry()
		m.info("tag %s color %s", tag.Name, c.Hex())
	}
}

// moveTag shifts the selected tag along the toolbar; its groups follow it.
func (m *Model) moveTag(delta int) tea.Cmd {
	tag, ok := m.editableTag()
	if !ok {
		return nil
	}
	to := tag.Index + delta
	if to < model.MinTags || to >= m.Registry.Len(model.KindTag) {
		return nil
	}
	for _, g := range m.Store.Groups() {
		switch g.Tag(m.Registry).Index {
		case tag.Index:
			g.SetTag(m.Registry, to)
		case to:
			g.SetTag(m.Registry, tag.Index)
		}
	}
	if !m.Registry.MoveTag(tag.Index, to) {
		return nil
	}
	m.syncRegistry()
	return selectTagCmd(to)
}

func (m *Model) currentTagRef() model.Ref {
	idx := 0
	if tag := m.currentTag(); tag != nil {
		idx = tag.Index
	}
	return m.Registry.Ref(model.KindTag, idx)
}

func (m *Model) addGroup(title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		title = NewGroupTitle
	}
	g := model.NewGroup(title, m.currentTagRef())
	m.Store.AddGroup(g)
	m.Logger.Info("group added", "group", g.Title, "tag", g.Tag(m.Registry).Name)
	m.info("added group %s", g.Title)
	return selectGroupCmd(g.ID)
}

func (m *Model) attachAsset(asset model.AssetRef) tea.Cmd {
	g := model.NewGroupForAsset(asset, m.currentTagRef(), m.acceptAsset)
	if g == nil {
		m.fail("asset %s cannot carry todos", asset)
		return nil
	}
	m.Store.AddGroup(g)
	m.Logger.Info("group added for asset", "group", g.Title, "asset", string(asset))
	m.info("added group %s for %s", g.Title, asset)
	return selectGroupCmd(g.ID)
}

func (m *Model) removeSelectedGroup() {
	g := m.selectedGroup()
	if g == nil {
		m.fail("no group selected")
		return
	}
	if !m.Store.RemoveGroup(g) {
		m.fail("group %s still has %d todo(s)", g.Title, g.Len())
		return
	}
	m.Logger.Info("group removed", "group", g.Title)
	m.info("removed group %s", g.Title)
	m.SelectedGroupID = ""
	m.ensureSelection()
}

func (m *Model) addTodo(title string) {
	g := m.selectedGroup()
	if g == nil {
		m.fail("add a group first")
		return
	}
	var t *model.Todo
	if title = strings.TrimSpace(title); title == "" {
		t = g.NewTodoFor(m.Registry, m.now())
	} else {
		t = model.NewTodo(title, "", m.Registry.Ref(model.KindProgress, 1), m.Registry.Ref(model.KindPriority, 1), nil, m.now())
		g.AddTodo(t)
	}
	m.filter.Reset()
	m.applySearch()
	if idx := indexOf(visibleTodos(g), t); idx >= 0 {
		m.Cursor = idx
	}
	m.Pane = PaneTodos
	m.Logger.Info("todo added", "group", g.Title, "todo", t.Title)
	m.info("added %s", t.Title)
}

func indexOf(todos []*model.Todo, t *model.Todo) int {
	for i, cur := range todos {
		if cur == t {
			return i
		}
	}
	return -1
}

func (m *Model) removeSelectedTodo() {
	g, t := m.selectedGroup(), m.selectedTodo()
	if t == nil {
		m.fail("no todo selected")
		return
	}
	if !g.RemoveTodo(t) {
		return
	}
	if m.Scheduler != nil {
		m.Scheduler.Cancel(t.ID)
	}
	m.Logger.Info("todo removed", "group", g.Title, "todo", t.Title)
	m.info("removed %s", t.Title)
	m.ensureSelection()
}

func (m *Model) cyclePriority() {
	t := m.selectedTodo()
	if t == nil {
		return
	}
	cur := t.Priority(m.Registry)
	t.SetPriority(m.Registry, wrapIndex(cur.Index, 1, m.Registry.Len(model.KindPriority)))
	m.info("%s priority %s", t.Title, t.Priority(m.Registry).Name)
}

func (m *Model) cycleProgress() {
	t := m.selectedTodo()
	if t == nil {
		return
	}
	cur := t.Progress(m.Registry)
	t.SetProgress(m.Registry, wrapIndex(cur.Index, 1, m.Registry.Len(model.KindProgress)))
	m.info("%s progress %s", t.Title, t.Progress(m.Registry).Status)
}

// moveSelectedTodo runs a keyboard reorder through the drag engine so it
// obeys the same rules as a mouse drag.
func (m *Model) moveSelectedTodo(delta int) {
	g := m.selectedGroup()
	if g == nil || m.selectedTodo() == nil {
		return
	}
	if !m.drag.Begin(g, m.Cursor, 0) {
		m.fail("reordering is disabled while searching")
		return
	}
	m.drag.Update(float64(delta * m.rowHeight))
	from, to := m.drag.Start(), m.drag.Expected()
	if m.drag.Commit() && from != to {
		m.Cursor = to
		m.Logger.Debug("todo moved", "group", g.Title, "from", from, "to", to)
	}
}

// applySearch pushes the search box value through the filter and suspends
// dragging while a query hides rows.
func (m *Model) applySearch() bool {
	changed := m.filter.Apply(m.Store.Groups(), m.searchInput.Value())
	m.drag.SetSuspended(m.filter.Active())
	if changed {
		m.ensureSelection()
	}
	return changed
}

func (m *Model) clearSearch() {
	m.searchInput.SetValue("")
	m.applySearch()
}

func (m *Model) setDue(date *time.Time) {
	g, t := m.selectedGroup(), m.selectedTodo()
	if t == nil {
		m.fail("no todo selected")
		return
	}
	if date == nil {
		t.EndAt = nil
	} else {
		d := *date
		t.EndAt = &d
	}
	if m.Scheduler != nil {
		if t.EndAt != nil && t.EndAt.After(m.now()) {
			if err := m.Scheduler.Schedule(scheduler.EventFor(g, t)); err != nil {
				m.Logger.Warn("schedule failed", "todo", t.Title, "err", err)
			}
		} else {
			m.Scheduler.Cancel(t.ID)
		}
	}
	if t.EndAt == nil {
		m.info("%s has no due date", t.Title)
		return
	}
	m.info("%s %s", t.Title, formatDue(t.EndAt))
}
