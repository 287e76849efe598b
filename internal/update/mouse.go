package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todotree/internal/views"
)

// handleMouse maps clicks on sidebar rows to group selection and
// press-drag-release on todo rows to a reorder.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Palette.Active || m.Searching {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y < views.RowsTop {
			return m, nil
		}
		if msg.X < views.SidebarOuterWidth {
			groups := m.visibleGroups()
			if idx := msg.Y - views.RowsTop; idx < len(groups) {
				m.Pane = PaneGroups
				return m, selectGroupCmd(groups[idx].ID)
			}
			return m, nil
		}
		g := m.selectedGroup()
		row := (msg.Y - views.RowsTop) / m.rowHeight
		if row >= len(visibleTodos(g)) {
			return m, nil
		}
		m.Pane = PaneTodos
		m.Cursor = row
		m.drag.Begin(g, row, float64(msg.Y))
	case tea.MouseActionMotion:
		if m.drag.Active() {
			m.drag.Update(float64(msg.Y))
		}
	case tea.MouseActionRelease:
		if !m.drag.Active() {
			return m, nil
		}
		g := m.drag.Group()
		m.drag.Update(float64(msg.Y))
		from, to := m.drag.Start(), m.drag.Expected()
		if m.drag.Commit() && from != to {
			m.Cursor = to
			m.info("moved %s to row %d", g.TodoAt(to).Title, to+1)
			m.Logger.Debug("todo dragged", "group", g.Title, "from", from, "to", to)
		}
	}
	return m, nil
}
