package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todotree/internal/model"
	"github.com/sandeepkv93/todotree/internal/scheduler"
)

const dueLogLimit = 20

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForDueCmd(m.Scheduler.C())
	}
	return nil
}

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueMsg{Event: ev}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			return m.quit()
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Searching {
			return m.handleSearchKey(typed), nil
		}
		return m.handleKey(typed)
	case tea.MouseMsg:
		return m.handleMouse(typed)
	case SelectTagMsg:
		m.selectTag(typed.Index)
		return m, nil
	case SelectGroupMsg:
		m.selectGroup(typed.ID)
		return m, nil
	case DueMsg:
		m.recordDue(typed.Event)
		if m.Scheduler != nil {
			return m, waitForDueCmd(m.Scheduler.C())
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.Logger.Error("session error", "err", typed.Err)
		}
		return m, nil
	}
	return m, nil
}

// recordDue logs a due event for a todo that still exists with that due
// date. Events for removed or rescheduled todos are dropped.
func (m *Model) recordDue(ev scheduler.DueEvent) {
	g, t := m.Store.FindTodo(ev.TodoID)
	if t == nil || t.EndAt == nil || !t.EndAt.Equal(ev.DueAt) {
		m.Logger.Debug("stale due event", "todo", ev.TodoID)
		return
	}
	ev.Title, ev.GroupID = t.Title, g.ID
	m.DueLog = append(m.DueLog, ev)
	if len(m.DueLog) > dueLogLimit {
		m.DueLog = m.DueLog[len(m.DueLog)-dueLogLimit:]
	}
	m.Status = StatusBar{Text: fmt.Sprintf("due: %s (%s)", t.Title, g.Title)}
	m.Logger.Info("todo due", "todo", t.Title, "group", g.Title, "at", ev.DueAt)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	m.drag.Cancel()
	if err := m.save(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: "save failed: " + err.Error(), IsError: true}
	}
	return m, tea.Quit
}

func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Searching = false
		m.searchInput.Blur()
		m.clearSearch()
		return m
	case "enter":
		m.Searching = false
		m.searchInput.Blur()
		return m
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.searchInput.SetValue(m.searchInput.Value() + string(msg.Runes))
		m.searchInput.CursorEnd()
	} else {
		m.searchInput, _ = m.searchInput.Update(msg)
	}
	m.applySearch()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()
	case key.Matches(msg, k.Help):
		m.HelpVisible = !m.HelpVisible
	case key.Matches(msg, k.Palette):
		return m.openPalette(), nil
	case key.Matches(msg, k.Search):
		m.Searching = true
		m.searchInput.Focus()
	case key.Matches(msg, k.ClearSearch):
		if m.filter.Active() {
			m.clearSearch()
			m.info("search cleared")
		}
	case key.Matches(msg, k.Save):
		if err := m.save(); err != nil {
			m.Status = StatusBar{Text: "save failed: " + err.Error(), IsError: true}
		} else {
			m.info("saved")
		}
	case key.Matches(msg, k.NextPane):
		m.Pane = Pane(wrapIndex(int(m.Pane), 1, 3))
	case key.Matches(msg, k.PrevPane):
		m.Pane = Pane(wrapIndex(int(m.Pane), -1, 3))
	case key.Matches(msg, k.PrevTag):
		m.selectTag(m.SelectedTag - 1)
	case key.Matches(msg, k.NextTag):
		m.selectTag(m.SelectedTag + 1)
	case key.Matches(msg, k.Up):
		m.step(-1)
	case key.Matches(msg, k.Down):
		m.step(1)
	case key.Matches(msg, k.MoveUp):
		if m.Pane == PaneTags {
			return m, m.moveTag(-1)
		}
		m.moveSelectedTodo(-1)
	case key.Matches(msg, k.MoveDown):
		if m.Pane == PaneTags {
			return m, m.moveTag(1)
		}
		m.moveSelectedTodo(1)
	case key.Matches(msg, k.AddTodo):
		m.addTodo("")
	case key.Matches(msg, k.RemoveTodo):
		m.removeSelectedTodo()
	case key.Matches(msg, k.AddGroup):
		return m, m.addGroup("")
	case key.Matches(msg, k.RemoveGroup):
		m.removeSelectedGroup()
	case key.Matches(msg, k.AddTag):
		return m, m.addTag("")
	case key.Matches(msg, k.RemoveTag):
		return m, m.removeSelectedTag()
	case key.Matches(msg, k.CyclePriority):
		m.cyclePriority()
	case key.Matches(msg, k.CycleProgress):
		m.cycleProgress()
	}
	return m, nil
}

// step moves the cursor of the focused pane.
func (m *Model) step(delta int) {
	switch m.Pane {
	case PaneTags:
		m.selectTag(clamp(m.SelectedTag+delta, AllTags, m.Registry.Len(model.KindTag)-1))
	case PaneGroups:
		m.stepGroup(delta)
	case PaneTodos:
		n := len(visibleTodos(m.selectedGroup()))
		if n > 0 {
			m.Cursor = clamp(m.Cursor+delta, 0, n-1)
		}
	}
}
