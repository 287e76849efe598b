package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todotree/internal/views"
)

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}
	return views.RenderApp(views.AppData{
		Toolbar:    m.renderToolbar(),
		Search:     views.RenderSearch(m.searchInput.View(), m.Searching),
		Sidebar:    m.renderSidebar(),
		TodoPane:   m.renderTodoPane(),
		Detail:     m.renderDetail(),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Palette:    m.renderCommandPalette(),
		Help:       m.renderHelpIfVisible(),
		Footer:     m.helpModel.ShortHelpView(m.Keys.ShortHelp()),
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.View())
}

func (m Model) renderToolbar() string {
	tags := m.Registry.Snapshot().Tags()
	chips := make([]views.TagChip, 0, len(tags))
	for _, t := range tags {
		chips = append(chips, views.TagChip{
			Name:     t.Name,
			Hex:      t.Color.Hex(),
			Count:    m.Store.CountByTag(t.Index),
			Selected: t.Index == m.SelectedTag,
		})
	}
	return views.RenderToolbar(views.ToolbarData{
		Tags:        chips,
		AllSelected: m.SelectedTag == AllTags,
		Focused:     m.Pane == PaneTags,
	})
}

func (m Model) renderSidebar() string {
	groups := m.visibleGroups()
	rows := make([]views.GroupRowData, 0, len(groups))
	for _, g := range groups {
		tag := g.Tag(m.Registry)
		rows = append(rows, views.GroupRowData{
			Title:    g.Title,
			TagName:  tag.Name,
			TagHex:   tag.Color.Hex(),
			Count:    len(visibleTodos(g)),
			Asset:    string(g.Asset),
			Selected: g.ID == m.SelectedGroupID,
		})
	}
	return views.RenderSidebar(views.SidebarData{Groups: rows, Focused: m.Pane == PaneGroups})
}

func (m Model) renderTodoPane() string {
	g := m.selectedGroup()
	data := views.TodoPaneData{RowHeight: m.rowHeight, Focused: m.Pane == PaneTodos}
	if g == nil {
		data.Header = "no group selected"
		data.Empty = "press g to add a group"
		return views.RenderTodoPane(data)
	}
	tag := g.Tag(m.Registry)
	data.Header = fmt.Sprintf("%s · %s", g.Title, tag.Name)
	data.HeaderHex = tag.Color.Emphasis().Hex()
	data.Empty = "press n to add a todo"
	if m.filter.Active() {
		data.Empty = "no todos match"
	}

	dragging := m.drag.Active() && m.drag.Group() == g
	now := m.now()
	for i, t := range visibleTodos(g) {
		p, s := t.Priority(m.Registry), t.Progress(m.Registry)
		data.Rows = append(data.Rows, views.TodoRowData{
			Title:       t.Title,
			Description: t.Description,
			Priority:    p.Name,
			PriorityHex: p.Color.Hex(),
			Progress:    s.Status,
			ProgressHex: s.Color.Hex(),
			Due:         formatDue(t.EndAt),
			Overdue:     t.Overdue(now),
			Selected:    i == m.Cursor,
			Dragging:    dragging && i == m.drag.Start(),
			DropTarget:  dragging && i == m.drag.Expected() && i != m.drag.Start(),
		})
	}
	return views.RenderTodoPane(data)
}

func (m Model) renderDetail() string {
	g := m.selectedGroup()
	if g == nil {
		return ""
	}
	var parts []string
	if !g.Asset.IsZero() {
		parts = append(parts, "asset: "+string(g.Asset))
	}
	if note := views.RenderMarkdown(g.Note, 0); note != "" {
		parts = append(parts, note)
	}
	if m.Pane == PaneTodos {
		if t := m.selectedTodo(); t != nil {
			parts = append(parts, fmt.Sprintf("created %s", t.CreatedAt().Local().Format("2006-01-02 15:04")))
		}
	}
	if len(m.DueLog) > 0 {
		last := m.DueLog[len(m.DueLog)-1]
		parts = append(parts, fmt.Sprintf("last due: %s @ %s", last.Title, last.DueAt.Local().Format("2006-01-02 15:04")))
	}
	return strings.Join(parts, "\n")
}
