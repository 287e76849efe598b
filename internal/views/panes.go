package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type TagChip struct {
	Name     string
	Hex      string
	Count    int
	Selected bool
}

type ToolbarData struct {
	Tags        []TagChip
	AllSelected bool
	Focused     bool
}

type GroupRowData struct {
	Title    string
	TagName  string
	TagHex   string
	Count    int
	Asset    string
	Selected bool
}

type SidebarData struct {
	Groups  []GroupRowData
	Focused bool
}

type TodoRowData struct {
	Title       string
	Description string
	Priority    string
	PriorityHex string
	Progress    string
	ProgressHex string
	Due         string
	Overdue     bool
	Selected    bool
	Dragging    bool
	DropTarget  bool
}

type TodoPaneData struct {
	Header    string
	HeaderHex string
	Rows      []TodoRowData
	RowHeight int
	Focused   bool
	Empty     string
}

// chip renders text on a background of hex with a readable foreground.
func chip(text, hex string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(ContrastHex(hex))).
		Padding(0, 1).
		Render(text)
}

// ContrastHex picks black or white text for a background color.
func ContrastHex(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#ffffff"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

func RenderToolbar(data ToolbarData) string {
	parts := make([]string, 0, len(data.Tags)+2)
	label := "tags:"
	if data.Focused {
		label = boldStyle.Render("TAGS:")
	}
	parts = append(parts, label)

	all := "All"
	if data.AllSelected {
		all = boldStyle.Underline(true).Render("[All]")
	}
	parts = append(parts, all)
	for _, t := range data.Tags {
		text := fmt.Sprintf("%s %d", t.Name, t.Count)
		if t.Selected {
			text = "[" + text + "]"
		}
		parts = append(parts, chip(text, t.Hex))
	}
	return strings.Join(parts, " ")
}

func RenderSearch(view string, active bool) string {
	if active {
		return "search: " + view
	}
	return dimStyle.Render("search: " + view)
}

func RenderSidebar(data SidebarData) string {
	lines := []string{boldStyle.Render("Groups")}
	if len(data.Groups) == 0 {
		lines = append(lines, dimStyle.Render("(no groups)"))
	}
	for _, g := range data.Groups {
		cursor := "  "
		if g.Selected {
			cursor = "> "
		}
		count := fmt.Sprintf(" %d", g.Count)
		title := truncate(g.Title, sidebarTextWidth-len(cursor)-len(count)-2)
		line := cursor + lipgloss.NewStyle().Foreground(lipgloss.Color(g.TagHex)).Render("●") + " " + title + dimStyle.Render(count)
		if g.Selected {
			line = boldStyle.Render(line)
		}
		lines = append(lines, line)
	}
	style := panelStyle
	if data.Focused {
		style = focusedPanelStyle
	}
	return style.Width(sidebarPanelWidth).Render(strings.Join(lines, "\n"))
}

// RenderTodoPane draws a header line followed by exactly RowHeight lines per
// row.
func RenderTodoPane(data TodoPaneData) string {
	height := data.RowHeight
	if height <= 0 {
		height = 1
	}
	header := data.Header
	if data.HeaderHex != "" {
		header = chip(truncate(header, todoTextWidth-2), data.HeaderHex)
	}
	lines := []string{header}
	if len(data.Rows) == 0 && data.Empty != "" {
		lines = append(lines, dimStyle.Render(data.Empty))
	}
	for _, row := range data.Rows {
		lines = append(lines, renderTodoRow(row, height)...)
	}
	style := panelStyle
	if data.Focused {
		style = focusedPanelStyle
	}
	return style.Width(todoPanelWidth).Render(strings.Join(lines, "\n"))
}

func renderTodoRow(row TodoRowData, height int) []string {
	marker := "  "
	switch {
	case row.Dragging:
		marker = "≡ "
	case row.DropTarget:
		marker = "→ "
	case row.Selected:
		marker = "> "
	}

	badges := fmt.Sprintf(" %s %s", row.Priority, row.Progress)
	if row.Due != "" {
		badges += " " + row.Due
	}
	title := truncate(row.Title, todoTextWidth-len([]rune(marker))-len([]rune(badges)))

	var b strings.Builder
	b.WriteString(marker)
	if row.Selected || row.Dragging {
		b.WriteString(boldStyle.Render(title))
	} else {
		b.WriteString(title)
	}
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(row.PriorityHex)).Render(row.Priority))
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(row.ProgressHex)).Render(row.Progress))
	if row.Due != "" {
		due := row.Due
		if row.Overdue {
			due = errorStyle.Render(due)
		}
		b.WriteString(" " + due)
	}

	out := make([]string, height)
	out[0] = b.String()
	if height > 1 && row.Description != "" {
		out[1] = "    " + dimStyle.Render(truncate(row.Description, todoTextWidth-4))
	}
	return out
}
