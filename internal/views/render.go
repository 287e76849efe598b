package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Layout offsets, in terminal rows and columns, used by the controller to
// map mouse positions back onto rendered rows.
const (
	BodyTop = 2
	// RowsTop is the first line of todo and group rows: the body border and
	// the pane header sit above it.
	RowsTop = BodyTop + 2

	sidebarPanelWidth = 30
	todoPanelWidth    = 64

	// SidebarOuterWidth is the sidebar's rendered width including borders.
	SidebarOuterWidth = sidebarPanelWidth + 2
	appWidth          = SidebarOuterWidth + todoPanelWidth + 2

	sidebarTextWidth = sidebarPanelWidth - 2
	todoTextWidth    = todoPanelWidth - 2
)

type AppData struct {
	Toolbar    string
	Search     string
	Sidebar    string
	TodoPane   string
	Detail     string
	StatusLine string
	IsError    bool
	Palette    string
	Help       string
	Footer     string
}

var (
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("12"))
	footerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle         = lipgloss.NewStyle().Bold(true)
)

// RenderApp stacks the toolbar, search line, body panes and status area.
// The first two lines are always exactly one row each so BodyTop holds.
func RenderApp(data AppData) string {
	lines := []string{
		firstLine(data.Toolbar),
		firstLine(data.Search),
		lipgloss.JoinHorizontal(lipgloss.Top, data.Sidebar, data.TodoPane),
	}
	if strings.TrimSpace(data.Detail) != "" {
		lines = append(lines, panelStyle.Width(appWidth-2).Render(data.Detail))
	}
	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.Help != "" {
		lines = append(lines, panelStyle.Render(data.Help))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return lipgloss.NewStyle().MaxWidth(appWidth).Render(line)
}

// RenderMarkdown renders a group note. Invalid markdown falls back to the
// raw text.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width <= 0 {
		width = todoTextWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return boldStyle.Render("command: ") + input
}

func RenderHelpPanel(helpView string, bindings []string) string {
	return "help:\n" + strings.Join(bindings, "\n") + "\n\n" + helpView
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
