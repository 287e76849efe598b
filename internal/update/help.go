package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/todotree/internal/views"
)

// KeyMap holds the session bindings. It satisfies help.KeyMap.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	NextPane      key.Binding
	PrevPane      key.Binding
	PrevTag       key.Binding
	NextTag       key.Binding
	MoveUp        key.Binding
	MoveDown      key.Binding
	AddTodo       key.Binding
	RemoveTodo    key.Binding
	AddGroup      key.Binding
	RemoveGroup   key.Binding
	AddTag        key.Binding
	RemoveTag     key.Binding
	CyclePriority key.Binding
	CycleProgress key.Binding
	Search        key.Binding
	ClearSearch   key.Binding
	Palette       key.Binding
	Save          key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextPane:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pane")),
		PrevTag:       key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous tag")),
		NextTag:       key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next tag")),
		MoveUp:        key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move todo / tag up")),
		MoveDown:      key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move todo / tag down")),
		AddTodo:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new todo")),
		RemoveTodo:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove todo")),
		AddGroup:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "new group")),
		RemoveGroup:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "remove empty group")),
		AddTag:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new tag")),
		RemoveTag:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "remove tag")),
		CyclePriority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority")),
		CycleProgress: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle progress")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Palette:       key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Save:          key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "save and quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.AddTodo, k.AddGroup, k.Search, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPane, k.PrevPane, k.PrevTag, k.NextTag},
		{k.AddTodo, k.RemoveTodo, k.MoveUp, k.MoveDown, k.CyclePriority, k.CycleProgress},
		{k.AddGroup, k.RemoveGroup, k.AddTag, k.RemoveTag},
		{k.Search, k.ClearSearch, k.Palette, k.Save, k.Help, k.Quit},
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return views.RenderHelpPanel(m.helpModel.FullHelpView(m.Keys.FullHelp()), m.paneHints())
}

func (m Model) paneHints() []string {
	switch m.Pane {
	case PaneTags:
		return []string{
			"tags: j/k select, K/J reorder, T remove",
			"palette: rename <name>, color <#rrggbb>",
		}
	case PaneTodos:
		return []string{
			"todos: drag rows with the mouse or K/J to reorder",
			"palette: priority, progress, due, note, rename",
		}
	default:
		return []string{
			"groups: click or j/k to select, G removes an empty group",
			"palette: group, attach, note, rename",
		}
	}
}
