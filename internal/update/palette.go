package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todotree/internal/commands"
	"github.com/sandeepkv93/todotree/internal/model"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		m.commandInput.CursorEnd()
	} else {
		m.commandInput, _ = m.commandInput.Update(msg)
	}
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()
	m.Status = StatusBar{}

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Todo: func(a commands.TextArgs) (commands.Result, error) {
			m.addTodo(a.Text)
			return m.result()
		},
		Group: func(a commands.TextArgs) (commands.Result, error) {
			next = m.addGroup(a.Text)
			return m.result()
		},
		Tag: func(a commands.TextArgs) (commands.Result, error) {
			next = m.addTag(a.Text)
			return m.result()
		},
		Rename: func(a commands.TextArgs) (commands.Result, error) {
			switch m.Pane {
			case PaneTags:
				m.renameTag(a.Text)
			case PaneTodos:
				t := m.selectedTodo()
				if t == nil {
					return commands.Result{}, invalidArg("no todo selected")
				}
				t.Title = a.Text
				m.filter.Reset()
				m.applySearch()
				m.info("renamed todo to %s", a.Text)
			default:
				g := m.selectedGroup()
				if g == nil {
					return commands.Result{}, invalidArg("no group selected")
				}
				g.Title = a.Text
				m.info("renamed group to %s", a.Text)
			}
			return m.result()
		},
		Note: func(a commands.TextArgs) (commands.Result, error) {
			if m.Pane == PaneTodos {
				t := m.selectedTodo()
				if t == nil {
					return commands.Result{}, invalidArg("no todo selected")
				}
				t.Description = a.Text
				return commands.Result{Message: fmt.Sprintf("updated description of %s", t.Title)}, nil
			}
			g := m.selectedGroup()
			if g == nil {
				return commands.Result{}, invalidArg("no group selected")
			}
			g.Note = a.Text
			return commands.Result{Message: fmt.Sprintf("updated note of %s", g.Title)}, nil
		},
		Color: func(a commands.ColorArgs) (commands.Result, error) {
			m.setTagColor(a.Color)
			return m.result()
		},
		Due: func(a commands.DueArgs) (commands.Result, error) {
			m.setDue(a.Date)
			return m.result()
		},
		Attach: func(a commands.AttachArgs) (commands.Result, error) {
			next = m.attachAsset(a.Asset)
			return m.result()
		},
		Priority: func(a commands.LookupArgs) (commands.Result, error) {
			t := m.selectedTodo()
			if t == nil {
				return commands.Result{}, invalidArg("no todo selected")
			}
			i, ok := a.Resolve(m.Registry.Names(model.KindPriority))
			if !ok {
				return commands.Result{}, invalidArg("unknown priority %s", lookupLabel(a))
			}
			t.SetPriority(m.Registry, i)
			return commands.Result{Message: fmt.Sprintf("%s priority %s", t.Title, t.Priority(m.Registry).Name)}, nil
		},
		Progress: func(a commands.LookupArgs) (commands.Result, error) {
			t := m.selectedTodo()
			if t == nil {
				return commands.Result{}, invalidArg("no todo selected")
			}
			i, ok := a.Resolve(m.Registry.Names(model.KindProgress))
			if !ok {
				return commands.Result{}, invalidArg("unknown progress %s", lookupLabel(a))
			}
			t.SetProgress(m.Registry, i)
			return commands.Result{Message: fmt.Sprintf("%s progress %s", t.Title, t.Progress(m.Registry).Status)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Logger.Warn("command failed", "input", raw, "err", err)
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	m.Logger.Debug("command", "input", raw)
	return m, next
}

// result converts the status left by an action into a command result so
// failures surface through the palette's error path.
func (m *Model) result() (commands.Result, error) {
	if m.Status.IsError {
		return commands.Result{}, invalidArg("%s", m.Status.Text)
	}
	return commands.Result{Message: m.Status.Text}, nil
}

func invalidArg(format string, args ...any) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func lookupLabel(a commands.LookupArgs) string {
	if a.Index >= 0 {
		return fmt.Sprint(a.Index)
	}
	return a.Name
}
