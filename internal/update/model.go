package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/todotree/internal/logging"
	"github.com/sandeepkv93/todotree/internal/model"
	"github.com/sandeepkv93/todotree/internal/reorder"
	"github.com/sandeepkv93/todotree/internal/scheduler"
	"github.com/sandeepkv93/todotree/internal/search"
	"github.com/sandeepkv93/todotree/internal/storage"
)

// Pane is the region that receives cursor keys.
type Pane int

const (
	PaneTags Pane = iota
	PaneGroups
	PaneTodos
)

func (p Pane) String() string {
	switch p {
	case PaneTags:
		return "tags"
	case PaneTodos:
		return "todos"
	default:
		return "groups"
	}
}

// AllTags is the SelectedTag value for the "All" toolbar entry.
const AllTags = -1

const (
	NewGroupTitle = "New Asset"
	NewTagTitle   = "New Tag"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Options wires the session to its collaborators. Nil fields get in-memory
// defaults.
type Options struct {
	Registry    *model.Registry
	Store       *model.Store
	Repo        storage.Repository
	Scheduler   *scheduler.Engine
	Logger      *log.Logger
	Clock       func() time.Time
	RowHeight   int
	AcceptAsset model.AssetPredicate
}

// Model is the editor session: it owns selection, search and drag state and
// applies every user edit to the registry and store.
type Model struct {
	Registry  *model.Registry
	Store     *model.Store
	Repo      storage.Repository
	Scheduler *scheduler.Engine
	Logger    *log.Logger

	Pane            Pane
	SelectedTag     int
	SelectedGroupID string
	Cursor          int
	Searching       bool
	Palette         CommandPaletteState
	HelpVisible     bool
	Status          StatusBar
	Keys            KeyMap
	Quitting        bool
	LastError       error
	DueLog          []scheduler.DueEvent

	clock        func() time.Time
	acceptAsset  model.AssetPredicate
	rowHeight    int
	filter       *search.Filter
	drag         *reorder.Engine
	searchInput  textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

// SelectTagMsg changes the toolbar selection on the loop turn after the edit
// that produced it.
type SelectTagMsg struct {
	Index int
}

// SelectGroupMsg selects a group on the loop turn after the edit that
// produced it.
type SelectGroupMsg struct {
	ID string
}

type DueMsg struct {
	Event scheduler.DueEvent
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(opts Options) Model {
	if opts.Registry == nil {
		opts.Registry = model.NewRegistry()
	}
	if opts.Store == nil {
		opts.Store = model.NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.RowHeight <= 0 {
		opts.RowHeight = 1
	}
	if opts.AcceptAsset == nil {
		opts.AcceptAsset = model.AnyAsset
	}

	m := Model{
		Registry:    opts.Registry,
		Store:       opts.Store,
		Repo:        opts.Repo,
		Scheduler:   opts.Scheduler,
		Logger:      opts.Logger,
		Pane:        PaneGroups,
		SelectedTag: AllTags,
		Keys:        DefaultKeyMap(),
		clock:       opts.Clock,
		acceptAsset: opts.AcceptAsset,
		rowHeight:   opts.RowHeight,
		filter:      &search.Filter{},
		drag:        reorder.NewEngine(float64(opts.RowHeight)),
	}
	m.Store.Sync(m.Registry)
	m.initBubbleComponents()
	m.ensureSelection()
	return m
}

func (m *Model) initBubbleComponents() {
	m.searchInput = textinput.New()
	m.searchInput.Prompt = ""
	m.searchInput.Placeholder = "press / to filter todos"
	m.searchInput.CharLimit = 120

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ": "
	m.commandInput.Placeholder = "todo | group | tag | rename | color | note | due | attach | priority | progress"
	m.commandInput.CharLimit = 240

	m.helpModel = help.New()
}

func (m Model) now() time.Time {
	return m.clock()
}

// Filter exposes the search memo for tests and the CLI.
func (m Model) Filter() *search.Filter { return m.filter }

// Drag exposes the reorder engine.
func (m Model) Drag() *reorder.Engine { return m.drag }
