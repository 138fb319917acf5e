// Package ui is the bubbletea front end for the directory navigator. It
// translates key presses into navigator commands and draws the visible rows
// inside a bordered frame.
package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/colorprofile"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/vanderheijden86/vcd/pkg/nav"
)

// Lines taken by the frame and footer around the rows.
const chromeHeight = 3

// Size assumed until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Option configures a Model.
type Option func(*Model)

// WithTheme sets the theme used to draw the view.
func WithTheme(t Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithLogger sets the logger for UI events.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l.With().Str("component", "ui").Logger() }
}

// WithClipboard replaces the function used by the copy-path binding.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copyPath = write }
}

// Model is the bubbletea model wrapping a Navigator.
type Model struct {
	nav      *nav.Navigator
	keys     KeyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	outcome  nav.Outcome
	status   string
	copyPath func(string) error
	log      zerolog.Logger
}

// NewModel returns a model driving n. A failed start-path resolution on n is
// shown once in the footer.
func NewModel(n *nav.Navigator, opts ...Option) Model {
	m := Model{
		nav:      n,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		copyPath: clipboard.WriteAll,
		log:      zerolog.Nop(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.theme = DefaultTheme(lipgloss.DefaultRenderer(), colorprofile.TrueColor)
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = m.width
	m.nav.SetViewportHeight(m.listHeight())
	if err := n.Err(); err != nil {
		m.status = err.Error()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.nav.SetViewportHeight(m.listHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if key.Matches(msg, m.keys.CopyPath) {
		m.copySelected()
		return m, nil
	}

	cmd, ok := m.keys.Command(msg)
	if !ok {
		return m, nil
	}
	m.log.Trace().Stringer("command", cmd).Msg("apply")

	out := m.nav.Apply(cmd)
	if err := m.nav.Err(); err != nil {
		m.status = err.Error()
	}
	if out.Done() {
		m.outcome = out
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) copySelected() {
	path, err := m.nav.SelectedPath()
	if err == nil {
		err = m.copyPath(path)
	}
	if err != nil {
		m.log.Warn().Err(err).Msg("copy path failed")
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied " + path
}

// Outcome returns how the session ended. Its status is Browsing until a
// Confirm or Cancel quits the program.
func (m Model) Outcome() nav.Outcome {
	return m.outcome
}

// Status returns the footer message, if any.
func (m Model) Status() string {
	return m.status
}

// Navigator returns the navigator the model drives.
func (m Model) Navigator() *nav.Navigator {
	return m.nav
}

// listHeight is the number of tree rows the frame can hold.
func (m Model) listHeight() int {
	return max(1, m.height-chromeHeight)
}
