package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/vcd/pkg/nav"
)

// KeyMap binds keys to navigator commands. Printable runes are left unbound
// so every letter, digit and symbol can start a sibling jump.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Parent     key.Binding
	Collapse   key.Binding
	Expand     key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	CopyPath   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "half page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "half page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "bottom"),
		),
		Parent: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "parent"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "collapse"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "expand"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "copy path"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Collapse, k.Expand, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Collapse, k.Expand, k.Parent, k.ScrollUp, k.ScrollDown},
		{k.Confirm, k.Cancel, k.CopyPath},
	}
}

// Command translates a key press into a navigator command. It reports false
// for keys with no navigator meaning, including CopyPath which the model
// handles itself.
func (k KeyMap) Command(msg tea.KeyMsg) (nav.Command, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return nav.MoveUp, true
	case key.Matches(msg, k.Down):
		return nav.MoveDown, true
	case key.Matches(msg, k.ScrollUp):
		return nav.ScrollUp, true
	case key.Matches(msg, k.ScrollDown):
		return nav.ScrollDown, true
	case key.Matches(msg, k.PageUp):
		return nav.PageUp, true
	case key.Matches(msg, k.PageDown):
		return nav.PageDown, true
	case key.Matches(msg, k.Top):
		return nav.Top, true
	case key.Matches(msg, k.Bottom):
		return nav.Bottom, true
	case key.Matches(msg, k.Parent):
		return nav.Parent, true
	case key.Matches(msg, k.Collapse):
		return nav.Collapse, true
	case key.Matches(msg, k.Expand):
		return nav.Expand, true
	case key.Matches(msg, k.Confirm):
		return nav.Confirm, true
	case key.Matches(msg, k.Cancel):
		return nav.Cancel, true
	}

	if r, ok := jumpRune(msg); ok {
		return nav.JumpToLetter(r), true
	}
	return nav.Command{}, false
}

// jumpRune returns the rune of a plain single-character key press.
func jumpRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || msg.Paste || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return 0, false
	}
	return r, true
}
