package ui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vanderheijden86/vcd/pkg/testutil"
	"github.com/vanderheijden86/vcd/pkg/ui"
)

func resize(t *testing.T, m ui.Model, w, h int) ui.Model {
	t.Helper()
	newM, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return newM.(ui.Model)
}

func TestViewLayout(t *testing.T) {
	m := resize(t, newTestModel(t, nil), 40, 9)
	lines := viewLines(m)

	if len(lines) != 9 {
		t.Fatalf("view has %d lines, want 9:\n%s", len(lines), m.View())
	}
	if !strings.Contains(lines[0], "Directory navigator") {
		t.Errorf("top border missing title: %q", lines[0])
	}
	for i, line := range lines[:len(lines)-1] {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line %d is %d cells wide, want 40: %q", i, w, line)
		}
	}
}

func TestViewRowsUseTreeGlyphs(t *testing.T) {
	m := resize(t, newTestModel(t, nil), 40, 10)
	m = sendSpecialKey(t, m, tea.KeyEnd)
	m = sendSpecialKey(t, m, tea.KeyRight)

	view := ansi.Strip(m.View())
	for _, want := range []string{"▾ /", "├── ▸ bin", "├── ▸ boot", "└── ▾ home", "    └── ▸ user"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewBottomBorderShowsSelectedPath(t *testing.T) {
	m := resize(t, newTestModel(t, nil), 40, 9)
	m = sendSpecialKey(t, m, tea.KeyEnd)
	m = sendSpecialKey(t, m, tea.KeyRight)
	m = sendSpecialKey(t, m, tea.KeyRight)

	lines := viewLines(m)
	bottom := lines[len(lines)-2]
	if !strings.Contains(bottom, "/home/user") {
		t.Errorf("bottom border = %q, want selected path", bottom)
	}
}

func TestViewLongPathKeepsLeaf(t *testing.T) {
	r := testutil.NewMapReader("/averyveryverylongdirectoryname/another/leafdir")
	m := resize(t, newTestModel(t, r), 24, 9)
	for i := 0; i < 3; i++ {
		m = sendSpecialKey(t, m, tea.KeyEnd)
		m = sendSpecialKey(t, m, tea.KeyRight)
		m = sendSpecialKey(t, m, tea.KeyRight)
	}
	if got := selectedPath(t, m); got != "/averyveryverylongdirectoryname/another/leafdir" {
		t.Fatalf("selected %q", got)
	}

	lines := viewLines(m)
	bottom := lines[len(lines)-2]
	if !strings.Contains(bottom, "…") || !strings.Contains(bottom, "leafdir") {
		t.Errorf("bottom border = %q, want leading ellipsis and leaf", bottom)
	}
	if w := lipgloss.Width(bottom); w != 24 {
		t.Errorf("bottom border is %d cells, want 24", w)
	}
}

func TestViewPositionIndicator(t *testing.T) {
	m := resize(t, newTestModel(t, testutil.Wide(30)), 60, 13)
	lines := viewLines(m)
	footer := lines[len(lines)-1]
	if !strings.Contains(footer, "1-10 of 31") {
		t.Errorf("footer = %q, want position indicator", footer)
	}

	m = sendSpecialKey(t, m, tea.KeyEnd)
	lines = viewLines(m)
	if footer := lines[len(lines)-1]; !strings.Contains(footer, "22-31 of 31") {
		t.Errorf("footer after end = %q", footer)
	}
}

func TestViewFooterShowsStatus(t *testing.T) {
	m := newTestModel(t, nil, ui.WithClipboard(func(string) error { return nil }))
	m = resize(t, m, 60, 9)
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = newM.(ui.Model)

	lines := viewLines(m)
	if footer := lines[len(lines)-1]; !strings.Contains(footer, "copied /") {
		t.Errorf("footer = %q, want copy status", footer)
	}
}

func TestViewTooSmall(t *testing.T) {
	m := resize(t, newTestModel(t, nil), 5, 3)
	if got := m.View(); got != "terminal too small" {
		t.Errorf("View() = %q", got)
	}
}

func selectedPath(t *testing.T, m ui.Model) string {
	t.Helper()
	p, err := m.Navigator().SelectedPath()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// viewLines returns the rendered view split into lines without styling.
func viewLines(m ui.Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}
