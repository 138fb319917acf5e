package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	frameTitle = "Directory navigator"

	scrollThumb = "┃"
	scrollTrack = "│"

	minWidth = 10
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width < minWidth || m.height < chromeHeight+1 {
		return "terminal too small"
	}

	border := lipgloss.RoundedBorder()
	vh := m.listHeight()
	lines := make([]string, 0, vh+chromeHeight)

	lines = append(lines, m.frameLine(border.TopLeft, border.TopRight, border.Top, frameTitle, m.theme.Title))
	lines = append(lines, m.renderRows(vh, border.Left, border.Right)...)

	path, err := m.nav.SelectedPath()
	if err != nil {
		path = ""
	}
	lines = append(lines, m.frameLine(border.BottomLeft, border.BottomRight, border.Bottom, path, m.theme.PathTitle))
	lines = append(lines, m.renderFooter())

	return strings.Join(lines, "\n")
}

// frameLine draws a horizontal border with label inset after one border
// rune. Long labels are cut from the left so a path keeps its leaf.
func (m Model) frameLine(left, right, fill, label string, style lipgloss.Style) string {
	inner := m.width - 2
	frame := m.theme.Frame

	var sb strings.Builder
	sb.WriteString(frame.Render(left))

	used := 0
	if label != "" && inner > 4 {
		label = truncateLeft(label, inner-3)
		sb.WriteString(frame.Render(fill))
		sb.WriteString(" ")
		sb.WriteString(style.Render(label))
		sb.WriteString(" ")
		used = runewidth.StringWidth(label) + 3
	}
	if rest := inner - used; rest > 0 {
		sb.WriteString(frame.Render(strings.Repeat(fill, rest)))
	}

	sb.WriteString(frame.Render(right))
	return sb.String()
}

// renderRows draws vh framed lines: the visible slice of the flattened tree
// plus a scrollbar column.
func (m Model) renderRows(vh int, left, right string) []string {
	rows := m.nav.Rows()
	offset := m.nav.ScrollOffset()
	cursor, hasCursor := m.nav.Cursor()
	contentWidth := m.width - 3
	thumbs := scrollbar(vh, len(rows), offset)

	frameLeft := m.theme.Frame.Render(left)
	frameRight := m.theme.Frame.Render(right)

	lines := make([]string, 0, vh)
	for i := 0; i < vh; i++ {
		idx := offset + i

		var content string
		if idx < len(rows) {
			selected := hasCursor && idx == cursor
			content = m.renderRow(rows[idx].Prefix, rows[idx].Node.Name(), contentWidth, selected)
		} else {
			content = strings.Repeat(" ", contentWidth)
		}

		bar := " "
		switch {
		case thumbs == nil:
		case thumbs[i]:
			bar = m.theme.ScrollThumb.Render(scrollThumb)
		default:
			bar = m.theme.ScrollTrack.Render(scrollTrack)
		}

		lines = append(lines, frameLeft+content+bar+frameRight)
	}
	return lines
}

// renderRow draws one tree row padded to width cells.
func (m Model) renderRow(prefix, name string, width int, selected bool) string {
	text := truncate(prefix+name, width)
	if selected {
		return m.theme.Selected.Render(padRight(text, width))
	}

	pad := strings.Repeat(" ", max(0, width-runewidth.StringWidth(text)))
	if !strings.HasPrefix(text, prefix) {
		// The prefix alone overflows; it is all glyphs.
		return m.theme.Connector.Render(text) + pad
	}
	return m.theme.Connector.Render(prefix) + m.theme.Base.Render(text[len(prefix):]) + pad
}

// renderFooter shows the status message, or key help when there is none,
// with the position indicator flush right.
func (m Model) renderFooter() string {
	pos := m.positionIndicator()
	posWidth := runewidth.StringWidth(pos)
	avail := max(0, m.width-posWidth-1)

	var left string
	if m.status != "" {
		left = m.theme.Status.Render(truncate(m.status, avail))
	} else {
		h := m.help
		h.Width = avail
		left = h.View(m.keys)
	}

	gap := max(1, m.width-lipgloss.Width(left)-posWidth)
	return left + strings.Repeat(" ", gap) + m.theme.Position.Render(pos)
}

// positionIndicator reports the visible row span, e.g. "21-40 of 312".
func (m Model) positionIndicator() string {
	total := len(m.nav.Rows())
	if total == 0 {
		return "empty"
	}
	start, end := m.nav.VisibleRange()
	return fmt.Sprintf("%d-%d of %d", start+1, end, total)
}

// scrollbar marks which of the height lines hold the thumb. It returns nil
// when all rows fit.
func scrollbar(height, total, offset int) []bool {
	if height <= 0 || total <= height {
		return nil
	}

	thumb := max(1, height*height/total)
	maxOffset := total - height
	pos := 0
	if maxOffset > 0 {
		pos = offset * (height - thumb) / maxOffset
	}

	marks := make([]bool, height)
	for i := pos; i < pos+thumb && i < height; i++ {
		marks[i] = true
	}
	return marks
}
