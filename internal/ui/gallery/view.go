package gallery

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/vitrine/internal/browser"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui/render"
	"github.com/llehouerou/vitrine/internal/ui/styles"
	"github.com/llehouerou/vitrine/internal/ui/thumbs"
)

// View renders the grid. Thumbnails are not part of the string; see
// Placements.
func (m Model) View() string {
	w, h := m.Size()
	if w <= 0 || h <= 0 {
		return ""
	}
	n := m.ctrl.Len()
	if n == 0 {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.emptyText())
	}

	v := m.viewport()
	start, end := m.cursor.VisibleRange(n, v)
	order := m.selectionOrder()

	rows := make([]string, 0, v.Rows)
	for first := start; first < end; first += v.Cols {
		cells := make([]string, 0, v.Cols)
		for i := first; i < min(first+v.Cols, end); i++ {
			cells = append(cells, m.renderCell(i, order))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(grid)
}

func (m Model) emptyText() string {
	st := styles.T().S()
	if m.ctrl.Loading() {
		what := "albums"
		if m.ctrl.Mode() == browser.ModeMedia {
			what = "images"
		}
		return m.spinner.View() + st.Muted.Render(" Loading "+what+"…")
	}
	if m.ctrl.Mode() == browser.ModeMedia {
		return st.Muted.Render("This album has no images")
	}
	return st.Muted.Render("No images found")
}

// selectionOrder maps each selected ref to its 1-based rank.
func (m Model) selectionOrder() map[media.Ref]int {
	if m.ctrl.Mode() != browser.ModeMedia {
		return nil
	}
	snap := m.ctrl.Selection().Snapshot()
	order := make(map[media.Ref]int, len(snap))
	for i, ref := range snap {
		order[ref] = i + 1
	}
	return order
}

func (m Model) renderCell(i int, order map[media.Ref]int) string {
	focused := i == m.cursor.Pos()
	if !focused {
		if s, ok := m.cells[i]; ok {
			return s
		}
	}
	s := m.drawCell(i, focused, order[m.ctrl.Ref(i)])
	if !focused {
		m.cells[i] = s
	}
	return s
}

func (m Model) drawCell(i int, focused bool, rank int) string {
	t := styles.T()
	st := t.S()
	bw, bh := m.boxSize()
	k := m.key(i)

	var box []string
	if m.thumbs.Has(k) {
		box = make([]string, bh)
		for j := range box {
			box[j] = render.EmptyLine(bw)
		}
	} else {
		border := t.Border
		switch {
		case focused:
			border = t.BorderFocus
		case rank > 0:
			border = t.Success
		}
		frame := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(bw-2).
			Height(bh-2).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(t.FgSubtle).
			Render(m.placeholderGlyph(k))
		box = strings.Split(frame, "\n")
	}

	if rank > 0 && len(box) > 0 {
		badge := st.Check.Render(fmt.Sprintf("✓%d", rank))
		box[0] = badge + ansi.Cut(box[0], lipgloss.Width(badge), bw)
	}

	edge := " "
	if focused {
		edge = lipgloss.NewStyle().Foreground(t.BorderFocus).Render("│")
	}

	var sb strings.Builder
	for _, line := range box {
		sb.WriteString(edge + line + edge + "\n")
	}

	label := render.Center(m.ctrl.Label(i), m.cell.Width)
	switch {
	case focused:
		label = st.Cursor.Bold(true).Render(label)
	case rank > 0:
		label = st.Selected.Render(label)
	default:
		label = st.Base.Render(label)
	}
	sb.WriteString(label + "\n")
	sb.WriteString(render.EmptyLine(m.cell.Width))
	return sb.String()
}

func (m Model) placeholderGlyph(k thumbs.Key) string {
	switch {
	case k.Ref == "":
		return "∅"
	case m.thumbs.Enabled():
		return "…"
	case m.ctrl.Mode() == browser.ModeBuckets:
		return "▤"
	}
	return strings.ToUpper(strings.TrimPrefix(filepath.Ext(string(k.Ref)), "."))
}

// Placements returns the thumbnails to draw for the current view, with the
// gallery's top-left corner at the 1-based (row, col).
func (m Model) Placements(row, col int) []thumbs.Placement {
	if !m.thumbs.Enabled() {
		return nil
	}
	n := m.ctrl.Len()
	v := m.viewport()
	start, end := m.cursor.VisibleRange(n, v)
	_, bh := m.boxSize()

	var out []thumbs.Placement
	for i := start; i < end; i++ {
		top := (i/v.Cols - m.cursor.Offset()) * m.cell.Height
		if top+bh > m.Height() {
			break
		}
		k := m.key(i)
		if !m.thumbs.Has(k) {
			continue
		}
		out = append(out, thumbs.Placement{
			Key:   k,
			Row:   row + top,
			Col:   col + (i%v.Cols)*m.cell.Width + 1,
			Scale: m.ctrl.Scale(i),
		})
	}
	return out
}

// ShortHelp implements help.KeyMap. Select-all and clear are only offered
// inside an album.
func (m Model) ShortHelp() []key.Binding {
	ctx := m.Context()
	if ctx == "albums" {
		return []key.Binding{
			m.keys.Help(keymap.ActionOpen, ctx),
			m.keys.Help(keymap.ActionConfirm, "global"),
			m.keys.Help(keymap.ActionBack, ctx),
			m.keys.Help(keymap.ActionHelp, "global"),
		}
	}
	bindings := []key.Binding{
		m.keys.Help(keymap.ActionToggleSelect, ctx),
		m.keys.Help(keymap.ActionPreview, ctx),
	}
	if m.ctrl.CanSelectAll() {
		bindings = append(bindings, m.keys.Help(keymap.ActionSelectAll, ctx))
	}
	if m.ctrl.Selection().Size() > 0 {
		bindings = append(bindings, m.keys.Help(keymap.ActionClearSelect, ctx))
	}
	return append(bindings,
		m.keys.Help(keymap.ActionBack, ctx),
		m.keys.Help(keymap.ActionConfirm, "global"),
		m.keys.Help(keymap.ActionHelp, "global"),
	)
}

// FullHelp implements help.KeyMap.
func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
