package pager

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/library"
	"github.com/llehouerou/vitrine/internal/ui/render"
	"github.com/llehouerou/vitrine/internal/ui/styles"
	"github.com/llehouerou/vitrine/internal/ui/thumbs"
)

// View renders the page frame: the image area, the checkmark and the image
// details. The image itself is drawn through Placements.
func (m Model) View() string {
	w, h := m.Size()
	if w <= 0 || h <= 0 {
		return ""
	}
	st := styles.T().S()
	iw, ih := m.imageSize()

	it, ok := m.ctrl.Current()
	if !ok {
		msg := "No image"
		if m.ctrl.Loading() {
			msg = "Loading…"
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, st.Muted.Render(msg))
	}

	area := render.EmptyLine(iw)
	k, _ := m.currentKey()
	var image string
	if m.thumbs.Has(k) {
		image = strings.TrimSuffix(strings.Repeat(area+"\n", ih), "\n")
	} else {
		placeholder := "…"
		if !m.thumbs.Enabled() {
			placeholder = "(no image support in this terminal)"
		}
		image = lipgloss.Place(iw, ih, lipgloss.Center, lipgloss.Center, st.Subtle.Render(placeholder))
	}

	check := "[ ] Select"
	checkStyle := st.Muted
	if m.checked {
		check = "[✓] Selected"
		checkStyle = st.Success.Bold(true)
	}
	page := fmt.Sprintf("%d/%d", m.ctrl.Index()+1, m.ctrl.Len())
	left := checkStyle.Render(check) + "  " + st.Title.Render(render.Sanitize(it.DisplayName))
	status := render.Row(left, st.Muted.Render(page), w)

	detail := ""
	if info, known := m.details[it.Ref]; known {
		detail = Details(info, time.Now())
	}
	detail = st.Subtle.Render(render.TruncateAndPad(detail, w))

	return lipgloss.JoinVertical(lipgloss.Left, image, status, detail)
}

// Details formats the indexed facts about an image for the details line.
func Details(info library.Info, now time.Time) string {
	var parts []string
	if info.Width > 0 && info.Height > 0 {
		parts = append(parts, fmt.Sprintf("%d×%d", info.Width, info.Height))
	}
	if info.Size > 0 {
		parts = append(parts, humanize.Bytes(uint64(info.Size))) //nolint:gosec // positive
	}
	if info.Mime != "" {
		parts = append(parts, strings.ToUpper(strings.TrimPrefix(string(info.Mime), "image/")))
	}
	if info.TakenAt > 0 {
		parts = append(parts, humanize.RelTime(time.Unix(info.TakenAt, 0), now, "ago", "from now"))
	}
	if info.Bucket != "" {
		parts = append(parts, info.Bucket)
	}
	return strings.Join(parts, " · ")
}

// Placements returns the page image to draw with the pager's top-left corner
// at the 1-based (row, col).
func (m Model) Placements(row, col int) []thumbs.Placement {
	k, ok := m.currentKey()
	if !ok || !m.thumbs.Has(k) {
		return nil
	}
	return []thumbs.Placement{{Key: k, Row: row, Col: col}}
}

// ShortHelp implements help.KeyMap.
func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Help(keymap.ActionPrevImage, "preview"),
		m.keys.Help(keymap.ActionNextImage, "preview"),
		m.keys.Help(keymap.ActionToggleCheck, "preview"),
		m.keys.Help(keymap.ActionClosePreview, "preview"),
		m.keys.Help(keymap.ActionConfirm, "global"),
	}
}

// FullHelp implements help.KeyMap.
func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
