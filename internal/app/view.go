package app

import (
	"strings"

	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/headerbar"
	"github.com/llehouerou/vitrine/internal/ui/render"
	"github.com/llehouerou/vitrine/internal/ui/styles"
	"github.com/llehouerou/vitrine/internal/ui/thumbs"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	body := m.gallery.View()
	if m.mode == ModePreviewing {
		body = m.pager.View()
	}
	bodyHeight := max(m.height-ui.ChromeHeight, 1)

	view := strings.Join([]string{
		headerbar.Render(m.headerState(), m.width),
		enforceHeight(body, bodyHeight),
		m.renderStatus(),
	}, "\n")

	var placements []thumbs.Placement
	if m.popups.ActivePopup() == PopupNone {
		placements = m.placements()
	}
	view = m.popups.RenderOverlay(view)
	view = enforceHeight(view, m.height)

	// Uploads must reach the terminal before the placements using them.
	return m.uploads + view + m.thumbs.Frame(placements)
}

func (m Model) headerState() headerbar.State {
	s := headerbar.State{
		Album:    m.browser.Title(),
		Selected: m.sel.Size(),
		Max:      m.sel.Max(),
	}
	if m.mode == ModePreviewing {
		if it, ok := m.preview.Current(); ok {
			s.Preview = it.DisplayName
		}
	}
	return s
}

func (m Model) placements() []thumbs.Placement {
	row, col := ui.HeaderHeight+1, 1
	if m.mode == ModePreviewing {
		return m.pager.Placements(row, col)
	}
	return m.gallery.Placements(row, col)
}

func (m Model) renderStatus() string {
	st := styles.T().S()
	if m.status.Text != "" {
		style := st.Muted
		switch m.status.Kind {
		case StatusWarning:
			style = st.Warning
		case StatusError:
			style = st.Error
		case StatusInfo:
		}
		return style.Render(render.Truncate(m.status.Text, m.width))
	}
	if m.mode == ModePreviewing {
		return m.help.View(m.pager)
	}
	return m.help.View(m.gallery)
}

// enforceHeight ensures the view has exactly the specified number of lines.
func enforceHeight(view string, targetHeight int) string {
	lines := strings.Split(view, "\n")
	if len(lines) == targetHeight {
		return view
	}
	if len(lines) < targetHeight {
		for i := len(lines); i < targetHeight; i++ {
			lines = append(lines, "")
		}
	} else {
		lines = lines[:targetHeight]
	}
	return strings.Join(lines, "\n")
}
