// Package headerbar renders the single-line picker header: the app title,
// the album being browsed and the selection counter.
package headerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/vitrine/internal/ui/render"
	"github.com/llehouerou/vitrine/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

const appTitle = "vitrine"

// State is what the header shows.
type State struct {
	Album    string // open album, empty on the album list
	Preview  string // image name while the pager is open
	Selected int
	Max      int
}

var separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// Badge returns the selection counter, e.g. "3/5".
func Badge(selected, maxSelection int) string {
	return fmt.Sprintf("%d/%d", selected, maxSelection)
}

// Render returns the header bar string for the given width.
func Render(s State, width int) string {
	if width < 12 {
		return ""
	}
	t := styles.T()

	badge := t.S().Badge.Render(Badge(s.Selected, s.Max))
	if s.Selected == 0 {
		badge = t.S().Muted.Padding(0, 1).Render(Badge(s.Selected, s.Max))
	}

	crumbs := []string{styles.ApplyBoldGradient(appTitle, t.Primary, t.Secondary)}
	if s.Album != "" {
		crumbs = append(crumbs, t.S().Title.Render(render.Sanitize(s.Album)))
	}
	if s.Preview != "" {
		crumbs = append(crumbs, t.S().Muted.Render(render.Sanitize(s.Preview)))
	}
	left := " " + strings.Join(crumbs, separatorStyle.Render(" › "))

	room := width - lipgloss.Width(badge) - 1
	if lipgloss.Width(left) > room {
		left = ansi.Truncate(left, room, "…")
	}
	return render.Row(left, badge, width)
}
