// Package confirm provides a yes/no confirmation popup component.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/popup"
	"github.com/llehouerou/vitrine/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Model is a yes/no confirmation popup.
type Model struct {
	ui.Base
	title   string
	message string
	context any
	active  bool
}

// New creates a new confirmation model.
func New() Model {
	return Model{}
}

// Show displays the confirmation popup. context is handed back in the
// Result so the caller knows what was confirmed.
func (m *Model) Show(title, message string, context any, width, height int) {
	m.title = title
	m.message = message
	m.context = context
	m.SetSize(width, height)
	m.active = true
}

// Reset clears the confirmation state.
func (m *Model) Reset() {
	m.title = ""
	m.message = ""
	m.context = nil
	m.active = false
}

// Active returns whether the confirmation is currently shown.
func (m Model) Active() bool {
	return m.active
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var confirmed bool
	switch keyMsg.String() {
	case "enter", "y", "Y":
		confirmed = true
	case "esc", "n", "N", "q":
		confirmed = false
	default:
		return m, nil
	}

	m.active = false
	ctx := m.context
	return m, func() tea.Msg {
		return ActionMsg(Result{Confirmed: confirmed, Context: ctx})
	}
}

// View implements popup.Popup. The caller adds the border.
func (m *Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	st := styles.T().S()

	title := st.Warning.Bold(true).Render(m.title)
	message := st.Base.Render(m.message)
	hint := st.Subtle.Render("Enter/Y: confirm, Esc/N: cancel")
	return title + "\n\n" + message + "\n\n" + hint
}
