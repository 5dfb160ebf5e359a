package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/ui/action"
	"github.com/llehouerou/vitrine/internal/ui/popup"
)

var namedKeys = map[string]tea.KeyType{
	"enter": tea.KeyEnter,
	"esc":   tea.KeyEscape,
	"up":    tea.KeyUp,
	"down":  tea.KeyDown,
	"tab":   tea.KeyTab,
}

// PopupHarness drives a popup with key presses and records the actions it
// answers with.
type PopupHarness struct {
	popup   popup.Popup
	actions []action.Action
}

// NewPopupHarness wraps p. Actions from p.Init are recorded like any other.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.record(p.Init())
	return h
}

// Popup returns the wrapped popup.
func (h *PopupHarness) Popup() popup.Popup {
	return h.popup
}

// View returns the popup's view without styling.
func (h *PopupHarness) View() string {
	return StripANSI(h.popup.View())
}

// ViewContains reports whether the unstyled view contains substr.
func (h *PopupHarness) ViewContains(substr string) bool {
	return strings.Contains(h.View(), substr)
}

// Press sends one key. "enter", "esc", "up", "down" and "tab" name special
// keys; anything else is typed as runes.
func (h *PopupHarness) Press(keys ...string) {
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		if t, ok := namedKeys[k]; ok {
			msg = tea.KeyMsg{Type: t}
		}
		var cmd tea.Cmd
		h.popup, cmd = h.popup.Update(msg)
		h.record(cmd)
	}
}

func (h *PopupHarness) record(cmd tea.Cmd) {
	h.actions = append(h.actions, Actions(cmd)...)
}

// Actions returns every action recorded so far.
func (h *PopupHarness) Actions() []action.Action {
	return h.actions
}

// LastAction returns the most recent action, or nil.
func (h *PopupHarness) LastAction() action.Action {
	if len(h.actions) == 0 {
		return nil
	}
	return h.actions[len(h.actions)-1]
}
