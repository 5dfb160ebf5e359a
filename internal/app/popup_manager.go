package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/ui/confirm"
	"github.com/llehouerou/vitrine/internal/ui/helpbindings"
	"github.com/llehouerou/vitrine/internal/ui/popup"
)

// PopupType identifies which popup is currently active.
type PopupType int

const (
	PopupNone PopupType = iota
	PopupHelp
	PopupConfirm
)

// PopupManager manages the modal popups drawn over the picker.
type PopupManager struct {
	help     helpbindings.Model
	showHelp bool
	confirm  confirm.Model

	// Dimensions for popup rendering
	width  int
	height int
}

// NewPopupManager creates a new PopupManager with initialized components.
func NewPopupManager() PopupManager {
	return PopupManager{
		help:    helpbindings.New(),
		confirm: confirm.New(),
	}
}

// SetSize updates the dimensions for popup rendering.
func (p *PopupManager) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.help.SetSize(width, height)
	p.confirm.SetSize(width, height)
}

// ActivePopup returns which popup is currently active (if any).
func (p *PopupManager) ActivePopup() PopupType {
	// Confirm has priority: it is opened on top of whatever is showing.
	if p.confirm.Active() {
		return PopupConfirm
	}
	if p.showHelp {
		return PopupHelp
	}
	return PopupNone
}

// ShowHelp displays the help popup with the given contexts.
func (p *PopupManager) ShowHelp(contexts []string) {
	p.help.SetContexts(contexts)
	p.help.SetSize(p.width, p.height)
	p.showHelp = true
}

// HideHelp hides the help popup.
func (p *PopupManager) HideHelp() {
	p.showHelp = false
}

// ShowConfirm displays a yes/no dialog. context comes back in the result.
func (p *PopupManager) ShowConfirm(title, message string, context any) {
	p.confirm.Show(title, message, context, p.width, p.height)
}

// HandleKey routes a key to the active popup. It reports whether a popup
// consumed it.
func (p *PopupManager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch p.ActivePopup() {
	case PopupConfirm:
		_, cmd := p.confirm.Update(msg)
		return true, cmd
	case PopupHelp:
		_, cmd := p.help.Update(msg)
		return true, cmd
	case PopupNone:
	}
	return false, nil
}

// RenderOverlay renders active popup(s) on top of the base view.
func (p *PopupManager) RenderOverlay(base string) string {
	if p.showHelp {
		helpView := popup.RenderBordered(p.help.View(), p.width, p.height, popup.SizeAuto)
		base = popup.Compose(base, helpView, p.width, p.height)
	}
	if p.confirm.Active() {
		confirmView := popup.RenderBordered(p.confirm.View(), p.width, p.height, popup.SizeAuto)
		base = popup.Compose(base, confirmView, p.width, p.height)
	}
	return base
}
