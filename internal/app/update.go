package app

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/selection"
	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/action"
	"github.com/llehouerou/vitrine/internal/ui/confirm"
	"github.com/llehouerou/vitrine/internal/ui/gallery"
	"github.com/llehouerou/vitrine/internal/ui/helpbindings"
	"github.com/llehouerou/vitrine/internal/ui/pager"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	if up := m.thumbs.TakeUploads(); up != "" {
		m.uploads += up
		m.uploadGen++
		cmd = tea.Batch(cmd, uploadsFlushedCmd(m.uploadGen))
	}
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case action.Msg:
		return m.handleAction(msg)

	case StatusClearMsg:
		if msg.ID == m.status.ID {
			m.status = Status{}
		}
		return m, nil

	case uploadsFlushedMsg:
		if msg.gen == m.uploadGen {
			m.uploads = ""
		}
		return m, nil

	case gallery.ResultMsg, gallery.ThumbMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.gallery, cmd = m.gallery.Update(msg)
		return m, cmd

	case pager.ResultMsg, pager.ImageMsg, pager.InfoMsg:
		var cmd tea.Cmd
		m.pager, cmd = m.pager.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) resize(width, height int) (Model, tea.Cmd) {
	m.width = width
	m.height = height
	m.popups.SetSize(width, height)
	m.help.Width = width

	body := tea.WindowSizeMsg{Width: width, Height: max(height-ui.ChromeHeight, 1)}
	var gcmd, pcmd tea.Cmd
	m.gallery, gcmd = m.gallery.Update(body)
	m.pager, pcmd = m.pager.Update(body)
	return m, tea.Batch(gcmd, pcmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if handled, cmd := m.popups.HandleKey(msg); handled {
		return m, cmd
	}

	switch m.keys.ResolveIn(msg.String(), "global") {
	case keymap.ActionConfirm:
		return m.finish()
	case keymap.ActionCancel:
		if msg.Type == tea.KeyCtrlC {
			return m.cancel()
		}
		return m.requestCancel()
	case keymap.ActionHelp:
		m.popups.ShowHelp(m.helpContexts())
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode == ModePreviewing {
		m.pager, cmd = m.pager.Update(msg)
	} else {
		m.gallery, cmd = m.gallery.Update(msg)
	}
	return m, cmd
}

func (m Model) helpContexts() []string {
	if m.mode == ModePreviewing {
		return []string{"global", "preview"}
	}
	return []string{"global", m.gallery.Context(), "navigation"}
}

func (m Model) handleAction(msg action.Msg) (Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case gallery.OpenPreview:
		m.mode = ModePreviewing
		var cmd tea.Cmd
		m.pager, cmd = m.pager.Open(a.BucketID, a.Index, m.sel.Snapshot())
		return m, cmd

	case pager.Closed:
		m.mode = ModeBrowsing
		m.sel.Replace(a.Result.Selection)
		var rcmd, scmd tea.Cmd
		m.gallery, rcmd = m.gallery.Refresh()
		m.gallery, scmd = m.gallery.ScrollTo(a.Result.CurrentIndex)
		return m, tea.Batch(rcmd, scmd)

	case gallery.SelectionChanged:
		m.log.Debug("selection changed", "size", a.Size)
		return m, nil

	case gallery.MaxReached:
		return m.maxReached(a.Max)
	case pager.MaxReached:
		return m.maxReached(a.Max)

	case gallery.WillExceedMax:
		if m.toaster != nil {
			m.toaster.WillExceedMax(a.Max, a.Requested)
		}
		return m.setStatus(StatusWarning,
			fmt.Sprintf("Cannot select all: %d more would exceed the limit of %d", a.Requested, a.Max))

	case gallery.LoadFailed:
		return m.setStatus(StatusError, errmsg.Format(a.Op, a.Err))
	case pager.LoadFailed:
		return m.setStatus(StatusError, errmsg.Format(a.Op, a.Err))

	case gallery.BackAtRoot:
		return m.requestCancel()

	case helpbindings.Close:
		m.popups.HideHelp()
		return m, nil

	case confirm.Result:
		if _, ok := a.Context.(discardSelection); ok && a.Confirmed {
			return m.cancel()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) maxReached(maxSelection int) (Model, tea.Cmd) {
	if m.toaster != nil {
		m.toaster.MaxReached(maxSelection)
	}
	return m.setStatus(StatusWarning, fmt.Sprintf("Selection full: %d of %d", m.sel.Size(), maxSelection))
}

func (m Model) setStatus(kind StatusKind, text string) (Model, tea.Cmd) {
	m.statusSeq++
	m.status = Status{ID: m.statusSeq, Text: text, Kind: kind}
	return m, StatusClearCmd(m.statusSeq, m.statusDuration)
}

// finish ends the session with the current selection.
func (m Model) finish() (Model, tea.Cmd) {
	res := m.req.Finished(m.sel.Snapshot())
	m.result = &res
	m.detach()
	m.log.Info("picker confirmed", "selected", len(res.Selection))
	return m, tea.Quit
}

// requestCancel cancels at once when the selection is untouched and asks
// first otherwise.
func (m Model) requestCancel() (Model, tea.Cmd) {
	if slices.Equal(m.sel.Snapshot(), m.initialSelection()) {
		return m.cancel()
	}
	m.popups.ShowConfirm("Discard selection?",
		fmt.Sprintf("%d of %d images selected.", m.sel.Size(), m.sel.Max()),
		discardSelection{})
	return m, nil
}

func (m Model) initialSelection() []media.Ref {
	return selection.New(m.req.MaxSelection, m.req.Selection...).Snapshot()
}

func (m Model) cancel() (Model, tea.Cmd) {
	res := m.req.Canceled()
	m.result = &res
	m.detach()
	m.log.Info("picker canceled")
	return m, tea.Quit
}

func (m Model) detach() {
	m.browser.Detach()
	m.preview.Close()
	if m.toaster != nil {
		m.toaster.Dismiss()
	}
}
