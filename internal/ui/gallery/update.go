package gallery

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/browser"
	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/action"
)

// Init queries the album list.
func (m Model) Init() tea.Cmd {
	return m.await(m.ctrl.Load())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.invalidateAll()
		m.cursor.EnsureVisible(m.ctrl.Len(), m.viewport())
		m.syncVisible()
		return m, m.requestThumbs()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResultMsg:
		if !m.ctrl.HandleResult(msg.Result) {
			return m, nil
		}
		return m, tea.Batch(append(m.drain(), m.requestThumbs())...)

	case ThumbMsg:
		return m.handleThumb(msg)

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	act := m.keys.ResolveIn(msg.String(), m.Context(), "navigation", "global")
	n := m.ctrl.Len()
	v := m.viewport()
	pos := m.cursor.Pos()

	var cmd tea.Cmd
	switch act {
	case keymap.ActionMoveLeft:
		m.cursor.Move(-1, n, v)
	case keymap.ActionMoveRight:
		m.cursor.Move(1, n, v)
	case keymap.ActionMoveUp:
		m.cursor.MoveRow(-1, n, v)
	case keymap.ActionMoveDown:
		m.cursor.MoveRow(1, n, v)
	case keymap.ActionJumpStart:
		m.cursor.JumpStart()
	case keymap.ActionJumpEnd:
		m.cursor.JumpEnd(n, v)
	case keymap.ActionPageUp:
		m.cursor.Page(-1, n, v)
	case keymap.ActionPageDown:
		m.cursor.Page(1, n, v)
	case keymap.ActionOpen:
		h, err := m.ctrl.OpenBucket(pos)
		if err != nil {
			return m, nil
		}
		m.resetRows()
		cmd = m.await(h)
	case keymap.ActionBack:
		refs := m.itemRefs()
		h, ok := m.ctrl.Back()
		if !ok {
			return m, emit(BackAtRoot{})
		}
		m.thumbs.Forget(refs...)
		m.resetRows()
		cmd = m.await(h)
	case keymap.ActionToggleSelect:
		// Rejections arrive as events.
		_, _ = m.ctrl.Toggle(pos)
	case keymap.ActionSelectAll:
		if !m.ctrl.CanSelectAll() {
			return m, nil
		}
		_, _ = m.ctrl.SelectAll()
	case keymap.ActionClearSelect:
		if m.ctrl.Mode() != browser.ModeMedia {
			return m, nil
		}
		m.ctrl.Clear()
	case keymap.ActionPreview:
		_ = m.ctrl.OpenPreview(pos)
	case keymap.ActionReload:
		cmd = m.await(m.ctrl.Reload())
	default:
		return m, nil
	}

	m.syncVisible()
	cmds := append(m.drain(), cmd, m.requestThumbs())
	return m, tea.Batch(cmds...)
}

// ScrollTo moves the cursor to row i, as when the pager closes on it.
func (m Model) ScrollTo(i int) (Model, tea.Cmd) {
	m.cursor.Jump(i, m.ctrl.Len(), m.viewport())
	m.syncVisible()
	return m, m.requestThumbs()
}

// Refresh redraws every cell, for changes made while the gallery was hidden.
func (m Model) Refresh() (Model, tea.Cmd) {
	m.invalidateAll()
	m.syncVisible()
	return m, tea.Batch(append(m.drain(), m.requestThumbs())...)
}

func (m *Model) resetRows() {
	m.cursor.Reset()
	m.invalidateAll()
}

func (m Model) itemRefs() []media.Ref {
	items := m.ctrl.Items()
	refs := make([]media.Ref, len(items))
	for i, it := range items {
		refs[i] = it.Ref
	}
	return refs
}

// await turns a query handle into a command and starts the spinner. A
// second tick chain started while one runs is dropped by the spinner.
func (m Model) await(h *media.Handle) tea.Cmd {
	cmd := ui.Await(h, func(res media.Result) tea.Msg { return ResultMsg{Result: res} })
	if !m.ctrl.Loading() {
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// drain turns queued controller events into view changes and app actions.
func (m *Model) drain() []tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range m.ctrl.Drain() {
		switch ev := ev.(type) {
		case browser.SelectionChanged:
			m.invalidate(ev.First, ev.Count)
			cmds = append(cmds, emit(SelectionChanged{Size: ev.Size}))
		case browser.MaxReached:
			cmds = append(cmds, emit(MaxReached{Max: ev.Max}))
		case browser.WillExceedMax:
			cmds = append(cmds, emit(WillExceedMax{Max: ev.Max, Requested: ev.Requested}))
		case browser.OpenPreview:
			cmds = append(cmds, emit(OpenPreview{BucketID: ev.BucketID, Index: ev.Index}))
		case browser.RowsChanged:
			m.invalidateAll()
			n := m.ctrl.Len()
			if ev.Restore >= 0 {
				m.cursor.Jump(ev.Restore, n, m.viewport())
			} else {
				m.cursor.ClampToBounds(n)
				m.cursor.EnsureVisible(n, m.viewport())
			}
			m.syncVisible()
		case browser.LoadFailed:
			op := errmsg.OpBucketsLoad
			if m.ctrl.Mode() == browser.ModeMedia {
				op = errmsg.OpMediaLoad
			}
			cmds = append(cmds, emit(LoadFailed{Op: op, Err: ev.Err}))
		}
	}
	return cmds
}

// requestThumbs starts decoding the visible thumbnails not yet stored.
func (m *Model) requestThumbs() tea.Cmd {
	if !m.thumbs.Enabled() {
		return nil
	}
	start, end := m.cursor.VisibleRange(m.ctrl.Len(), m.viewport())
	var cmds []tea.Cmd
	for i := start; i < end; i++ {
		k := m.key(i)
		if k.Ref == "" || m.pending[k] || m.thumbs.Has(k) {
			continue
		}
		m.pending[k] = true
		r := m.thumbs
		cmds = append(cmds, func() tea.Msg {
			t, err := r.Load(k)
			return ThumbMsg{Key: k, Thumb: t, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) handleThumb(msg ThumbMsg) (Model, tea.Cmd) {
	delete(m.pending, msg.Key)
	if msg.Err == nil {
		msg.Err = m.thumbs.Store(msg.Thumb)
	}
	if msg.Err != nil {
		m.log.Debug("thumbnail unavailable", "ref", msg.Key.Ref, "err", msg.Err)
		return m, nil
	}
	start, end := m.cursor.VisibleRange(m.ctrl.Len(), m.viewport())
	for i := start; i < end; i++ {
		if m.ctrl.Ref(i) == msg.Key.Ref {
			delete(m.cells, i)
		}
	}
	return m, nil
}

func emit(a action.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg(a) }
}
