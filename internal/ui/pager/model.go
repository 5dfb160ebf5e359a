// Package pager shows one image at a time over the preview controller, with
// a checkmark bound to the page on display.
package pager

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/library"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/preview"
	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/action"
	"github.com/llehouerou/vitrine/internal/ui/thumbs"
)

// footerHeight is the checkmark line and the details line.
const footerHeight = 2

const infoTimeout = 2 * time.Second

// Describer looks up the indexed details of an image. *library.Library
// implements it.
type Describer interface {
	Info(ctx context.Context, ref media.Ref) (library.Info, error)
}

// ResultMsg carries a query result back to the pager.
type ResultMsg struct {
	Result media.Result
}

// ImageMsg carries the decoded page image.
type ImageMsg struct {
	Key   thumbs.Key
	Thumb thumbs.Thumb
	Err   error
}

// InfoMsg carries the details of an image.
type InfoMsg struct {
	Ref  media.Ref
	Info library.Info
	Err  error
}

// Model is the pager state.
type Model struct {
	ui.Base

	ctrl   *preview.Controller
	keys   *keymap.Resolver
	thumbs *thumbs.Renderer
	info   Describer
	log    *slog.Logger

	checked bool
	details map[media.Ref]library.Info
	pending map[thumbs.Key]bool
}

// New creates a pager over ctrl. info may be nil.
func New(ctrl *preview.Controller, keys *keymap.Resolver, r *thumbs.Renderer, info Describer, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Model{
		ctrl:    ctrl,
		keys:    keys,
		thumbs:  r,
		info:    info,
		log:     logger.With("component", "pager"),
		details: make(map[media.Ref]library.Info),
		pending: make(map[thumbs.Key]bool),
	}
}

// Controller returns the preview controller behind the view.
func (m Model) Controller() *preview.Controller {
	return m.ctrl
}

// Checked reports the checkmark state of the page on display.
func (m Model) Checked() bool {
	return m.checked
}

// Open starts paging bucketID at index with snapshot as the selection.
func (m Model) Open(bucketID int64, index int, snapshot []media.Ref) (Model, tea.Cmd) {
	m.checked = false
	h := m.ctrl.Open(bucketID, index, snapshot)
	return m, ui.Await(h, func(res media.Result) tea.Msg { return ResultMsg{Result: res} })
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, m.requestCurrent()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResultMsg:
		if !m.ctrl.HandleResult(msg.Result) {
			return m, nil
		}
		return m, m.afterChange()

	case ImageMsg:
		delete(m.pending, msg.Key)
		if msg.Err == nil {
			msg.Err = m.thumbs.Store(msg.Thumb)
		}
		if msg.Err != nil {
			m.log.Debug("preview image unavailable", "ref", msg.Key.Ref, "err", msg.Err)
		}
		return m, nil

	case InfoMsg:
		if msg.Err != nil {
			m.log.Debug("image details unavailable", "ref", msg.Ref, "err", msg.Err)
			return m, nil
		}
		m.details[msg.Ref] = msg.Info
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.keys.ResolveIn(msg.String(), "preview", "navigation") {
	case keymap.ActionNextImage:
		m.ctrl.Next()
	case keymap.ActionPrevImage:
		m.ctrl.Prev()
	case keymap.ActionJumpStart:
		m.ctrl.SetPage(0)
	case keymap.ActionJumpEnd:
		m.ctrl.SetPage(m.ctrl.Len() - 1)
	case keymap.ActionToggleCheck:
		// Rejections arrive as events.
		_, _ = m.ctrl.ToggleCurrent()
	case keymap.ActionClosePreview:
		res := m.ctrl.Finish()
		return m, emit(Closed{Result: res})
	default:
		return m, nil
	}
	return m, m.afterChange()
}

// afterChange drains the controller and loads what the new page needs.
func (m *Model) afterChange() tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range m.ctrl.Drain() {
		switch ev := ev.(type) {
		case preview.CheckedChanged:
			m.checked = ev.Selected
		case preview.MaxReached:
			cmds = append(cmds, emit(MaxReached{Max: ev.Max}))
		case preview.LoadFailed:
			cmds = append(cmds, emit(LoadFailed{Op: errmsg.OpPreviewLoad, Err: ev.Err}))
		}
	}
	cmds = append(cmds, m.requestCurrent(), m.requestInfo())
	return tea.Batch(cmds...)
}

func (m Model) imageSize() (w, h int) {
	return m.Width(), max(m.Height()-footerHeight, 1)
}

func (m Model) currentKey() (thumbs.Key, bool) {
	it, ok := m.ctrl.Current()
	if !ok {
		return thumbs.Key{}, false
	}
	w, h := m.imageSize()
	return thumbs.Key{Ref: it.Ref, Width: w, Height: h}, true
}

// requestCurrent decodes the page image and its neighbours.
func (m *Model) requestCurrent() tea.Cmd {
	if !m.thumbs.Enabled() || m.Width() <= 0 {
		return nil
	}
	w, h := m.imageSize()
	var cmds []tea.Cmd
	for _, i := range []int{m.ctrl.Index(), m.ctrl.Index() + 1, m.ctrl.Index() - 1} {
		it, ok := m.ctrl.Item(i)
		if !ok {
			continue
		}
		k := thumbs.Key{Ref: it.Ref, Width: w, Height: h}
		if m.pending[k] || m.thumbs.Has(k) {
			continue
		}
		m.pending[k] = true
		r := m.thumbs
		cmds = append(cmds, func() tea.Msg {
			t, err := r.Load(k)
			return ImageMsg{Key: k, Thumb: t, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) requestInfo() tea.Cmd {
	it, ok := m.ctrl.Current()
	if !ok || m.info == nil {
		return nil
	}
	if _, known := m.details[it.Ref]; known {
		return nil
	}
	d := m.info
	ref := it.Ref
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), infoTimeout)
		defer cancel()
		info, err := d.Info(ctx, ref)
		return InfoMsg{Ref: ref, Info: info, Err: err}
	}
}

func emit(a action.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg(a) }
}
