package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/browser"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/picker"
	"github.com/llehouerou/vitrine/internal/preview"
	"github.com/llehouerou/vitrine/internal/selection"
	"github.com/llehouerou/vitrine/internal/ui/gallery"
	"github.com/llehouerou/vitrine/internal/ui/pager"
	"github.com/llehouerou/vitrine/internal/ui/styles"
	"github.com/llehouerou/vitrine/internal/ui/thumbs"
)

// Toaster reports capacity rejections outside the terminal.
type Toaster interface {
	MaxReached(maxSelection int)
	WillExceedMax(maxSelection, requested int)
	Dismiss()
}

// Options wires a picker session.
type Options struct {
	Request picker.Request
	Loader  media.Starter
	Info    pager.Describer  // optional image details for the pager
	Thumbs  *thumbs.Renderer // nil draws placeholders
	Toaster Toaster          // optional
	Cell    gallery.Cell
	Logger  *slog.Logger

	StatusDuration time.Duration // zero means DefaultStatusDuration
}

// Model is the root application model.
type Model struct {
	req     picker.Request
	sel     *selection.Model
	browser *browser.Controller
	preview *preview.Controller
	gallery gallery.Model
	pager   pager.Model
	mode    Mode

	keys    *keymap.Resolver
	popups  PopupManager
	help    help.Model
	thumbs  *thumbs.Renderer
	toaster Toaster
	log     *slog.Logger

	status         Status
	statusSeq      int64
	statusDuration time.Duration

	uploads   string // image uploads repeated in each frame until flushed
	uploadGen int

	width, height int
	result        *picker.Result
}

// New creates the picker for opts.Request. The initial selection is
// truncated to the capacity.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.StatusDuration <= 0 {
		opts.StatusDuration = DefaultStatusDuration
	}

	req := opts.Request
	sel := selection.New(req.MaxSelection, req.Selection...)
	keys := keymap.NewResolver(keymap.Bindings)
	ctrl := browser.New(sel, opts.Loader, browser.Options{Filter: req.Filter, Logger: logger})
	prev := preview.New(sel, opts.Loader, req.Filter, logger)

	h := help.New()
	h.Styles.ShortKey = styles.T().S().Selected
	h.Styles.ShortDesc = styles.T().S().Muted
	h.Styles.ShortSeparator = styles.T().S().Subtle

	return Model{
		req:            req,
		sel:            sel,
		browser:        ctrl,
		preview:        prev,
		gallery:        gallery.New(ctrl, keys, opts.Thumbs, opts.Cell, logger),
		pager:          pager.New(prev, keys, opts.Thumbs, opts.Info, logger),
		keys:           keys,
		popups:         NewPopupManager(),
		help:           h,
		thumbs:         opts.Thumbs,
		toaster:        opts.Toaster,
		log:            logger.With("component", "app"),
		statusDuration: opts.StatusDuration,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.log.Info("picker opened",
		"request_code", m.req.RequestCode,
		"max", m.req.MaxSelection,
		"initial", m.sel.Size(),
		"filter", m.req.Filter.String())
	return m.gallery.Init()
}

// Result returns the outcome once the session has ended.
func (m Model) Result() (picker.Result, bool) {
	if m.result == nil {
		return picker.Result{}, false
	}
	return *m.result, true
}

// Selection returns the shared selection model.
func (m Model) Selection() *selection.Model {
	return m.sel
}

// Mode returns the screen on display.
func (m Model) Mode() Mode {
	return m.mode
}

// Status returns the status message on display, if any.
func (m Model) Status() Status {
	return m.status
}

// Cleanup returns the commands freeing every image the session sent to
// the terminal, to be written after the program exits.
func (m Model) Cleanup() string {
	return m.thumbs.Reset()
}
