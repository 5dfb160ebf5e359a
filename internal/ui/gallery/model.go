// Package gallery is the grid view over the browser controller: the album
// list and the images of one album, with thumbnails drawn by the terminal.
package gallery

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/llehouerou/vitrine/internal/browser"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/cursor"
	"github.com/llehouerou/vitrine/internal/ui/styles"
	"github.com/llehouerou/vitrine/internal/ui/thumbs"
)

// ResultMsg carries a query result back to the gallery.
type ResultMsg struct {
	Result media.Result
}

// ThumbMsg carries a decoded thumbnail, or the error decoding it.
type ThumbMsg struct {
	Key   thumbs.Key
	Thumb thumbs.Thumb
	Err   error
}

// Cell is the size of one grid cell in terminal cells, spacing and label
// included.
type Cell struct {
	Width  int
	Height int
}

const (
	minCellWidth  = 6
	minCellHeight = 5
)

// Model is the gallery state.
type Model struct {
	ui.Base

	ctrl   *browser.Controller
	keys   *keymap.Resolver
	thumbs *thumbs.Renderer
	log    *slog.Logger

	cursor  cursor.Cursor
	cell    Cell
	spinner spinner.Model

	cells   map[int]string // rendered unfocused cells by row index
	pending map[thumbs.Key]bool
}

// New creates a gallery over ctrl. A nil or disabled renderer draws
// placeholders instead of thumbnails.
func New(ctrl *browser.Controller, keys *keymap.Resolver, r *thumbs.Renderer, cell Cell, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cell.Width = max(cell.Width, minCellWidth)
	cell.Height = max(cell.Height, minCellHeight)
	return Model{
		ctrl:    ctrl,
		keys:    keys,
		thumbs:  r,
		log:     logger.With("component", "gallery"),
		cursor:  cursor.New(ui.ScrollMargin),
		cell:    cell,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.T().S().Selected)),
		cells:   make(map[int]string),
		pending: make(map[thumbs.Key]bool),
	}
}

// Controller returns the browser controller behind the view.
func (m Model) Controller() *browser.Controller {
	return m.ctrl
}

// Cursor returns the focused row.
func (m Model) Cursor() int {
	return m.cursor.Pos()
}

// Columns returns the number of cells per grid row.
func (m Model) Columns() int {
	return max(m.Width()/m.cell.Width, ui.MinColumns)
}

func (m Model) viewport() cursor.Viewport {
	return cursor.Viewport{
		Cols: m.Columns(),
		Rows: max(m.Height()/m.cell.Height, 1),
	}
}

// boxSize returns the image area of a cell.
func (m Model) boxSize() (w, h int) {
	return m.cell.Width - 2, m.cell.Height - ui.LabelHeight - 1
}

func (m Model) key(i int) thumbs.Key {
	w, h := m.boxSize()
	return thumbs.Key{
		Ref:    m.ctrl.Ref(i),
		Width:  w,
		Height: h,
	}
}

// Context returns the keymap context of the rows on display.
func (m Model) Context() string {
	if m.ctrl.Mode() == browser.ModeMedia {
		return "gallery"
	}
	return "albums"
}

// invalidate drops the cached rendering of count rows from first.
func (m *Model) invalidate(first, count int) {
	for i := first; i < first+count; i++ {
		delete(m.cells, i)
	}
}

func (m *Model) invalidateAll() {
	clear(m.cells)
}

// syncVisible reports the rows on screen to the controller.
func (m *Model) syncVisible() {
	start, end := m.cursor.VisibleRange(m.ctrl.Len(), m.viewport())
	m.ctrl.SetVisibleRange(start, end-start)
}
