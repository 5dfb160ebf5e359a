// Package preview drives the full-size pager over one bucket's media. It
// shares the selection model with the browser and exposes a single toggle
// bound to the page on display.
package preview

import (
	"errors"
	"log/slog"

	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/selection"
)

// Event is something the pager view must react to.
type Event interface {
	previewEvent()
}

// CheckedChanged tells the checkmark widget the state of the current page.
type CheckedChanged struct {
	Index    int
	Selected bool
}

// MaxReached reports a toggle rejected because the selection is full.
type MaxReached struct {
	Max int
}

// LoadFailed reports a query the source could not answer.
type LoadFailed struct {
	Err error
}

func (CheckedChanged) previewEvent() {}
func (MaxReached) previewEvent()     {}
func (LoadFailed) previewEvent()     {}

// ErrNoPage is returned when no page is on display.
var ErrNoPage = errors.New("no page on display")

// Result is handed back to the browser when the pager closes.
type Result struct {
	CurrentIndex int
	Selection    []media.Ref
}

// Controller is the pager state machine. All methods must be called from the
// UI loop.
type Controller struct {
	sel    *selection.Model
	loader media.Starter
	filter media.Filter
	log    *slog.Logger

	bucketID int64
	items    []media.Item
	current  int
	initial  int
	loading  bool

	epoch   uint64
	pending *media.Handle
	events  []Event
}

// New returns a pager controller sharing sel.
func New(sel *selection.Model, loader media.Starter, filter media.Filter, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		sel:    sel,
		loader: loader,
		filter: filter,
		log:    logger.With("component", "preview"),
	}
}

// Open writes snapshot into the selection and queries the media of bucketID.
// The pager lands on initialIndex once the rows arrive.
func (c *Controller) Open(bucketID int64, initialIndex int, snapshot []media.Ref) *media.Handle {
	c.sel.Replace(snapshot)
	c.bucketID = bucketID
	c.initial = max(initialIndex, 0)
	c.current = c.initial
	c.items = nil

	c.pending.Cancel()
	c.epoch++
	q := media.MediaQuery(bucketID, c.filter)
	q.Epoch = c.epoch
	c.loading = true
	c.log.Debug("query issued", "kind", q.Kind, "bucket", bucketID, "epoch", q.Epoch)
	c.pending = c.loader.Start(q)
	return c.pending
}

// HandleResult installs res if it answers the latest Open. It reports whether
// the result was applied.
func (c *Controller) HandleResult(res media.Result) bool {
	if res.Query.Epoch != c.epoch || c.pending == nil {
		c.log.Debug("stale result dropped", "epoch", res.Query.Epoch, "current", c.epoch)
		return false
	}
	c.pending = nil
	c.loading = false

	if res.Err != nil {
		c.log.Warn("media query failed", "bucket", c.bucketID, "err", res.Err)
		c.items = nil
		c.current = 0
		c.events = append(c.events, LoadFailed{Err: res.Err})
		return true
	}
	c.items = res.Items
	c.current = clamp(c.initial, len(c.items))
	c.emitChecked()
	return true
}

// Close cancels the pending query. Results arriving later are dropped.
func (c *Controller) Close() {
	c.pending.Cancel()
	c.pending = nil
	c.epoch++
}

// Drain returns the queued events and empties the queue.
func (c *Controller) Drain() []Event {
	ev := c.events
	c.events = nil
	return ev
}

// Len returns the number of pages.
func (c *Controller) Len() int {
	return len(c.items)
}

// Loading reports whether the rows are still being queried.
func (c *Controller) Loading() bool {
	return c.loading
}

// BucketID returns the bucket being paged.
func (c *Controller) BucketID() int64 {
	return c.bucketID
}

// Index returns the current page.
func (c *Controller) Index() int {
	return c.current
}

// Current returns the item on display.
func (c *Controller) Current() (media.Item, bool) {
	if c.current < 0 || c.current >= len(c.items) {
		return media.Item{}, false
	}
	return c.items[c.current], true
}

// Item returns page i.
func (c *Controller) Item(i int) (media.Item, bool) {
	if i < 0 || i >= len(c.items) {
		return media.Item{}, false
	}
	return c.items[i], true
}

// IsCurrentSelected reports whether the page on display is selected.
func (c *Controller) IsCurrentSelected() bool {
	it, ok := c.Current()
	return ok && c.sel.Contains(it.Ref)
}

// SetPage moves to page i, clamped to the available pages.
func (c *Controller) SetPage(i int) {
	if len(c.items) == 0 {
		return
	}
	i = clamp(i, len(c.items))
	if i == c.current {
		return
	}
	c.current = i
	c.emitChecked()
}

// Next moves one page forward.
func (c *Controller) Next() {
	c.SetPage(c.current + 1)
}

// Prev moves one page back.
func (c *Controller) Prev() {
	c.SetPage(c.current - 1)
}

// ToggleCurrent flips the selection of the page on display. A full selection
// queues MaxReached and leaves the selection as it was.
func (c *Controller) ToggleCurrent() (selection.Outcome, error) {
	it, ok := c.Current()
	if !ok {
		return 0, ErrNoPage
	}
	out, err := c.sel.Toggle(it.Ref)
	if err != nil {
		if errors.Is(err, selection.ErrFull) {
			c.events = append(c.events, MaxReached{Max: c.sel.Max()})
		}
		return 0, err
	}
	c.emitChecked()
	return out, nil
}

// Finish closes the pager and returns the page on display with the selection.
func (c *Controller) Finish() Result {
	c.Close()
	return Result{
		CurrentIndex: c.current,
		Selection:    c.sel.Snapshot(),
	}
}

func (c *Controller) emitChecked() {
	c.events = append(c.events, CheckedChanged{Index: c.current, Selected: c.IsCurrentSelected()})
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}
