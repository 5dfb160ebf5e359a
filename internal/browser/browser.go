// Package browser drives the two-level gallery: the bucket list and the media
// grid of one bucket. It binds selection state onto media rows and turns
// query results, user actions and selection changes into events for the view.
package browser

import (
	"errors"
	"log/slog"

	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/selection"
)

// Mode is the kind of rows on display.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeBuckets
	ModeMedia
)

func (m Mode) String() string {
	switch m {
	case ModeBuckets:
		return "buckets"
	case ModeMedia:
		return "media"
	}
	return "empty"
}

// Row scales for the grid.
const (
	SelectedScale   = 0.8
	UnselectedScale = 1.0
)

// Mode errors.
var (
	ErrNotMediaMode  = errors.New("not showing media")
	ErrNotBucketMode = errors.New("not showing buckets")
)

// ErrIndexOutOfRange is returned when a row index does not exist.
var ErrIndexOutOfRange = errors.New("row index out of range")

// Controller is the browser state machine. All methods must be called from
// the UI loop.
type Controller struct {
	sel    *selection.Model
	loader media.Starter
	filter media.Filter
	log    *slog.Logger

	mode     Mode
	bucketID int64
	title    string
	buckets  []media.Bucket
	items    []media.Item
	loading  bool

	epoch   uint64
	pending *media.Handle

	first, count int
	lastBucketID int64
	restoring    bool

	events      []Event
	unsubscribe func()
}

// Options configures a Controller.
type Options struct {
	Filter media.Filter
	Logger *slog.Logger
}

// New returns a controller bound to sel and loader. It observes sel until
// Detach.
func New(sel *selection.Model, loader media.Starter, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		sel:    sel,
		loader: loader,
		filter: opts.Filter,
		log:    logger.With("component", "browser"),
	}
	c.unsubscribe = sel.Subscribe(c.onSelectionChanged)
	return c
}

// Detach cancels the pending query and stops observing the selection. Results
// arriving later are dropped.
func (c *Controller) Detach() {
	c.pending.Cancel()
	c.pending = nil
	c.epoch++
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Load shows the bucket list and queries it.
func (c *Controller) Load() *media.Handle {
	c.mode = ModeBuckets
	c.bucketID = media.AllMediaBucketID
	c.title = ""
	c.items = nil
	c.restoring = false
	return c.issue(media.BucketsQuery(c.filter))
}

// OpenBucket descends into the bucket at index of the bucket list.
func (c *Controller) OpenBucket(index int) (*media.Handle, error) {
	if c.mode != ModeBuckets {
		return nil, ErrNotBucketMode
	}
	if index < 0 || index >= len(c.buckets) {
		return nil, ErrIndexOutOfRange
	}
	b := c.buckets[index]
	c.mode = ModeMedia
	c.bucketID = b.ID
	c.lastBucketID = b.ID
	c.title = b.DisplayName
	c.items = nil
	c.restoring = false
	return c.issue(media.MediaQuery(b.ID, c.filter)), nil
}

// Back returns from media rows to the bucket list and re-queries it. It
// reports false, doing nothing, when already on the bucket list.
func (c *Controller) Back() (*media.Handle, bool) {
	if c.mode != ModeMedia {
		return nil, false
	}
	c.mode = ModeBuckets
	c.title = ""
	c.items = nil
	c.restoring = true
	return c.issue(media.BucketsQuery(c.filter)), true
}

// Reload re-issues the query for the current mode.
func (c *Controller) Reload() *media.Handle {
	switch c.mode {
	case ModeMedia:
		return c.issue(media.MediaQuery(c.bucketID, c.filter))
	case ModeBuckets:
		return c.issue(media.BucketsQuery(c.filter))
	}
	return c.Load()
}

func (c *Controller) issue(q media.Query) *media.Handle {
	c.pending.Cancel()
	c.epoch++
	q.Epoch = c.epoch
	c.loading = true
	c.log.Debug("query issued", "kind", q.Kind, "bucket", q.BucketID, "epoch", q.Epoch)
	c.pending = c.loader.Start(q)
	return c.pending
}

// Epoch returns the epoch of the latest issued query.
func (c *Controller) Epoch() uint64 {
	return c.epoch
}

// HandleResult installs res if it answers the latest query. It reports
// whether the result was applied.
func (c *Controller) HandleResult(res media.Result) bool {
	if res.Query.Epoch != c.epoch || c.pending == nil {
		c.log.Debug("stale result dropped", "kind", res.Query.Kind, "epoch", res.Query.Epoch, "current", c.epoch)
		return false
	}
	c.pending = nil
	c.loading = false

	restore := -1
	if res.Err != nil {
		c.log.Warn("media query failed", "kind", res.Query.Kind, "err", res.Err)
		c.buckets, c.items = c.emptyRows()
		c.events = append(c.events, LoadFailed{Err: res.Err}, RowsChanged{Mode: c.mode, Empty: true, Restore: restore})
		return true
	}

	switch res.Query.Kind {
	case media.QueryBuckets:
		c.buckets = withAllMedia(res.Buckets)
		if c.restoring {
			restore = c.bucketIndex(c.lastBucketID)
		}
		c.restoring = false
	case media.QueryAllMedia, media.QueryByBucket:
		c.items = res.Items
	}
	c.events = append(c.events, RowsChanged{Mode: c.mode, Empty: c.Len() == 0, Restore: restore})
	return true
}

func (c *Controller) emptyRows() ([]media.Bucket, []media.Item) {
	if c.mode == ModeBuckets {
		return nil, c.items
	}
	return c.buckets, nil
}

func withAllMedia(buckets []media.Bucket) []media.Bucket {
	if len(buckets) == 0 {
		return nil
	}
	out := make([]media.Bucket, 0, len(buckets)+1)
	out = append(out, media.Bucket{
		ID:          media.AllMediaBucketID,
		DisplayName: media.AllMediaLabel,
		CoverRef:    buckets[0].CoverRef,
	})
	return append(out, buckets...)
}

func (c *Controller) bucketIndex(id int64) int {
	for i, b := range c.buckets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) onSelectionChanged(ev selection.Changed) {
	c.events = append(c.events, SelectionChanged{Size: ev.Size, First: c.first, Count: c.count})
}

// Drain returns the queued events and empties the queue.
func (c *Controller) Drain() []Event {
	ev := c.events
	c.events = nil
	return ev
}

// Mode returns the kind of rows on display.
func (c *Controller) Mode() Mode {
	return c.mode
}

// BucketID returns the open bucket in media mode.
func (c *Controller) BucketID() int64 {
	return c.bucketID
}

// Title returns the label of the open bucket, empty on the bucket list.
func (c *Controller) Title() string {
	return c.title
}

// Loading reports whether a query is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Filter returns the active type filter.
func (c *Controller) Filter() media.Filter {
	return c.filter
}

// Selection returns the shared selection model.
func (c *Controller) Selection() *selection.Model {
	return c.sel
}

// Len returns the number of rows on display.
func (c *Controller) Len() int {
	switch c.mode {
	case ModeBuckets:
		return len(c.buckets)
	case ModeMedia:
		return len(c.items)
	}
	return 0
}

// Buckets returns the bucket rows. The slice must not be modified.
func (c *Controller) Buckets() []media.Bucket {
	return c.buckets
}

// Items returns the media rows. The slice must not be modified.
func (c *Controller) Items() []media.Item {
	return c.items
}

// Label returns the display label of row i.
func (c *Controller) Label(i int) string {
	if i < 0 || i >= c.Len() {
		return ""
	}
	if c.mode == ModeBuckets {
		return c.buckets[i].DisplayName
	}
	return c.items[i].DisplayName
}

// Ref returns the image to draw for row i: the cover of a bucket or the
// image of a media row.
func (c *Controller) Ref(i int) media.Ref {
	if i < 0 || i >= c.Len() {
		return ""
	}
	if c.mode == ModeBuckets {
		return c.buckets[i].CoverRef
	}
	return c.items[i].Ref
}

// IsSelected reports whether media row i is selected. Always false on the
// bucket list.
func (c *Controller) IsSelected(i int) bool {
	if c.mode != ModeMedia || i < 0 || i >= len(c.items) {
		return false
	}
	return c.sel.Contains(c.items[i].Ref)
}

// Scale returns the draw scale of row i.
func (c *Controller) Scale(i int) float64 {
	if c.IsSelected(i) {
		return SelectedScale
	}
	return UnselectedScale
}

// SetVisibleRange records the rows on screen for partial redraw hints.
func (c *Controller) SetVisibleRange(first, count int) {
	c.first = max(first, 0)
	c.count = max(count, 0)
}

// VisibleRange returns the last range set by the view.
func (c *Controller) VisibleRange() (first, count int) {
	return c.first, c.count
}

// Toggle flips the selection of media row i. A full selection queues
// MaxReached and leaves the selection as it was.
func (c *Controller) Toggle(i int) (selection.Outcome, error) {
	if c.mode != ModeMedia {
		return 0, ErrNotMediaMode
	}
	if i < 0 || i >= len(c.items) {
		return 0, ErrIndexOutOfRange
	}
	out, err := c.sel.Toggle(c.items[i].Ref)
	if errors.Is(err, selection.ErrFull) {
		c.events = append(c.events, MaxReached{Max: c.sel.Max()})
	}
	return out, err
}

// OpenPreview queues a request to preview media row i.
func (c *Controller) OpenPreview(i int) error {
	if c.mode != ModeMedia {
		return ErrNotMediaMode
	}
	if i < 0 || i >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.events = append(c.events, OpenPreview{BucketID: c.bucketID, Index: i})
	return nil
}

// CanSelectAll reports whether select-all is offered.
func (c *Controller) CanSelectAll() bool {
	return c.mode == ModeMedia && len(c.items) > 0
}

// SelectAll adds every media row to the selection, or none of them when they
// would not all fit, in which case WillExceedMax is queued.
func (c *Controller) SelectAll() (int, error) {
	if c.mode != ModeMedia {
		return 0, ErrNotMediaMode
	}
	refs := make([]media.Ref, len(c.items))
	for i, it := range c.items {
		refs[i] = it.Ref
	}
	n, err := c.sel.AddAll(refs)
	var capErr *selection.CapacityError
	if errors.As(err, &capErr) {
		c.events = append(c.events, WillExceedMax{Max: capErr.Max, Requested: capErr.Requested})
	}
	return n, err
}

// Clear empties the selection.
func (c *Controller) Clear() {
	c.sel.Clear()
}

// IndexOfRef returns the media row showing ref, or -1.
func (c *Controller) IndexOfRef(ref media.Ref) int {
	for i, it := range c.items {
		if it.Ref == ref {
			return i
		}
	}
	return -1
}
