package browser

// Event is something the view must react to. Controllers queue events and the
// view drains them after each call.
type Event interface {
	browserEvent()
}

// SelectionChanged follows every selection mutation. First and Count are the
// visible range the view reported last; only those rows need a redraw.
type SelectionChanged struct {
	Size  int
	First int
	Count int
}

// MaxReached reports a toggle rejected because the selection is full.
type MaxReached struct {
	Max int
}

// WillExceedMax reports a select-all rejected as a whole.
type WillExceedMax struct {
	Max       int
	Requested int
}

// OpenPreview asks the host to open the pager on Index of the bucket's media.
type OpenPreview struct {
	BucketID int64
	Index    int
}

// RowsChanged follows every installed query result. Restore is the row the
// cursor should land on, or -1.
type RowsChanged struct {
	Mode    Mode
	Empty   bool
	Restore int
}

// LoadFailed reports a query the source could not answer.
type LoadFailed struct {
	Err error
}

func (SelectionChanged) browserEvent() {}
func (MaxReached) browserEvent()       {}
func (WillExceedMax) browserEvent()    {}
func (OpenPreview) browserEvent()      {}
func (RowsChanged) browserEvent()      {}
func (LoadFailed) browserEvent()       {}
