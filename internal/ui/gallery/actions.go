package gallery

import (
	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/ui/action"
)

// OpenPreview asks the app to open the pager on Index of the bucket's media.
type OpenPreview struct {
	BucketID int64
	Index    int
}

// ActionType implements action.Action.
func (a OpenPreview) ActionType() string { return "gallery.open_preview" }

// SelectionChanged reports the new selection size.
type SelectionChanged struct {
	Size int
}

// ActionType implements action.Action.
func (a SelectionChanged) ActionType() string { return "gallery.selection_changed" }

// MaxReached reports a toggle rejected because the selection is full.
type MaxReached struct {
	Max int
}

// ActionType implements action.Action.
func (a MaxReached) ActionType() string { return "gallery.max_reached" }

// WillExceedMax reports a select-all rejected as a whole.
type WillExceedMax struct {
	Max       int
	Requested int
}

// ActionType implements action.Action.
func (a WillExceedMax) ActionType() string { return "gallery.will_exceed_max" }

// LoadFailed reports a query the library could not answer.
type LoadFailed struct {
	Op  errmsg.Op
	Err error
}

// ActionType implements action.Action.
func (a LoadFailed) ActionType() string { return "gallery.load_failed" }

// BackAtRoot is sent when back is pressed on the album list.
type BackAtRoot struct{}

// ActionType implements action.Action.
func (a BackAtRoot) ActionType() string { return "gallery.back_at_root" }

// ActionMsg creates an action.Msg for a gallery action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "gallery", Action: a}
}
