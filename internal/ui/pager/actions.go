package pager

import (
	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/preview"
	"github.com/llehouerou/vitrine/internal/ui/action"
)

// Closed is sent when the pager is dismissed. Result carries the page on
// display and the selection.
type Closed struct {
	Result preview.Result
}

// ActionType implements action.Action.
func (a Closed) ActionType() string { return "pager.closed" }

// MaxReached reports a toggle rejected because the selection is full.
type MaxReached struct {
	Max int
}

// ActionType implements action.Action.
func (a MaxReached) ActionType() string { return "pager.max_reached" }

// LoadFailed reports a query the library could not answer.
type LoadFailed struct {
	Op  errmsg.Op
	Err error
}

// ActionType implements action.Action.
func (a LoadFailed) ActionType() string { return "pager.load_failed" }

// ActionMsg creates an action.Msg for a pager action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "pager", Action: a}
}
