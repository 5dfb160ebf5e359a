// Package app is the root bubbletea model of the picker. It hosts the
// gallery and the pager over one shared selection and decides when the
// session ends.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the screen on display.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModePreviewing
)

// StatusKind selects how a status message is styled.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusWarning
	StatusError
)

// Status is a transient message shown in place of the key hints.
type Status struct {
	ID   int64
	Text string
	Kind StatusKind
}

// StatusClearMsg is sent to clear a specific status after a delay.
type StatusClearMsg struct {
	ID int64
}

// DefaultStatusDuration is how long statuses are displayed.
const DefaultStatusDuration = 3 * time.Second

// StatusClearCmd returns a command that clears the status after d.
func StatusClearCmd(id int64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusClearMsg{ID: id}
	})
}

// uploadWindow is how long queued image uploads are repeated in every
// frame. The renderer may skip frames, so a single write could be lost.
const uploadWindow = 250 * time.Millisecond

// uploadsFlushedMsg ends the upload window of generation gen.
type uploadsFlushedMsg struct {
	gen int
}

func uploadsFlushedCmd(gen int) tea.Cmd {
	return tea.Tick(uploadWindow, func(time.Time) tea.Msg {
		return uploadsFlushedMsg{gen: gen}
	})
}

// discardSelection is the confirm context of a cancel with a modified
// selection.
type discardSelection struct{}
