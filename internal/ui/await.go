package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/media"
)

// Await returns a command that blocks on h and wraps its result. A canceled
// handle produces no message.
func Await(h *media.Handle, wrap func(media.Result) tea.Msg) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		res, ok := h.Wait()
		if !ok {
			return nil
		}
		return wrap(res)
	}
}
