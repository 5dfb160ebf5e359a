// Package testutil holds helpers shared by the UI component tests.
package testutil

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/ui/action"
)

var sgr = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color and style sequences so views can be compared as
// plain text.
func StripANSI(s string) string {
	return sgr.ReplaceAllString(s, "")
}

// Lines splits a rendered view into its plain-text lines.
func Lines(view string) []string {
	return strings.Split(StripANSI(view), "\n")
}

// Run executes cmd and flattens batches into the messages they produce.
// Nil commands and nil messages are skipped.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Run(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// Actions returns the actions cmd sends to the app, in order.
func Actions(cmd tea.Cmd) []action.Action {
	var out []action.Action
	for _, msg := range Run(cmd) {
		if m, ok := msg.(action.Msg); ok {
			out = append(out, m.Action)
		}
	}
	return out
}
