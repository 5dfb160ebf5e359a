package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/vitrine/internal/ui/action"
	"github.com/llehouerou/vitrine/internal/ui/popup"
)

type picked struct{ n int }

func (picked) ActionType() string { return "test.picked" }

func send(a action.Action) tea.Cmd {
	return func() tea.Msg { return action.Msg{Source: "test", Action: a} }
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "3/10 selected", StripANSI("\x1b[1;38;5;42m3/10\x1b[0m selected"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"beach", "", "✓1"}, Lines("\x1b[1mbeach\x1b[0m\n\n✓1"))
}

func TestRun_FlattensBatches(t *testing.T) {
	quit := func() tea.Msg { return tea.QuitMsg{} }
	cmd := tea.Batch(send(picked{1}), nil, tea.Batch(func() tea.Msg { return nil }, quit))

	msgs := Run(cmd)

	assert.Len(t, msgs, 2)
	assert.Equal(t, tea.QuitMsg{}, msgs[1])
	assert.Nil(t, Run(nil))
}

func TestActions_KeepsOnlyActions(t *testing.T) {
	cmd := tea.Batch(send(picked{1}), func() tea.Msg { return tea.QuitMsg{} }, send(picked{2}))

	assert.Equal(t, []action.Action{picked{1}, picked{2}}, Actions(cmd))
}

// counter is a popup that answers enter with the number of keys typed
// before it.
type counter struct {
	typed int
}

func (c *counter) Init() tea.Cmd { return send(picked{-1}) }

func (c *counter) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	if k.Type == tea.KeyEnter {
		return c, send(picked{c.typed})
	}
	c.typed++
	return c, nil
}

func (c *counter) View() string { return "\x1b[1mtyped\x1b[0m" }

func (c *counter) SetSize(int, int) {}

func TestPopupHarness(t *testing.T) {
	h := NewPopupHarness(&counter{})
	assert.Equal(t, picked{-1}, h.LastAction(), "init action is recorded")

	h.Press("a", "down", "enter")

	assert.Equal(t, picked{2}, h.LastAction())
	assert.Len(t, h.Actions(), 2)
	assert.Equal(t, "typed", h.View())
	assert.True(t, h.ViewContains("type"))
	assert.IsType(t, &counter{}, h.Popup())
}

func TestPopupHarness_NoActions(t *testing.T) {
	h := NewPopupHarness(&noop{})
	assert.Nil(t, h.LastAction())
}

type noop struct{}

func (n *noop) Init() tea.Cmd { return nil }
func (n *noop) Update(tea.Msg) (popup.Popup, tea.Cmd) { return n, nil }
func (n *noop) View() string { return "" }
func (n *noop) SetSize(int, int) {}
