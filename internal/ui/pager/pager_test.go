package pager

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/library"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/media/mediatest"
	"github.com/llehouerou/vitrine/internal/preview"
	"github.com/llehouerou/vitrine/internal/selection"
	"github.com/llehouerou/vitrine/internal/ui/action"
	"github.com/llehouerou/vitrine/internal/ui/testutil"
)

type fakeDescriber map[media.Ref]library.Info

func (f fakeDescriber) Info(_ context.Context, ref media.Ref) (library.Info, error) {
	info, ok := f[ref]
	if !ok {
		return library.Info{}, library.ErrNotIndexed
	}
	return info, nil
}

func settle(m Model, cmd tea.Cmd) (Model, []action.Action) {
	var acts []action.Action
	queue := testutil.Run(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if a, ok := msg.(action.Msg); ok {
			acts = append(acts, a.Action)
			continue
		}
		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, testutil.Run(next)...)
	}
	return m, acts
}

func press(m Model, k string) (Model, []action.Action) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	switch k {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	m, cmd := m.Update(msg)
	return settle(m, cmd)
}

func openPager(t *testing.T, sel *selection.Model, index int, info Describer) Model {
	t.Helper()
	src := mediatest.New(mediatest.Album(10, "beach", 1, 3000, 3)...)
	ctrl := preview.New(sel, mediatest.Sync{Source: src}, nil, nil)
	m := New(ctrl, keymap.NewResolver(keymap.Bindings), nil, info, nil)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m, cmd := m.Open(10, index, sel.Snapshot())
	m, _ = settle(m, cmd)
	require.Equal(t, 3, ctrl.Len())
	return m
}

func TestPager_OpensOnInitialIndex(t *testing.T) {
	sel := selection.New(2, "beach/b.jpg")
	m := openPager(t, sel, 1, nil)

	assert.Equal(t, 1, m.Controller().Index())
	assert.True(t, m.Checked())
	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "[✓] Selected")
	assert.Contains(t, view, "beach-b.jpg")
	assert.Contains(t, view, "2/3")
}

func TestPager_LoadFailureIsReported(t *testing.T) {
	src := mediatest.New(mediatest.Album(10, "beach", 1, 3000, 3)...)
	src.Err = errors.New("database is locked")
	sel := selection.New(2)
	ctrl := preview.New(sel, mediatest.Sync{Source: src}, nil, nil)
	m := New(ctrl, keymap.NewResolver(keymap.Bindings), nil, nil, nil)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})

	m, cmd := m.Open(10, 0, sel.Snapshot())
	_, acts := settle(m, cmd)

	require.Len(t, acts, 1)
	failed, ok := acts[0].(LoadFailed)
	require.True(t, ok, "got %T", acts[0])
	assert.Equal(t, errmsg.OpPreviewLoad, failed.Op)
	assert.ErrorContains(t, failed.Err, "database is locked")
}

func TestPager_CheckFollowsPage(t *testing.T) {
	sel := selection.New(2, "beach/b.jpg")
	m := openPager(t, sel, 1, nil)

	m, _ = press(m, "l")
	assert.Equal(t, 2, m.Controller().Index())
	assert.False(t, m.Checked())

	m, _ = press(m, "h")
	assert.True(t, m.Checked())
}

func TestPager_ToggleAndMaxReached(t *testing.T) {
	sel := selection.New(1)
	m := openPager(t, sel, 0, nil)

	m, acts := press(m, "space")
	assert.Empty(t, acts)
	assert.True(t, m.Checked())
	assert.Equal(t, []media.Ref{"beach/a.jpg"}, sel.Snapshot())

	m, _ = press(m, "n")
	m, acts = press(m, "x")
	assert.Equal(t, []action.Action{MaxReached{Max: 1}}, acts)
	assert.False(t, m.Checked())
	assert.Equal(t, 1, sel.Size())
}

func TestPager_CloseReturnsResult(t *testing.T) {
	sel := selection.New(3)
	m := openPager(t, sel, 0, nil)
	m, _ = press(m, "l")
	m, _ = press(m, "space")
	m, _ = press(m, "l")

	_, acts := press(m, "esc")
	require.Len(t, acts, 1)
	closed, ok := acts[0].(Closed)
	require.True(t, ok)
	assert.Equal(t, preview.Result{CurrentIndex: 2, Selection: []media.Ref{"beach/b.jpg"}}, closed.Result)
}

func TestPager_ShowsDetails(t *testing.T) {
	info := fakeDescriber{
		"beach/a.jpg": {Width: 1920, Height: 1080, Size: 2_300_000, Mime: media.MimeJPEG},
	}
	m := openPager(t, selection.New(1), 0, info)

	assert.Contains(t, testutil.StripANSI(m.View()), "1920×1080 · 2.3 MB · JPEG")
}

func TestDetails(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	info := library.Info{
		Width:   4000,
		Height:  3000,
		Size:    5_120_000,
		Mime:    media.MimePNG,
		TakenAt: now.Add(-72 * time.Hour).Unix(),
		Bucket:  "Holidays",
	}
	assert.Equal(t, "4000×3000 · 5.1 MB · PNG · 3 days ago · Holidays", Details(info, now))
	assert.Empty(t, Details(library.Info{}, now))
}
