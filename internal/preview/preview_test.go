package preview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vitrine/internal/browser"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/media/mediatest"
	"github.com/llehouerou/vitrine/internal/selection"
)

func source() *mediatest.Source {
	var entries []mediatest.Entry
	entries = append(entries, mediatest.Album(10, "beach", 1, 3000, 3)...)
	entries = append(entries, mediatest.Album(20, "city", 100, 2000, 4)...)
	return mediatest.New(entries...)
}

func open(t *testing.T, c *Controller, bucket int64, index int, snapshot []media.Ref) {
	t.Helper()
	res, ok := c.Open(bucket, index, snapshot).Wait()
	require.True(t, ok)
	require.True(t, c.HandleResult(res))
}

func TestOpen_WritesSnapshotBeforeQuerying(t *testing.T) {
	sel := selection.New(3, "old")
	loader := &mediatest.Deferred{Source: source()}
	c := New(sel, loader, nil, nil)

	c.Open(20, 1, []media.Ref{"a", "b"})

	assert.Equal(t, []media.Ref{"a", "b"}, sel.Snapshot())
	assert.True(t, c.Loading())
	assert.Zero(t, c.Len())
	assert.Equal(t, media.QueryByBucket, loader.Last().Query.Kind)
}

func TestOpen_LandsOnInitialIndex(t *testing.T) {
	sel := selection.New(3, "city/c.jpg")
	c := New(sel, mediatest.Sync{Source: source()}, nil, nil)

	open(t, c, 20, 2, sel.Snapshot())

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 2, c.Index())
	it, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, media.Ref("city/c.jpg"), it.Ref)
	assert.Equal(t, []Event{CheckedChanged{Index: 2, Selected: true}}, c.Drain())
}

func TestOpen_ClampsInitialIndex(t *testing.T) {
	c := New(selection.New(1), mediatest.Sync{Source: source()}, nil, nil)
	open(t, c, 10, 42, nil)
	assert.Equal(t, 2, c.Index())
}

func TestOpen_AllMediaMatchesBrowserRows(t *testing.T) {
	src := source()
	sel := selection.New(1)
	b := browser.New(sel, mediatest.Sync{Source: src}, browser.Options{})
	res, _ := b.Load().Wait()
	b.HandleResult(res)
	h, err := b.OpenBucket(0)
	require.NoError(t, err)
	res, _ = h.Wait()
	b.HandleResult(res)

	c := New(sel, mediatest.Sync{Source: src}, nil, nil)
	open(t, c, media.AllMediaBucketID, 0, nil)

	require.Equal(t, b.Len(), c.Len())
	for i, want := range b.Items() {
		got, _ := c.Item(i)
		assert.Equal(t, want, got)
	}
}

func TestPaging_EmitsCheckedChanged(t *testing.T) {
	sel := selection.New(3, "beach/b.jpg")
	c := New(sel, mediatest.Sync{Source: source()}, nil, nil)
	open(t, c, 10, 0, sel.Snapshot())
	c.Drain()

	c.Next()
	c.Next()
	c.Next() // past the end
	c.Prev()
	c.SetPage(0)
	c.SetPage(0)

	assert.Equal(t, []Event{
		CheckedChanged{Index: 1, Selected: true},
		CheckedChanged{Index: 2, Selected: false},
		CheckedChanged{Index: 1, Selected: true},
		CheckedChanged{Index: 0, Selected: false},
	}, c.Drain())
}

func TestToggleCurrent(t *testing.T) {
	sel := selection.New(1)
	c := New(sel, mediatest.Sync{Source: source()}, nil, nil)
	open(t, c, 10, 0, nil)
	c.Drain()

	out, err := c.ToggleCurrent()
	require.NoError(t, err)
	assert.Equal(t, selection.Added, out)
	assert.Equal(t, []Event{CheckedChanged{Index: 0, Selected: true}}, c.Drain())

	c.Next()
	c.Drain()
	_, err = c.ToggleCurrent()
	require.ErrorIs(t, err, selection.ErrFull)
	assert.Equal(t, []Event{MaxReached{Max: 1}}, c.Drain())
	assert.Equal(t, []media.Ref{"beach/a.jpg"}, sel.Snapshot())
}

func TestToggleCurrent_NoPage(t *testing.T) {
	c := New(selection.New(1), mediatest.Sync{Source: mediatest.New()}, nil, nil)
	open(t, c, 10, 0, nil)

	_, err := c.ToggleCurrent()
	assert.ErrorIs(t, err, ErrNoPage)
}

func TestStaleOpenIsDropped(t *testing.T) {
	loader := &mediatest.Deferred{Source: source()}
	c := New(selection.New(1), loader, nil, nil)

	c.Open(10, 0, nil)
	first := loader.Last()
	c.Open(20, 0, nil)
	second := loader.Last()

	assert.False(t, c.HandleResult(first))
	require.True(t, c.HandleResult(second))
	it, _ := c.Current()
	assert.Equal(t, int64(20), it.BucketID)
}

func TestLoadFailed(t *testing.T) {
	src := source()
	src.Err = errors.New("gone")
	c := New(selection.New(1), mediatest.Sync{Source: src}, nil, nil)
	open(t, c, 10, 1, nil)

	assert.Zero(t, c.Len())
	events := c.Drain()
	require.Len(t, events, 1)
	assert.IsType(t, LoadFailed{}, events[0])
}

func TestFinishClosesPendingQuery(t *testing.T) {
	loader := &mediatest.Deferred{Source: source()}
	c := New(selection.New(2, "x"), loader, nil, nil)
	h := c.Open(10, 1, []media.Ref{"x"})

	res := c.Finish()

	assert.True(t, h.Canceled())
	assert.False(t, c.HandleResult(loader.Last()))
	assert.Equal(t, Result{CurrentIndex: 1, Selection: []media.Ref{"x"}}, res)
}

// TestBrowserPreviewRoundTrip opens a bucket with one image already selected,
// previews its third image, toggles it and returns to the grid.
func TestBrowserPreviewRoundTrip(t *testing.T) {
	src := source()
	sel := selection.New(3, "a")
	b := browser.New(sel, mediatest.Sync{Source: src}, browser.Options{})
	res, _ := b.Load().Wait()
	require.True(t, b.HandleResult(res))
	h, err := b.OpenBucket(2) // city
	require.NoError(t, err)
	res, _ = h.Wait()
	require.True(t, b.HandleResult(res))
	b.Drain()

	require.NoError(t, b.OpenPreview(2))
	events := b.Drain()
	require.Len(t, events, 1)
	req := events[0].(browser.OpenPreview)

	p := New(sel, mediatest.Sync{Source: src}, b.Filter(), nil)
	open(t, p, req.BucketID, req.Index, sel.Snapshot())
	assert.Equal(t, []Event{CheckedChanged{Index: 2, Selected: false}}, p.Drain())

	_, err = p.ToggleCurrent()
	require.NoError(t, err)
	out := p.Finish()

	assert.Equal(t, 2, out.CurrentIndex)
	assert.True(t, b.IsSelected(2))
	assert.Equal(t, []media.Ref{"a", b.Ref(2)}, sel.Snapshot())
	assert.Equal(t, sel.Snapshot(), out.Selection)
	assert.InDelta(t, browser.SelectedScale, b.Scale(2), 1e-9)
}
