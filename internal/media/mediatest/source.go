// Package mediatest provides an in-memory media.Source for tests.
package mediatest

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/llehouerou/vitrine/internal/media"
)

// Entry is one image held by Source.
type Entry struct {
	ID         int64
	BucketID   int64
	BucketName string
	Name       string
	Ref        media.Ref
	Mime       media.MimeType
	TakenAt    int64
}

// Source answers queries from a fixed list of entries.
type Source struct {
	mu      sync.Mutex
	entries []Entry
	// Err, when set, is returned by every query.
	Err   error
	calls []media.QueryKind
}

var _ media.Source = (*Source)(nil)

// New returns a source over entries.
func New(entries ...Entry) *Source {
	return &Source{entries: entries}
}

// Calls returns the query kinds served so far.
func (s *Source) Calls() []media.QueryKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

func (s *Source) record(k media.QueryKind) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, k)
	return slices.Clone(s.entries), s.Err
}

func newestFirst(a, b Entry) int {
	if c := cmp.Compare(b.TakenAt, a.TakenAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func filtered(entries []Entry, filter media.Filter) []Entry {
	var out []Entry
	for _, e := range entries {
		if filter.Allows(e.Mime) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, newestFirst)
	return out
}

func (s *Source) Buckets(_ context.Context, filter media.Filter) ([]media.Bucket, error) {
	entries, err := s.record(media.QueryBuckets)
	if err != nil {
		return nil, err
	}
	var buckets []media.Bucket
	seen := make(map[int64]bool)
	for _, e := range filtered(entries, filter) {
		if seen[e.BucketID] {
			continue
		}
		seen[e.BucketID] = true
		buckets = append(buckets, media.Bucket{ID: e.BucketID, DisplayName: e.BucketName, CoverRef: e.Ref})
	}
	return buckets, nil
}

func (s *Source) AllMedia(_ context.Context, filter media.Filter) ([]media.Item, error) {
	entries, err := s.record(media.QueryAllMedia)
	if err != nil {
		return nil, err
	}
	var items []media.Item
	for _, e := range filtered(entries, filter) {
		items = append(items, media.Item{ID: e.ID, BucketID: media.AllMediaBucketID, DisplayName: e.Name, Ref: e.Ref})
	}
	return items, nil
}

func (s *Source) ByBucket(_ context.Context, bucketID int64, filter media.Filter) ([]media.Item, error) {
	entries, err := s.record(media.QueryByBucket)
	if err != nil {
		return nil, err
	}
	var items []media.Item
	for _, e := range filtered(entries, filter) {
		if e.BucketID == bucketID {
			items = append(items, media.Item{ID: e.ID, BucketID: e.BucketID, DisplayName: e.Name, Ref: e.Ref})
		}
	}
	return items, nil
}

// Sync runs every query on the calling goroutine and returns an already
// resolved handle. It implements media.Starter.
type Sync struct {
	Source media.Source
}

func (s Sync) Start(q media.Query) *media.Handle {
	return media.Resolved(media.Run(context.Background(), s.Source, q))
}

// Deferred keeps every issued query's result so tests can deliver them later,
// in any order, including results whose handle was canceled in between.
type Deferred struct {
	Source  media.Source
	Handles []*media.Handle
	Results []media.Result
}

func (d *Deferred) Start(q media.Query) *media.Handle {
	res := media.Run(context.Background(), d.Source, q)
	h := media.Resolved(res)
	d.Handles = append(d.Handles, h)
	d.Results = append(d.Results, res)
	return h
}

// Last returns the most recent result.
func (d *Deferred) Last() media.Result {
	return d.Results[len(d.Results)-1]
}

// Album builds n entries of one bucket named name, newest first, with refs
// "<name>/<i>.jpg". IDs start at firstID and capture times at takenAt.
func Album(bucketID int64, name string, firstID int64, takenAt int64, n int) []Entry {
	entries := make([]Entry, n)
	for i := range n {
		entries[i] = Entry{
			ID:         firstID + int64(i),
			BucketID:   bucketID,
			BucketName: name,
			Name:       name + "-" + string(rune('a'+i)) + ".jpg",
			Ref:        media.Ref(name + "/" + string(rune('a'+i)) + ".jpg"),
			Mime:       media.MimeJPEG,
			TakenAt:    takenAt - int64(i),
		}
	}
	return entries
}
