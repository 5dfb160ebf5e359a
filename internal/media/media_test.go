package media

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseMimeType(t *testing.T) {
	tests := []struct {
		input   string
		want    MimeType
		wantErr bool
	}{
		{"image/png", MimePNG, false},
		{"png", MimePNG, false},
		{"JPEG", MimeJPEG, false},
		{"jpg", MimeJPEG, false},
		{"image/bmp", MimeBMP, false},
		{" image/jpeg ", MimeJPEG, false},
		{"image/gif", "", true},
		{"video/mp4", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMimeType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMimeType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMimeType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMimeTypeOf(t *testing.T) {
	tests := []struct {
		path string
		want MimeType
		ok   bool
	}{
		{"/a/b.JPG", MimeJPEG, true},
		{"/a/b.jpeg", MimeJPEG, true},
		{"b.png", MimePNG, true},
		{"b.bmp", MimeBMP, true},
		{"b.gif", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		got, ok := MimeTypeOf(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MimeTypeOf(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilter(t *testing.T) {
	var empty Filter
	if !empty.Allows(MimeBMP) || !empty.Allows(MimePNG) {
		t.Error("empty filter should allow every recognized type")
	}
	if empty.Allows("image/gif") {
		t.Error("empty filter should not allow unrecognized types")
	}
	if len(empty.Types()) != len(AllMimeTypes) {
		t.Errorf("empty.Types() = %v", empty.Types())
	}

	f := NewFilter(MimePNG, MimeJPEG, MimePNG)
	if len(f) != 2 || f[0] != MimeJPEG || f[1] != MimePNG {
		t.Errorf("NewFilter = %v, want [jpeg png]", f)
	}
	if f.Allows(MimeBMP) {
		t.Error("filter should reject bmp")
	}
	if f.String() != "jpeg,png" {
		t.Errorf("String() = %q", f.String())
	}
}

type stubSource struct {
	items []Item
	err   error
	block chan struct{}
}

func (s *stubSource) Buckets(context.Context, Filter) ([]Bucket, error) {
	return []Bucket{{ID: 7, DisplayName: "x", CoverRef: "x/1.jpg"}}, s.err
}

func (s *stubSource) AllMedia(ctx context.Context, _ Filter) ([]Item, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return append([]Item(nil), s.items...), s.err
}

func (s *stubSource) ByBucket(_ context.Context, id int64, _ Filter) ([]Item, error) {
	var out []Item
	for _, it := range s.items {
		if it.BucketID == id {
			out = append(out, it)
		}
	}
	return out, s.err
}

func TestMediaQuery(t *testing.T) {
	if q := MediaQuery(AllMediaBucketID, nil); q.Kind != QueryAllMedia {
		t.Errorf("bucket 0 kind = %v, want all-media", q.Kind)
	}
	if q := MediaQuery(5, nil); q.Kind != QueryByBucket || q.BucketID != 5 {
		t.Errorf("bucket 5 query = %+v", q)
	}
}

func TestRun_AllMediaForcesBucketZero(t *testing.T) {
	src := &stubSource{items: []Item{{ID: 1, BucketID: 3, Ref: "a"}, {ID: 2, BucketID: 4, Ref: "b"}}}
	res := Run(context.Background(), src, MediaQuery(AllMediaBucketID, nil))
	if res.Err != nil {
		t.Fatalf("Run: %v", res.Err)
	}
	for _, it := range res.Items {
		if it.BucketID != AllMediaBucketID {
			t.Errorf("item %d bucket = %d, want 0", it.ID, it.BucketID)
		}
	}
}

func TestRun_WrapsError(t *testing.T) {
	boom := errors.New("boom")
	res := Run(context.Background(), &stubSource{err: boom}, BucketsQuery(nil))
	if !errors.Is(res.Err, boom) {
		t.Errorf("Run error = %v, want wrapping %v", res.Err, boom)
	}
}

func TestLoader_DeliversWithEpoch(t *testing.T) {
	src := &stubSource{items: []Item{{ID: 1, BucketID: 3, Ref: "a"}}}
	l := NewLoader(context.Background(), src)
	q := MediaQuery(3, nil)
	q.Epoch = 42

	res, ok := l.Start(q).Wait()
	if !ok {
		t.Fatal("Wait reported cancellation")
	}
	if res.Query.Epoch != 42 {
		t.Errorf("epoch = %d, want 42", res.Query.Epoch)
	}
	if len(res.Items) != 1 {
		t.Errorf("items = %d, want 1", len(res.Items))
	}
}

func TestHandle_CanceledNeverDelivers(t *testing.T) {
	src := &stubSource{block: make(chan struct{})}
	l := NewLoader(context.Background(), src)
	h := l.Start(MediaQuery(AllMediaBucketID, nil))
	h.Cancel()

	done := make(chan bool, 1)
	go func() {
		_, ok := h.Wait()
		done <- ok
	}()

	select {
	case ok := <-done:
		if ok {
			t.Error("canceled handle delivered a result")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Cancel")
	}
	if !h.Canceled() {
		t.Error("Canceled() = false")
	}
}

func TestHandle_CancelAfterResolve(t *testing.T) {
	h := Resolved(Result{Query: BucketsQuery(nil)})
	h.Cancel()
	if _, ok := h.Wait(); ok {
		t.Error("Wait after Cancel should not deliver")
	}

	var nilHandle *Handle
	nilHandle.Cancel()
}
