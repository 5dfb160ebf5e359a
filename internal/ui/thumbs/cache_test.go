package thumbs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}
	return c
}

func TestNewCache_CustomDir(t *testing.T) {
	base := t.TempDir()
	c, err := NewCache(base)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}
	want := filepath.Join(base, "vitrine", "thumbs")
	if c.dir != want {
		t.Errorf("dir = %q, want %q", c.dir, want)
	}
	if info, err := os.Stat(want); err != nil || !info.IsDir() {
		t.Errorf("cache directory not created: %v", err)
	}
}

func TestCache_PutAndGet(t *testing.T) {
	c := newTestCache(t)
	mtime := time.Unix(1700000000, 0)
	data := []byte("png bytes")

	if err := c.Put("/photos/a.jpg", mtime, 64, 64, data); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if got := c.Get("/photos/a.jpg", mtime, 64, 64); !bytes.Equal(got, data) {
		t.Errorf("Get() = %q, want %q", got, data)
	}
}

func TestCache_KeyedByVersionAndSize(t *testing.T) {
	c := newTestCache(t)
	mtime := time.Unix(1700000000, 0)
	if err := c.Put("/photos/a.jpg", mtime, 64, 64, []byte("x")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		path  string
		mtime time.Time
		w, h  int
	}{
		{"other size", "/photos/a.jpg", mtime, 51, 51},
		{"modified file", "/photos/a.jpg", mtime.Add(time.Second), 64, 64},
		{"other path", "/photos/b.jpg", mtime, 64, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Get(tt.path, tt.mtime, tt.w, tt.h); got != nil {
				t.Errorf("Get() = %q, want miss", got)
			}
		})
	}
}

func TestCache_NilSafe(t *testing.T) {
	var c *Cache
	if c.Get("/a", time.Time{}, 1, 1) != nil {
		t.Error("nil cache Get should miss")
	}
	if err := c.Put("/a", time.Time{}, 1, 1, []byte("x")); err != nil {
		t.Errorf("nil cache Put error: %v", err)
	}
	if c.Prune(time.Hour) != 0 {
		t.Error("nil cache Prune should remove nothing")
	}
}

func TestCache_Prune(t *testing.T) {
	c := newTestCache(t)
	now := time.Now()
	if err := c.Put("/old.jpg", now, 8, 8, []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("/new.jpg", now, 8, 8, []byte("new")); err != nil {
		t.Fatal(err)
	}
	old := c.file("/old.jpg", now, 8, 8)
	past := now.Add(-48 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	if removed := c.Prune(24 * time.Hour); removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}
	if c.Get("/old.jpg", now, 8, 8) != nil {
		t.Error("old entry should be pruned")
	}
	if c.Get("/new.jpg", now, 8, 8) == nil {
		t.Error("recent entry should survive")
	}
}

func TestCacheKey_Deterministic(t *testing.T) {
	mtime := time.Unix(1, 0)
	a := cacheKey("/p.jpg", mtime, 10, 20)
	if a != cacheKey("/p.jpg", mtime, 10, 20) {
		t.Error("cacheKey should be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("len(cacheKey) = %d, want 64 hex chars", len(a))
	}
	if a == cacheKey("/p.jpg", mtime, 20, 10) {
		t.Error("cacheKey should include dimensions in order")
	}
}
