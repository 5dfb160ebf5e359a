package thumbs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	cacheDirName = "vitrine/thumbs"
	cacheMaxAge  = 30 * 24 * time.Hour
)

// Cache stores resized thumbnails as PNG files on disk.
type Cache struct {
	dir string
}

// NewCache creates the cache directory under baseDir, or under the XDG
// cache home when baseDir is empty, and prunes stale entries in the
// background.
func NewCache(baseDir string) (*Cache, error) {
	if baseDir == "" {
		baseDir = xdg.CacheHome
	}

	dir := filepath.Join(baseDir, cacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	c := &Cache{dir: dir}
	go c.Prune(cacheMaxAge)

	return c, nil
}

// cacheKey identifies a rendering of a file version at a pixel size.
func cacheKey(path string, modTime time.Time, width, height int) string {
	data := fmt.Sprintf("%s:%d:%d:%d", path, modTime.UnixNano(), width, height)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) file(path string, modTime time.Time, width, height int) string {
	return filepath.Join(c.dir, cacheKey(path, modTime, width, height)+".png")
}

// Get returns cached PNG data, or nil if not cached.
func (c *Cache) Get(path string, modTime time.Time, width, height int) []byte {
	if c == nil {
		return nil
	}

	name := c.file(path, modTime, width, height)
	data, err := os.ReadFile(name)
	if err != nil {
		return nil
	}

	// Keep frequently used entries fresh.
	now := time.Now()
	_ = os.Chtimes(name, now, now) //nolint:errcheck // best-effort

	return data
}

// Put stores PNG data.
func (c *Cache) Put(path string, modTime time.Time, width, height int, data []byte) error {
	if c == nil || len(data) == 0 {
		return nil
	}
	return os.WriteFile(c.file(path, modTime, width, height), data, 0o600)
}

// Prune removes entries not used within maxAge and returns how many went.
func (c *Cache) Prune(maxAge time.Duration) int {
	if c == nil {
		return 0
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(c.dir, entry.Name())) == nil {
				removed++
			}
		}
	}
	return removed
}
