// Package thumbs renders image thumbnails into the terminal with the Kitty
// or Sixel graphics protocol.
package thumbs

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp" // BMP decoder

	"github.com/llehouerou/vitrine/internal/media"
)

// Global image ID counter
var nextImageID uint32

func getNextImageID() uint32 {
	return atomic.AddUint32(&nextImageID, 1)
}

// Key identifies one rendering of an image: a file fitted into a cell box.
type Key struct {
	Ref    media.Ref
	Width  int // box width in cells
	Height int // box height in cells
}

// Thumb is a decoded and resized image ready to hand to the terminal.
type Thumb struct {
	Key  Key
	PNG  []byte
	Cols int // cells actually covered
	Rows int
}

type stored struct {
	id         uint32
	cols, rows int
}

// Placement is a stored image to draw with its box origin (1-based). Scale
// shrinks the drawn area inside the box; zero means full size.
type Placement struct {
	Key      Key
	Row, Col int
	Scale    float64
}

// Renderer owns the thumbnails transmitted to the terminal.
type Renderer struct {
	proto ImageProtocol
	cache *Cache

	mu      sync.RWMutex
	images  map[Key]stored
	uploads strings.Builder // one-time commands not yet handed out
}

// New creates a renderer. A nil protocol disables images: Load still works
// but nothing is ever placed.
func New(proto ImageProtocol, cache *Cache) *Renderer {
	return &Renderer{
		proto:  proto,
		cache:  cache,
		images: make(map[Key]stored),
	}
}

// Enabled reports whether the terminal can show images.
func (r *Renderer) Enabled() bool {
	return r != nil && r.proto != nil
}

func (r *Renderer) cellSize() (w, h int) {
	if r.proto != nil {
		return r.proto.CellSize()
	}
	return defaultCellW, defaultCellH
}

// pixelSize returns the target pixel box for k.
func (r *Renderer) pixelSize(k Key) (w, h int) {
	if r.proto != nil {
		return r.proto.TargetPixelSize(k.Width, k.Height)
	}
	return k.Width * defaultCellW, k.Height * defaultCellH
}

// Load decodes and resizes the image behind k. It blocks on disk I/O, so
// callers run it off the UI goroutine.
func (r *Renderer) Load(k Key) (Thumb, error) {
	path := string(k.Ref)
	info, err := os.Stat(path)
	if err != nil {
		return Thumb{}, err
	}

	pw, ph := r.pixelSize(k)
	data := r.cache.Get(path, info.ModTime(), pw, ph)
	if data == nil {
		if data, err = r.render(path, pw, ph); err != nil {
			return Thumb{}, err
		}
		_ = r.cache.Put(path, info.ModTime(), pw, ph, data) //nolint:errcheck // best-effort
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Thumb{}, fmt.Errorf("decode thumbnail %s: %w", path, err)
	}
	cw, ch := r.cellSize()
	return Thumb{
		Key:  k,
		PNG:  data,
		Cols: min(ceilDiv(cfg.Width, cw), k.Width),
		Rows: min(ceilDiv(cfg.Height, ch), k.Height),
	}, nil
}

func (r *Renderer) render(path string, pw, ph int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	//nolint:gosec // cell boxes are small, no overflow risk
	resized := resize.Thumbnail(uint(pw), uint(ph), img, resize.Lanczos3)
	return EncodePNG(resized)
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return max((a+b-1)/b, 1)
}

// Store registers a loaded thumb and queues the command that uploads it.
// Storing the same key twice is a no-op.
func (r *Renderer) Store(t Thumb) error {
	if !r.Enabled() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[t.Key]; ok {
		return nil
	}
	id := getNextImageID()
	cmd, err := r.proto.PrepareFromPNG(t.PNG, id)
	if err != nil {
		return err
	}
	cols, rows := t.Cols, t.Rows
	if cols <= 0 || rows <= 0 {
		cols, rows = t.Key.Width, t.Key.Height
	}
	r.images[t.Key] = stored{id: id, cols: cols, rows: rows}
	r.uploads.WriteString(cmd)
	return nil
}

// TakeUploads returns the queued upload and delete commands and clears the
// queue. They must reach the terminal before placements that use them.
func (r *Renderer) TakeUploads() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.uploads.String()
	r.uploads.Reset()
	return s
}

// Has reports whether k has been stored.
func (r *Renderer) Has(k Key) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.images[k]
	return ok
}

// Place returns the command showing k centered in its box whose top-left
// cell is the 1-based (row, col), or "" if k is not stored.
func (r *Renderer) Place(k Key, row, col int) string {
	return r.PlaceScaled(k, row, col, 1)
}

// PlaceScaled is Place with the drawn area shrunk by scale. The stored image
// is reused; the terminal does the scaling, so nothing is reloaded.
// Protocols without placement scaling draw at full size.
func (r *Renderer) PlaceScaled(k Key, row, col int, scale float64) string {
	if !r.Enabled() {
		return ""
	}
	r.mu.RLock()
	s, ok := r.images[k]
	r.mu.RUnlock()
	if !ok {
		return ""
	}
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	cols := max(int(float64(s.cols)*scale+0.5), 1)
	rows := max(int(float64(s.rows)*scale+0.5), 1)
	row += (k.Height - rows) / 2
	col += (k.Width - cols) / 2
	return r.proto.Place(s.id, row, col, cols, rows)
}

// Frame returns the commands for one screen: previous placements cleared,
// then every given placement drawn.
func (r *Renderer) Frame(placements []Placement) string {
	if !r.Enabled() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(r.proto.ClearPlacements())
	for _, p := range placements {
		sb.WriteString(r.PlaceScaled(p.Key, p.Row, p.Col, p.Scale))
	}
	return sb.String()
}

// Forget drops every stored rendering of the given refs and queues the
// commands freeing them.
func (r *Renderer) Forget(refs ...media.Ref) {
	if !r.Enabled() {
		return
	}
	drop := make(map[media.Ref]bool, len(refs))
	for _, ref := range refs {
		drop[ref] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for k, s := range r.images {
		if drop[k.Ref] {
			r.uploads.WriteString(r.proto.Delete(s.id))
			delete(r.images, k)
		}
	}
}

// Reset frees every stored image and returns the commands doing so, to be
// written before the program exits.
func (r *Renderer) Reset() string {
	if !r.Enabled() {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	for k, s := range r.images {
		sb.WriteString(r.proto.Delete(s.id))
		delete(r.images, k)
	}
	r.uploads.Reset()
	return sb.String()
}

// Len returns the number of stored images.
func (r *Renderer) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.images)
}
