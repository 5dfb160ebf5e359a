package library

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gobwas/glob"
)

const numWorkers = 8

// ScanProgress reports the progress of a library scan.
type ScanProgress struct {
	Phase       string // "scanning", "processing", "cleaning", "done"
	Current     int
	Total       int
	CurrentFile string
	Stats       *ScanStats // Only populated when Phase == "done"
}

// ScanStats holds statistics for a completed scan.
type ScanStats struct {
	Added   int
	Updated int
	Removed int
	Skipped int
}

// ScanOptions tunes a scan.
type ScanOptions struct {
	// Exclude holds glob patterns matched against paths relative to their
	// source; "**" crosses directories.
	Exclude []string
	// Force re-reads every file, ignoring modification times.
	Force bool
}

// fileInfo holds information about a discovered image.
type fileInfo struct {
	path   string
	mtime  int64
	size   int64
	source string
}

// BucketID returns the bucket of images stored in dir. It is stable across
// scans and never the synthetic all-media id.
func BucketID(dir string) int64 {
	id := int64(xxhash.Sum64String(filepath.Clean(dir)) >> 1)
	if id == 0 {
		return 1
	}
	return id
}

// BucketName is the label of the bucket for dir.
func BucketName(dir string) string {
	name := filepath.Base(filepath.Clean(dir))
	if name == "." || name == string(filepath.Separator) {
		return dir
	}
	return name
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Refresh performs an incremental scan of the given source directories.
// progress is closed when the scan ends.
func (l *Library) Refresh(ctx context.Context, sources []string, opts ScanOptions, progress chan<- ScanProgress) error {
	defer close(progress)

	excludes, err := compileExcludes(opts.Exclude)
	if err != nil {
		return err
	}
	started := time.Now().Unix()
	stats := &ScanStats{}

	// Phase 1: walk sources
	progress <- ScanProgress{Phase: "scanning"}
	files, discovered := discoverFiles(ctx, sources, excludes, progress)
	if err := ctx.Err(); err != nil {
		return err
	}

	// Phase 2: compare with the index
	existing, err := l.existingMedia(ctx, sources)
	if err != nil {
		return err
	}
	toProcess := make([]fileInfo, 0, len(files))
	isNew := make(map[string]bool)
	for _, f := range files {
		mtime, ok := existing[f.path]
		if ok && mtime == f.mtime && !opts.Force {
			continue
		}
		isNew[f.path] = !ok
		toProcess = append(toProcess, f)
	}

	// Phase 3: read headers and upsert
	if len(toProcess) > 0 {
		if err := l.processFiles(ctx, toProcess, isNew, stats, progress); err != nil {
			return err
		}
	}

	// Phase 4: drop vanished files
	progress <- ScanProgress{Phase: "cleaning"}
	for path := range existing {
		if _, ok := discovered[path]; ok {
			continue
		}
		if err := l.deleteByPath(ctx, path); err != nil {
			return err
		}
		stats.Removed++
	}

	if err := l.recordScan(ctx, started, stats); err != nil {
		return err
	}
	progress <- ScanProgress{Phase: "done", Current: len(files), Total: len(files), Stats: stats}
	return nil
}

// underSource reports whether path lies in source.
func underSource(source, path string) bool {
	prefix := strings.TrimSuffix(source, string(filepath.Separator)) + string(filepath.Separator)
	return strings.HasPrefix(path, prefix)
}

func (l *Library) recordScan(ctx context.Context, started int64, stats *ScanStats) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO scan_runs (started_at, finished_at, added, updated, removed)
		VALUES (?, ?, ?, ?, ?)
	`, started, time.Now().Unix(), stats.Added, stats.Updated, stats.Removed)
	return err
}

// LastScan returns when the last scan finished, zero if never.
func (l *Library) LastScan(ctx context.Context) (time.Time, error) {
	var finished int64
	err := l.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(finished_at), 0) FROM scan_runs`).Scan(&finished)
	if err != nil || finished == 0 {
		return time.Time{}, err
	}
	return time.Unix(finished, 0), nil
}
