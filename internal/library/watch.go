package library

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"github.com/llehouerou/vitrine/internal/media"
)

const watchDebounce = 500 * time.Millisecond

// WatchBatch describes one applied group of file changes.
type WatchBatch struct {
	Indexed int
	Removed int
}

// Watch keeps the index in sync with sources until ctx is done. Changes are
// grouped for a short quiet period and then applied. onBatch, if not nil, is
// called after each applied group.
func (l *Library) Watch(
	ctx context.Context,
	sources []string,
	opts ScanOptions,
	logger *slog.Logger,
	onBatch func(WatchBatch),
) error {
	excludes, err := compileExcludes(opts.Exclude)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	for _, src := range sources {
		if err := addTree(w, src, src, excludes); err != nil {
			return err
		}
		logger.Info("watching source", "path", src)
	}

	pending := make(map[string]fsnotify.Op)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			src := sourceOf(sources, ev.Name)
			if src == "" || excluded(excludes, relativePath(src, ev.Name)) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					if err := addTree(w, src, ev.Name, excludes); err != nil {
						logger.Warn("watch new directory", "path", ev.Name, "err", err)
					}
					continue
				}
			}
			if _, ok := media.MimeTypeOf(ev.Name); !ok {
				continue
			}
			pending[ev.Name] |= ev.Op
			timer.Reset(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)

		case <-timer.C:
			batch, err := l.applyChanges(ctx, sources, pending)
			if err != nil {
				logger.Error("apply changes", "err", err)
			} else {
				logger.Info("index updated", "indexed", batch.Indexed, "removed", batch.Removed)
				if onBatch != nil {
					onBatch(batch)
				}
			}
			clear(pending)
		}
	}
}

func (l *Library) applyChanges(ctx context.Context, sources []string, pending map[string]fsnotify.Op) (WatchBatch, error) {
	var batch WatchBatch
	var removed []string
	bySource := make(map[string][]string)
	for path := range pending {
		if _, err := os.Stat(path); err != nil {
			removed = append(removed, path)
			continue
		}
		src := sourceOf(sources, path)
		bySource[src] = append(bySource[src], path)
	}
	if len(removed) > 0 {
		if err := l.RemoveFiles(ctx, removed); err != nil {
			return batch, err
		}
		batch.Removed = len(removed)
	}
	for src, paths := range bySource {
		n, err := l.AddFiles(ctx, src, paths)
		if err != nil {
			return batch, err
		}
		batch.Indexed += n
	}
	return batch, nil
}

// addTree watches dir and every directory below it.
func addTree(w *fsnotify.Watcher, src, dir string, excludes []glob.Glob) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable subtrees are not watched
		}
		if !d.IsDir() {
			return nil
		}
		if path != src && (strings.HasPrefix(d.Name(), ".") || excluded(excludes, relativePath(src, path))) {
			return fs.SkipDir
		}
		return w.Add(path)
	})
}

func sourceOf(sources []string, path string) string {
	for _, src := range sources {
		if underSource(src, path) {
			return src
		}
	}
	return ""
}
