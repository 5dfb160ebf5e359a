package library

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/llehouerou/vitrine/internal/media"
)

// discoverFiles walks the given source directories and returns every image
// found, plus the set of their paths.
func discoverFiles(
	ctx context.Context,
	sources []string,
	excludes []glob.Glob,
	progress chan<- ScanProgress,
) (files []fileInfo, discovered map[string]struct{}) {
	for _, src := range sources {
		_ = filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Unreadable entries are skipped so the rest of the tree is scanned.
			if walkErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}
			if path != src && excluded(excludes, relativePath(src, path)) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != src && strings.HasPrefix(d.Name(), ".") {
					return fs.SkipDir
				}
				return nil
			}
			if _, ok := media.MimeTypeOf(path); !ok {
				return nil
			}

			info, infoErr := d.Info()
			if infoErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}

			files = append(files, fileInfo{
				path:   path,
				mtime:  info.ModTime().Unix(),
				size:   info.Size(),
				source: src,
			})

			if len(files)%100 == 0 {
				progress <- ScanProgress{Phase: "scanning", Current: len(files), CurrentFile: path}
			}
			return nil
		})
	}

	discovered = make(map[string]struct{}, len(files))
	for _, f := range files {
		discovered[f.path] = struct{}{}
	}
	return files, discovered
}

func excluded(excludes []glob.Glob, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range excludes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// relativePath returns the path relative to the source, or the full path if not under source.
func relativePath(source, path string) string {
	rel, err := filepath.Rel(source, path)
	if err != nil {
		return path
	}
	return rel
}
