package library

import (
	"context"
	"database/sql"
	"image"
	_ "image/jpeg" // decoders for DecodeConfig
	_ "image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/llehouerou/vitrine/internal/db"
	"github.com/llehouerou/vitrine/internal/media"
)

// imageResult holds the result of processing one image.
type imageResult struct {
	file   fileInfo
	mime   media.MimeType
	width  int
	height int
	isNew  bool
}

// readHeader returns the type and pixel size of the image at f.path. Files
// whose header cannot be decoded are skipped by the caller.
func readHeader(f fileInfo) (imageResult, bool) {
	mime, ok := media.MimeTypeOf(f.path)
	if !ok {
		return imageResult{}, false
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return imageResult{}, false
	}
	defer fh.Close()

	cfg, _, err := image.DecodeConfig(fh)
	if err != nil {
		return imageResult{}, false
	}
	return imageResult{file: f, mime: mime, width: cfg.Width, height: cfg.Height}, true
}

// processFiles reads image headers in parallel and upserts the results.
func (l *Library) processFiles(
	ctx context.Context,
	files []fileInfo,
	isNew map[string]bool,
	stats *ScanStats,
	progress chan<- ScanProgress,
) error {
	total := len(files)
	var processed atomic.Int64

	workCh := make(chan fileInfo, total)
	resultCh := make(chan imageResult, total)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for f := range workCh {
				if ctx.Err() == nil {
					if res, ok := readHeader(f); ok {
						res.isNew = isNew[f.path]
						resultCh <- res
					}
				}
				processed.Add(1)
			}
		})
	}

	for _, f := range files {
		workCh <- f
	}
	close(workCh)

	done := make(chan struct{})
	var reporter sync.WaitGroup
	reporter.Go(func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case progress <- ScanProgress{Phase: "processing", Current: int(processed.Load()), Total: total}:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	})

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Inserts are sequential and batched in one transaction.
	var upserted []imageResult
	for res := range resultCh {
		upserted = append(upserted, res)
	}
	close(done)
	reporter.Wait()

	err := db.WithTx(ctx, l.db, func(tx *sql.Tx) error {
		now := time.Now().Unix()
		for _, res := range upserted {
			if err := upsertImage(tx, res, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, res := range upserted {
		if res.isNew {
			stats.Added++
		} else {
			stats.Updated++
		}
	}
	stats.Skipped += total - len(upserted)
	progress <- ScanProgress{Phase: "processing", Current: total, Total: total}
	return ctx.Err()
}

type executor interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// upsertImage inserts or updates one image. The capture time is the file
// modification time.
func upsertImage(ex executor, res imageResult, now int64) error {
	dir := filepath.Dir(res.file.path)
	_, err := ex.Exec(`
		INSERT INTO media (path, source, bucket_id, bucket_name, display_name, mime, size, width, height, mtime, taken_at, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			source = excluded.source,
			bucket_id = excluded.bucket_id,
			bucket_name = excluded.bucket_name,
			display_name = excluded.display_name,
			mime = excluded.mime,
			size = excluded.size,
			width = excluded.width,
			height = excluded.height,
			mtime = excluded.mtime,
			taken_at = excluded.taken_at
	`, res.file.path, res.file.source, BucketID(dir), BucketName(dir), filepath.Base(res.file.path),
		string(res.mime), res.file.size, db.NullInt64(int64(res.width)), db.NullInt64(int64(res.height)),
		res.file.mtime, res.file.mtime, now)
	return err
}

// existingMedia returns path->mtime for indexed images under sources.
func (l *Library) existingMedia(ctx context.Context, sources []string) (map[string]int64, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT path, mtime FROM media`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		for _, src := range sources {
			if underSource(src, path) {
				existing[path] = mtime
				break
			}
		}
	}
	return existing, rows.Err()
}

func (l *Library) deleteByPath(ctx context.Context, path string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM media WHERE path = ?`, path)
	return err
}

// AddFiles indexes specific files without walking their sources. Files that
// are not readable images are ignored.
func (l *Library) AddFiles(ctx context.Context, source string, paths []string) (int, error) {
	var results []imageResult
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			continue
		}
		res, ok := readHeader(fileInfo{path: p, mtime: st.ModTime().Unix(), size: st.Size(), source: source})
		if ok {
			results = append(results, res)
		}
	}
	if len(results) == 0 {
		return 0, nil
	}
	err := db.WithTx(ctx, l.db, func(tx *sql.Tx) error {
		now := time.Now().Unix()
		for _, res := range results {
			if err := upsertImage(tx, res, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// RemoveFiles drops the given paths from the index.
func (l *Library) RemoveFiles(ctx context.Context, paths []string) error {
	return db.WithTx(ctx, l.db, func(tx *sql.Tx) error {
		for _, p := range paths {
			if _, err := tx.Exec(`DELETE FROM media WHERE path = ?`, p); err != nil {
				return err
			}
		}
		return nil
	})
}
