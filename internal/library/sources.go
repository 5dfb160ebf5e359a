package library

import (
	"context"
	"database/sql"
	"time"

	"github.com/llehouerou/vitrine/internal/db"
)

// Sources returns all indexed source directories.
func (l *Library) Sources(ctx context.Context) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT path FROM library_sources ORDER BY added_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		sources = append(sources, path)
	}
	return sources, rows.Err()
}

// SyncSources makes the stored source list equal to sources and drops the
// images of removed sources. Config is the source of truth; the table lets a
// scan notice a source that disappeared from it.
func (l *Library) SyncSources(ctx context.Context, sources []string) error {
	current, err := l.Sources(ctx)
	if err != nil {
		return err
	}
	want := make(map[string]bool, len(sources))
	for _, s := range sources {
		want[s] = true
	}

	return db.WithTx(ctx, l.db, func(tx *sql.Tx) error {
		for _, old := range current {
			if want[old] {
				delete(want, old)
				continue
			}
			if err := removeSource(tx, old); err != nil {
				return err
			}
		}
		now := time.Now().Unix()
		for _, s := range sources {
			if !want[s] {
				continue
			}
			if _, err := tx.Exec(`INSERT INTO library_sources (path, added_at) VALUES (?, ?)`, s, now); err != nil {
				return err
			}
			delete(want, s)
		}
		return nil
	})
}

// removeSource removes a source path and all images under it.
func removeSource(tx *sql.Tx, path string) error {
	if _, err := tx.Exec(`DELETE FROM media WHERE source = ?`, path); err != nil {
		return err
	}
	_, err := tx.Exec(`DELETE FROM library_sources WHERE path = ?`, path)
	return err
}

// CountBySource returns the number of images indexed under a source path.
func (l *Library) CountBySource(ctx context.Context, path string) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media WHERE source = ?`, path).Scan(&count)
	return count, err
}
