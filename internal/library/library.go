// Package library is the sqlite media index. It discovers images under the
// configured source directories and answers the picker's queries.
package library

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/llehouerou/vitrine/internal/db"
	"github.com/llehouerou/vitrine/internal/media"
)

// Info is what the index knows about one image.
type Info struct {
	ID       int64
	Path     string
	BucketID int64
	Bucket   string
	Name     string
	Mime     media.MimeType
	Size     int64
	Width    int
	Height   int
	TakenAt  int64
}

// ErrNotIndexed is returned for refs the index does not know.
var ErrNotIndexed = errors.New("image not indexed")

type Library struct {
	db *sql.DB
}

var _ media.Source = (*Library)(nil)

func New(db *sql.DB) *Library {
	return &Library{db: db}
}

// mimeClause returns "mime IN (?,...)" and its arguments for filter.
func mimeClause(filter media.Filter) (string, []any) {
	types := filter.Types()
	args := make([]any, len(types))
	for i, t := range types {
		args[i] = string(t)
	}
	return "mime IN (" + strings.TrimSuffix(strings.Repeat("?,", len(types)), ",") + ")", args
}

// Buckets returns one row per bucket with its most recent image as cover,
// most recently active bucket first.
func (l *Library) Buckets(ctx context.Context, filter media.Filter) ([]media.Bucket, error) {
	where, args := mimeClause(filter)
	// SQLite takes bare columns from the row holding MAX(), so path is the
	// newest image of each bucket.
	rows, err := l.db.QueryContext(ctx, `
		SELECT bucket_id, bucket_name, path, MAX(taken_at) AS latest
		FROM media
		WHERE `+where+`
		GROUP BY bucket_id
		ORDER BY latest DESC, bucket_id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []media.Bucket
	for rows.Next() {
		var b media.Bucket
		var cover string
		var latest int64
		if err := rows.Scan(&b.ID, &b.DisplayName, &cover, &latest); err != nil {
			return nil, err
		}
		b.CoverRef = media.Ref(cover)
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// AllMedia returns every image, newest first.
func (l *Library) AllMedia(ctx context.Context, filter media.Filter) ([]media.Item, error) {
	where, args := mimeClause(filter)
	return l.items(ctx, `
		SELECT id, 0, display_name, path
		FROM media
		WHERE `+where+`
		ORDER BY taken_at DESC, id DESC
	`, args...)
}

// ByBucket returns the images of one bucket, newest first.
func (l *Library) ByBucket(ctx context.Context, bucketID int64, filter media.Filter) ([]media.Item, error) {
	where, args := mimeClause(filter)
	return l.items(ctx, `
		SELECT id, bucket_id, display_name, path
		FROM media
		WHERE bucket_id = ? AND `+where+`
		ORDER BY taken_at DESC, id DESC
	`, append([]any{bucketID}, args...)...)
}

func (l *Library) items(ctx context.Context, query string, args ...any) ([]media.Item, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []media.Item
	for rows.Next() {
		var it media.Item
		var path string
		if err := rows.Scan(&it.ID, &it.BucketID, &it.DisplayName, &path); err != nil {
			return nil, err
		}
		it.Ref = media.Ref(path)
		items = append(items, it)
	}
	return items, rows.Err()
}

// Info returns the indexed details of ref.
func (l *Library) Info(ctx context.Context, ref media.Ref) (Info, error) {
	var info Info
	var mime string
	var width, height sql.NullInt64
	err := l.db.QueryRowContext(ctx, `
		SELECT id, path, bucket_id, bucket_name, display_name, mime, size, width, height, taken_at
		FROM media
		WHERE path = ?
	`, string(ref)).Scan(&info.ID, &info.Path, &info.BucketID, &info.Bucket, &info.Name,
		&mime, &info.Size, &width, &height, &info.TakenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, ErrNotIndexed
	}
	if err != nil {
		return Info{}, err
	}
	info.Mime = media.MimeType(mime)
	info.Width = int(db.NullInt64Value(width))
	info.Height = int(db.NullInt64Value(height))
	return info, nil
}

// Count returns the number of indexed images.
func (l *Library) Count(ctx context.Context) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media`).Scan(&count)
	return count, err
}
