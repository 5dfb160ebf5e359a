package media

import (
	"context"
	"errors"
	"fmt"
)

// Source is the media index consumed by the picker. Every query honors the
// filter and returns rows in capture time order, newest first.
type Source interface {
	// Buckets returns one row per bucket, its cover being the bucket's most
	// recent image, ordered by that image's capture time.
	Buckets(ctx context.Context, filter Filter) ([]Bucket, error)
	// AllMedia returns every image with BucketID forced to AllMediaBucketID.
	AllMedia(ctx context.Context, filter Filter) ([]Item, error)
	// ByBucket returns the images of one bucket.
	ByBucket(ctx context.Context, bucketID int64, filter Filter) ([]Item, error)
}

// ErrNoResult is reported when a source answers with nothing at all.
var ErrNoResult = errors.New("media source returned no result")

// QueryKind selects one of the three query shapes.
type QueryKind int

const (
	QueryBuckets QueryKind = iota
	QueryAllMedia
	QueryByBucket
)

func (k QueryKind) String() string {
	switch k {
	case QueryBuckets:
		return "buckets"
	case QueryAllMedia:
		return "all-media"
	case QueryByBucket:
		return "by-bucket"
	}
	return fmt.Sprintf("QueryKind(%d)", int(k))
}

// Query is one request to a Source. Epoch is set by the issuing controller
// and travels back untouched in the Result.
type Query struct {
	Kind     QueryKind
	BucketID int64
	Filter   Filter
	Epoch    uint64
}

// BucketsQuery returns the bucket list query.
func BucketsQuery(filter Filter) Query {
	return Query{Kind: QueryBuckets, Filter: filter}
}

// MediaQuery returns the media query for a bucket. The synthetic bucket maps
// to the all-media shape so browser and pager get positionally equal rows.
func MediaQuery(bucketID int64, filter Filter) Query {
	if bucketID == AllMediaBucketID {
		return Query{Kind: QueryAllMedia, BucketID: AllMediaBucketID, Filter: filter}
	}
	return Query{Kind: QueryByBucket, BucketID: bucketID, Filter: filter}
}

// Result carries the rows of a query back to its issuer.
type Result struct {
	Query   Query
	Buckets []Bucket
	Items   []Item
	Err     error
}

// Run executes q against src on the calling goroutine.
func Run(ctx context.Context, src Source, q Query) Result {
	res := Result{Query: q}
	switch q.Kind {
	case QueryBuckets:
		res.Buckets, res.Err = src.Buckets(ctx, q.Filter)
	case QueryAllMedia:
		res.Items, res.Err = src.AllMedia(ctx, q.Filter)
		for i := range res.Items {
			res.Items[i].BucketID = AllMediaBucketID
		}
	case QueryByBucket:
		res.Items, res.Err = src.ByBucket(ctx, q.BucketID, q.Filter)
	default:
		res.Err = fmt.Errorf("unknown query kind %v", q.Kind)
	}
	if res.Err != nil {
		res.Err = fmt.Errorf("query %v: %w", q.Kind, res.Err)
	}
	return res
}
