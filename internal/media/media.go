// Package media defines the rows a picker shows and the query contract the
// media index must honor.
package media

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Ref identifies one image. Two refs are the same image iff their strings are equal.
type Ref string

// AllMediaBucketID is the synthetic bucket that spans every image.
const AllMediaBucketID int64 = 0

// AllMediaLabel is the display name of the synthetic bucket.
const AllMediaLabel = "All Media"

// Item is one image row of a media query.
type Item struct {
	ID          int64
	BucketID    int64
	DisplayName string
	Ref         Ref
}

// Bucket is one album header of a bucket query.
type Bucket struct {
	ID          int64
	DisplayName string
	CoverRef    Ref
}

// MimeType is an image content type the picker can filter on.
type MimeType string

const (
	MimeBMP  MimeType = "image/bmp"
	MimeJPEG MimeType = "image/jpeg"
	MimePNG  MimeType = "image/png"
)

// AllMimeTypes lists every type the index recognizes, in a stable order.
var AllMimeTypes = []MimeType{MimeBMP, MimeJPEG, MimePNG}

var extensions = map[string]MimeType{
	".bmp":  MimeBMP,
	".jpg":  MimeJPEG,
	".jpeg": MimeJPEG,
	".jpe":  MimeJPEG,
	".png":  MimePNG,
}

// ParseMimeType accepts a full type ("image/png") or its short form ("png").
func ParseMimeType(s string) (MimeType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if !strings.Contains(v, "/") {
		v = "image/" + v
	}
	if v == "image/jpg" {
		v = string(MimeJPEG)
	}
	m := MimeType(v)
	if !slices.Contains(AllMimeTypes, m) {
		return "", fmt.Errorf("unsupported media type %q", s)
	}
	return m, nil
}

// MimeTypeOf returns the type implied by the file extension of path.
func MimeTypeOf(path string) (MimeType, bool) {
	m, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return m, ok
}

// Filter restricts queries to a set of types. An empty filter means every
// recognized type.
type Filter []MimeType

// NewFilter builds a deduplicated filter in canonical order.
func NewFilter(types ...MimeType) Filter {
	var f Filter
	for _, m := range AllMimeTypes {
		if slices.Contains(types, m) {
			f = append(f, m)
		}
	}
	return f
}

// Types returns the types the filter admits.
func (f Filter) Types() []MimeType {
	if len(f) == 0 {
		return slices.Clone(AllMimeTypes)
	}
	return slices.Clone(f)
}

// Allows reports whether m passes the filter.
func (f Filter) Allows(m MimeType) bool {
	if len(f) == 0 {
		return slices.Contains(AllMimeTypes, m)
	}
	return slices.Contains(f, m)
}

// String renders the filter for logs and headers.
func (f Filter) String() string {
	if len(f) == 0 {
		return "all"
	}
	parts := make([]string, len(f))
	for i, m := range f {
		parts[i] = strings.TrimPrefix(string(m), "image/")
	}
	return strings.Join(parts, ",")
}
