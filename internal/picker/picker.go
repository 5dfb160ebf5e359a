// Package picker is the launch and return contract between a host and a
// picker session.
package picker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/llehouerou/vitrine/internal/media"
)

// DefaultMaxSelection is the capacity when the host sets none.
const DefaultMaxSelection = 1

// ErrInvalidConfiguration is returned by Open when a launch parameter is
// missing or out of range.
var ErrInvalidConfiguration = errors.New("invalid picker configuration")

// Builder collects launch parameters.
type Builder struct {
	requestCode    int
	hasRequestCode bool
	maxSelection   int
	selection      []media.Ref
	mediaTypes     []string
}

// New returns a builder with the default capacity, no initial selection and
// every media type.
func New() *Builder {
	return &Builder{maxSelection: DefaultMaxSelection}
}

// RequestCode sets the code echoed back in the Result. Required.
func (b *Builder) RequestCode(code int) *Builder {
	b.requestCode = code
	b.hasRequestCode = true
	return b
}

// MaxSelection sets the capacity.
func (b *Builder) MaxSelection(n int) *Builder {
	b.maxSelection = n
	return b
}

// Selection sets the initial selection.
func (b *Builder) Selection(refs ...media.Ref) *Builder {
	b.selection = refs
	return b
}

// MediaTypes restricts the picker to the given MIME types.
func (b *Builder) MediaTypes(types ...string) *Builder {
	b.mediaTypes = types
	return b
}

// Request is a validated launch.
type Request struct {
	RequestCode  int
	MaxSelection int
	Selection    []media.Ref
	Filter       media.Filter
	Session      string
}

// Open validates the parameters and returns the request to run.
func (b *Builder) Open() (Request, error) {
	if !b.hasRequestCode {
		return Request{}, fmt.Errorf("%w: request code is required", ErrInvalidConfiguration)
	}
	if b.requestCode < 0 {
		return Request{}, fmt.Errorf("%w: request code %d is negative", ErrInvalidConfiguration, b.requestCode)
	}
	if b.maxSelection < 0 {
		return Request{}, fmt.Errorf("%w: max selection %d is negative", ErrInvalidConfiguration, b.maxSelection)
	}
	types := make([]media.MimeType, 0, len(b.mediaTypes))
	for _, t := range b.mediaTypes {
		m, err := media.ParseMimeType(t)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		types = append(types, m)
	}
	return Request{
		RequestCode:  b.requestCode,
		MaxSelection: b.maxSelection,
		Selection:    append([]media.Ref(nil), b.selection...),
		Filter:       media.NewFilter(types...),
		Session:      uuid.NewString(),
	}, nil
}

// Result is what the host gets back.
type Result struct {
	RequestCode int         `json:"request_code"`
	Session     string      `json:"session"`
	Canceled    bool        `json:"canceled"`
	Selection   []media.Ref `json:"selection"`
}

// Finished returns the result of a confirmed session.
func (r Request) Finished(selection []media.Ref) Result {
	if selection == nil {
		selection = []media.Ref{}
	}
	return Result{RequestCode: r.RequestCode, Session: r.Session, Selection: selection}
}

// Canceled returns the result of an abandoned session. It carries no
// selection.
func (r Request) Canceled() Result {
	return Result{RequestCode: r.RequestCode, Session: r.Session, Canceled: true}
}

// Format is how a Result is written for the host.
type Format string

const (
	FormatPaths Format = "paths"
	FormatJSON  Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPaths, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown output format %q", ErrInvalidConfiguration, s)
}

// Write encodes r for the host. A canceled result writes nothing in paths
// format.
func (r Result) Write(w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		return enc.Encode(r)
	case FormatPaths:
		if r.Canceled {
			return nil
		}
		for _, ref := range r.Selection {
			if _, err := fmt.Fprintln(w, ref); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", f)
}
