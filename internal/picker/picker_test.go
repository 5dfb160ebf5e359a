package picker

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/llehouerou/vitrine/internal/media"
)

func TestOpen_Defaults(t *testing.T) {
	req, err := New().RequestCode(7).Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if req.RequestCode != 7 {
		t.Errorf("RequestCode = %d, want 7", req.RequestCode)
	}
	if req.MaxSelection != DefaultMaxSelection {
		t.Errorf("MaxSelection = %d, want %d", req.MaxSelection, DefaultMaxSelection)
	}
	if len(req.Selection) != 0 {
		t.Errorf("Selection = %v, want empty", req.Selection)
	}
	if len(req.Filter) != 0 {
		t.Errorf("Filter = %v, want all types", req.Filter)
	}
	if _, err := uuid.Parse(req.Session); err != nil {
		t.Errorf("Session %q is not a uuid: %v", req.Session, err)
	}
}

func TestOpen_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
	}{
		{"missing request code", New().MaxSelection(3)},
		{"negative request code", New().RequestCode(-1)},
		{"negative max selection", New().RequestCode(1).MaxSelection(-2)},
		{"unknown media type", New().RequestCode(1).MediaTypes("image/gif")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Open()
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Open() error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestOpen_CopiesParameters(t *testing.T) {
	initial := []media.Ref{"a.jpg", "b.png"}
	req, err := New().
		RequestCode(3).
		MaxSelection(5).
		Selection(initial...).
		MediaTypes("png", "image/jpeg").
		Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	initial[0] = "changed"

	if req.Selection[0] != "a.jpg" {
		t.Errorf("Selection aliases caller slice: %v", req.Selection)
	}
	want := media.Filter{media.MimeJPEG, media.MimePNG}
	if req.Filter.String() != want.String() {
		t.Errorf("Filter = %v, want %v", req.Filter, want)
	}
}

func TestResult_Write(t *testing.T) {
	req := Request{RequestCode: 9, Session: "s"}

	tests := []struct {
		name   string
		result Result
		format Format
		want   string
	}{
		{
			name:   "paths one per line",
			result: req.Finished([]media.Ref{"/p/a.jpg", "/p/b.jpg"}),
			format: FormatPaths,
			want:   "/p/a.jpg\n/p/b.jpg\n",
		},
		{
			name:   "canceled paths write nothing",
			result: req.Canceled(),
			format: FormatPaths,
			want:   "",
		},
		{
			name:   "json finished",
			result: req.Finished(nil),
			format: FormatJSON,
			want:   `{"request_code":9,"session":"s","canceled":false,"selection":[]}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.result.Write(&buf, tt.format); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Write = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestResult_CanceledJSONHasNoSelection(t *testing.T) {
	var buf bytes.Buffer
	if err := (Request{RequestCode: 1}).Canceled().Write(&buf, FormatJSON); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["canceled"] != true {
		t.Errorf("canceled = %v", decoded["canceled"])
	}
	if decoded["selection"] != nil {
		t.Errorf("selection = %v, want null", decoded["selection"])
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("ParseFormat(xml) error = %v", err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
}
