package thumbs

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"

	// Max base64 bytes per escape sequence chunk.
	chunkSize = 4096
)

// Typical terminal cell size when the real one is unknown.
const (
	defaultCellW = 8
	defaultCellH = 16
)

// KittyProtocol implements ImageProtocol with the Kitty graphics protocol.
// Images are transmitted once and then placed by ID.
type KittyProtocol struct{}

func (KittyProtocol) Prepare(img image.Image, id uint32) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return TransmitImageFromPNG(data, id)
}

func (KittyProtocol) PrepareFromPNG(pngData []byte, id uint32) (string, error) {
	return TransmitImageFromPNG(pngData, id)
}

func (KittyProtocol) Place(id uint32, row, col, width, height int) string {
	return PlaceImage(id, row, col, width, height)
}

func (KittyProtocol) Delete(id uint32) string {
	return DeleteImage(id)
}

func (KittyProtocol) ClearPlacements() string {
	return DeletePlacements()
}

func (KittyProtocol) CellSize() (width, height int) {
	return defaultCellW, defaultCellH
}

func (KittyProtocol) TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int) {
	return widthCells * defaultCellW, heightCells * defaultCellH
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// TransmitImageFromPNG returns the escape sequences that upload PNG data to
// the terminal under id without displaying it (a=t).
func TransmitImageFromPNG(pngData []byte, id uint32) (string, error) {
	if len(pngData) == 0 {
		return "", fmt.Errorf("transmit image %d: empty data", id)
	}
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			// f=100: PNG, q=2: suppress responses
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}

	return sb.String(), nil
}

// PlaceImage returns the escape sequence that displays a transmitted image.
// row and col are 1-based terminal coordinates, width and height are cells.
// Placement ID 1 is scoped to the image, so re-placing moves it instead of
// leaving a ghost copy.
func PlaceImage(id uint32, row, col, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// DeleteImage returns the escape sequence that frees an image and all its
// placements.
func DeleteImage(id uint32) string {
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2;%s", escStart, id, escEnd)
}

// DeletePlacements hides every placed image while keeping the data in
// terminal memory.
func DeletePlacements() string {
	return escStart + "a=d,d=a,q=2;" + escEnd
}

// BlankPlaceholder returns a block of spaces for the image area so lipgloss
// never measures image escapes.
func BlankPlaceholder(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
