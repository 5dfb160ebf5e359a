package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBordered_CentersBox(t *testing.T) {
	out := RenderBordered("Discard selection?", 40, 12, SizeAuto)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	var boxTop int
	for i, l := range lines {
		if strings.Contains(l, "╭") {
			boxTop = i
			break
		}
	}
	assert.Positive(t, boxTop, "box is pushed down")
	assert.True(t, strings.HasPrefix(lines[boxTop], " "), "box is indented")
	assert.Contains(t, ansi.Strip(out), "Discard selection?")
}

func TestCompose_KeepsBaseAroundOverlay(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	overlay := "\n   XYZ\n"

	got := strings.Split(Compose(base, overlay, 10, 3), "\n")
	require.Len(t, got, 3)
	assert.Equal(t, "aaaaaaaaaa", got[0])
	assert.Equal(t, "bbbXYZbbbb", ansi.Strip(got[1]))
	assert.Equal(t, "cccccccccc", got[2])
}

func TestCompose_PadsShortBase(t *testing.T) {
	got := Compose("ab", "    Z", 6, 1)
	assert.Equal(t, "ab  Z ", ansi.Strip(got))
}
