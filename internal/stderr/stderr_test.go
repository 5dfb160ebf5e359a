//go:build !windows

package stderr

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_LogsCapturedLines(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	require.NoError(t, Start(logger))
	require.NoError(t, Start(logger), "second start is a no-op")

	_, err := os.Stderr.WriteString("libpng warning: iCCP: known incorrect sRGB profile\n\n")
	require.NoError(t, err)
	Stop()

	out := buf.String()
	assert.Contains(t, out, "captured stderr")
	assert.Contains(t, out, "iCCP")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("captured stderr")), "blank lines are skipped")
}

func TestStop_WithoutStart(_ *testing.T) {
	Stop()
	WriteOriginal("")
}
