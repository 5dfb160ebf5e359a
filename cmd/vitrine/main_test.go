package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/picker"
)

func parsePick(t *testing.T, args ...string) (*cobra.Command, pickFlags) {
	t.Helper()
	cmd := newPickCmd()
	require.NoError(t, cmd.ParseFlags(args))

	var f pickFlags
	var err error
	f.requestCode, err = cmd.Flags().GetInt("request-code")
	require.NoError(t, err)
	f.max, err = cmd.Flags().GetInt("max")
	require.NoError(t, err)
	f.selection, err = cmd.Flags().GetStringSlice("select")
	require.NoError(t, err)
	f.types, err = cmd.Flags().GetStringSlice("type")
	require.NoError(t, err)
	f.output, err = cmd.Flags().GetString("output")
	require.NoError(t, err)
	return cmd, f
}

func TestBuildRequest_UsesConfigDefaults(t *testing.T) {
	cmd, f := parsePick(t, "--request-code", "42")

	req, format, err := buildRequest(cmd, f, 4, []string{"image/png"})
	require.NoError(t, err)
	assert.Equal(t, picker.FormatPaths, format)
	assert.Equal(t, 42, req.RequestCode)
	assert.Equal(t, 4, req.MaxSelection)
	assert.True(t, req.Filter.Allows(media.MimePNG))
	assert.False(t, req.Filter.Allows(media.MimeJPEG))
}

func TestBuildRequest_FlagsOverride(t *testing.T) {
	cmd, f := parsePick(t,
		"--request-code", "0",
		"--max", "2",
		"--select", "/p/a.jpg,/p/b.jpg",
		"--type", "image/jpeg",
		"-o", "json")

	req, format, err := buildRequest(cmd, f, 9, []string{"image/png"})
	require.NoError(t, err)
	assert.Equal(t, picker.FormatJSON, format)
	assert.Equal(t, 0, req.RequestCode)
	assert.Equal(t, 2, req.MaxSelection)
	assert.Equal(t, []media.Ref{"/p/a.jpg", "/p/b.jpg"}, req.Selection)
	assert.True(t, req.Filter.Allows(media.MimeJPEG))
}

func TestBuildRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing request code", []string{"--max", "2"}},
		{"negative max", []string{"--request-code", "1", "--max", "-1"}},
		{"unknown type", []string{"--request-code", "1", "--type", "image/gif"}},
		{"unknown format", []string{"--request-code", "1", "-o", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := parsePick(t, tt.args...)
			_, _, err := buildRequest(cmd, f, 1, nil)
			require.ErrorIs(t, err, picker.ErrInvalidConfiguration)
		})
	}
}

func TestConfigInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vitrine", "config.toml")
	lib := t.TempDir()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init", "--path", path, lib})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), lib)

	root = newRootCmd()
	root.SetArgs([]string{"config", "init", "--path", path})
	assert.Error(t, root.Execute(), "existing file is kept without --force")
}

func TestRoot_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"pick", "scan", "config"})
}
