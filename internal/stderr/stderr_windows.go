//go:build windows

// Package stderr provides a no-op implementation for Windows.
package stderr

import (
	"log/slog"
	"os"
)

// Start is a no-op on Windows.
func Start(*slog.Logger) error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
