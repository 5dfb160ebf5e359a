// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Index operations
	OpIndexOpen  Op = "open media index"
	OpIndexScan  Op = "scan library"
	OpIndexWatch Op = "watch library"
	OpSourceSync Op = "sync library sources"

	// Browsing
	OpBucketsLoad Op = "load albums"
	OpMediaLoad   Op = "load images"
	OpPreviewLoad Op = "load preview"

	// Images
	OpImageDecode Op = "decode image"
	OpImageInfo   Op = "read image details"

	// Configuration
	OpConfigLoad  Op = "load configuration"
	OpConfigWrite Op = "write configuration"

	// Result
	OpResultWrite Op = "write selection"

	// Initialization
	OpInitialize Op = "initialize picker"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Wrap annotates err with op for callers that return it rather than show
// it. The message reads like Format's without the capital.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
