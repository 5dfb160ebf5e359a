// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of rows to keep visible above/below the cursor.
	ScrollMargin = 1

	// HeaderHeight is the title line with the selection counter.
	HeaderHeight = 1

	// StatusHeight is the status line under the grid.
	StatusHeight = 1

	// ChromeHeight is the vertical space taken outside the grid or pager.
	ChromeHeight = HeaderHeight + StatusHeight

	// LabelHeight is the caption line under each thumbnail.
	LabelHeight = 1

	// MinColumns is the narrowest grid, whatever the terminal width.
	MinColumns = 1
)
