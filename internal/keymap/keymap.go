// Package keymap defines key bindings for the picker.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "navigation", "albums", "gallery", "preview"
}

// Bindings contains all key bindings, used both for dispatch and help.
var Bindings = []Binding{
	// Global
	{ActionConfirm, []string{"ctrl+s", "ctrl+enter"}, "Confirm selection", "global"},
	{ActionCancel, []string{"q", "ctrl+c"}, "Cancel", "global"},
	{ActionReload, []string{"ctrl+r"}, "Reload", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Navigation
	{ActionMoveUp, []string{"k", "up"}, "Move up", "navigation"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "navigation"},
	{ActionMoveLeft, []string{"h", "left"}, "Move left", "navigation"},
	{ActionMoveRight, []string{"l", "right"}, "Move right", "navigation"},
	{ActionJumpStart, []string{"g", "home"}, "First item", "navigation"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "navigation"},
	{ActionPageUp, []string{"pgup", "ctrl+u"}, "Page up", "navigation"},
	{ActionPageDown, []string{"pgdown", "ctrl+d"}, "Page down", "navigation"},

	// Album list
	{ActionOpen, []string{"enter"}, "Open album", "albums"},
	{ActionBack, []string{"backspace", "esc"}, "Cancel picker", "albums"},

	// Gallery
	{ActionToggleSelect, []string{" ", "x"}, "Toggle selection", "gallery"},
	{ActionSelectAll, []string{"a"}, "Select all", "gallery"},
	{ActionClearSelect, []string{"c"}, "Clear selection", "gallery"},
	{ActionPreview, []string{"enter"}, "Preview image", "gallery"},
	{ActionBack, []string{"backspace", "esc"}, "Back to albums", "gallery"},

	// Preview
	{ActionNextImage, []string{"l", "right", "n"}, "Next image", "preview"},
	{ActionPrevImage, []string{"h", "left", "p"}, "Previous image", "preview"},
	{ActionToggleCheck, []string{" ", "x"}, "Toggle selection", "preview"},
	{ActionClosePreview, []string{"esc", "backspace", "enter"}, "Close preview", "preview"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
