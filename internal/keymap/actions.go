// Package keymap defines key bindings and action dispatch for the picker.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionConfirm Action = "confirm" // finish and hand the selection back
	ActionCancel  Action = "cancel"  // abandon the picker
	ActionHelp    Action = "help"
	ActionReload  Action = "reload"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Album list
	ActionOpen Action = "open" // enter - open album

	// Gallery actions
	ActionBack         Action = "back"          // backspace - album list
	ActionToggleSelect Action = "toggle_select" // space
	ActionSelectAll    Action = "select_all"    // a
	ActionClearSelect  Action = "clear_select"  // c
	ActionPreview      Action = "preview"       // enter - full screen

	// Preview actions
	ActionNextImage    Action = "next_image"
	ActionPrevImage    Action = "prev_image"
	ActionToggleCheck  Action = "toggle_check"
	ActionClosePreview Action = "close_preview"
)
