package thumbs

import (
	"os"
	"strings"
)

// Detect returns the ImageProtocol for the configured mode, or nil when
// images are disabled or the terminal supports none.
//
//   - "kitty": force Kitty protocol
//   - "sixel": force Sixel protocol
//   - "none": disable image display
//   - anything else: detect from the environment
func Detect(mode string) ImageProtocol {
	switch strings.ToLower(mode) {
	case "kitty":
		return &KittyProtocol{}
	case "sixel":
		return NewSixelProtocol()
	case "none":
		return nil
	}

	if IsKittySupported() {
		return &KittyProtocol{}
	}
	if IsSixelSupported() {
		return NewSixelProtocol()
	}
	return nil
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Contour sets CONTOUR_PROFILE but doesn't support Kitty protocol.
	// Parent terminal env vars can leak into it.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM") == "xterm-kitty" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	if version := os.Getenv("KONSOLE_VERSION"); version != "" {
		if len(version) >= 4 && version[:4] >= "2204" {
			return true
		}
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks if the terminal supports Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	switch {
	case term == "foot" || term == "foot-extra":
		return true
	case termProgram == "vscode", termProgram == "mintty", termProgram == "iTerm.app":
		return true
	case termProgram == "contour" || os.Getenv("CONTOUR_PROFILE") != "":
		return true
	}

	// xterm only draws sixel when built with --enable-sixel-graphics. Kitty
	// was checked first so xterm-kitty never reaches here.
	return term == "xterm" || strings.HasPrefix(term, "xterm-")
}
