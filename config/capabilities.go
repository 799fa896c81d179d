package config

import (
	"os"
	"strings"
)

// ColorMode represents the terminal color capability
type ColorMode int

const (
	Color16        ColorMode = iota // Basic 16 colors
	Color256                        // 256 color palette
	ColorTrueColor                  // 24-bit true color
)

// String returns a human-readable description of the color mode
func (c ColorMode) String() string {
	switch c {
	case Color16:
		return "16 colors"
	case Color256:
		return "256 colors"
	case ColorTrueColor:
		return "TrueColor (24-bit)"
	default:
		return "unknown"
	}
}

// TermCapabilities holds detected terminal capabilities
type TermCapabilities struct {
	UTF8Support   bool
	ColorMode     ColorMode
	KittyGraphics bool // image preview via the kitty graphics protocol
}

// DetectCapabilities detects terminal capabilities from the process
// environment
func DetectCapabilities() *TermCapabilities {
	return DetectCapabilitiesFrom(os.Getenv)
}

// DetectCapabilitiesFrom detects capabilities using getenv for lookups.
func DetectCapabilitiesFrom(getenv func(string) string) *TermCapabilities {
	return &TermCapabilities{
		UTF8Support:   detectUTF8Support(getenv),
		ColorMode:     detectColorMode(getenv),
		KittyGraphics: detectKittyGraphics(getenv),
	}
}

// The first non-empty of LC_ALL, LC_CTYPE and LANG decides.
func detectUTF8Support(getenv func(string) string) bool {
	for _, envVar := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if val := strings.ToUpper(getenv(envVar)); val != "" {
			return strings.Contains(val, "UTF-8") || strings.Contains(val, "UTF8")
		}
	}
	return false
}

func detectColorMode(getenv func(string) string) ColorMode {
	colorterm := strings.ToLower(getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorTrueColor
	}

	term := strings.ToLower(getenv("TERM"))
	for _, t := range []string{"truecolor", "24bit", "direct", "iterm2", "vte", "kitty"} {
		if strings.Contains(term, t) {
			return ColorTrueColor
		}
	}
	if strings.Contains(term, "256color") || strings.Contains(term, "256-color") {
		return Color256
	}
	return Color16
}

// Kitty sets KITTY_WINDOW_ID; other terminals that speak the protocol
// (WezTerm, Ghostty) announce themselves through TERM_PROGRAM or TERM.
func detectKittyGraphics(getenv func(string) string) bool {
	if getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	switch strings.ToLower(getenv("TERM_PROGRAM")) {
	case "wezterm", "ghostty":
		return true
	}
	return strings.Contains(strings.ToLower(getenv("TERM")), "kitty")
}

// ShouldUseASCII returns true if ASCII mode should be used, honoring the
// user override
func (c *TermCapabilities) ShouldUseASCII(override *bool) bool {
	if override != nil {
		return *override
	}
	return !c.UTF8Support
}

// ShouldUseTrueColor returns true if 24-bit swatches should be emitted,
// honoring the user override
func (c *TermCapabilities) ShouldUseTrueColor(override *bool) bool {
	if override != nil {
		return *override
	}
	return c.ColorMode == ColorTrueColor
}

// GlobalCapabilities holds the detected capabilities (set at startup)
var GlobalCapabilities *TermCapabilities

// InitCapabilities detects and stores terminal capabilities
func InitCapabilities() {
	GlobalCapabilities = DetectCapabilities()
}

// GetCapabilities returns the global capabilities, detecting if needed
func GetCapabilities() *TermCapabilities {
	if GlobalCapabilities == nil {
		InitCapabilities()
	}
	return GlobalCapabilities
}
