package ui

import (
	"fmt"
	"strconv"
	"strings"

	"rgbmatrix/config"
	"rgbmatrix/pixel"

	"github.com/charmbracelet/lipgloss"
)

// UseTrueColor controls whether hex colors and pixel swatches use true
// color (24-bit) or fall back to the nearest 256-color.
var UseTrueColor = true

// Reset clears all SGR attributes.
const Reset = "\033[0m"

// ColorToANSIFg converts a theme color string to an ANSI foreground escape sequence
// Supports: "0"-"255" for indexed colors, "#RGB" or "#RRGGBB" for hex colors
func ColorToANSIFg(color string) string {
	if strings.HasPrefix(color, "#") {
		r, g, b := parseHexColor(color)
		return RGBToANSIFg(r, g, b)
	}
	n, err := strconv.Atoi(color)
	if err != nil {
		return "\033[37m" // Default to white on error
	}
	if n < 16 {
		// Standard colors: use traditional codes for better compatibility
		if n < 8 {
			return fmt.Sprintf("\033[%dm", 30+n)
		}
		return fmt.Sprintf("\033[%dm", 90+(n-8))
	}
	return fmt.Sprintf("\033[38;5;%dm", n)
}

// ColorToANSIBg converts a theme color string to an ANSI background escape sequence
func ColorToANSIBg(color string) string {
	if strings.HasPrefix(color, "#") {
		r, g, b := parseHexColor(color)
		return RGBToANSIBg(r, g, b)
	}
	n, err := strconv.Atoi(color)
	if err != nil {
		return "\033[40m" // Default to black on error
	}
	if n < 16 {
		if n < 8 {
			return fmt.Sprintf("\033[%dm", 40+n)
		}
		return fmt.Sprintf("\033[%dm", 100+(n-8))
	}
	return fmt.Sprintf("\033[48;5;%dm", n)
}

// RGBToANSIFg returns the foreground sequence for an exact color.
func RGBToANSIFg(r, g, b int) string {
	if UseTrueColor {
		return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
	}
	return fmt.Sprintf("\033[38;5;%dm", rgbTo256Color(r, g, b))
}

// RGBToANSIBg returns the background sequence for an exact color.
func RGBToANSIBg(r, g, b int) string {
	if UseTrueColor {
		return fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
	}
	return fmt.Sprintf("\033[48;5;%dm", rgbTo256Color(r, g, b))
}

// ColorToANSI returns combined fg+bg ANSI sequence
func ColorToANSI(fg, bg string) string {
	return ColorToANSIBg(bg) + ColorToANSIFg(fg)
}

// rgbTo256Color converts RGB values to the nearest 256-color palette index
func rgbTo256Color(r, g, b int) int {
	if isGrayscale(r, g, b) {
		return rgbToGrayscale(r, g, b)
	}
	// 6x6x6 color cube (colors 16-231)
	return 16 + 36*rgbTo6(r) + 6*rgbTo6(g) + rgbTo6(b)
}

// rgbTo6 converts an 8-bit color value to a 6-level value (0-5)
// The 6x6x6 cube uses values: 0, 95, 135, 175, 215, 255
func rgbTo6(v int) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	case v < 155:
		return 2
	case v < 195:
		return 3
	case v < 235:
		return 4
	}
	return 5
}

// isGrayscale checks if RGB values are close enough to be grayscale
func isGrayscale(r, g, b int) bool {
	return max(r, g, b)-min(r, g, b) < 20
}

// rgbToGrayscale converts RGB to nearest grayscale in 232-255 range
func rgbToGrayscale(r, g, b int) int {
	gray := (r + g + b) / 3
	if gray < 4 {
		return 16 // black from the color cube
	}
	if gray > 243 {
		return 231 // white from the color cube
	}
	return 232 + (gray-8)/10
}

// parseHexColor parses #RGB or #RRGGBB to r, g, b values
func parseHexColor(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	r, g, b, err := pixel.ParseHex(hex)
	if err != nil {
		return 255, 255, 255 // Default to white on error
	}
	return int(r), int(g), int(b)
}

// Swatch paints text on the pixel's own color, with a legible foreground
// picked by contrast against the pixel.
func (s Styles) Swatch(p pixel.Record, text string) string {
	fg := s.Theme.Table.LightText
	if p.Contrast() == pixel.Dark {
		fg = s.Theme.Table.DarkText
	}
	return RGBToANSIBg(int(p.R), int(p.G), int(p.B)) + ColorToANSIFg(fg) + text + Reset
}

// Styles contains all the styles used by the viewer
type Styles struct {
	// The theme these styles were generated from
	Theme config.Theme

	// Menu bar styles
	MenuBar            lipgloss.Style
	MenuItem           lipgloss.Style
	MenuItemActive     lipgloss.Style
	MenuDropdown       lipgloss.Style
	MenuOption         lipgloss.Style
	MenuOptionActive   lipgloss.Style
	MenuOptionDisabled lipgloss.Style

	// Status bar styles
	StatusBar    lipgloss.Style
	StatusAccent lipgloss.Style

	// Table styles
	Table      lipgloss.Style
	Header     lipgloss.Style
	Coordinate lipgloss.Style
	Selection  lipgloss.Style
	NoData     lipgloss.Style

	// Dialog styles
	DialogTitle       lipgloss.Style
	DialogText        lipgloss.Style
	DialogButtonFocus lipgloss.Style
	DialogInput       lipgloss.Style

	// General styles
	Subtle lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles creates a Styles configuration from a theme
func NewStyles(theme config.Theme) Styles {
	ui := theme.UI
	tbl := theme.Table

	return Styles{
		Theme: theme,

		MenuBar: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.MenuBg)).
			Foreground(lipgloss.Color(ui.MenuFg)).
			Bold(true),

		MenuItem: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.MenuBg)).
			Foreground(lipgloss.Color(ui.MenuFg)).
			Padding(0, 2),

		MenuItemActive: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.MenuHighlightBg)).
			Foreground(lipgloss.Color(ui.MenuHighlightFg)).
			Bold(true).
			Padding(0, 2),

		MenuDropdown: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.MenuBg)).
			Foreground(lipgloss.Color(ui.MenuFg)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ui.MenuFg)),

		MenuOption: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.MenuBg)).
			Foreground(lipgloss.Color(ui.MenuFg)).
			Padding(0, 1),

		MenuOptionActive: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.MenuHighlightBg)).
			Foreground(lipgloss.Color(ui.MenuHighlightFg)).
			Padding(0, 1),

		MenuOptionDisabled: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.MenuBg)).
			Foreground(lipgloss.Color(ui.DisabledFg)).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusFg)),

		StatusAccent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.StatusAccent)).
			Background(lipgloss.Color(ui.StatusBg)).
			Bold(true),

		Table: lipgloss.NewStyle().
			Background(lipgloss.Color(tbl.Bg)).
			Foreground(lipgloss.Color(tbl.Fg)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(tbl.HeaderBg)).
			Foreground(lipgloss.Color(tbl.HeaderFg)).
			Bold(true),

		Coordinate: lipgloss.NewStyle().
			Background(lipgloss.Color(tbl.Bg)).
			Foreground(lipgloss.Color(tbl.Coordinate)),

		Selection: lipgloss.NewStyle().
			Background(lipgloss.Color(tbl.SelectionBg)).
			Foreground(lipgloss.Color(tbl.SelectionFg)),

		NoData: lipgloss.NewStyle().
			Background(lipgloss.Color(tbl.Bg)).
			Foreground(lipgloss.Color(tbl.NoData)),

		DialogTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.DialogTitle)).
			Bold(true),

		DialogText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.DialogFg)),

		DialogButtonFocus: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogButton)).
			Foreground(lipgloss.Color(ui.DialogButtonFg)).
			Bold(true).
			Padding(0, 2),

		DialogInput: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogFg)).
			Foreground(lipgloss.Color(ui.DialogBg)),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.DisabledFg)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.ErrorFg)).
			Bold(true),
	}
}

// DefaultStyles returns the default style configuration
func DefaultStyles() Styles {
	return NewStyles(config.DefaultTheme())
}
