package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"rgbmatrix/pixel"
	"rgbmatrix/table"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousands separators ("1,048,576").
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Message types for SetMessage
const (
	MessageInfo    = "info"
	MessageError   = "error"
	MessageSuccess = "success"
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	filename    string
	dims        pixel.Dimensions
	state       string // "Processing...", "Ready", ...
	mode        table.Mode
	zoom        table.Zoom
	inspected   pixel.Record
	inspecting  bool
	shownRows   int
	totalRows   int
	hasRows     bool
	message     string // Temporary message to display
	messageType string
	width       int
	styles      Styles
}

// NewStatusBar creates a new status bar
func NewStatusBar(styles Styles) *StatusBar {
	return &StatusBar{
		zoom:   table.DefaultZoom,
		styles: styles,
	}
}

// SetImage sets the current file and its dimensions
func (s *StatusBar) SetImage(filename string, dims pixel.Dimensions) {
	s.filename = filename
	s.dims = dims
}

// SetState sets the short pipeline state shown after the file name
func (s *StatusBar) SetState(state string) {
	s.state = state
}

// SetLayout sets the projection and zoom indicator
func (s *StatusBar) SetLayout(mode table.Mode, zoom table.Zoom) {
	s.mode = mode
	s.zoom = zoom
}

// SetInspected shows the selected pixel; ok=false hides the inspector
func (s *StatusBar) SetInspected(p pixel.Record, ok bool) {
	s.inspected = p
	s.inspecting = ok
}

// SetRows sets the rendered and total row counts; total < 0 hides them
func (s *StatusBar) SetRows(shown, total int) {
	s.shownRows = shown
	s.totalRows = total
	s.hasRows = total >= 0
}

// SetMessage sets a temporary message to display
func (s *StatusBar) SetMessage(message, msgType string) {
	s.message = message
	s.messageType = msgType
}

// ClearMessage clears the temporary message
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.messageType = ""
}

// Message returns the current temporary message
func (s *StatusBar) Message() (string, string) {
	return s.message, s.messageType
}

// SetWidth sets the width of the status bar
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetStyles updates the styles for runtime theme changes
func (s *StatusBar) SetStyles(styles Styles) {
	s.styles = styles
}

// InspectorText formats a pixel the way the inspector shows it.
func InspectorText(p pixel.Record) string {
	return fmt.Sprintf("X: %d, Y: %d  R: %d, G: %d, B: %d  %s", p.X, p.Y, p.R, p.G, p.B, p.Hex)
}

// RowsText formats the row counter.
func RowsText(shown, total int) string {
	return fmt.Sprintf("Showing %s of %s rows", FormatCount(shown), FormatCount(total))
}

func (s *StatusBar) left() string {
	if s.filename == "" {
		return " No image"
	}
	left := " " + filepath.Base(s.filename)
	if s.dims.Valid() {
		left += " (" + s.dims.String() + ")"
	}
	if s.state != "" {
		left += " " + s.state
	}
	return left
}

func (s *StatusBar) right() string {
	var parts []string
	if s.inspecting {
		parts = append(parts, InspectorText(s.inspected))
	}
	if s.hasRows {
		parts = append(parts, RowsText(s.shownRows, s.totalRows))
	}
	layout := s.mode.String()
	if s.mode == table.ModeMatrix {
		layout += " " + s.zoom.String()
	}
	parts = append(parts, layout)
	return strings.Join(parts, " | ") + " "
}

// View renders the status bar
func (s *StatusBar) View() string {
	var sb strings.Builder

	ui := s.styles.Theme.UI
	normalColor := ColorToANSI(ui.StatusFg, ui.StatusBg)
	accentColor := ColorToANSIFg(ui.StatusAccent) + "\033[1m" // Bold
	errorColor := ColorToANSIFg(ui.ErrorFg) + "\033[1m"
	resetToNormal := ColorToANSIFg(ui.StatusFg) + "\033[22m" // Not bold

	left, right := s.left(), s.right()
	leftLen, rightLen := runewidth.StringWidth(left), runewidth.StringWidth(right)

	// Drop the right side first when the terminal is narrow
	if leftLen+rightLen > s.width {
		right = runewidth.Truncate(right, max(0, s.width-leftLen), "")
		rightLen = runewidth.StringWidth(right)
	}
	if leftLen > s.width {
		left = runewidth.Truncate(left, s.width, "")
		leftLen = runewidth.StringWidth(left)
	}

	sb.WriteString(normalColor)
	sb.WriteString(left)

	availableSpace := max(0, s.width-leftLen-rightLen)
	centerLen := runewidth.StringWidth(s.message)

	if s.message != "" && centerLen+4 <= availableSpace {
		leftPad := (availableSpace - centerLen) / 2
		rightPad := availableSpace - centerLen - leftPad
		sb.WriteString(strings.Repeat(" ", leftPad))

		switch s.messageType {
		case MessageError:
			sb.WriteString(errorColor)
		case MessageSuccess:
			sb.WriteString(accentColor)
		}
		sb.WriteString(s.message)
		sb.WriteString(resetToNormal)

		sb.WriteString(strings.Repeat(" ", rightPad))
	} else {
		sb.WriteString(strings.Repeat(" ", availableSpace))
	}

	sb.WriteString(right)
	sb.WriteString(Reset)

	return sb.String()
}
