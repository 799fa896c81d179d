package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// BoxChars holds the characters used to draw dialog frames
type BoxChars struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
	TeeLeft     string
	TeeRight    string
}

// UnicodeBox draws frames with box-drawing characters
var UnicodeBox = BoxChars{
	TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
	Horizontal: "─", Vertical: "│", TeeLeft: "├", TeeRight: "┤",
}

// ASCIIBox is the fallback for terminals without UTF-8
var ASCIIBox = BoxChars{
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
	Horizontal: "-", Vertical: "|", TeeLeft: "+", TeeRight: "+",
}

// Box picks the frame characters for the terminal.
func Box(ascii bool) BoxChars {
	if ascii {
		return ASCIIBox
	}
	return UnicodeBox
}

// Border converts the frame characters into a lipgloss border.
func (b BoxChars) Border() lipgloss.Border {
	return lipgloss.Border{
		Top: b.Horizontal, Bottom: b.Horizontal,
		Left: b.Vertical, Right: b.Vertical,
		TopLeft: b.TopLeft, TopRight: b.TopRight,
		BottomLeft: b.BottomLeft, BottomRight: b.BottomRight,
		MiddleLeft: b.TeeLeft, MiddleRight: b.TeeRight,
	}
}

// DialogBuilder helps construct consistent dialogs
type DialogBuilder struct {
	box        BoxChars
	width      int      // Total box width including borders
	innerWidth int      // Width inside borders
	lines      []string // Built dialog lines
	colors     dialogColors
}

// dialogColors holds the resolved theme color escape codes
type dialogColors struct {
	dialog   string // Base dialog fg/bg
	selected string // Selected item fg/bg
	input    string // Text field fg/bg
	errText  string
}

// NewDialogBuilder creates a new dialog builder
func NewDialogBuilder(styles Styles, box BoxChars, width int) *DialogBuilder {
	themeUI := styles.Theme.UI
	width = max(width, 4)
	return &DialogBuilder{
		box:        box,
		width:      width,
		innerWidth: width - 2,
		colors: dialogColors{
			dialog:   ColorToANSI(themeUI.DialogFg, themeUI.DialogBg),
			selected: ColorToANSI(themeUI.DialogButtonFg, themeUI.DialogButton),
			input:    ColorToANSI(themeUI.DialogBg, themeUI.DialogFg),
			errText:  ColorToANSIFg(themeUI.ErrorFg),
		},
	}
}

// AddTitleBorder adds the top border with an embedded title
func (db *DialogBuilder) AddTitleBorder(title string) {
	title = runewidth.Truncate(title, db.innerWidth, "")
	titlePadLeft := (db.innerWidth - runewidth.StringWidth(title)) / 2
	titlePadRight := db.innerWidth - runewidth.StringWidth(title) - titlePadLeft
	line := db.box.TopLeft +
		strings.Repeat(db.box.Horizontal, titlePadLeft) +
		title +
		strings.Repeat(db.box.Horizontal, titlePadRight) +
		db.box.TopRight
	db.lines = append(db.lines, line)
}

// AddBottomBorder adds the bottom border
func (db *DialogBuilder) AddBottomBorder() {
	db.lines = append(db.lines, db.box.BottomLeft+strings.Repeat(db.box.Horizontal, db.innerWidth)+db.box.BottomRight)
}

// AddEmptyLine adds an empty line with borders
func (db *DialogBuilder) AddEmptyLine() {
	db.lines = append(db.lines, db.box.Vertical+strings.Repeat(" ", db.innerWidth)+db.box.Vertical)
}

// AddText adds a line of text (left-aligned, padded)
func (db *DialogBuilder) AddText(text string) {
	db.lines = append(db.lines, db.box.Vertical+db.PadText(text)+db.box.Vertical)
}

// AddCenteredText adds a line of centered text
func (db *DialogBuilder) AddCenteredText(text string) {
	db.lines = append(db.lines, db.box.Vertical+db.CenterText(text)+db.box.Vertical)
}

// AddErrorText adds a left-aligned line in the theme's error color
func (db *DialogBuilder) AddErrorText(text string) {
	db.lines = append(db.lines, db.box.Vertical+db.colors.errText+db.PadText(text)+db.colors.dialog+db.box.Vertical)
}

// AddSelectableItem adds an item that can be selected (highlighted when selected)
func (db *DialogBuilder) AddSelectableItem(text string, isSelected bool) {
	var line string
	if isSelected {
		line = db.box.Vertical + db.colors.selected + db.PadText(text) + db.colors.dialog + db.box.Vertical
	} else {
		line = db.box.Vertical + db.PadText(text) + db.box.Vertical
	}
	db.lines = append(db.lines, line)
}

// AddField adds "label [value_]" with the value drawn as a text field of
// fieldWidth columns. The cursor is shown only on the focused field.
func (db *DialogBuilder) AddField(label, value string, fieldWidth int, focused bool) {
	fieldWidth = max(1, min(fieldWidth, db.innerWidth-runewidth.StringWidth(label)-1))
	shown := value
	if focused {
		shown += "_"
	}
	if w := runewidth.StringWidth(shown); w > fieldWidth {
		// keep the tail, where typing happens
		shown = runewidth.TruncateLeft(shown, w-fieldWidth, "")
	}
	shown = runewidth.FillRight(shown, fieldWidth)

	style := db.colors.input
	if focused {
		style = db.colors.selected
	}
	rest := db.innerWidth - runewidth.StringWidth(label) - 1 - fieldWidth
	line := db.box.Vertical + label + " " + style + shown + db.colors.dialog +
		strings.Repeat(" ", max(0, rest)) + db.box.Vertical
	db.lines = append(db.lines, line)
}

// AddSwatch adds a line that starts with a colored block followed by text
func (db *DialogBuilder) AddSwatch(r, g, b int, text string) {
	const swatch = "    "
	line := db.box.Vertical + " " + RGBToANSIBg(r, g, b) + swatch + db.colors.dialog +
		" " + runewidth.FillRight(runewidth.Truncate(text, db.innerWidth-6, ""), db.innerWidth-6) +
		db.box.Vertical
	db.lines = append(db.lines, line)
}

// AddSeparator adds a horizontal separator line
func (db *DialogBuilder) AddSeparator() {
	db.lines = append(db.lines, db.box.TeeLeft+strings.Repeat(db.box.Horizontal, db.innerWidth)+db.box.TeeRight)
}

// PadText pads text to innerWidth (left-aligned)
func (db *DialogBuilder) PadText(s string) string {
	sw := runewidth.StringWidth(s)
	if sw > db.innerWidth {
		return runewidth.Truncate(s, db.innerWidth, "")
	}
	return s + strings.Repeat(" ", db.innerWidth-sw)
}

// CenterText centers text within innerWidth
func (db *DialogBuilder) CenterText(s string) string {
	sw := runewidth.StringWidth(s)
	if sw >= db.innerWidth {
		return runewidth.Truncate(s, db.innerWidth, "")
	}
	padLeft := (db.innerWidth - sw) / 2
	padRight := db.innerWidth - sw - padLeft
	return strings.Repeat(" ", padLeft) + s + strings.Repeat(" ", padRight)
}

// Height returns the current height of the dialog
func (db *DialogBuilder) Height() int {
	return len(db.lines)
}

// Width returns the total width including borders
func (db *DialogBuilder) Width() int {
	return db.width
}

// InnerWidth returns the inner width (for external calculations)
func (db *DialogBuilder) InnerWidth() int {
	return db.innerWidth
}

// Lines returns the built dialog lines
func (db *DialogBuilder) Lines() []string {
	return db.lines
}

// Position returns where Overlay places the dialog's top-left corner.
func (db *DialogBuilder) Position(viewportWidth, viewportHeight int) (x, y int) {
	return max(0, (viewportWidth-db.width)/2), max(0, (viewportHeight-len(db.lines))/2)
}

// Overlay renders the dialog centered on the viewport content
func (db *DialogBuilder) Overlay(viewportContent string, viewportWidth, viewportHeight int) string {
	startX, startY := db.Position(viewportWidth, viewportHeight)

	styled := make([]string, len(db.lines))
	for i, line := range db.lines {
		styled[i] = db.colors.dialog + line + Reset
	}
	return OverlayLines(viewportContent, styled, startX, startY)
}

// OverlayLines draws lines over content starting at column x, row y.
// Content outside the overlay keeps its styling on the left side.
func OverlayLines(content string, lines []string, x, y int) string {
	contentLines := strings.Split(content, "\n")
	for i, line := range lines {
		row := y + i
		if row >= 0 && row < len(contentLines) {
			contentLines[row] = overlayLineAt(line, contentLines[row], x)
		}
	}
	return strings.Join(contentLines, "\n")
}

// overlayLineAt overlays dropLine on top of baseLine at the given column,
// preserving base content on both sides
func overlayLineAt(dropLine, baseLine string, offset int) string {
	var result strings.Builder

	prefix := ansi.Truncate(baseLine, offset, "")
	result.WriteString(prefix)
	if w := ansi.StringWidth(prefix); w < offset {
		result.WriteString(strings.Repeat(" ", offset-w))
	}
	result.WriteString(Reset)
	result.WriteString(dropLine)
	result.WriteString(Reset)

	// The suffix loses its styling; the overlay is drawn over plain text.
	plain := ansi.Strip(baseLine)
	suffixStart := offset + ansi.StringWidth(dropLine)
	if w := runewidth.StringWidth(plain); suffixStart < w {
		result.WriteString(runewidth.TruncateLeft(plain, suffixStart, ""))
	}
	return result.String()
}
