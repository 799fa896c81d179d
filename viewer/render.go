package viewer

import (
	"fmt"
	"path/filepath"
	"strings"

	"rgbmatrix/config"
	"rgbmatrix/imagefile"
	"rgbmatrix/ui"

	"github.com/mattn/go-runewidth"
)

// Version is reported by the about dialog and the version command.
var Version = "0.1.0"

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		// Last frame: remove the kitty image from the terminal
		return m.preview.ClearImage()
	}
	m.syncStatus()

	var sb strings.Builder
	sb.WriteString(m.menubar.View())
	sb.WriteString("\n")

	content := strings.Join(m.contentLines(), "\n")

	// If menu dropdown is open, overlay it on top of the content
	if m.menubar.IsOpen() {
		if lines, offset := m.menubar.RenderDropdown(); len(lines) > 0 {
			content = ui.OverlayLines(content, lines, offset, 0)
		}
	}

	if db := m.dialog(); db != nil {
		content = db.Overlay(content, m.width, m.height-2)
	}

	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(m.statusbar.View())
	sb.WriteString(m.kittyOverlay())
	return sb.String()
}

// cursorPixel returns the selected pixel's image coordinates.
func (m *Model) cursorPixel() (x, y int, ok bool) {
	p, ok := m.Selected()
	return p.X, p.Y, ok
}

func (m *Model) syncStatus() {
	m.statusbar.SetState(m.state.String())
	m.statusbar.SetLayout(m.view.Layout.Mode(), m.view.Layout.Zoom())
	p, ok := m.Selected()
	m.statusbar.SetInspected(p, ok)
	if m.state == StateReady {
		m.statusbar.SetRows(m.view.Rows.Window().Len(), m.view.Layout.RowCount())
	} else {
		m.statusbar.SetRows(0, -1)
	}
}

// contentLines renders everything between the menu bar and the status bar:
// the header line followed by the body.
func (m *Model) contentLines() []string {
	h := m.bodyHeight()
	switch m.state {
	case StateReady:
		return m.tableLines(h)
	case StateLoaded, StateProcessing:
		return m.previewLines(h)
	default:
		return m.welcomeLines(h)
	}
}

func (m *Model) blankLine(width int) string {
	return m.styles.Table.Render(strings.Repeat(" ", max(0, width)))
}

// centered places text in the middle of a width-wide table line.
func (m *Model) centered(text string, width int) string {
	text = runewidth.Truncate(text, width, "")
	left := max(0, (width-runewidth.StringWidth(text))/2)
	return m.styles.Table.Render(runewidth.FillRight(strings.Repeat(" ", left)+text, max(0, width)))
}

func (m *Model) welcomeLines(h int) []string {
	lines := make([]string, 0, h+1)
	lines = append(lines, m.styles.Header.Render(strings.Repeat(" ", m.width)))
	keys := &m.config.Keys
	text := []string{
		"rgbmatrix " + Version,
		"",
		"Press " + config.FormatKeyForDisplay(keys.Open.Primary) + " to open an image",
		config.FormatKeyForDisplay(keys.Menu.Primary) + " opens the menu, " +
			config.FormatKeyForDisplay(keys.Help.Primary) + " lists the keys",
	}
	top := max(0, (h-len(text))/2)
	for i := range h {
		if j := i - top; j >= 0 && j < len(text) {
			lines = append(lines, m.centered(text[j], m.width))
		} else {
			lines = append(lines, m.blankLine(m.width))
		}
	}
	return lines
}

// imageHeader describes the loaded file on the header line.
func (m *Model) imageHeader() string {
	info := m.image.Info
	return fmt.Sprintf(" %s  %s  %s  %s", filepath.Base(info.Path), info.Dims,
		strings.ToUpper(info.Format), imagefile.FormatFileSize(info.Size))
}

// previewLines shows the whole image with a hint below it before the
// table exists.
func (m *Model) previewLines(h int) []string {
	lines := make([]string, 0, h+1)
	lines = append(lines, m.styles.Header.Render(runewidth.FillRight(runewidth.Truncate(m.imageHeader(), m.width, ""), m.width)))

	hint := "Press " + config.FormatKeyForDisplay(m.config.Keys.Process.Primary) + " to extract pixels"
	if m.state == StateProcessing {
		hint = "Extracting pixels..."
	}

	if !m.preview.Visible() || h < 3 {
		top := (h - 1) / 2
		for i := range h {
			if i == top {
				lines = append(lines, m.centered(hint, m.width))
			} else {
				lines = append(lines, m.blankLine(m.width))
			}
		}
		return lines
	}

	lines = append(lines, m.preview.Render(m.width, h-2, 0, 0, false)...)
	lines = append(lines, m.blankLine(m.width), m.centered(hint, m.width))
	return lines
}

// tableLines renders the header, the table body with its scrollbar and
// the preview panel to the right.
func (m *Model) tableLines(h int) []string {
	cw := m.contentWidth()
	pw := m.previewWidth()

	header := m.renderer.Header(m.view, cw)
	if sw := m.scrollbar.Width(); sw > 0 {
		header += m.styles.Header.Render(strings.Repeat(" ", sw))
	}
	if pw > 0 {
		header += m.styles.Header.Render(runewidth.FillRight(runewidth.Truncate(" Preview", pw, ""), pw))
	}

	body := m.renderer.Body(m.view, m.selected, cw, h)
	bar := m.scrollbar.Render(m.view.Rows.ScrollOffset(), m.view.Rows.Viewport(), m.view.Rows.TotalExtent())
	var side []string
	if pw > 0 {
		cx, cy, ok := m.cursorPixel()
		side = m.preview.Render(pw-1, h, cx, cy, ok)
	}

	lines := make([]string, 0, h+1)
	lines = append(lines, header)
	for i, l := range body {
		if i < len(bar) {
			l += bar[i]
		}
		if i < len(side) {
			l += " " + side[i]
		}
		lines = append(lines, l)
	}
	return lines
}

// previewArea is where the preview image sits on screen, in cells.
func (m *Model) previewArea() (x, y, w, h int, ok bool) {
	if !m.preview.Visible() {
		return 0, 0, 0, 0, false
	}
	bh := m.bodyHeight()
	switch m.state {
	case StateReady:
		pw := m.previewWidth()
		if pw <= 1 {
			return 0, 0, 0, 0, false
		}
		return m.tableWidth() + 1, bodyTop, pw - 1, bh, true
	case StateLoaded, StateProcessing:
		if bh < 3 {
			return 0, 0, 0, 0, false
		}
		return 0, bodyTop, m.width, bh - 2, true
	}
	return 0, 0, 0, 0, false
}

// kittyOverlay draws the preview through the kitty graphics protocol. The
// image is removed while a menu or dialog covers the screen.
func (m *Model) kittyOverlay() string {
	if !m.preview.UseKitty() {
		return ""
	}
	x, y, w, h, ok := m.previewArea()
	if !ok || m.mode != ModeNormal {
		if m.kittyShown {
			m.kittyShown = false
			return m.preview.ClearImage()
		}
		return ""
	}
	m.kittyShown = true
	cx, cy, cok := m.cursorPixel()
	return m.preview.KittySequence(w, h, x, y, cx, cy, cok)
}
