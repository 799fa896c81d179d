package viewer

import (
	"fmt"

	"rgbmatrix/config"
	"rgbmatrix/imagefile"
	"rgbmatrix/pixel"
	"rgbmatrix/ui"

	"github.com/mattn/go-runewidth"
)

// dialog builds the dialog for the current mode, or nil.
func (m *Model) dialog() *ui.DialogBuilder {
	switch m.mode {
	case ModeOpen:
		return m.openDialog()
	case ModeJump:
		return m.jumpDialog()
	case ModeStats:
		return m.statsDialog()
	case ModeHelp:
		return m.helpDialog()
	case ModeAbout:
		return m.aboutDialog()
	case ModeError:
		return m.errorDialog()
	}
	return nil
}

// dialogWidth clamps want to the screen.
func (m *Model) dialogWidth(want int) int {
	return max(20, min(want, m.width-2))
}

func (m *Model) openDialog() *ui.DialogBuilder {
	db := ui.NewDialogBuilder(m.styles, m.box, m.dialogWidth(64))
	inner := db.InnerWidth()
	db.AddTitleBorder(" Open Image ")
	db.AddEmptyLine()
	db.AddField(" Path:", m.openInput, inner-8, !m.openFocusList)
	if n := len(m.config.RecentFiles); n > 0 {
		db.AddText(fmt.Sprintf(" Up/Down: recent files (%d)", n))
	}
	db.AddSeparator()
	db.AddText(" Dir: " + tail(m.browser.dir, inner-7))
	db.AddSeparator()

	m.browserTop = db.Height()
	const sizeWidth = 10
	nameWidth := max(1, inner-3-sizeWidth)
	b := &m.browser
	for i := range m.browserHeight() {
		idx := b.scroll + i
		if idx >= len(b.entries) {
			db.AddEmptyLine()
			continue
		}
		e := b.entries[idx]
		size := "<DIR>"
		if !e.IsDir {
			size = imagefile.FormatFileSize(e.Size)
		}
		name := runewidth.FillRight(runewidth.Truncate(e.Name, nameWidth, "..."), nameWidth)
		db.AddSelectableItem(fmt.Sprintf("  %s %*s", name, sizeWidth, size), m.openFocusList && idx == b.selected)
	}

	db.AddSeparator()
	if b.err != "" {
		db.AddErrorText(" " + b.err)
	} else if b.fileCount() == 0 {
		db.AddText(" No images here")
	} else {
		db.AddText(fmt.Sprintf(" Images up to %d MB", m.config.Viewer.MaxFileSizeMB))
	}
	if m.openFocusList {
		db.AddCenteredText("Enter: open  Bksp: parent  Tab: path  Esc: cancel")
	} else {
		db.AddCenteredText("Enter: open  Tab: browse  Esc: cancel")
	}
	db.AddBottomBorder()
	return db
}

func (m *Model) jumpDialog() *ui.DialogBuilder {
	db := ui.NewDialogBuilder(m.styles, m.box, m.dialogWidth(44))
	db.AddTitleBorder(" Jump to Pixel ")
	db.AddEmptyLine()
	dims := m.view.Layout.Sequence().Dimensions()
	db.AddText(fmt.Sprintf(" X: 0..%d   Y: 0..%d", dims.Width-1, dims.Height-1))
	db.AddEmptyLine()
	db.AddField(" X:", m.jumpX, 12, m.jumpField == 0)
	db.AddField(" Y:", m.jumpY, 12, m.jumpField == 1)
	db.AddEmptyLine()
	if m.jumpErr != "" {
		db.AddErrorText(" " + m.jumpErr)
		db.AddEmptyLine()
	}
	db.AddCenteredText("Tab: switch  |  Enter: go  |  Esc: cancel")
	db.AddBottomBorder()
	return db
}

func (m *Model) statsDialog() *ui.DialogBuilder {
	db := ui.NewDialogBuilder(m.styles, m.box, m.dialogWidth(48))
	db.AddTitleBorder(" Statistics ")
	db.AddEmptyLine()
	s := m.stats
	if s == nil || !s.HasData() {
		db.AddCenteredText("No pixel data")
	} else {
		dims := m.view.Layout.Sequence().Dimensions()
		db.AddText(" Dimensions:   " + dims.String())
		db.AddText(" Total pixels: " + ui.FormatCount(s.Total))
		db.AddEmptyLine()
		db.AddText(" Average")
		db.AddSwatch(int(s.AvgR), int(s.AvgG), int(s.AvgB),
			fmt.Sprintf("%s  (%d, %d, %d)", s.AverageHex(), s.AvgR, s.AvgG, s.AvgB))
		db.AddText(" Brightest")
		m.addExtreme(db, s.Brightest)
		db.AddText(" Darkest")
		m.addExtreme(db, s.Darkest)
	}
	db.AddEmptyLine()
	db.AddCenteredText("Press any key to continue...")
	db.AddBottomBorder()
	return db
}

func (m *Model) addExtreme(db *ui.DialogBuilder, p *pixel.Record) {
	if p == nil {
		return
	}
	db.AddSwatch(int(p.R), int(p.G), int(p.B), fmt.Sprintf("%s  at (%d, %d)", p.Hex, p.X, p.Y))
}

func (m *Model) helpDialog() *ui.DialogBuilder {
	db := ui.NewDialogBuilder(m.styles, m.box, m.dialogWidth(52))
	db.AddTitleBorder(" Keyboard Shortcuts ")
	db.AddEmptyLine()
	for _, action := range config.AllActions() {
		keys := m.config.Keys.GetBinding(action).DisplayString()
		db.AddText(fmt.Sprintf("  %-16s %s", keys, config.ActionNames[action]))
	}
	db.AddSeparator()
	db.AddText(fmt.Sprintf("  %-16s %s", "Arrows", "Move selection"))
	db.AddText(fmt.Sprintf("  %-16s %s", "PgUp/PgDn", "Page up/down"))
	db.AddText(fmt.Sprintf("  %-16s %s", "Home/End", "First/last (row start/end)"))
	db.AddText(fmt.Sprintf("  %-16s %s", "Ctrl+Home/End", "First/last pixel"))
	db.AddText(fmt.Sprintf("  %-16s %s", "Alt+F/V/S/H", "Open a menu"))
	db.AddText(fmt.Sprintf("  %-16s %s", "Mouse", "Click, wheel, scrollbar"))
	db.AddEmptyLine()
	db.AddCenteredText("Press any key to continue...")
	db.AddBottomBorder()
	return db
}

func (m *Model) aboutDialog() *ui.DialogBuilder {
	db := ui.NewDialogBuilder(m.styles, m.box, m.dialogWidth(48))
	db.AddTitleBorder(" About ")
	db.AddEmptyLine()
	db.AddCenteredText("rgbmatrix " + Version)
	db.AddCenteredText("Browse the pixels of an image")
	db.AddEmptyLine()
	if m.image != nil {
		info := m.image.Info
		db.AddCenteredText(fmt.Sprintf("%s, %s", info.ContentType, imagefile.FormatFileSize(info.Size)))
	}
	db.AddCenteredText("Colors: " + m.caps.ColorMode.String())
	if m.preview.UseKitty() {
		db.AddCenteredText("Preview: kitty graphics")
	}
	db.AddEmptyLine()
	db.AddCenteredText("Press any key to continue...")
	db.AddBottomBorder()
	return db
}

func (m *Model) errorDialog() *ui.DialogBuilder {
	db := ui.NewDialogBuilder(m.styles, m.box, m.dialogWidth(64))
	title := m.errorTitle
	if title == "" {
		title = "Error"
	}
	db.AddTitleBorder(" " + title + " ")
	db.AddEmptyLine()
	for _, line := range wrap(m.errorText, db.InnerWidth()-2) {
		db.AddErrorText(" " + line)
	}
	db.AddEmptyLine()
	db.AddCenteredText("Press any key to continue...")
	db.AddBottomBorder()
	return db
}

// tail keeps the end of s within width columns.
func tail(s string, width int) string {
	if w := runewidth.StringWidth(s); w > width {
		return runewidth.TruncateLeft(s, w-width+3, "...")
	}
	return s
}

// wrap breaks s into lines of at most width columns.
func wrap(s string, width int) []string {
	width = max(1, width)
	var lines []string
	for runewidth.StringWidth(s) > width {
		head := runewidth.Truncate(s, width, "")
		if head == "" {
			break
		}
		lines = append(lines, head)
		s = s[len(head):]
	}
	return append(lines, s)
}
