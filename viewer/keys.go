package viewer

import (
	"os"
	"strings"

	"rgbmatrix/pixel"
	"rgbmatrix/table"
	"rgbmatrix/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Alt shortcuts that open a menu directly
var menuHotKeys = map[string]int{
	"alt+f": 0,
	"alt+v": 1,
	"alt+s": 2,
	"alt+h": 3,
}

// handleKey handles keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeMenu:
		return m.handleMenuKey(msg)
	case ModeOpen:
		return m.handleOpenKey(msg)
	case ModeJump:
		return m.handleJumpKey(msg)
	case ModeStats, ModeHelp, ModeAbout, ModeError:
		// Any key dismisses
		m.mode = ModeNormal
		return m, nil
	}

	key := msg.String()
	if action := m.config.Keys.ActionFor(key); action != "" {
		return m.executeAction(action)
	}
	if index, ok := menuHotKeys[key]; ok {
		m.menubar.OpenMenu(index)
		m.mode = ModeMenu
		return m, nil
	}
	if key == "esc" {
		m.statusbar.ClearMessage()
		return m, nil
	}
	m.moveSelection(key)
	return m, nil
}

// handleMenuKey handles keyboard input in menu mode
func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyF10:
		m.menubar.Close()
		m.mode = ModeNormal

	case tea.KeyEnter:
		action := m.menubar.Select()
		if action == "" {
			return m, nil // disabled item
		}
		m.mode = ModeNormal
		return m.executeAction(action)

	case tea.KeyUp:
		m.menubar.PrevItem()

	case tea.KeyDown:
		m.menubar.NextItem()

	case tea.KeyLeft:
		m.menubar.PrevMenu()

	case tea.KeyRight:
		m.menubar.NextMenu()

	case tea.KeyRunes:
		// Handle hotkey letter press
		if len(msg.Runes) == 1 {
			if action := m.menubar.SelectByHotKey(msg.Runes[0]); action != "" {
				m.mode = ModeNormal
				return m.executeAction(action)
			}
		}
	}

	return m, nil
}

// handleOpenKey handles the open dialog: a path field and a file list.
// Typing always goes to the path field; Tab moves between the two.
func (m *Model) handleOpenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.browserHeight()

	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.statusbar.SetMessage("Cancelled", ui.MessageInfo)

	case tea.KeyTab, tea.KeyShiftTab:
		m.openFocusList = !m.openFocusList

	case tea.KeyEnter:
		if m.openFocusList {
			if path, ok := m.browser.activate(); ok {
				return m, m.openFile(path)
			}
			return m, nil
		}
		path := strings.TrimSpace(m.openInput)
		if path == "" {
			return m, nil
		}
		// A directory in the field is browsed rather than opened
		if st, err := os.Stat(path); err == nil && st.IsDir() {
			if m.browser.load(path) {
				m.openInput = ""
				m.openFocusList = true
			}
			return m, nil
		}
		return m, m.openFile(path)

	case tea.KeyUp, tea.KeyDown:
		if m.openFocusList {
			if msg.Type == tea.KeyUp {
				m.browser.move(-1, visible)
			} else {
				m.browser.move(1, visible)
			}
			return m, nil
		}
		// Cycle through recent files
		recent := m.config.RecentFiles
		if len(recent) == 0 {
			m.openFocusList = true
			return m, nil
		}
		if msg.Type == tea.KeyDown {
			m.recentIndex = (m.recentIndex + 1) % len(recent)
		} else {
			m.recentIndex = (max(m.recentIndex, 0) - 1 + len(recent)) % len(recent)
		}
		m.openInput = recent[m.recentIndex]

	case tea.KeyHome:
		if m.openFocusList {
			m.browser.home()
		}

	case tea.KeyEnd:
		if m.openFocusList {
			m.browser.end(visible)
		}

	case tea.KeyPgUp:
		if m.openFocusList {
			m.browser.move(-visible, visible)
		}

	case tea.KeyPgDown:
		if m.openFocusList {
			m.browser.move(visible, visible)
		}

	case tea.KeyBackspace:
		if m.openFocusList {
			m.browser.parent()
			return m, nil
		}
		m.openInput = dropLastRune(m.openInput)
		m.recentIndex = -1

	case tea.KeyCtrlU:
		m.openInput = ""
		m.recentIndex = -1
		m.openFocusList = false

	case tea.KeyRunes:
		m.openInput += string(msg.Runes)
		m.recentIndex = -1
		m.openFocusList = false

	case tea.KeySpace:
		m.openInput += " "
		m.recentIndex = -1
		m.openFocusList = false
	}

	return m, nil
}

// openFile closes the open dialog and starts loading path
func (m *Model) openFile(path string) tea.Cmd {
	m.mode = ModeNormal
	return m.load(path)
}

// browserHeight is the number of file list lines in the open dialog
func (m *Model) browserHeight() int {
	return min(max(m.bodyHeight()-12, 3), 12)
}

// handleJumpKey handles the X/Y fields of the jump dialog
func (m *Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := &m.jumpX
	if m.jumpField == 1 {
		field = &m.jumpY
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal

	case tea.KeyEnter:
		return m.submitJump()

	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.jumpField = 1 - m.jumpField

	case tea.KeyBackspace:
		*field = dropLastRune(*field)
		m.jumpErr = ""

	case tea.KeyCtrlU:
		*field = ""
		m.jumpErr = ""

	case tea.KeyRunes:
		*field += string(msg.Runes)
		m.jumpErr = ""

	case tea.KeySpace:
		*field += " "
	}

	return m, nil
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// pageRows is how many table rows fit in the body.
func (m *Model) pageRows() int {
	return max(1, m.bodyHeight()/max(1, m.view.Layout.RowHeight()))
}

// moveSelection moves the selected record for a navigation key and keeps
// it visible. It reports whether key was a navigation key.
func (m *Model) moveSelection(key string) bool {
	seq := m.view.Layout.Sequence()
	n := seq.Len()
	if m.state != StateReady || n == 0 {
		return false
	}
	page := m.pageRows()
	i := max(m.selected, 0)

	if m.view.Layout.Mode() == table.ModeMatrix {
		w, h := seq.Width(), seq.Height()
		x, y := pixel.FromIndex(i, w)
		switch key {
		case "up":
			y--
		case "down":
			y++
		case "left":
			x--
		case "right":
			x++
		case "pgup":
			y -= page
		case "pgdown":
			y += page
		case "home":
			x = 0
		case "end":
			x = w - 1
		case "ctrl+home":
			x, y = 0, 0
		case "ctrl+end":
			x, y = w-1, h-1
		default:
			return false
		}
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		i = y*w + x
	} else {
		switch key {
		case "up", "left":
			i--
		case "down", "right":
			i++
		case "pgup":
			i -= page
		case "pgdown":
			i += page
		case "home", "ctrl+home":
			i = 0
		case "end", "ctrl+end":
			i = n - 1
		default:
			return false
		}
		i = min(max(i, 0), n-1)
	}

	m.selected = i
	m.view.Reveal(i)
	return true
}
