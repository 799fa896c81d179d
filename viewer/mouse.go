package viewer

import (
	"rgbmatrix/table"
	"rgbmatrix/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Lines (or columns, with shift) moved per wheel notch
const wheelStep = 3

// Dialog line of the path field in the open dialog
const openFieldLine = 2

// handleMouse handles mouse events
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	if m.mode == ModeOpen {
		return m.openDialogMouse(msg)
	}
	if m.mode != ModeNormal && m.mode != ModeMenu {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		return m.click(msg.X, msg.Y)

	case tea.MouseButtonWheelUp:
		m.wheel(-wheelStep, msg.Shift)

	case tea.MouseButtonWheelDown:
		m.wheel(wheelStep, msg.Shift)

	case tea.MouseButtonWheelLeft:
		m.wheel(-wheelStep, true)

	case tea.MouseButtonWheelRight:
		m.wheel(wheelStep, true)
	}
	return m, nil
}

// wheel scrolls the table; horizontal scrolling moves whole Matrix cells.
// Either cancels a smooth scroll in progress.
func (m *Model) wheel(delta int, horizontal bool) {
	if m.state != StateReady {
		return
	}
	if horizontal {
		if m.view.Layout.Mode() == table.ModeMatrix {
			m.view.Cols.ScrollBy(delta * m.view.Layout.CellWidth())
		}
		return
	}
	m.view.Rows.ScrollBy(delta)
}

func (m *Model) click(x, y int) (tea.Model, tea.Cmd) {
	// Menu bar and open dropdowns
	if y == 0 || m.menubar.IsOpen() {
		if handled, action := m.menubar.HandleClick(x, y); handled {
			if action != "" {
				m.mode = ModeNormal
				return m.executeAction(action)
			}
			if m.menubar.IsOpen() {
				m.mode = ModeMenu
			} else {
				m.mode = ModeNormal
			}
			return m, nil
		}
	}

	if m.state != StateReady {
		return m, nil
	}
	row := y - bodyTop
	if row < 0 || row >= m.bodyHeight() {
		return m, nil
	}

	// Scrollbar: jump so the thumb starts at the clicked row
	if m.scrollbar.IsEnabled() && x == m.tableWidth()-1 {
		rows := m.view.Rows
		rows.ScrollTo(m.scrollbar.RowToOffset(row, rows.Viewport(), rows.TotalExtent()))
		return m, nil
	}
	if x >= m.contentWidth() {
		return m, nil // preview panel
	}

	r := m.view.Rows.IndexAtViewport(row)
	if r < 0 {
		return m, nil
	}
	col := 0
	if m.view.Layout.Mode() == table.ModeMatrix {
		col = m.view.Cols.IndexAtViewport(x - m.renderer.Gutter(m.view))
		if col < 0 {
			return m, nil
		}
	}
	i := m.view.Layout.IndexOf(r, col)
	if i < 0 || i >= m.view.Layout.Sequence().Len() {
		return m, nil
	}
	m.selected = i
	return m, nil
}

// openDialogMouse handles the file list of the open dialog. Clicking an
// entry selects it and clicking it again opens it; a click outside the
// dialog cancels.
func (m *Model) openDialogMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	db := m.openDialog()
	x0, y0 := db.Position(m.width, m.height-2)
	relX := msg.X - x0
	relY := msg.Y - 1 - y0 // content starts below the menu bar

	if relX < 0 || relX >= db.Width() || relY < 0 || relY >= db.Height() {
		if msg.Button == tea.MouseButtonLeft {
			m.mode = ModeNormal
			m.statusbar.SetMessage("Cancelled", ui.MessageInfo)
		}
		return m, nil
	}

	visible := m.browserHeight()
	line := relY - m.browserTop
	inList := line >= 0 && line < visible

	switch msg.Button {
	case tea.MouseButtonLeft:
		if !inList {
			if relY == openFieldLine {
				m.openFocusList = false
			}
			return m, nil
		}
		idx := m.browser.scroll + line
		if idx >= len(m.browser.entries) {
			return m, nil
		}
		m.openFocusList = true
		if idx != m.browser.selected {
			m.browser.selected = idx
			return m, nil
		}
		if path, ok := m.browser.activate(); ok {
			return m, m.openFile(path)
		}

	case tea.MouseButtonWheelUp:
		if inList {
			m.browser.scrollBy(-1, visible)
		}

	case tea.MouseButtonWheelDown:
		if inList {
			m.browser.scrollBy(1, visible)
		}
	}
	return m, nil
}
