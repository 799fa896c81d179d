package ui

import (
	"strings"

	"rgbmatrix/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ActionAbout opens the about dialog. It has no key binding, so it is not
// one of the config actions.
const ActionAbout = "about"

// MenuItem represents a single menu option. Action is one of the config
// action names (config.ActionOpen, ...) or ActionAbout.
type MenuItem struct {
	Label    string
	Shortcut string // Keyboard shortcut displayed (e.g., "Ctrl+O")
	HotKey   rune   // Single letter hotkey when menu is open (e.g., 'O')
	Action   string
	Disabled bool
}

// Menu represents a dropdown menu
type Menu struct {
	Label string
	Items []MenuItem
}

// MenuBar represents the top menu bar
type MenuBar struct {
	menus      []Menu
	activeMenu int  // -1 if no menu is open
	activeItem int  // Index of highlighted item in open menu
	isOpen     bool // Whether a dropdown is open
	width      int
	box        BoxChars
	styles     Styles
}

// NewMenuBar creates a new menu bar with shortcuts taken from keys
func NewMenuBar(styles Styles, keys *config.KeybindingsConfig) *MenuBar {
	m := &MenuBar{
		menus: []Menu{
			{
				Label: "File",
				Items: []MenuItem{
					{Label: "Open Image", HotKey: 'O', Action: config.ActionOpen},
					{Label: "Process Image", HotKey: 'P', Action: config.ActionProcess},
					{Label: "Export CSV", HotKey: 'E', Action: config.ActionExport},
					{Label: "Exit", HotKey: 'X', Action: config.ActionQuit},
				},
			},
			{
				Label: "View",
				Items: []MenuItem{
					{Label: "List / Matrix", HotKey: 'L', Action: config.ActionToggleMode},
					{Label: "Zoom In", HotKey: 'I', Action: config.ActionZoomIn},
					{Label: "Zoom Out", HotKey: 'O', Action: config.ActionZoomOut},
					{Label: "Reset Zoom", HotKey: 'R', Action: config.ActionZoomReset},
					{Label: "[x] Scrollbar", HotKey: 'S', Action: config.ActionToggleScrollbar},
					{Label: "[x] Preview", HotKey: 'P', Action: config.ActionTogglePreview},
					{Label: "Statistics", HotKey: 'T', Action: config.ActionStats},
				},
			},
			{
				Label: "Search",
				Items: []MenuItem{
					{Label: "Jump to Pixel", HotKey: 'J', Action: config.ActionJump},
					{Label: "Copy Hex", HotKey: 'C', Action: config.ActionCopy},
				},
			},
			{
				Label: "Help",
				Items: []MenuItem{
					{Label: "Keys", HotKey: 'K', Action: config.ActionHelp},
					{Label: "About", HotKey: 'A', Action: ActionAbout},
				},
			},
		},
		activeMenu: -1,
		box:        UnicodeBox,
		styles:     styles,
	}
	m.SetShortcuts(keys)
	return m
}

// SetShortcuts refreshes the displayed shortcuts from the key bindings
func (m *MenuBar) SetShortcuts(keys *config.KeybindingsConfig) {
	if keys == nil {
		return
	}
	for i := range m.menus {
		for j := range m.menus[i].Items {
			item := &m.menus[i].Items[j]
			item.Shortcut = config.FormatKeyForDisplay(keys.GetBinding(item.Action).Primary)
		}
	}
}

// SetWidth sets the width of the menu bar
func (m *MenuBar) SetWidth(width int) {
	m.width = width
}

// SetBox sets the dropdown frame characters
func (m *MenuBar) SetBox(box BoxChars) {
	m.box = box
}

// SetStyles updates the styles for runtime theme changes
func (m *MenuBar) SetStyles(styles Styles) {
	m.styles = styles
}

// IsOpen returns true if a menu dropdown is open
func (m *MenuBar) IsOpen() bool {
	return m.isOpen
}

// OpenMenu opens the menu at the given index
func (m *MenuBar) OpenMenu(index int) {
	if index >= 0 && index < len(m.menus) {
		m.activeMenu = index
		m.activeItem = 0
		m.isOpen = true
	}
}

// Close closes any open menu
func (m *MenuBar) Close() {
	m.isOpen = false
	m.activeMenu = -1
	m.activeItem = 0
}

// Toggle toggles the menu at the given index
func (m *MenuBar) Toggle(index int) {
	if m.isOpen && m.activeMenu == index {
		m.Close()
	} else {
		m.OpenMenu(index)
	}
}

// NextMenu moves to the next menu
func (m *MenuBar) NextMenu() {
	if len(m.menus) == 0 {
		return
	}
	m.activeMenu = (m.activeMenu + 1) % len(m.menus)
	m.activeItem = 0
}

// PrevMenu moves to the previous menu
func (m *MenuBar) PrevMenu() {
	if len(m.menus) == 0 {
		return
	}
	m.activeMenu--
	if m.activeMenu < 0 {
		m.activeMenu = len(m.menus) - 1
	}
	m.activeItem = 0
}

func (m *MenuBar) items() []MenuItem {
	if !m.isOpen || m.activeMenu < 0 || m.activeMenu >= len(m.menus) {
		return nil
	}
	return m.menus[m.activeMenu].Items
}

// NextItem moves to the next item in the current menu
func (m *MenuBar) NextItem() {
	if items := m.items(); len(items) > 0 {
		m.activeItem = (m.activeItem + 1) % len(items)
	}
}

// PrevItem moves to the previous item in the current menu
func (m *MenuBar) PrevItem() {
	if items := m.items(); len(items) > 0 {
		m.activeItem = (m.activeItem - 1 + len(items)) % len(items)
	}
}

// Select returns the action of the currently selected item and closes the menu
func (m *MenuBar) Select() string {
	items := m.items()
	if m.activeItem < 0 || m.activeItem >= len(items) {
		return ""
	}
	if items[m.activeItem].Disabled {
		return ""
	}
	action := items[m.activeItem].Action
	m.Close()
	return action
}

// SelectByHotKey finds an item by hotkey in the current menu and returns its action
// Returns "" if no match or menu is not open
func (m *MenuBar) SelectByHotKey(key rune) string {
	for _, item := range m.items() {
		if item.Disabled {
			continue
		}
		if upper(item.HotKey) == upper(key) {
			m.Close()
			return item.Action
		}
	}
	return ""
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

// SetItemDisabled sets the disabled state of a menu item by action
func (m *MenuBar) SetItemDisabled(action string, disabled bool) {
	if item := m.find(action); item != nil {
		item.Disabled = disabled
	}
}

// SetItemChecked updates a "[x] Label" toggle item
func (m *MenuBar) SetItemChecked(action string, checked bool) {
	item := m.find(action)
	if item == nil {
		return
	}
	label := strings.TrimPrefix(strings.TrimPrefix(item.Label, "[x] "), "[ ] ")
	if checked {
		item.Label = "[x] " + label
	} else {
		item.Label = "[ ] " + label
	}
}

// Item returns the menu item for an action
func (m *MenuBar) Item(action string) (MenuItem, bool) {
	if item := m.find(action); item != nil {
		return *item, true
	}
	return MenuItem{}, false
}

func (m *MenuBar) find(action string) *MenuItem {
	for i := range m.menus {
		for j := range m.menus[i].Items {
			if m.menus[i].Items[j].Action == action {
				return &m.menus[i].Items[j]
			}
		}
	}
	return nil
}

// menuItemWidth returns the display width of a menu item
func (m *MenuBar) menuItemWidth(index int) int {
	if index < 0 || index >= len(m.menus) {
		return 0
	}
	return runewidth.StringWidth(m.menus[index].Label) + 4 // "  " + Label + "  "
}

// HandleClick handles a click at the given position; y is relative to the
// top of the screen. Returns true if the click was handled.
func (m *MenuBar) HandleClick(x, y int) (bool, string) {
	if y == 0 {
		pos := 0
		for i := range m.menus {
			w := m.menuItemWidth(i)
			if x >= pos && x < pos+w {
				m.Toggle(i)
				return true, ""
			}
			pos += w
		}
		// Clicked elsewhere on menu bar - close menu
		m.Close()
		return true, ""
	}

	if m.isOpen {
		itemIndex := y - 2 // -1 for menu bar, -1 for top border
		offset := m.dropdownOffset()
		items := m.items()
		if x >= offset && itemIndex >= 0 && itemIndex < len(items) {
			m.activeItem = itemIndex
			return true, m.Select()
		}
		m.Close()
		return true, ""
	}

	return false, ""
}

// DropdownHeight returns just the dropdown height (excluding the menu bar)
func (m *MenuBar) DropdownHeight() int {
	if items := m.items(); items != nil {
		return len(items) + 2 // items + borders
	}
	return 0
}

// Height returns the total height (menu bar + dropdown if open)
func (m *MenuBar) Height() int {
	return 1 + m.DropdownHeight()
}

// underlineChar returns the string with the specified character underlined (case-insensitive)
// If the character is not found, returns the original string
func underlineChar(s string, c rune) string {
	if len(s) == 0 || c == 0 {
		return s
	}
	runes := []rune(s)
	for i, r := range runes {
		if upper(r) == upper(c) {
			// \033[4m = underline on, \033[24m = underline off
			return string(runes[:i]) + "\033[4m" + string(r) + "\033[24m" + string(runes[i+1:])
		}
	}
	return s
}

// View renders the menu bar (just the bar, not the dropdown)
func (m *MenuBar) View() string {
	ui := m.styles.Theme.UI
	normal := ColorToANSI(ui.MenuFg, ui.MenuBg)
	active := ColorToANSI(ui.MenuHighlightFg, ui.MenuHighlightBg)

	var sb strings.Builder
	sb.WriteString(normal)

	currentWidth := 0
	for i, menu := range m.menus {
		label := underlineChar(menu.Label, []rune(menu.Label)[0])
		if m.isOpen && i == m.activeMenu {
			sb.WriteString(active)
			sb.WriteString("  " + label + "  ")
			sb.WriteString(normal)
		} else {
			sb.WriteString("  " + label + "  ")
		}
		currentWidth += m.menuItemWidth(i)
	}

	if currentWidth < m.width {
		sb.WriteString(strings.Repeat(" ", m.width-currentWidth))
	}
	sb.WriteString(Reset)

	return sb.String()
}

func (m *MenuBar) dropdownOffset() int {
	offset := 0
	for i := 0; i < m.activeMenu; i++ {
		offset += m.menuItemWidth(i)
	}
	return offset
}

// RenderDropdown renders the dropdown menu as separate lines for overlay
// Returns the lines and the horizontal offset where the dropdown starts
func (m *MenuBar) RenderDropdown() ([]string, int) {
	items := m.items()
	if items == nil {
		return nil, 0
	}

	// Find max width for items
	maxWidth := 0
	for _, item := range items {
		w := runewidth.StringWidth(item.Label)
		if item.Shortcut != "" {
			w += 2 + runewidth.StringWidth(item.Shortcut)
		}
		maxWidth = max(maxWidth, w)
	}

	var lines []string
	for i, item := range items {
		var style lipgloss.Style
		switch {
		case item.Disabled:
			style = m.styles.MenuOptionDisabled
		case i == m.activeItem:
			style = m.styles.MenuOptionActive
		default:
			style = m.styles.MenuOption
		}

		label := item.Label
		if item.HotKey != 0 {
			label = underlineChar(label, item.HotKey)
		}

		// Spacing uses the plain label width, not the underlined one
		line := label
		labelWidth := runewidth.StringWidth(item.Label)
		if item.Shortcut != "" {
			spaces := max(2, maxWidth-labelWidth-runewidth.StringWidth(item.Shortcut))
			line += strings.Repeat(" ", spaces) + item.Shortcut
		} else {
			line += strings.Repeat(" ", maxWidth-labelWidth)
		}

		lines = append(lines, style.Render(line))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	dropdown := m.styles.MenuDropdown.Border(m.box.Border()).Render(content)
	return strings.Split(dropdown, "\n"), m.dropdownOffset()
}
