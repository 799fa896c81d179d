package config

import (
	"strings"
)

// KeyBinding represents a single action's key bindings
type KeyBinding struct {
	Primary   string `toml:"primary"`
	Alternate string `toml:"alternate,omitempty"`
}

// KeybindingsConfig holds all configurable keybindings
type KeybindingsConfig struct {
	// File operations
	Open    KeyBinding `toml:"open"`
	Process KeyBinding `toml:"process"`
	Export  KeyBinding `toml:"export"`
	Quit    KeyBinding `toml:"quit"`

	// Table
	Jump       KeyBinding `toml:"jump"`
	ToggleMode KeyBinding `toml:"toggle_mode"`
	ZoomIn     KeyBinding `toml:"zoom_in"`
	ZoomOut    KeyBinding `toml:"zoom_out"`
	ZoomReset  KeyBinding `toml:"zoom_reset"`
	Copy       KeyBinding `toml:"copy"`

	// View toggles
	Stats           KeyBinding `toml:"stats"`
	ToggleScrollbar KeyBinding `toml:"toggle_scrollbar"`
	TogglePreview   KeyBinding `toml:"toggle_preview"`

	Help KeyBinding `toml:"help"`
	Menu KeyBinding `toml:"menu"`
}

// DefaultKeybindings returns the default keybinding configuration
func DefaultKeybindings() *KeybindingsConfig {
	return &KeybindingsConfig{
		Open:    KeyBinding{Primary: "ctrl+o"},
		Process: KeyBinding{Primary: "enter"},
		Export:  KeyBinding{Primary: "ctrl+e"},
		Quit:    KeyBinding{Primary: "ctrl+q"},

		Jump:       KeyBinding{Primary: "ctrl+g", Alternate: "/"},
		ToggleMode: KeyBinding{Primary: "tab"},
		ZoomIn:     KeyBinding{Primary: "+", Alternate: "="},
		ZoomOut:    KeyBinding{Primary: "-"},
		ZoomReset:  KeyBinding{Primary: "0"},
		Copy:       KeyBinding{Primary: "ctrl+c"},

		Stats:           KeyBinding{Primary: "ctrl+t"},
		ToggleScrollbar: KeyBinding{Primary: "ctrl+b"},
		TogglePreview:   KeyBinding{Primary: "ctrl+p"},

		Help: KeyBinding{Primary: "f1"},
		Menu: KeyBinding{Primary: "f10"},
	}
}

// Action names, in display order.
const (
	ActionOpen            = "open"
	ActionProcess         = "process"
	ActionExport          = "export"
	ActionQuit            = "quit"
	ActionJump            = "jump"
	ActionToggleMode      = "toggle_mode"
	ActionZoomIn          = "zoom_in"
	ActionZoomOut         = "zoom_out"
	ActionZoomReset       = "zoom_reset"
	ActionCopy            = "copy"
	ActionStats           = "stats"
	ActionToggleScrollbar = "toggle_scrollbar"
	ActionTogglePreview   = "toggle_preview"
	ActionHelp            = "help"
	ActionMenu            = "menu"
)

// ActionNames maps action names for display
var ActionNames = map[string]string{
	ActionOpen:            "Open Image",
	ActionProcess:         "Process Image",
	ActionExport:          "Export CSV",
	ActionQuit:            "Quit",
	ActionJump:            "Jump to Pixel",
	ActionToggleMode:      "Toggle List/Matrix",
	ActionZoomIn:          "Zoom In",
	ActionZoomOut:         "Zoom Out",
	ActionZoomReset:       "Reset Zoom",
	ActionCopy:            "Copy Hex",
	ActionStats:           "Statistics",
	ActionToggleScrollbar: "Toggle Scrollbar",
	ActionTogglePreview:   "Toggle Preview",
	ActionHelp:            "Help",
	ActionMenu:            "Menu",
}

// AllActions returns a list of all action names in display order
func AllActions() []string {
	return []string{
		ActionOpen, ActionProcess, ActionExport, ActionQuit,
		ActionJump, ActionToggleMode, ActionZoomIn, ActionZoomOut, ActionZoomReset, ActionCopy,
		ActionStats, ActionToggleScrollbar, ActionTogglePreview,
		ActionHelp, ActionMenu,
	}
}

func (kb *KeybindingsConfig) slots() map[string]*KeyBinding {
	return map[string]*KeyBinding{
		ActionOpen:            &kb.Open,
		ActionProcess:         &kb.Process,
		ActionExport:          &kb.Export,
		ActionQuit:            &kb.Quit,
		ActionJump:            &kb.Jump,
		ActionToggleMode:      &kb.ToggleMode,
		ActionZoomIn:          &kb.ZoomIn,
		ActionZoomOut:         &kb.ZoomOut,
		ActionZoomReset:       &kb.ZoomReset,
		ActionCopy:            &kb.Copy,
		ActionStats:           &kb.Stats,
		ActionToggleScrollbar: &kb.ToggleScrollbar,
		ActionTogglePreview:   &kb.TogglePreview,
		ActionHelp:            &kb.Help,
		ActionMenu:            &kb.Menu,
	}
}

// GetBinding returns the KeyBinding for a given action name
func (kb *KeybindingsConfig) GetBinding(action string) KeyBinding {
	if b, ok := kb.slots()[action]; ok {
		return *b
	}
	return KeyBinding{}
}

// SetBinding sets the KeyBinding for a given action name
func (kb *KeybindingsConfig) SetBinding(action string, binding KeyBinding) {
	if b, ok := kb.slots()[action]; ok {
		*b = binding
	}
}

// ActionFor returns the first action bound to key, or "".
func (kb *KeybindingsConfig) ActionFor(key string) string {
	for _, action := range AllActions() {
		if kb.GetBinding(action).Matches(key) {
			return action
		}
	}
	return ""
}

// Matches checks if a key string matches this binding (primary or alternate)
func (b KeyBinding) Matches(key string) bool {
	key = strings.ToLower(key)
	return (b.Primary != "" && strings.ToLower(b.Primary) == key) ||
		(b.Alternate != "" && strings.ToLower(b.Alternate) == key)
}

// DisplayString returns a human-readable string for the binding
func (b KeyBinding) DisplayString() string {
	if b.Primary == "" && b.Alternate == "" {
		return "(none)"
	}
	if b.Alternate == "" {
		return FormatKeyForDisplay(b.Primary)
	}
	return FormatKeyForDisplay(b.Primary) + " / " + FormatKeyForDisplay(b.Alternate)
}

var keyNames = map[string]string{
	"ctrl":   "Ctrl",
	"alt":    "Alt",
	"shift":  "Shift",
	"enter":  "Enter",
	"tab":    "Tab",
	"esc":    "Esc",
	"home":   "Home",
	"end":    "End",
	"pgup":   "PgUp",
	"pgdown": "PgDn",
}

// FormatKeyForDisplay converts a key string such as "ctrl+e" to "Ctrl+E"
func FormatKeyForDisplay(key string) string {
	if key == "" || key == "+" {
		return key
	}
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch {
		case keyNames[p] != "":
			parts[i] = keyNames[p]
		case len(p) >= 2 && p[0] == 'f' && strings.Trim(p[1:], "0123456789") == "":
			parts[i] = "F" + p[1:]
		case len(p) == 1 && i > 0:
			parts[i] = strings.ToUpper(p)
		}
	}
	return strings.Join(parts, "+")
}

// FindConflicts checks for key conflicts and returns a map of conflicting actions
func (kb *KeybindingsConfig) FindConflicts() map[string][]string {
	conflicts := make(map[string][]string)
	keyToActions := make(map[string][]string)

	for _, action := range AllActions() {
		binding := kb.GetBinding(action)
		for _, k := range []string{binding.Primary, binding.Alternate} {
			if k != "" {
				k = strings.ToLower(k)
				keyToActions[k] = append(keyToActions[k], action)
			}
		}
	}

	for key, actions := range keyToActions {
		if len(actions) > 1 {
			conflicts[key] = actions
		}
	}
	return conflicts
}
