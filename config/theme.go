package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
)

// Theme holds complete color theme settings
// This is the format for theme TOML files in ~/.config/rgbmatrix/themes/
type Theme struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Author      string `toml:"author"`

	UI    UIColors    `toml:"ui"`
	Table TableColors `toml:"table"`
}

// UIColors holds menu, status bar and dialog colors
type UIColors struct {
	MenuBg          string `toml:"menu_bg"`
	MenuFg          string `toml:"menu_fg"`
	MenuHighlightBg string `toml:"menu_highlight_bg"`
	MenuHighlightFg string `toml:"menu_highlight_fg"`
	StatusBg        string `toml:"status_bg"`
	StatusFg        string `toml:"status_fg"`
	StatusAccent    string `toml:"status_accent"`
	ErrorFg         string `toml:"error_fg"`
	DisabledFg      string `toml:"disabled_fg"`
	// Dialog colors
	DialogBg       string `toml:"dialog_bg"`
	DialogFg       string `toml:"dialog_fg"`
	DialogBorder   string `toml:"dialog_border"`
	DialogTitle    string `toml:"dialog_title"`
	DialogButton   string `toml:"dialog_button"`
	DialogButtonFg string `toml:"dialog_button_fg"`
}

// TableColors holds pixel table colors
type TableColors struct {
	Bg          string `toml:"bg"`
	Fg          string `toml:"fg"`
	HeaderBg    string `toml:"header_bg"`
	HeaderFg    string `toml:"header_fg"`
	Coordinate  string `toml:"coordinate"` // X/Y columns and Matrix row labels
	SelectionBg string `toml:"selection_bg"`
	SelectionFg string `toml:"selection_fg"`
	NoData      string `toml:"no_data"`
	LightText   string `toml:"light_text"` // label text on dark pixels
	DarkText    string `toml:"dark_text"`  // label text on light pixels
	Scrollbar   string `toml:"scrollbar"`
	ScrollThumb string `toml:"scroll_thumb"`
}

// Built-in themes
var builtinThemes = map[string]Theme{
	"default": {
		Name:        "default",
		Description: "Blue bars on black, cyan highlights",
		Author:      "rgbmatrix",
		UI: UIColors{
			MenuBg:          "4",  // Dark blue
			MenuFg:          "15", // Bright white
			MenuHighlightBg: "6",  // Cyan
			MenuHighlightFg: "16", // True black
			StatusBg:        "4",
			StatusFg:        "15",
			StatusAccent:    "14", // Bright cyan
			ErrorFg:         "9",  // Bright red
			DisabledFg:      "8",  // Gray
			DialogBg:        "7",  // Light gray
			DialogFg:        "0",
			DialogBorder:    "0",
			DialogTitle:     "4",
			DialogButton:    "2", // Green
			DialogButtonFg:  "15",
		},
		Table: TableColors{
			Bg:          "0",
			Fg:          "7",
			HeaderBg:    "8",
			HeaderFg:    "15",
			Coordinate:  "14",
			SelectionBg: "6",
			SelectionFg: "0",
			NoData:      "8",
			LightText:   "15",
			DarkText:    "16",
			Scrollbar:   "8",
			ScrollThumb: "7",
		},
	},
	"dark": {
		Name:        "dark",
		Description: "Muted grays",
		Author:      "rgbmatrix",
		UI: UIColors{
			MenuBg:          "236",
			MenuFg:          "252",
			MenuHighlightBg: "24",
			MenuHighlightFg: "15",
			StatusBg:        "236",
			StatusFg:        "252",
			StatusAccent:    "43", // Teal
			ErrorFg:         "203",
			DisabledFg:      "240",
			DialogBg:        "238",
			DialogFg:        "252",
			DialogBorder:    "245",
			DialogTitle:     "43",
			DialogButton:    "24",
			DialogButtonFg:  "15",
		},
		Table: TableColors{
			Bg:          "234",
			Fg:          "250",
			HeaderBg:    "237",
			HeaderFg:    "252",
			Coordinate:  "43",
			SelectionBg: "24",
			SelectionFg: "15",
			NoData:      "240",
			LightText:   "255",
			DarkText:    "232",
			Scrollbar:   "237",
			ScrollThumb: "245",
		},
	},
	"light": {
		Name:        "light",
		Description: "Light theme for bright environments",
		Author:      "rgbmatrix",
		UI: UIColors{
			MenuBg:          "254",
			MenuFg:          "235",
			MenuHighlightBg: "32",
			MenuHighlightFg: "15",
			StatusBg:        "254",
			StatusFg:        "235",
			StatusAccent:    "26",
			ErrorFg:         "160",
			DisabledFg:      "249",
			DialogBg:        "255",
			DialogFg:        "235",
			DialogBorder:    "240",
			DialogTitle:     "26",
			DialogButton:    "32",
			DialogButtonFg:  "15",
		},
		Table: TableColors{
			Bg:          "255",
			Fg:          "235",
			HeaderBg:    "252",
			HeaderFg:    "235",
			Coordinate:  "26",
			SelectionBg: "153",
			SelectionFg: "0",
			NoData:      "249",
			LightText:   "231",
			DarkText:    "16",
			Scrollbar:   "252",
			ScrollThumb: "244",
		},
	},
	"monokai": {
		Name:        "monokai",
		Description: "Monokai-inspired dark theme",
		Author:      "rgbmatrix",
		UI: UIColors{
			MenuBg:          "235",
			MenuFg:          "231",
			MenuHighlightBg: "208", // Orange
			MenuHighlightFg: "16",
			StatusBg:        "235",
			StatusFg:        "231",
			StatusAccent:    "208",
			ErrorFg:         "197",
			DisabledFg:      "59",
			DialogBg:        "237",
			DialogFg:        "231",
			DialogBorder:    "208",
			DialogTitle:     "208",
			DialogButton:    "64",
			DialogButtonFg:  "231",
		},
		Table: TableColors{
			Bg:          "235",
			Fg:          "231",
			HeaderBg:    "237",
			HeaderFg:    "208",
			Coordinate:  "81",
			SelectionBg: "59",
			SelectionFg: "231",
			NoData:      "59",
			LightText:   "231",
			DarkText:    "16",
			Scrollbar:   "237",
			ScrollThumb: "208",
		},
	},
}

// DefaultTheme returns the default theme
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// LoadTheme loads a theme by name
// Checks user themes directory first, then falls back to built-in themes
func LoadTheme(name string) Theme {
	if name == "" {
		return DefaultTheme()
	}

	dir, err := ThemesDir()
	if err == nil {
		if theme, err := LoadThemeFile(filepath.Join(dir, name+".toml")); err == nil {
			return theme
		}
	}

	if builtin, ok := builtinThemes[name]; ok {
		return builtin
	}
	return DefaultTheme()
}

// LoadThemeFile reads one theme file and fills missing colors from the
// default theme.
func LoadThemeFile(path string) (Theme, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Theme{}, err
	}

	var theme Theme
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		return Theme{}, err
	}
	return mergeWithDefault(theme), nil
}

// mergeWithDefault fills in any empty color with the default theme's
func mergeWithDefault(theme Theme) Theme {
	def := DefaultTheme()
	if theme.Name == "" {
		theme.Name = def.Name
	}
	fillEmpty(reflect.ValueOf(&theme.UI).Elem(), reflect.ValueOf(def.UI))
	fillEmpty(reflect.ValueOf(&theme.Table).Elem(), reflect.ValueOf(def.Table))
	return theme
}

// fillEmpty copies string fields of def into empty fields of dst.
func fillEmpty(dst, def reflect.Value) {
	for i := 0; i < dst.NumField(); i++ {
		f := dst.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(def.Field(i).String())
		}
	}
}

// ThemeNames returns the list of built-in theme names
func ThemeNames() []string {
	return []string{"default", "dark", "light", "monokai"}
}

// ListUserThemes returns a list of user-defined theme names
func ListUserThemes() []string {
	themesDir, err := ThemesDir()
	if err != nil {
		return nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil
	}

	var themes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), ".toml"); ok {
			themes = append(themes, name)
		}
	}
	return themes
}
