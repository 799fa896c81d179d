package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinThemesComplete(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, ok := builtinThemes[name]
		if !ok {
			t.Fatalf("ThemeNames() lists %q but it is not built in", name)
		}
		if merged := mergeWithDefault(theme); merged != theme && name != "default" {
			t.Errorf("theme %q has empty colors filled from default", name)
		}
	}
}

func TestLoadThemeFallsBack(t *testing.T) {
	if got := LoadTheme(""); got.Name != "default" {
		t.Errorf("LoadTheme(\"\") = %q, want default", got.Name)
	}
	if got := LoadTheme("no-such-theme-xyz"); got.Name != "default" {
		t.Errorf("LoadTheme(unknown) = %q, want default", got.Name)
	}
	if got := LoadTheme("monokai"); got.UI.MenuHighlightBg != "208" {
		t.Errorf("LoadTheme(monokai).UI.MenuHighlightBg = %q, want 208", got.UI.MenuHighlightBg)
	}
}

func TestLoadThemeFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	content := `name = "mine"

[ui]
menu_bg = "52"

[table]
selection_bg = "#ff8800"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error: %v", err)
	}
	def := DefaultTheme()
	if theme.Name != "mine" || theme.UI.MenuBg != "52" || theme.Table.SelectionBg != "#ff8800" {
		t.Errorf("explicit values lost: %+v", theme)
	}
	if theme.UI.MenuFg != def.UI.MenuFg || theme.Table.NoData != def.Table.NoData {
		t.Error("missing values should come from the default theme")
	}
}

func TestLoadThemeFileErrors(t *testing.T) {
	if _, err := LoadThemeFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadThemeFile(missing) should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("name = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadThemeFile(path); err == nil {
		t.Error("LoadThemeFile(bad) should fail")
	}
}
