package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rgbmatrix/table"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Viewer.Overscan != 10 {
		t.Errorf("DefaultConfig().Viewer.Overscan = %d, want 10", cfg.Viewer.Overscan)
	}
	if cfg.Viewer.DefaultZoom != 100 {
		t.Errorf("DefaultConfig().Viewer.DefaultZoom = %d, want 100", cfg.Viewer.DefaultZoom)
	}
	if cfg.Viewer.Mode() != table.ModeList {
		t.Errorf("DefaultConfig().Viewer.Mode() = %v, want list", cfg.Viewer.Mode())
	}
	if !cfg.Viewer.Scrollbar || !cfg.Viewer.Preview {
		t.Error("DefaultConfig() should enable scrollbar and preview")
	}
	if cfg.Viewer.MaxFileBytes() != 50*1024*1024 {
		t.Errorf("DefaultConfig().Viewer.MaxFileBytes() = %d, want 50 MiB", cfg.Viewer.MaxFileBytes())
	}
	if got := cfg.Viewer.Metrics(); got != table.DefaultMetrics {
		t.Errorf("DefaultConfig().Viewer.Metrics() = %+v, want %+v", got, table.DefaultMetrics)
	}
	if cfg.Theme.Name != "default" {
		t.Errorf("DefaultConfig().Theme.Name = %q, want 'default'", cfg.Theme.Name)
	}
	if cfg.Log.Level != "INFO" || cfg.Log.MaxSizeMB != 10 || cfg.Log.MaxBackups != 3 {
		t.Errorf("DefaultConfig().Log = %+v", cfg.Log)
	}
	if cfg.Keys.Open.Primary != "ctrl+o" {
		t.Errorf("DefaultConfig().Keys.Open = %+v, want ctrl+o", cfg.Keys.Open)
	}
}

func TestAddRecentFile(t *testing.T) {
	cfg := DefaultConfig()

	cfg.AddRecentFile("/path/to/a.png")
	cfg.AddRecentFile("/path/to/b.png")
	if len(cfg.RecentFiles) != 2 {
		t.Fatalf("RecentFiles length = %d, want 2", len(cfg.RecentFiles))
	}
	if !filepath.IsAbs(cfg.RecentFiles[0]) || filepath.Base(cfg.RecentFiles[0]) != "b.png" {
		t.Errorf("RecentFiles[0] = %q, want b.png to be first", cfg.RecentFiles[0])
	}

	// Re-adding moves to front without duplicating
	cfg.AddRecentFile("/path/to/a.png")
	if len(cfg.RecentFiles) != 2 {
		t.Fatalf("RecentFiles length after re-add = %d, want 2", len(cfg.RecentFiles))
	}
	if filepath.Base(cfg.RecentFiles[0]) != "a.png" {
		t.Errorf("RecentFiles[0] after re-add = %q, want a.png first", cfg.RecentFiles[0])
	}
}

func TestAddRecentFileMaxLimit(t *testing.T) {
	cfg := DefaultConfig()

	for i := 0; i < MaxRecentFiles+5; i++ {
		cfg.AddRecentFile(fmt.Sprintf("/path/to/image%d.png", i))
	}

	if len(cfg.RecentFiles) != MaxRecentFiles {
		t.Errorf("RecentFiles length = %d, want %d (max)", len(cfg.RecentFiles), MaxRecentFiles)
	}
	if filepath.Base(cfg.RecentFiles[0]) != fmt.Sprintf("image%d.png", MaxRecentFiles+4) {
		t.Errorf("RecentFiles[0] = %q, want the newest entry", cfg.RecentFiles[0])
	}
}

func TestViewerConfigZoomAndMode(t *testing.T) {
	tests := []struct {
		zoom     int
		mode     string
		wantZoom table.Zoom
		wantMode table.Mode
	}{
		{0, "", table.DefaultZoom, table.ModeList},
		{150, "matrix", 150, table.ModeMatrix},
		{160, "MATRIX", 150, table.ModeMatrix},
		{10, "grid", table.MinZoom, table.ModeList},
		{900, "list", table.MaxZoom, table.ModeList},
	}

	for _, tt := range tests {
		v := ViewerConfig{DefaultZoom: tt.zoom, DefaultMode: tt.mode}
		if got := v.Zoom(); got != tt.wantZoom {
			t.Errorf("Zoom() with %d = %v, want %v", tt.zoom, got, tt.wantZoom)
		}
		if got := v.Mode(); got != tt.wantMode {
			t.Errorf("Mode() with %q = %v, want %v", tt.mode, got, tt.wantMode)
		}
	}
}

func TestExportPath(t *testing.T) {
	v := ViewerConfig{}
	if got := v.ExportPath("out.csv"); got != "out.csv" {
		t.Errorf("ExportPath() = %q, want out.csv", got)
	}
	v.ExportDir = "/tmp/exports"
	if got := v.ExportPath("out.csv"); got != filepath.Join("/tmp/exports", "out.csv") {
		t.Errorf("ExportPath() = %q", got)
	}
}

func TestLogFileConfig(t *testing.T) {
	fc, err := LogConfig{File: "/var/tmp/x.log", MaxSizeMB: 5, MaxBackups: 2}.FileConfig()
	if err != nil {
		t.Fatalf("FileConfig() error: %v", err)
	}
	if fc.Path != "/var/tmp/x.log" || fc.MaxSizeMB != 5 || fc.MaxBackups != 2 {
		t.Errorf("FileConfig() = %+v", fc)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.Viewer.DefaultMode = "matrix"
	cfg.Viewer.DefaultZoom = 175
	cfg.Theme.Name = "monokai"
	cfg.Keys.Export = KeyBinding{Primary: "ctrl+s"}
	ascii := true
	cfg.Viewer.AsciiMode = &ascii
	cfg.AddRecentFile("/images/cat.png")

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# rgbmatrix configuration") {
		t.Errorf("saved file should start with the header comment, got %q", string(data[:40]))
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if loaded.Viewer.Mode() != table.ModeMatrix || loaded.Viewer.Zoom() != 175 {
		t.Errorf("loaded viewer = %+v", loaded.Viewer)
	}
	if loaded.Theme.Name != "monokai" {
		t.Errorf("loaded theme = %q", loaded.Theme.Name)
	}
	if loaded.Keys.Export.Primary != "ctrl+s" || loaded.Keys.Open.Primary != "ctrl+o" {
		t.Errorf("loaded keys = %+v / %+v", loaded.Keys.Export, loaded.Keys.Open)
	}
	if loaded.Viewer.AsciiMode == nil || !*loaded.Viewer.AsciiMode {
		t.Error("loaded AsciiMode should be true")
	}
	if loaded.Viewer.TrueColor != nil {
		t.Error("loaded TrueColor should stay unset")
	}
	if len(loaded.RecentFiles) != 1 {
		t.Errorf("loaded RecentFiles = %v", loaded.RecentFiles)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() missing file error: %v", err)
	}
	if cfg.Viewer.Overscan != DefaultConfig().Viewer.Overscan {
		t.Error("missing file should give defaults")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[viewer]\noverscan = -4\ndefault_zoom = 130\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Viewer.Overscan != 0 {
		t.Errorf("negative overscan should clamp to 0, got %d", cfg.Viewer.Overscan)
	}
	if cfg.Viewer.DefaultZoom != 125 {
		t.Errorf("zoom should snap to 125, got %d", cfg.Viewer.DefaultZoom)
	}
	if cfg.Viewer.MatrixCellWidth != 8 || cfg.Theme.Name != "default" {
		t.Error("unspecified keys should keep their defaults")
	}
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[viewer\noverscan = "), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if cfg == nil {
		t.Fatal("LoadFrom() should return defaults alongside the error")
	}
	var loadErr *ConfigLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("LoadFrom() error = %v, want *ConfigLoadError", err)
	}
	if loadErr.FilePath != path {
		t.Errorf("ConfigLoadError.FilePath = %q, want %q", loadErr.FilePath, path)
	}
	if !strings.Contains(loadErr.Error(), path) {
		t.Errorf("ConfigLoadError.Error() = %q, should name the file", loadErr.Error())
	}
}

func TestConfigLoadErrorUnwrap(t *testing.T) {
	err := &ConfigLoadError{FilePath: "/path/to/config.toml", Err: os.ErrPermission}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("ConfigLoadError should unwrap to its cause")
	}
}

func TestConfigPath(t *testing.T) {
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("ConfigPath() = %q, want absolute path", path)
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("ConfigPath() base = %q, want 'config.toml'", filepath.Base(path))
	}
	if !strings.Contains(path, "rgbmatrix") {
		t.Errorf("ConfigPath() = %q, should contain 'rgbmatrix'", path)
	}
}

func TestThemesDir(t *testing.T) {
	dir, err := ThemesDir()
	if err != nil {
		t.Fatalf("ThemesDir() error: %v", err)
	}
	if filepath.Base(dir) != "themes" {
		t.Errorf("ThemesDir() base = %q, want 'themes'", filepath.Base(dir))
	}
}
