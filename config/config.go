package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rgbmatrix/logging"
	"rgbmatrix/table"

	"github.com/BurntSushi/toml"
)

const configDirName = "rgbmatrix"

// Config holds the viewer configuration
type Config struct {
	Viewer      ViewerConfig      `toml:"viewer"`
	Theme       ThemeConfig       `toml:"theme"`
	Log         LogConfig         `toml:"log"`
	Keys        KeybindingsConfig `toml:"keys"`
	RecentFiles []string          `toml:"recent_files,omitempty"` // Recently opened images (max 10)
}

// MaxRecentFiles is the maximum number of recent files to track
const MaxRecentFiles = 10

// AddRecentFile moves path to the front of the recent files list
func (c *Config) AddRecentFile(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	list := make([]string, 0, MaxRecentFiles)
	list = append(list, absPath)
	for _, f := range c.RecentFiles {
		if f != absPath && len(list) < MaxRecentFiles {
			list = append(list, f)
		}
	}
	c.RecentFiles = list
}

// ViewerConfig holds table and display settings
type ViewerConfig struct {
	Overscan        int    `toml:"overscan"`          // Rows rendered beyond the viewport on each side
	ListRowHeight   int    `toml:"list_row_height"`   // Lines per List row
	MatrixRowHeight int    `toml:"matrix_row_height"` // Lines per Matrix row at 100%
	MatrixCellWidth int    `toml:"matrix_cell_width"` // Columns per Matrix cell at 100%
	DefaultMode     string `toml:"default_mode"`      // list | matrix
	DefaultZoom     int    `toml:"default_zoom"`      // 50..200, step 25
	Scrollbar       bool   `toml:"scrollbar"`
	Preview         bool   `toml:"preview"`
	TrueColor       *bool  `toml:"true_color"` // nil = auto-detect
	AsciiMode       *bool  `toml:"ascii_mode"` // nil = auto-detect
	MaxFileSizeMB   int    `toml:"max_file_size_mb"`
	ExportDir       string `toml:"export_dir"` // empty = current directory
}

// Metrics returns the base table sizes.
func (v ViewerConfig) Metrics() table.Metrics {
	return table.Metrics{
		ListRowHeight:   max(1, v.ListRowHeight),
		MatrixRowHeight: max(1, v.MatrixRowHeight),
		MatrixCellWidth: max(2, v.MatrixCellWidth),
	}
}

// Mode returns the configured start-up layout, List if unrecognized.
func (v ViewerConfig) Mode() table.Mode {
	m, err := table.ParseMode(v.DefaultMode)
	if err != nil {
		return table.ModeList
	}
	return m
}

// Zoom returns the configured start-up zoom snapped to a valid step.
func (v ViewerConfig) Zoom() table.Zoom {
	if v.DefaultZoom == 0 {
		return table.DefaultZoom
	}
	return table.NormalizeZoom(v.DefaultZoom)
}

// MaxFileBytes returns the upload limit in bytes.
func (v ViewerConfig) MaxFileBytes() int64 {
	if v.MaxFileSizeMB <= 0 {
		return 0
	}
	return int64(v.MaxFileSizeMB) * 1024 * 1024
}

// ExportPath joins name onto the export directory.
func (v ViewerConfig) ExportPath(name string) string {
	if v.ExportDir == "" {
		return name
	}
	return filepath.Join(expandHome(v.ExportDir), name)
}

// ThemeConfig references a theme by name; the colors come from theme files
type ThemeConfig struct {
	Name string `toml:"name"`
}

// GetResolved loads and returns the complete theme
func (t *ThemeConfig) GetResolved() Theme {
	return LoadTheme(t.Name)
}

// LogConfig controls the browser's log file
type LogConfig struct {
	File       string `toml:"file"` // empty = <cache dir>/rgbmatrix/rgbmatrix.log
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// FileConfig resolves the rotating writer settings.
func (l LogConfig) FileConfig() (logging.FileConfig, error) {
	path := expandHome(l.File)
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return logging.FileConfig{}, err
		}
		path = filepath.Join(cacheDir, configDirName, "rgbmatrix.log")
	}
	return logging.FileConfig{Path: path, MaxSizeMB: l.MaxSizeMB, MaxBackups: l.MaxBackups}, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Overscan:        10,
			ListRowHeight:   1,
			MatrixRowHeight: 2,
			MatrixCellWidth: 8,
			DefaultMode:     "list",
			DefaultZoom:     int(table.DefaultZoom),
			Scrollbar:       true,
			Preview:         true,
			MaxFileSizeMB:   50,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Log: LogConfig{
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Keys: *DefaultKeybindings(),
	}
}

// Normalize clamps out-of-range values back into their domains.
func (c *Config) Normalize() {
	v := &c.Viewer
	v.Overscan = max(0, v.Overscan)
	v.DefaultZoom = int(v.Zoom())
	v.DefaultMode = v.Mode().String()
	if v.MaxFileSizeMB <= 0 {
		v.MaxFileSizeMB = DefaultConfig().Viewer.MaxFileSizeMB
	}
	if len(c.RecentFiles) > MaxRecentFiles {
		c.RecentFiles = c.RecentFiles[:MaxRecentFiles]
	}
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ThemesDir returns the path to the user themes directory
func ThemesDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// ConfigLoadError holds details about a config loading error
type ConfigLoadError struct {
	FilePath string
	Err      error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration from the default path.
// Returns defaults if the file doesn't exist, and defaults plus a
// *ConfigLoadError if it exists but cannot be parsed.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), &ConfigLoadError{FilePath: path, Err: err}
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("# rgbmatrix configuration\n\n"); err != nil {
		return err
	}
	return toml.NewEncoder(f).Encode(c)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
