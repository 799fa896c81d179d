package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rgbmatrix/config"
	"rgbmatrix/pixel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeImage writes black, white / red, blue as a 2×2 PNG.
func writeImage(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{0, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{255, 255, 255, 255})
	img.Set(0, 1, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 1, color.NRGBA{0, 0, 255, 255})

	path := filepath.Join(t.TempDir(), "quad.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := NewRoot(context.Background(), "abc123")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rgbmatrix 0.1.0 (abc123)\n", out)
}

func TestStatsJSON(t *testing.T) {
	out, err := execute(t, "stats", "--json", writeImage(t))
	require.NoError(t, err)

	var got statsReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Width)
	assert.Equal(t, 2, got.Height)
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, colorReport{R: 128, G: 64, B: 128, Hex: "#804080"}, got.Average)
	require.NotNil(t, got.Brightest)
	assert.Equal(t, "#ffffff", got.Brightest.Hex)
	assert.Equal(t, 1, got.Brightest.X)
	require.NotNil(t, got.Darkest)
	assert.Equal(t, "#000000", got.Darkest.Hex)
}

func TestStatsText(t *testing.T) {
	out, err := execute(t, "stats", writeImage(t), "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Total pixels: 4")
	assert.Contains(t, out, "Brightest:    #ffffff at (1, 0)")
	assert.Contains(t, out, "Darkest:      #000000 at (0, 0)")
}

func TestStatsMissingFile(t *testing.T) {
	_, err := execute(t, "stats", filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestExportToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.csv")
	_, err := execute(t, "export", writeImage(t), "-o", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		pixel.CSVHeader,
		"0,0,0,0,0,#000000",
		"1,0,255,255,255,#ffffff",
		"0,1,255,0,0,#ff0000",
		"1,1,0,0,255,#0000ff",
	}, "\n"), string(data))
}

func TestExportToStdout(t *testing.T) {
	out, err := execute(t, "export", writeImage(t), "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, pixel.CSVHeader+"\n"))
	assert.Equal(t, 4, strings.Count(out, "\n"))
}

func TestExportNeedsImage(t *testing.T) {
	_, err := execute(t, "export")
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	root := NewRoot(context.Background(), "")
	require.NoError(t, root.Flags().Set("mode", "matrix"))
	require.NoError(t, root.Flags().Set("zoom", "130"))

	cfg := config.DefaultConfig()
	require.NoError(t, applyFlags(root, cfg))
	assert.Equal(t, "matrix", cfg.Viewer.DefaultMode)
	assert.Equal(t, 125, cfg.Viewer.DefaultZoom)

	bad := NewRoot(context.Background(), "")
	require.NoError(t, bad.Flags().Set("mode", "diagonal"))
	assert.Error(t, applyFlags(bad, config.DefaultConfig()))
}
