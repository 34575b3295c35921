package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/presenter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, presenter.DefaultSettings(), cfg.StyleSettings())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
style:
  padding: 40
  gradient_mode: custom
  gradient_start: "#000000"
  gradient_end: "ffffff"
export:
  format: jpg
  pixel_ratio: 2
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	s := cfg.StyleSettings()
	assert.Equal(t, 40, s.Padding)
	assert.Equal(t, presenter.DefaultCornerRadius, s.CornerRadius, "missing keys keep defaults")
	assert.Equal(t, presenter.GradientCustom, s.GradientMode)
	assert.Equal(t, "#000000", s.GradientStart)
	assert.Equal(t, "ffffff", s.GradientEnd)

	f, err := cfg.ExportFormat()
	require.NoError(t, err)
	assert.Equal(t, presenter.FormatJPEG, f)
	assert.InDelta(t, 2.0, cfg.Export.PixelRatio, 1e-9)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative padding", "style:\n  padding: -1\n", "style.padding"},
		{"opacity above one", "style:\n  border_opacity: 1.5\n", "style.borderopacity"},
		{"bad mode", "style:\n  gradient_mode: rainbow\n", "style.gradientmode"},
		{"bad color", "style:\n  gradient_start: '#12345'\n", "style.gradientstart"},
		{"bad format", "export:\n  format: gif\n", "export.format"},
		{"small pixel ratio", "export:\n  pixel_ratio: 0.5\n", "export.pixelratio"},
		{"bad log format", "log:\n  format: xml\n", "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "style: [unterminated\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("verbose"))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, FileName, filepath.Base(path))
	assert.Equal(t, AppDir, filepath.Base(filepath.Dir(path)))
}
