// Package config loads the user configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/presenter"
)

// ErrInvalidConfig wraps every parse and validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// AppDir is the directory name under the user config directory.
const AppDir = "presenter"

// FileName is the configuration file name inside AppDir.
const FileName = "config.yaml"

// Config is the on-disk configuration.
type Config struct {
	Style     Style     `yaml:"style"`
	Export    Export    `yaml:"export"`
	Templates Templates `yaml:"templates"`
	Log       Log       `yaml:"log"`
}

// Style holds the starting style of new sessions.
type Style struct {
	Padding       int     `yaml:"padding" validate:"gte=0,lte=4096"`
	CornerRadius  int     `yaml:"corner_radius" validate:"gte=0,lte=4096"`
	BorderWidth   int     `yaml:"border_width" validate:"gte=0,lte=512"`
	BorderOpacity float64 `yaml:"border_opacity" validate:"gte=0,lte=1"`
	GradientMode  string  `yaml:"gradient_mode" validate:"oneof=auto custom"`
	GradientStart string  `yaml:"gradient_start" validate:"rgbhex"`
	GradientEnd   string  `yaml:"gradient_end" validate:"rgbhex"`
}

// Export controls exported files.
type Export struct {
	Format string `yaml:"format" validate:"oneof=png jpeg jpg"`

	// Dir is where the viewer writes exports. Empty means the working
	// directory.
	Dir string `yaml:"dir"`

	PixelRatio float64 `yaml:"pixel_ratio" validate:"gte=1,lte=4"`
}

// Templates locates the template store.
type Templates struct {
	// Path overrides the default store file.
	Path string `yaml:"path"`
}

// Log configures the CLI's log handler.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	s := presenter.DefaultSettings()
	return Config{
		Style: Style{
			Padding:       s.Padding,
			CornerRadius:  s.CornerRadius,
			BorderWidth:   s.BorderWidth,
			BorderOpacity: s.BorderOpacity,
			GradientMode:  s.GradientMode.String(),
			GradientStart: s.GradientStart,
			GradientEnd:   s.GradientEnd,
		},
		Export: Export{
			Format:     presenter.FormatPNG.String(),
			PixelRatio: 1,
		},
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultPath returns <user config dir>/presenter/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate config dir: %w", err)
	}
	return filepath.Join(dir, AppDir, FileName), nil
}

// Load reads the file at path. A missing file yields Default. Keys absent
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
			_, ok := presenter.ParseHex(fl.Field().String())
			return ok
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	errs := make([]error, 0, len(ves))
	for _, fe := range ves {
		errs = append(errs, fmt.Errorf("%w: %s failed validation for tag '%s'", ErrInvalidConfig, fieldName(fe), fe.Tag()))
	}
	return errors.Join(errs...)
}

func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}

// StyleSettings converts the style section. The seed is left at zero.
func (c Config) StyleSettings() presenter.StyleSettings {
	mode, err := presenter.ParseGradientMode(c.Style.GradientMode)
	if err != nil {
		mode = presenter.GradientAuto
	}
	return presenter.StyleSettings{
		Padding:       c.Style.Padding,
		CornerRadius:  c.Style.CornerRadius,
		BorderWidth:   c.Style.BorderWidth,
		BorderOpacity: c.Style.BorderOpacity,
		GradientMode:  mode,
		GradientStart: c.Style.GradientStart,
		GradientEnd:   c.Style.GradientEnd,
	}
}

// ExportFormat parses the export format.
func (c Config) ExportFormat() (presenter.Format, error) {
	return presenter.ParseFormat(c.Export.Format)
}

// LogLevel maps the log level name to a slog.Level. Unknown names give
// slog.LevelWarn.
func (c Config) LogLevel() slog.Level {
	return ParseLevel(c.Log.Level)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}
