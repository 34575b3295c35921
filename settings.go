package presenter

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidSettings is returned by StyleSettings.Validate.
var ErrInvalidSettings = errors.New("presenter: invalid settings")

// GradientMode selects how background colors are chosen.
type GradientMode uint8

const (
	// GradientAuto derives the background from the screenshot's colors.
	GradientAuto GradientMode = iota

	// GradientCustom uses GradientStart and GradientEnd verbatim.
	GradientCustom
)

// String returns "auto" or "custom".
func (m GradientMode) String() string {
	if m == GradientCustom {
		return "custom"
	}
	return "auto"
}

// MarshalText implements encoding.TextMarshaler.
func (m GradientMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Anything other than
// "custom" selects GradientAuto, matching how stored templates are read.
func (m *GradientMode) UnmarshalText(b []byte) error {
	if strings.EqualFold(string(b), "custom") {
		*m = GradientCustom
	} else {
		*m = GradientAuto
	}
	return nil
}

// ParseGradientMode parses "auto" or "custom" strictly.
func ParseGradientMode(s string) (GradientMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return GradientAuto, nil
	case "custom":
		return GradientCustom, nil
	}
	return GradientAuto, fmt.Errorf("%w: unknown gradient mode %q", ErrInvalidSettings, s)
}

// StyleSettings describes one composition style. It is a plain value:
// copying it yields an independent snapshot.
type StyleSettings struct {
	// Padding around the screenshot, in source image pixels.
	Padding int `json:"pad"`

	// CornerRadius of the screenshot frame. It is stored as entered and
	// clamped to half the smaller inset side at render time.
	CornerRadius int `json:"radius"`

	// BorderWidth of the frame stroke.
	BorderWidth int `json:"borderPx"`

	// BorderOpacity of the white frame stroke, in [0, 1].
	BorderOpacity float64 `json:"borderAlpha"`

	GradientMode GradientMode `json:"gradMode"`

	// GradientStart and GradientEnd are hex colors used in GradientCustom
	// mode. Unparsable values fall back to fixed colors when rendering.
	GradientStart string `json:"gradStart"`
	GradientEnd   string `json:"gradEnd"`

	// GradientSeed in [0, 1) shifts the hue of the second auto-gradient
	// color.
	GradientSeed float64 `json:"gradientSeed"`
}

// Default style values.
const (
	DefaultPadding       = 64
	DefaultCornerRadius  = 16
	DefaultBorderWidth   = 2
	DefaultBorderOpacity = 0.5
	DefaultGradientStart = "#6c5ce7"
	DefaultGradientEnd   = "#00d9ff"
)

// DefaultSettings returns the initial style.
func DefaultSettings() StyleSettings {
	return StyleSettings{
		Padding:       DefaultPadding,
		CornerRadius:  DefaultCornerRadius,
		BorderWidth:   DefaultBorderWidth,
		BorderOpacity: DefaultBorderOpacity,
		GradientMode:  GradientAuto,
		GradientStart: DefaultGradientStart,
		GradientEnd:   DefaultGradientEnd,
	}
}

// UnmarshalJSON implements json.Unmarshaler. Missing fields keep their
// default values, so templates written by older versions still load.
func (s *StyleSettings) UnmarshalJSON(data []byte) error {
	type plain StyleSettings
	v := plain(DefaultSettings())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = StyleSettings(v)
	return nil
}

// Validate reports every out-of-range field. Color strings are not
// checked; see ValidateColors.
func (s StyleSettings) Validate() error {
	var errs []error
	if s.Padding < 0 {
		errs = append(errs, fmt.Errorf("%w: padding %d is negative", ErrInvalidSettings, s.Padding))
	}
	if s.CornerRadius < 0 {
		errs = append(errs, fmt.Errorf("%w: corner radius %d is negative", ErrInvalidSettings, s.CornerRadius))
	}
	if s.BorderWidth < 0 {
		errs = append(errs, fmt.Errorf("%w: border width %d is negative", ErrInvalidSettings, s.BorderWidth))
	}
	if !(s.BorderOpacity >= 0 && s.BorderOpacity <= 1) {
		errs = append(errs, fmt.Errorf("%w: border opacity %v outside [0, 1]", ErrInvalidSettings, s.BorderOpacity))
	}
	if s.GradientMode > GradientCustom {
		errs = append(errs, fmt.Errorf("%w: gradient mode %d", ErrInvalidSettings, s.GradientMode))
	}
	if !(s.GradientSeed >= 0 && s.GradientSeed < 1) {
		errs = append(errs, fmt.Errorf("%w: gradient seed %v outside [0, 1)", ErrInvalidSettings, s.GradientSeed))
	}
	return errors.Join(errs...)
}

// ValidateColors reports custom gradient colors that ParseHex rejects.
func (s StyleSettings) ValidateColors() error {
	var errs []error
	if _, ok := ParseHex(s.GradientStart); !ok {
		errs = append(errs, fmt.Errorf("%w: gradient start %q is not #rrggbb", ErrInvalidSettings, s.GradientStart))
	}
	if _, ok := ParseHex(s.GradientEnd); !ok {
		errs = append(errs, fmt.Errorf("%w: gradient end %q is not #rrggbb", ErrInvalidSettings, s.GradientEnd))
	}
	return errors.Join(errs...)
}

// Normalize returns a copy with every numeric field clamped into range.
// Colors are left untouched; Render falls back on unparsable ones.
func (s StyleSettings) Normalize() StyleSettings {
	s.Padding = max(s.Padding, 0)
	s.CornerRadius = max(s.CornerRadius, 0)
	s.BorderWidth = max(s.BorderWidth, 0)
	if math.IsNaN(s.BorderOpacity) {
		s.BorderOpacity = DefaultBorderOpacity
	}
	s.BorderOpacity = clamp01(s.BorderOpacity)
	if s.GradientMode > GradientCustom {
		s.GradientMode = GradientAuto
	}
	if math.IsNaN(s.GradientSeed) || math.IsInf(s.GradientSeed, 0) {
		s.GradientSeed = 0
	}
	s.GradientSeed -= math.Floor(s.GradientSeed)
	return s
}

// Controls reports which editing controls are available for a style.
type Controls struct {
	// CustomColors is true when the start/end color fields are editable.
	CustomColors bool

	// Randomize is true when re-rolling the gradient seed has an effect.
	Randomize bool

	// Export is true when there is an image to export.
	Export bool

	// SaveTemplate is always true: style-only templates are allowed.
	SaveTemplate bool
}

// Controls returns the control state for s.
func (s StyleSettings) Controls(hasImage bool) Controls {
	custom := s.GradientMode == GradientCustom
	return Controls{
		CustomColors: custom,
		Randomize:    !custom,
		Export:       hasImage,
		SaveTemplate: true,
	}
}
