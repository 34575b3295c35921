// Package actions implements the editing commands the desktop viewer binds
// to keys, independent of any windowing toolkit.
package actions

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/session"
	"github.com/gogpu/presenter/surface"
	"github.com/gogpu/presenter/template"
)

// Step sizes for the adjust commands.
const (
	PaddingStep = 4
	RadiusStep  = 2
	BorderStep  = 1
	OpacityStep = 0.05
)

var (
	// ErrNoImage is returned when exporting without an image.
	ErrNoImage = errors.New("actions: no image to export")

	// ErrNoStore is returned by template commands when no store is set.
	ErrNoStore = errors.New("actions: no template store")

	// ErrNoTemplate is returned by Delete when no template was applied.
	ErrNoTemplate = errors.New("actions: no template applied")

	// ErrNotCustom is returned by the color commands outside custom mode.
	ErrNotCustom = errors.New("actions: gradient colors are editable in custom mode only")

	// ErrBadColor is returned when a typed color is not #rrggbb.
	ErrBadColor = errors.New("actions: color must be #rrggbb")
)

// Palette is the set of colors the cycle commands step through.
var Palette = []string{
	presenter.DefaultGradientStart,
	presenter.DefaultGradientEnd,
	"#ff6b6b",
	"#feca57",
	"#1dd1a1",
	"#0c0f14",
	"#ffffff",
	"#f368e0",
}

// Kind identifies a command.
type Kind uint8

const (
	Randomize Kind = iota + 1
	ToggleMode
	PaddingUp
	PaddingDown
	RadiusUp
	RadiusDown
	BorderUp
	BorderDown
	OpacityUp
	OpacityDown
	ExportPNG
	ExportJPEG
	SaveTemplate
	ApplyTemplate
	DeleteTemplate
	CycleStartColor
	CycleEndColor
	SetStartColor
	SetEndColor
)

var kindNames = [...]string{
	Randomize:       "randomize",
	ToggleMode:      "toggle-mode",
	PaddingUp:       "padding-up",
	PaddingDown:     "padding-down",
	RadiusUp:        "radius-up",
	RadiusDown:      "radius-down",
	BorderUp:        "border-up",
	BorderDown:      "border-down",
	OpacityUp:       "opacity-up",
	OpacityDown:     "opacity-down",
	ExportPNG:       "export-png",
	ExportJPEG:      "export-jpeg",
	SaveTemplate:    "save-template",
	ApplyTemplate:   "apply-template",
	DeleteTemplate:  "delete-template",
	CycleStartColor: "cycle-start-color",
	CycleEndColor:   "cycle-end-color",
	SetStartColor:   "set-start-color",
	SetEndColor:     "set-end-color",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Command is one user request.
type Command struct {
	Kind Kind

	// Index is the 1-based template position for ApplyTemplate.
	Index int

	// Name is the template name for SaveTemplate and the hex color for
	// SetStartColor and SetEndColor.
	Name string
}

// Controller runs commands against a session.
type Controller struct {
	session    *session.Session
	store      *template.Store
	exportDir  string
	pixelRatio float64
	now        func() time.Time

	applied string
}

// Option configures a Controller.
type Option func(*Controller)

// WithStore enables the template commands.
func WithStore(st *template.Store) Option {
	return func(c *Controller) { c.store = st }
}

// WithExportDir sets where exports are written.
func WithExportDir(dir string) Option {
	return func(c *Controller) { c.exportDir = dir }
}

// WithPixelRatio scales exported images.
func WithPixelRatio(r float64) Option {
	return func(c *Controller) { c.pixelRatio = r }
}

// WithClock replaces time.Now for export file names.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New returns a Controller for s.
func New(s *session.Session, opts ...Option) *Controller {
	c := &Controller{
		session:    s,
		pixelRatio: 1,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs cmd and returns a short status line describing the result.
func (c *Controller) Execute(cmd Command) (string, error) {
	s := c.session
	snap := s.Snapshot()

	switch cmd.Kind {
	case Randomize:
		if snap.GradientMode == presenter.GradientCustom {
			return "randomize is off in custom mode", nil
		}
		s.Randomize()
		return "new gradient", nil
	case ToggleMode:
		mode := presenter.GradientCustom
		if snap.GradientMode == presenter.GradientCustom {
			mode = presenter.GradientAuto
		}
		s.SetGradientMode(mode)
		return "gradient: " + mode.String(), nil
	case PaddingUp, PaddingDown:
		v := max(snap.Padding+sign(cmd.Kind == PaddingUp)*PaddingStep, 0)
		s.SetPadding(v)
		return fmt.Sprintf("padding %d", v), nil
	case RadiusUp, RadiusDown:
		v := max(snap.CornerRadius+sign(cmd.Kind == RadiusUp)*RadiusStep, 0)
		s.SetCornerRadius(v)
		return fmt.Sprintf("radius %d", v), nil
	case BorderUp, BorderDown:
		v := max(snap.BorderWidth+sign(cmd.Kind == BorderUp)*BorderStep, 0)
		s.SetBorderWidth(v)
		return fmt.Sprintf("border %d", v), nil
	case OpacityUp, OpacityDown:
		v := snap.BorderOpacity + float64(sign(cmd.Kind == OpacityUp))*OpacityStep
		v = math.Round(v*100) / 100
		v = math.Max(0, math.Min(1, v))
		s.SetBorderOpacity(v)
		return fmt.Sprintf("border opacity %d%%", int(math.Round(v*100))), nil
	case ExportPNG:
		return c.export(presenter.FormatPNG)
	case ExportJPEG:
		return c.export(presenter.FormatJPEG)
	case SaveTemplate:
		return c.saveTemplate(cmd.Name)
	case ApplyTemplate:
		return c.applyTemplate(cmd.Index)
	case DeleteTemplate:
		return c.deleteTemplate()
	case CycleStartColor, CycleEndColor, SetStartColor, SetEndColor:
		return c.setColor(cmd, snap)
	}
	return "", fmt.Errorf("actions: unknown command %v", cmd.Kind)
}

// setColor changes one custom gradient endpoint. The fields are only
// editable in custom mode.
func (c *Controller) setColor(cmd Command, snap presenter.StyleSettings) (string, error) {
	if !c.session.Controls().CustomColors {
		return "", ErrNotCustom
	}

	start := cmd.Kind == CycleStartColor || cmd.Kind == SetStartColor
	current := snap.GradientEnd
	if start {
		current = snap.GradientStart
	}

	var next string
	switch cmd.Kind {
	case CycleStartColor, CycleEndColor:
		next = nextPaletteColor(current)
	default:
		col, ok := presenter.ParseHex(strings.TrimSpace(cmd.Name))
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrBadColor, cmd.Name)
		}
		next = col.Hex()
	}

	if start {
		c.session.SetGradientColors(next, snap.GradientEnd)
		return "start color " + next, nil
	}
	c.session.SetGradientColors(snap.GradientStart, next)
	return "end color " + next, nil
}

// nextPaletteColor returns the palette entry after current, or the first
// one when current is not in the palette.
func nextPaletteColor(current string) string {
	for i, p := range Palette {
		if strings.EqualFold(p, current) {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

func sign(up bool) int {
	if up {
		return 1
	}
	return -1
}

// Render draws the current state at export size and returns the surface.
func (c *Controller) Render() *surface.ImageSurface {
	st := c.session.State()
	w, h := presenter.CanvasSize(st.Settings, st.Image, c.pixelRatio)
	dst := surface.NewImageSurface(w, h)
	presenter.Render(dst, st.Settings, st.Image)
	return dst
}

func (c *Controller) export(f presenter.Format) (string, error) {
	if !c.session.Controls().Export {
		return "", ErrNoImage
	}
	path := filepath.Join(c.exportDir, presenter.ExportFileName(c.now(), f))
	if err := presenter.SaveFile(path, c.Render().Image(), f); err != nil {
		return "", err
	}
	presenter.Logger().Info("actions: exported", "path", path, "format", f)
	return "saved " + path, nil
}

func (c *Controller) saveTemplate(name string) (string, error) {
	if c.store == nil {
		return "", ErrNoStore
	}
	st := c.session.State()
	tpl, err := template.New(name, st.Settings, st.Image)
	if err != nil {
		return "", err
	}
	if err := c.store.Add(tpl); err != nil {
		return "", err
	}
	c.applied = tpl.ID
	return fmt.Sprintf("saved template %q", tpl.Name), nil
}

func (c *Controller) applyTemplate(index int) (string, error) {
	if c.store == nil {
		return "", ErrNoStore
	}
	list := c.store.List()
	if index < 1 || index > len(list) {
		return "", fmt.Errorf("%w: no template #%d", template.ErrNotFound, index)
	}
	tpl := list[index-1]
	c.session.Apply(tpl.Settings)
	c.applied = tpl.ID
	return fmt.Sprintf("applied %q", tpl.Name), nil
}

func (c *Controller) deleteTemplate() (string, error) {
	if c.store == nil {
		return "", ErrNoStore
	}
	if c.applied == "" {
		return "", ErrNoTemplate
	}
	tpl, err := c.store.Get(c.applied)
	if err != nil {
		c.applied = ""
		return "", err
	}
	if err := c.store.Delete(tpl.ID); err != nil {
		return "", err
	}
	c.applied = ""
	return fmt.Sprintf("deleted %q", tpl.Name), nil
}

// Templates returns a one-line summary of the first nine templates as
// numbered by ApplyTemplate.
func (c *Controller) Templates() string {
	if c.store == nil {
		return ""
	}
	list := c.store.List()
	var b strings.Builder
	for i, t := range list {
		if i == 9 {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%d:%s", i+1, t.Name)
	}
	return b.String()
}
