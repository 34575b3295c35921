// Package viewer is the desktop preview window. It shows the session's
// composition scaled to fit, accepts dropped image files and maps keys to
// editing actions.
package viewer

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/internal/actions"
	"github.com/gogpu/presenter/internal/imageio"
	"github.com/gogpu/presenter/session"
)

// Window defaults.
const (
	Title        = "Screenshot Presenter"
	WindowWidth  = 1280
	WindowHeight = 900
)

const statusDuration = 4 * time.Second

var backdrop = color.RGBA{R: 18, G: 20, B: 28, A: 255}

// Viewer implements ebiten.Game for one session.
type Viewer struct {
	ctx     context.Context
	session *session.Session
	actions *actions.Controller

	opens chan string
	focus chan struct{}

	frame  frame
	canvas *ebiten.Image

	status      string
	statusUntil time.Time

	keys  []ebiten.Key
	chars []rune
	entry hexEntry
}

// New returns a viewer for s. Key actions run through ctl. ctx bounds
// image loads.
func New(ctx context.Context, s *session.Session, ctl *actions.Controller) *Viewer {
	return &Viewer{
		ctx:     ctx,
		session: s,
		actions: ctl,
		opens:   make(chan string, 8),
		focus:   make(chan struct{}, 1),
	}
}

// Open asks the viewer to load path on its next frame and restore its
// window. It is safe to call from any goroutine.
func (v *Viewer) Open(p string) {
	if p != "" {
		select {
		case v.opens <- p:
		default:
			presenter.Logger().Warn("viewer: dropping open request", "path", p)
		}
	}
	v.Focus()
}

// Focus asks the viewer to restore its window on the next frame.
func (v *Viewer) Focus() {
	select {
	case v.focus <- struct{}{}:
	default:
	}
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() error {
	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	if v.ctx.Err() != nil {
		return ebiten.Termination
	}

	v.handleRequests()
	v.handleDrop()
	v.handleKeys()

	if changed, resized := v.frame.update(v.session.State()); changed {
		v.upload(resized)
	}
	return nil
}

func (v *Viewer) handleRequests() {
	for {
		select {
		case p := <-v.opens:
			v.session.Load(v.ctx, p)
			v.setStatus("loading " + filepath.Base(p))
		case <-v.focus:
			if ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
		default:
			return
		}
	}
}

// handleDrop loads the first supported file among the dropped entries.
// Bytes are read during the frame; decoding runs in the background.
func (v *Viewer) handleDrop() {
	fsys := ebiten.DroppedFiles()
	if fsys == nil {
		return
	}
	name, data, err := pickDropped(fsys)
	if err != nil {
		presenter.Logger().Debug("viewer: drop ignored", "err", err)
		v.setStatus(err.Error())
		return
	}
	v.session.LoadWith(v.ctx, name, func(context.Context) (image.Image, error) {
		return imageio.Decode(data)
	})
	v.setStatus("loading " + name)
}

func (v *Viewer) handleKeys() {
	if v.entry.active() {
		v.handleEntry()
		return
	}

	v.keys = inpututil.AppendJustPressedKeys(v.keys[:0])
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, k := range v.keys {
		cmd, ok := Bind(k, shift)
		if !ok {
			continue
		}
		switch cmd.Kind {
		case actions.SaveTemplate:
			cmd.Name = templateName(v.session.State().ImagePath)
		case actions.SetStartColor, actions.SetEndColor:
			if !v.session.Controls().CustomColors {
				v.setStatus(actions.ErrNotCustom.Error())
				continue
			}
			v.entry.begin(cmd.Kind)
			// Drop this frame's characters, including the G itself.
			v.chars = ebiten.AppendInputChars(v.chars[:0])
			return
		}
		v.execute(cmd)
	}
}

// handleEntry feeds typed characters into the hex color entry.
func (v *Viewer) handleEntry() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		v.entry.cancel()
		v.setStatus("color entry canceled")
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		v.entry.backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		if cmd, ok := v.entry.commit(); ok {
			v.execute(cmd)
			return
		}
	}
	v.chars = ebiten.AppendInputChars(v.chars[:0])
	v.entry.input(v.chars)
}

func (v *Viewer) execute(cmd actions.Command) {
	msg, err := v.actions.Execute(cmd)
	if err != nil {
		presenter.Logger().Debug("viewer: action failed", "action", cmd.Kind, "err", err)
		msg = err.Error()
	}
	v.setStatus(msg)
}

func templateName(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	base := filepath.Base(imagePath)
	return base[:len(base)-len(filepath.Ext(base))]
}

func (v *Viewer) setStatus(msg string) {
	v.status = msg
	v.statusUntil = time.Now().Add(statusDuration)
}

// upload copies the frame's pixels to the GPU image shown by Draw.
func (v *Viewer) upload(resized bool) {
	if resized || v.canvas == nil {
		if v.canvas != nil {
			v.canvas.Deallocate()
		}
		v.canvas = ebiten.NewImage(v.frame.surf.Width(), v.frame.surf.Height())
	}
	v.canvas.WritePixels(v.frame.surf.Image().Pix)
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backdrop)
	if v.canvas != nil {
		sb := screen.Bounds()
		cb := v.canvas.Bounds()
		scale, dx, dy := Fit(cb.Dx(), cb.Dy(), sb.Dx(), sb.Dy())

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(dx, dy)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(v.canvas, op)
	}

	help := "drop an image | R random  M mode  arrows pad  [ ] radius  B border  O opacity  C/G colors  P/J export  S save  1-9 template  Del delete"
	if list := v.actions.Templates(); list != "" {
		help += "\n" + list
	}
	if v.entry.active() {
		help += "\n" + v.entry.prompt()
	} else if v.status != "" && time.Now().Before(v.statusUntil) {
		help += "\n" + v.status
	}
	ebitenutil.DebugPrint(screen, help)
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Fit returns the uniform scale and offset that center a w×h image inside
// a bw×bh box with a margin, never enlarging it.
func Fit(w, h, bw, bh int) (scale, dx, dy float64) {
	const margin = 24
	if w <= 0 || h <= 0 {
		return 1, 0, 0
	}
	aw := max(float64(bw-2*margin), 1)
	ah := max(float64(bh-2*margin), 1)
	scale = min(aw/float64(w), ah/float64(h), 1)
	dx = (float64(bw) - float64(w)*scale) / 2
	dy = (float64(bh) - float64(h)*scale) / 2
	return scale, dx, dy
}
