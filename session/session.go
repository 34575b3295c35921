// Package session holds the state of one editing session: the loaded
// screenshot, the live style and the observers that redraw when either
// changes.
//
// A Session is safe for concurrent use. Observers run synchronously on the
// goroutine that made the change, outside the session lock, in the order
// they subscribed. Image loads complete on their own goroutine; only the
// most recent Load is ever applied.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/internal/imageio"
	"github.com/gogpu/presenter/surface"
)

// State is a point-in-time copy of a session.
type State struct {
	// Image is the loaded screenshot, or nil.
	Image image.Image

	// ImagePath is the file Image was loaded from, if any.
	ImagePath string

	Settings presenter.StyleSettings

	// Version increases by one on every change.
	Version uint64

	// LoadID is the request id of the load that produced Image. Zero when
	// the image was set directly or never loaded.
	LoadID uint64
}

// HasImage reports whether an image is loaded.
func (s State) HasImage() bool {
	return s.Image != nil
}

// Controls returns the editing controls available in this state.
func (s State) Controls() presenter.Controls {
	return s.Settings.Controls(s.HasImage())
}

type observer struct {
	id uint64
	fn func(State)
}

// Session is the mutable application state.
type Session struct {
	decode Decoder
	rand   func() float64
	logger *slog.Logger

	mu        sync.Mutex
	state     State
	observers []observer
	nextObs   uint64
	loadSeq   uint64
	cancel    context.CancelFunc

	loads sync.WaitGroup
}

// New creates a session with default settings and no image.
func New(opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		decode: o.decode,
		rand:   o.rand,
		logger: o.logger,
		state:  State{Settings: o.settings},
	}
}

func (s *Session) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return presenter.Logger()
}

// Subscribe registers fn to be called after every change. The returned
// func removes it.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.observers = slices.DeleteFunc(s.observers, func(o observer) bool { return o.id == id })
			s.mu.Unlock()
		})
	}
}

// update applies fn under the lock. When fn reports a change the version
// is bumped and observers are notified once.
func (s *Session) update(fn func(st *State) bool) {
	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return
	}
	s.state.Version++
	st := s.state
	obs := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, o := range obs {
		o.fn(st)
	}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the live style, seed included.
func (s *Session) Snapshot() presenter.StyleSettings {
	return s.State().Settings
}

// Controls returns the editing controls for the current state.
func (s *Session) Controls() presenter.Controls {
	return s.State().Controls()
}

// Version returns the current version.
func (s *Session) Version() uint64 {
	return s.State().Version
}

// SetPadding sets the padding. Negative values become zero.
func (s *Session) SetPadding(v int) {
	s.update(func(st *State) bool {
		st.Settings.Padding = max(v, 0)
		return true
	})
}

// SetCornerRadius sets the corner radius. Negative values become zero.
func (s *Session) SetCornerRadius(v int) {
	s.update(func(st *State) bool {
		st.Settings.CornerRadius = max(v, 0)
		return true
	})
}

// SetBorderWidth sets the border width. Negative values become zero.
func (s *Session) SetBorderWidth(v int) {
	s.update(func(st *State) bool {
		st.Settings.BorderWidth = max(v, 0)
		return true
	})
}

// SetBorderOpacity sets the border opacity, clamped to [0, 1].
func (s *Session) SetBorderOpacity(v float64) {
	s.update(func(st *State) bool {
		st.Settings.BorderOpacity = v
		st.Settings = st.Settings.Normalize()
		return true
	})
}

// SetGradientMode switches between auto and custom backgrounds.
func (s *Session) SetGradientMode(m presenter.GradientMode) {
	s.update(func(st *State) bool {
		st.Settings.GradientMode = m
		st.Settings = st.Settings.Normalize()
		return true
	})
}

// SetGradientColors sets the custom gradient endpoints. The strings are
// stored as given.
func (s *Session) SetGradientColors(start, end string) {
	s.update(func(st *State) bool {
		st.Settings.GradientStart = start
		st.Settings.GradientEnd = end
		return true
	})
}

// Randomize rolls a new gradient seed. It does nothing in custom mode.
func (s *Session) Randomize() {
	s.update(func(st *State) bool {
		if st.Settings.GradientMode == presenter.GradientCustom {
			return false
		}
		st.Settings.GradientSeed = s.rand()
		return true
	})
}

// Apply replaces every style setting with snap, seed included, and
// notifies observers once.
func (s *Session) Apply(snap presenter.StyleSettings) {
	s.update(func(st *State) bool {
		st.Settings = snap.Normalize()
		return true
	})
}

// SetImage installs img as the current screenshot and rolls a new
// gradient seed. An empty image clears it. Any in-flight Load is
// superseded.
func (s *Session) SetImage(img image.Image, path string) {
	if img != nil && img.Bounds().Empty() {
		img = nil
	}
	s.update(func(st *State) bool {
		s.supersedeLocked()
		st.Image = img
		st.ImagePath = path
		st.LoadID = 0
		if img != nil {
			st.Settings.GradientSeed = s.rand()
		}
		return true
	})
}

// ClearImage removes the screenshot. The style is kept.
func (s *Session) ClearImage() {
	s.SetImage(nil, "")
}

// supersedeLocked cancels the in-flight load and invalidates its id.
// s.mu must be held.
func (s *Session) supersedeLocked() uint64 {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loadSeq++
	return s.loadSeq
}

// Load decodes path in the background and returns the request id. A later
// Load or SetImage cancels this one; only the newest request's result is
// applied. Decode failures are logged and leave the state untouched.
func (s *Session) Load(ctx context.Context, path string) uint64 {
	return s.LoadWith(ctx, path, func(ctx context.Context) (image.Image, error) {
		return s.decode(ctx, path)
	})
}

// LoadWith is Load with a caller-supplied decode step, for images that do
// not come from a file path. path is recorded as the image's name.
func (s *Session) LoadWith(ctx context.Context, path string, decode func(context.Context) (image.Image, error)) uint64 {
	s.mu.Lock()
	id := s.supersedeLocked()
	lctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loads.Add(1)
	s.mu.Unlock()

	s.log().Debug("session: load", "id", id, "path", path)

	go func() {
		defer s.loads.Done()
		defer cancel()

		img, err := decode(lctx)
		if err == nil && (img == nil || img.Bounds().Empty()) {
			err = fmt.Errorf("session: %s: %w", path, imageio.ErrEmptyData)
		}

		var stale bool
		s.update(func(st *State) bool {
			if id != s.loadSeq {
				stale = true
				return false
			}
			s.cancel = nil
			if err != nil {
				return false
			}
			st.Image = img
			st.ImagePath = path
			st.LoadID = id
			st.Settings.GradientSeed = s.rand()
			return true
		})

		switch {
		case stale:
			s.log().Debug("session: discarding stale load", "id", id, "path", path)
		case errors.Is(err, context.Canceled):
			s.log().Debug("session: load canceled", "id", id, "path", path)
		case err != nil:
			s.log().Warn("session: load failed", "path", path, "err", err)
		default:
			b := img.Bounds()
			s.log().Info("session: loaded", "id", id, "path", path, "width", b.Dx(), "height", b.Dy())
		}
	}()
	return id
}

// Wait blocks until every started load has finished.
func (s *Session) Wait() {
	s.loads.Wait()
}

// Close cancels the in-flight load and waits for it.
func (s *Session) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.Wait()
}

// Render draws the current composition onto dst.
func (s *Session) Render(dst surface.Surface, opts ...presenter.RenderOption) {
	st := s.State()
	presenter.Render(dst, st.Settings, st.Image, opts...)
}
