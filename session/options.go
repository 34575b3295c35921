package session

import (
	"context"
	"image"
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/internal/imageio"
)

// Decoder loads the image at path. It should return promptly once ctx is
// canceled.
type Decoder func(ctx context.Context, path string) (image.Image, error)

// Option configures a Session during creation.
//
// Example:
//
//	// Session with the user's configured style
//	s := session.New(session.WithSettings(cfg.StyleSettings()))
//
//	// Deterministic seeds in tests
//	s := session.New(session.WithRand(func() float64 { return 0.25 }))
type Option func(*options)

// options holds optional configuration for New.
type options struct {
	decode   Decoder
	rand     func() float64
	settings presenter.StyleSettings
	logger   *slog.Logger
}

// defaultOptions returns the default session options.
func defaultOptions() options {
	return options{
		decode:   imageio.Load,
		rand:     rand.Float64,
		settings: presenter.DefaultSettings(),
		logger:   nil, // presenter.Logger() at call time
	}
}

// WithDecoder replaces the image decoder used by Load.
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		if d != nil {
			o.decode = d
		}
	}
}

// WithRand sets the source of gradient seeds. fn must return values in
// [0, 1).
func WithRand(fn func() float64) Option {
	return func(o *options) {
		if fn != nil {
			o.rand = fn
		}
	}
}

// WithSettings sets the initial style. It is normalized first.
func WithSettings(s presenter.StyleSettings) Option {
	return func(o *options) {
		o.settings = s.Normalize()
	}
}

// WithLogger gives the session its own logger instead of the package-wide
// one from presenter.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
