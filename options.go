package presenter

// RenderOption configures a single Render call.
// Use functional options to customize rendering.
//
// Example:
//
//	// Default rendering
//	presenter.Render(dst, s, img)
//
//	// Template thumbnail without an image
//	presenter.Render(dst, s, nil, presenter.WithPlaceholder(true))
type RenderOption func(*renderOptions)

// renderOptions holds optional configuration for Render.
type renderOptions struct {
	placeholder bool
	borderColor Color
}

// defaultRenderOptions returns the default render options.
func defaultRenderOptions() renderOptions {
	return renderOptions{
		placeholder: false,
		borderColor: white,
	}
}

// WithPlaceholder draws a faint striped panel in the inset when no image
// is given. It has no effect when an image is rendered.
func WithPlaceholder(enabled bool) RenderOption {
	return func(o *renderOptions) {
		o.placeholder = enabled
	}
}

// WithBorderColor sets the frame stroke color. The stroke alpha still
// comes from StyleSettings.BorderOpacity.
func WithBorderColor(c Color) RenderOption {
	return func(o *renderOptions) {
		o.borderColor = c
	}
}
