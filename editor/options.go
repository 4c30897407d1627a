package editor

import "log/slog"

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for debug tracing of span changes.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		e.log = l
	}
}

// WithControls connects the editor to host-owned toggle controls.
func WithControls(c Controls) Option {
	return func(e *Editor) {
		e.controls = c
	}
}

// WithSizes replaces the font-size menu.
func WithSizes(s Sizes) Option {
	return func(e *Editor) {
		e.sizes = s
	}
}
