// Package controller renders the docstring tutorial and turns user input into
// tutorial actions.
package controller

import (
	"log/slog"
	"time"

	"github.com/mouse-blink/docent/internal/adapter"
	"github.com/mouse-blink/docent/internal/config"
	"github.com/mouse-blink/docent/internal/domain"
)

// UI is a front-end for the tutorial. Implementations can use different output
// methods (plain text, TUI).
type UI interface {
	domain.Presenter
}

// Option configures a UI.
type Option func(*options)

type options struct {
	highlighter adapter.Highlighter
	clipboard   adapter.Clipboard
	hoverDelay  time.Duration
	scrollDelay time.Duration
	logger      *slog.Logger
}

func newOptions(opts ...Option) options {
	defaults := config.DefaultConfig()

	o := options{
		highlighter: adapter.PlainHighlighter(),
		hoverDelay:  defaults.HoverHideDelay,
		scrollDelay: defaults.ScrollDelay,
		logger:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithHighlighter sets the syntax highlighter for code views.
func WithHighlighter(h adapter.Highlighter) Option {
	return func(o *options) {
		o.highlighter = h
	}
}

// WithClipboard enables copying solutions to the clipboard.
func WithClipboard(c adapter.Clipboard) Option {
	return func(o *options) {
		o.clipboard = c
	}
}

// WithTimings sets the suggestion popup hide delay and the validation scroll delay.
func WithTimings(hover, scroll time.Duration) Option {
	return func(o *options) {
		o.hoverDelay = hover
		o.scrollDelay = scroll
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
