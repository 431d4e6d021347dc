package controller

import (
	"log/slog"
	"testing"
	"time"

	"github.com/mouse-blink/docent/internal/adapter"
	"github.com/mouse-blink/docent/internal/config"
)

func TestNewOptions_Defaults(t *testing.T) {
	opts := newOptions()
	defaults := config.DefaultConfig()

	if opts.hoverDelay != defaults.HoverHideDelay {
		t.Fatalf("hoverDelay = %v, want %v", opts.hoverDelay, defaults.HoverHideDelay)
	}

	if opts.scrollDelay != defaults.ScrollDelay {
		t.Fatalf("scrollDelay = %v, want %v", opts.scrollDelay, defaults.ScrollDelay)
	}

	if opts.clipboard != nil {
		t.Fatalf("clipboard = %v, want nil", opts.clipboard)
	}

	if opts.highlighter == nil || opts.logger == nil {
		t.Fatalf("highlighter and logger must have defaults")
	}
}

func TestOptions(t *testing.T) {
	clip := &fakeClipboard{}
	highlighter := adapter.PlainHighlighter()
	logger := slog.New(slog.DiscardHandler)

	opts := newOptions(
		WithClipboard(clip),
		WithHighlighter(highlighter),
		WithTimings(time.Second, 2*time.Second),
		WithLogger(logger),
	)

	if opts.clipboard != clip {
		t.Fatalf("WithClipboard() not applied")
	}

	if opts.highlighter != highlighter {
		t.Fatalf("WithHighlighter() not applied")
	}

	if opts.hoverDelay != time.Second || opts.scrollDelay != 2*time.Second {
		t.Fatalf("WithTimings() = %v/%v, want 1s/2s", opts.hoverDelay, opts.scrollDelay)
	}

	if opts.logger != logger {
		t.Fatalf("WithLogger() not applied")
	}
}
