package adapter

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/sync/singleflight"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// Highlighter colorizes Python source for terminal display. Implementations must
// return the input unchanged when highlighting is unavailable.
type Highlighter interface {
	Highlight(ctx context.Context, code string) string
}

// Engine is a loaded lexer, formatter and style triple.
type Engine struct {
	Lexer     chroma.Lexer
	Formatter chroma.Formatter
	Style     *chroma.Style
}

// EngineLoader produces an Engine for the named style.
type EngineLoader func(style string) (*Engine, error)

// LoadChromaEngine resolves the Python lexer and the terminal formatter.
func LoadChromaEngine(style string) (*Engine, error) {
	lexer := lexers.Get("python")
	if lexer == nil {
		return nil, fmt.Errorf("python lexer not available")
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return nil, fmt.Errorf("terminal formatter not available")
	}

	return &Engine{
		Lexer:     chroma.Coalesce(lexer),
		Formatter: formatter,
		Style:     styles.Get(style),
	}, nil
}

func (e *Engine) render(code string) (string, error) {
	iterator, err := e.Lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := e.Formatter.Format(&buf, e.Style, iterator); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// LazyHighlighter loads its engine on first use and shares it afterwards.
// Callers arriving while the load is in flight wait for the same load.
type LazyHighlighter struct {
	style  string
	loader EngineLoader
	group  singleflight.Group

	mu     sync.Mutex
	engine *Engine
}

// HighlighterOption configures a LazyHighlighter.
type HighlighterOption func(*LazyHighlighter)

// WithEngineLoader replaces the chroma loader.
func WithEngineLoader(loader EngineLoader) HighlighterOption {
	return func(h *LazyHighlighter) {
		h.loader = loader
	}
}

// NewLazyHighlighter creates a highlighter for the given chroma style.
func NewLazyHighlighter(style string, opts ...HighlighterOption) *LazyHighlighter {
	if style == "" {
		style = DefaultHighlightStyle
	}

	h := &LazyHighlighter{
		style:  style,
		loader: LoadChromaEngine,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Highlight returns code colorized, or unchanged if the engine could not be
// loaded before ctx was done.
func (h *LazyHighlighter) Highlight(ctx context.Context, code string) string {
	engine, err := h.load(ctx)
	if err != nil {
		return code
	}

	out, err := engine.render(code)
	if err != nil {
		return code
	}

	return out
}

// Loaded reports whether the engine is cached.
func (h *LazyHighlighter) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.engine != nil
}

func (h *LazyHighlighter) load(ctx context.Context) (*Engine, error) {
	h.mu.Lock()
	engine := h.engine
	h.mu.Unlock()

	if engine != nil {
		return engine, nil
	}

	ch := h.group.DoChan(h.style, func() (interface{}, error) {
		loaded, err := h.loader(h.style)
		if err != nil {
			return nil, err
		}

		h.mu.Lock()
		h.engine = loaded
		h.mu.Unlock()

		return loaded, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		loaded, ok := res.Val.(*Engine)
		if !ok || loaded == nil {
			return nil, fmt.Errorf("highlighter engine missing")
		}

		return loaded, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type plainHighlighter struct{}

// PlainHighlighter returns a Highlighter that never colorizes.
func PlainHighlighter() Highlighter {
	return plainHighlighter{}
}

func (plainHighlighter) Highlight(_ context.Context, code string) string {
	return code
}
