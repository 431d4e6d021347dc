package domain

import (
	"strings"

	m "github.com/mouse-blink/docent/internal/model"
)

// Fixed header positions of the numbered function view.
const (
	SignatureLine      = 1
	OpenDelimiterLine  = 2
	DocstringFirstLine = 3
	headerLines        = 4
)

// BodyLine is one body line of the selected function with its display number.
type BodyLine struct {
	Number int
	Text   string
	// SourceIndex is the 0-based line of the original file.
	SourceIndex int
}

// Blank reports whether the line holds only whitespace.
func (b BodyLine) Blank() bool {
	return strings.TrimSpace(b.Text) == ""
}

// Layout assigns synthetic line numbers to a function with a docstring spliced
// between its signature and body.
type Layout struct {
	Signature string
	Docstring []string
	Body      []BodyLine
}

// DocLineCount returns the number of newline separated lines in doc, 0 when empty.
func DocLineCount(doc string) int {
	if doc == "" {
		return 0
	}

	return strings.Count(doc, "\n") + 1
}

// NewLayout numbers fn around the given saved docstring.
func NewLayout(fn m.ExtractedFunction, docstring string) Layout {
	lines := strings.Split(fn.RawText, "\n")

	layout := Layout{Signature: strings.TrimSpace(lines[0])}
	if docstring != "" {
		layout.Docstring = strings.Split(docstring, "\n")
	}

	start := layout.BodyStart()
	for i, text := range lines[1:] {
		layout.Body = append(layout.Body, BodyLine{
			Number:      start + i,
			Text:        text,
			SourceIndex: fn.StartLine + 1 + i,
		})
	}

	return layout
}

// DocLineCount returns the number of docstring lines in the layout.
func (l Layout) DocLineCount() int {
	return len(l.Docstring)
}

// CloseDelimiterLine is the line of the closing docstring quotes.
func (l Layout) CloseDelimiterLine() int {
	return DocstringFirstLine + l.DocLineCount()
}

// BodyStart is the display number of the first body line.
func (l Layout) BodyStart() int {
	return headerLines + l.DocLineCount()
}

// LastLine is the display number of the last line.
func (l Layout) LastLine() int {
	return l.BodyStart() + len(l.Body) - 1
}

// Line returns the body line numbered n.
func (l Layout) Line(n int) (BodyLine, bool) {
	idx := n - l.BodyStart()
	if idx < 0 || idx >= len(l.Body) {
		return BodyLine{}, false
	}

	return l.Body[idx], true
}

// Selectable reports whether n is a non-blank body line.
func (l Layout) Selectable(n int) bool {
	line, ok := l.Line(n)
	return ok && !line.Blank()
}

// SelectableLines returns every non-blank body line number in order.
func (l Layout) SelectableLines() []int {
	lines := make([]int, 0, len(l.Body))
	for _, line := range l.Body {
		if !line.Blank() {
			lines = append(lines, line.Number)
		}
	}

	return lines
}

// Indent returns the leading whitespace of the first non-blank body line, four
// spaces if the body is empty.
func (l Layout) Indent() string {
	for _, line := range l.Body {
		if !line.Blank() {
			return leadingWhitespace(line.Text)
		}
	}

	return "    "
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// Text returns the text of body line n.
func (l Layout) Text(n int) string {
	line, _ := l.Line(n)
	return line.Text
}

// SourceIndex maps body line n to its 0-based line in the original file.
func (l Layout) SourceIndex(n int) (int, bool) {
	line, ok := l.Line(n)
	return line.SourceIndex, ok
}
