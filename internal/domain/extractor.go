package domain

import (
	"strings"

	m "github.com/mouse-blink/docent/internal/model"
)

const (
	defKeyword = "def "
	// selectionCoverage is the share of a function's text a selection must span.
	selectionCoverage = 0.8
)

// ExtractFunctions scans text line by line and returns its functions in order.
// A line whose trimmed form starts with "def " and contains "(" opens a new
// function and closes the previous one. Indentation is ignored, so nested
// definitions are reported as separate top-level functions.
func ExtractFunctions(text string) []m.ExtractedFunction {
	lines := strings.Split(text, "\n")
	functions := make([]m.ExtractedFunction, 0)

	var (
		current *m.ExtractedFunction
		raw     []string
	)

	closeCurrent := func(endLine int) {
		current.EndLine = endLine
		current.RawText = strings.Join(raw, "\n")
		functions = append(functions, *current)
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !isDefLine(trimmed) {
			if current != nil {
				raw = append(raw, line)
			}

			continue
		}

		if current != nil {
			closeCurrent(i - 1)
		}

		current = &m.ExtractedFunction{
			Name:      functionName(trimmed),
			StartLine: i,
		}
		raw = []string{line}
	}

	if current != nil {
		closeCurrent(len(lines) - 1)
	}

	return functions
}

func isDefLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, defKeyword) && strings.Contains(trimmed, "(")
}

func functionName(trimmed string) string {
	head, _, _ := strings.Cut(trimmed, "(")
	return strings.TrimSpace(strings.TrimPrefix(head, defKeyword))
}

// MatchSelection returns the first function named as "def <name>" inside the
// selection whose trimmed text is covered to at least 80% by the selection length.
func MatchSelection(functions []m.ExtractedFunction, selection string) (m.ExtractedFunction, bool) {
	selected := strings.TrimSpace(selection)
	if selected == "" {
		return m.ExtractedFunction{}, false
	}

	for _, fn := range functions {
		if !strings.Contains(selected, defKeyword+fn.Name) {
			continue
		}

		if float64(len(selected)) >= float64(len(strings.TrimSpace(fn.RawText)))*selectionCoverage {
			return fn, true
		}
	}

	return m.ExtractedFunction{}, false
}

// FunctionAt returns the function whose def line is lineIndex.
func FunctionAt(functions []m.ExtractedFunction, lineIndex int) (m.ExtractedFunction, bool) {
	for _, fn := range functions {
		if fn.StartLine == lineIndex {
			return fn, true
		}
	}

	return m.ExtractedFunction{}, false
}
