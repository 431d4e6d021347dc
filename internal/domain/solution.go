package domain

import (
	"fmt"
	"strings"
)

const docstringDelimiter = `"""`

// RenderSolution renders the documented function: the docstring indented under
// the signature and each comment on its own line above the body line it
// annotates, at that line's indentation.
func RenderSolution(layout Layout, docstring string, comments map[int]string) string {
	indent := layout.Indent()

	var b strings.Builder

	b.WriteString(layout.Signature)

	if doc := strings.TrimSpace(docstring); doc != "" {
		b.WriteString("\n" + indent + docstringDelimiter)

		for _, line := range dedent(doc) {
			b.WriteString("\n")

			if line != "" {
				b.WriteString(indent + line)
			}
		}

		b.WriteString("\n" + indent + docstringDelimiter)
	}

	for _, line := range layout.Body {
		if comment, ok := comments[line.Number]; ok && strings.TrimSpace(comment) != "" {
			b.WriteString("\n" + leadingWhitespace(line.Text) + strings.TrimSpace(comment))
		}

		b.WriteString("\n" + line.Text)
	}

	return b.String()
}

// dedent splits a trimmed docstring into lines and removes the indentation
// shared by every non-blank line after the first. Deeper indentation is kept.
func dedent(doc string) []string {
	lines := strings.Split(doc, "\n")

	common := -1

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if n := len(leadingWhitespace(line)); common < 0 || n < common {
			common = n
		}
	}

	for i, line := range lines {
		line = strings.TrimRight(line, " \t")

		switch {
		case line == "":
		case i == 0:
			line = strings.TrimSpace(line)
		case common > 0:
			line = line[common:]
		}

		lines[i] = line
	}

	return lines
}

// ExampleFallback is shown on the example tab when no solution is authored.
func ExampleFallback(functionName string) string {
	return fmt.Sprintf("No example solution is available for %s().", functionName)
}
