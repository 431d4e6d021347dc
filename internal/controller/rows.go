package controller

import (
	"strings"

	"github.com/mouse-blink/docent/internal/domain"
)

type rowKind int

const (
	rowSignature rowKind = iota
	rowDelimiter
	rowDocstring
	rowBody
	rowComment
)

// codeRow is one rendered line of the numbered function view. Comment rows
// carry the number of the line they annotate in target and have no number.
type codeRow struct {
	number int
	target int
	text   string
	kind   rowKind
}

func (r codeRow) blank() bool {
	return strings.TrimSpace(r.text) == ""
}

// functionRows lays out the selected function with its synthetic numbers.
func functionRows(layout domain.Layout, comments map[int]string) []codeRow {
	indent := layout.Indent()

	rows := []codeRow{
		{number: domain.SignatureLine, text: layout.Signature, kind: rowSignature},
		{number: domain.OpenDelimiterLine, text: indent + `"""`, kind: rowDelimiter},
	}

	for i, line := range layout.Docstring {
		rows = append(rows, codeRow{number: domain.DocstringFirstLine + i, text: indent + line, kind: rowDocstring})
	}

	rows = append(rows, codeRow{number: layout.CloseDelimiterLine(), text: indent + `"""`, kind: rowDelimiter})

	for _, line := range layout.Body {
		if comment, ok := comments[line.Number]; ok {
			rows = append(rows, codeRow{
				target: line.Number,
				text:   leadingWhitespace(line.Text) + comment,
				kind:   rowComment,
			})
		}

		rows = append(rows, codeRow{number: line.Number, text: line.Text, kind: rowBody})
	}

	return rows
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
