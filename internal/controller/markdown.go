package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// renderMarkdown draws a small markdown subset with lipgloss styles: headings,
// paragraphs, lists, code blocks, emphasis and code spans. width <= 0 disables
// wrapping.
func renderMarkdown(source string, width int) string {
	src := []byte(source)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var blocks []string

	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		if rendered := renderBlock(block, src, width); rendered != "" {
			blocks = append(blocks, rendered)
		}
	}

	return strings.Join(blocks, "\n\n")
}

func renderBlock(node ast.Node, src []byte, width int) string {
	switch n := node.(type) {
	case *ast.Heading:
		return headingStyle.Render(renderInline(n, src))
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(renderInline(n, src), width)
	case *ast.List:
		return renderList(n, src, width)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return codeSpanStyle.Render(strings.TrimRight(blockLines(n, src), "\n"))
	case *ast.ThematicBreak:
		return mutedStyle.Render(strings.Repeat("─", max(width, 3)))
	default:
		return wrap(renderInline(n, src), width)
	}
}

func renderList(list *ast.List, src []byte, width int) string {
	var items []string

	index := list.Start
	if index == 0 {
		index = 1
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		bullet := "• "
		if list.IsOrdered() {
			bullet = fmt.Sprintf("%d. ", index)
			index++
		}

		var parts []string
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			parts = append(parts, renderBlock(child, src, width-lipgloss.Width(bullet)))
		}

		body := indentText(strings.Join(parts, "\n"), strings.Repeat(" ", lipgloss.Width(bullet)))
		items = append(items, bullet+strings.TrimLeft(body, " "))
	}

	return strings.Join(items, "\n")
}

func renderInline(node ast.Node, src []byte) string {
	var b strings.Builder

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(src))

			switch {
			case n.HardLineBreak():
				b.WriteString("\n")
			case n.SoftLineBreak():
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.CodeSpan:
			b.WriteString(codeSpanStyle.Render(renderInline(n, src)))
		case *ast.Emphasis:
			if n.Level >= 2 {
				b.WriteString(strongStyle.Render(renderInline(n, src)))
			} else {
				b.WriteString(emStyle.Render(renderInline(n, src)))
			}
		default:
			b.WriteString(renderInline(n, src))
		}
	}

	return b.String()
}

func blockLines(node ast.Node, src []byte) string {
	var b strings.Builder

	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(src))
	}

	return b.String()
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	return lipgloss.NewStyle().Width(width).Render(s)
}
