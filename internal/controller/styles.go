package controller

import "github.com/charmbracelet/lipgloss"

var (
	accentColor  = lipgloss.Color("6")
	mutedColor   = lipgloss.Color("8")
	warningColor = lipgloss.Color("11")
	errorColor   = lipgloss.Color("1")
	successColor = lipgloss.Color("2")

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(accentColor).
			Bold(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(warningColor).
			Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().Foreground(mutedColor)
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accentColor)
	selectedStyle   = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	docstringStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	commentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Italic(true)
	draftStyle      = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	feedbackStyle   = lipgloss.NewStyle().Foreground(warningColor)
	readyStyle      = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusStyle     = lipgloss.NewStyle().Foreground(errorColor)
	mutedStyle      = lipgloss.NewStyle().Foreground(mutedColor)

	headingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	codeSpanStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	strongStyle   = lipgloss.NewStyle().Bold(true)
	emStyle       = lipgloss.NewStyle().Italic(true)
)

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}
