package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mouse-blink/docent/internal/domain"
	"github.com/mouse-blink/docent/internal/model"
)

func (m tutorModel) View() string {
	sections := []string{
		m.headerView(),
		renderMarkdown(stageInstructions(m.session.Stage), m.width-4),
	}

	box := boxStyle.Width(max(m.width-2, 20))

	switch m.session.Stage {
	case model.StageBrowsing:
		sections = append(sections, m.tabsView())

		if m.session.ActiveFile == model.DirectoryID {
			sections = append(sections, box.Render(m.files.View()))
		} else {
			sections = append(sections, box.Render(m.code.View()))
		}
	case model.StageFunctionSelected:
		sections = append(sections, m.tabsView(), m.modalView())
	case model.StageDocstringEditing:
		sections = append(sections, box.Render(m.code.View()), box.Render(m.editor.View()))
	case model.StageDocstringValidation, model.StageLineSelection:
		sections = append(sections, box.Render(m.code.View()))
	case model.StageInlineCommenting:
		sections = append(sections, box.Render(m.code.View()))

		if popup := m.suggestionsView(); popup != "" {
			sections = append(sections, popup)
		}

		if m.session.EditingLine != model.NoLine {
			sections = append(sections, m.comment.View())
		}
	case model.StageSolutionComparison:
		sections = append(sections, m.comparisonTabsView(), box.Render(m.code.View()))
	}

	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}

	sections = append(sections, m.helpView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m tutorModel) headerView() string {
	title := titleStyle.Render("docent · docstrings & inline comments")
	step := mutedStyle.Render(fmt.Sprintf(" step %d/%d ", int(m.session.Stage)+1, len(model.Stages)))

	return lipgloss.JoinHorizontal(lipgloss.Center, title, step, m.progress.ViewAs(m.screen.Progress))
}

func (m tutorModel) tabsView() string {
	tabs := make([]string, 0, len(m.screen.Tabs))

	for _, tab := range m.screen.Tabs {
		style := tabStyle
		if tab.Active {
			style = activeTabStyle
		}

		tabs = append(tabs, style.Render(tab.Title))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m tutorModel) comparisonTabsView() string {
	yours, example := activeTabStyle, tabStyle
	if m.screen.ComparisonTab == model.TabExample {
		yours, example = tabStyle, activeTabStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, yours.Render("Your Solution"), example.Render("Example Solution"))
}

func (m tutorModel) modalView() string {
	name := ""
	if m.screen.Candidate != nil {
		name = m.screen.Candidate.Name
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		headingStyle.Render("Add Documentation"),
		"",
		fmt.Sprintf("Write a docstring for %s()?", codeSpanStyle.Render(name)),
		"",
		mutedStyle.Render("enter confirm · esc cancel"),
	)

	return lipgloss.Place(max(m.width, 20), m.code.Height, lipgloss.Center, lipgloss.Center, modalStyle.Render(body))
}

func (m tutorModel) suggestionsView() string {
	if m.session.SuggestionLine == model.NoLine {
		return ""
	}

	lines := []string{headingStyle.Render(fmt.Sprintf("Suggestions for line %d", m.session.SuggestionLine))}
	for i, option := range m.screen.Suggestions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, commentStyle.Render(option)))
	}

	lines = append(lines, mutedStyle.Render("w. write your own"))

	return popupStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m tutorModel) helpView() string {
	bindings := m.keys.stageKeys(m.session.Stage, m.typing())
	if m.fullHelp {
		return m.help.FullHelpView([][]key.Binding{bindings, {m.keys.Script, m.keys.Help, m.keys.Quit}})
	}

	return m.help.ShortHelpView(bindings)
}

// syncViewport redraws the code view and keeps the cursor row visible.
func (m *tutorModel) syncViewport() {
	content, cursorRow := m.codeContent()
	m.code.SetContent(content)

	if cursorRow < 0 {
		return
	}

	switch {
	case cursorRow < m.code.YOffset:
		m.code.SetYOffset(cursorRow)
	case cursorRow >= m.code.YOffset+m.code.Height:
		m.code.SetYOffset(cursorRow - m.code.Height + 1)
	}
}

// codeContent renders the code view and returns the row holding the cursor,
// or -1 when no row has it.
func (m tutorModel) codeContent() (string, int) {
	switch m.session.Stage {
	case model.StageBrowsing, model.StageFunctionSelected:
		return m.fileContent()
	case model.StageSolutionComparison:
		return shownSolution(m.screen), -1
	default:
		return m.functionContent()
	}
}

func (m tutorModel) fileContent() (string, int) {
	if !m.screen.Supported || m.session.ActiveFile == model.DirectoryID {
		return mutedStyle.Render(m.screen.Content), -1
	}

	lines := strings.Split(m.screen.Content, "\n")
	highlighted := m.highlighted[m.session.ActiveFile]

	from, to := m.anchor, m.fileCursor
	if from > to {
		from, to = to, from
	}

	out := make([]string, len(lines))

	for i, line := range lines {
		number := lineNumberStyle.Render(fmt.Sprintf("%4d ", i+1))
		marker := "  "

		if m.anchor >= 0 && i >= from && i <= to {
			marker = selectedStyle.Render("│ ")
		}

		text := line
		if i < len(highlighted) {
			text = highlighted[i]
		}

		if i == m.fileCursor {
			text = cursorStyle.Render(line)
		}

		out[i] = number + marker + text
	}

	return strings.Join(out, "\n"), m.fileCursor
}

//nolint:cyclop // row styling depends on stage and row kind
func (m tutorModel) functionContent() (string, int) {
	if !m.screen.HasLayout {
		return "", -1
	}

	stage := m.session.Stage
	selected := m.session.SelectedLines
	committed := m.session.CommentedLines
	withCursor := stage == model.StageLineSelection || stage == model.StageInlineCommenting

	rows := functionRows(m.screen.Layout, m.screen.Comments)
	out := make([]string, 0, len(rows)+12)
	cursorRow := -1

	for _, row := range rows {
		number := "     "
		if row.number != model.NoLine {
			number = fmt.Sprintf("%4d ", row.number)
		}

		mark := "    "
		text := row.text

		switch row.kind {
		case rowDelimiter, rowDocstring:
			text = docstringStyle.Render(text)
		case rowComment:
			if committed.Has(row.target) {
				mark = commentStyle.Render(" ✓  ")
				text = commentStyle.Render(text)
			} else {
				mark = draftStyle.Render(" ✎  ")
				text = draftStyle.Render(text)
			}
		case rowBody:
			switch {
			case stage == model.StageLineSelection && !row.blank() && selected.Has(row.number):
				mark = selectedStyle.Render("[x] ")
			case stage == model.StageLineSelection && !row.blank():
				mark = mutedStyle.Render("[ ] ")
			case stage == model.StageInlineCommenting && selected.Has(row.number):
				text = selectedStyle.Render(text)
			}
		case rowSignature:
		}

		if withCursor && row.kind != rowComment && row.number == m.lineCursor {
			cursorRow = len(out)
			text = cursorStyle.Render(row.text)
		}

		out = append(out, lineNumberStyle.Render(number)+mark+text)
	}

	if stage == model.StageDocstringValidation {
		out = append(out, "", m.validationView())
	}

	return strings.Join(out, "\n"), cursorRow
}

func (m tutorModel) validationView() string {
	lines := make([]string, 0, len(m.screen.Questions)+len(m.screen.Feedback)+2)

	for i, q := range m.screen.Questions {
		pointer := "  "
		if i == m.question {
			pointer = selectedStyle.Render("› ")
		}

		answer := mutedStyle.Render(fmt.Sprintf("%-10s", q.Answer.String()))
		if q.Answer == model.AnswerYes {
			answer = readyStyle.Render(fmt.Sprintf("%-10s", q.Answer.String()))
		} else if q.Answer != model.Unanswered {
			answer = feedbackStyle.Render(fmt.Sprintf("%-10s", q.Answer.String()))
		}

		lines = append(lines, pointer+answer+q.Prompt)
	}

	for _, msg := range m.screen.Feedback {
		lines = append(lines, feedbackStyle.Render("! "+msg.Text))
	}

	readiness := m.screen.Readiness.Message()
	if m.screen.Readiness == domain.ReadinessReady {
		lines = append(lines, "", readyStyle.Render(readiness))
	} else {
		lines = append(lines, "", mutedStyle.Render(readiness))
	}

	return strings.Join(lines, "\n")
}
