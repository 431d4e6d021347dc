package controller

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/docent/internal/domain"
	m "github.com/mouse-blink/docent/internal/model"
)

// SimpleUI implements UI with line commands and the cobra command's output.
type SimpleUI struct {
	cmd  *cobra.Command
	opts options
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, opts ...Option) *SimpleUI {
	return &SimpleUI{cmd: cmd, opts: newOptions(opts...)}
}

// Start runs the command loop until quit or end of input.
func (s *SimpleUI) Start(tut domain.Tutorial, session m.Session, options ...domain.StartOption) (m.Session, error) {
	cfg := domain.NewStartConfig(options...)

	input := cfg.Input
	if input == nil {
		input = s.cmd.InOrStdin()
	}

	s.printScreen(tut.Screen(session))

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if cfg.Echo {
			s.printf("> %s\n", line)
		}

		command, err := parseCommand(tut, session, line)
		if err != nil {
			s.printf("error: %v\n", err)
			continue
		}

		switch command.kind {
		case commandQuit:
			return session, nil
		case commandHelp:
			s.printf("%s\n", commandHelpText)
		case commandShow:
			s.printScreen(tut.Screen(session))
		case commandCopy:
			s.copySolution(tut.Screen(session))
		case commandActions:
			session = s.apply(tut, session, command.actions)
		}
	}

	if err := scanner.Err(); err != nil {
		return session, fmt.Errorf("failed to read commands: %w", err)
	}

	return session, nil
}

// apply runs actions in order. Either all of them take effect or none do.
func (s *SimpleUI) apply(tut domain.Tutorial, session m.Session, actions []domain.Action) m.Session {
	next := session

	for _, action := range actions {
		var err error

		next, err = tut.Apply(next, action)
		if err != nil {
			s.printError(err)
			return session
		}
	}

	s.printScreen(tut.Screen(next))

	return next
}

func (s *SimpleUI) printError(err error) {
	var guard *domain.GuardError
	if errors.As(err, &guard) {
		s.printf("blocked: %s\n", guard.Reason)
		return
	}

	s.printf("error: %v\n", err)
}

func (s *SimpleUI) copySolution(screen domain.Screen) {
	if screen.Stage != m.StageSolutionComparison {
		s.printf("error: nothing to copy before the comparison\n")
		return
	}

	if s.opts.clipboard == nil {
		s.printf("error: clipboard is not available\n")
		return
	}

	if err := s.opts.clipboard.WriteAll(shownSolution(screen)); err != nil {
		s.printf("error: %v\n", err)
		return
	}

	s.printf("copied %s solution\n", screen.ComparisonTab)
}

func shownSolution(screen domain.Screen) string {
	if screen.ComparisonTab == m.TabExample {
		return screen.ExampleSolution
	}

	return screen.YourSolution
}

// DisplayCatalog prints the sample project as a table.
func (s *SimpleUI) DisplayCatalog(files []m.ScriptFile) error {
	s.printf("\n%s", catalogTable(files))
	return nil
}

// DisplayFile prints a highlighted file and the functions found in it.
func (s *SimpleUI) DisplayFile(file m.ScriptFile, functions []m.ExtractedFunction) error {
	content := file.Content
	if file.Kind == m.KindSource {
		content = s.opts.highlighter.Highlight(context.Background(), content)
	}

	s.printf("%s (%s)\n\n", file.DisplayName, file.Label())
	s.printf("%s\n", numbered(content))

	if file.Kind != m.KindSource {
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Function", "Lines", "Length"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT})

	for _, fn := range functions {
		table.Append([]string{
			fn.Name + "()",
			fmt.Sprintf("%d-%d", fn.StartLine+1, fn.EndLine+1),
			fmt.Sprintf("%d", fn.LineCount()),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Functions %d", len(functions)), "", ""})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func catalogTable(files []m.ScriptFile) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Type", "Folder"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, file := range files {
		folder := file.Folder
		if folder == "" {
			folder = "."
		}

		table.Append([]string{file.ID, file.Label(), folder})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(files)), "", ""})
	table.Render()

	return tableBuffer.String()
}

func numbered(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, len(lines))

	for i, line := range lines {
		out[i] = fmt.Sprintf("%4d  %s", i+1, line)
	}

	return strings.Join(out, "\n")
}

func (s *SimpleUI) printScreen(screen domain.Screen) {
	w := s.cmd.OutOrStdout()
	writePlainScreen(w, screen)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

//nolint:cyclop // one section per stage
func writePlainScreen(w io.Writer, screen domain.Screen) {
	p := func(format string, args ...interface{}) {
		_, _ = fmt.Fprintf(w, format, args...)
	}

	p("\n== %s (%d/%d) ==\n", stageTitle(screen.Stage), int(screen.Stage)+1, len(m.Stages))

	switch screen.Stage {
	case m.StageBrowsing:
		p("%s\n\n", plainTabs(screen.Tabs))

		switch {
		case screen.Catalog != nil:
			p("%s", catalogTable(screen.Catalog))
		default:
			p("%s\n", numbered(screen.Content))

			if len(screen.Functions) > 0 {
				p("\nFunctions:\n")

				for _, fn := range screen.Functions {
					p("  %s() at line %d\n", fn.Name, fn.StartLine+1)
				}
			}
		}
	case m.StageFunctionSelected:
		p("Add documentation to %s()? confirm | cancel\n", screen.Candidate.Name)
	case m.StageDocstringEditing:
		writePlainRows(w, screen, nil)

		draft := screen.Docstring
		if strings.TrimSpace(draft) == "" {
			draft = "(empty)"
		}

		p("\nDocstring draft:\n%s\n", indentText(draft, "  "))
		p("submit: %s\n", enabled(screen.CanSubmit))
	case m.StageDocstringValidation:
		writePlainRows(w, screen, nil)
		p("\n")

		for _, q := range screen.Questions {
			p("  %-10s %-10s %s\n", q.Key, "["+q.Answer.String()+"]", q.Prompt)
		}

		for _, msg := range screen.Feedback {
			p("  ! %s: %s\n", msg.Key, msg.Text)
		}

		p("%s\n", screen.Readiness.Message())
		p("continue: %s  revise: %s\n", enabled(screen.CanContinueToLines), enabled(screen.CanRevise))
	case m.StageLineSelection:
		selected := m.NewLineSet(screen.SelectedLines...)

		writePlainRows(w, screen, func(r codeRow) string {
			switch {
			case r.kind != rowBody || r.blank():
				return "   "
			case selected.Has(r.number):
				return "[x]"
			default:
				return "[ ]"
			}
		})
		p("\nselected lines: %v  continue: %s\n", screen.SelectedLines, enabled(screen.CanContinueToComments))
	case m.StageInlineCommenting:
		committed := m.NewLineSet(screen.CommentedLines...)

		writePlainRows(w, screen, func(r codeRow) string {
			switch {
			case r.kind == rowComment && committed.Has(r.target):
				return " ✓ "
			case r.kind == rowComment:
				return " ✎ "
			default:
				return "   "
			}
		})

		if screen.SuggestionLine != m.NoLine {
			p("\nSuggestions for line %d:\n", screen.SuggestionLine)

			for i, option := range screen.Suggestions {
				p("  %d. %s\n", i+1, option)
			}

			p("  or: write %d <your comment>\n", screen.SuggestionLine)
		}

		if screen.EditingLine != m.NoLine {
			p("\nWriting comment for line %d: %s\n", screen.EditingLine, screen.EditBuffer)
		}

		p("\ncompare: %s\n", enabled(screen.CanCompare))
	case m.StageSolutionComparison:
		yours, example := "[Your Solution]", " Example Solution "
		if screen.ComparisonTab == m.TabExample {
			yours, example = " Your Solution ", "[Example Solution]"
		}

		p("%s %s\n\n%s\n", yours, example, shownSolution(screen))
	}
}

func writePlainRows(w io.Writer, screen domain.Screen, mark func(codeRow) string) {
	if !screen.HasLayout {
		return
	}

	for _, row := range functionRows(screen.Layout, screen.Comments) {
		prefix := ""
		if mark != nil {
			prefix = mark(row) + " "
		}

		number := "    "
		if row.number != m.NoLine {
			number = fmt.Sprintf("%4d", row.number)
		}

		_, _ = fmt.Fprintf(w, "%s%s  %s\n", prefix, number, row.text)
	}
}

func plainTabs(tabs []domain.Tab) string {
	parts := make([]string, len(tabs))

	for i, tab := range tabs {
		if tab.Active {
			parts[i] = "[" + tab.Title + "]"
		} else {
			parts[i] = " " + tab.Title + " "
		}
	}

	return strings.Join(parts, "|")
}

func stageTitle(stage m.Stage) string {
	switch stage {
	case m.StageBrowsing:
		return "Browse the project"
	case m.StageFunctionSelected:
		return "Function selected"
	case m.StageDocstringEditing:
		return "Write a docstring"
	case m.StageDocstringValidation:
		return "Check your docstring"
	case m.StageLineSelection:
		return "Choose lines to comment"
	case m.StageInlineCommenting:
		return "Write inline comments"
	case m.StageSolutionComparison:
		return "Compare solutions"
	default:
		return stage.String()
	}
}

func enabled(ok bool) string {
	if ok {
		return "enabled"
	}

	return "disabled"
}

func indentText(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}

	return strings.Join(lines, "\n")
}
