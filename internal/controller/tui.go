package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mouse-blink/docent/internal/domain"
	m "github.com/mouse-blink/docent/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	opts   options
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, opts ...Option) *TUI {
	return &TUI{output: output, opts: newOptions(opts...)}
}

// Start runs the tutorial full screen and returns the session as it was when
// the user quit.
func (t *TUI) Start(tut domain.Tutorial, session m.Session, options ...domain.StartOption) (m.Session, error) {
	cfg := domain.NewStartConfig(options...)

	programOptions := []tea.ProgramOption{tea.WithOutput(t.output), tea.WithAltScreen()}
	if cfg.Input != nil {
		programOptions = append(programOptions, tea.WithInput(cfg.Input))
	}

	t.opts.logger.Debug("starting interactive tutorial", "stage", session.Stage.String())

	final, err := tea.NewProgram(newTutorModel(tut, session, t.opts), programOptions...).Run()
	if err != nil {
		return session, fmt.Errorf("failed to run tutorial: %w", err)
	}

	if model, ok := final.(tutorModel); ok {
		return model.session, nil
	}

	return session, nil
}

// DisplayCatalog prints the sample project.
func (t *TUI) DisplayCatalog(files []m.ScriptFile) error {
	rows := []string{titleStyle.Render(domain.DirectoryTitle)}

	for _, file := range files {
		folder := file.Folder
		if folder == "" {
			folder = "."
		}

		rows = append(rows, fmt.Sprintf("%s %s %s",
			codeSpanStyle.Width(28).Render(file.ID),
			lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Width(14).Render(file.Label()),
			mutedStyle.Render(folder),
		))
	}

	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d files", len(files))))

	_, _ = fmt.Fprintln(t.output, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return nil
}

// DisplayFile prints a highlighted file followed by its functions.
func (t *TUI) DisplayFile(file m.ScriptFile, functions []m.ExtractedFunction) error {
	content := file.Content
	if file.Kind == m.KindSource {
		content = t.opts.highlighter.Highlight(context.Background(), content)
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = lineNumberStyle.Render(fmt.Sprintf("%4d ", i+1)) + line
	}

	header := titleStyle.Render(fmt.Sprintf("%s · %s", file.DisplayName, file.Label()))
	_, _ = fmt.Fprintln(t.output, lipgloss.JoinVertical(lipgloss.Left, header, boxStyle.Render(strings.Join(lines, "\n"))))

	if len(functions) == 0 {
		return nil
	}

	summary := make([]string, 0, len(functions))
	for _, fn := range functions {
		summary = append(summary, fmt.Sprintf("%s %s",
			headingStyle.Render(fn.Name+"()"),
			mutedStyle.Render(fmt.Sprintf("lines %d-%d", fn.StartLine+1, fn.EndLine+1)),
		))
	}

	_, _ = fmt.Fprintln(t.output, lipgloss.JoinVertical(lipgloss.Left, summary...))

	return nil
}
