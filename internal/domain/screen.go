package domain

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/docent/internal/model"
)

// DirectoryTitle is the title of the permanent project directory tab.
const DirectoryTitle = "PROJECT DIRECTORY"

// Tab is one browsing tab.
type Tab struct {
	ID     string
	Title  string
	Active bool
}

// QuestionState pairs a validation question with its current answer.
type QuestionState struct {
	Question
	Answer m.Answer
}

// Screen is everything a front-end needs to render a session.
type Screen struct {
	Stage    m.Stage
	Progress float64

	Tabs       []Tab
	ActiveFile string
	// Catalog is set while the directory tab is active.
	Catalog []m.ScriptFile
	// Content is the active file body, or a notice for unsupported kinds.
	Content   string
	Supported bool
	Functions []m.ExtractedFunction

	Candidate    *m.ExtractedFunction
	Function     *m.ExtractedFunction
	FunctionFile string
	Layout       Layout
	HasLayout    bool

	Docstring string
	Questions []QuestionState
	Feedback  []Message
	Readiness Readiness

	SelectedLines  []int
	CommentedLines []int
	Comments       map[int]string

	SuggestionLine int
	Suggestions    []string
	EditingLine    int
	EditBuffer     string

	ComparisonTab   m.ComparisonTab
	YourSolution    string
	ExampleSolution string
	HasExample      bool

	SavedDocstrings []m.SavedDocstring

	CanSubmit             bool
	CanRevise             bool
	CanContinueToLines    bool
	CanContinueToComments bool
	CanCompare            bool
	CanBackToScript       bool
	CanRestart            bool
}

// UnsupportedContent is shown for files the viewer cannot display.
func UnsupportedContent(kind m.FileKind) string {
	return fmt.Sprintf("Unsupported file type: %s", kind)
}

func (t *tutorial) Screen(s m.Session) Screen {
	screen := Screen{
		Stage:           s.Stage,
		Progress:        progress(s.Stage),
		ActiveFile:      s.ActiveFile,
		Candidate:       s.Candidate,
		Function:        s.SelectedFunction,
		FunctionFile:    s.FunctionFile,
		Docstring:       s.DocstringText,
		Feedback:        Feedback(s.ValidationAnswers),
		Readiness:       Summary(s.ValidationAnswers),
		SelectedLines:   s.SelectedLines.Sorted(),
		CommentedLines:  s.CommentedLines.Sorted(),
		Comments:        make(map[int]string, len(s.InlineComments)),
		SuggestionLine:  s.SuggestionLine,
		EditingLine:     s.EditingLine,
		EditBuffer:      s.EditBuffer,
		ComparisonTab:   s.ComparisonTab,
		SavedDocstrings: append([]m.SavedDocstring(nil), s.SavedDocstrings...),
	}

	for _, id := range s.OpenFiles {
		screen.Tabs = append(screen.Tabs, Tab{ID: id, Title: t.tabTitle(id), Active: id == s.ActiveFile})
	}

	t.projectFile(&screen, s.ActiveFile)

	for _, q := range questions {
		screen.Questions = append(screen.Questions, QuestionState{Question: q, Answer: s.Answer(q.Key)})
	}

	for line, text := range s.InlineComments {
		screen.Comments[line] = text
	}

	if s.SuggestionLine != m.NoLine {
		screen.Suggestions = t.Suggestions(s, s.SuggestionLine)
	}

	screen.Layout, screen.HasLayout = t.Layout(s)

	if s.Stage == m.StageSolutionComparison && screen.HasLayout {
		screen.YourSolution = RenderSolution(screen.Layout, docstringOf(screen.Layout), s.InlineComments)
		screen.ExampleSolution, screen.HasExample = t.content.ExampleSolution(s.FunctionFile, s.SelectedFunction.Name)

		if !screen.HasExample {
			screen.ExampleSolution = ExampleFallback(s.SelectedFunction.Name)
		}
	}

	screen.CanSubmit = t.Check(s, SubmitDocstring{}) == nil
	screen.CanRevise = t.Check(s, ReviseDocstring{}) == nil
	screen.CanContinueToLines = t.Check(s, ContinueToLines{}) == nil
	screen.CanContinueToComments = t.Check(s, ContinueToComments{}) == nil
	screen.CanCompare = t.Check(s, CompareSolutions{}) == nil
	screen.CanBackToScript = t.Check(s, BackToScript{}) == nil
	screen.CanRestart = s.Stage.Terminal()

	return screen
}

func (t *tutorial) tabTitle(id string) string {
	if id == m.DirectoryID {
		return DirectoryTitle
	}

	if file, ok := t.content.File(id); ok {
		return file.DisplayName
	}

	return id
}

func (t *tutorial) projectFile(screen *Screen, id string) {
	if id == m.DirectoryID {
		screen.Catalog = t.content.Files()
		screen.Supported = true

		return
	}

	file, ok := t.content.File(id)
	if !ok {
		screen.Content = UnsupportedContent("unknown")
		return
	}

	switch file.Kind {
	case m.KindSource:
		screen.Content = file.Content
		screen.Supported = true
		screen.Functions = ExtractFunctions(file.Content)
	case m.KindText, m.KindBinary:
		screen.Content = file.Content
		screen.Supported = true
	default:
		screen.Content = UnsupportedContent(file.Kind)
	}
}

func docstringOf(layout Layout) string {
	return strings.Join(layout.Docstring, "\n")
}

func progress(stage m.Stage) float64 {
	return float64(stage) / float64(len(m.Stages)-1)
}
