package controller

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/docent/internal/domain"
	m "github.com/mouse-blink/docent/internal/model"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func send(tm tutorModel, msg tea.Msg) (tutorModel, tea.Cmd) {
	updated, cmd := tm.Update(msg)
	return updated.(tutorModel), cmd
}

func press(tm tutorModel, keys ...string) (tutorModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		tm, cmd = send(tm, keyMsg(k))
	}

	return tm, cmd
}

func repeat(k string, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = k
	}

	return keys
}

func newTestModel(t *testing.T, open string, opts ...Option) tutorModel {
	t.Helper()

	tut := sampleTutorial(t)
	s := tut.New()

	if open != "" {
		var err error

		s, err = tut.Apply(s, domain.OpenFile{ID: open})
		require.NoError(t, err)
	}

	opts = append([]Option{WithTimings(10*time.Millisecond, 20*time.Millisecond)}, opts...)

	return newTutorModel(tut, s, newOptions(opts...))
}

// toValidation documents load_nd2 in loading.py through the keyboard.
func toValidation(t *testing.T, opts ...Option) tutorModel {
	t.Helper()

	tm := newTestModel(t, "loading.py", opts...)
	tm, _ = press(tm, repeat("down", 11)...)
	tm, _ = press(tm, "enter")
	require.Equal(t, m.StageFunctionSelected, tm.session.Stage, tm.status)

	tm, _ = press(tm, "enter")
	require.Equal(t, m.StageDocstringEditing, tm.session.Stage)

	tm, _ = send(tm, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Loads a file.")})
	require.Equal(t, "Loads a file.", tm.session.DocstringText)

	tm, _ = press(tm, "ctrl+s")
	require.Equal(t, m.StageDocstringValidation, tm.session.Stage, tm.status)

	return tm
}

// toCommenting flags the raw_data line of load_nd2 and moves on to comments.
func toCommenting(t *testing.T, opts ...Option) tutorModel {
	t.Helper()

	tm := toValidation(t, opts...)
	tm, _ = press(tm, "y", "y", "y", "y", "enter")
	require.Equal(t, m.StageLineSelection, tm.session.Stage, tm.status)

	tm, _ = press(tm, "space", "enter")
	require.Equal(t, m.StageInlineCommenting, tm.session.Stage, tm.status)

	return tm
}

func TestTutorModel_FullRun(t *testing.T) {
	clip := &fakeClipboard{}
	tm := toCommenting(t, WithClipboard(clip))

	if tm.session.SuggestionLine != 5 {
		t.Fatalf("suggestions shown for line %d, want 5", tm.session.SuggestionLine)
	}

	tm, _ = press(tm, "1", "c")
	if tm.session.Stage != m.StageSolutionComparison {
		t.Fatalf("stage = %v, want comparison (status %q)", tm.session.Stage, tm.status)
	}

	if !strings.Contains(tm.View(), "# Open the .nd2 file with the ND2 reader.") {
		t.Fatalf("View missing the chosen comment")
	}

	tm, _ = press(tm, "tab")
	if tm.session.ComparisonTab != m.TabExample {
		t.Fatalf("tab did not switch to the example")
	}

	tm, cmd := press(tm, "y")
	if cmd == nil {
		t.Fatalf("copy returned no command")
	}

	tm, _ = send(tm, cmd())
	assert.Contains(t, clip.text, "def load_nd2(file_path):")
	assert.Equal(t, "Copied example solution to the clipboard", tm.status)

	tm, _ = press(tm, "r")
	assert.Equal(t, m.StageBrowsing, tm.session.Stage)
	assert.Len(t, tm.session.SavedDocstrings, 1)
}

func TestTutorModel_Browsing(t *testing.T) {
	t.Run("enter opens the highlighted catalog entry", func(t *testing.T) {
		tm := newTestModel(t, "")
		first := tm.tutorial.Content().Files()[0].ID

		tm, _ = press(tm, "enter")
		assert.Equal(t, first, tm.session.ActiveFile)
	})

	t.Run("v marks a selection", func(t *testing.T) {
		tm := newTestModel(t, "main.py")
		require.Len(t, tm.screen.Functions, 1)
		fn := tm.screen.Functions[0]

		tm, _ = press(tm, repeat("down", fn.StartLine)...)
		tm, _ = press(tm, "v")
		tm, _ = press(tm, repeat("down", fn.EndLine-fn.StartLine)...)
		assert.Equal(t, fn.EndLine, tm.fileCursor)

		tm, _ = press(tm, "v")

		require.Equal(t, m.StageFunctionSelected, tm.session.Stage, tm.status)
		assert.Equal(t, "load_file", tm.session.Candidate.Name)
		assert.Equal(t, -1, tm.anchor)
	})

	t.Run("a short selection is rejected", func(t *testing.T) {
		tm := newTestModel(t, "main.py")

		tm, _ = press(tm, repeat("down", 5)...)
		tm, _ = press(tm, "v", "down", "v")

		assert.Equal(t, m.StageBrowsing, tm.session.Stage)
		assert.Nil(t, tm.session.Candidate)
		assert.Contains(t, tm.status, "does not cover a function")
		assert.Equal(t, -1, tm.anchor)
	})

	t.Run("esc clears the mark", func(t *testing.T) {
		tm := newTestModel(t, "main.py")

		tm, _ = press(tm, "v")
		assert.Equal(t, 0, tm.anchor)

		tm, _ = press(tm, "esc")
		assert.Equal(t, -1, tm.anchor)
	})

	t.Run("enter on a plain line is blocked", func(t *testing.T) {
		tm := newTestModel(t, "main.py")

		tm, _ = press(tm, "enter")
		assert.Equal(t, m.StageBrowsing, tm.session.Stage)
		assert.Equal(t, "line 0 is not a function definition", tm.status)
		assert.Contains(t, tm.View(), "line 0 is not a function definition")
	})

	t.Run("tabs cycle and close", func(t *testing.T) {
		tm := newTestModel(t, "loading.py")
		require.Equal(t, []string{m.DirectoryID, "main.py", "loading.py"}, tm.session.OpenFiles)

		tm, _ = press(tm, "tab")
		assert.Equal(t, m.DirectoryID, tm.session.ActiveFile)

		tm, _ = press(tm, "x")
		assert.Equal(t, "the project directory cannot be closed", tm.status)

		tm, _ = press(tm, "tab", "x")
		assert.Equal(t, []string{m.DirectoryID, "loading.py"}, tm.session.OpenFiles)
	})

	t.Run("switching files resets the cursor", func(t *testing.T) {
		tm := newTestModel(t, "loading.py")

		tm, _ = press(tm, "down", "down")
		assert.Equal(t, 2, tm.fileCursor)

		tm, _ = press(tm, "tab")
		assert.Equal(t, 0, tm.fileCursor)
	})

	t.Run("cancel the function dialog", func(t *testing.T) {
		tm := newTestModel(t, "main.py")

		tm, _ = press(tm, repeat("down", 5)...)
		tm, _ = press(tm, "enter")
		require.Contains(t, tm.View(), "Add Documentation")

		tm, _ = press(tm, "esc")
		assert.Equal(t, m.StageBrowsing, tm.session.Stage)
		assert.Nil(t, tm.session.Candidate)
	})
}

func TestTutorModel_Highlight(t *testing.T) {
	tm := newTestModel(t, "loading.py")

	cmd := tm.Init()
	if cmd == nil {
		t.Fatalf("Init() did not request a highlight for the active source file")
	}

	if tm.Init() != nil {
		t.Fatalf("Init() requested a highlight already in flight")
	}

	msg, ok := cmd().(highlightMsg)
	require.True(t, ok)
	assert.Equal(t, "loading.py", msg.fileID)
	assert.Equal(t, tm.tutorial.Content().FileContent("loading.py"), msg.text)

	tm, _ = send(tm, highlightMsg{fileID: "loading.py", text: "A\nB\n"})
	assert.Equal(t, []string{"A", "B"}, tm.highlighted["loading.py"])
	assert.False(t, tm.pending["loading.py"])
}

func TestTutorModel_Validation(t *testing.T) {
	t.Run("continue needs every answer", func(t *testing.T) {
		tm := toValidation(t)

		tm, _ = press(tm, "enter")
		assert.Equal(t, m.StageDocstringValidation, tm.session.Stage)
		assert.Equal(t, "every question must be answered yes", tm.status)
	})

	t.Run("answers move the focus", func(t *testing.T) {
		tm := toValidation(t)

		tm, _ = press(tm, "y", "n")
		assert.Equal(t, m.AnswerYes, tm.session.Answer(m.QuestionDescribes))
		assert.Equal(t, m.AnswerNo, tm.session.Answer(m.QuestionInputs))
		assert.Equal(t, 2, tm.question)

		tm, _ = press(tm, "up", "u")
		assert.Equal(t, m.AnswerUnsure, tm.session.Answer(m.QuestionInputs))

		content, _ := tm.codeContent()
		assert.Contains(t, content, domain.ReadinessNeedsRevision.Message())
	})

	t.Run("revise returns to the editor with the draft", func(t *testing.T) {
		tm := toValidation(t)

		tm, _ = press(tm, "n", "r")
		require.Equal(t, m.StageDocstringEditing, tm.session.Stage)
		assert.Equal(t, "Loads a file.", tm.editor.Value())
		assert.True(t, tm.editor.Focused())
	})

	t.Run("scrolls after the delay", func(t *testing.T) {
		tm := toValidation(t)
		tm, _ = send(tm, tea.WindowSizeMsg{Width: 80, Height: 20})

		if tm.code.AtBottom() {
			t.Fatalf("validation view should not start scrolled")
		}

		tm, _ = send(tm, scrollToValidationMsg{visit: tm.validation - 1})
		assert.False(t, tm.code.AtBottom(), "a stale scroll must be ignored")

		tm, _ = send(tm, scrollToValidationMsg{visit: tm.validation})
		assert.True(t, tm.code.AtBottom())
	})

	t.Run("back to script", func(t *testing.T) {
		tm := toValidation(t)

		tm, _ = press(tm, "ctrl+b")
		assert.Equal(t, m.StageBrowsing, tm.session.Stage)
		assert.Equal(t, "loading.py", tm.session.ActiveFile)
	})
}

func TestTutorModel_LineSelection(t *testing.T) {
	tm := toValidation(t)
	tm, _ = press(tm, "y", "y", "y", "y", "enter")

	assert.Equal(t, 5, tm.lineCursor)

	tm, _ = press(tm, "enter")
	assert.Equal(t, "select at least one line", tm.status)

	tm, _ = press(tm, "down", "space", "up", "space")
	assert.Equal(t, []int{5, 6}, tm.session.SelectedLines.Sorted())

	tm, _ = press(tm, "space")
	assert.Equal(t, []int{6}, tm.session.SelectedLines.Sorted())

	tm, _ = press(tm, "b")
	assert.Equal(t, m.StageDocstringValidation, tm.session.Stage)
	assert.Zero(t, tm.session.SelectedLines.Len())
}

func TestTutorModel_HoverHide(t *testing.T) {
	t.Run("leaving a flagged line hides after the delay", func(t *testing.T) {
		tm := toCommenting(t)
		require.Equal(t, 5, tm.session.SuggestionLine)

		tm, cmd := press(tm, "down")
		require.NotNil(t, cmd)
		assert.Equal(t, 5, tm.session.SuggestionLine, "hide must wait for the delay")

		tm, _ = send(tm, hideSuggestionsMsg{seq: tm.hoverSeq})
		assert.Equal(t, m.NoLine, tm.session.SuggestionLine)
	})

	t.Run("returning cancels the pending hide", func(t *testing.T) {
		tm := toCommenting(t)

		tm, _ = press(tm, "down")
		pending := tm.hoverSeq

		tm, _ = press(tm, "up")
		tm, _ = send(tm, hideSuggestionsMsg{seq: pending})
		assert.Equal(t, 5, tm.session.SuggestionLine)
	})

	t.Run("esc closes the popup", func(t *testing.T) {
		tm := toCommenting(t)

		tm, _ = press(tm, "esc")
		assert.Equal(t, m.NoLine, tm.session.SuggestionLine)
		assert.NotContains(t, tm.View(), "Suggestions for line")
	})

	t.Run("choosing needs an open popup", func(t *testing.T) {
		tm := toCommenting(t)

		tm, _ = press(tm, "esc", "1")
		assert.Equal(t, "Move onto a flagged line to see suggestions", tm.status)
	})
}

func TestTutorModel_FreeText(t *testing.T) {
	tm := toCommenting(t)

	tm, _ = press(tm, "w")
	require.Equal(t, 5, tm.session.EditingLine)
	assert.Equal(t, "# ", tm.comment.Value())

	tm, _ = send(tm, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Read it.")})
	assert.Equal(t, "# Read it.", tm.session.EditBuffer)

	// q is text while a comment is being written.
	tm, _ = press(tm, "q")
	assert.Equal(t, "# Read it.q", tm.session.EditBuffer)

	tm, _ = press(tm, "enter")
	assert.Equal(t, m.NoLine, tm.session.EditingLine)
	assert.Equal(t, "# Read it.q", tm.session.InlineComments[5])

	tm, _ = press(tm, "w", "esc")
	assert.Equal(t, m.NoLine, tm.session.EditingLine)
	assert.Equal(t, "# Read it.q", tm.session.InlineComments[5])
}

func TestTutorModel_CompareBlocked(t *testing.T) {
	tm := toCommenting(t)

	tm, _ = press(tm, "c")
	assert.Equal(t, m.StageInlineCommenting, tm.session.Stage)
	assert.Equal(t, "line 5 still needs a comment", tm.status)
}

func TestTutorModel_Quit(t *testing.T) {
	tm := newTestModel(t, "")

	_, cmd := press(tm, "q")
	if cmd == nil {
		t.Fatalf("q returned no command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestTutorModel_HelpToggle(t *testing.T) {
	tm := newTestModel(t, "")

	tm, _ = send(tm, tea.KeyMsg{Type: tea.KeyF1})
	if !tm.fullHelp {
		t.Fatalf("f1 did not open the full help")
	}

	if !strings.Contains(tm.View(), "back to script") {
		t.Fatalf("full help is missing the global bindings")
	}
}

func TestStep(t *testing.T) {
	lines := []int{5, 6, 9}

	tests := []struct {
		current, dir, want int
	}{
		{5, -1, 5},
		{5, 1, 6},
		{9, 1, 9},
		{7, 1, 9},
		{7, -1, 6},
		{1, -1, 5},
		{20, 1, 9},
	}

	for _, tt := range tests {
		if got := step(lines, tt.current, tt.dir); got != tt.want {
			t.Errorf("step(%v, %d, %d) = %d, want %d", lines, tt.current, tt.dir, got, tt.want)
		}
	}

	if got := step(nil, 3, 1); got != 3 {
		t.Errorf("step(nil) = %d, want 3", got)
	}
}
