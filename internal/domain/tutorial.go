package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mouse-blink/docent/internal/adapter"
	"github.com/mouse-blink/docent/internal/config"
	m "github.com/mouse-blink/docent/internal/model"
)

const (
	// PlaceholderComment seeds every newly selected line on entering inline commenting.
	PlaceholderComment = "# New Comment"
	// FreeTextPrefix is the initial free-text comment buffer.
	FreeTextPrefix = "# "

	defaultMainFile = "main.py"
)

// Tutorial is the guided docstring and inline comment exercise. Sessions are
// values: every operation takes a session and none of them mutates it.
type Tutorial interface {
	// New returns a fresh session browsing the project directory.
	New() m.Session
	// Apply runs action against s and returns the next session. On error the
	// returned session is s.
	Apply(s m.Session, action Action) (m.Session, error)
	// Check reports the error Apply would return without producing a session.
	Check(s m.Session, action Action) error
	// Layout numbers the selected function around its most recently saved docstring.
	Layout(s m.Session) (Layout, bool)
	// Suggestions returns the comment options for a synthetic body line.
	Suggestions(s m.Session, line int) []string
	// Functions extracts the functions of a source file.
	Functions(fileID string) []m.ExtractedFunction
	// Screen projects s into everything a front-end renders.
	Screen(s m.Session) Screen
	// Content returns the sample catalog the tutorial runs on.
	Content() adapter.ContentStore
}

// TutorialOption configures a Tutorial.
type TutorialOption func(*tutorial)

// WithHistoryPolicy sets what Restart does with saved docstrings.
func WithHistoryPolicy(policy config.HistoryPolicy) TutorialOption {
	return func(t *tutorial) {
		t.history = policy
	}
}

// WithClock sets the time source for saved docstring timestamps.
func WithClock(now func() time.Time) TutorialOption {
	return func(t *tutorial) {
		t.now = now
	}
}

// WithEntropy sets the entropy source for saved docstring ids.
func WithEntropy(entropy io.Reader) TutorialOption {
	return func(t *tutorial) {
		t.entropy = entropy
	}
}

// WithLogger sets the logger used for transition tracing.
func WithLogger(logger *slog.Logger) TutorialOption {
	return func(t *tutorial) {
		t.logger = logger
	}
}

type tutorial struct {
	content adapter.ContentStore
	history config.HistoryPolicy
	now     func() time.Time
	entropy io.Reader
	logger  *slog.Logger
}

// NewTutorial creates a Tutorial over the given content.
func NewTutorial(content adapter.ContentStore, opts ...TutorialOption) Tutorial {
	t := &tutorial{
		content: content,
		history: config.HistoryRetain,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *tutorial) Content() adapter.ContentStore {
	return t.content
}

func (t *tutorial) New() m.Session {
	return m.Session{
		Stage:             m.StageBrowsing,
		OpenFiles:         []string{m.DirectoryID, t.mainFile()},
		ActiveFile:        m.DirectoryID,
		ValidationAnswers: make(map[m.QuestionKey]m.Answer),
		SelectedLines:     m.NewLineSet(),
		CommentedLines:    m.NewLineSet(),
		InlineComments:    make(map[int]string),
		SuggestionLine:    m.NoLine,
		EditingLine:       m.NoLine,
		ComparisonTab:     m.TabYours,
	}
}

func (t *tutorial) mainFile() string {
	for _, file := range t.content.Files() {
		if file.Main {
			return file.ID
		}
	}

	return defaultMainFile
}

func (t *tutorial) Apply(s m.Session, action Action) (m.Session, error) {
	next := s.Clone()

	if err := t.reduce(&next, action); err != nil {
		var guard *GuardError
		if errors.As(err, &guard) {
			t.logger.Info("action blocked", "action", guard.Action, "stage", guard.Stage.String(), "reason", guard.Reason)
		} else {
			t.logger.Warn("action failed", "action", actionName(action), "error", err)
		}

		return s, err
	}

	t.logger.Debug("transition",
		"action", action.Name(),
		"from", s.Stage.String(),
		"to", next.Stage.String(),
	)

	return next, nil
}

// Check never generates saved docstring ids: SubmitDocstring is only guarded.
func (t *tutorial) Check(s m.Session, action Action) error {
	if a, ok := action.(SubmitDocstring); ok {
		return checkSubmit(&s, a)
	}

	probe := s.Clone()

	return t.reduce(&probe, action)
}

func actionName(action Action) string {
	if action == nil {
		return "<nil>"
	}

	return action.Name()
}

//nolint:gocyclo,cyclop // one case per action
func (t *tutorial) reduce(s *m.Session, action Action) error {
	switch a := action.(type) {
	case OpenFile:
		return t.openFile(s, a)
	case CloseFile:
		return t.closeFile(s, a)
	case ActivateFile:
		return t.activateFile(s, a)
	case SelectText:
		return t.selectText(s, a)
	case ClickLine:
		return t.clickLine(s, a)
	case CancelSelection:
		return t.cancelSelection(s, a)
	case ConfirmDocumentation:
		return t.confirmDocumentation(s, a)
	case EditDocstring:
		return t.editDocstring(s, a)
	case SubmitDocstring:
		return t.submitDocstring(s, a)
	case AnswerQuestion:
		return t.answerQuestion(s, a)
	case ReviseDocstring:
		return t.reviseDocstring(s, a)
	case ContinueToLines:
		return t.continueToLines(s, a)
	case ToggleLine:
		return t.toggleLine(s, a)
	case BackToValidation:
		return t.backToValidation(s, a)
	case ContinueToComments:
		return t.continueToComments(s, a)
	case ShowSuggestions:
		return t.showSuggestions(s, a)
	case HideSuggestions:
		return t.hideSuggestions(s, a)
	case ChooseSuggestion:
		return t.chooseSuggestion(s, a)
	case BeginFreeText:
		return t.beginFreeText(s, a)
	case EditFreeText:
		return t.editFreeText(s, a)
	case CommitFreeText:
		return t.commitFreeText(s, a)
	case CancelFreeText:
		return t.cancelFreeText(s, a)
	case BackToLines:
		return t.backToLines(s, a)
	case CompareSolutions:
		return t.compareSolutions(s, a)
	case SelectTab:
		return t.selectTab(s, a)
	case Restart:
		return t.restart(s, a)
	case BackToScript:
		return t.backToScript(s, a)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

func requireStage(s *m.Session, action Action, stage m.Stage) error {
	if s.Stage != stage {
		return blocked(action, s.Stage, "only available in %s", stage)
	}

	return nil
}

// Browsing.

func (t *tutorial) openFile(s *m.Session, a OpenFile) error {
	if err := requireStage(s, a, m.StageBrowsing); err != nil {
		return err
	}

	if a.ID != m.DirectoryID {
		if _, ok := t.content.File(a.ID); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFile, a.ID)
		}
	}

	if indexOf(s.OpenFiles, a.ID) < 0 {
		s.OpenFiles = append(s.OpenFiles, a.ID)
	}

	s.ActiveFile = a.ID

	return nil
}

func (t *tutorial) closeFile(s *m.Session, a CloseFile) error {
	if err := requireStage(s, a, m.StageBrowsing); err != nil {
		return err
	}

	if a.ID == m.DirectoryID {
		return blocked(a, s.Stage, "the project directory cannot be closed")
	}

	closed := indexOf(s.OpenFiles, a.ID)
	if closed < 0 {
		return blocked(a, s.Stage, "%s is not open", a.ID)
	}

	active := indexOf(s.OpenFiles, s.ActiveFile)
	s.OpenFiles = append(s.OpenFiles[:closed], s.OpenFiles[closed+1:]...)

	if active >= closed {
		active = max(0, active-1)
	}

	s.ActiveFile = s.OpenFiles[active]

	return nil
}

func (t *tutorial) activateFile(s *m.Session, a ActivateFile) error {
	if err := requireStage(s, a, m.StageBrowsing); err != nil {
		return err
	}

	if indexOf(s.OpenFiles, a.ID) < 0 {
		return blocked(a, s.Stage, "%s is not open", a.ID)
	}

	s.ActiveFile = a.ID

	return nil
}

func (t *tutorial) activeSource(s *m.Session, action Action) ([]m.ExtractedFunction, error) {
	file, ok := t.content.File(s.ActiveFile)
	if !ok || file.Kind != m.KindSource {
		return nil, blocked(action, s.Stage, "the active tab is not a source file")
	}

	return ExtractFunctions(file.Content), nil
}

func (t *tutorial) selectText(s *m.Session, a SelectText) error {
	if err := requireStage(s, a, m.StageBrowsing); err != nil {
		return err
	}

	functions, err := t.activeSource(s, a)
	if err != nil {
		return err
	}

	fn, ok := MatchSelection(functions, a.Selection)
	if !ok {
		return blocked(a, s.Stage, "the selection does not cover a function")
	}

	offer(s, fn)

	return nil
}

func (t *tutorial) clickLine(s *m.Session, a ClickLine) error {
	if err := requireStage(s, a, m.StageBrowsing); err != nil {
		return err
	}

	functions, err := t.activeSource(s, a)
	if err != nil {
		return err
	}

	fn, ok := FunctionAt(functions, a.Line)
	if !ok {
		return blocked(a, s.Stage, "line %d is not a function definition", a.Line)
	}

	offer(s, fn)

	return nil
}

func offer(s *m.Session, fn m.ExtractedFunction) {
	s.Candidate = &fn
	s.CandidateFile = s.ActiveFile
	s.Stage = m.StageFunctionSelected
}

// Function selection and docstring.

func (t *tutorial) cancelSelection(s *m.Session, a CancelSelection) error {
	if err := requireStage(s, a, m.StageFunctionSelected); err != nil {
		return err
	}

	s.Candidate = nil
	s.CandidateFile = ""
	s.Stage = m.StageBrowsing

	return nil
}

func (t *tutorial) confirmDocumentation(s *m.Session, a ConfirmDocumentation) error {
	if err := requireStage(s, a, m.StageFunctionSelected); err != nil {
		return err
	}

	resetProgress(s)

	s.SelectedFunction = s.Candidate
	s.FunctionFile = s.CandidateFile
	s.Candidate = nil
	s.CandidateFile = ""

	if saved, ok := s.SavedDocstring(s.FunctionFile, s.SelectedFunction.Name); ok {
		s.DocstringText = saved.Text
	}

	s.Stage = m.StageDocstringEditing

	return nil
}

func (t *tutorial) editDocstring(s *m.Session, a EditDocstring) error {
	if err := requireStage(s, a, m.StageDocstringEditing); err != nil {
		return err
	}

	s.DocstringText = a.Text

	return nil
}

func (t *tutorial) submitDocstring(s *m.Session, a SubmitDocstring) error {
	if err := checkSubmit(s, a); err != nil {
		return err
	}

	text := strings.TrimSpace(s.DocstringText)
	now := t.now()

	id, err := ulid.New(ulid.Timestamp(now), t.entropy)
	if err != nil {
		return fmt.Errorf("failed to generate docstring id: %w", err)
	}

	fn := s.SelectedFunction
	s.SavedDocstrings = removeSaved(s.SavedDocstrings, s.FunctionFile, fn.Name)
	s.SavedDocstrings = append(s.SavedDocstrings, m.SavedDocstring{
		ID:           id,
		FileName:     s.FunctionFile,
		FunctionName: fn.Name,
		StartLine:    fn.StartLine,
		EndLine:      fn.EndLine,
		Text:         text,
		Timestamp:    now,
	})

	s.ValidationAnswers = make(map[m.QuestionKey]m.Answer)
	s.Stage = m.StageDocstringValidation

	return nil
}

func checkSubmit(s *m.Session, a SubmitDocstring) error {
	if err := requireStage(s, a, m.StageDocstringEditing); err != nil {
		return err
	}

	if strings.TrimSpace(s.DocstringText) == "" {
		return blocked(a, s.Stage, "the docstring is empty")
	}

	return nil
}

func removeSaved(history []m.SavedDocstring, fileName, functionName string) []m.SavedDocstring {
	kept := history[:0]

	for _, entry := range history {
		if entry.FileName == fileName && entry.FunctionName == functionName {
			continue
		}

		kept = append(kept, entry)
	}

	return kept
}

// Validation.

func (t *tutorial) answerQuestion(s *m.Session, a AnswerQuestion) error {
	if err := requireStage(s, a, m.StageDocstringValidation); err != nil {
		return err
	}

	if !knownQuestion(a.Key) {
		return blocked(a, s.Stage, "unknown question %q", a.Key)
	}

	if a.Answer == m.Unanswered {
		delete(s.ValidationAnswers, a.Key)
		return nil
	}

	s.ValidationAnswers[a.Key] = a.Answer

	return nil
}

func (t *tutorial) reviseDocstring(s *m.Session, a ReviseDocstring) error {
	if err := requireStage(s, a, m.StageDocstringValidation); err != nil {
		return err
	}

	if !NeedsRevision(s.ValidationAnswers) {
		return blocked(a, s.Stage, "no answer asks for a revision")
	}

	s.ValidationAnswers = make(map[m.QuestionKey]m.Answer)
	s.Stage = m.StageDocstringEditing

	return nil
}

func (t *tutorial) continueToLines(s *m.Session, a ContinueToLines) error {
	if err := requireStage(s, a, m.StageDocstringValidation); err != nil {
		return err
	}

	if !AllYes(s.ValidationAnswers) {
		return blocked(a, s.Stage, "every question must be answered yes")
	}

	s.Stage = m.StageLineSelection

	return nil
}

// Line selection.

func (t *tutorial) toggleLine(s *m.Session, a ToggleLine) error {
	if err := requireStage(s, a, m.StageLineSelection); err != nil {
		return err
	}

	layout, _ := t.Layout(*s)
	if !layout.Selectable(a.Line) {
		return blocked(a, s.Stage, "line %d cannot be commented", a.Line)
	}

	if s.SelectedLines.Has(a.Line) {
		s.SelectedLines.Remove(a.Line)
		s.CommentedLines.Remove(a.Line)
		delete(s.InlineComments, a.Line)

		return nil
	}

	s.SelectedLines.Add(a.Line)

	return nil
}

func (t *tutorial) backToValidation(s *m.Session, a BackToValidation) error {
	if err := requireStage(s, a, m.StageLineSelection); err != nil {
		return err
	}

	s.SelectedLines = m.NewLineSet()
	s.CommentedLines = m.NewLineSet()
	s.InlineComments = make(map[int]string)
	s.Stage = m.StageDocstringValidation

	return nil
}

func (t *tutorial) continueToComments(s *m.Session, a ContinueToComments) error {
	if err := requireStage(s, a, m.StageLineSelection); err != nil {
		return err
	}

	if s.SelectedLines.Len() == 0 {
		return blocked(a, s.Stage, "select at least one line")
	}

	for _, line := range s.SelectedLines.Sorted() {
		if _, ok := s.InlineComments[line]; !ok {
			s.InlineComments[line] = PlaceholderComment
		}
	}

	closeOverlays(s)
	s.Stage = m.StageInlineCommenting

	return nil
}

// Inline commenting.

func requireSelectedLine(s *m.Session, action Action, line int) error {
	if err := requireStage(s, action, m.StageInlineCommenting); err != nil {
		return err
	}

	if !s.SelectedLines.Has(line) {
		return blocked(action, s.Stage, "line %d is not selected for commenting", line)
	}

	return nil
}

func requireEditing(s *m.Session, action Action) error {
	if err := requireStage(s, action, m.StageInlineCommenting); err != nil {
		return err
	}

	if s.EditingLine == m.NoLine {
		return blocked(action, s.Stage, "no comment is being written")
	}

	return nil
}

func (t *tutorial) showSuggestions(s *m.Session, a ShowSuggestions) error {
	if err := requireSelectedLine(s, a, a.Line); err != nil {
		return err
	}

	s.SuggestionLine = a.Line

	return nil
}

func (t *tutorial) hideSuggestions(s *m.Session, a HideSuggestions) error {
	if err := requireStage(s, a, m.StageInlineCommenting); err != nil {
		return err
	}

	s.SuggestionLine = m.NoLine

	return nil
}

func (t *tutorial) chooseSuggestion(s *m.Session, a ChooseSuggestion) error {
	if err := requireSelectedLine(s, a, a.Line); err != nil {
		return err
	}

	options := t.Suggestions(*s, a.Line)
	if a.Index < 0 || a.Index >= len(options) {
		return blocked(a, s.Stage, "line %d has no suggestion %d", a.Line, a.Index)
	}

	commit(s, a.Line, options[a.Index])

	return nil
}

func (t *tutorial) beginFreeText(s *m.Session, a BeginFreeText) error {
	if err := requireSelectedLine(s, a, a.Line); err != nil {
		return err
	}

	s.SuggestionLine = m.NoLine
	s.EditingLine = a.Line
	s.EditBuffer = FreeTextPrefix

	return nil
}

func (t *tutorial) editFreeText(s *m.Session, a EditFreeText) error {
	if err := requireEditing(s, a); err != nil {
		return err
	}

	s.EditBuffer = a.Text

	return nil
}

func (t *tutorial) commitFreeText(s *m.Session, a CommitFreeText) error {
	if err := requireEditing(s, a); err != nil {
		return err
	}

	commit(s, s.EditingLine, s.EditBuffer)

	return nil
}

func (t *tutorial) cancelFreeText(s *m.Session, a CancelFreeText) error {
	if err := requireEditing(s, a); err != nil {
		return err
	}

	s.EditingLine = m.NoLine
	s.EditBuffer = ""

	return nil
}

func commit(s *m.Session, line int, text string) {
	s.InlineComments[line] = text
	s.CommentedLines.Add(line)
	closeOverlays(s)
}

func closeOverlays(s *m.Session) {
	s.SuggestionLine = m.NoLine
	s.EditingLine = m.NoLine
	s.EditBuffer = ""
}

func (t *tutorial) backToLines(s *m.Session, a BackToLines) error {
	if err := requireStage(s, a, m.StageInlineCommenting); err != nil {
		return err
	}

	closeOverlays(s)
	s.Stage = m.StageLineSelection

	return nil
}

// ValidComment reports whether text counts as a written inline comment.
func ValidComment(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed != "" && trimmed != PlaceholderComment && trimmed != "#"
}

func (t *tutorial) compareSolutions(s *m.Session, a CompareSolutions) error {
	if err := requireStage(s, a, m.StageInlineCommenting); err != nil {
		return err
	}

	for _, line := range s.SelectedLines.Sorted() {
		if !ValidComment(s.InlineComments[line]) {
			return blocked(a, s.Stage, "line %d still needs a comment", line)
		}
	}

	closeOverlays(s)
	s.CommentedLines = s.SelectedLines.Clone()
	s.ComparisonTab = m.TabYours
	s.Stage = m.StageSolutionComparison

	return nil
}

// Comparison and exits.

func (t *tutorial) selectTab(s *m.Session, a SelectTab) error {
	if err := requireStage(s, a, m.StageSolutionComparison); err != nil {
		return err
	}

	if a.Tab != m.TabYours && a.Tab != m.TabExample {
		return blocked(a, s.Stage, "unknown tab %d", a.Tab)
	}

	s.ComparisonTab = a.Tab

	return nil
}

func (t *tutorial) restart(s *m.Session, a Restart) error {
	if err := requireStage(s, a, m.StageSolutionComparison); err != nil {
		return err
	}

	history := s.SavedDocstrings
	*s = t.New()

	if t.history == config.HistoryRetain {
		s.SavedDocstrings = history
	}

	return nil
}

func (t *tutorial) backToScript(s *m.Session, a BackToScript) error {
	if s.Stage.Terminal() {
		return blocked(a, s.Stage, "use restart to leave the comparison")
	}

	resetProgress(s)
	s.Candidate = nil
	s.CandidateFile = ""
	s.Stage = m.StageBrowsing

	return nil
}

// resetProgress discards every in-progress edit of the current function.
func resetProgress(s *m.Session) {
	s.SelectedFunction = nil
	s.FunctionFile = ""
	s.DocstringText = ""
	s.ValidationAnswers = make(map[m.QuestionKey]m.Answer)
	s.SelectedLines = m.NewLineSet()
	s.CommentedLines = m.NewLineSet()
	s.InlineComments = make(map[int]string)
	s.ComparisonTab = m.TabYours
	closeOverlays(s)
}

// Projections.

func (t *tutorial) Layout(s m.Session) (Layout, bool) {
	if s.SelectedFunction == nil {
		return Layout{}, false
	}

	var docstring string
	if saved, ok := s.SavedDocstring(s.FunctionFile, s.SelectedFunction.Name); ok {
		docstring = saved.Text
	}

	return NewLayout(*s.SelectedFunction, docstring), true
}

func (t *tutorial) Suggestions(s m.Session, line int) []string {
	layout, ok := t.Layout(s)
	if !ok {
		return nil
	}

	index, ok := layout.SourceIndex(line)
	if !ok {
		return nil
	}

	return t.content.CommentOptions(s.FunctionFile, index)
}

func (t *tutorial) Functions(fileID string) []m.ExtractedFunction {
	file, ok := t.content.File(fileID)
	if !ok || file.Kind != m.KindSource {
		return []m.ExtractedFunction{}
	}

	return ExtractFunctions(file.Content)
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}

	return -1
}
