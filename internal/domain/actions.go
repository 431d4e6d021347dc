package domain

import m "github.com/mouse-blink/docent/internal/model"

// Action is a user intent applied to a session by Tutorial.Apply.
type Action interface {
	Name() string
}

// OpenFile opens a catalog file in a new tab, or activates its existing tab.
type OpenFile struct{ ID string }

// CloseFile closes a file tab. The directory tab cannot be closed.
type CloseFile struct{ ID string }

// ActivateFile switches to an open tab.
type ActivateFile struct{ ID string }

// SelectText offers the function covered by a text selection in the active file.
type SelectText struct{ Selection string }

// ClickLine offers the function defined on a 0-based line of the active file.
type ClickLine struct{ Line int }

// CancelSelection dismisses the documentation prompt.
type CancelSelection struct{}

// ConfirmDocumentation accepts the "Add Documentation" prompt.
type ConfirmDocumentation struct{}

// EditDocstring replaces the docstring draft.
type EditDocstring struct{ Text string }

// SubmitDocstring saves the draft and moves on to validation.
type SubmitDocstring struct{}

// AnswerQuestion records a validation answer.
type AnswerQuestion struct {
	Key    m.QuestionKey
	Answer m.Answer
}

// ReviseDocstring returns to the docstring editor.
type ReviseDocstring struct{}

// ContinueToLines moves on to choosing lines to comment.
type ContinueToLines struct{}

// ToggleLine flags or unflags a body line for commenting.
type ToggleLine struct{ Line int }

// BackToValidation returns from line selection to the validation questions.
type BackToValidation struct{}

// ContinueToComments moves on to writing inline comments.
type ContinueToComments struct{}

// ShowSuggestions opens the suggestion popup for a line.
type ShowSuggestions struct{ Line int }

// HideSuggestions closes the suggestion popup.
type HideSuggestions struct{}

// ChooseSuggestion commits one of the suggested comments for a line.
type ChooseSuggestion struct {
	Line  int
	Index int
}

// BeginFreeText opens the free-text editor for a line.
type BeginFreeText struct{ Line int }

// EditFreeText replaces the free-text buffer.
type EditFreeText struct{ Text string }

// CommitFreeText commits the free-text buffer as the line's comment.
type CommitFreeText struct{}

// CancelFreeText closes the free-text editor without committing.
type CancelFreeText struct{}

// BackToLines returns from commenting to line selection.
type BackToLines struct{}

// CompareSolutions moves on to the solution comparison.
type CompareSolutions struct{}

// SelectTab switches the comparison tab.
type SelectTab struct{ Tab m.ComparisonTab }

// Restart resets the tutorial after the comparison.
type Restart struct{}

// BackToScript abandons the current function and returns to browsing.
type BackToScript struct{}

func (OpenFile) Name() string             { return "open-file" }
func (CloseFile) Name() string            { return "close-file" }
func (ActivateFile) Name() string         { return "activate-file" }
func (SelectText) Name() string           { return "select-text" }
func (ClickLine) Name() string            { return "click-line" }
func (CancelSelection) Name() string      { return "cancel-selection" }
func (ConfirmDocumentation) Name() string { return "confirm-documentation" }
func (EditDocstring) Name() string        { return "edit-docstring" }
func (SubmitDocstring) Name() string      { return "submit-docstring" }
func (AnswerQuestion) Name() string       { return "answer-question" }
func (ReviseDocstring) Name() string      { return "revise-docstring" }
func (ContinueToLines) Name() string      { return "continue-to-lines" }
func (ToggleLine) Name() string           { return "toggle-line" }
func (BackToValidation) Name() string     { return "back-to-validation" }
func (ContinueToComments) Name() string   { return "continue-to-comments" }
func (ShowSuggestions) Name() string      { return "show-suggestions" }
func (HideSuggestions) Name() string      { return "hide-suggestions" }
func (ChooseSuggestion) Name() string     { return "choose-suggestion" }
func (BeginFreeText) Name() string        { return "begin-free-text" }
func (EditFreeText) Name() string         { return "edit-free-text" }
func (CommitFreeText) Name() string       { return "commit-free-text" }
func (CancelFreeText) Name() string       { return "cancel-free-text" }
func (BackToLines) Name() string          { return "back-to-lines" }
func (CompareSolutions) Name() string     { return "compare-solutions" }
func (SelectTab) Name() string            { return "select-tab" }
func (Restart) Name() string              { return "restart" }
func (BackToScript) Name() string         { return "back-to-script" }
