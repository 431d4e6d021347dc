package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Stage is one step of the guided tutorial.
type Stage int

// Stages in forward order. SolutionComparison is terminal.
const (
	StageBrowsing Stage = iota
	StageFunctionSelected
	StageDocstringEditing
	StageDocstringValidation
	StageLineSelection
	StageInlineCommenting
	StageSolutionComparison
)

// Stages lists every stage in forward order.
var Stages = []Stage{
	StageBrowsing,
	StageFunctionSelected,
	StageDocstringEditing,
	StageDocstringValidation,
	StageLineSelection,
	StageInlineCommenting,
	StageSolutionComparison,
}

func (s Stage) String() string {
	switch s {
	case StageBrowsing:
		return "browsing"
	case StageFunctionSelected:
		return "function-selected"
	case StageDocstringEditing:
		return "docstring-editing"
	case StageDocstringValidation:
		return "docstring-validation"
	case StageLineSelection:
		return "line-selection"
	case StageInlineCommenting:
		return "inline-commenting"
	case StageSolutionComparison:
		return "solution-comparison"
	default:
		return "unknown"
	}
}

// Terminal reports whether no forward transition leaves the stage.
func (s Stage) Terminal() bool {
	return s == StageSolutionComparison
}

// Answer is the user's response to a validation question.
type Answer int

// Available answers. The zero value is unanswered.
const (
	Unanswered Answer = iota
	AnswerYes
	AnswerNo
	AnswerUnsure
)

func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	case AnswerUnsure:
		return "unsure"
	default:
		return "unanswered"
	}
}

// ParseAnswer converts a user supplied word into an Answer.
func ParseAnswer(s string) (Answer, bool) {
	switch s {
	case "yes", "y":
		return AnswerYes, true
	case "no", "n":
		return AnswerNo, true
	case "unsure", "u", "?":
		return AnswerUnsure, true
	case "unanswered", "-":
		return Unanswered, true
	default:
		return Unanswered, false
	}
}

// QuestionKey identifies one of the docstring validation questions.
type QuestionKey string

// The four validation questions.
const (
	QuestionDescribes QuestionKey = "describes"
	QuestionInputs    QuestionKey = "inputs"
	QuestionOutputs   QuestionKey = "outputs"
	QuestionExample   QuestionKey = "example"
)

// QuestionKeys lists the validation questions in display order.
var QuestionKeys = []QuestionKey{
	QuestionDescribes,
	QuestionInputs,
	QuestionOutputs,
	QuestionExample,
}

// ComparisonTab selects the solution shown in the comparison stage.
type ComparisonTab int

// Comparison tabs.
const (
	TabYours ComparisonTab = iota
	TabExample
)

func (t ComparisonTab) String() string {
	if t == TabExample {
		return "example"
	}

	return "yours"
}

// SavedDocstring is one entry of the docstring history.
type SavedDocstring struct {
	ID           ulid.ULID
	FileName     string
	FunctionName string
	StartLine    int
	EndLine      int
	Text         string
	Timestamp    time.Time
}

// NoLine marks the absence of a synthetic line. Synthetic lines start at 1.
const NoLine = 0

// Session is the complete mutable state of one tutorial run.
type Session struct {
	Stage Stage

	// OpenFiles are the browsing tabs, the directory tab first.
	OpenFiles  []string
	ActiveFile string

	// Candidate is the function awaiting the "Add Documentation" confirmation.
	Candidate     *ExtractedFunction
	CandidateFile string

	SelectedFunction *ExtractedFunction
	FunctionFile     string

	DocstringText     string
	ValidationAnswers map[QuestionKey]Answer

	// SelectedLines are the lines flagged as needing a comment.
	SelectedLines LineSet
	// CommentedLines are the lines whose comment has been committed.
	CommentedLines LineSet
	InlineComments map[int]string

	SuggestionLine int
	EditingLine    int
	EditBuffer     string

	ComparisonTab ComparisonTab

	SavedDocstrings []SavedDocstring
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s

	out.OpenFiles = append([]string(nil), s.OpenFiles...)

	if s.Candidate != nil {
		c := *s.Candidate
		out.Candidate = &c
	}

	if s.SelectedFunction != nil {
		f := *s.SelectedFunction
		out.SelectedFunction = &f
	}

	out.ValidationAnswers = make(map[QuestionKey]Answer, len(s.ValidationAnswers))
	for k, v := range s.ValidationAnswers {
		out.ValidationAnswers[k] = v
	}

	out.SelectedLines = s.SelectedLines.Clone()
	out.CommentedLines = s.CommentedLines.Clone()

	out.InlineComments = make(map[int]string, len(s.InlineComments))
	for k, v := range s.InlineComments {
		out.InlineComments[k] = v
	}

	out.SavedDocstrings = append([]SavedDocstring(nil), s.SavedDocstrings...)

	return out
}

// Answer returns the recorded answer for key.
func (s Session) Answer(key QuestionKey) Answer {
	return s.ValidationAnswers[key]
}

// SavedDocstring returns the most recent history entry for a file and function.
func (s Session) SavedDocstring(fileName, functionName string) (SavedDocstring, bool) {
	for i := len(s.SavedDocstrings) - 1; i >= 0; i-- {
		entry := s.SavedDocstrings[i]
		if entry.FileName == fileName && entry.FunctionName == functionName {
			return entry, true
		}
	}

	return SavedDocstring{}, false
}
