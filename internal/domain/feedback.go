package domain

import (
	m "github.com/mouse-blink/docent/internal/model"
)

// Question is one docstring validation question.
type Question struct {
	Key    m.QuestionKey
	Prompt string
}

var questions = []Question{
	{Key: m.QuestionDescribes, Prompt: "Does your docstring describe what the function does?"},
	{Key: m.QuestionInputs, Prompt: "Does it explain the function's inputs and their types?"},
	{Key: m.QuestionOutputs, Prompt: "Does it explain what the function returns?"},
	{Key: m.QuestionExample, Prompt: "Does it show an example of how to call the function?"},
}

var feedbackText = map[m.QuestionKey]map[m.Answer]string{
	m.QuestionDescribes: {
		m.AnswerNo:     "Start your docstring with one clear sentence saying what the function does.",
		m.AnswerUnsure: "Read the first line on its own: would a new reader know what the function is for?",
	},
	m.QuestionInputs: {
		m.AnswerNo:     "List each parameter with its type and what it represents.",
		m.AnswerUnsure: "Check the signature: every parameter between the parentheses should be described.",
	},
	m.QuestionOutputs: {
		m.AnswerNo:     "Say what the function returns and in what form.",
		m.AnswerUnsure: "Look at the return statement and make sure the docstring describes that value.",
	},
	m.QuestionExample: {
		m.AnswerNo:     "Add a short example call so readers can see the function in use.",
		m.AnswerUnsure: "An example is a line such as result = function(arguments) showing typical input.",
	},
}

// Questions returns the validation questions in display order.
func Questions() []Question {
	return append([]Question(nil), questions...)
}

// Message is feedback for a single answered question.
type Message struct {
	Key    m.QuestionKey
	Answer m.Answer
	Text   string
}

// Feedback returns one message per question answered no or unsure, in question order.
func Feedback(answers map[m.QuestionKey]m.Answer) []Message {
	var messages []Message

	for _, q := range questions {
		answer := answers[q.Key]
		if answer != m.AnswerNo && answer != m.AnswerUnsure {
			continue
		}

		messages = append(messages, Message{
			Key:    q.Key,
			Answer: answer,
			Text:   feedbackText[q.Key][answer],
		})
	}

	return messages
}

// Readiness summarises the validation answers.
type Readiness int

// Readiness values.
const (
	ReadinessIncomplete Readiness = iota
	ReadinessNeedsRevision
	ReadinessReady
)

// Message returns the status line shown under the questions.
func (r Readiness) Message() string {
	switch r {
	case ReadinessReady:
		return "Great! Your docstring covers everything. Continue to inline comments."
	case ReadinessNeedsRevision:
		return "Some answers suggest the docstring needs more work. Revise it, then check again."
	default:
		return "Answer all four questions to continue."
	}
}

// Summary classifies answers. Any no or unsure answer needs revision, even when
// other questions are still unanswered.
func Summary(answers map[m.QuestionKey]m.Answer) Readiness {
	if NeedsRevision(answers) {
		return ReadinessNeedsRevision
	}

	if AllYes(answers) {
		return ReadinessReady
	}

	return ReadinessIncomplete
}

// AllYes reports whether every question is answered yes.
func AllYes(answers map[m.QuestionKey]m.Answer) bool {
	for _, key := range m.QuestionKeys {
		if answers[key] != m.AnswerYes {
			return false
		}
	}

	return true
}

// NeedsRevision reports whether at least one answer is no or unsure.
func NeedsRevision(answers map[m.QuestionKey]m.Answer) bool {
	for _, key := range m.QuestionKeys {
		if a := answers[key]; a == m.AnswerNo || a == m.AnswerUnsure {
			return true
		}
	}

	return false
}

func knownQuestion(key m.QuestionKey) bool {
	for _, k := range m.QuestionKeys {
		if k == key {
			return true
		}
	}

	return false
}
