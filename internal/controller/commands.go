package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mouse-blink/docent/internal/domain"
	m "github.com/mouse-blink/docent/internal/model"
)

var (
	errUsage      = errors.New("usage")
	errNoSuchFile = errors.New("no such file")
)

// commandKind is what a parsed command line asks the loop to do.
type commandKind int

const (
	commandActions commandKind = iota
	commandShow
	commandHelp
	commandCopy
	commandQuit
)

type command struct {
	kind    commandKind
	actions []domain.Action
}

const commandHelpText = `Browsing
  open <file>           open a file tab (fuzzy matched)
  close <file>          close a file tab
  tab <file>            switch to an open tab
  click <line>          pick the function defined on a file line
  select <from>-<to>    select file lines to pick the function they cover
Function
  confirm | cancel      accept or dismiss "Add Documentation"
  doc <text>            set the docstring, \n starts a new line
  submit                save the docstring and check it
Validation
  answer <question> <yes|no|unsure>
                        questions: describes, inputs, outputs, example
  revise                go back to editing the docstring
  continue              move on to the next step
Lines and comments
  toggle <line>         flag a numbered line for a comment
  back                  return to the previous step
  suggest <line>        list comment suggestions for a line
  hide                  close the suggestion list
  choose <line> <n>     use suggestion n for a line
  write <line> [text]   write your own comment
  commit [text]         save the comment being written
  cancel                discard the comment being written
  compare               compare with the example solution
Comparison
  show yours|example    switch solution tab
  copy                  copy the shown solution to the clipboard
  restart               start over
Anywhere
  script                back to the script
  screen                print the current screen
  help                  show this help
  quit                  exit`

// parseCommand turns one input line into tutorial actions for the session s.
//
//nolint:cyclop,gocyclo // one case per command word
func parseCommand(tut domain.Tutorial, s m.Session, line string) (command, error) {
	word, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	one := func(a domain.Action) (command, error) {
		return command{kind: commandActions, actions: []domain.Action{a}}, nil
	}

	switch strings.ToLower(word) {
	case "open", "close", "tab":
		id, err := resolveFile(tut, rest)
		if err != nil {
			return command{}, err
		}

		switch strings.ToLower(word) {
		case "open":
			return one(domain.OpenFile{ID: id})
		case "close":
			return one(domain.CloseFile{ID: id})
		default:
			return one(domain.ActivateFile{ID: id})
		}
	case "click":
		n, err := lineArg(rest)
		if err != nil {
			return command{}, err
		}

		return one(domain.ClickLine{Line: n - 1})
	case "select":
		text, err := selectionText(tut, s, rest)
		if err != nil {
			return command{}, err
		}

		return one(domain.SelectText{Selection: text})
	case "confirm":
		return one(domain.ConfirmDocumentation{})
	case "cancel":
		if s.Stage == m.StageInlineCommenting {
			return one(domain.CancelFreeText{})
		}

		return one(domain.CancelSelection{})
	case "doc":
		return one(domain.EditDocstring{Text: unescape(rest)})
	case "submit":
		return one(domain.SubmitDocstring{})
	case "answer":
		return parseAnswer(rest)
	case "revise":
		return one(domain.ReviseDocstring{})
	case "continue":
		if s.Stage == m.StageLineSelection {
			return one(domain.ContinueToComments{})
		}

		return one(domain.ContinueToLines{})
	case "toggle":
		n, err := lineArg(rest)
		if err != nil {
			return command{}, err
		}

		return one(domain.ToggleLine{Line: n})
	case "back":
		if s.Stage == m.StageInlineCommenting {
			return one(domain.BackToLines{})
		}

		return one(domain.BackToValidation{})
	case "suggest":
		n, err := lineArg(rest)
		if err != nil {
			return command{}, err
		}

		return one(domain.ShowSuggestions{Line: n})
	case "hide":
		return one(domain.HideSuggestions{})
	case "choose":
		return parseChoose(rest)
	case "write":
		return parseWrite(rest)
	case "commit":
		cmd := command{kind: commandActions}
		if rest != "" {
			cmd.actions = append(cmd.actions, domain.EditFreeText{Text: rest})
		}

		cmd.actions = append(cmd.actions, domain.CommitFreeText{})

		return cmd, nil
	case "compare":
		return one(domain.CompareSolutions{})
	case "show":
		return parseShow(rest)
	case "restart":
		return one(domain.Restart{})
	case "script":
		return one(domain.BackToScript{})
	case "copy":
		return command{kind: commandCopy}, nil
	case "screen":
		return command{kind: commandShow}, nil
	case "help", "?":
		return command{kind: commandHelp}, nil
	case "quit", "exit":
		return command{kind: commandQuit}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q, try help", word)
	}
}

func resolveFile(tut domain.Tutorial, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("%w: missing file name", errUsage)
	}

	if query == m.DirectoryID {
		return m.DirectoryID, nil
	}

	file, ok := tut.Content().Resolve(query)
	if !ok {
		return "", fmt.Errorf("%w: %s", errNoSuchFile, query)
	}

	return file.ID, nil
}

func lineArg(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: expected a line number, got %q", errUsage, arg)
	}

	return n, nil
}

// selectionText joins the 1-based inclusive line range of the active file.
func selectionText(tut domain.Tutorial, s m.Session, arg string) (string, error) {
	from, to, ok := strings.Cut(arg, "-")
	if !ok {
		return "", fmt.Errorf("%w: select <from>-<to>", errUsage)
	}

	start, err := lineArg(from)
	if err != nil {
		return "", err
	}

	end, err := lineArg(to)
	if err != nil {
		return "", err
	}

	lines := strings.Split(tut.Content().FileContent(s.ActiveFile), "\n")
	if start > end || end > len(lines) {
		return "", fmt.Errorf("%w: lines %d-%d are outside the file", errUsage, start, end)
	}

	return strings.Join(lines[start-1:end], "\n"), nil
}

func parseAnswer(rest string) (command, error) {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return command{}, fmt.Errorf("%w: answer <question> <yes|no|unsure>", errUsage)
	}

	answer, ok := m.ParseAnswer(strings.ToLower(fields[1]))
	if !ok {
		return command{}, fmt.Errorf("%w: unknown answer %q", errUsage, fields[1])
	}

	action := domain.AnswerQuestion{Key: m.QuestionKey(strings.ToLower(fields[0])), Answer: answer}

	return command{kind: commandActions, actions: []domain.Action{action}}, nil
}

func parseChoose(rest string) (command, error) {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return command{}, fmt.Errorf("%w: choose <line> <n>", errUsage)
	}

	line, err := lineArg(fields[0])
	if err != nil {
		return command{}, err
	}

	n, err := lineArg(fields[1])
	if err != nil {
		return command{}, err
	}

	action := domain.ChooseSuggestion{Line: line, Index: n - 1}

	return command{kind: commandActions, actions: []domain.Action{action}}, nil
}

func parseWrite(rest string) (command, error) {
	lineText, text, _ := strings.Cut(rest, " ")

	line, err := lineArg(lineText)
	if err != nil {
		return command{}, err
	}

	cmd := command{kind: commandActions, actions: []domain.Action{domain.BeginFreeText{Line: line}}}
	if text = strings.TrimSpace(text); text != "" {
		cmd.actions = append(cmd.actions, domain.EditFreeText{Text: text})
	}

	return cmd, nil
}

func parseShow(rest string) (command, error) {
	var tab m.ComparisonTab

	switch strings.ToLower(rest) {
	case "yours", "your", "mine":
		tab = m.TabYours
	case "example":
		tab = m.TabExample
	default:
		return command{}, fmt.Errorf("%w: show yours|example", errUsage)
	}

	return command{kind: commandActions, actions: []domain.Action{domain.SelectTab{Tab: tab}}}, nil
}

func unescape(text string) string {
	return strings.ReplaceAll(text, `\n`, "\n")
}
