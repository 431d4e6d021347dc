package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mouse-blink/docent/internal/domain"
	"github.com/mouse-blink/docent/internal/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 30
	// chromeHeight is the space taken by everything around the code view.
	chromeHeight = 16
)

// fileDelegate renders catalog entries in the directory tab.
type fileDelegate struct{}

func (d fileDelegate) Height() int  { return 1 }
func (d fileDelegate) Spacing() int { return 0 }
func (d fileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d fileDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	file, ok := item.(fileItem)
	if !ok {
		return
	}

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(28)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Width(14)

	if index == l.Index() {
		nameStyle = nameStyle.Foreground(lipgloss.Color("0")).Background(accentColor).Bold(true)
	}

	folder := file.folder
	if folder == "" {
		folder = "."
	}

	line := fmt.Sprintf("%s %s %s",
		nameStyle.Render(truncateToWidth(file.id, 28)),
		labelStyle.Render(file.label),
		mutedStyle.Render(folder),
	)
	_, _ = fmt.Fprint(w, line)
}

// tutorModel is the interactive tutorial. All state changes go through the
// tutorial reducer; the model only keeps view state such as cursors.
type tutorModel struct {
	tutorial domain.Tutorial
	session  model.Session
	screen   domain.Screen
	opts     options
	keys     keyMap
	help     help.Model

	width  int
	height int

	files    list.Model
	code     viewport.Model
	editor   textarea.Model
	comment  textinput.Model
	progress progress.Model

	viewedFile string
	// fileCursor is a 0-based line of the active file, lineCursor a synthetic line.
	fileCursor int
	lineCursor int
	anchor     int
	question   int

	highlighted map[string][]string
	pending     map[string]bool

	hoverSeq   int
	validation int
	status     string
	fullHelp   bool
}

func newTutorModel(tut domain.Tutorial, session model.Session, opts options) tutorModel {
	files := list.New(nil, fileDelegate{}, defaultWidth-4, defaultHeight-chromeHeight)
	files.SetShowTitle(false)
	files.SetShowStatusBar(false)
	files.SetShowHelp(false)
	files.SetFilteringEnabled(false)

	editor := textarea.New()
	editor.Placeholder = "Describe what the function does, its inputs, outputs and an example."
	editor.ShowLineNumbers = false
	editor.SetHeight(6)

	comment := textinput.New()
	comment.Prompt = "comment › "

	tm := tutorModel{
		tutorial:    tut,
		session:     session,
		opts:        opts,
		keys:        newKeyMap(),
		help:        help.New(),
		files:       files,
		code:        viewport.New(defaultWidth-4, defaultHeight-chromeHeight),
		editor:      editor,
		comment:     comment,
		progress:    progress.New(progress.WithDefaultGradient()),
		anchor:      -1,
		highlighted: make(map[string][]string),
		pending:     make(map[string]bool),
	}

	tm = tm.resize(defaultWidth, defaultHeight)
	tm.screen = tut.Screen(session)
	tm.viewedFile = session.ActiveFile
	tm, _ = tm.enterStage()
	tm.files.SetItems(catalogItems(tm.screen.Catalog))
	tm.syncViewport()

	return tm
}

func (m tutorModel) Init() tea.Cmd {
	return m.requestHighlight()
}

func (m tutorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
		m.syncViewport()

		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case highlightMsg:
		return m.handleHighlightMsg(msg), nil
	case hideSuggestionsMsg:
		return m.handleHideSuggestionsMsg(msg)
	case scrollToValidationMsg:
		return m.handleScrollMsg(msg), nil
	case copiedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Copied %s solution to the clipboard", msg.tab)
		}

		return m, nil
	}

	return m, nil
}

func (m tutorModel) resize(width, height int) tutorModel {
	m.width = width
	m.height = height

	codeHeight := max(height-chromeHeight, 5)
	innerWidth := max(width-4, 20)

	m.code.Width = innerWidth
	m.code.Height = codeHeight
	m.files.SetSize(innerWidth, codeHeight)
	m.editor.SetWidth(innerWidth - 2)
	m.comment.Width = innerWidth - 12
	m.progress.Width = max(width/3, 10)
	m.help.Width = width

	return m
}

// apply runs actions in order through the tutorial. Either all of them take
// effect or none do, in which case the guard reason becomes the status line.
func (m tutorModel) apply(actions ...domain.Action) (tutorModel, tea.Cmd) {
	next := m.session

	for _, action := range actions {
		var err error

		next, err = m.tutorial.Apply(next, action)
		if err != nil {
			m.status = describeError(err)
			return m, nil
		}
	}

	previous := m.session.Stage
	m.session = next
	m.status = ""

	return m.refresh(previous)
}

func describeError(err error) string {
	var guard *domain.GuardError
	if errors.As(err, &guard) {
		return guard.Reason
	}

	return err.Error()
}

func (m tutorModel) refresh(previous model.Stage) (tutorModel, tea.Cmd) {
	m.screen = m.tutorial.Screen(m.session)

	var cmds []tea.Cmd

	if m.session.ActiveFile != m.viewedFile {
		m.viewedFile = m.session.ActiveFile
		m.fileCursor = 0
		m.anchor = -1
	}

	if m.session.Stage != previous {
		var cmd tea.Cmd

		m, cmd = m.enterStage()
		cmds = append(cmds, cmd)
	}

	m.files.SetItems(catalogItems(m.screen.Catalog))
	m.fileCursor = min(m.fileCursor, max(strings.Count(m.screen.Content, "\n"), 0))

	cmds = append(cmds, m.requestHighlight())

	m.syncViewport()

	return m, tea.Batch(cmds...)
}

//nolint:cyclop // one case per stage
func (m tutorModel) enterStage() (tutorModel, tea.Cmd) {
	m.editor.Blur()
	m.comment.Blur()

	switch m.session.Stage {
	case model.StageBrowsing:
		m.lineCursor = model.NoLine
		m.anchor = -1
	case model.StageDocstringEditing:
		m.editor.SetValue(m.session.DocstringText)
		m.lineCursor = domain.DocstringFirstLine
		focus := m.editor.Focus()

		return m, focus
	case model.StageDocstringValidation:
		m.question = 0
		m.validation++
		visit := m.validation

		return m, tea.Tick(m.opts.scrollDelay, func(time.Time) tea.Msg {
			return scrollToValidationMsg{visit: visit}
		})
	case model.StageLineSelection:
		m.lineCursor = m.screen.Layout.BodyStart()
		if selectable := m.screen.Layout.SelectableLines(); len(selectable) > 0 {
			m.lineCursor = selectable[0]
		}
	case model.StageInlineCommenting:
		if len(m.screen.SelectedLines) > 0 {
			m.lineCursor = m.screen.SelectedLines[0]
		}

		return m.hover()
	case model.StageFunctionSelected, model.StageSolutionComparison:
	}

	return m, nil
}

func catalogItems(files []model.ScriptFile) []list.Item {
	items := make([]list.Item, 0, len(files))
	for _, file := range files {
		items = append(items, fileItem{id: file.ID, label: file.Label(), folder: file.Folder})
	}

	return items
}

// requestHighlight loads highlighted content for the active source file once
// while the file view is on screen.
func (m tutorModel) requestHighlight() tea.Cmd {
	stage := m.session.Stage
	if stage != model.StageBrowsing && stage != model.StageFunctionSelected {
		return nil
	}

	id := m.session.ActiveFile

	file, ok := m.tutorial.Content().File(id)
	if !ok || file.Kind != model.KindSource {
		return nil
	}

	if _, done := m.highlighted[id]; done || m.pending[id] {
		return nil
	}

	m.pending[id] = true
	highlighter := m.opts.highlighter
	content := file.Content

	return func() tea.Msg {
		return highlightMsg{fileID: id, text: highlighter.Highlight(context.Background(), content)}
	}
}

func (m tutorModel) handleHighlightMsg(msg highlightMsg) tutorModel {
	delete(m.pending, msg.fileID)
	m.highlighted[msg.fileID] = strings.Split(strings.TrimRight(msg.text, "\n"), "\n")
	m.syncViewport()

	return m
}

func (m tutorModel) handleHideSuggestionsMsg(msg hideSuggestionsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.hoverSeq || m.session.SuggestionLine == model.NoLine {
		return m, nil
	}

	return m.apply(domain.HideSuggestions{})
}

func (m tutorModel) handleScrollMsg(msg scrollToValidationMsg) tutorModel {
	if msg.visit == m.validation && m.session.Stage == model.StageDocstringValidation {
		m.code.GotoBottom()
	}

	return m
}

// hover shows suggestions for the line under the cursor. Leaving a flagged
// line hides them after the hover delay unless focus returns first.
func (m tutorModel) hover() (tutorModel, tea.Cmd) {
	if m.session.Stage != model.StageInlineCommenting || m.session.EditingLine != model.NoLine {
		return m, nil
	}

	m.syncViewport()
	m.hoverSeq++

	if m.session.SelectedLines.Has(m.lineCursor) {
		if m.session.SuggestionLine == m.lineCursor {
			return m, nil
		}

		return m.apply(domain.ShowSuggestions{Line: m.lineCursor})
	}

	if m.session.SuggestionLine == model.NoLine {
		return m, nil
	}

	seq := m.hoverSeq

	return m, tea.Tick(m.opts.hoverDelay, func(time.Time) tea.Msg {
		return hideSuggestionsMsg{seq: seq}
	})
}

func (m tutorModel) typing() bool {
	return m.session.Stage == model.StageDocstringEditing || m.session.EditingLine != model.NoLine
}

func (m tutorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.fullHelp = !m.fullHelp
		return m, nil
	case key.Matches(msg, m.keys.Quit) && !m.typing():
		return m, tea.Quit
	case key.Matches(msg, m.keys.Script) && m.session.Stage != model.StageBrowsing:
		return m.apply(domain.BackToScript{})
	}

	switch m.session.Stage {
	case model.StageBrowsing:
		return m.handleBrowsingKey(msg)
	case model.StageFunctionSelected:
		return m.handleFunctionSelectedKey(msg)
	case model.StageDocstringEditing:
		return m.handleEditingKey(msg)
	case model.StageDocstringValidation:
		return m.handleValidationKey(msg)
	case model.StageLineSelection:
		return m.handleLineSelectionKey(msg)
	case model.StageInlineCommenting:
		return m.handleCommentingKey(msg)
	case model.StageSolutionComparison:
		return m.handleComparisonKey(msg)
	}

	return m, nil
}

//nolint:cyclop // one case per key
func (m tutorModel) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	directory := m.session.ActiveFile == model.DirectoryID

	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.apply(domain.ActivateFile{ID: m.adjacentTab(1)})
	case key.Matches(msg, m.keys.PrevTab):
		return m.apply(domain.ActivateFile{ID: m.adjacentTab(-1)})
	case key.Matches(msg, m.keys.CloseTab):
		return m.apply(domain.CloseFile{ID: m.session.ActiveFile})
	case key.Matches(msg, m.keys.Cancel):
		m.anchor = -1
		m.status = ""

		return m, nil
	case directory && key.Matches(msg, m.keys.Open):
		item, ok := m.files.SelectedItem().(fileItem)
		if !ok {
			return m, nil
		}

		return m.apply(domain.OpenFile{ID: item.id})
	case directory:
		var cmd tea.Cmd

		m.files, cmd = m.files.Update(msg)

		return m, cmd
	case key.Matches(msg, m.keys.Up):
		m.fileCursor = max(m.fileCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.fileCursor = min(m.fileCursor+1, strings.Count(m.screen.Content, "\n"))
	case key.Matches(msg, m.keys.Open):
		return m.apply(domain.ClickLine{Line: m.fileCursor})
	case key.Matches(msg, m.keys.Mark):
		if m.anchor < 0 {
			m.anchor = m.fileCursor
			m.status = "Move to the last line of the function and press v again"

			return m, nil
		}

		selection := m.fileSelection(m.anchor, m.fileCursor)
		m.anchor = -1

		return m.apply(domain.SelectText{Selection: selection})
	default:
		var cmd tea.Cmd

		m.code, cmd = m.code.Update(msg)

		return m, cmd
	}

	m.syncViewport()

	return m, nil
}

func (m tutorModel) adjacentTab(step int) string {
	tabs := m.session.OpenFiles
	if len(tabs) == 0 {
		return model.DirectoryID
	}

	current := 0

	for i, id := range tabs {
		if id == m.session.ActiveFile {
			current = i
		}
	}

	return tabs[(current+step+len(tabs))%len(tabs)]
}

func (m tutorModel) fileSelection(from, to int) string {
	if from > to {
		from, to = to, from
	}

	lines := strings.Split(m.screen.Content, "\n")
	to = min(to, len(lines)-1)

	return strings.Join(lines[from:to+1], "\n")
}

func (m tutorModel) handleFunctionSelectedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.apply(domain.ConfirmDocumentation{})
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.No):
		return m.apply(domain.CancelSelection{})
	}

	return m, nil
}

func (m tutorModel) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		return m.apply(domain.EditDocstring{Text: m.editor.Value()}, domain.SubmitDocstring{})
	}

	var cmd tea.Cmd

	m.editor, cmd = m.editor.Update(msg)

	if m.editor.Value() == m.session.DocstringText {
		return m, cmd
	}

	next, applyCmd := m.apply(domain.EditDocstring{Text: m.editor.Value()})

	return next, tea.Batch(cmd, applyCmd)
}

func (m tutorModel) handleValidationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	questions := m.screen.Questions

	answer := model.Unanswered

	switch {
	case key.Matches(msg, m.keys.Up):
		m.question = max(m.question-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.question = min(m.question+1, len(questions)-1)
		return m, nil
	case key.Matches(msg, m.keys.Revise):
		return m.apply(domain.ReviseDocstring{})
	case key.Matches(msg, m.keys.Continue):
		return m.apply(domain.ContinueToLines{})
	case key.Matches(msg, m.keys.Yes):
		answer = model.AnswerYes
	case key.Matches(msg, m.keys.No):
		answer = model.AnswerNo
	case key.Matches(msg, m.keys.Unsure):
		answer = model.AnswerUnsure
	default:
		var cmd tea.Cmd

		m.code, cmd = m.code.Update(msg)

		return m, cmd
	}

	if m.question >= len(questions) {
		return m, nil
	}

	next, cmd := m.apply(domain.AnswerQuestion{Key: questions[m.question].Key, Answer: answer})
	if next.status == "" {
		next.question = min(next.question+1, len(questions)-1)
	}

	return next, cmd
}

func (m tutorModel) handleLineSelectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selectable := m.screen.Layout.SelectableLines()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.lineCursor = step(selectable, m.lineCursor, -1)
	case key.Matches(msg, m.keys.Down):
		m.lineCursor = step(selectable, m.lineCursor, 1)
	case key.Matches(msg, m.keys.Toggle):
		return m.apply(domain.ToggleLine{Line: m.lineCursor})
	case key.Matches(msg, m.keys.Continue):
		return m.apply(domain.ContinueToComments{})
	case key.Matches(msg, m.keys.Back):
		return m.apply(domain.BackToValidation{})
	default:
		return m, nil
	}

	m.syncViewport()

	return m, nil
}

//nolint:cyclop // one case per key
func (m tutorModel) handleCommentingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session.EditingLine != model.NoLine {
		return m.handleCommentInputKey(msg)
	}

	lines := bodyLines(m.screen.Layout)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.lineCursor = step(lines, m.lineCursor, -1)
		return m.hover()
	case key.Matches(msg, m.keys.Down):
		m.lineCursor = step(lines, m.lineCursor, 1)
		return m.hover()
	case key.Matches(msg, m.keys.Choose):
		if m.session.SuggestionLine == model.NoLine {
			m.status = "Move onto a flagged line to see suggestions"
			return m, nil
		}

		n, _ := strconv.Atoi(msg.String())

		return m.apply(domain.ChooseSuggestion{Line: m.session.SuggestionLine, Index: n - 1})
	case key.Matches(msg, m.keys.Write):
		next, cmd := m.apply(domain.BeginFreeText{Line: m.lineCursor})
		if next.session.EditingLine == model.NoLine {
			return next, cmd
		}

		next.comment.SetValue(next.session.EditBuffer)
		next.comment.CursorEnd()
		focus := next.comment.Focus()

		return next, tea.Batch(cmd, focus)
	case key.Matches(msg, m.keys.Cancel):
		return m.apply(domain.HideSuggestions{})
	case key.Matches(msg, m.keys.Compare):
		return m.apply(domain.CompareSolutions{})
	case key.Matches(msg, m.keys.Back):
		return m.apply(domain.BackToLines{})
	}

	return m, nil
}

func (m tutorModel) handleCommentInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		next, cmd := m.apply(domain.EditFreeText{Text: m.comment.Value()}, domain.CommitFreeText{})
		if next.session.EditingLine == model.NoLine {
			next.comment.Blur()
		}

		return next, cmd
	case tea.KeyEsc:
		next, cmd := m.apply(domain.CancelFreeText{})
		next.comment.Blur()

		return next, cmd
	}

	var cmd tea.Cmd

	m.comment, cmd = m.comment.Update(msg)

	if m.comment.Value() == m.session.EditBuffer {
		return m, cmd
	}

	next, applyCmd := m.apply(domain.EditFreeText{Text: m.comment.Value()})

	return next, tea.Batch(cmd, applyCmd)
}

func (m tutorModel) handleComparisonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
		tab := model.TabExample
		if m.session.ComparisonTab == model.TabExample {
			tab = model.TabYours
		}

		return m.apply(domain.SelectTab{Tab: tab})
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd()
	case key.Matches(msg, m.keys.Restart):
		return m.apply(domain.Restart{})
	default:
		var cmd tea.Cmd

		m.code, cmd = m.code.Update(msg)

		return m, cmd
	}
}

func (m tutorModel) copyCmd() tea.Cmd {
	clip := m.opts.clipboard
	tab := m.screen.ComparisonTab.String()
	text := shownSolution(m.screen)

	if clip == nil {
		return func() tea.Msg {
			return copiedMsg{tab: tab, err: errors.New("clipboard is not available")}
		}
	}

	return func() tea.Msg {
		return copiedMsg{tab: tab, err: clip.WriteAll(text)}
	}
}

func bodyLines(layout domain.Layout) []int {
	lines := make([]int, 0, len(layout.Body))
	for _, line := range layout.Body {
		lines = append(lines, line.Number)
	}

	return lines
}

// step moves from current to the neighbouring entry of lines in direction dir.
func step(lines []int, current, dir int) int {
	if len(lines) == 0 {
		return current
	}

	for i, line := range lines {
		if line == current {
			return lines[min(max(i+dir, 0), len(lines)-1)]
		}
	}

	if dir < 0 {
		for i := len(lines) - 1; i >= 0; i-- {
			if lines[i] < current {
				return lines[i]
			}
		}

		return lines[0]
	}

	for _, line := range lines {
		if line > current {
			return line
		}
	}

	return lines[len(lines)-1]
}
