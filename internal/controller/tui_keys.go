package controller

import (
	"github.com/charmbracelet/bubbles/key"

	m "github.com/mouse-blink/docent/internal/model"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Open     key.Binding
	CloseTab key.Binding
	Mark     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Submit   key.Binding
	Yes      key.Binding
	No       key.Binding
	Unsure   key.Binding
	Revise   key.Binding
	Continue key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Choose   key.Binding
	Write    key.Binding
	Compare  key.Binding
	Copy     key.Binding
	Restart  key.Binding
	Script   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "previous tab")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		CloseTab: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close tab")),
		Mark:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select lines")),
		Confirm:  key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter", "add documentation")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		No:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		Unsure:   key.NewBinding(key.WithKeys("u", "?"), key.WithHelp("u", "unsure")),
		Revise:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "revise")),
		Continue: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle line")),
		Back:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Choose:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "use suggestion")),
		Write:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write your own")),
		Compare:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Script:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "back to script")),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// stageKeys lists the bindings shown in the help line for a stage.
func (k keyMap) stageKeys(stage m.Stage, typing bool) []key.Binding {
	switch stage {
	case m.StageBrowsing:
		return []key.Binding{k.Up, k.Down, k.NextTab, k.Open, k.Mark, k.CloseTab, k.Quit}
	case m.StageFunctionSelected:
		return []key.Binding{k.Confirm, k.Cancel}
	case m.StageDocstringEditing:
		return []key.Binding{k.Submit, k.Script}
	case m.StageDocstringValidation:
		return []key.Binding{k.Up, k.Down, k.Yes, k.No, k.Unsure, k.Revise, k.Continue, k.Script}
	case m.StageLineSelection:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Continue, k.Back, k.Script}
	case m.StageInlineCommenting:
		if typing {
			return []key.Binding{k.Continue, k.Cancel}
		}

		return []key.Binding{k.Up, k.Down, k.Choose, k.Write, k.Compare, k.Back, k.Script}
	case m.StageSolutionComparison:
		return []key.Binding{k.NextTab, k.Copy, k.Restart, k.Quit}
	default:
		return []key.Binding{k.Quit}
	}
}
