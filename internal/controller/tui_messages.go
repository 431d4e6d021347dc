package controller

// Message types.
type highlightMsg struct {
	fileID string
	text   string
}

// hideSuggestionsMsg fires after the hover delay. It is ignored when seq no
// longer matches the model, which happens whenever focus re-enters a line.
type hideSuggestionsMsg struct {
	seq int
}

type scrollToValidationMsg struct {
	visit int
}

type copiedMsg struct {
	tab string
	err error
}

// List item types.
type fileItem struct {
	id     string
	label  string
	folder string
}

func (f fileItem) FilterValue() string {
	return f.id
}
