package adapter

import "github.com/atotto/clipboard"

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

// NewSystemClipboard returns the clipboard backed by the host OS.
func NewSystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
