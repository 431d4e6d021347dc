// Package model defines the data structures shared by the tutorial layers.
package model

// FileKind classifies a catalog entry.
type FileKind string

const (
	// KindDirectory is the project directory pseudo-file shown as the first tab.
	KindDirectory FileKind = "directory"
	// KindSource is a Python script that can be browsed for functions.
	KindSource FileKind = "source"
	// KindText is a plain text document.
	KindText FileKind = "text"
	// KindBinary is a data or image file rendered as a placeholder.
	KindBinary FileKind = "binary"
)

// DirectoryID is the id of the permanent project directory tab.
const DirectoryID = "directory"

// ScriptFile is one immutable entry of the sample catalog.
type ScriptFile struct {
	ID          string
	DisplayName string
	Kind        FileKind
	// Folder is the directory the file is listed under, empty for the project root.
	Folder string
	// Format is a short label for binary placeholders ("data", "image").
	Format  string
	Main    bool
	Content string
}

// Label returns the human readable type shown in the directory listing.
func (f ScriptFile) Label() string {
	switch f.Kind {
	case KindDirectory:
		return "Folder"
	case KindSource:
		return "Python file"
	case KindText:
		return "Text file"
	case KindBinary:
		if f.Format == "image" {
			return "Image file"
		}

		return "Data file"
	default:
		return ""
	}
}
