// Package adapter contains the infrastructure the tutorial reads from: the sample
// content catalog, the syntax highlighter and the clipboard.
package adapter

import (
	"embed"
	"fmt"
	"path"
	"strings"

	m "github.com/mouse-blink/docent/internal/model"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed samples
var samplesFS embed.FS

const manifestPath = "samples/catalog.yaml"

// DefaultCommentOptions are offered for lines without authored suggestions.
var DefaultCommentOptions = []string{
	"# Initialize preprocessing_parameters dictionary.",
	"# Define variable.",
}

// ContentStore is the read-only sample catalog the tutorial operates on.
type ContentStore interface {
	// Files returns the catalog in directory display order.
	Files() []m.ScriptFile
	// File looks up a catalog entry by id.
	File(id string) (m.ScriptFile, bool)
	// FileContent returns the text of a file. Unknown ids yield placeholder text.
	FileContent(id string) string
	// CommentOptions returns the suggestions for a 0-based line of a file.
	CommentOptions(fileID string, lineIndex int) []string
	// CommentOptionsForText matches lineContent against the file's lines by
	// trimmed equality and returns the suggestions of the first match.
	CommentOptionsForText(fileID, lineContent string) []string
	// ExampleSolution returns the authored solution for a function.
	ExampleSolution(fileID, functionName string) (string, bool)
	// Resolve finds a file by exact id or fuzzy match.
	Resolve(query string) (m.ScriptFile, bool)
}

type manifest struct {
	Files       []manifestFile                  `yaml:"files"`
	Suggestions map[string][]manifestSuggestion `yaml:"suggestions"`
	Solutions   map[string]map[string]string    `yaml:"solutions"`
}

type manifestFile struct {
	ID     string `yaml:"id"`
	Folder string `yaml:"folder"`
	Kind   string `yaml:"kind"`
	Format string `yaml:"format"`
	Source string `yaml:"source"`
	Main   bool   `yaml:"main"`
}

type manifestSuggestion struct {
	Line    string   `yaml:"line"`
	Options []string `yaml:"options"`
}

type lineKey struct {
	fileID string
	index  int
}

type contentStore struct {
	files       []m.ScriptFile
	byID        map[string]int
	lines       map[string][]string
	suggestions map[lineKey][]string
	solutions   map[string]map[string]string
}

// NewSampleContentStore loads the embedded sample catalog.
func NewSampleContentStore() (ContentStore, error) {
	data, err := samplesFS.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return NewContentStore(data, func(name string) ([]byte, error) {
		return samplesFS.ReadFile(path.Join("samples", name))
	})
}

// NewContentStore builds a store from a YAML manifest and a reader for the
// files it references.
func NewContentStore(manifestData []byte, read func(name string) ([]byte, error)) (ContentStore, error) {
	store, err := newContentStore(manifestData, read)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func newContentStore(manifestData []byte, read func(name string) ([]byte, error)) (*contentStore, error) {
	var mf manifest
	if err := yaml.Unmarshal(manifestData, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	store := &contentStore{
		byID:        make(map[string]int, len(mf.Files)),
		lines:       make(map[string][]string),
		suggestions: make(map[lineKey][]string),
		solutions:   mf.Solutions,
	}

	for _, entry := range mf.Files {
		file, err := loadManifestFile(entry, read)
		if err != nil {
			return nil, err
		}

		if _, dup := store.byID[file.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", file.ID)
		}

		store.byID[file.ID] = len(store.files)
		store.files = append(store.files, file)
		store.lines[file.ID] = strings.Split(file.Content, "\n")
	}

	for fileID, suggestions := range mf.Suggestions {
		if err := store.indexSuggestions(fileID, suggestions); err != nil {
			return nil, err
		}
	}

	return store, nil
}

func loadManifestFile(entry manifestFile, read func(name string) ([]byte, error)) (m.ScriptFile, error) {
	if entry.ID == "" {
		return m.ScriptFile{}, fmt.Errorf("catalog entry without id")
	}

	file := m.ScriptFile{
		ID:          entry.ID,
		DisplayName: strings.ToUpper(entry.ID),
		Kind:        m.FileKind(entry.Kind),
		Folder:      entry.Folder,
		Format:      entry.Format,
		Main:        entry.Main,
	}

	switch file.Kind {
	case m.KindSource, m.KindText:
		if entry.Source == "" {
			return m.ScriptFile{}, fmt.Errorf("catalog entry %q has no source", entry.ID)
		}

		data, err := read(entry.Source)
		if err != nil {
			return m.ScriptFile{}, fmt.Errorf("failed to read %s: %w", entry.Source, err)
		}

		file.Content = strings.TrimRight(string(data), "\n")
	case m.KindBinary:
		file.Content = binaryPlaceholder(file)
	default:
		return m.ScriptFile{}, fmt.Errorf("catalog entry %q has unsupported kind %q", entry.ID, entry.Kind)
	}

	return file, nil
}

// indexSuggestions resolves text-authored suggestions to every line they occur at.
func (s *contentStore) indexSuggestions(fileID string, suggestions []manifestSuggestion) error {
	lines, ok := s.lines[fileID]
	if !ok {
		return fmt.Errorf("suggestions for unknown file %q", fileID)
	}

	for _, suggestion := range suggestions {
		want := strings.TrimSpace(suggestion.Line)
		matched := false

		for i, line := range lines {
			if strings.TrimSpace(line) != want {
				continue
			}

			key := lineKey{fileID: fileID, index: i}
			s.suggestions[key] = append(s.suggestions[key], suggestion.Options...)
			matched = true
		}

		if !matched {
			return fmt.Errorf("suggestion line %q not found in %s", want, fileID)
		}
	}

	return nil
}

func (s *contentStore) Files() []m.ScriptFile {
	return append([]m.ScriptFile(nil), s.files...)
}

func (s *contentStore) File(id string) (m.ScriptFile, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return m.ScriptFile{}, false
	}

	return s.files[idx], true
}

func (s *contentStore) FileContent(id string) string {
	if file, ok := s.File(id); ok {
		return file.Content
	}

	return genericContent(id, "unknown")
}

func (s *contentStore) CommentOptions(fileID string, lineIndex int) []string {
	if options, ok := s.suggestions[lineKey{fileID: fileID, index: lineIndex}]; ok {
		return append([]string(nil), options...)
	}

	return append([]string(nil), DefaultCommentOptions...)
}

func (s *contentStore) CommentOptionsForText(fileID, lineContent string) []string {
	want := strings.TrimSpace(lineContent)

	for i, line := range s.lines[fileID] {
		if strings.TrimSpace(line) == want {
			return s.CommentOptions(fileID, i)
		}
	}

	return append([]string(nil), DefaultCommentOptions...)
}

func (s *contentStore) ExampleSolution(fileID, functionName string) (string, bool) {
	solution, ok := s.solutions[fileID][functionName]
	if !ok {
		return "", false
	}

	return strings.TrimRight(solution, "\n"), true
}

func (s *contentStore) Resolve(query string) (m.ScriptFile, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return m.ScriptFile{}, false
	}

	if file, ok := s.File(query); ok {
		return file, true
	}

	ids := make([]string, len(s.files))
	for i, file := range s.files {
		ids[i] = file.ID
	}

	matches := fuzzy.Find(query, ids)
	if len(matches) == 0 {
		return m.ScriptFile{}, false
	}

	return s.files[matches[0].Index], true
}

func binaryPlaceholder(file m.ScriptFile) string {
	format := strings.ToUpper(strings.TrimPrefix(path.Ext(file.ID), "."))

	title := "Data File"
	note := "Binary data file - use appropriate loading functions to access content"

	if file.Format == "image" {
		title = "Image File"
		note = "Image preview is not available in this viewer"
	}

	return fmt.Sprintf("%s: %s\n\nFormat: %s\n\n%s", title, file.ID, format, note)
}

func genericContent(id, kind string) string {
	return fmt.Sprintf("Content for %s\n\nThis is a %s file.\n\n// File content would be displayed here\n// depending on the file type and format.", id, kind)
}
