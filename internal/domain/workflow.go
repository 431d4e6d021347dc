package domain

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	m "github.com/mouse-blink/docent/internal/model"
)

// StartOption is a functional option for Presenter.Start.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting an interactive session.
type StartConfig struct {
	Input io.Reader
	Echo  bool
}

// WithInput makes the presenter read commands from r.
func WithInput(r io.Reader) StartOption {
	return func(c *StartConfig) {
		c.Input = r
	}
}

// WithEcho makes the presenter print each command before running it.
func WithEcho() StartOption {
	return func(c *StartConfig) {
		c.Echo = true
	}
}

// NewStartConfig applies options over the zero configuration.
func NewStartConfig(options ...StartOption) StartConfig {
	var cfg StartConfig
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// Presenter renders the tutorial and feeds user actions back into it.
type Presenter interface {
	// Start runs an interactive session and returns its final state.
	Start(tutorial Tutorial, session m.Session, options ...StartOption) (m.Session, error)
	DisplayCatalog(files []m.ScriptFile) error
	DisplayFile(file m.ScriptFile, functions []m.ExtractedFunction) error
}

// TutorArgs holds arguments for an interactive tutorial run.
type TutorArgs struct {
	// Open is a file to open on start, matched exactly or fuzzily.
	Open string
}

// ListArgs holds arguments for listing the catalog.
type ListArgs struct{}

// ViewArgs holds arguments for viewing a single file.
type ViewArgs struct {
	File string
}

// ReplayArgs holds arguments for replaying a command script.
type ReplayArgs struct {
	// Script is the path of a command script, "-" for standard input.
	Script string
	Stdin  io.Reader
}

// Workflow defines the use cases exposed on the command line.
type Workflow interface {
	Tutor(args TutorArgs) error
	List(args ListArgs) error
	View(args ViewArgs) error
	Replay(args ReplayArgs) error
}

type workflow struct {
	tutorial Tutorial
	ui       Presenter
	plain    Presenter
	logger   *slog.Logger
}

// NewWorkflow creates a Workflow. ui runs interactive sessions, plain runs replays.
func NewWorkflow(tutorial Tutorial, ui Presenter, plain Presenter, logger *slog.Logger) Workflow {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &workflow{
		tutorial: tutorial,
		ui:       ui,
		plain:    plain,
		logger:   logger,
	}
}

func (w *workflow) Tutor(args TutorArgs) error {
	session := w.tutorial.New()

	if args.Open != "" {
		file, err := w.resolve(args.Open)
		if err != nil {
			return err
		}

		session, err = w.tutorial.Apply(session, OpenFile{ID: file.ID})
		if err != nil {
			return err
		}
	}

	w.logger.Info("starting tutorial", "active_file", session.ActiveFile)

	final, err := w.ui.Start(w.tutorial, session)
	if err != nil {
		return fmt.Errorf("tutorial failed: %w", err)
	}

	w.logger.Info("tutorial finished",
		"stage", final.Stage.String(),
		"saved_docstrings", len(final.SavedDocstrings),
	)

	return nil
}

func (w *workflow) List(_ ListArgs) error {
	return w.ui.DisplayCatalog(w.tutorial.Content().Files())
}

func (w *workflow) View(args ViewArgs) error {
	file, err := w.resolve(args.File)
	if err != nil {
		return err
	}

	return w.ui.DisplayFile(file, w.tutorial.Functions(file.ID))
}

func (w *workflow) Replay(args ReplayArgs) error {
	input := args.Stdin

	if args.Script != "-" {
		f, err := os.Open(args.Script)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()

		input = f
	}

	if input == nil {
		input = os.Stdin
	}

	w.logger.Info("replaying script", "script", args.Script)

	final, err := w.plain.Start(w.tutorial, w.tutorial.New(), WithInput(input), WithEcho())
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	w.logger.Debug("replay finished", "stage", final.Stage.String())

	return nil
}

func (w *workflow) resolve(query string) (m.ScriptFile, error) {
	file, ok := w.tutorial.Content().Resolve(query)
	if !ok {
		return m.ScriptFile{}, fmt.Errorf("%w: %q", ErrUnknownFile, query)
	}

	return file, nil
}
