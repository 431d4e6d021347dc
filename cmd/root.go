// Package cmd provides the root command and CLI setup for docent.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/docent/internal/adapter"
	"github.com/mouse-blink/docent/internal/config"
	"github.com/mouse-blink/docent/internal/controller"
	"github.com/mouse-blink/docent/internal/domain"
	"github.com/mouse-blink/docent/internal/logging"
)

var plainFlag bool
var openFlag string
var historyFlag string
var styleFlag string
var configFlag string
var logFileFlag string
var logLevelFlag string

var workflow domain.Workflow
var logCloser io.Closer

// workflowFactory wires the tutorial, its front-ends and the logger.
type workflowFactory func(cmd *cobra.Command, cfg *config.Config, plain bool) (domain.Workflow, io.Closer, error)

var buildWorkflow workflowFactory = newWorkflow

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docent",
		Short: "Learn to write Python docstrings and inline comments",
		Long: `Docent is an interactive tutorial that walks through documenting a small
Python project: pick a function, write its docstring, check it against four
questions, choose the lines that deserve a comment, write the comments and
compare the result with an example solution.

Without a terminal, or with --plain, the tutorial reads line commands from
standard input. Type "help" for the list.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			wf, closer, err := buildWorkflow(cmd, cfg, plainFlag)
			if err != nil {
				return err
			}

			workflow = wf
			logCloser = closer

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.Tutor(domain.TutorArgs{Open: openFlag})
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&plainFlag, "plain", false, "use line commands instead of the full screen interface")
	flags.StringVar(&historyFlag, "history", "", "keep saved docstrings on restart (retain) or drop them (clear)")
	flags.StringVar(&styleFlag, "style", "", "chroma style used to highlight Python code")
	flags.StringVar(&configFlag, "config", "", "path of a YAML configuration file")
	flags.StringVar(&logFileFlag, "log-file", "", "write logs to this file")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")
	cmd.Flags().StringVarP(&openFlag, "open", "o", "", "open this file when the tutorial starts")

	return cmd
}

// resolveConfig loads the configuration file and applies explicitly set flags over it.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}

	overlay := &config.Config{}
	flags := cmd.Flags()

	if flags.Changed("history") {
		overlay.History = config.HistoryPolicy(historyFlag)
	}

	if flags.Changed("style") {
		overlay.HighlightStyle = styleFlag
	}

	if flags.Changed("log-file") {
		overlay.LogFile = logFileFlag
	}

	if flags.Changed("log-level") {
		overlay.LogLevel = logLevelFlag
	}

	cfg = config.Merge(cfg, overlay)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

func newWorkflow(cmd *cobra.Command, cfg *config.Config, plain bool) (domain.Workflow, io.Closer, error) {
	useTTY := !plain && controller.IsTTY(os.Stdout)

	logOptions := logging.Options{File: cfg.LogFile, Level: cfg.LogLevel}
	if !useTTY {
		logOptions.Stderr = cmd.ErrOrStderr()
	}

	logger, closer, err := logging.New(logOptions)
	if err != nil {
		return nil, nil, err
	}

	store, err := adapter.NewSampleContentStore()
	if err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("failed to load the sample project: %w", err)
	}

	tutorial := domain.NewTutorial(store,
		domain.WithHistoryPolicy(cfg.History),
		domain.WithLogger(logger),
	)

	options := []controller.Option{
		controller.WithHighlighter(adapter.NewLazyHighlighter(cfg.HighlightStyle)),
		controller.WithClipboard(adapter.NewSystemClipboard()),
		controller.WithTimings(cfg.HoverHideDelay, cfg.ScrollDelay),
		controller.WithLogger(logger),
	}

	ui := controller.NewUI(cmd, useTTY, options...)
	plainUI := controller.NewSimpleUI(cmd, options...)

	return domain.NewWorkflow(tutorial, ui, plainUI, logger), closer, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	if logCloser != nil {
		_ = logCloser.Close()
	}

	if err != nil {
		os.Exit(1)
	}
}
