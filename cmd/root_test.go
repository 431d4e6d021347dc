package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/docent/internal/config"
	"github.com/mouse-blink/docent/internal/domain"
	domainmocks "github.com/mouse-blink/docent/internal/domain/mocks"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// wiring records what the root command passed to the workflow factory.
type wiring struct {
	cfg   *config.Config
	plain bool
}

func stubWorkflow(t *testing.T, wf domain.Workflow) *wiring {
	t.Helper()

	got := &wiring{}

	original := buildWorkflow
	buildWorkflow = func(_ *cobra.Command, cfg *config.Config, plain bool) (domain.Workflow, io.Closer, error) {
		got.cfg = cfg
		got.plain = plain

		return wf, closerFunc(func() error { return nil }), nil
	}

	t.Cleanup(func() { buildWorkflow = original })

	return got
}

func newTestRootCmd(args ...string) *cobra.Command {
	cmd := newRootCmd()
	cmd.AddCommand(newListCmd(), newViewCmd(), newReplayCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	return cmd
}

func TestRootCmd_StartsTutorial(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	got := stubWorkflow(t, mockWorkflow)

	mockWorkflow.On("Tutor", domain.TutorArgs{}).Return(nil)

	err := newTestRootCmd().Execute()
	require.NoError(t, err)

	require.NotNil(t, got.cfg)
	assert.False(t, got.plain)
	assert.Equal(t, config.DefaultConfig(), got.cfg)
}

func TestRootCmd_OpenFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	stubWorkflow(t, mockWorkflow)

	mockWorkflow.On("Tutor", mock.MatchedBy(func(args domain.TutorArgs) bool {
		return args.Open == "preproc"
	})).Return(nil)

	err := newTestRootCmd("--open", "preproc").Execute()
	require.NoError(t, err)
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history: clear\nhighlight_style: dracula\nlog_level: warn\n"), 0o600))

	tests := []struct {
		name    string
		args    []string
		plain   bool
		history config.HistoryPolicy
		style   string
		level   string
	}{
		{
			name:    "config file only",
			args:    []string{"--config", path},
			history: config.HistoryClear,
			style:   "dracula",
			level:   "warn",
		},
		{
			name:    "flags win",
			args:    []string{"--config", path, "--history", "retain", "--style", "github", "--log-level", "debug", "--plain"},
			plain:   true,
			history: config.HistoryRetain,
			style:   "github",
			level:   "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := domainmocks.NewMockWorkflow(t)
			got := stubWorkflow(t, mockWorkflow)

			mockWorkflow.On("Tutor", mock.Anything).Return(nil)

			require.NoError(t, newTestRootCmd(tt.args...).Execute())

			assert.Equal(t, tt.plain, got.plain)
			assert.Equal(t, tt.history, got.cfg.History)
			assert.Equal(t, tt.style, got.cfg.HighlightStyle)
			assert.Equal(t, tt.level, got.cfg.LogLevel)
		})
	}
}

func TestRootCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad history", args: []string{"--history", "forever"}},
		{name: "bad log level", args: []string{"--log-level", "loud"}},
		{name: "positional args", args: []string{"main.py"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := domainmocks.NewMockWorkflow(t)
			stubWorkflow(t, mockWorkflow)

			err := newTestRootCmd(tt.args...).Execute()
			require.Error(t, err)
			mockWorkflow.AssertNotCalled(t, "Tutor", mock.Anything)
		})
	}
}

func TestRootCmd_WorkflowError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	stubWorkflow(t, mockWorkflow)

	mockWorkflow.On("Tutor", mock.Anything).Return(domain.ErrUnknownFile)

	err := newTestRootCmd("--open", "zzzz").Execute()
	require.ErrorIs(t, err, domain.ErrUnknownFile)
}

func TestNewWorkflow_PlainReplay(t *testing.T) {
	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	wf, closer, err := newWorkflow(cmd, config.DefaultConfig(), true)
	require.NoError(t, err)

	defer func() { _ = closer.Close() }()

	err = wf.Replay(domain.ReplayArgs{Script: "-", Stdin: bytes.NewBufferString("open main.py\nquit\n")})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "> open main.py")
	assert.Contains(t, out.String(), "[MAIN.PY]")
}

func TestNewWorkflow_LogFileError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "missing", "docent.log")

	_, _, err := newWorkflow(newRootCmd(), cfg, true)
	require.Error(t, err)
}
