package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/docent/internal/domain"
)

// replayCmd represents the replay command.
var replayCmd = newReplayCmd()

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "Run a script of tutorial commands",
		Long: `Run a file of plain tutorial commands, one per line, and print every screen.
Lines starting with # are ignored. Without a script, or with "-", commands
are read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script := "-"
			if len(args) == 1 {
				script = args[0]
			}

			return workflow.Replay(domain.ReplayArgs{Script: script, Stdin: cmd.InOrStdin()})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
