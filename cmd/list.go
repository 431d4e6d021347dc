package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/docent/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files of the sample project",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.List(domain.ListArgs{})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
