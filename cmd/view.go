package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/docent/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Show a project file and the functions defined in it",
		Long: `Show a project file with line numbers. Python scripts are highlighted and
followed by the functions found in them. File names are matched fuzzily, so
"preproc" finds preprocessing.py.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.View(domain.ViewArgs{File: args[0]})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
