package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketlang/rocket/internal/repl"
)

func newReplCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Rocket session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.New(os.Stdin, os.Stdout).Run()
		},
	}
}
