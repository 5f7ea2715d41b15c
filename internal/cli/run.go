package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketlang/rocket/internal/session"
)

func newRunCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a Rocket program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readSourceFile(args[0])
			if err != nil {
				return err
			}

			bundle, runErr := session.New().Run(rows, os.Stdin, os.Stdout)
			if opts.debug || opts.cfg.Verbose {
				printTable(os.Stderr, bundle.LexemeTable)
				printTable(os.Stderr, bundle.IdentifierTable)
				printTable(os.Stderr, bundle.ConstantTable)
				if bundle.Ops != nil {
					printTable(os.Stderr, bundle.HistoryTable)
					printTable(os.Stderr, bundle.MarksTable)
				}
				if bundle.Variables != nil {
					printTable(os.Stderr, bundle.VariablesTable)
				}
			}
			if runErr != nil {
				return fmt.Errorf("run id %s: %w", bundle.RunID, runErr)
			}
			return nil
		},
	}
	return cmd
}
