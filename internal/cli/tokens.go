package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketlang/rocket/internal/lexer"
	"github.com/rocketlang/rocket/internal/token"
)

func newTokensCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the lexeme stream for a Rocket program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readSourceFile(args[0])
			if err != nil {
				return err
			}
			lexemes, lexErr := lexer.New(token.NewReservedTable()).Tokenize(rows)
			for _, l := range lexemes {
				fmt.Fprintln(cmd.OutOrStdout(), l.String())
			}
			return lexErr
		},
	}
}
