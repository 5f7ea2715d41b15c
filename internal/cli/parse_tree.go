package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketlang/rocket/internal/grammar"
	"github.com/rocketlang/rocket/internal/lexer"
	"github.com/rocketlang/rocket/internal/parser"
	"github.com/rocketlang/rocket/internal/token"
)

func newParseTreeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse-tree <file>",
		Short: "Print the parse tree for a Rocket program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readSourceFile(args[0])
			if err != nil {
				return err
			}
			lexemes, err := lexer.New(token.NewReservedTable()).Tokenize(rows)
			if err != nil {
				return err
			}
			tree, err := parser.New(grammar.NewRocketGrammar()).Parse(lexemes)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tree.String())
			return nil
		},
	}
}
