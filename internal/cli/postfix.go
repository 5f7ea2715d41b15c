package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketlang/rocket/internal/grammar"
	"github.com/rocketlang/rocket/internal/lexer"
	"github.com/rocketlang/rocket/internal/parser"
	"github.com/rocketlang/rocket/internal/postfix"
	"github.com/rocketlang/rocket/internal/token"
)

func newPostfixCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "postfix <file>",
		Short: "Print the resolved postfix stream for a Rocket program",
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
			ops, marks, history, err := postfix.New().Transform(tree)
			if err != nil {
				return err
			}
			for i, op := range ops {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d: %+v\n", i, op)
			}
			if opts.debug {
				for name, pos := range marks {
					fmt.Fprintf(cmd.ErrOrStderr(), "mark %s -> %d\n", name, pos)
				}
				for _, h := range history {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s | %s | depth %d\n", h.Lexeme, h.OperatorStack, h.OutputDepth)
				}
			}
			return nil
		},
	}
}
