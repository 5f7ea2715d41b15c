// Package cli wires the Rocket pipeline into a cobra command tree,
// replacing the teacher's hand-rolled os.Args parsing
// (lang/in/cli/cli.go, lang/cmd/cow-lang/main.go) with
// github.com/spf13/cobra and github.com/spf13/pflag.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketlang/rocket/internal/config"
)

// options holds the persistent flags every subcommand shares.
type options struct {
	debug      bool
	configPath string
	cfg        config.Config
}

// NewRootCommand builds the `rocket` command tree: run, tokens,
// parse-tree, postfix, and repl, all sharing one configuration load.
// Each subcommand builds its own grammar.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "rocket",
		Short: "Compile and run Rocket language programs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "print diagnostic tables (run) and marks and transformation history (postfix)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", ".rocket.yaml", "path to an optional configuration file")

	root.AddCommand(
		newRunCommand(opts),
		newTokensCommand(opts),
		newParseTreeCommand(opts),
		newPostfixCommand(opts),
		newReplCommand(opts),
	)
	return root
}

func readSourceFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return splitRows(string(data)), nil
}

func splitRows(text string) []string {
	var rows []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			rows = append(rows, trimCR(text[start:i]))
			start = i + 1
		}
	}
	if start < len(text) {
		rows = append(rows, trimCR(text[start:]))
	}
	return rows
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}
