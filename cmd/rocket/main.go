// Command rocket is the Rocket language CLI: lex, parse, transform, run,
// or drop into an interactive REPL over the same core pipeline, replacing
// the teacher's hand-rolled os.Args scanning (lang/cmd/cow-lang/main.go)
// with a cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/rocketlang/rocket/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
