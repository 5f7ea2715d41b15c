// Package repl implements the interactive front end spec.md §5 assumes
// when it says only `read` ever suspends a run: a line-oriented loop that
// accumulates source until a blank line, then runs it through the lexer,
// parser, postfix transformer, and executor directly, prompting for
// `read` input as the executor asks for it rather than reading it all up
// front.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/rocketlang/rocket/internal/exec"
	"github.com/rocketlang/rocket/internal/grammar"
	"github.com/rocketlang/rocket/internal/lexer"
	"github.com/rocketlang/rocket/internal/parser"
	"github.com/rocketlang/rocket/internal/postfix"
	"github.com/rocketlang/rocket/internal/token"
)

// REPL reads Rocket statements interactively and executes them as soon as
// a blank line closes the current block.
type REPL struct {
	in     *bufio.Reader
	out    io.Writer
	color  bool
	parser *parser.Parser
}

// New builds a REPL reading from in and writing prompts/output to out.
// Colorization is decided by whether out is attached to a real terminal
// (golang.org/x/term.IsTerminal), the same check the teacher's pack uses
// for build-log TTY detection.
func New(in io.Reader, out io.Writer) *REPL {
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &REPL{
		in:     bufio.NewReader(in),
		out:    out,
		color:  color,
		parser: parser.New(grammar.NewRocketGrammar()),
	}
}

// Run loops reading and executing statements until EOF.
func (r *REPL) Run() error {
	for {
		rows, ok := r.readBlock()
		if !ok {
			return nil
		}
		if len(rows) == 0 {
			continue
		}
		r.execute(rows)
	}
}

func (r *REPL) readBlock() ([]token.Row, bool) {
	r.prompt(">>> ")
	var rows []token.Row
	for {
		line, err := r.in.ReadString('\n')
		trimmed := trimNewline(line)
		if trimmed != "" {
			rows = append(rows, trimmed)
		}
		if err != nil {
			return rows, len(rows) > 0 || err == nil
		}
		if trimmed == "" {
			return rows, true
		}
		r.prompt("... ")
	}
}

func (r *REPL) execute(rows []token.Row) {
	lexemes, err := lexer.New(token.NewReservedTable()).Tokenize(rows)
	if err != nil {
		r.report(err)
		return
	}
	tree, err := r.parser.Parse(lexemes)
	if err != nil {
		r.report(err)
		return
	}
	ops, _, _, err := postfix.New().Transform(tree)
	if err != nil {
		r.report(err)
		return
	}

	machine := exec.New(ops, r.out)
	outcome := machine.Run()
	for outcome.Status == exec.StatusNeedsInput {
		r.prompt(fmt.Sprintf("%s? ", outcome.PendingVariable))
		line, _ := r.in.ReadString('\n')
		machine.ProvideInput(trimNewline(line))
		outcome = machine.Run()
	}
	if outcome.Status == exec.StatusError {
		r.report(outcome.Err)
	}
}

func (r *REPL) prompt(text string) {
	if r.color {
		fmt.Fprintf(r.out, "\x1b[36m%s\x1b[0m", text)
		return
	}
	fmt.Fprint(r.out, text)
}

func (r *REPL) report(err error) {
	if r.color {
		fmt.Fprintf(r.out, "\x1b[31m%v\x1b[0m\n", err)
		return
	}
	fmt.Fprintln(r.out, err)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
