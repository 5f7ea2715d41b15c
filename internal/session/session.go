// Package session ties the lexer, grammar, parser, postfix transformer,
// and executor into the single pipeline spec.md §6 describes as the
// module's external interface, grounded on the teacher's
// lang/runner/runner.go Run(path, output, debug) entry point.
package session

import (
	"bufio"
	"io"

	"github.com/google/uuid"

	"github.com/rocketlang/rocket/internal/diagnostics"
	"github.com/rocketlang/rocket/internal/exec"
	"github.com/rocketlang/rocket/internal/grammar"
	"github.com/rocketlang/rocket/internal/lexer"
	"github.com/rocketlang/rocket/internal/parser"
	"github.com/rocketlang/rocket/internal/parsetree"
	"github.com/rocketlang/rocket/internal/postfix"
	"github.com/rocketlang/rocket/internal/token"
)

// Session runs the compilation pipeline against a fixed grammar, stamping
// every run with a correlation id so the three-table diagnostic bundle
// spec.md §10 describes can be lined up by a collaborator even across
// concurrent runs.
type Session struct {
	grammar *grammar.Grammar
}

// New builds a Session over the Rocket language's grammar.
func New() *Session {
	return &Session{grammar: grammar.NewRocketGrammar()}
}

// Bundle is everything a single Run produces: the lexeme stream, the
// parse tree, the resolved postfix stream, and (once execution finishes)
// the program's output and final variables — plus the always-produced
// three-table diagnostic bundle spec.md §10 names.
type Bundle struct {
	RunID string

	Lexemes   []token.Lexeme
	Tree      *parsetree.Match
	Ops       []postfix.Op
	Marks     map[string]int
	History   []postfix.HistoryRow
	Variables map[string]token.Number
	Output    string

	LexemeTable     diagnostics.Table
	IdentifierTable diagnostics.Table
	ConstantTable   diagnostics.Table
	HistoryTable    diagnostics.Table
	MarksTable      diagnostics.Table
	VariablesTable  diagnostics.Table
}

// Run lexes, parses, transforms, and executes source, reading lines for
// any `read` statement from input and writing `write` output to output.
// It always returns the lexeme/identifier/constant tables even when a
// later stage fails, matching compiler.py's "always produce the three
// tables" behavior; Bundle fields past the failing stage are left zero.
func (s *Session) Run(source []token.Row, input io.Reader, output io.Writer) (*Bundle, error) {
	bundle := &Bundle{RunID: uuid.NewString()}

	lexemes, lexErr := lexer.New(token.NewReservedTable()).Tokenize(source)
	bundle.Lexemes = lexemes
	bundle.LexemeTable = diagnostics.LexemeTable(lexemes)
	bundle.IdentifierTable = diagnostics.IdentifierTable(lexemes)
	bundle.ConstantTable = diagnostics.ConstantTable(lexemes)
	if lexErr != nil {
		return bundle, lexErr
	}

	tree, err := parser.New(s.grammar).Parse(lexemes)
	if err != nil {
		return bundle, err
	}
	bundle.Tree = tree

	ops, marks, history, err := postfix.New().Transform(tree)
	if err != nil {
		return bundle, err
	}
	bundle.Ops = ops
	bundle.Marks = marks
	bundle.History = history
	bundle.HistoryTable = diagnostics.HistoryTable(history)
	bundle.MarksTable = diagnostics.MarksTable(marks)

	var captured capturingWriter
	machine := exec.New(ops, &captured)
	scanner := bufio.NewScanner(input)

	outcome := machine.Run()
	for outcome.Status == exec.StatusNeedsInput {
		if !scanner.Scan() {
			return bundle, diagnostics.Internal("input exhausted while waiting for 'read %s'", outcome.PendingVariable)
		}
		machine.ProvideInput(scanner.Text())
		outcome = machine.Run()
	}

	bundle.Variables = machine.Variables()
	bundle.VariablesTable = diagnostics.VariablesTable(bundle.Variables)
	bundle.Output = captured.String()
	if _, werr := io.WriteString(output, bundle.Output); werr != nil {
		return bundle, werr
	}

	if outcome.Status == exec.StatusError {
		return bundle, outcome.Err
	}
	return bundle, nil
}

// capturingWriter buffers program output so it can be attached to the
// Bundle as well as forwarded to the caller's writer.
type capturingWriter struct {
	buf []byte
}

func (c *capturingWriter) Write(p []byte) (int, error) {
	c.buf = append(c.buf, p...)
	return len(p), nil
}

func (c *capturingWriter) String() string { return string(c.buf) }
