// Package diagnostics implements the error taxonomy of spec.md §7
// (LexicalError, SyntaxError, NameError, ValueError, and internal
// invariant violations) plus the tabular report builders spec.md §6 and
// §10 ask collaborators to be able to render.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/errors"

	"github.com/rocketlang/rocket/internal/token"
)

// Kind identifies which branch of the taxonomy a diagnostic belongs to.
type Kind string

const (
	KindLexical  Kind = "Lexical Error"
	KindSyntax   Kind = "Syntax Error"
	KindName     Kind = "Name Error"
	KindValue    Kind = "Value Error"
	KindInternal Kind = "Internal Error"
)

// Diagnostic is a single offending-lexeme error, carrying enough context
// for a collaborator to render "File X, line Y column Z: <message> '<text>'"
// without re-deriving it from a bare error string.
type Diagnostic struct {
	Kind    Kind
	Lexeme  *token.Lexeme // nil for "unexpected end of program"
	Message string
	cause   error
}

func (d *Diagnostic) Error() string {
	if d.Lexeme == nil {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s %q at %s", d.Kind, d.Message, d.Lexeme.Text, d.Lexeme.Position)
}

// Cause implements juju/errors' causer interface so wrapped diagnostics
// keep pointing at the original Diagnostic through errors.Cause.
func (d *Diagnostic) Cause() error {
	if d.cause != nil {
		return d.cause
	}
	return d
}

// New wraps a Diagnostic with an annotated juju/errors error, preserving
// the cause chain so a collaborator catching a generic error can still
// recover the structured Diagnostic via errors.Cause.
func New(kind Kind, lexeme *token.Lexeme, message string) error {
	d := &Diagnostic{Kind: kind, Lexeme: lexeme, Message: message}
	return errors.Annotatef(d, "%s", kind)
}

// AsDiagnostic recovers the structured Diagnostic from any error produced
// by this package, following the juju/errors cause chain.
func AsDiagnostic(err error) (*Diagnostic, bool) {
	if err == nil {
		return nil, false
	}
	d, ok := errors.Cause(err).(*Diagnostic)
	return d, ok
}

// LexicalError reports one unknown-symbol lexeme.
func LexicalError(lexeme token.Lexeme) error {
	return New(KindLexical, &lexeme, "Unknown symbol")
}

// AggregateLexicalErrors collects every lexical error encountered across a
// whole source into a single reportable error, per spec.md §4.1 ("return
// (lexemes, diagnostics) where diagnostics lists every error lexeme").
// Syntax analysis is never attempted while this is non-nil.
func AggregateLexicalErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	var agg *multierror.Error
	for _, e := range errs {
		agg = multierror.Append(agg, e)
	}
	agg.ErrorFormat = func(es []error) string {
		lines := make([]string, len(es))
		for i, e := range es {
			lines[i] = e.Error()
		}
		return strings.Join(lines, "\n"+strings.Repeat("*", 60)+"\n")
	}
	return agg
}

// UnexpectedEndOfProgram is returned when the parser ran out of lexemes
// before the root symbol could close, or when nothing in the input ever
// matched a single terminal.
func UnexpectedEndOfProgram() error {
	return New(KindSyntax, nil, "Unexpected end of program")
}

// UnexpectedSymbol is returned for the general "dead end" syntax error,
// pointing at the offending lexeme.
func UnexpectedSymbol(lexeme token.Lexeme) error {
	return New(KindSyntax, &lexeme, "Wrong structure! Unexpected symbol")
}

// WrongStructureInAssignment is the specialized message spec.md §4.3
// requires when the offending lexeme's text is "=".
func WrongStructureInAssignment(lexeme token.Lexeme) error {
	return New(KindSyntax, &lexeme, "Wrong structure in assignment statement after symbol")
}

// SyntaxErrorFor picks between UnexpectedSymbol and
// WrongStructureInAssignment the way spec.md §4.3 mandates.
func SyntaxErrorFor(lexeme token.Lexeme) error {
	if lexeme.Text == "=" {
		return WrongStructureInAssignment(lexeme)
	}
	return UnexpectedSymbol(lexeme)
}

// NameError reports use of an undeclared identifier as a value.
func NameError(lexeme token.Lexeme) error {
	return New(KindName, &lexeme, "Undeclared identifier")
}

// ZeroDivision reports division by zero.
func ZeroDivision(lexeme token.Lexeme) error {
	return New(KindValue, &lexeme, "Zero Division")
}

// Internal reports a violated implementation invariant: a splitter
// self-check failure, a grammar ambiguity, or a dangling jump target.
// These are implementation bugs, not user-facing program errors.
func Internal(message string, args ...interface{}) error {
	d := &Diagnostic{Kind: KindInternal, Message: fmt.Sprintf(message, args...)}
	return errors.Annotatef(d, "%s", KindInternal)
}
