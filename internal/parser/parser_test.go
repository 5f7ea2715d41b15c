package parser

import (
	"testing"

	"github.com/rocketlang/rocket/internal/diagnostics"
	"github.com/rocketlang/rocket/internal/grammar"
	"github.com/rocketlang/rocket/internal/lexer"
	"github.com/rocketlang/rocket/internal/token"
)

func mustLex(t *testing.T, row string) []token.Lexeme {
	t.Helper()
	lexemes, err := lexer.New(token.NewReservedTable()).Tokenize([]token.Row{row})
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", row, err)
	}
	return lexemes
}

func TestParseAcceptsAssignment(t *testing.T) {
	p := New(grammar.NewRocketGrammar())
	match, err := p.Parse(mustLex(t, "a = 1 + 2;"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if match == nil {
		t.Fatal("Parse returned nil match with nil error")
	}
}

func TestParseTrailingOperatorIsUnexpectedEndOfProgram(t *testing.T) {
	p := New(grammar.NewRocketGrammar())
	_, err := p.Parse(mustLex(t, "a = 1 +"))
	if err == nil {
		t.Fatal("Parse accepted a trailing operator with no right-hand operand")
	}
	d, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("error is not a Diagnostic: %v", err)
	}
	if d.Kind != diagnostics.KindSyntax || d.Message != "Unexpected end of program" {
		t.Errorf("got %+v, want Unexpected end of program", d)
	}
}

func TestParseUnbalancedClosingParenthesisPinsOffendingLexeme(t *testing.T) {
	p := New(grammar.NewRocketGrammar())
	_, err := p.Parse(mustLex(t, "a = ( 3 + 4 ) )"))
	if err == nil {
		t.Fatal("Parse accepted an unbalanced trailing closing parenthesis")
	}
	d, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("error is not a Diagnostic: %v", err)
	}
	if d.Lexeme == nil || d.Lexeme.Text != ")" {
		t.Errorf("expected the offending lexeme to be the trailing ')', got %+v", d.Lexeme)
	}
}

func TestParseSpecializedAssignmentMessage(t *testing.T) {
	p := New(grammar.NewRocketGrammar())
	_, err := p.Parse(mustLex(t, "if a = 1 then { write a; } else { write a; };"))
	if err == nil {
		t.Fatal("Parse accepted '=' where a comparison was required")
	}
	d, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("error is not a Diagnostic: %v", err)
	}
	if d.Lexeme == nil || d.Lexeme.Text != "=" {
		t.Skip("grammar shape does not route this case through the '=' lexeme; acceptable if a different offending lexeme is reported")
	}
	if d.Message != "Wrong structure in assignment statement after symbol" {
		t.Errorf("message = %q, want the specialized assignment message", d.Message)
	}
}

func TestParseAcceptsWhileLoopWithBracedBody(t *testing.T) {
	p := New(grammar.NewRocketGrammar())
	_, err := p.Parse(mustLex(t, "while a < 10 do { a = a + 1; } enddo;"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
}

func TestParseConditionalRequiresElseBranch(t *testing.T) {
	p := New(grammar.NewRocketGrammar())
	_, err := p.Parse(mustLex(t, "if a == 1 then { write a; };"))
	if err == nil {
		t.Fatal("Parse accepted a conditional_statement with no else clause")
	}
}

func TestParseExpressionRoot(t *testing.T) {
	p := New(grammar.NewRocketGrammar())
	match, err := p.ParseFrom(mustLex(t, "13 != 100500"), "expression")
	if err != nil {
		t.Fatalf("ParseFrom(expression) returned error: %v", err)
	}
	if match == nil {
		t.Fatal("ParseFrom(expression) returned nil match with nil error")
	}
}

func TestParseRejectsReservedWordAsIdentifier(t *testing.T) {
	p := New(grammar.NewRocketGrammar())
	_, err := p.Parse(mustLex(t, "a = while;"))
	if err == nil {
		t.Fatal("Parse accepted the reserved word 'while' bound as an identifier")
	}
}

func TestParseEmptyProgramIsUnexpectedEndOfProgram(t *testing.T) {
	p := New(grammar.NewRocketGrammar())
	_, err := p.Parse(nil)
	if err == nil {
		t.Fatal("Parse(nil) accepted a program that consumed no lexemes")
	}
	d, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("error is not a Diagnostic: %v", err)
	}
	if d.Kind != diagnostics.KindSyntax || d.Message != "Unexpected end of program" {
		t.Errorf("got %+v, want Unexpected end of program", d)
	}
}
