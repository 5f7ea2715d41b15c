package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rocketlang/rocket/internal/token"
)

func texts(lexemes []token.Lexeme) []string {
	out := make([]string, len(lexemes))
	for i, l := range lexemes {
		out[i] = l.Text
	}
	return out
}

func kinds(lexemes []token.Lexeme) []token.Kind {
	out := make([]token.Kind, len(lexemes))
	for i, l := range lexemes {
		out[i] = l.Kind
	}
	return out
}

func TestTokenizeSplitsOnPunctuationAndWhitespace(t *testing.T) {
	lx := New(token.NewReservedTable())

	lexemes, err := lx.Tokenize([]token.Row{"a = 1 + 23"})
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}

	wantTexts := []string{"a", "=", "1", "+", "23"}
	if diff := cmp.Diff(wantTexts, texts(lexemes)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}

	wantKinds := []token.Kind{
		token.KindIdentifier,
		token.KindTerminal,
		token.KindConstant,
		token.KindTerminal,
		token.KindConstant,
	}
	if diff := cmp.Diff(wantKinds, kinds(lexemes)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeNeverMisSplitsTwoCharacterOperators(t *testing.T) {
	lx := New(token.NewReservedTable())

	lexemes, err := lx.Tokenize([]token.Row{"a == b; a != b; a >= b; a <= b"})
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}

	wantTexts := []string{
		"a", "==", "b", ";",
		"a", "!=", "b", ";",
		"a", ">=", "b", ";",
		"a", "<=", "b",
	}
	if diff := cmp.Diff(wantTexts, texts(lexemes)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeCollectsAllErrorLexemesBeforeReporting(t *testing.T) {
	lx := New(token.NewReservedTable())

	lexemes, err := lx.Tokenize([]token.Row{"a $ b # c"})
	if err == nil {
		t.Fatalf("Tokenize returned no error for a row with two unknown symbols")
	}

	var errorTexts []string
	for _, l := range lexemes {
		if l.Kind == token.KindError {
			errorTexts = append(errorTexts, l.Text)
		}
	}
	if diff := cmp.Diff([]string{"$", "#"}, errorTexts); diff != "" {
		t.Errorf("error lexemes mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizePositionsAreRowAndColumn(t *testing.T) {
	lx := New(token.NewReservedTable())

	lexemes, err := lx.Tokenize([]token.Row{"x = 1", "y = 2"})
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}

	if lexemes[0].Position != (token.Position{Line: 0, Column: 0}) {
		t.Errorf("first lexeme position = %v, want 0:0", lexemes[0].Position)
	}
	if lexemes[len(lexemes)-1].Position.Line != 1 {
		t.Errorf("last lexeme should be on row 1, got %v", lexemes[len(lexemes)-1].Position)
	}
}

func TestClassifyDistinguishesIntegerFromFloatConstants(t *testing.T) {
	lx := New(token.NewReservedTable())

	lexemes, err := lx.Tokenize([]token.Row{"3.14 + 7"})
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}

	if got := lexemes[0].Value(); got.IsInt {
		t.Errorf("3.14 classified as integer")
	}
	if got := lexemes[2].Value(); !got.IsInt || got.Int != 7 {
		t.Errorf("7 classified as %+v, want integer 7", got)
	}
}
