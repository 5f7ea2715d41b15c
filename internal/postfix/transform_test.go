package postfix

import (
	"strings"
	"testing"

	"github.com/rocketlang/rocket/internal/grammar"
	"github.com/rocketlang/rocket/internal/lexer"
	"github.com/rocketlang/rocket/internal/parser"
	"github.com/rocketlang/rocket/internal/token"
)

func transformFrom(t *testing.T, root, row string) ([]Op, map[string]int) {
	t.Helper()
	lexemes, err := lexer.New(token.NewReservedTable()).Tokenize([]token.Row{row})
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", row, err)
	}
	match, err := parser.New(grammar.NewRocketGrammar()).ParseFrom(lexemes, root)
	if err != nil {
		t.Fatalf("ParseFrom(%q, %q): %v", row, root, err)
	}
	ops, marks, _, err := New().Transform(match)
	if err != nil {
		t.Fatalf("Transform(%q): %v", row, err)
	}
	return ops, marks
}

// render renders a postfix stream back to the exact textual form spec.md
// §8's worked examples use, so the two literal end-to-end vectors there
// can be asserted against verbatim.
func render(ops []Op) string {
	var b strings.Builder
	for i, op := range ops {
		if i > 0 {
			b.WriteString(" ")
		}
		switch op.Kind {
		case KindConstant:
			b.WriteString(op.Value.String())
		case KindIdentifier:
			b.WriteString(op.Name)
		case KindOperator:
			b.WriteString(op.Text)
		case KindMark:
			b.WriteString(op.Name)
		case KindJump:
			b.WriteString("jump")
		case KindJumpIfFalse:
			b.WriteString("jump_on_False")
		case KindWrite:
			b.WriteString("write")
		case KindRead:
			b.WriteString("read")
		}
	}
	return b.String()
}

func TestTransformSimplePrecedence(t *testing.T) {
	ops, _ := transformFrom(t, "expression", "1 + 2 * 3")
	if got, want := render(ops), "1 2 3 * +"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTransformRightAssociativePower(t *testing.T) {
	ops, _ := transformFrom(t, "expression", "2 + 3 ^ 6 / 8")
	if got, want := render(ops), "2 3 6 ^ 8 / +"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTransformUnaryMinusRewritesToAtSign(t *testing.T) {
	ops, _ := transformFrom(t, "expression", "-1 + 2")
	if got, want := render(ops), "1 @ 2 +"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTransformComparisonEmitsOperatorAfterOperands(t *testing.T) {
	ops, _ := transformFrom(t, "expression", "13 != 100500")
	if got, want := render(ops), "13 100500 !="; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestTransformIfElseMatchesWorkedExample reproduces spec.md §8's
// if/else worked example verbatim: postfix text and mark positions.
func TestTransformIfElseMatchesWorkedExample(t *testing.T) {
	ops, marks := transformFrom(t, "statement_list",
		"if b == 20 then { c = b - 5; } else { a = 10; }; b = c - a;")

	want := "b 20 == mark_0 jump_on_False c b 5 - = mark_1 jump a 10 = b c a - ="
	if got := render(ops); got != want {
		t.Errorf("postfix stream:\n got  %q\n want %q", got, want)
	}
	if marks["mark_0"] != 12 {
		t.Errorf("mark_0 = %d, want 12", marks["mark_0"])
	}
	if marks["mark_1"] != 15 {
		t.Errorf("mark_1 = %d, want 15", marks["mark_1"])
	}
}

// TestTransformWhileLoopMatchesWorkedExample reproduces spec.md §8's
// while-loop worked example verbatim.
func TestTransformWhileLoopMatchesWorkedExample(t *testing.T) {
	ops, marks := transformFrom(t, "iteration_statement",
		"while a < 10 do { a = a + 1; b = a * 5 + 1; } enddo")

	want := "a 10 < mark_1 jump_on_False a a 1 + = b a 5 * 1 + = mark_0 jump"
	if got := render(ops); got != want {
		t.Errorf("postfix stream:\n got  %q\n want %q", got, want)
	}
	if marks["mark_0"] != 0 {
		t.Errorf("mark_0 = %d, want 0", marks["mark_0"])
	}
	if marks["mark_1"] != 19 {
		t.Errorf("mark_1 = %d, want 19", marks["mark_1"])
	}
}
