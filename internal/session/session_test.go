package session

import (
	"strings"
	"testing"
)

// These end-to-end fixtures are grounded on the original translator's
// mega_tests.py style: whole programs run through the full pipeline,
// asserted against their output and final variables, rather than any
// single stage in isolation.

func TestRunComputesFactorial(t *testing.T) {
	program := []string{
		"n = 5;",
		"result = 1;",
		"i = 1;",
		"while i <= n do {",
		"result = result * i;",
		"i = i + 1;",
		"} enddo;",
		"write result;",
	}

	bundle, err := New().Run(program, strings.NewReader(""), &strings.Builder{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := bundle.Variables["result"].Int; got != 120 {
		t.Errorf("result = %d, want 120", got)
	}
	if got := strings.TrimSpace(bundle.Output); got != "120" {
		t.Errorf("output = %q, want %q", got, "120")
	}
}

func TestRunEchoesReadInput(t *testing.T) {
	program := []string{"read x;", "write x + 1;"}

	bundle, err := New().Run(program, strings.NewReader("9\n"), &strings.Builder{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := strings.TrimSpace(bundle.Output); got != "10" {
		t.Errorf("output = %q, want %q", got, "10")
	}
}

func TestRunReportsSyntaxErrorAndStillPopulatesLexemeTables(t *testing.T) {
	program := []string{"a = 1 +"}

	bundle, err := New().Run(program, strings.NewReader(""), &strings.Builder{})
	if err == nil {
		t.Fatal("Run accepted a trailing operator")
	}
	if len(bundle.LexemeTable.Rows) == 0 {
		t.Error("lexeme table should always be populated, even on syntax error")
	}
}

func TestRunIfElseBranches(t *testing.T) {
	thenProgram := []string{"a = 1;", "if a == 1 then { write 10; } else { write 20; };"}
	bundle, err := New().Run(thenProgram, strings.NewReader(""), &strings.Builder{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := strings.TrimSpace(bundle.Output); got != "10" {
		t.Errorf("then-branch output = %q, want %q", got, "10")
	}

	elseProgram := []string{"a = 2;", "if a == 1 then { write 10; } else { write 20; };"}
	bundle, err = New().Run(elseProgram, strings.NewReader(""), &strings.Builder{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := strings.TrimSpace(bundle.Output); got != "20" {
		t.Errorf("else-branch output = %q, want %q", got, "20")
	}
}

func TestRunAssignsUniqueRunIDs(t *testing.T) {
	s := New()
	b1, _ := s.Run([]string{"write 1;"}, strings.NewReader(""), &strings.Builder{})
	b2, _ := s.Run([]string{"write 2;"}, strings.NewReader(""), &strings.Builder{})
	if b1.RunID == "" || b1.RunID == b2.RunID {
		t.Errorf("expected distinct non-empty run ids, got %q and %q", b1.RunID, b2.RunID)
	}
}
