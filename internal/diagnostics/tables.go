package diagnostics

import (
	"fmt"
	"sort"

	"github.com/rocketlang/rocket/internal/postfix"
	"github.com/rocketlang/rocket/internal/token"
)

// Table is a tabular diagnostic artifact: a header row followed by data
// rows, ready for a collaborator (CLI, GUI, report writer) to render
// without needing to know what produced it.
type Table struct {
	Title   string
	Header  []string
	Rows    [][]string
}

// LexemeTable renders every lexeme from a run, one per row, matching
// compiler.py's always-produced lexeme table (spec.md §10).
func LexemeTable(lexemes []token.Lexeme) Table {
	rows := make([][]string, len(lexemes))
	for i, l := range lexemes {
		rows[i] = []string{
			fmt.Sprintf("%d", i),
			l.Text,
			string(l.Kind),
			l.Position.String(),
			fmt.Sprintf("%d", l.TerminalNumber),
		}
	}
	return Table{
		Title:  "Lexemes",
		Header: []string{"#", "Text", "Kind", "Position", "Terminal"},
		Rows:   rows,
	}
}

// IdentifierTable renders the distinct identifiers seen in a lexeme
// stream, sorted for stable output.
func IdentifierTable(lexemes []token.Lexeme) Table {
	seen := make(map[string]bool)
	for _, l := range lexemes {
		if l.Kind == token.KindIdentifier {
			seen[l.Text] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)

	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{fmt.Sprintf("%d", i), n}
	}
	return Table{Title: "Identifiers", Header: []string{"#", "Name"}, Rows: rows}
}

// ConstantTable renders the distinct constants seen in a lexeme stream,
// in first-seen order.
func ConstantTable(lexemes []token.Lexeme) Table {
	seen := make(map[string]bool)
	var rows [][]string
	for _, l := range lexemes {
		if l.Kind != token.KindConstant || seen[l.Text] {
			continue
		}
		seen[l.Text] = true
		rows = append(rows, []string{fmt.Sprintf("%d", len(rows)), l.Text, l.Value().String()})
	}
	return Table{Title: "Constants", Header: []string{"#", "Text", "Value"}, Rows: rows}
}

// HistoryTable renders the postfix transformer's shunting-yard trace,
// supplementing spec.md §4.4's `history` output with a concrete report
// shape, grounded on postfix_transformation.py's operator-stack history.
func HistoryTable(history []postfix.HistoryRow) Table {
	rows := make([][]string, len(history))
	for i, h := range history {
		rows[i] = []string{fmt.Sprintf("%d", i), h.Lexeme, h.OperatorStack, fmt.Sprintf("%d", h.OutputDepth)}
	}
	return Table{
		Title:  "Transformation process",
		Header: []string{"Step", "Lexeme", "Operator stack", "Output depth"},
		Rows:   rows,
	}
}

// MarksTable renders every mark's name and resolved position, the way
// spec.md §6's transform(...) returns its marks table alongside the
// postfix stream itself.
func MarksTable(marks map[string]int) Table {
	names := make([]string, 0, len(marks))
	for n := range marks {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return marks[names[i]] < marks[names[j]] })

	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{n, fmt.Sprintf("%d", marks[n])}
	}
	return Table{Title: "Marks", Header: []string{"Name", "Position"}, Rows: rows}
}

// VariablesTable renders the final value of every variable touched during
// a run, sorted by name.
func VariablesTable(vars map[string]token.Number) Table {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)

	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{n, vars[n].String()}
	}
	return Table{Title: "Variables", Header: []string{"Name", "Value"}, Rows: rows}
}
