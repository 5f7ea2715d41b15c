// Package parsetree implements spec.md §3's Parse Match tagged variant,
// grounded on the teacher's tooling/parsetree/parsetree.go
// TerminalNode/NonTerminalNode/EmptyNode shapes but collapsed into one
// concrete type instead of an interface, since every later consumer
// (postfix transformer, diagnostics) needs to walk the tree uniformly
// rather than dispatch on its dynamic type.
package parsetree

import (
	"strings"

	"github.com/rocketlang/rocket/internal/token"
)

// Kind tags which of the three match shapes a Match is.
type Kind int

const (
	// KindTerminal wraps exactly one consumed lexeme.
	KindTerminal Kind = iota
	// KindNonTerminal wraps the matches produced by a composite symbol's
	// children, named after the symbol that produced them.
	KindNonTerminal
	// KindEmpty is the result of a repetition symbol that matched zero
	// times; it carries no lexemes but still needs a place
	// in the tree so a sequence's child count stays predictable.
	KindEmpty
)

// Match is one node of a successful parse.
type Match struct {
	Kind       Kind
	SymbolName string
	Lexeme     token.Lexeme // KindTerminal only
	Children   []*Match     // KindNonTerminal only
}

// Terminal builds a KindTerminal match.
func Terminal(symbolName string, lexeme token.Lexeme) *Match {
	return &Match{Kind: KindTerminal, SymbolName: symbolName, Lexeme: lexeme}
}

// NonTerminal builds a KindNonTerminal match.
func NonTerminal(symbolName string, children ...*Match) *Match {
	return &Match{Kind: KindNonTerminal, SymbolName: symbolName, Children: children}
}

// Empty builds a KindEmpty match.
func Empty(symbolName string) *Match {
	return &Match{Kind: KindEmpty, SymbolName: symbolName}
}

// Lexemes flattens every terminal lexeme reachable from m, in left to
// right order, used by the postfix transformer which walks the tree as a
// token stream annotated with symbol names rather than as a tree.
func (m *Match) Lexemes() []token.Lexeme {
	var out []token.Lexeme
	m.collect(&out)
	return out
}

func (m *Match) collect(out *[]token.Lexeme) {
	switch m.Kind {
	case KindTerminal:
		*out = append(*out, m.Lexeme)
	case KindNonTerminal:
		for _, c := range m.Children {
			c.collect(out)
		}
	}
}

// Text renders a human-readable rendition of the subtree's source text:
// its terminal lexemes joined by single spaces.
func (m *Match) Text() string {
	lexemes := m.Lexemes()
	parts := make([]string, len(lexemes))
	for i, l := range lexemes {
		parts[i] = l.Text
	}
	return strings.Join(parts, " ")
}

// String renders an indented tree, grounded on the teacher's
// NonTerminalNode.String / TerminalNode.String pair.
func (m *Match) String() string {
	var b strings.Builder
	m.write(&b, 0)
	return b.String()
}

func (m *Match) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch m.Kind {
	case KindTerminal:
		b.WriteString(m.SymbolName)
		b.WriteString(": ")
		b.WriteString(m.Lexeme.Text)
		b.WriteString("\n")
	case KindEmpty:
		b.WriteString(m.SymbolName)
		b.WriteString(": <empty>\n")
	case KindNonTerminal:
		b.WriteString(m.SymbolName)
		b.WriteString("\n")
		for _, c := range m.Children {
			c.write(b, depth+1)
		}
	}
}
