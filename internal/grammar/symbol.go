// Package grammar implements spec.md §4.2's declarative grammar: a
// directed graph of Symbol nodes built once at process start and never
// mutated afterward, grounded on the teacher's
// lang/grammar/syntactic.go Symbol/ProductionRule vocabulary but
// generalized to the kinds spec.md names instead of the teacher's
// Terminal/NonTerminal/Sequence/Alternative/Optional/ZeroOrMore/OneOrMore
// set.
package grammar

import "github.com/rocketlang/rocket/internal/token"

// Kind tags which symbol shape a Symbol is.
type Kind int

const (
	// KindRegex matches a single lexeme whose lexer-assigned Kind equals
	// the symbol's registered LexemeKind (identifiers, constants) — named
	// for the regular expression the lexer used to classify that lexeme
	// in the first place, not for any matching this symbol itself does.
	KindRegex Kind = iota
	// KindLiteralSet matches a single lexeme whose text is one of a fixed
	// set of strings (keywords, punctuation, operator alphabets).
	KindLiteralSet
	// KindAlternatives tries each child symbol in order and succeeds if
	// exactly one does; more than one successful child is a grammar
	// ambiguity (spec.md §9's invariant).
	KindAlternatives
	// KindSequence matches every child symbol in order. Spec.md §3
	// defines Alternatives as "a list of sequences" and Repetition as
	// "zero or more of a sequence", so Sequence earns its own Kind here
	// as the grouping both are built from, rather than being inlined
	// twice.
	KindSequence
	// KindRepetition matches its inner symbol zero or more times,
	// greedily, never failing.
	KindRepetition
)

// Symbol is one node of the declarative grammar. Only the fields relevant
// to its Kind are populated; the others are the zero value.
type Symbol struct {
	Name string
	Kind Kind

	LexemeKind token.Kind      // KindRegex
	Literals   map[string]bool // KindLiteralSet

	Children []*Symbol // KindAlternatives, KindSequence
	Inner    *Symbol   // KindRepetition
}

// Grammar is an immutable collection of named symbols reachable from a
// single start symbol.
type Grammar struct {
	Start   *Symbol
	symbols map[string]*Symbol
}

// Lookup returns a named symbol of the finished grammar, used by the
// parser to resolve a caller-chosen root (spec.md §6's
// parse(lexemes, root_name)).
func (g *Grammar) Lookup(name string) *Symbol {
	return g.symbols[name]
}

// builder accumulates named symbol stubs across the declare pass so the
// wire pass can take their addresses before their bodies are known,
// letting productions like "statement" refer back to "statement_list"
// without a cycle in construction order.
type builder struct {
	symbols map[string]*Symbol
}

func newBuilder() *builder {
	return &builder{symbols: make(map[string]*Symbol)}
}

// declare returns the stub for name, creating it on first reference.
func (b *builder) declare(name string) *Symbol {
	if s, ok := b.symbols[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	b.symbols[name] = s
	return s
}

func literalSet(name string, literals ...string) *Symbol {
	set := make(map[string]bool, len(literals))
	for _, l := range literals {
		set[l] = true
	}
	return &Symbol{Name: name, Kind: KindLiteralSet, Literals: set}
}

func regexLeaf(name string, lexemeKind token.Kind) *Symbol {
	return &Symbol{Name: name, Kind: KindRegex, LexemeKind: lexemeKind}
}

func sequence(name string, children ...*Symbol) *Symbol {
	return &Symbol{Name: name, Kind: KindSequence, Children: children}
}

func alternatives(name string, children ...*Symbol) *Symbol {
	return &Symbol{Name: name, Kind: KindAlternatives, Children: children}
}

func repetition(name string, inner *Symbol) *Symbol {
	return &Symbol{Name: name, Kind: KindRepetition, Inner: inner}
}

// fill overwrites a previously declared stub's body in place, so every
// pointer taken during the declare pass keeps pointing at the finished
// symbol once the wire pass completes.
func fill(stub *Symbol, body *Symbol) {
	*stub = *body
	stub.Name = body.Name
}
