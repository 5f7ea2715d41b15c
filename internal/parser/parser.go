// Package parser implements spec.md §4.3's recursive-descent engine over
// the declarative grammar of internal/grammar, producing a parsetree.Match
// or one of the two syntax error variants spec.md §4.3 and §7 describe.
//
// The top-level decision of which outcome to report is not the naive
// reading of "did the whole input get consumed, did nothing match, or did
// a later lexeme offend" — that reading contradicts spec.md §8's own
// boundary example ("1 +" must report "unexpected end of program", not an
// offending-lexeme error at "+"). The engine instead tracks, across every
// attempted match in the whole parse (including alternatives that are
// tried and discarded — grammar.KindAlternatives always tries every
// child, never short-circuiting, so it can also detect ambiguity), how
// close to the tail of the lexeme stream any single successful terminal
// consumption ever got. That "deepest reach" is what actually
// distinguishes the two error shapes; grounded on the original
// translator's syntax_analysis.py, whose SyntaxAnalyzer keeps exactly
// this counter under the name lexeme_position_from_tail.
package parser

import (
	"github.com/rocketlang/rocket/internal/diagnostics"
	"github.com/rocketlang/rocket/internal/grammar"
	"github.com/rocketlang/rocket/internal/parsetree"
	"github.com/rocketlang/rocket/internal/token"
)

// Parser matches a fixed grammar against a lexeme stream.
type Parser struct {
	grammar *grammar.Grammar

	original []token.Lexeme
	// deepestReach is the length of the remaining-lexeme suffix, counted
	// right before the token was popped, at the single most recent
	// successful terminal consumption seen anywhere during the parse. A
	// value of 0 means no terminal was ever successfully consumed; 1
	// means some attempt consumed all the way to the final lexeme.
	deepestReach int
	ambiguity    error
}

// New builds a Parser over g.
func New(g *grammar.Grammar) *Parser {
	return &Parser{grammar: g}
}

// Parse matches the grammar's start symbol against lexemes in full. It is
// equivalent to ParseFrom(lexemes, "") — see ParseFrom for the outcome
// contract.
func (p *Parser) Parse(lexemes []token.Lexeme) (*parsetree.Match, error) {
	return p.ParseFrom(lexemes, "")
}

// ParseFrom matches lexemes against rootName (or the grammar's default
// start symbol when rootName is empty), the way spec.md §6's
// parse(lexemes, root_name) lets a caller re-enter the grammar at any
// named production, e.g. to parse a bare expression without wrapping it
// in a full statement_list. It returns the three-way outcome spec.md §4.3
// names: a complete match, "unexpected end of program" (no terminal was
// ever consumed, or the most recent consumption reached the final lexeme
// without a complete match of the root), or a syntax error pinned to the
// lexeme after the most recent consumption when that consumption stopped
// short of the final lexeme.
func (p *Parser) ParseFrom(lexemes []token.Lexeme, rootName string) (*parsetree.Match, error) {
	root := p.grammar.Start
	if rootName != "" {
		s := p.grammar.Lookup(rootName)
		if s == nil {
			return nil, diagnostics.Internal("grammar has no production named %q", rootName)
		}
		root = s
	}

	p.original = lexemes
	p.deepestReach = 0
	p.ambiguity = nil

	match, remaining, ok := p.match(root, lexemes)
	if p.ambiguity != nil {
		return nil, p.ambiguity
	}

	n := len(p.original)
	switch {
	case p.deepestReach == 0:
		return nil, diagnostics.UnexpectedEndOfProgram()
	case p.deepestReach != 1:
		idx := n - p.deepestReach + 1
		if idx < 0 || idx >= n {
			return nil, diagnostics.UnexpectedEndOfProgram()
		}
		return nil, diagnostics.SyntaxErrorFor(p.original[idx])
	case !ok || match == nil || match.Kind == parsetree.KindEmpty || len(remaining) > 0:
		return nil, diagnostics.UnexpectedEndOfProgram()
	default:
		return match, nil
	}
}

func (p *Parser) match(sym *grammar.Symbol, lexemes []token.Lexeme) (*parsetree.Match, []token.Lexeme, bool) {
	switch sym.Kind {
	case grammar.KindLiteralSet:
		return p.matchLiteralSet(sym, lexemes)
	case grammar.KindRegex:
		return p.matchRegex(sym, lexemes)
	case grammar.KindSequence:
		return p.matchSequence(sym, lexemes)
	case grammar.KindAlternatives:
		return p.matchAlternatives(sym, lexemes)
	case grammar.KindRepetition:
		return p.matchRepetition(sym, lexemes)
	default:
		p.ambiguity = diagnostics.Internal("grammar symbol %q has unknown kind", sym.Name)
		return nil, lexemes, false
	}
}

func (p *Parser) matchLiteralSet(sym *grammar.Symbol, lexemes []token.Lexeme) (*parsetree.Match, []token.Lexeme, bool) {
	if len(lexemes) == 0 || !sym.Literals[lexemes[0].Text] {
		return nil, lexemes, false
	}
	p.deepestReach = len(lexemes)
	return parsetree.Terminal(sym.Name, lexemes[0]), lexemes[1:], true
}

// matchRegex matches a single lexeme whose lexer-assigned Kind equals the
// symbol's registered LexemeKind — spec.md's Regex leaf matches on the
// lexeme's kind, not by re-running a pattern against its text, so a
// reserved word like "while" (Kind Terminal, but alphabetic enough to
// satisfy the identifier pattern) is never mistaken for an identifier.
func (p *Parser) matchRegex(sym *grammar.Symbol, lexemes []token.Lexeme) (*parsetree.Match, []token.Lexeme, bool) {
	if len(lexemes) == 0 || lexemes[0].Kind != sym.LexemeKind {
		return nil, lexemes, false
	}
	p.deepestReach = len(lexemes)
	return parsetree.Terminal(sym.Name, lexemes[0]), lexemes[1:], true
}

func (p *Parser) matchSequence(sym *grammar.Symbol, lexemes []token.Lexeme) (*parsetree.Match, []token.Lexeme, bool) {
	remaining := lexemes
	children := make([]*parsetree.Match, 0, len(sym.Children))
	for _, child := range sym.Children {
		m, rest, ok := p.match(child, remaining)
		if !ok {
			return nil, lexemes, false
		}
		children = append(children, m)
		remaining = rest
	}
	return parsetree.NonTerminal(sym.Name, children...), remaining, true
}

// matchAlternatives tries every child against the same starting point —
// never stopping at the first success — so a grammar that accidentally
// admits two overlapping productions is caught as an Internal ambiguity
// rather than silently picking whichever was declared first.
func (p *Parser) matchAlternatives(sym *grammar.Symbol, lexemes []token.Lexeme) (*parsetree.Match, []token.Lexeme, bool) {
	var winner *parsetree.Match
	var winnerRemaining []token.Lexeme
	matches := 0

	for _, child := range sym.Children {
		m, rest, ok := p.match(child, lexemes)
		if !ok {
			continue
		}
		matches++
		winner, winnerRemaining = m, rest
	}

	switch {
	case matches > 1:
		p.ambiguity = diagnostics.Internal("grammar symbol %q is ambiguous: %d alternatives matched", sym.Name, matches)
		return nil, lexemes, false
	case matches == 1:
		return parsetree.NonTerminal(sym.Name, winner), winnerRemaining, true
	default:
		return nil, lexemes, false
	}
}

// matchRepetition matches its inner symbol zero or more times, never
// failing; zero iterations produce an Empty match with the lexeme stream
// untouched, matching the original translator's IterativeSymbol.
func (p *Parser) matchRepetition(sym *grammar.Symbol, lexemes []token.Lexeme) (*parsetree.Match, []token.Lexeme, bool) {
	var children []*parsetree.Match
	remaining := lexemes
	for {
		m, rest, ok := p.match(sym.Inner, remaining)
		if !ok {
			break
		}
		children = append(children, m)
		remaining = rest
	}
	if len(children) == 0 {
		return parsetree.Empty(sym.Name), lexemes, true
	}
	return parsetree.NonTerminal(sym.Name, children...), remaining, true
}
