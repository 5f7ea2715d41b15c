// Package lexer implements spec.md §4.1: a regex-splitter lexical
// analyzer that cuts each source row on whitespace and the fixed
// punctuation alphabet, classifies every surviving fragment, and
// self-checks that the cut fragments reassemble the original row before
// trusting any of them.
package lexer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rocketlang/rocket/internal/diagnostics"
	"github.com/rocketlang/rocket/internal/token"
)

var whitespacePattern = regexp.MustCompile(`^\s+$`)

// Lexer splits and classifies source rows against a fixed reserved table.
type Lexer struct {
	reserved *token.ReservedTable
	splitter *regexp.Regexp
}

// New builds a Lexer whose splitting regex is the alternation of every
// punctuation string (longest first, so "==" is never mis-split into two
// "=" lexemes) plus a whitespace class, mirroring the original
// translator's _LineSplitter.
func New(reserved *token.ReservedTable) *Lexer {
	puncts := append([]string(nil), token.Punctuation...)
	sort.Slice(puncts, func(i, j int) bool { return len(puncts[i]) > len(puncts[j]) })

	escaped := make([]string, 0, len(puncts)+1)
	for _, p := range puncts {
		escaped = append(escaped, regexp.QuoteMeta(p))
	}
	escaped = append(escaped, `\s+`)

	return &Lexer{
		reserved: reserved,
		splitter: regexp.MustCompile(strings.Join(escaped, "|")),
	}
}

// Tokenize lexes every row and returns the full lexeme stream alongside an
// aggregated error naming every offending lexeme, per spec.md §4.1: all
// rows are always scanned, and syntax analysis is never attempted while
// the aggregated error is non-nil.
func (l *Lexer) Tokenize(rows []token.Row) ([]token.Lexeme, error) {
	var lexemes []token.Lexeme
	var lexErrs []error

	for lineIdx, row := range rows {
		fragments, err := splitPreservingDelimiters(row, l.splitter)
		if err != nil {
			return nil, err
		}
		column := 0
		for _, frag := range fragments {
			start := column
			column += len(frag)
			if frag == "" || whitespacePattern.MatchString(frag) {
				continue
			}
			lexeme := l.classify(frag, token.Position{Line: lineIdx, Column: start})
			lexemes = append(lexemes, lexeme)
			if lexeme.Kind == token.KindError {
				lexErrs = append(lexErrs, diagnostics.LexicalError(lexeme))
			}
		}
	}

	return lexemes, diagnostics.AggregateLexicalErrors(lexErrs)
}

func (l *Lexer) classify(text string, pos token.Position) token.Lexeme {
	if n, ok := l.reserved.Lookup(text); ok {
		return token.Lexeme{Text: text, Kind: token.KindTerminal, Position: pos, TerminalNumber: n}
	}
	if token.ConstantPattern.MatchString(text) {
		return token.Lexeme{Text: text, Kind: token.KindConstant, Position: pos, TerminalNumber: l.reserved.ConstantNumber()}
	}
	if token.IdentifierPattern.MatchString(text) {
		return token.Lexeme{Text: text, Kind: token.KindIdentifier, Position: pos, TerminalNumber: l.reserved.IdentifierNumber()}
	}
	return token.Lexeme{Text: text, Kind: token.KindError, Position: pos, TerminalNumber: l.reserved.ErrorNumber()}
}

// splitPreservingDelimiters cuts row everywhere delim matches, keeping both
// the matched delimiters and the text between them, in order — Go's
// regexp.Split drops the delimiters, so this exists to recover the
// original translator's re.split(pattern, row) behavior where the pattern
// has a single capturing group around the whole alternation.
func splitPreservingDelimiters(row string, delim *regexp.Regexp) ([]string, error) {
	matches := delim.FindAllStringIndex(row, -1)
	fragments := make([]string, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			fragments = append(fragments, row[last:m[0]])
		}
		fragments = append(fragments, row[m[0]:m[1]])
		last = m[1]
	}
	if last < len(row) {
		fragments = append(fragments, row[last:])
	}

	if strings.Join(fragments, "") != row {
		return nil, diagnostics.Internal("splitter self-check failed on row %q", row)
	}
	return fragments, nil
}
