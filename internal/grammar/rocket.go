package grammar

import "github.com/rocketlang/rocket/internal/token"

// NewRocketGrammar builds the declarative grammar of the Rocket language
// exactly to spec.md §4.2's productions, in two passes: the first
// declares a named stub for every nonterminal that participates in a
// recursive production ("factor" contains "expression" contains "term"
// contains "factor"; "statement" contains "statement_list_in_braces"
// contains "statement_list" contains "statement"), the second fills
// each stub's body, taking pointers at the already-declared stubs so the
// resulting graph can hold cycles without any single construction step
// seeing one.
//
// Precedence between the two math-operator tiers is baked directly into
// the grammar shape here (factor < term < expression), the way spec.md
// §4.2 states it; only the further split between comparisons and
// low-priority math within a single "expression" repetition, and the
// relative order of every other token class, is left to the postfix
// stage's priority table.
func NewRocketGrammar() *Grammar {
	b := newBuilder()

	constant := regexLeaf("constant", token.KindConstant)
	identifier := regexLeaf("identifier", token.KindIdentifier)

	kw := func(name, text string) *Symbol { return literalSet(name, text) }

	ifKw := kw("if", "if")
	thenKw := kw("then", "then")
	elseKw := kw("else", "else")
	whileKw := kw("while", "while")
	doKw := kw("do", "do")
	enddoKw := kw("enddo", "enddo")
	writeKw := kw("write", "write")
	readKw := kw("read", "read")
	assignOp := literalSet("assign_operator", "=")
	openParen := kw("opening_parenthesis", "(")
	closeParen := kw("closing_parenthesis", ")")
	openBrace := kw("opening_curly_brace", "{")
	closeBrace := kw("closing_curly_brace", "}")
	separator := kw("statement_separator", ";")

	lowPriorityMathOperator := literalSet("low_priority_math_operator", "+", "-")
	highPriorityMathOperator := literalSet("high_priority_math_operator", "*", "/", "^")
	comparisonOperator := literalSet("comparison_operator",
		"==", "!=", ">", "<", ">=", "<=", "<>")
	lowPriorityOperator := alternatives("low_priority_operator", comparisonOperator, lowPriorityMathOperator)

	expression := b.declare("expression")

	// factor := constant
	//         | low_priority_math_operator constant
	//         | identifier
	//         | low_priority_math_operator identifier
	//         | '(' expression ')'
	factor := alternatives("factor",
		constant,
		sequence("signed_constant", lowPriorityMathOperator, constant),
		identifier,
		sequence("signed_identifier", lowPriorityMathOperator, identifier),
		sequence("parenthesized_expression", openParen, expression, closeParen),
	)

	// term := factor ( high_priority_math_operator factor )*
	term := sequence("term", factor,
		repetition("term_tail", sequence("term_step", highPriorityMathOperator, factor)))

	// expression := term ( low_priority_operator term )*
	fill(expression, sequence("expression", term,
		repetition("expression_tail", sequence("expression_step", lowPriorityOperator, term))))

	assignment := sequence("assignment_statement", identifier, assignOp, b.declare("expression"))
	writeStatement := sequence("output_statement", writeKw, b.declare("expression"))
	readStatement := sequence("input_statement", readKw, identifier)

	statementList := b.declare("statement_list")
	block := sequence("statement_list_in_braces", openBrace, statementList, closeBrace)

	conditional := sequence("conditional_statement",
		ifKw, b.declare("expression"), thenKw, block, elseKw, block)
	iteration := sequence("iteration_statement",
		whileKw, b.declare("expression"), doKw, block, enddoKw)

	statement := alternatives("statement",
		assignment, writeStatement, readStatement, conditional, iteration)

	// statement_list := ( statement ';' )*
	fill(statementList, repetition("statement_list",
		sequence("statement_list_step", statement, separator)))

	symbols := map[string]*Symbol{
		"statement_list":        statementList,
		"statement":             statement,
		"expression":            expression,
		"term":                  term,
		"factor":                factor,
		"block":                 block,
		"assignment_statement":  assignment,
		"output_statement":      writeStatement,
		"input_statement":       readStatement,
		"conditional_statement": conditional,
		"iteration_statement":   iteration,
	}

	return &Grammar{Start: statementList, symbols: symbols}
}
