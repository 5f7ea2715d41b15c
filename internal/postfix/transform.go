// Package postfix implements spec.md §4.4: the infix-to-postfix
// transformer. It is a single left-to-right pass over every terminal
// lexeme a successful parse consumed — not just the operators inside
// one expression — driven by one shared operator stack that also does
// double duty tracking unresolved jump targets (Marks) for the control
// structures threaded through the same stream. This mirrors the
// original translator's postfix_transformation.py PostfixTransformer
// exactly: a generalized shunting yard where "(", "{", "if", "while",
// "then", "do", "else", "enddo", ";", "write" and "read" are themselves
// entries in the operators_ordering table alongside the arithmetic and
// comparison operators, rather than being handled by a separate
// recursive walk of the parse tree.
package postfix

import (
	"fmt"
	"strings"

	"github.com/rocketlang/rocket/internal/diagnostics"
	"github.com/rocketlang/rocket/internal/parsetree"
	"github.com/rocketlang/rocket/internal/token"
)

// HistoryRow is one step of the transformation trace: the lexeme just
// considered and the state of the operator stack and output length at
// that moment, rendered as spec.md §10's "transformation process"
// report the original translator keeps under
// postfix_transformation.py's operator-stack history.
type HistoryRow struct {
	Lexeme        string
	OperatorStack string
	OutputDepth   int
}

// stackEntry is one element of the transformer's single shared operator
// stack: either an operator/keyword's literal text, or a still-unresolved
// mark (spec.md §3's Mark/Jump pseudo-ops).
type stackEntry struct {
	isMark bool
	mark   string
	text   string
	pos    token.Position
}

func (e stackEntry) priority() int {
	if e.isMark {
		return -1
	}
	return priority[e.text]
}

// Transformer turns a flat terminal-lexeme stream into a resolved
// postfix stream, along with the mark-name-to-position table spec.md §6
// names as transform's second return value.
type Transformer struct {
	markCounter int
	history     []HistoryRow
}

// New builds a Transformer.
func New() *Transformer {
	return &Transformer{}
}

// Transform consumes the in-order terminal leaves of root — the
// successful parse produced by internal/parser — and returns the
// resolved postfix stream, the table of mark names to their resolved
// positions, and the step-by-step trace collected along the way.
func (t *Transformer) Transform(root *parsetree.Match) ([]Op, map[string]int, []HistoryRow, error) {
	t.markCounter = 0
	t.history = nil

	lexemes := root.Lexemes()
	var output []Op
	var stack []stackEntry
	marks := make(map[string]int)
	oneShot := false

	for i, lx := range lexemes {
		switch {
		case lx.Kind == token.KindConstant:
			output = append(output, Op{Kind: KindConstant, Value: token.ParseNumber(lx.Text)})

		case lx.Kind == token.KindIdentifier:
			output = append(output, Op{Kind: KindIdentifier, Name: lx.Text, Position: lx.Position})

		case lx.Text == "(" || lx.Text == "{" || lx.Text == "if":
			stack = append(stack, stackEntry{text: lx.Text})

		case lx.Text == "write" || lx.Text == "read":
			stack = append(stack, stackEntry{text: lx.Text, pos: lx.Position})

		case lx.Text == ")":
			output = t.popToMatching(&stack, "(", output)

		case lx.Text == "}":
			output = t.popToMatching(&stack, "{", output)
			oneShot = true

		case lx.Text == "then" || lx.Text == "do":
			opener := "if"
			if lx.Text == "do" {
				opener = "while"
			}
			output = t.popToMatching(&stack, opener, output)

			falseMark := t.newMark()
			output = append(output,
				Op{Kind: KindMark, Name: falseMark},
				Op{Kind: KindJumpIfFalse, Name: falseMark})
			stack = append(stack, stackEntry{isMark: true, mark: falseMark})

		case lx.Text == "else":
			oneShot = false

			exitMark := t.newMark()
			output = append(output,
				Op{Kind: KindMark, Name: exitMark},
				Op{Kind: KindJump, Name: exitMark})

			falseMark := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			marks[falseMark.mark] = len(output)

			stack = append(stack, stackEntry{isMark: true, mark: exitMark})

		case lx.Text == "while":
			loopMark := t.newMark()
			marks[loopMark] = len(output)
			stack = append(stack,
				stackEntry{isMark: true, mark: loopMark},
				stackEntry{text: "while"})

		case lx.Text == "enddo":
			oneShot = false

			exitMark := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			loopMark := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			output = append(output,
				Op{Kind: KindMark, Name: loopMark.mark},
				Op{Kind: KindJump, Name: loopMark.mark})
			marks[exitMark.mark] = len(output)

		case lx.Text == ";":
			if oneShot {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.isMark {
					marks[top.mark] = len(output)
				} else {
					output = append(output, opFromEntry(top))
				}
				oneShot = false
			}
			for len(stack) > 0 && stack[len(stack)-1].priority() >= priority[";"] {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				output = append(output, opFromEntry(top))
			}

		case lx.Text == "+" || lx.Text == "-":
			if isUnaryContext(lexemes, i) {
				text := UnaryPlus
				if lx.Text == "-" {
					text = UnaryMinus
				}
				stack = append(stack, stackEntry{text: text, pos: lx.Position})
			} else {
				output = t.pushBinaryOperator(&stack, lx.Text, lx.Position, output)
			}

		default: // *, /, ^, comparisons, =
			output = t.pushBinaryOperator(&stack, lx.Text, lx.Position, output)
		}

		t.history = append(t.history, HistoryRow{
			Lexeme:        lx.Text,
			OperatorStack: renderStack(stack),
			OutputDepth:   len(output),
		})
	}

	// End of input: drain whatever is left on the stack, in order,
	// resolving any stray mark to the tail position the way a
	// statement_list root (rather than a single expression root)
	// normally would have already done via ';'.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.isMark {
			marks[top.mark] = len(output)
			continue
		}
		output = append(output, opFromEntry(top))
	}

	if err := resolveJumps(output, marks); err != nil {
		return nil, nil, nil, err
	}
	return output, marks, t.history, nil
}

func (t *Transformer) newMark() string {
	name := fmt.Sprintf("mark_%d", t.markCounter)
	t.markCounter++
	return name
}

// popToMatching pops entries off stack, appending each as an Op to
// output, until it finds and discards the entry whose text is opener.
func (t *Transformer) popToMatching(stack *[]stackEntry, opener string, output []Op) []Op {
	for len(*stack) > 0 {
		top := (*stack)[len(*stack)-1]
		*stack = (*stack)[:len(*stack)-1]
		if !top.isMark && top.text == opener {
			return output
		}
		output = append(output, opFromEntry(top))
	}
	return output
}

// pushBinaryOperator implements the core loop's generic "any other
// binary operator" rule, which spec.md §4.4 also uses for `=` — there is
// no special-cased assignment handling in the transformation loop
// itself; the executor's operand stack is what makes assignment work
// (spec.md §4.5: pop value, pop identifier, assign).
func (t *Transformer) pushBinaryOperator(stack *[]stackEntry, text string, pos token.Position, output []Op) []Op {
	for len(*stack) > 0 && shouldPopBeforePushing((*stack)[len(*stack)-1].textOrMark(), text) {
		top := (*stack)[len(*stack)-1]
		*stack = (*stack)[:len(*stack)-1]
		output = append(output, opFromEntry(top))
	}
	*stack = append(*stack, stackEntry{text: text, pos: pos})
	return output
}

// textOrMark gives a mark entry a priority floor of "(" so it never gets
// popped by the generic binary-operator rule; marks are only ever popped
// by the dedicated then/do/else/enddo/`;` rules above.
func (e stackEntry) textOrMark() string {
	if e.isMark {
		return "("
	}
	return e.text
}

func opFromEntry(e stackEntry) Op {
	if e.isMark {
		return Op{Kind: KindMark, Name: e.mark}
	}
	switch e.text {
	case "write":
		return Op{Kind: KindWrite, Position: e.pos}
	case "read":
		return Op{Kind: KindRead, Position: e.pos}
	default:
		return Op{Kind: KindOperator, Text: e.text, Position: e.pos}
	}
}

// isUnaryContext implements spec.md §4.4's disambiguation rule: a `+` or
// `-` is unary unless the previous input terminal was a constant, an
// identifier, or a closing parenthesis — in which case it is an ordinary
// binary operator. Grounded on the original translator's
// _is_unary_context previous-lexeme lookback.
func isUnaryContext(lexemes []token.Lexeme, i int) bool {
	if i == 0 {
		return true
	}
	prev := lexemes[i-1]
	if prev.Kind == token.KindConstant || prev.Kind == token.KindIdentifier {
		return false
	}
	return prev.Text != ")"
}

func renderStack(stack []stackEntry) string {
	parts := make([]string, len(stack))
	for i, e := range stack {
		if e.isMark {
			parts[i] = e.mark
		} else {
			parts[i] = e.text
		}
	}
	return strings.Join(parts, " ")
}

// resolveJumps fills in every KindJump/KindJumpIfFalse's TargetIndex
// from the marks table built during the main pass. A jump whose mark
// was never resolved is an Internal error — spec.md §9's "no dangling
// jump target" invariant.
func resolveJumps(ops []Op, marks map[string]int) error {
	for i, op := range ops {
		if op.Kind != KindJump && op.Kind != KindJumpIfFalse {
			continue
		}
		target, ok := marks[op.Name]
		if !ok {
			return diagnostics.Internal("postfix transform produced a jump to unresolved mark %q", op.Name)
		}
		ops[i].TargetIndex = target
	}
	return nil
}
