// Package exec implements spec.md §4.5: the stack-based executor, with
// the cooperative suspend/resume state machine spec.md §5 requires for
// interactive `read` — no goroutines or channels, just an explicit
// Outcome returned to the caller, grounded on the original translator's
// PostfixExecutor.get_output generator-based suspension, reshaped into
// Go's synchronous call/return idiom.
package exec

import (
	"fmt"
	"io"
	"math"

	"github.com/rocketlang/rocket/internal/diagnostics"
	"github.com/rocketlang/rocket/internal/postfix"
	"github.com/rocketlang/rocket/internal/token"
)

// Status tags why Run returned.
type Status int

const (
	// StatusDone means the whole postfix stream ran to completion.
	StatusDone Status = iota
	// StatusNeedsInput means execution suspended at a `read`; the caller
	// must obtain a line of input and call ProvideInput before calling
	// Run again.
	StatusNeedsInput
	// StatusError means execution stopped on a NameError or ValueError.
	StatusError
)

// Outcome is the result of one Run call.
type Outcome struct {
	Status Status
	// PendingVariable names the identifier a StatusNeedsInput suspension
	// is waiting to fill.
	PendingVariable string
	Err             error
}

// operand is spec.md §4.5's ConstantOperand/IdentifierOperand tagged
// value: an identifier pushed by a KindIdentifier op stays unresolved
// until something actually needs its value, so a `read` or assignment
// target can pop it back off as a bare name instead of a number.
type operand struct {
	isIdentifier bool
	name         string       // isIdentifier
	value        token.Number // !isIdentifier
	pos          token.Position
}

func constantOperand(v token.Number) operand { return operand{value: v} }
func identifierOperand(name string, pos token.Position) operand {
	return operand{isIdentifier: true, name: name, pos: pos}
}

// Machine executes a resolved postfix stream against a persistent
// variable map, writing `write` output to Output as it goes.
type Machine struct {
	Output io.Writer

	ops   []postfix.Op
	pc    int
	stack []operand
	vars  map[string]token.Number

	pendingVariable string
}

// New builds a Machine over a resolved postfix stream. The variable map
// starts empty, matching spec.md §3's "Variables" model: every identifier
// is undeclared until its first assignment or `read`.
func New(ops []postfix.Op, output io.Writer) *Machine {
	return &Machine{Output: output, ops: ops, vars: make(map[string]token.Number)}
}

// Variables exposes the live variable map, used by diagnostics to render
// the end-of-run variables table.
func (m *Machine) Variables() map[string]token.Number {
	return m.vars
}

// ProvideInput supplies the value a StatusNeedsInput suspension is
// waiting for. The caller must call Run again afterward to resume
// execution.
func (m *Machine) ProvideInput(text string) {
	m.vars[m.pendingVariable] = token.ParseNumber(text)
	m.pendingVariable = ""
}

// Run executes from the current program counter until the stream ends,
// a `read` suspends it, or an error occurs.
func (m *Machine) Run() Outcome {
	for m.pc < len(m.ops) {
		op := m.ops[m.pc]
		switch op.Kind {
		case postfix.KindConstant:
			m.push(constantOperand(op.Value))
			m.pc++

		case postfix.KindIdentifier:
			m.push(identifierOperand(op.Name, op.Position))
			m.pc++

		case postfix.KindWrite:
			v, err := m.resolve(m.pop())
			if err != nil {
				return m.fail(err)
			}
			fmt.Fprintln(m.Output, v.String())
			m.pc++

		case postfix.KindRead:
			target := m.pop()
			if !target.isIdentifier {
				return m.fail(diagnostics.Internal("read popped a non-identifier operand"))
			}
			m.pendingVariable = target.name
			m.pc++
			return Outcome{Status: StatusNeedsInput, PendingVariable: target.name}

		case postfix.KindOperator:
			if err := m.applyOperator(op.Text, op.Position); err != nil {
				return m.fail(err)
			}
			m.pc++

		case postfix.KindJump:
			m.pc = op.TargetIndex

		case postfix.KindJumpIfFalse:
			v, err := m.resolve(m.pop())
			if err != nil {
				return m.fail(err)
			}
			if v.IsZero() {
				m.pc = op.TargetIndex
			} else {
				m.pc++
			}

		case postfix.KindMark:
			m.pc++ // a pure position marker; no-op at execution time

		default:
			return m.fail(diagnostics.Internal("executor encountered unknown postfix op kind %d", op.Kind))
		}
	}
	return Outcome{Status: StatusDone}
}

func (m *Machine) push(v operand) { m.stack = append(m.stack, v) }

func (m *Machine) pop() operand {
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v
}

// resolve turns an operand into a Number, looking up an identifier
// operand's current value — spec.md §4.5's "lazy resolution on use".
func (m *Machine) resolve(o operand) (token.Number, error) {
	if !o.isIdentifier {
		return o.value, nil
	}
	v, ok := m.vars[o.name]
	if !ok {
		return token.Number{}, diagnostics.NameError(lexemeFor(o.name, o.pos))
	}
	return v, nil
}

func (m *Machine) fail(err error) Outcome {
	return Outcome{Status: StatusError, Err: err}
}

func (m *Machine) applyOperator(text string, pos token.Position) error {
	if text == postfix.UnaryPlus || text == postfix.UnaryMinus {
		v, err := m.resolve(m.pop())
		if err != nil {
			return err
		}
		if text == postfix.UnaryMinus {
			v = negate(v)
		}
		m.push(constantOperand(v))
		return nil
	}

	if text == "=" {
		return m.assign()
	}

	bo, ao := m.pop(), m.pop()
	b, err := m.resolve(bo)
	if err != nil {
		return err
	}
	a, err := m.resolve(ao)
	if err != nil {
		return err
	}

	switch text {
	case "+":
		m.push(constantOperand(arith(a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y })))
	case "-":
		m.push(constantOperand(arith(a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y })))
	case "*":
		m.push(constantOperand(arith(a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y })))
	case "/":
		if b.IsZero() {
			return diagnostics.ZeroDivision(token.Lexeme{Text: "/", Position: pos})
		}
		m.push(constantOperand(divide(a, b)))
	case "^":
		m.push(constantOperand(power(a, b)))
	case "==":
		m.push(constantOperand(boolNumber(a.Float64() == b.Float64())))
	case "!=":
		m.push(constantOperand(boolNumber(a.Float64() != b.Float64())))
	case ">=":
		m.push(constantOperand(boolNumber(a.Float64() >= b.Float64())))
	case "<=":
		m.push(constantOperand(boolNumber(a.Float64() <= b.Float64())))
	case ">":
		m.push(constantOperand(boolNumber(a.Float64() > b.Float64())))
	case "<":
		m.push(constantOperand(boolNumber(a.Float64() < b.Float64())))
	default:
		return diagnostics.Internal("executor encountered unknown operator %q", text)
	}
	return nil
}

// assign implements spec.md §4.5's assignment rule literally: pop the
// value operand (resolving it if it is itself an identifier, so "a = b"
// works), pop the identifier operand, and store.
func (m *Machine) assign() error {
	valueOperand := m.pop()
	targetOperand := m.pop()
	if !targetOperand.isIdentifier {
		return diagnostics.Internal("assignment popped a non-identifier target operand")
	}
	value, err := m.resolve(valueOperand)
	if err != nil {
		return err
	}
	m.vars[targetOperand.name] = value
	return nil
}

func negate(v token.Number) token.Number {
	if v.IsInt {
		return token.IntNumber(-v.Int)
	}
	return token.FloatNumber(-v.Float)
}

func boolNumber(b bool) token.Number {
	if b {
		return token.IntNumber(1)
	}
	return token.IntNumber(0)
}

// arith applies intOp when both operands are integers, promoting to
// floatOp otherwise — spec.md §4.5's "standard numeric promotion".
func arith(a, b token.Number, intOp func(x, y int64) int64, floatOp func(x, y float64) float64) token.Number {
	if a.IsInt && b.IsInt {
		return token.IntNumber(intOp(a.Int, b.Int))
	}
	return token.FloatNumber(floatOp(a.Float64(), b.Float64()))
}

// divide keeps an integer result only when both operands are integers and
// the division is exact; any remainder promotes to float rather than
// silently truncating.
func divide(a, b token.Number) token.Number {
	if a.IsInt && b.IsInt && a.Int%b.Int == 0 {
		return token.IntNumber(a.Int / b.Int)
	}
	return token.FloatNumber(a.Float64() / b.Float64())
}

// power keeps an integer result only for a non-negative integer exponent
// over an integer base.
func power(a, b token.Number) token.Number {
	if a.IsInt && b.IsInt && b.Int >= 0 {
		result := int64(1)
		for i := int64(0); i < b.Int; i++ {
			result *= a.Int
		}
		return token.IntNumber(result)
	}
	return token.FloatNumber(math.Pow(a.Float64(), b.Float64()))
}

// lexemeFor rebuilds the identifier lexeme diagnostics.NameError reports,
// carrying forward the real source position captured on the operand back
// in transform.go rather than a synthesized zero-value one.
func lexemeFor(name string, pos token.Position) token.Lexeme {
	return token.Lexeme{Text: name, Kind: token.KindIdentifier, Position: pos}
}
