package postfix

import "github.com/rocketlang/rocket/internal/token"

// Kind tags the shape of a single postfix operation.
type Kind int

const (
	KindConstant   Kind = iota
	KindIdentifier      // pushes an unresolved IdentifierOperand, resolved lazily on use
	KindOperator        // binary, unary, or assignment operator; Text holds its symbol, "=" included
	KindWrite           // pops one operand, resolves it, emits it
	KindRead            // pops one identifier operand, suspends for input, assigns on resume
	KindMark            // a named position in the stream; a no-op at execution time
	KindJump            // unconditional jump to TargetIndex
	KindJumpIfFalse     // pops one operand, resolves it, jumps to TargetIndex if it is zero
)

// Unary operator texts, distinguished from their binary counterparts so
// the executor never has to rediscover arity from context. Grounded on
// postfix_transformation.py's rewrite of a disambiguated sign into a
// dedicated unary symbol before it ever reaches the operator stack.
const (
	UnaryPlus  = "+_"
	UnaryMinus = "@"
)

// Op is one element of a resolved postfix stream.
type Op struct {
	Kind  Kind
	Text  string       // KindOperator
	Name  string       // KindIdentifier, KindMark, KindJump, KindJumpIfFalse
	Value token.Number // KindConstant

	// Position carries the originating lexeme's source location, so a
	// runtime NameError or ZeroDivision diagnostic can report real
	// file/line/column instead of a synthesized, positionless lexeme.
	// Populated for KindIdentifier and KindOperator; the zero value for
	// pseudo-ops (KindMark, KindJump, KindJumpIfFalse) that have no single
	// originating lexeme.
	Position token.Position

	// TargetIndex is the resolved index into the owning Ops slice a
	// KindJump/KindJumpIfFalse lands on; filled in once the whole stream
	// has been produced and every mark's position is known.
	TargetIndex int
}
