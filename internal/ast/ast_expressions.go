package ast

import (
	"fmt"

	"github.com/funvibe/classc/internal/token"
)

// OperationType is the operator of a binary Operation.
type OperationType int

const (
	OpEqual OperationType = iota
	OpNotEqual
	OpGreaterOrEqual
	OpLowerOrEqual
	OpGreaterThan
	OpLowerThan
	OpAdd
	OpMinus
	OpTimes
	OpDiv
	OpMod
)

var operationSymbols = [...]string{
	OpEqual:          "==",
	OpNotEqual:       "!=",
	OpGreaterOrEqual: ">=",
	OpLowerOrEqual:   "<=",
	OpGreaterThan:    ">",
	OpLowerThan:      "<",
	OpAdd:            "+",
	OpMinus:          "-",
	OpTimes:          "*",
	OpDiv:            "/",
	OpMod:            "%",
}

func (op OperationType) String() string {
	if op < 0 || int(op) >= len(operationSymbols) {
		return fmt.Sprintf("OperationType(%d)", int(op))
	}
	return operationSymbols[op]
}

// ParseOperationType maps an operator symbol back to its OperationType.
func ParseOperationType(s string) (OperationType, bool) {
	for i, sym := range operationSymbols {
		if sym == s {
			return OperationType(i), true
		}
	}
	return 0, false
}

// Precedence returns the binding strength of the operator (higher binds tighter).
func (op OperationType) Precedence() int {
	switch op {
	case OpEqual, OpNotEqual:
		return 1
	case OpGreaterOrEqual, OpLowerOrEqual, OpGreaterThan, OpLowerThan:
		return 2
	case OpAdd, OpMinus:
		return 3
	default:
		return 4
	}
}

// Operation is a binary operation. Both operands are exclusively owned.
type Operation struct {
	Pos   token.Position
	Op    OperationType
	Left  Expression
	Right Expression
}

func (o *Operation) Accept(v Visitor)       { v.VisitOperation(o) }
func (o *Operation) expressionNode()        {}
func (o *Operation) GetPos() token.Position { return o.Pos }

// QualifiedExpression is an ordered chain of parts, e.g. a.b().c
// It is both an Expression and a Statement (a bare call chain).
type QualifiedExpression struct {
	Pos   token.Position
	Parts []QualifiedExpressionPart
}

func (qe *QualifiedExpression) Accept(v Visitor)       { v.VisitQualifiedExpression(qe) }
func (qe *QualifiedExpression) expressionNode()        {}
func (qe *QualifiedExpression) statementNode()         {}
func (qe *QualifiedExpression) GetPos() token.Position { return qe.Pos }

// FunctionCall is a method call part: name(args...).
type FunctionCall struct {
	Pos  token.Position
	Name string
	Args []Expression
}

func (fc *FunctionCall) Accept(v Visitor)       { v.VisitFunctionCall(fc) }
func (fc *FunctionCall) partNode()              {}
func (fc *FunctionCall) GetPos() token.Position { return fc.Pos }

// ParenExpression is a parenthesized sub-expression used as a part.
type ParenExpression struct {
	Pos  token.Position
	Expr Expression
}

func (pe *ParenExpression) Accept(v Visitor)       { v.VisitParenExpression(pe) }
func (pe *ParenExpression) partNode()              {}
func (pe *ParenExpression) GetPos() token.Position { return pe.Pos }

// Identifier represents a name reference.
type Identifier struct {
	Pos  token.Position
	Name string
}

func (i *Identifier) Accept(v Visitor)       { v.VisitIdentifier(i) }
func (i *Identifier) partNode()              {}
func (i *Identifier) GetPos() token.Position { return i.Pos }

// IntegerLiteral represents a 32-bit integer literal.
type IntegerLiteral struct {
	Pos   token.Position
	Value int32
}

func (il *IntegerLiteral) Accept(v Visitor)       { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) partNode()              {}
func (il *IntegerLiteral) GetPos() token.Position { return il.Pos }

// StringLiteral represents a string literal without its quotes.
type StringLiteral struct {
	Pos   token.Position
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)       { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) partNode()              {}
func (sl *StringLiteral) GetPos() token.Position { return sl.Pos }

// CharLiteral represents a character literal.
type CharLiteral struct {
	Pos   token.Position
	Value rune
}

func (cl *CharLiteral) Accept(v Visitor)       { v.VisitCharLiteral(cl) }
func (cl *CharLiteral) partNode()              {}
func (cl *CharLiteral) GetPos() token.Position { return cl.Pos }

// BooleanLiteral represents true/false.
type BooleanLiteral struct {
	Pos   token.Position
	Value bool
}

func (b *BooleanLiteral) Accept(v Visitor)       { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) partNode()              {}
func (b *BooleanLiteral) GetPos() token.Position { return b.Pos }

// NullLiteral represents null.
type NullLiteral struct {
	Pos token.Position
}

func (n *NullLiteral) Accept(v Visitor)       { v.VisitNullLiteral(n) }
func (n *NullLiteral) partNode()              {}
func (n *NullLiteral) GetPos() token.Position { return n.Pos }
