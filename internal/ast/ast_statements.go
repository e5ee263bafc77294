package ast

import (
	"github.com/funvibe/classc/internal/token"
)

// ReturnStatement represents `return [expr];`. Value is nil for a bare return.
type ReturnStatement struct {
	Pos   token.Position
	Value Expression
}

func (rs *ReturnStatement) Accept(v Visitor)       { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()         {}
func (rs *ReturnStatement) GetPos() token.Position { return rs.Pos }

// VariableDeclaration represents `let name: Type [= value];`.
type VariableDeclaration struct {
	Pos      token.Position
	Name     string
	TypeName string
	Value    Expression // Optional
}

func (vd *VariableDeclaration) Accept(v Visitor)       { v.VisitVariableDeclaration(vd) }
func (vd *VariableDeclaration) statementNode()         {}
func (vd *VariableDeclaration) GetPos() token.Position { return vd.Pos }

// VariableAffectation represents `receiver = value;`.
type VariableAffectation struct {
	Pos      token.Position
	Receiver *QualifiedExpression
	Value    Expression
}

func (va *VariableAffectation) Accept(v Visitor)       { v.VisitVariableAffectation(va) }
func (va *VariableAffectation) statementNode()         {}
func (va *VariableAffectation) GetPos() token.Position { return va.Pos }
