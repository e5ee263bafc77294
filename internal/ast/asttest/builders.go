// Package asttest provides compact constructors for AST fixtures used by the
// tests of the front-end passes.
package asttest

import (
	"sync/atomic"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/token"
)

var line atomic.Int64

// pos hands out increasing positions so fixtures have distinct locations.
func pos() token.Position {
	return token.Pos(int(line.Add(1)), 1)
}

func Attrs(names ...string) []*ast.Attribute {
	out := make([]*ast.Attribute, 0, len(names))
	for _, n := range names {
		out = append(out, &ast.Attribute{Pos: pos(), Name: n})
	}
	return out
}

func File(namespace string, entities ...ast.Entity) *ast.File {
	return &ast.File{Path: namespace + ".ast.yaml", Namespace: namespace, Entities: entities}
}

func Class(name string, attrs []*ast.Attribute, members ...ast.ClassMember) *ast.Class {
	return &ast.Class{Pos: pos(), Attributes: attrs, Name: name, Members: members}
}

func Field(name, typ string, attrs ...string) *ast.Field {
	return &ast.Field{Pos: pos(), Attributes: Attrs(attrs...), Name: name, TypeName: typ}
}

func Block(attrs []string, members ...ast.ClassMember) *ast.Block {
	return &ast.Block{Pos: pos(), Attributes: Attrs(attrs...), Members: members}
}

// Func builds a function; a nil body means "bodyless".
func Func(name, ret string, attrs []string, params []*ast.Param, body ...ast.Statement) *ast.Function {
	return &ast.Function{
		Pos:        pos(),
		Attributes: Attrs(attrs...),
		Name:       name,
		Params:     params,
		ReturnType: ret,
		Statements: body,
	}
}

func Params(nameTypes ...string) []*ast.Param {
	var out []*ast.Param
	for i := 0; i+1 < len(nameTypes); i += 2 {
		out = append(out, &ast.Param{Pos: pos(), Name: nameTypes[i], TypeName: nameTypes[i+1]})
	}
	return out
}

func Closure(ret string, params []*ast.Param, body ...ast.Statement) *ast.Closure {
	return &ast.Closure{Pos: pos(), Params: params, ReturnType: ret, Statements: body}
}

func Q(parts ...ast.QualifiedExpressionPart) *ast.QualifiedExpression {
	return &ast.QualifiedExpression{Pos: pos(), Parts: parts}
}

func Ident(name string) *ast.Identifier { return &ast.Identifier{Pos: pos(), Name: name} }

func Int(v int32) *ast.IntegerLiteral { return &ast.IntegerLiteral{Pos: pos(), Value: v} }

func Str(v string) *ast.StringLiteral { return &ast.StringLiteral{Pos: pos(), Value: v} }

func Call(name string, args ...ast.Expression) *ast.FunctionCall {
	return &ast.FunctionCall{Pos: pos(), Name: name, Args: args}
}

func Op(op ast.OperationType, l, r ast.Expression) *ast.Operation {
	return &ast.Operation{Pos: pos(), Op: op, Left: l, Right: r}
}

func Return(e ast.Expression) *ast.ReturnStatement {
	return &ast.ReturnStatement{Pos: pos(), Value: e}
}

func ReturnInt(v int32) *ast.ReturnStatement { return Return(Q(Int(v))) }

func Let(name, typ string, value ast.Expression) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Pos: pos(), Name: name, TypeName: typ, Value: value}
}

func Assign(receiver *ast.QualifiedExpression, value ast.Expression) *ast.VariableAffectation {
	return &ast.VariableAffectation{Pos: pos(), Receiver: receiver, Value: value}
}
