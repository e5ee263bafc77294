package ast_test

import (
	"testing"

	"github.com/funvibe/classc/internal/ast"
	at "github.com/funvibe/classc/internal/ast/asttest"
)

func TestIdentityFolderReturnsSameNodes(t *testing.T) {
	var f ast.Folder = ast.IdentityFolder{}
	fn := at.Func("f", "int", nil, nil, at.ReturnInt(1))
	file := at.File("n", fn)

	if got := f.FoldFile(file); got != file {
		t.Error("FoldFile should return its argument")
	}
	if got := f.FoldFunction(fn); got != fn {
		t.Error("FoldFunction should return its argument")
	}
	stmt := fn.Statements[0]
	if got := f.FoldStatement(stmt); got != stmt {
		t.Error("FoldStatement should return its argument")
	}
}

// intBumper substitutes integer literals only. It must recurse explicitly:
// the identity defaults never descend.
type intBumper struct {
	ast.IdentityFolder
	seen int
}

func (b *intBumper) FoldFunction(n *ast.Function) *ast.Function {
	out := *n
	out.Statements = make([]ast.Statement, 0, len(n.Statements))
	for _, s := range n.Statements {
		out.Statements = append(out.Statements, b.FoldStatement(s))
	}
	return &out
}

func (b *intBumper) FoldStatement(n ast.Statement) ast.Statement {
	if rs, ok := n.(*ast.ReturnStatement); ok && rs.Value != nil {
		return &ast.ReturnStatement{Pos: rs.Pos, Value: b.FoldExpression(rs.Value)}
	}
	return n
}

func (b *intBumper) FoldExpression(n ast.Expression) ast.Expression {
	if qe, ok := n.(*ast.QualifiedExpression); ok {
		return b.FoldQualifiedExpression(qe)
	}
	return n
}

func (b *intBumper) FoldQualifiedExpression(n *ast.QualifiedExpression) *ast.QualifiedExpression {
	out := &ast.QualifiedExpression{Pos: n.Pos}
	for _, p := range n.Parts {
		out.Parts = append(out.Parts, b.FoldQualifiedExpressionPart(p))
	}
	return out
}

func (b *intBumper) FoldQualifiedExpressionPart(n ast.QualifiedExpressionPart) ast.QualifiedExpressionPart {
	if il, ok := n.(*ast.IntegerLiteral); ok {
		return b.FoldIntegerLiteral(il)
	}
	return n
}

func (b *intBumper) FoldIntegerLiteral(n *ast.IntegerLiteral) *ast.IntegerLiteral {
	b.seen++
	return &ast.IntegerLiteral{Pos: n.Pos, Value: n.Value + 1}
}

func TestFoldRebuildsWithoutTouchingInput(t *testing.T) {
	lit := at.Int(41)
	fn := at.Func("f", "int", nil, nil, at.Return(at.Q(lit)))
	file := at.File("n", fn, at.Class("C", nil, at.Field("x", "int")))

	b := &intBumper{}
	out := ast.FoldEntities(b, file)

	if b.seen != 1 {
		t.Fatalf("expected one integer folded, got %d", b.seen)
	}
	if lit.Value != 41 {
		t.Errorf("input literal was mutated: %d", lit.Value)
	}
	newFn := out.Entities[0].(*ast.Function)
	got := newFn.Statements[0].(*ast.ReturnStatement).Value.(*ast.QualifiedExpression).Parts[0].(*ast.IntegerLiteral)
	if got.Value != 42 {
		t.Errorf("expected folded literal 42, got %d", got.Value)
	}
	if out.Entities[1] != file.Entities[1] {
		t.Error("class untouched by the folder should be returned as-is")
	}
	if out == file {
		t.Error("FoldEntities should build a new file")
	}
}
