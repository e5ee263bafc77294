// Package prettyprinter renders AST files back as source text.
package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/classc/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter is a Visitor that writes each node as source. Attributes are
// printed in list order, so a normalized member shows its own attributes
// before the ones inherited from its blocks.
type CodePrinter struct {
	ast.BaseVisitor

	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	p := &CodePrinter{}
	p.BaseVisitor = ast.BaseVisitor{Self: p}
	return p
}

// Print renders a whole file.
func Print(f *ast.File) string {
	p := NewCodePrinter()
	f.Accept(p)
	return p.String()
}

// PrintNode renders any node on its own.
func PrintNode(n ast.Node) string {
	p := NewCodePrinter()
	n.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) writeAttributes(attrs []*ast.Attribute) {
	for _, a := range attrs {
		a.Accept(p)
		p.write(" ")
	}
}

func (p *CodePrinter) writeParams(params []*ast.Param) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		param.Accept(p)
	}
	p.write(")")
}

// writeBody prints " {", the statements one per line, and the closing
// brace at the current indentation.
func (p *CodePrinter) writeBody(stmts []ast.Statement) {
	p.write(" {")
	p.writeln()
	p.indent++
	for _, s := range stmts {
		p.writeIndent()
		if s == nil {
			p.write("<???>")
		} else {
			s.Accept(p)
		}
		p.write(";")
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitFile(n *ast.File) {
	p.write("namespace " + n.Namespace + ";")
	p.writeln()
	for _, imp := range n.Imports {
		p.write("import " + imp + ";")
		p.writeln()
	}
	for _, e := range n.Entities {
		p.writeln()
		e.Accept(p)
		p.writeln()
	}
}

func (p *CodePrinter) VisitAttribute(n *ast.Attribute) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitClass(n *ast.Class) {
	p.writeIndent()
	p.writeAttributes(n.Attributes)
	p.write("class " + n.Name)
	if n.SuperName != "" {
		p.write(" : " + n.SuperName)
	}
	if len(n.Interfaces) > 0 {
		p.write(" (" + strings.Join(n.Interfaces, ", ") + ")")
	}
	p.writeMembers(n.Members)
}

func (p *CodePrinter) writeMembers(members []ast.ClassMember) {
	p.write(" {")
	p.writeln()
	p.indent++
	for _, m := range members {
		m.Accept(p)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitField(n *ast.Field) {
	p.writeIndent()
	p.writeAttributes(n.Attributes)
	p.write(n.Name + ": " + n.TypeName + ";")
}

func (p *CodePrinter) VisitBlock(n *ast.Block) {
	p.writeIndent()
	p.write(strings.Join(ast.AttributeNames(n.Attributes), " "))
	if len(n.Attributes) == 0 {
		p.write("block")
	}
	p.writeMembers(n.Members)
}

func (p *CodePrinter) VisitFunction(n *ast.Function) {
	p.writeIndent()
	p.writeAttributes(n.Attributes)
	p.write("fun " + n.Name)
	p.writeParams(n.Params)
	p.write(" -> " + n.ReturnType)
	if !n.HasBody() {
		p.write(";")
		return
	}
	p.writeBody(n.Statements)
}

func (p *CodePrinter) VisitParam(n *ast.Param) {
	p.write(n.Name + ": " + n.TypeName)
}

func (p *CodePrinter) VisitClosure(n *ast.Closure) {
	p.write("{ ")
	p.writeParams(n.Params)
	p.write(" -> " + n.ReturnType)
	p.writeBody(n.Statements)
	p.write(" }")
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.write("return")
	if n.Value != nil {
		p.write(" ")
		n.Value.Accept(p)
	}
}

func (p *CodePrinter) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	p.write("let " + n.Name + ": " + n.TypeName)
	if n.Value != nil {
		p.write(" = ")
		n.Value.Accept(p)
	}
}

func (p *CodePrinter) VisitVariableAffectation(n *ast.VariableAffectation) {
	if n.Receiver != nil {
		n.Receiver.Accept(p)
	} else {
		p.write("<???>")
	}
	p.write(" = ")
	if n.Value != nil {
		n.Value.Accept(p)
	} else {
		p.write("<???>")
	}
}

func (p *CodePrinter) VisitOperation(n *ast.Operation) {
	prec := n.Op.Precedence()
	p.printOperand(n.Left, prec, false)
	p.write(" " + n.Op.String() + " ")
	p.printOperand(n.Right, prec, true)
}

// printOperand adds parentheses only where the tree differs from what
// left-associative precedence parsing would produce.
func (p *CodePrinter) printOperand(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	op, ok := expr.(*ast.Operation)
	if !ok {
		expr.Accept(p)
		return
	}
	prec := op.Op.Precedence()
	if prec < parentPrec || (prec == parentPrec && isRight) {
		p.write("(")
		expr.Accept(p)
		p.write(")")
		return
	}
	expr.Accept(p)
}

func (p *CodePrinter) VisitQualifiedExpression(n *ast.QualifiedExpression) {
	for i, part := range n.Parts {
		if i > 0 {
			p.write(".")
		}
		part.Accept(p)
	}
}

func (p *CodePrinter) VisitFunctionCall(n *ast.FunctionCall) {
	p.write(n.Name + "(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		if arg == nil {
			p.write("<???>")
			continue
		}
		arg.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitParenExpression(n *ast.ParenExpression) {
	p.write("(")
	if n.Expr != nil {
		n.Expr.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.write(strconv.FormatInt(int64(n.Value), 10))
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *CodePrinter) VisitCharLiteral(n *ast.CharLiteral) {
	p.write(strconv.QuoteRune(n.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *CodePrinter) VisitNullLiteral(n *ast.NullLiteral) {
	p.write("null")
}
