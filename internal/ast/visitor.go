package ast

// Visitor walks the tree and may mutate nodes in place. There is one handler
// per node shape; the union handlers (ClassMember, Statement, Expression,
// QualifiedExpressionPart) dispatch to the concrete ones.
type Visitor interface {
	VisitFile(n *File)
	VisitAttribute(n *Attribute)

	VisitClass(n *Class)
	VisitClassMember(n ClassMember)
	VisitField(n *Field)
	VisitBlock(n *Block)

	VisitFunction(n *Function)
	VisitParam(n *Param)
	VisitClosure(n *Closure)

	VisitStatement(n Statement)
	VisitReturnStatement(n *ReturnStatement)
	VisitVariableDeclaration(n *VariableDeclaration)
	VisitVariableAffectation(n *VariableAffectation)

	VisitExpression(n Expression)
	VisitOperation(n *Operation)
	VisitQualifiedExpression(n *QualifiedExpression)
	VisitQualifiedExpressionPart(n QualifiedExpressionPart)
	VisitFunctionCall(n *FunctionCall)
	VisitParenExpression(n *ParenExpression)

	VisitIdentifier(n *Identifier)
	VisitIntegerLiteral(n *IntegerLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitCharLiteral(n *CharLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNullLiteral(n *NullLiteral)
}

// Walk dispatches node to the matching handler of v.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	node.Accept(v)
}

// BaseVisitor implements every Visitor handler with structural recursion into
// all children; leaves are no-ops. A pass embeds BaseVisitor, overrides the
// handlers it cares about and sets Self to itself so that the recursion
// reaches the overrides:
//
//	c := &counter{}
//	c.BaseVisitor = ast.BaseVisitor{Self: c}
//	ast.Walk(c, file)
type BaseVisitor struct {
	Self Visitor
}

func (b BaseVisitor) self() Visitor {
	if b.Self == nil {
		return b
	}
	return b.Self
}

func (b BaseVisitor) VisitFile(n *File) {
	v := b.self()
	for _, e := range n.Entities {
		e.Accept(v)
	}
}

func (b BaseVisitor) VisitAttribute(n *Attribute) {}

func (b BaseVisitor) VisitClass(n *Class) {
	v := b.self()
	for _, a := range n.Attributes {
		v.VisitAttribute(a)
	}
	for _, m := range n.Members {
		v.VisitClassMember(m)
	}
}

func (b BaseVisitor) VisitClassMember(n ClassMember) {
	n.Accept(b.self())
}

func (b BaseVisitor) VisitField(n *Field) {
	v := b.self()
	for _, a := range n.Attributes {
		v.VisitAttribute(a)
	}
}

func (b BaseVisitor) VisitBlock(n *Block) {
	v := b.self()
	for _, a := range n.Attributes {
		v.VisitAttribute(a)
	}
	for _, m := range n.Members {
		v.VisitClassMember(m)
	}
}

func (b BaseVisitor) VisitFunction(n *Function) {
	v := b.self()
	for _, a := range n.Attributes {
		v.VisitAttribute(a)
	}
	for _, p := range n.Params {
		v.VisitParam(p)
	}
	for _, s := range n.Statements {
		v.VisitStatement(s)
	}
}

func (b BaseVisitor) VisitParam(n *Param) {}

func (b BaseVisitor) VisitClosure(n *Closure) {
	v := b.self()
	for _, p := range n.Params {
		v.VisitParam(p)
	}
	for _, s := range n.Statements {
		v.VisitStatement(s)
	}
}

func (b BaseVisitor) VisitStatement(n Statement) {
	n.Accept(b.self())
}

func (b BaseVisitor) VisitReturnStatement(n *ReturnStatement) {
	if n.Value != nil {
		b.self().VisitExpression(n.Value)
	}
}

func (b BaseVisitor) VisitVariableDeclaration(n *VariableDeclaration) {
	if n.Value != nil {
		b.self().VisitExpression(n.Value)
	}
}

func (b BaseVisitor) VisitVariableAffectation(n *VariableAffectation) {
	v := b.self()
	if n.Receiver != nil {
		v.VisitQualifiedExpression(n.Receiver)
	}
	v.VisitExpression(n.Value)
}

func (b BaseVisitor) VisitExpression(n Expression) {
	n.Accept(b.self())
}

func (b BaseVisitor) VisitOperation(n *Operation) {
	v := b.self()
	v.VisitExpression(n.Left)
	v.VisitExpression(n.Right)
}

func (b BaseVisitor) VisitQualifiedExpression(n *QualifiedExpression) {
	v := b.self()
	for _, p := range n.Parts {
		v.VisitQualifiedExpressionPart(p)
	}
}

func (b BaseVisitor) VisitQualifiedExpressionPart(n QualifiedExpressionPart) {
	n.Accept(b.self())
}

func (b BaseVisitor) VisitFunctionCall(n *FunctionCall) {
	v := b.self()
	for _, arg := range n.Args {
		v.VisitExpression(arg)
	}
}

func (b BaseVisitor) VisitParenExpression(n *ParenExpression) {
	b.self().VisitExpression(n.Expr)
}

func (b BaseVisitor) VisitIdentifier(n *Identifier)         {}
func (b BaseVisitor) VisitIntegerLiteral(n *IntegerLiteral) {}
func (b BaseVisitor) VisitStringLiteral(n *StringLiteral)   {}
func (b BaseVisitor) VisitCharLiteral(n *CharLiteral)       {}
func (b BaseVisitor) VisitBooleanLiteral(n *BooleanLiteral) {}
func (b BaseVisitor) VisitNullLiteral(n *NullLiteral)       {}

var _ Visitor = BaseVisitor{}
