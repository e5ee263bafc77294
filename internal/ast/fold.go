package ast

// Folder rebuilds the tree: each handler consumes a node and returns its
// replacement. Unlike Visitor there is no automatic recursion: a pass that
// wants to rewrite below the node it overrides calls the child handlers
// itself, so substituting a single node shape stays cheap.
type Folder interface {
	FoldFile(n *File) *File
	FoldAttribute(n *Attribute) *Attribute

	FoldClass(n *Class) *Class
	FoldClassMember(n ClassMember) ClassMember
	FoldField(n *Field) *Field
	FoldBlock(n *Block) *Block

	FoldFunction(n *Function) *Function
	FoldParam(n *Param) *Param
	FoldClosure(n *Closure) *Closure

	FoldStatement(n Statement) Statement
	FoldReturnStatement(n *ReturnStatement) *ReturnStatement
	FoldVariableDeclaration(n *VariableDeclaration) *VariableDeclaration
	FoldVariableAffectation(n *VariableAffectation) *VariableAffectation

	FoldExpression(n Expression) Expression
	FoldOperation(n *Operation) *Operation
	FoldQualifiedExpression(n *QualifiedExpression) *QualifiedExpression
	FoldQualifiedExpressionPart(n QualifiedExpressionPart) QualifiedExpressionPart
	FoldFunctionCall(n *FunctionCall) *FunctionCall
	FoldParenExpression(n *ParenExpression) *ParenExpression

	FoldIdentifier(n *Identifier) *Identifier
	FoldIntegerLiteral(n *IntegerLiteral) *IntegerLiteral
	FoldStringLiteral(n *StringLiteral) *StringLiteral
	FoldCharLiteral(n *CharLiteral) *CharLiteral
	FoldBooleanLiteral(n *BooleanLiteral) *BooleanLiteral
	FoldNullLiteral(n *NullLiteral) *NullLiteral
}

// IdentityFolder returns every node unchanged. Embed it and override the
// handlers that substitute something.
type IdentityFolder struct{}

func (IdentityFolder) FoldFile(n *File) *File                { return n }
func (IdentityFolder) FoldAttribute(n *Attribute) *Attribute { return n }

func (IdentityFolder) FoldClass(n *Class) *Class                 { return n }
func (IdentityFolder) FoldClassMember(n ClassMember) ClassMember { return n }
func (IdentityFolder) FoldField(n *Field) *Field                 { return n }
func (IdentityFolder) FoldBlock(n *Block) *Block                 { return n }

func (IdentityFolder) FoldFunction(n *Function) *Function { return n }
func (IdentityFolder) FoldParam(n *Param) *Param          { return n }
func (IdentityFolder) FoldClosure(n *Closure) *Closure    { return n }

func (IdentityFolder) FoldStatement(n Statement) Statement                     { return n }
func (IdentityFolder) FoldReturnStatement(n *ReturnStatement) *ReturnStatement { return n }
func (IdentityFolder) FoldVariableDeclaration(n *VariableDeclaration) *VariableDeclaration {
	return n
}
func (IdentityFolder) FoldVariableAffectation(n *VariableAffectation) *VariableAffectation {
	return n
}

func (IdentityFolder) FoldExpression(n Expression) Expression                         { return n }
func (IdentityFolder) FoldOperation(n *Operation) *Operation                          { return n }
func (IdentityFolder) FoldQualifiedExpression(n *QualifiedExpression) *QualifiedExpression {
	return n
}
func (IdentityFolder) FoldQualifiedExpressionPart(n QualifiedExpressionPart) QualifiedExpressionPart {
	return n
}
func (IdentityFolder) FoldFunctionCall(n *FunctionCall) *FunctionCall         { return n }
func (IdentityFolder) FoldParenExpression(n *ParenExpression) *ParenExpression { return n }

func (IdentityFolder) FoldIdentifier(n *Identifier) *Identifier             { return n }
func (IdentityFolder) FoldIntegerLiteral(n *IntegerLiteral) *IntegerLiteral { return n }
func (IdentityFolder) FoldStringLiteral(n *StringLiteral) *StringLiteral    { return n }
func (IdentityFolder) FoldCharLiteral(n *CharLiteral) *CharLiteral          { return n }
func (IdentityFolder) FoldBooleanLiteral(n *BooleanLiteral) *BooleanLiteral { return n }
func (IdentityFolder) FoldNullLiteral(n *NullLiteral) *NullLiteral          { return n }

var _ Folder = IdentityFolder{}

// FoldEntities rebuilds a file by passing every entity through f. It is the
// explicit recursion step most file-level folds start with.
func FoldEntities(f Folder, n *File) *File {
	out := &File{
		Path:      n.Path,
		Namespace: n.Namespace,
		Imports:   append([]string(nil), n.Imports...),
		Entities:  make([]Entity, 0, len(n.Entities)),
	}
	for _, e := range n.Entities {
		switch e := e.(type) {
		case *Class:
			out.Entities = append(out.Entities, f.FoldClass(e))
		case *Function:
			out.Entities = append(out.Entities, f.FoldFunction(e))
		}
	}
	return out
}
