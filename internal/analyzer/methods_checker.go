package analyzer

import (
	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/diagnostics"
)

// methodsChecker validates abstract, interface and native attributes on
// classes and their methods.
type methodsChecker struct {
	ast.BaseVisitor
	reporter

	namespace   string
	class       string
	isAbstract  bool
	isInterface bool

	// Attributes of the enclosing blocks, outermost first. Blocks are not
	// normalized yet when validation runs.
	blockAttrs [][]*ast.Attribute
}

// CheckMethods validates every class of the file.
func CheckMethods(file *ast.File) []*diagnostics.DiagnosticError {
	c := &methodsChecker{}
	c.BaseVisitor = ast.BaseVisitor{Self: c}
	c.currentFile = file.Path
	ast.Walk(c, file)
	return c.errors
}

func (c *methodsChecker) VisitFile(n *ast.File) {
	c.namespace = n.Namespace
	for _, class := range n.Classes() {
		c.VisitClass(class)
	}
}

func (c *methodsChecker) VisitClass(n *ast.Class) {
	c.class = n.Name
	c.isAbstract = n.IsAbstract()
	c.isInterface = n.IsInterface()
	defer func() {
		c.isAbstract = false
		c.isInterface = false
		c.class = ""
	}()

	if c.isAbstract && c.isInterface {
		c.addError(diagnostics.NewClassError(diagnostics.ErrC001, c.namespace, c.class, c.currentFile, n.Pos))
		return
	}
	for _, m := range n.Members {
		c.VisitClassMember(m)
	}
}

func (c *methodsChecker) VisitBlock(n *ast.Block) {
	c.blockAttrs = append(c.blockAttrs, n.Attributes)
	defer func() { c.blockAttrs = c.blockAttrs[:len(c.blockAttrs)-1] }()
	for _, m := range n.Members {
		c.VisitClassMember(m)
	}
}

// effectiveAttributes mirrors block normalization: own attributes, then the
// enclosing blocks from innermost to outermost.
func (c *methodsChecker) effectiveAttributes(own []*ast.Attribute) []*ast.Attribute {
	attrs := append([]*ast.Attribute(nil), own...)
	for i := len(c.blockAttrs) - 1; i >= 0; i-- {
		attrs = append(attrs, c.blockAttrs[i]...)
	}
	return attrs
}

func (c *methodsChecker) VisitFunction(n *ast.Function) {
	report := func(code diagnostics.ErrorCode) {
		c.addError(diagnostics.NewMemberError(code, c.namespace, c.class, n.Name, c.currentFile, n.Pos))
	}

	isNative := false
	isAbstract := false
	for _, attr := range c.effectiveAttributes(n.Attributes) {
		switch attr.Name {
		case ast.AttrAbstract:
			if !c.isAbstract {
				report(diagnostics.ErrC002)
				return
			}
			isAbstract = true
		case ast.AttrNative:
			isNative = true
		}
	}

	if isAbstract && isNative {
		report(diagnostics.ErrC003)
		return
	}

	body := n.HasBody()
	switch {
	case !c.isAbstract && !c.isInterface && !isNative && !body:
		report(diagnostics.ErrC004)
	case c.isInterface && body:
		report(diagnostics.ErrC005)
	case isNative && body:
		report(diagnostics.ErrC006)
	case isAbstract && body:
		report(diagnostics.ErrC007)
	}
}

// Fields carry no attribute rules.
func (c *methodsChecker) VisitField(n *ast.Field) {}
