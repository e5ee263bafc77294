package analyzer

import (
	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/diagnostics"
)

// functionsChecker checks that freestanding functions have a body or are
// native, and are never abstract.
type functionsChecker struct {
	ast.BaseVisitor
	reporter
	namespace string
}

func CheckFunctions(file *ast.File) []*diagnostics.DiagnosticError {
	c := &functionsChecker{}
	c.BaseVisitor = ast.BaseVisitor{Self: c}
	c.currentFile = file.Path
	ast.Walk(c, file)
	return c.errors
}

func (c *functionsChecker) VisitFile(n *ast.File) {
	c.namespace = n.Namespace
	for _, fn := range n.Functions() {
		c.VisitFunction(fn)
	}
}

func (c *functionsChecker) VisitFunction(n *ast.Function) {
	report := func(code diagnostics.ErrorCode) {
		c.addError(diagnostics.NewFunctionError(code, c.namespace, n.Name, c.currentFile, n.Pos))
	}

	if ast.HasAttribute(n.Attributes, ast.AttrAbstract) {
		report(diagnostics.ErrF001)
		return
	}

	isNative := ast.HasAttribute(n.Attributes, ast.AttrNative)
	switch {
	case n.HasBody() && isNative:
		report(diagnostics.ErrF002)
	case !n.HasBody() && !isNative:
		report(diagnostics.ErrF003)
	}
}
