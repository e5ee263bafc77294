// Package analyzer holds the semantic passes of the front end: attribute
// validators for classes, methods and freestanding functions, and the
// pipeline stages that run them and build the symbol tables.
package analyzer

import (
	"fmt"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/diagnostics"
)

// reporter collects diagnostics for one file, deduplicating by position and
// code.
type reporter struct {
	currentFile string
	errorSet    map[string]struct{}
	errors      []*diagnostics.DiagnosticError
}

func (r *reporter) addError(err *diagnostics.DiagnosticError) {
	if err.File == "" && r.currentFile != "" {
		err.File = r.currentFile
	}
	key := fmt.Sprintf("%d:%d:%s:%s", err.Pos.Line, err.Pos.Column, err.Code, err.Member)
	if r.errorSet == nil {
		r.errorSet = make(map[string]struct{})
	}
	if _, ok := r.errorSet[key]; ok {
		return
	}
	r.errorSet[key] = struct{}{}
	r.errors = append(r.errors, err)
}

// Validate runs both attribute validators over one file and returns every
// violation found, methods first.
func Validate(file *ast.File) []*diagnostics.DiagnosticError {
	errs := CheckMethods(file)
	return append(errs, CheckFunctions(file)...)
}
