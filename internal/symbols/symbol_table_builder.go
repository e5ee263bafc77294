package symbols

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/classc/internal/ast"
)

// scope is an open function or closure table. closures counts the closures
// opened directly inside it and names them "<closureN>".
type scope struct {
	name     string
	table    FunctionSymbolTable
	closures int
}

// Builder folds the files of one namespace into a NamespaceSymbolTable.
// It is a Visitor: the class table is set while inside a class, and scopes
// holds the open function table followed by one table per open closure.
type Builder struct {
	ast.BaseVisitor

	namespace string
	file      string
	nst       NamespaceSymbolTable

	cst       ClassSymbolTable
	className string
	scopes    []*scope

	conflicts []Conflict
}

func NewBuilder(namespace string) *Builder {
	b := &Builder{namespace: namespace, nst: make(NamespaceSymbolTable)}
	b.BaseVisitor = ast.BaseVisitor{Self: b}
	return b
}

// AddFile visits one file of the namespace. Files must be added in a fixed
// order: a later declaration replaces an earlier one of the same name.
func (b *Builder) AddFile(f *ast.File) {
	b.file = f.Path
	ast.Walk(b, f)
}

func (b *Builder) Table() NamespaceSymbolTable { return b.nst }

// Conflicts lists the redeclarations seen so far, in visiting order.
func (b *Builder) Conflicts() []Conflict { return b.conflicts }

// BuildNamespace builds the table of one namespace group.
func BuildNamespace(namespace string, files []*ast.File) (NamespaceSymbolTable, []Conflict) {
	b := NewBuilder(namespace)
	for _, f := range files {
		b.AddFile(f)
	}
	return b.Table(), b.Conflicts()
}

// Build builds the global table, one namespace at a time in name order.
func Build(groups map[string][]*ast.File) (GlobalSymbolTable, []Conflict) {
	names := make([]string, 0, len(groups))
	for ns := range groups {
		names = append(names, ns)
	}
	sort.Strings(names)

	gst := make(GlobalSymbolTable, len(groups))
	var conflicts []Conflict
	for _, ns := range names {
		nst, c := BuildNamespace(ns, groups[ns])
		gst[ns] = nst
		conflicts = append(conflicts, c...)
	}
	return gst, conflicts
}

func (b *Builder) scopePath() string {
	var parts []string
	if b.cst != nil {
		parts = append(parts, b.className)
	}
	for _, s := range b.scopes {
		parts = append(parts, s.name)
	}
	return strings.Join(parts, ".")
}

func (b *Builder) record(res InsertResult, name string, current Entry) {
	if !res.Duplicate {
		return
	}
	b.conflicts = append(b.conflicts, Conflict{
		Namespace: b.namespace,
		Scope:     b.scopePath(),
		Name:      name,
		File:      b.file,
		Previous:  res.Previous,
		Current:   current,
	})
}

func (b *Builder) innermost(what string) *scope {
	if len(b.scopes) == 0 {
		panic(fmt.Sprintf("symbols: %s outside of a function in namespace %s (%s)", what, b.namespace, b.file))
	}
	return b.scopes[len(b.scopes)-1]
}

func (b *Builder) VisitClass(n *ast.Class) {
	if b.cst != nil {
		panic(fmt.Sprintf("symbols: class %s nested in class %s", n.Name, b.className))
	}
	b.cst = make(ClassSymbolTable)
	b.className = n.Name
	for _, m := range n.Members {
		b.VisitClassMember(m)
	}
	members := b.cst
	b.cst = nil
	b.className = ""

	entry := &ClassEntry{
		SuperName:  n.SuperName,
		Interfaces: append([]string(nil), n.Interfaces...),
		Pos:        n.Pos,
		Members:    members,
	}
	b.record(b.nst.Insert(n.Name, entry), n.Name, entry)
}

func (b *Builder) VisitField(n *ast.Field) {
	if b.cst == nil {
		panic(fmt.Sprintf("symbols: field %s outside of a class", n.Name))
	}
	entry := &FieldEntry{Type: n.TypeName, Pos: n.Pos}
	b.record(b.cst.Insert(n.Name, entry), n.Name, entry)
}

func (b *Builder) VisitFunction(n *ast.Function) {
	if len(b.scopes) != 0 {
		panic(fmt.Sprintf("symbols: function %s nested in %s", n.Name, b.scopePath()))
	}
	b.scopes = append(b.scopes, &scope{name: n.Name, table: make(FunctionSymbolTable)})
	for _, p := range n.Params {
		b.VisitParam(p)
	}
	for _, s := range n.Statements {
		b.VisitStatement(s)
	}
	locals := b.scopes[0].table
	b.scopes = b.scopes[:0]

	if b.cst != nil {
		entry := &MethodEntry{ReturnType: n.ReturnType, Pos: n.Pos, Locals: locals}
		b.record(b.cst.Insert(n.Name, entry), n.Name, entry)
		return
	}
	entry := &FunEntry{ReturnType: n.ReturnType, Pos: n.Pos, Locals: locals}
	b.record(b.nst.Insert(n.Name, entry), n.Name, entry)
}

func (b *Builder) VisitClosure(n *ast.Closure) {
	parent := b.innermost("closure")
	parent.closures++
	name := fmt.Sprintf("<closure%d>", parent.closures)

	b.scopes = append(b.scopes, &scope{name: name, table: make(FunctionSymbolTable)})
	for _, p := range n.Params {
		b.VisitParam(p)
	}
	for _, s := range n.Statements {
		b.VisitStatement(s)
	}
	locals := b.scopes[len(b.scopes)-1].table
	b.scopes = b.scopes[:len(b.scopes)-1]

	entry := &ClosureEntry{ReturnType: n.ReturnType, Pos: n.Pos, Locals: locals}
	b.record(parent.table.Insert(name, entry), name, entry)
}

func (b *Builder) VisitParam(n *ast.Param) {
	s := b.innermost("parameter " + n.Name)
	entry := &ParamEntry{Type: n.TypeName, Pos: n.Pos}
	b.record(s.table.Insert(n.Name, entry), n.Name, entry)
}

func (b *Builder) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	s := b.innermost("variable " + n.Name)
	entry := &VarEntry{Type: n.TypeName, Pos: n.Pos}
	b.record(s.table.Insert(n.Name, entry), n.Name, entry)
	// The initializer may open closures.
	b.BaseVisitor.VisitVariableDeclaration(n)
}
