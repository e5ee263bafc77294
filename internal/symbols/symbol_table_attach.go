package symbols

import (
	"fmt"
	"strings"

	"github.com/funvibe/classc/internal/token"
)

// ParseSymbolKind is the inverse of SymbolKind.String.
func ParseSymbolKind(name string) (SymbolKind, bool) {
	for i, n := range kindNames {
		if n == name {
			return SymbolKind(i), true
		}
	}
	return 0, false
}

// NewEntry builds an empty entry of the given kind. typeName is the declared
// type, the return type of callables or the super class name of classes;
// interfaces only applies to classes.
func NewEntry(kind SymbolKind, typeName string, pos token.Position, interfaces []string) Entry {
	switch kind {
	case ClassSymbol:
		return &ClassEntry{SuperName: typeName, Interfaces: interfaces, Pos: pos, Members: make(ClassSymbolTable)}
	case FunSymbol:
		return &FunEntry{ReturnType: typeName, Pos: pos, Locals: make(FunctionSymbolTable)}
	case FieldSymbol:
		return &FieldEntry{Type: typeName, Pos: pos}
	case MethodSymbol:
		return &MethodEntry{ReturnType: typeName, Pos: pos, Locals: make(FunctionSymbolTable)}
	case ParamSymbol:
		return &ParamEntry{Type: typeName, Pos: pos}
	case VarSymbol:
		return &VarEntry{Type: typeName, Pos: pos}
	case ClosureSymbol:
		return &ClosureEntry{ReturnType: typeName, Pos: pos, Locals: make(FunctionSymbolTable)}
	}
	panic(fmt.Sprintf("symbols: unknown kind %d", kind))
}

// Attach stores e at path, whose first element is the namespace. Parents must
// be attached before their children, as Walk visits them.
func (g GlobalSymbolTable) Attach(path []string, e Entry) error {
	if len(path) < 2 {
		return fmt.Errorf("symbol path %q is too short", strings.Join(path, "."))
	}
	ns, name := path[0], path[len(path)-1]

	if len(path) == 2 {
		ne, ok := e.(NamespaceEntry)
		if !ok {
			return fmt.Errorf("%s %s cannot be declared at namespace level", e.Kind(), strings.Join(path, "."))
		}
		nst, ok := g[ns]
		if !ok {
			nst = make(NamespaceSymbolTable)
			g[ns] = nst
		}
		nst.Insert(name, ne)
		return nil
	}

	parent, ok := g.Lookup(ns, path[1:len(path)-1]...)
	if !ok {
		return fmt.Errorf("parent of %s not found", strings.Join(path, "."))
	}
	switch p := parent.(type) {
	case *ClassEntry:
		ce, ok := e.(ClassMemberEntry)
		if !ok {
			return fmt.Errorf("%s %s cannot be a class member", e.Kind(), strings.Join(path, "."))
		}
		p.Members.Insert(name, ce)
	case *FunEntry:
		return attachLocal(p.Locals, path, e)
	case *MethodEntry:
		return attachLocal(p.Locals, path, e)
	case *ClosureEntry:
		return attachLocal(p.Locals, path, e)
	default:
		return fmt.Errorf("%s %s has no table", parent.Kind(), strings.Join(path[:len(path)-1], "."))
	}
	return nil
}

func attachLocal(t FunctionSymbolTable, path []string, e Entry) error {
	le, ok := e.(LocalEntry)
	if !ok {
		return fmt.Errorf("%s %s cannot be a local", e.Kind(), strings.Join(path, "."))
	}
	t.Insert(path[len(path)-1], le)
	return nil
}
