package symbols

import (
	"github.com/funvibe/classc/internal/token"
)

type SymbolKind int

const (
	ClassSymbol SymbolKind = iota
	FunSymbol
	FieldSymbol
	MethodSymbol
	ParamSymbol
	VarSymbol
	ClosureSymbol
)

var kindNames = [...]string{
	ClassSymbol:   "class",
	FunSymbol:     "fun",
	FieldSymbol:   "field",
	MethodSymbol:  "method",
	ParamSymbol:   "param",
	VarSymbol:     "var",
	ClosureSymbol: "closure",
}

func (k SymbolKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Entry is the common view of every symbol table entry.
type Entry interface {
	Kind() SymbolKind
	GetPos() token.Position
	// TypeName is the declared type, or the return type for callables.
	TypeName() string
}

// GlobalSymbolTable maps namespace names to their tables. It is the
// artifact handed to later compilation stages.
type GlobalSymbolTable map[string]NamespaceSymbolTable

// NamespaceSymbolTable holds the classes and freestanding functions of a namespace.
type NamespaceSymbolTable map[string]NamespaceEntry

// NamespaceEntry is a *ClassEntry or a *FunEntry.
type NamespaceEntry interface {
	Entry
	namespaceEntry()
}

// ClassSymbolTable holds the fields and methods of a class.
type ClassSymbolTable map[string]ClassMemberEntry

// ClassMemberEntry is a *FieldEntry or a *MethodEntry.
type ClassMemberEntry interface {
	Entry
	classMemberEntry()
}

// FunctionSymbolTable holds the parameters, variables and closures of a
// function, method or closure.
type FunctionSymbolTable map[string]LocalEntry

// LocalEntry is a *ParamEntry, a *VarEntry or a *ClosureEntry.
type LocalEntry interface {
	Entry
	localEntry()
}

type ClassEntry struct {
	SuperName  string
	Interfaces []string
	Pos        token.Position
	Members    ClassSymbolTable
}

func (e *ClassEntry) Kind() SymbolKind       { return ClassSymbol }
func (e *ClassEntry) GetPos() token.Position { return e.Pos }
func (e *ClassEntry) TypeName() string       { return e.SuperName }
func (e *ClassEntry) namespaceEntry()        {}

type FunEntry struct {
	ReturnType string
	Pos        token.Position
	Locals     FunctionSymbolTable
}

func (e *FunEntry) Kind() SymbolKind       { return FunSymbol }
func (e *FunEntry) GetPos() token.Position { return e.Pos }
func (e *FunEntry) TypeName() string       { return e.ReturnType }
func (e *FunEntry) namespaceEntry()        {}

type FieldEntry struct {
	Type string
	Pos  token.Position
}

func (e *FieldEntry) Kind() SymbolKind       { return FieldSymbol }
func (e *FieldEntry) GetPos() token.Position { return e.Pos }
func (e *FieldEntry) TypeName() string       { return e.Type }
func (e *FieldEntry) classMemberEntry()      {}

type MethodEntry struct {
	ReturnType string
	Pos        token.Position
	Locals     FunctionSymbolTable
}

func (e *MethodEntry) Kind() SymbolKind       { return MethodSymbol }
func (e *MethodEntry) GetPos() token.Position { return e.Pos }
func (e *MethodEntry) TypeName() string       { return e.ReturnType }
func (e *MethodEntry) classMemberEntry()      {}

type ParamEntry struct {
	Type string
	Pos  token.Position
}

func (e *ParamEntry) Kind() SymbolKind       { return ParamSymbol }
func (e *ParamEntry) GetPos() token.Position { return e.Pos }
func (e *ParamEntry) TypeName() string       { return e.Type }
func (e *ParamEntry) localEntry()            {}

type VarEntry struct {
	Type string
	Pos  token.Position
}

func (e *VarEntry) Kind() SymbolKind       { return VarSymbol }
func (e *VarEntry) GetPos() token.Position { return e.Pos }
func (e *VarEntry) TypeName() string       { return e.Type }
func (e *VarEntry) localEntry()            {}

// ClosureEntry is keyed by a synthesized "<closureN>" name.
type ClosureEntry struct {
	ReturnType string
	Pos        token.Position
	Locals     FunctionSymbolTable
}

func (e *ClosureEntry) Kind() SymbolKind       { return ClosureSymbol }
func (e *ClosureEntry) GetPos() token.Position { return e.Pos }
func (e *ClosureEntry) TypeName() string       { return e.ReturnType }
func (e *ClosureEntry) localEntry()            {}
