package ast

import (
	"github.com/funvibe/classc/internal/token"
)

// Class represents a class declaration.
// [attrs] class Name : Super (Iface1, Iface2) { members }
type Class struct {
	Pos        token.Position
	Attributes []*Attribute
	Name       string
	SuperName  string
	Interfaces []string // Implemented interfaces, in declaration order
	Members    []ClassMember
}

func (c *Class) Accept(v Visitor)       { v.VisitClass(c) }
func (c *Class) entityNode()            {}
func (c *Class) GetPos() token.Position { return c.Pos }
func (c *Class) GetName() string        { return c.Name }

// IsAbstract reports whether the class carries the abstract attribute.
func (c *Class) IsAbstract() bool { return HasAttribute(c.Attributes, AttrAbstract) }

// IsInterface reports whether the class carries the interface attribute.
func (c *Class) IsInterface() bool { return HasAttribute(c.Attributes, AttrInterface) }

// HasBlocks reports whether any member is a not-yet-normalized block.
func (c *Class) HasBlocks() bool {
	for _, m := range c.Members {
		if _, ok := m.(*Block); ok {
			return true
		}
	}
	return false
}

// Field represents a class field.
type Field struct {
	Pos        token.Position
	Attributes []*Attribute
	Name       string
	TypeName   string
}

func (f *Field) Accept(v Visitor)       { v.VisitField(f) }
func (f *Field) memberNode()            {}
func (f *Field) GetPos() token.Position { return f.Pos }

// Block is an attribute-scoped group of members nested in a class body.
// native { int a(); int b(); }
type Block struct {
	Pos        token.Position
	Attributes []*Attribute
	Members    []ClassMember
}

func (b *Block) Accept(v Visitor)       { v.VisitBlock(b) }
func (b *Block) memberNode()            {}
func (b *Block) GetPos() token.Position { return b.Pos }

// Function is either a freestanding function or a method.
type Function struct {
	Pos        token.Position
	Attributes []*Attribute
	Name       string
	Params     []*Param
	ReturnType string
	Statements []Statement
}

func (fn *Function) Accept(v Visitor)       { v.VisitFunction(fn) }
func (fn *Function) entityNode()            {}
func (fn *Function) memberNode()            {}
func (fn *Function) GetPos() token.Position { return fn.Pos }
func (fn *Function) GetName() string        { return fn.Name }

// HasBody reports whether the function has at least one statement.
// An empty statement list is the only "bodyless" signal.
func (fn *Function) HasBody() bool { return len(fn.Statements) > 0 }

// Param is a function or closure parameter.
type Param struct {
	Pos      token.Position
	Name     string
	TypeName string
}

func (p *Param) Accept(v Visitor)       { v.VisitParam(p) }
func (p *Param) GetPos() token.Position { return p.Pos }

// Closure is an anonymous function value usable in any expression position.
type Closure struct {
	Pos        token.Position
	Params     []*Param
	ReturnType string
	Statements []Statement
}

func (c *Closure) Accept(v Visitor)       { v.VisitClosure(c) }
func (c *Closure) partNode()              {}
func (c *Closure) GetPos() token.Position { return c.Pos }
