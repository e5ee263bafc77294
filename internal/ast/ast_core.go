package ast

import (
	"github.com/funvibe/classc/internal/token"
)

// Well-known attribute names.
const (
	AttrNative    = "native"
	AttrAbstract  = "abstract"
	AttrInterface = "interface"
)

// Node is the base interface for all AST nodes.
type Node interface {
	GetPos() token.Position
	Accept(v Visitor)
}

// Entity is a first-class declaration of a file: a *Function or a *Class.
type Entity interface {
	Node
	entityNode()
	GetName() string
}

// ClassMember is a *Field, a *Function (method) or a *Block.
// Blocks only exist before normalization.
type ClassMember interface {
	Node
	memberNode()
}

// Statement is a Node that represents a statement of an executable body.
type Statement interface {
	Node
	statementNode()
}

// Expression is either an *Operation or a *QualifiedExpression.
type Expression interface {
	Node
	expressionNode()
}

// QualifiedExpressionPart is one link of a chain such as a.b().c.
type QualifiedExpressionPart interface {
	Node
	partNode()
}

// File is the root node produced by the parser for one source file.
type File struct {
	Path      string // Source path, filled by the loader
	Namespace string
	Imports   []string
	Entities  []Entity
}

func (f *File) Accept(v Visitor) { v.VisitFile(f) }
func (f *File) GetPos() token.Position {
	return token.Pos(1, 1)
}

// Classes returns the classes declared in the file, in declaration order.
func (f *File) Classes() []*Class {
	var out []*Class
	for _, e := range f.Entities {
		if c, ok := e.(*Class); ok {
			out = append(out, c)
		}
	}
	return out
}

// Functions returns the freestanding functions declared in the file.
func (f *File) Functions() []*Function {
	var out []*Function
	for _, e := range f.Entities {
		if fn, ok := e.(*Function); ok {
			out = append(out, fn)
		}
	}
	return out
}

// Attribute is a modifier marker such as native, abstract or interface.
type Attribute struct {
	Pos  token.Position
	Name string
}

func (a *Attribute) Accept(v Visitor)       { v.VisitAttribute(a) }
func (a *Attribute) GetPos() token.Position { return a.Pos }

// HasAttribute reports whether attrs contains an attribute called name.
func HasAttribute(attrs []*Attribute, name string) bool {
	for _, a := range attrs {
		if a != nil && a.Name == name {
			return true
		}
	}
	return false
}

// AttributeNames returns the attribute names in list order.
func AttributeNames(attrs []*Attribute) []string {
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	return names
}
