// Package transform holds the structural rewrites run between validation and
// symbol-table construction.
package transform

import (
	"github.com/funvibe/classc/internal/ast"
)

// FlattenMembers removes every block from a member list.
//
// Non-block members keep their relative order and come first; the members of
// all blocks follow as one batch, expanded depth-first in declaration order.
// An expanded member carries its own attributes followed by those of each
// enclosing block, innermost first. Attributes are not deduplicated.
// The input is never modified: expanded members are fresh copies.
func FlattenMembers(members []ast.ClassMember) []ast.ClassMember {
	flat := make([]ast.ClassMember, 0, len(members))
	var expanded []ast.ClassMember
	for _, m := range members {
		if b, ok := m.(*ast.Block); ok {
			expanded = expandBlock(expanded, b, nil)
			continue
		}
		flat = append(flat, m)
	}
	return append(flat, expanded...)
}

// expandBlock appends the members of b to out. outer holds the attributes of
// the blocks enclosing b, innermost first.
func expandBlock(out []ast.ClassMember, b *ast.Block, outer []*ast.Attribute) []ast.ClassMember {
	inherited := concatAttrs(b.Attributes, outer)
	for _, m := range b.Members {
		switch m := m.(type) {
		case *ast.Field:
			cp := *m
			cp.Attributes = concatAttrs(m.Attributes, inherited)
			out = append(out, &cp)
		case *ast.Function:
			cp := *m
			cp.Attributes = concatAttrs(m.Attributes, inherited)
			out = append(out, &cp)
		case *ast.Block:
			out = expandBlock(out, m, inherited)
		default:
			panic("transform: unexpected class member in block")
		}
	}
	return out
}

func concatAttrs(lists ...[]*ast.Attribute) []*ast.Attribute {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]*ast.Attribute, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// blockExpander flattens classes in place.
type blockExpander struct {
	ast.BaseVisitor
}

// ExpandBlocks flattens the blocks of every class of f in place.
func ExpandBlocks(f *ast.File) {
	v := &blockExpander{}
	v.BaseVisitor = ast.BaseVisitor{Self: v}
	ast.Walk(v, f)
}

func (v *blockExpander) VisitClass(n *ast.Class) {
	if !n.HasBlocks() {
		return
	}
	n.Members = FlattenMembers(n.Members)
}

// Functions hold no blocks.
func (v *blockExpander) VisitFunction(n *ast.Function) {}

// blockReducer rebuilds classes without blocks.
type blockReducer struct {
	ast.IdentityFolder
}

// ReduceBlocks returns a copy of f whose classes contain no blocks. f itself
// is left untouched; functions and block-free members are shared.
func ReduceBlocks(f *ast.File) *ast.File {
	return blockReducer{}.FoldFile(f)
}

func (r blockReducer) FoldFile(n *ast.File) *ast.File {
	return ast.FoldEntities(r, n)
}

func (r blockReducer) FoldClass(n *ast.Class) *ast.Class {
	cp := *n
	cp.Attributes = append([]*ast.Attribute(nil), n.Attributes...)
	cp.Interfaces = append([]string(nil), n.Interfaces...)
	cp.Members = FlattenMembers(n.Members)
	return &cp
}
