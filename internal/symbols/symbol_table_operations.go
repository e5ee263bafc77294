package symbols

import (
	"fmt"
)

// InsertResult tells the caller whether an insertion replaced an existing
// declaration of the same name. Insertion always stores the new entry.
type InsertResult struct {
	Duplicate bool
	Previous  Entry
}

func insert[E Entry](table map[string]E, name string, entry E) InsertResult {
	prev, exists := table[name]
	table[name] = entry
	if !exists {
		return InsertResult{}
	}
	return InsertResult{Duplicate: true, Previous: prev}
}

func (t NamespaceSymbolTable) Insert(name string, e NamespaceEntry) InsertResult {
	return insert(t, name, e)
}

func (t ClassSymbolTable) Insert(name string, e ClassMemberEntry) InsertResult {
	return insert(t, name, e)
}

func (t FunctionSymbolTable) Insert(name string, e LocalEntry) InsertResult {
	return insert(t, name, e)
}

// Conflict records a same-scope redeclaration that replaced an earlier entry.
type Conflict struct {
	Namespace string
	Scope     string // Dotted path of the enclosing scope, e.g. "C.m"
	Name      string
	File      string // File of the replacing declaration
	Previous  Entry
	Current   Entry
}

func (c Conflict) String() string {
	where := c.Namespace
	if c.Scope != "" {
		where += "." + c.Scope
	}
	return fmt.Sprintf("%s %q in %s redeclared at %s (previous %s at %s)",
		c.Current.Kind(), c.Name, where, c.Current.GetPos(), c.Previous.Kind(), c.Previous.GetPos())
}
