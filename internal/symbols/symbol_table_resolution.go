package symbols

import (
	"sort"
)

// Lookup resolves a path below a namespace, e.g. Lookup("n", "C", "m", "x")
// returns the parameter x of method C.m.
func (g GlobalSymbolTable) Lookup(namespace string, path ...string) (Entry, bool) {
	nst, ok := g[namespace]
	if !ok || len(path) == 0 {
		return nil, false
	}
	return nst.Lookup(path...)
}

// Lookup resolves a path whose first element names a class or function.
func (t NamespaceSymbolTable) Lookup(path ...string) (Entry, bool) {
	if len(path) == 0 {
		return nil, false
	}
	entry, ok := t[path[0]]
	if !ok {
		return nil, false
	}
	var cur Entry = entry
	for _, name := range path[1:] {
		next, ok := Child(cur, name)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Child returns the entry called name in the table owned by e.
func Child(e Entry, name string) (Entry, bool) {
	switch e := e.(type) {
	case *ClassEntry:
		c, ok := e.Members[name]
		return c, ok
	case *FunEntry:
		c, ok := e.Locals[name]
		return c, ok
	case *MethodEntry:
		c, ok := e.Locals[name]
		return c, ok
	case *ClosureEntry:
		c, ok := e.Locals[name]
		return c, ok
	}
	return nil, false
}

// Children returns the entries of the table owned by e, or nil for leaves.
func Children(e Entry) map[string]Entry {
	out := make(map[string]Entry)
	switch e := e.(type) {
	case *ClassEntry:
		for k, v := range e.Members {
			out[k] = v
		}
	case *FunEntry:
		addLocals(out, e.Locals)
	case *MethodEntry:
		addLocals(out, e.Locals)
	case *ClosureEntry:
		addLocals(out, e.Locals)
	default:
		return nil
	}
	return out
}

func addLocals(out map[string]Entry, t FunctionSymbolTable) {
	for k, v := range t {
		out[k] = v
	}
}

// Namespaces returns the namespace names in sorted order.
func (g GlobalSymbolTable) Namespaces() []string {
	names := make([]string, 0, len(g))
	for ns := range g {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// Names returns the declared names in sorted order.
func (t NamespaceSymbolTable) Names() []string {
	return sortedKeys(t)
}

func sortedKeys[E any](m map[string]E) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Walk calls fn for every entry below the global table in sorted,
// depth-first order. path starts with the namespace.
func (g GlobalSymbolTable) Walk(fn func(path []string, e Entry)) {
	for _, ns := range g.Namespaces() {
		nst := g[ns]
		for _, name := range nst.Names() {
			walkEntry([]string{ns, name}, nst[name], fn)
		}
	}
}

func walkEntry(path []string, e Entry, fn func([]string, Entry)) {
	fn(path, e)
	children := Children(e)
	for _, name := range sortedKeys(children) {
		child := append(append([]string(nil), path...), name)
		walkEntry(child, children[name], fn)
	}
}

// Count returns the number of entries of the global table at every depth.
func (g GlobalSymbolTable) Count() int {
	n := 0
	g.Walk(func([]string, Entry) { n++ })
	return n
}
