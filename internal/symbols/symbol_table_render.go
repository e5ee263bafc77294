package symbols

import (
	"fmt"
	"io"
	"strings"
)

// Render writes an indented, sorted view of the table:
//
//	namespace n
//	  class C : Object
//	    method m -> int  @1,1
//	      param x: int  @1,20
func (g GlobalSymbolTable) Render(w io.Writer) error {
	for _, ns := range g.Namespaces() {
		if _, err := fmt.Fprintf(w, "namespace %s\n", ns); err != nil {
			return err
		}
		var err error
		g[ns].walkSorted(func(depth int, name string, e Entry) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(w, "%s%s  @%s\n", strings.Repeat("  ", depth+1), describe(name, e), e.GetPos())
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (t NamespaceSymbolTable) walkSorted(fn func(depth int, name string, e Entry)) {
	for _, name := range t.Names() {
		renderEntry(0, name, t[name], fn)
	}
}

func renderEntry(depth int, name string, e Entry, fn func(int, string, Entry)) {
	fn(depth, name, e)
	children := Children(e)
	for _, child := range sortedKeys(children) {
		renderEntry(depth+1, child, children[child], fn)
	}
}

func describe(name string, e Entry) string {
	switch e := e.(type) {
	case *ClassEntry:
		s := "class " + name
		if e.SuperName != "" {
			s += " : " + e.SuperName
		}
		if len(e.Interfaces) > 0 {
			s += " (" + strings.Join(e.Interfaces, ", ") + ")"
		}
		return s
	case *FunEntry, *MethodEntry, *ClosureEntry:
		return fmt.Sprintf("%s %s -> %s", e.Kind(), name, e.TypeName())
	default:
		return fmt.Sprintf("%s %s: %s", e.Kind(), name, e.TypeName())
	}
}
