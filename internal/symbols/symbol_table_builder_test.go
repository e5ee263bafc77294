package symbols

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/classc/internal/ast"
	at "github.com/funvibe/classc/internal/ast/asttest"
)

func TestBuild_NativeMethodParamShape(t *testing.T) {
	// class C { native int m(int x); }
	m := at.Func("m", "int", []string{"native"}, at.Params("x", "int"))
	file := at.File("n", at.Class("C", nil, m))

	gst, conflicts := Build(map[string][]*ast.File{"n": {file}})
	require.Empty(t, conflicts)

	class, ok := gst["n"]["C"].(*ClassEntry)
	require.True(t, ok, "expected a class entry for C")

	method, ok := class.Members["m"].(*MethodEntry)
	require.True(t, ok, "expected a method entry for m")
	assert.Equal(t, "int", method.ReturnType)
	assert.Equal(t, m.Pos, method.Pos)

	param, ok := method.Locals["x"].(*ParamEntry)
	require.True(t, ok, "expected a param entry for x")
	assert.Equal(t, "int", param.Type)
	assert.Equal(t, m.Params[0].Pos, param.Pos)

	e, ok := gst.Lookup("n", "C", "m", "x")
	require.True(t, ok)
	assert.Same(t, param, e)
}

func TestBuild_ClassCarriesSuperAndInterfaces(t *testing.T) {
	c := at.Class("C", nil, at.Field("f", "int"))
	c.SuperName = "Base"
	c.Interfaces = []string{"I", "J"}

	gst, _ := Build(map[string][]*ast.File{"n": {at.File("n", c)}})
	entry := gst["n"]["C"].(*ClassEntry)
	assert.Equal(t, "Base", entry.SuperName)
	assert.Equal(t, []string{"I", "J"}, entry.Interfaces)
	assert.Equal(t, c.Pos, entry.Pos)

	field, ok := entry.Members["f"].(*FieldEntry)
	require.True(t, ok)
	assert.Equal(t, "int", field.Type)
}

func TestBuild_FreestandingFunctionLocals(t *testing.T) {
	fn := at.Func("f", "int", nil, at.Params("a", "int"),
		at.Let("v", "string", at.Q(at.Str("s"))),
		at.ReturnInt(1),
	)
	gst, _ := Build(map[string][]*ast.File{"n": {at.File("n", fn)}})

	fun, ok := gst["n"]["f"].(*FunEntry)
	require.True(t, ok)
	assert.Equal(t, "int", fun.ReturnType)
	assert.IsType(t, &ParamEntry{}, fun.Locals["a"])
	v, ok := fun.Locals["v"].(*VarEntry)
	require.True(t, ok)
	assert.Equal(t, "string", v.Type)
}

func TestBuild_SiblingClosuresGetDistinctTables(t *testing.T) {
	// fun f() -> int {
	//   let a: F = { (x: int) -> int { let y: int; return y; } };
	//   g({ (z: int) -> int { return z; } });
	//   return 0;
	// }
	first := at.Closure("int", at.Params("x", "int"), at.Let("y", "int", nil), at.Return(at.Q(at.Ident("y"))))
	second := at.Closure("bool", at.Params("z", "int"), at.Return(at.Q(at.Ident("z"))))
	fn := at.Func("f", "int", nil, nil,
		at.Let("a", "F", at.Q(first)),
		at.Q(at.Call("g", at.Q(second))),
		at.ReturnInt(0),
	)

	gst, conflicts := Build(map[string][]*ast.File{"n": {at.File("n", fn)}})
	require.Empty(t, conflicts)
	locals := gst["n"]["f"].(*FunEntry).Locals

	c1, ok := locals["<closure1>"].(*ClosureEntry)
	require.True(t, ok, "expected <closure1> in the function table")
	c2, ok := locals["<closure2>"].(*ClosureEntry)
	require.True(t, ok, "expected <closure2> in the function table")

	assert.Equal(t, "int", c1.ReturnType)
	assert.Equal(t, "bool", c2.ReturnType)
	assert.Equal(t, first.Pos, c1.Pos)

	assert.Len(t, c1.Locals, 2)
	assert.Contains(t, c1.Locals, "x")
	assert.Contains(t, c1.Locals, "y")
	assert.Len(t, c2.Locals, 1)
	assert.Contains(t, c2.Locals, "z")

	// Closure locals never leak into the function scope.
	assert.NotContains(t, locals, "x")
	assert.NotContains(t, locals, "y")
	assert.NotContains(t, locals, "z")
	assert.Contains(t, locals, "a")
}

func TestBuild_NestedClosureNamingIsScopeRelative(t *testing.T) {
	// fun f() -> int {
	//   h({ () -> int { let i: int; k({ () -> int { let j: int; return j; } }); return i; } });
	//   h({ () -> int { return 2; } });
	//   return 0;
	// }
	innermost := at.Closure("int", nil, at.Let("j", "int", nil), at.Return(at.Q(at.Ident("j"))))
	outer := at.Closure("int", nil,
		at.Let("i", "int", nil),
		at.Q(at.Call("k", at.Q(innermost))),
		at.Return(at.Q(at.Ident("i"))),
	)
	sibling := at.Closure("int", nil, at.ReturnInt(2))
	fn := at.Func("f", "int", nil, nil,
		at.Q(at.Call("h", at.Q(outer))),
		at.Q(at.Call("h", at.Q(sibling))),
		at.ReturnInt(0),
	)
	class := at.Class("C", nil, fn)

	gst, _ := Build(map[string][]*ast.File{"n": {at.File("n", class)}})

	outerEntry, ok := gst.Lookup("n", "C", "f", "<closure1>")
	require.True(t, ok)
	assert.Equal(t, outer.Pos, outerEntry.GetPos())

	nested, ok := gst.Lookup("n", "C", "f", "<closure1>", "<closure1>")
	require.True(t, ok, "nested closure is keyed in its enclosing closure's table")
	assert.Equal(t, innermost.Pos, nested.GetPos())

	j, ok := gst.Lookup("n", "C", "f", "<closure1>", "<closure1>", "j")
	require.True(t, ok)
	assert.Equal(t, VarSymbol, j.Kind())

	second, ok := gst.Lookup("n", "C", "f", "<closure2>")
	require.True(t, ok)
	assert.Equal(t, sibling.Pos, second.GetPos())

	_, ok = gst.Lookup("n", "C", "f", "j")
	assert.False(t, ok, "nested closure variables must stay in their own table")
}

func TestBuild_CrossFileDuplicateLastWins(t *testing.T) {
	first := at.Class("X", nil, at.Field("a", "int"))
	second := at.Class("X", nil, at.Field("b", "int"))
	f1 := at.File("n", first)
	f1.Path = "a.ast.yaml"
	f2 := at.File("n", second)
	f2.Path = "b.ast.yaml"

	gst, conflicts := Build(map[string][]*ast.File{"n": {f1, f2}})

	require.Len(t, gst["n"], 1)
	x := gst["n"]["X"].(*ClassEntry)
	assert.Equal(t, second.Pos, x.Pos)
	assert.Contains(t, x.Members, "b")
	assert.NotContains(t, x.Members, "a")

	require.Len(t, conflicts, 1)
	assert.Equal(t, "X", conflicts[0].Name)
	assert.Equal(t, "b.ast.yaml", conflicts[0].File)
	assert.Equal(t, first.Pos, conflicts[0].Previous.GetPos())
}

func TestBuild_SameScopeDuplicateLocal(t *testing.T) {
	fn := at.Func("f", "int", nil, at.Params("x", "int"), at.Let("x", "string", nil), at.ReturnInt(0))
	gst, conflicts := Build(map[string][]*ast.File{"n": {at.File("n", fn)}})

	x, ok := gst.Lookup("n", "f", "x")
	require.True(t, ok)
	assert.Equal(t, VarSymbol, x.Kind())
	require.Len(t, conflicts, 1)
	assert.Equal(t, "f", conflicts[0].Scope)
	assert.Equal(t, ParamSymbol, conflicts[0].Previous.Kind())
}

func TestBuild_BlockMembersLandInClassTable(t *testing.T) {
	class := at.Class("C", nil,
		at.Block([]string{"native"},
			at.Func("m", "int", nil, nil),
			at.Block([]string{"static"}, at.Field("f", "int")),
		),
	)
	gst, _ := Build(map[string][]*ast.File{"n": {at.File("n", class)}})
	members := gst["n"]["C"].(*ClassEntry).Members
	assert.IsType(t, &MethodEntry{}, members["m"])
	assert.IsType(t, &FieldEntry{}, members["f"])
}

func TestBuild_NamespacesAreIsolated(t *testing.T) {
	gst, _ := Build(map[string][]*ast.File{
		"a": {at.File("a", at.Class("C", nil))},
		"b": {at.File("b", at.Func("f", "int", nil, nil, at.ReturnInt(1)))},
	})
	assert.Equal(t, []string{"a", "b"}, gst.Namespaces())
	assert.NotContains(t, gst["a"], "f")
	assert.NotContains(t, gst["b"], "C")
	assert.Equal(t, 2, gst.Count())
}

func TestBuilder_PanicsOnParamOutsideFunction(t *testing.T) {
	b := NewBuilder("n")
	assert.Panics(t, func() { b.VisitParam(&ast.Param{Name: "x"}) })
}

func TestRender(t *testing.T) {
	m := at.Func("m", "int", []string{"native"}, at.Params("x", "int"))
	class := at.Class("C", nil, m)
	class.SuperName = "Object"
	gst, _ := Build(map[string][]*ast.File{"n": {at.File("n", class)}})

	var buf bytes.Buffer
	require.NoError(t, gst.Render(&buf))
	want := "namespace n\n" +
		"  class C : Object  @" + class.Pos.String() + "\n" +
		"    method m -> int  @" + m.Pos.String() + "\n" +
		"      param x: int  @" + m.Params[0].Pos.String() + "\n"
	assert.Equal(t, want, buf.String())
}
